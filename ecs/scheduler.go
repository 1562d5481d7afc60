package ecs

// System updates a world each tick.
type System interface {
	Update(w *World)
}

// Scheduler runs its systems in a fixed order once per tick. A paused
// scheduler skips ticks entirely.
type Scheduler struct {
	systems []System
	paused  bool
	ticks   uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs all systems once, in order, then drops undrained events.
func (s *Scheduler) Update(w *World) {
	if s.paused {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	w.Events().flush()
	s.ticks++
}

// Run advances n ticks.
func (s *Scheduler) Run(w *World, n int) {
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}

func (s *Scheduler) SetPaused(paused bool) {
	s.paused = paused
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

// Ticks counts the ticks run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
