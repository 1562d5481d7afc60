package system

import (
	"fmt"
	"sort"

	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// AxisSource answers named axis and button queries, e.g. "Vertical1" or
// "Fire2". Poll advances any smoothing once per tick.
type AxisSource interface {
	Poll(dt float64)
	Axis(name string) float64
	Button(name string) bool
	ButtonDown(name string) bool
	ButtonUp(name string) bool
}

func VerticalAxis(player int) string   { return fmt.Sprintf("Vertical%d", player) }
func HorizontalAxis(player int) string { return fmt.Sprintf("Horizontal%d", player) }
func FireButton(player int) string     { return fmt.Sprintf("Fire%d", player) }

// InputSystem copies each player's axes into their Input component. Players
// without an assigned source read from the fallback.
type InputSystem struct {
	fallback AxisSource
	sources  map[int]AxisSource
	dt       float64
}

func NewInputSystem(fallback AxisSource) *InputSystem {
	return &InputSystem{
		fallback: fallback,
		sources:  make(map[int]AxisSource),
		dt:       common.FixedDelta,
	}
}

// Assign routes a player number to src.
func (s *InputSystem) Assign(player int, src AxisSource) {
	if src == nil {
		delete(s.sources, player)
		return
	}
	s.sources[player] = src
}

func (s *InputSystem) source(player int) AxisSource {
	if src, ok := s.sources[player]; ok {
		return src
	}
	return s.fallback
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	s.pollAll()

	ecs.ForEach(w, component.InputComponent, func(_ ecs.Entity, input *component.Input) {
		src := s.source(input.PlayerNumber)
		if src == nil {
			*input = component.Input{PlayerNumber: input.PlayerNumber}
			return
		}
		n := input.PlayerNumber
		input.Vertical = src.Axis(VerticalAxis(n))
		input.Horizontal = src.Axis(HorizontalAxis(n))
		input.Fire = src.Button(FireButton(n))
		input.FireDown = src.ButtonDown(FireButton(n))
		input.FireUp = src.ButtonUp(FireButton(n))
	})
}

// pollAll polls every distinct source once, in player order.
func (s *InputSystem) pollAll() {
	players := make([]int, 0, len(s.sources))
	for p := range s.sources {
		players = append(players, p)
	}
	sort.Ints(players)

	polled := make(map[AxisSource]bool, len(players)+1)
	for _, p := range players {
		src := s.sources[p]
		if polled[src] {
			continue
		}
		polled[src] = true
		src.Poll(s.dt)
	}
	if s.fallback != nil && !polled[s.fallback] {
		s.fallback.Poll(s.dt)
	}
}
