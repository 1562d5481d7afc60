package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventCollision = "collision"

// CollisionEventKind identifies collision event types.
type CollisionEventKind string

const (
	// CollisionEventShellHit fires when a shell sensor first touches a tank
	// or solid shape. Other is zero for arena walls.
	CollisionEventShellHit CollisionEventKind = "shell_hit"
)

// CollisionEvent is emitted when collision state changes.
type CollisionEvent struct {
	Entity Entity
	Other  Entity
	Kind   CollisionEventKind
}

// EventQueue holds the events raised during one tick. The scheduler drops
// whatever is left at the end of the tick.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainCollisions removes the collision events of kind and returns them in
// push order. Other events stay queued.
func (q *EventQueue) DrainCollisions(kind CollisionEventKind) []CollisionEvent {
	if q == nil {
		return nil
	}
	var out []CollisionEvent
	kept := q.items[:0]
	for _, evt := range q.items {
		if hit, ok := evt.Data.(CollisionEvent); ok && evt.Type == EventCollision && hit.Kind == kind {
			out = append(out, hit)
			continue
		}
		kept = append(kept, evt)
	}
	clear(q.items[len(kept):])
	q.items = kept
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
