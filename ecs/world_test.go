package ecs

import (
	"testing"

	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hull struct{ HP int }
type turret struct{ Angle float64 }

var (
	hullComponent   = component.NewComponent[hull]()
	turretComponent = component.NewComponent[turret]()
)

func TestEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			require.Len(t, w.Entities(), c.create)
			if c.destroyIndex >= 0 {
				require.True(t, DestroyEntity(w, ents[c.destroyIndex]))
				assert.False(t, IsAlive(w, ents[c.destroyIndex]))
				assert.False(t, DestroyEntity(w, ents[c.destroyIndex]), "double destroy")
				assert.Len(t, w.Entities(), c.create-1)
			}
		})
	}
}

func TestReusedSlotGetsNewGeneration(t *testing.T) {
	w := NewWorld()
	old := w.CreateEntity()
	require.NoError(t, Add(w, old, hullComponent, &hull{HP: 10}))
	require.True(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	assert.Equal(t, old.id(), fresh.id())
	assert.NotEqual(t, old, fresh)
	assert.False(t, w.IsAlive(old))
	assert.False(t, Has(w, fresh, hullComponent), "components must not leak into a reused slot")
	assert.Error(t, Add(w, old, hullComponent, &hull{}))
}

func TestAddGetRemove(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add_and_get_pointer",
			run:  func() error { return Add(w, e, hullComponent, &hull{HP: 100}) },
			check: func(t *testing.T) {
				h, ok := Get(w, e, hullComponent)
				require.True(t, ok)
				h.HP -= 40
				again, _ := Get(w, e, hullComponent)
				assert.Equal(t, 60, again.HP, "Get returns the stored pointer")
			},
		},
		{
			name: "replace",
			run:  func() error { return Add(w, e, hullComponent, &hull{HP: 5}) },
			check: func(t *testing.T) {
				h, _ := Get(w, e, hullComponent)
				assert.Equal(t, 5, h.HP)
			},
		},
		{
			name: "nil_rejected",
			run: func() error {
				err := Add[turret](w, e, turretComponent, nil)
				assert.ErrorIs(t, err, component.ErrNilComponent)
				return nil
			},
			check: func(t *testing.T) {
				assert.False(t, Has(w, e, turretComponent))
			},
		},
		{
			name: "remove",
			run:  func() error { return nil },
			check: func(t *testing.T) {
				assert.True(t, Remove(w, e, hullComponent))
				assert.False(t, Remove(w, e, hullComponent))
				_, ok := Get(w, e, hullComponent)
				assert.False(t, ok)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, tc.run())
			tc.check(t)
		})
	}
}

func TestAddToDeadEntity(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.DestroyEntity(e)
	assert.ErrorIs(t, Add(w, e, hullComponent, &hull{}), component.ErrEntityNotAlive)
}

func TestQueryIntersection(t *testing.T) {
	w := NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()

	require.NoError(t, Add(w, e1, hullComponent, &hull{}))
	require.NoError(t, Add(w, e2, hullComponent, &hull{}))
	require.NoError(t, Add(w, e2, turretComponent, &turret{}))
	require.NoError(t, Add(w, e3, turretComponent, &turret{}))

	assert.Equal(t, []Entity{e2}, w.Query(hullComponent.Kind(), turretComponent.Kind()))
	assert.ElementsMatch(t, []Entity{e1, e2}, w.Query(hullComponent.Kind()))

	w.DestroyEntity(e2)
	assert.Empty(t, w.Query(hullComponent.Kind(), turretComponent.Kind()))

	first, ok := w.First(turretComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, e3, first)
}

func TestForEachAllowsDestroy(t *testing.T) {
	w := NewWorld()
	var ents []Entity
	for i := 0; i < 4; i++ {
		e := w.CreateEntity()
		require.NoError(t, Add(w, e, hullComponent, &hull{HP: i}))
		ents = append(ents, e)
	}

	visited := 0
	ForEach(w, hullComponent, func(e Entity, h *hull) {
		visited++
		if h.HP%2 == 0 {
			w.DestroyEntity(e)
		}
	})

	assert.Equal(t, 4, visited)
	assert.Len(t, w.Query(hullComponent.Kind()), 2)
	assert.False(t, w.IsAlive(ents[0]))
	assert.True(t, w.IsAlive(ents[1]))
}

type countingSystem struct {
	calls *[]string
	name  string
}

func (s countingSystem) Update(w *World) {
	*s.calls = append(*s.calls, s.name)
	w.Events().Push(Event{Type: s.name})
}

func TestSchedulerRunsInOrderAndFlushesEvents(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"}, nil, countingSystem{&calls, "b"})
	w := NewWorld()

	s.Update(w)

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Len(t, s.Systems(), 2)
	assert.Zero(t, w.Events().Len())
}

func TestAddErrorNamesComponent(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.DestroyEntity(e)

	err := Add(w, e, hullComponent, &hull{})
	require.Error(t, err)
	assert.ErrorIs(t, err, component.ErrEntityNotAlive)
	assert.Contains(t, err.Error(), "hull")
	assert.Equal(t, "turret", turretComponent.String())
}

func TestEntityRefRoundTrip(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.DestroyEntity(e)
	e = w.CreateEntity()

	assert.Equal(t, e, EntityFromRef(e.Ref()))
	assert.Equal(t, "1v1", e.String())
	assert.Equal(t, "none", Entity(0).String())
}

func TestDrainCollisionsKeepsOtherEvents(t *testing.T) {
	var q EventQueue
	shell, tank := Entity(1), Entity(2)
	q.Push(Event{Type: "round"})
	q.Push(Event{Type: EventCollision, Data: CollisionEvent{Entity: shell, Other: tank, Kind: CollisionEventShellHit}})
	q.Push(Event{Type: EventCollision, Data: CollisionEvent{Entity: shell, Kind: "other"}})

	hits := q.DrainCollisions(CollisionEventShellHit)
	require.Len(t, hits, 1)
	assert.Equal(t, tank, hits[0].Other)
	assert.Equal(t, 2, q.Len())
	assert.Empty(t, q.DrainCollisions(CollisionEventShellHit))
}

func TestSchedulerPauseAndRun(t *testing.T) {
	var calls []string
	s := NewScheduler(countingSystem{&calls, "a"})
	w := NewWorld()

	s.Run(w, 3)
	assert.Len(t, calls, 3)
	assert.Equal(t, uint64(3), s.Ticks())

	s.SetPaused(true)
	s.Run(w, 5)
	assert.True(t, s.Paused())
	assert.Len(t, calls, 3)
	assert.Equal(t, uint64(3), s.Ticks())
}
