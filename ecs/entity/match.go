package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

// NewMatch creates the match state entity with its arena bounds and the
// arena's static obstacles.
func NewMatch(w *ecs.World, spec *prefabs.MatchSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, fmt.Errorf("match: spec is nil")
	}

	e := ecs.CreateEntity(w)
	match := &component.Match{Phase: component.PhaseWaiting}
	ApplyMatchSpec(match, spec)
	if err := ecs.Add(w, e, component.MatchComponent, match); err != nil {
		return 0, fmt.Errorf("match: add match: %w", err)
	}
	if err := ecs.Add(w, e, component.ArenaComponent, &component.Arena{
		MinX: spec.Arena.MinX,
		MinZ: spec.Arena.MinZ,
		MaxX: spec.Arena.MaxX,
		MaxZ: spec.Arena.MaxZ,
	}); err != nil {
		return 0, fmt.Errorf("match: add arena: %w", err)
	}

	for i, o := range spec.Obstacles {
		if _, err := newObstacle(w, o); err != nil {
			return 0, fmt.Errorf("match: obstacle %d: %w", i, err)
		}
	}
	return e, nil
}

// ApplyMatchSpec copies the round rules of spec onto match.
func ApplyMatchSpec(match *component.Match, spec *prefabs.MatchSpec) {
	match.RoundsToWin = spec.RoundsToWin
	if match.RoundsToWin <= 0 {
		match.RoundsToWin = 3
	}
	match.StartDelay = spec.StartDelay
	match.EndDelay = spec.EndDelay
}

func newObstacle(w *ecs.World, spec prefabs.ObstacleSpec) (ecs.Entity, error) {
	if spec.Radius <= 0 && (spec.Width <= 0 || spec.Length <= 0) {
		return 0, fmt.Errorf("needs a radius or a width and length")
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ObstacleTagComponent, &component.ObstacleTag{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: mgl64.Vec3{spec.X, 0, spec.Z},
		Rotation: mgl64.QuatIdent(),
	}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Radius:   spec.Radius,
		Width:    spec.Width,
		Length:   spec.Length,
		Height:   spec.Height,
		Friction: 0.8,
		Static:   true,
	}); err != nil {
		return 0, err
	}
	return e, nil
}
