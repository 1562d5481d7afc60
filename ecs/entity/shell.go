package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/ecs/system"
)

// SpawnShell builds a shell prefab at pos. The horizontal part of velocity
// drives the physics body and the vertical part feeds the shell's flight.
func SpawnShell(w *ecs.World, prefab string, pos, velocity mgl64.Vec3) (ecs.Entity, error) {
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("shell: %w", err)
	}

	shell, ok := ecs.Get(w, e, component.ShellComponent)
	if !ok {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("shell: prefab %q has no shell component", prefab)
	}
	shell.Height = pos.Y()
	shell.VerticalVelocity = velocity.Y()

	yaw := math.Atan2(velocity.X(), velocity.Z())
	if err := SetEntityTransform(w, e, pos, mgl64.RadToDeg(yaw)); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("shell: place: %w", err)
	}

	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		body.DriveVelocity = system.ToPlane(velocity.X(), velocity.Z())
	}
	return e, nil
}
