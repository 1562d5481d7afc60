package entity

import (
	"fmt"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

// RetuneTank reloads the tuning values of a tank prefab onto a live tank.
// Runtime state such as current health or charge is left alone.
func RetuneTank(w *ecs.World, e ecs.Entity, prefab string) error {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return fmt.Errorf("retune tank: %w", err)
	}

	if raw, ok := spec.Components["movement"]; ok {
		if movement, ok := ecs.Get(w, e, component.MovementComponent); ok {
			ms, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
			if err != nil {
				return fmt.Errorf("retune tank: movement: %w", err)
			}
			applyMovementSpec(movement, ms)
		}
	}

	if raw, ok := spec.Components["shooting"]; ok {
		if shooting, ok := ecs.Get(w, e, component.ShootingComponent); ok {
			ss, err := prefabs.DecodeComponentSpec[prefabs.ShootingComponentSpec](raw)
			if err != nil {
				return fmt.Errorf("retune tank: shooting: %w", err)
			}
			if ss.MaxLaunchForce < ss.MinLaunchForce {
				return fmt.Errorf("retune tank: max_launch_force %v below min_launch_force %v", ss.MaxLaunchForce, ss.MinLaunchForce)
			}
			applyShootingSpec(shooting, ss)
		}
	}

	if raw, ok := spec.Components["health"]; ok {
		if health, ok := ecs.Get(w, e, component.HealthComponent); ok {
			hs, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
			if err != nil {
				return fmt.Errorf("retune tank: health: %w", err)
			}
			if hs.Starting > 0 {
				applyHealthSpec(health, hs)
			}
		}
	}
	return nil
}

// RetuneCamera reloads the framing values of a camera prefab.
func RetuneCamera(w *ecs.World, e ecs.Entity, prefab string) error {
	spec, err := prefabs.LoadEntityBuildSpec(prefab)
	if err != nil {
		return fmt.Errorf("retune camera: %w", err)
	}
	camera, ok := ecs.Get(w, e, component.CameraComponent)
	if !ok {
		return fmt.Errorf("retune camera: entity %v has no camera", e)
	}
	cs, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](spec.Components["camera"])
	if err != nil {
		return fmt.Errorf("retune camera: %w", err)
	}
	applyCameraSpec(camera, cs)

	if raw, ok := spec.Components["transform"]; ok {
		ts, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
		if err != nil {
			return fmt.Errorf("retune camera: transform: %w", err)
		}
		if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
			transform.Rotation = component.YawPitchRotation(ts.Yaw, ts.Pitch)
			transform.Position[1] = ts.Y
		}
	}
	return nil
}
