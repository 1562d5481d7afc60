package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// ResetTank puts a tank back into its round-start state: spawn transform,
// full health, active, zeroed inputs and an idle weapon.
func ResetTank(w *ecs.World, e ecs.Entity) {
	tank, ok := ecs.Get(w, e, component.TankComponent)
	if !ok {
		return
	}

	if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
		transform.Position = tank.SpawnPosition
		transform.Rotation = component.YawRotation(tank.SpawnYaw)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		body.Teleport = true
		body.DriveVelocity = cp.Vector{}
		body.AngularVelocity = 0
		body.ExternalVelocity = cp.Vector{}
		body.Impulses = body.Impulses[:0]
	}
	if health, ok := ecs.Get(w, e, component.HealthComponent); ok {
		ResetHealth(health)
	}
	if input, ok := ecs.Get(w, e, component.InputComponent); ok {
		*input = component.Input{PlayerNumber: input.PlayerNumber}
	}
	if movement, ok := ecs.Get(w, e, component.MovementComponent); ok {
		movement.Vertical = 0
		movement.Horizontal = 0
		// restart the engine loop from idle
		movement.EngineStarted = false
		movement.Driving = false
	}
	if shooting, ok := ecs.Get(w, e, component.ShootingComponent); ok {
		resetWeapon(shooting)
	}

	SetTankActive(w, e, true)
}

// EnableControl hands a tank to its driver for the playing phase.
func EnableControl(w *ecs.World, e ecs.Entity) {
	setControl(w, e, true)
}

// DisableControl freezes a tank between rounds. The body goes kinematic so
// explosions cannot push it.
func DisableControl(w *ecs.World, e ecs.Entity) {
	setControl(w, e, false)
}

func setControl(w *ecs.World, e ecs.Entity, enabled bool) {
	tank, ok := ecs.Get(w, e, component.TankComponent)
	if !ok {
		return
	}
	tank.ControlEnabled = enabled

	if movement, ok := ecs.Get(w, e, component.MovementComponent); ok {
		movement.Enabled = enabled
		movement.Vertical = 0
		movement.Horizontal = 0
	}
	if shooting, ok := ecs.Get(w, e, component.ShootingComponent); ok {
		shooting.Enabled = enabled
		shooting.AimVisible = enabled
		if enabled {
			resetWeapon(shooting)
		}
	}
	if health, ok := ecs.Get(w, e, component.HealthComponent); ok {
		health.Indicator.Visible = enabled
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		body.Kinematic = !enabled
		body.DriveVelocity = cp.Vector{}
		body.AngularVelocity = 0
		if !enabled {
			body.ExternalVelocity = cp.Vector{}
		}
	}
}

// SetTankActive shows or removes a tank from play. Inactive tanks leave the
// physics space and fall silent.
func SetTankActive(w *ecs.World, e ecs.Entity, active bool) {
	tank, ok := ecs.Get(w, e, component.TankComponent)
	if !ok {
		return
	}
	tank.Active = active

	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok {
		body.Disabled = !active
	}
	if !active {
		if audio, ok := ecs.Get(w, e, component.AudioComponent); ok {
			audio.Stop(channelEngine)
			audio.Stop(channelWeapon)
		}
		if movement, ok := ecs.Get(w, e, component.MovementComponent); ok {
			movement.EngineStarted = false
			movement.Driving = false
		}
	}
}

// IsTankActive reports whether e is a live, active tank.
func IsTankActive(w *ecs.World, e ecs.Entity) bool {
	if !w.IsAlive(e) {
		return false
	}
	tank, ok := ecs.Get(w, e, component.TankComponent)
	return ok && tank.Active
}

// ActiveTanks filters tanks down to the active ones, keeping order.
func ActiveTanks(w *ecs.World, tanks []ecs.Entity) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(tanks))
	for _, e := range tanks {
		if IsTankActive(w, e) {
			out = append(out, e)
		}
	}
	return out
}

func PlayerName(tank *component.Tank) string {
	return fmt.Sprintf("PLAYER %d", tank.PlayerNumber)
}

// ColoredPlayerText wraps the player name in BBCode colour markup.
func ColoredPlayerText(tank *component.Tank) string {
	return fmt.Sprintf("[color=%s]%s[/color]", common.FromColor(tank.Color).Hex(), PlayerName(tank))
}
