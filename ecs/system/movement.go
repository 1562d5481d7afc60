package system

import (
	"math"
	"math/rand/v2"

	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// engineIdleThreshold is the input magnitude below which the engine idles.
const engineIdleThreshold = 0.1

// MovementSystem turns each tank's axes into drive and turn velocities for
// the physics step and keeps the engine clip in step with motion.
type MovementSystem struct {
	rng *rand.Rand
}

func NewMovementSystem(rng *rand.Rand) *MovementSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &MovementSystem{rng: rng}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.MovementComponent, func(e ecs.Entity, movement *component.Movement) {
		if !IsTankActive(w, e) {
			return
		}
		body, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		audio, _ := ecs.Get(w, e, component.AudioComponent)

		if !movement.EngineStarted {
			movement.EngineStarted = true
			movement.Driving = false
			audio.Play(channelEngine, movement.EngineIdleClip, s.pitch(movement), true)
		}

		if !movement.Enabled {
			return
		}

		if input, ok := ecs.Get(w, e, component.InputComponent); ok {
			movement.Vertical = input.Vertical
			movement.Horizontal = input.Horizontal
		}

		s.engineAudio(movement, audio)

		if tutorial, ok := ecs.Get(w, e, component.TutorialComponent); ok {
			if movement.Vertical != 0 {
				tutorial.HasMoved = true
			}
			if movement.Horizontal != 0 {
				tutorial.HasTurned = true
			}
		}

		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		forward := transform.Forward()
		speed := movement.Vertical * movement.Speed
		body.DriveVelocity = ToPlane(forward.X()*speed, forward.Z()*speed)
		// positive horizontal turns clockwise seen from above, which is a
		// negative yaw and so a positive body angle
		body.AngularVelocity = movement.Horizontal * movement.TurnSpeed * math.Pi / 180
	})
}

// engineAudio swaps between idle and drive clips only when the moving state
// changes, each time at a fresh random pitch.
func (s *MovementSystem) engineAudio(movement *component.Movement, audio *component.Audio) {
	moving := math.Abs(movement.Vertical) >= engineIdleThreshold || math.Abs(movement.Horizontal) >= engineIdleThreshold
	if moving == movement.Driving {
		return
	}
	movement.Driving = moving
	clip := movement.EngineIdleClip
	if moving {
		clip = movement.EngineDriveClip
	}
	audio.Play(channelEngine, clip, s.pitch(movement), true)
}

func (s *MovementSystem) pitch(movement *component.Movement) float64 {
	base := movement.Pitch
	if base <= 0 {
		base = 1
	}
	return common.Lerp(base-movement.PitchRange, base+movement.PitchRange, s.rng.Float64())
}
