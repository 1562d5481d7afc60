package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// ShellSpawner creates a shell entity at pos moving with velocity.
type ShellSpawner func(w *ecs.World, prefab string, pos, velocity mgl64.Vec3) (ecs.Entity, error)

// ShootingSystem runs the charge and fire cycle of each tank weapon.
type ShootingSystem struct {
	spawn ShellSpawner
	dt    float64
}

func NewShootingSystem(spawn ShellSpawner) *ShootingSystem {
	return &ShootingSystem{spawn: spawn, dt: common.FixedDelta}
}

func (s *ShootingSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.ShootingComponent, func(e ecs.Entity, shooting *component.Shooting) {
		if shooting.State == component.WeaponFired {
			shooting.State = component.WeaponIdle
		}
		shooting.AimValue = shooting.MinLaunchForce

		if !shooting.Enabled || !IsTankActive(w, e) {
			return
		}
		input, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			return
		}
		audio, _ := ecs.Get(w, e, component.AudioComponent)
		charging := shooting.State == component.WeaponCharging

		switch {
		case charging && shooting.CurrentLaunchForce >= shooting.MaxLaunchForce:
			shooting.CurrentLaunchForce = shooting.MaxLaunchForce
			s.fire(w, e, shooting, audio)
		case input.FireDown:
			shooting.State = component.WeaponCharging
			shooting.CurrentLaunchForce = shooting.MinLaunchForce
			audio.Play(channelWeapon, shooting.ChargingClip, 1, false)
		case charging && input.Fire:
			shooting.CurrentLaunchForce = math.Min(shooting.CurrentLaunchForce+chargeSpeed(shooting)*s.dt, shooting.MaxLaunchForce)
			shooting.AimValue = shooting.CurrentLaunchForce
		case charging:
			s.fire(w, e, shooting, audio)
		}
	})
}

// chargeSpeed is the launch force gained per second of holding fire.
func chargeSpeed(shooting *component.Shooting) float64 {
	if shooting.ChargeSpeed > 0 {
		return shooting.ChargeSpeed
	}
	if shooting.MaxChargeTime <= 0 {
		return math.Inf(1)
	}
	return (shooting.MaxLaunchForce - shooting.MinLaunchForce) / shooting.MaxChargeTime
}

// LaunchVelocity is the muzzle direction of a tank scaled by force. The
// muzzle points along the tank forward raised by pitch degrees.
func LaunchVelocity(transform *component.Transform, pitchDegrees, force float64) mgl64.Vec3 {
	pitch := mgl64.DegToRad(pitchDegrees)
	dir := transform.Forward().Mul(math.Cos(pitch)).Add(mgl64.Vec3{0, math.Sin(pitch), 0})
	return dir.Mul(force)
}

func (s *ShootingSystem) fire(w *ecs.World, e ecs.Entity, shooting *component.Shooting, audio *component.Audio) {
	shooting.State = component.WeaponFired
	force := math.Min(shooting.CurrentLaunchForce, shooting.MaxLaunchForce)

	if transform, ok := ecs.Get(w, e, component.TransformComponent); ok && s.spawn != nil {
		rot := transform.Rotation
		if rot.Len() == 0 {
			rot = mgl64.QuatIdent()
		}
		muzzle := transform.Position.Add(rot.Rotate(shooting.MuzzleOffset))
		velocity := LaunchVelocity(transform, shooting.MuzzlePitch, force)
		if _, err := s.spawn(w, shooting.ShellPrefab, muzzle, velocity); err != nil {
			log.Error("spawn shell", "entity", e, "err", err)
		}
	}

	audio.Play(channelWeapon, shooting.FireClip, 1, false)
	shooting.CurrentLaunchForce = shooting.MinLaunchForce

	if tutorial, ok := ecs.Get(w, e, component.TutorialComponent); ok {
		tutorial.HasShot = true
	}
}

func resetWeapon(shooting *component.Shooting) {
	shooting.State = component.WeaponIdle
	shooting.CurrentLaunchForce = shooting.MinLaunchForce
	shooting.AimValue = shooting.MinLaunchForce
}
