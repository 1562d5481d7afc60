package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"tank_tag":     addTankTag,
	"camera_tag":   addCameraTag,
	"shell_tag":    addShellTag,
	"obstacle_tag": addObstacleTag,
	"transform":    addTransform,
	"physics_body": addPhysicsBody,
	"movement":     addMovement,
	"shooting":     addShooting,
	"health":       addHealth,
	"shell":        addShell,
	"camera":       addCamera,
	"audio":        addAudio,
	"input":        addInput,
	"tutorial":     addTutorial,
	"ttl":          addTTL,
}

var componentBuildOrder = []string{
	"tank_tag",
	"camera_tag",
	"shell_tag",
	"obstacle_tag",
	"transform",
	"physics_body",
	"movement",
	"shooting",
	"health",
	"shell",
	"camera",
	"audio",
	"input",
	"tutorial",
	"ttl",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return BuildEntityFromSpec(w, spec, prefabPath)
}

// BuildEntityFromSpec creates an entity from an already decoded prefab.
// Unknown component names are rejected before anything is created.
func BuildEntityFromSpec(w *ecs.World, spec prefabs.EntityBuildSpec, prefabPath string) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	var unknown []string
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, unknown)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityTransform places e at pos facing yaw degrees.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t = &component.Transform{}
	}
	t.Position = pos
	t.Rotation = component.YawRotation(mgl64.DegToRad(yaw))
	return ecs.Add(w, e, component.TransformComponent, t)
}

func addTankTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TankTagComponent, &component.TankTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, &component.CameraTag{})
}

func addShellTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ShellTagComponent, &component.ShellTag{})
}

func addObstacleTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ObstacleTagComponent, &component.ObstacleTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: component.YawPitchRotation(spec.Yaw, spec.Pitch),
	})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Radius:           spec.Radius,
		Width:            spec.Width,
		Length:           spec.Length,
		Height:           spec.Height,
		Mass:             spec.Mass,
		Friction:         spec.Friction,
		Elasticity:       spec.Elasticity,
		Static:           spec.Static,
		Sensor:           spec.Sensor,
		KnockbackDamping: spec.KnockbackDamping,
	})
}

func addMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode movement spec: %w", err)
	}
	var movement component.Movement
	applyMovementSpec(&movement, spec)
	return ecs.Add(w, e, component.MovementComponent, &movement)
}

func applyMovementSpec(m *component.Movement, spec prefabs.MovementComponentSpec) {
	m.Speed = spec.Speed
	m.TurnSpeed = spec.TurnSpeed
	m.EngineIdleClip = spec.EngineIdleClip
	m.EngineDriveClip = spec.EngineDriveClip
	m.Pitch = spec.Pitch
	if m.Pitch <= 0 {
		m.Pitch = 1
	}
	m.PitchRange = spec.PitchRange
}

func addShooting(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShootingComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shooting spec: %w", err)
	}
	if spec.MaxLaunchForce < spec.MinLaunchForce {
		return fmt.Errorf("max_launch_force %v below min_launch_force %v", spec.MaxLaunchForce, spec.MinLaunchForce)
	}
	shooting := component.Shooting{State: component.WeaponIdle}
	applyShootingSpec(&shooting, spec)
	shooting.CurrentLaunchForce = shooting.MinLaunchForce
	shooting.AimValue = shooting.MinLaunchForce
	return ecs.Add(w, e, component.ShootingComponent, &shooting)
}

func applyShootingSpec(s *component.Shooting, spec prefabs.ShootingComponentSpec) {
	s.MinLaunchForce = spec.MinLaunchForce
	s.MaxLaunchForce = spec.MaxLaunchForce
	s.MaxChargeTime = spec.MaxChargeTime
	if s.MaxChargeTime <= 0 {
		s.MaxChargeTime = 0.75
	}
	s.ChargeSpeed = (s.MaxLaunchForce - s.MinLaunchForce) / s.MaxChargeTime
	s.MuzzleOffset = mgl64.Vec3{spec.MuzzleOffset.X, spec.MuzzleOffset.Y, spec.MuzzleOffset.Z}
	s.MuzzlePitch = spec.MuzzlePitch
	s.ShellPrefab = spec.ShellPrefab
	if s.ShellPrefab == "" {
		s.ShellPrefab = "shell.yaml"
	}
	s.ChargingClip = spec.ChargingClip
	s.FireClip = spec.FireClip
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Starting <= 0 {
		return fmt.Errorf("starting health must be positive, got %v", spec.Starting)
	}
	var health component.Health
	applyHealthSpec(&health, spec)
	health.Current = health.Starting
	health.Indicator = component.HealthIndicator{Value: health.Current, Max: health.Starting, Fill: health.FullColor}
	return ecs.Add(w, e, component.HealthComponent, &health)
}

func applyHealthSpec(h *component.Health, spec prefabs.HealthComponentSpec) {
	h.Starting = spec.Starting
	h.FullColor = spec.FullColor.NRGBA()
	h.ZeroColor = spec.ZeroColor.NRGBA()
	h.ExplosionClip = spec.ExplosionClip
	h.ExplosionDuration = spec.ExplosionDuration
	h.ExplosionRadius = spec.ExplosionRadius
}

func addShell(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ShellComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode shell spec: %w", err)
	}
	return ecs.Add(w, e, component.ShellComponent, &component.Shell{
		MaxDamage:       spec.MaxDamage,
		ExplosionForce:  spec.ExplosionForce,
		ExplosionRadius: spec.ExplosionRadius,
		EffectDuration:  spec.EffectDuration,
		ExplosionClip:   spec.ExplosionClip,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	camera := component.Camera{Aspect: float64(common.BaseWidth) / float64(common.BaseHeight)}
	applyCameraSpec(&camera, spec)
	camera.Size = camera.MinSize
	return ecs.Add(w, e, component.CameraComponent, &camera)
}

func applyCameraSpec(c *component.Camera, spec prefabs.CameraComponentSpec) {
	c.DampTime = spec.DampTime
	if c.DampTime <= 0 {
		c.DampTime = 0.2
	}
	c.ScreenEdgeBuffer = spec.ScreenEdgeBuffer
	c.MinSize = spec.MinSize
}

func addAudio(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AudioComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode audio spec: %w", err)
	}
	if spec.Volume <= 0 {
		spec.Volume = 1
	}
	return ecs.Add(w, e, component.AudioComponent, &component.Audio{Volume: spec.Volume})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent, &component.Input{})
}

func addTutorial(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TutorialComponent, &component.Tutorial{})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent, &component.TTL{Remaining: spec.Seconds})
}
