package system

import (
	"math"

	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// ShellSystem flies shells above the physics plane and explodes them on
// their first contact.
type ShellSystem struct {
	physics *PhysicsSystem
	dt      float64
}

func NewShellSystem(physics *PhysicsSystem) *ShellSystem {
	return &ShellSystem{physics: physics, dt: common.FixedDelta}
}

func (s *ShellSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	contacts := make(map[ecs.Entity][]ecs.Entity)
	for _, hit := range w.Events().DrainCollisions(ecs.CollisionEventShellHit) {
		contacts[hit.Entity] = append(contacts[hit.Entity], hit.Other)
	}

	for _, e := range w.Query(component.ShellComponent.Kind(), component.TransformComponent.Kind()) {
		shell, _ := ecs.Get(w, e, component.ShellComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		if shell.Exploded {
			continue
		}

		shell.VerticalVelocity -= common.Gravity * s.dt
		shell.Height += shell.VerticalVelocity * s.dt
		transform.Position[1] = math.Max(0, shell.Height)

		hit := shell.Height <= 0
		for _, other := range contacts[e] {
			if hit {
				break
			}
			hit = s.reaches(w, shell, other)
		}
		if hit {
			s.Explode(w, e)
		}
	}
}

// reaches reports whether the shell is low enough to touch other. Shapes
// without a height, like arena walls, always count.
func (s *ShellSystem) reaches(w *ecs.World, shell *component.Shell, other ecs.Entity) bool {
	if !w.IsAlive(other) {
		return true
	}
	if ecs.Has(w, other, component.ShellComponent) {
		return false
	}
	body, ok := ecs.Get(w, other, component.PhysicsBodyComponent)
	if !ok || body.Height <= 0 {
		return true
	}
	return shell.Height <= body.Height
}

// CalculateDamage falls off linearly from maxDamage at the centre to zero at
// radius.
func CalculateDamage(distance, radius, maxDamage float64) float64 {
	if radius <= 0 {
		return 0
	}
	return math.Max(0, (radius-distance)/radius*maxDamage)
}

// Explode pushes and damages every tank body in the blast, leaves a
// detached effect behind and destroys the shell.
func (s *ShellSystem) Explode(w *ecs.World, e ecs.Entity) {
	shell, ok := ecs.Get(w, e, component.ShellComponent)
	if !ok || shell.Exploded {
		return
	}
	shell.Exploded = true
	center := entityPosition(w, e)
	radius := shell.ExplosionRadius

	for _, target := range s.physics.EntitiesInRadius(ToPlane(center.X(), center.Z()), radius) {
		if target == e || ecs.Has(w, target, component.ShellComponent) {
			continue
		}
		body, ok := ecs.Get(w, target, component.PhysicsBodyComponent)
		if !ok || body.Static {
			continue
		}
		targetPos := entityPosition(w, target)
		offset := targetPos.Sub(center)
		distance := offset.Len()

		push := ToPlane(offset.X(), offset.Z())
		if push.Length() > 0 {
			falloff := math.Max(0, 1-distance/radius)
			body.Impulses = append(body.Impulses, component.Impulse{
				Impulse: push.Normalize().Mult(shell.ExplosionForce * falloff),
				Point:   ToPlane(targetPos.X(), targetPos.Z()),
			})
		}

		if ecs.Has(w, target, component.HealthComponent) {
			TakeDamage(w, target, CalculateDamage(distance, radius, shell.MaxDamage))
		}
	}

	spawnEffect(w, component.EffectShellExplosion, center, shell.EffectDuration, radius, shellExplosionColor, shell.ExplosionClip)
	w.DestroyEntity(e)
}
