package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDamage(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		radius   float64
		max      float64
		want     float64
	}{
		{"centre", 0, 5, 100, 100},
		{"half_radius", 2.5, 5, 100, 50},
		{"edge", 5, 5, 100, 0},
		{"outside", 7, 5, 100, 0},
		{"no_radius", 1, 0, 100, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, CalculateDamage(tc.distance, tc.radius, tc.max), 1e-9)
		})
	}
}

func newTestShell(t *testing.T, w *ecs.World, pos mgl64.Vec3, velocity mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.ShellTagComponent, &component.ShellTag{}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, e, component.ShellComponent, &component.Shell{
		MaxDamage:        100,
		ExplosionForce:   60,
		ExplosionRadius:  5,
		EffectDuration:   1,
		Height:           pos.Y(),
		VerticalVelocity: velocity.Y(),
	}))
	require.NoError(t, ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Radius:        0.3,
		Mass:          0.1,
		Sensor:        true,
		DriveVelocity: ToPlane(velocity.X(), velocity.Z()),
	}))
	return e
}

func TestExplodeDamagesAndPushesTanksInRadius(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem()
	shells := NewShellSystem(physics)

	near := newTestTank(t, w, 1, mgl64.Vec3{3, 0, 0})
	far := newTestTank(t, w, 2, mgl64.Vec3{20, 0, 0})
	physics.Update(w)

	shell := w.CreateEntity()
	require.NoError(t, ecs.Add(w, shell, component.TransformComponent, &component.Transform{Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, shell, component.ShellComponent, &component.Shell{MaxDamage: 100, ExplosionForce: 60, ExplosionRadius: 5}))

	shells.Explode(w, shell)

	nearHealth, _ := ecs.Get(w, near, component.HealthComponent)
	farHealth, _ := ecs.Get(w, far, component.HealthComponent)
	assert.InDelta(t, 60.0, nearHealth.Current, 1e-6)
	assert.Equal(t, 100.0, farHealth.Current)

	nearBody, _ := ecs.Get(w, near, component.PhysicsBodyComponent)
	require.Len(t, nearBody.Impulses, 1)
	assert.Greater(t, nearBody.Impulses[0].Impulse.X, 0.0, "pushed away from the blast")

	assert.False(t, w.IsAlive(shell))
	assert.Equal(t, 1, countEffects(w, component.EffectShellExplosion))

	physics.Update(w)
	assert.Greater(t, nearBody.ExternalVelocity.X, 0.0)
}

func TestExplodeSkipsDisabledTanks(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem()
	shells := NewShellSystem(physics)

	dead := newTestTank(t, w, 1, mgl64.Vec3{1, 0, 0})
	SetTankActive(w, dead, false)
	physics.Update(w)

	shell := newTestShell(t, w, mgl64.Vec3{}, mgl64.Vec3{})
	shells.Explode(w, shell)

	health, _ := ecs.Get(w, dead, component.HealthComponent)
	assert.Equal(t, 100.0, health.Current)
}

func TestShellExplodesOnGround(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem()
	shells := NewShellSystem(physics)

	e := newTestShell(t, w, mgl64.Vec3{0, 0.05, 0}, mgl64.Vec3{0, -10, 0})
	shells.Update(w)
	assert.False(t, w.IsAlive(e))
}

func TestShellPassesOverTallerThanTank(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem()
	shells := NewShellSystem(physics)

	tank := newTestTank(t, w, 1, mgl64.Vec3{})
	e := newTestShell(t, w, mgl64.Vec3{0, 3, 0}, mgl64.Vec3{})

	hit := ecs.Event{Type: ecs.EventCollision, Data: ecs.CollisionEvent{Entity: e, Other: tank, Kind: ecs.CollisionEventShellHit}}
	w.Events().Push(hit)
	shells.Update(w)
	assert.True(t, w.IsAlive(e), "above the hull")

	shell, _ := ecs.Get(w, e, component.ShellComponent)
	shell.Height = 1
	w.Events().Push(hit)
	shells.Update(w)
	assert.False(t, w.IsAlive(e))
}

func TestShellHitsTankThroughPhysics(t *testing.T) {
	w := ecs.NewWorld()
	physics := NewPhysicsSystem()
	shells := NewShellSystem(physics)

	tank := newTestTank(t, w, 1, mgl64.Vec3{})
	shell := newTestShell(t, w, mgl64.Vec3{0, 1, -5}, mgl64.Vec3{0, 0, 20})

	for i := 0; i < 30 && w.IsAlive(shell); i++ {
		physics.Update(w)
		shells.Update(w)
	}

	assert.False(t, w.IsAlive(shell))
	health, _ := ecs.Get(w, tank, component.HealthComponent)
	assert.Less(t, health.Current, 100.0)
}
