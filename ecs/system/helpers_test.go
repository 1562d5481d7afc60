package system

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/require"
)

// newTestTank assembles a tank the way the prefab builder would, without
// touching prefab files.
func newTestTank(t *testing.T, w *ecs.World, player int, pos mgl64.Vec3) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	add := func(err error) {
		t.Helper()
		require.NoError(t, err)
	}
	add(ecs.Add(w, e, component.TankTagComponent, &component.TankTag{}))
	add(ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}))
	add(ecs.Add(w, e, component.TankComponent, &component.Tank{
		PlayerNumber:  player,
		Color:         color.NRGBA{R: 0x2a, G: 0x64, B: 0xb2, A: 0xff},
		Active:        true,
		SpawnPosition: pos,
	}))
	add(ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
		Width: 2, Length: 3, Height: 1.6, Mass: 1, KnockbackDamping: 4,
	}))
	add(ecs.Add(w, e, component.HealthComponent, &component.Health{
		Starting:  100,
		Current:   100,
		FullColor: color.NRGBA{G: 0xff, A: 0xff},
		ZeroColor: color.NRGBA{R: 0xff, A: 0xff},
	}))
	add(ecs.Add(w, e, component.MovementComponent, &component.Movement{Speed: 12, TurnSpeed: 180, Pitch: 1}))
	add(ecs.Add(w, e, component.ShootingComponent, &component.Shooting{
		MinLaunchForce:     15,
		MaxLaunchForce:     30,
		MaxChargeTime:      0.75,
		ChargeSpeed:        20,
		MuzzleOffset:       mgl64.Vec3{0, 1.7, 1.35},
		MuzzlePitch:        10,
		ShellPrefab:        "shell.yaml",
		CurrentLaunchForce: 15,
	}))
	add(ecs.Add(w, e, component.InputComponent, &component.Input{PlayerNumber: player}))
	add(ecs.Add(w, e, component.AudioComponent, &component.Audio{Volume: 1}))
	return e
}

func newTestMatch(t *testing.T, w *ecs.World, roundsToWin int, startDelay, endDelay float64) *component.Match {
	t.Helper()
	e := w.CreateEntity()
	match := &component.Match{RoundsToWin: roundsToWin, StartDelay: startDelay, EndDelay: endDelay}
	require.NoError(t, ecs.Add(w, e, component.MatchComponent, match))
	return match
}

func newTestCamera(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := w.CreateEntity()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent, &component.Transform{Rotation: mgl64.QuatIdent()}))
	require.NoError(t, ecs.Add(w, e, component.CameraComponent, &component.Camera{
		DampTime: 0.2, ScreenEdgeBuffer: 4, MinSize: 6.5, Aspect: 16.0 / 9.0, Size: 6.5,
	}))
	return e
}

// scriptedInput is an AxisSource fed directly by tests.
type scriptedInput struct {
	axes    map[string]float64
	buttons map[string]bool
	prev    map[string]bool
	polls   int
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{axes: map[string]float64{}, buttons: map[string]bool{}, prev: map[string]bool{}}
}

func (s *scriptedInput) Poll(float64) { s.polls++ }

func (s *scriptedInput) Axis(name string) float64 { return s.axes[name] }

func (s *scriptedInput) Button(name string) bool { return s.buttons[name] }

func (s *scriptedInput) ButtonDown(name string) bool { return s.buttons[name] && !s.prev[name] }

func (s *scriptedInput) ButtonUp(name string) bool { return !s.buttons[name] && s.prev[name] }

// hold sets a button for the next tick and remembers the previous value.
func (s *scriptedInput) hold(name string, down bool) {
	s.prev[name] = s.buttons[name]
	s.buttons[name] = down
}
