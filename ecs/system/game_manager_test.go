package system

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUntil ticks the manager until phase is reached, failing after limit
// ticks.
func runUntil(t *testing.T, g *GameManager, w *ecs.World, match *component.Match, phase component.MatchPhase, limit int) int {
	t.Helper()
	for i := 1; i <= limit; i++ {
		g.Update(w)
		if match.Phase == phase {
			return i
		}
	}
	require.FailNowf(t, "phase not reached", "wanted %s, stuck in %s", phase, match.Phase)
	return 0
}

func killTank(w *ecs.World, e ecs.Entity) {
	TakeDamage(w, e, 1000)
}

func TestGameManagerRoundFlow(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 3, 0.5, 0.5)
	cam := NewCameraSystem()
	newTestCamera(t, w)
	tanks := []ecs.Entity{
		newTestTank(t, w, 1, mgl64.Vec3{-5, 0, 0}),
		newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0}),
	}
	g := NewGameManager(tanks, cam)
	g.Start(w)

	assert.NotEmpty(t, match.ID)
	assert.Equal(t, component.PhaseRoundStarting, match.Phase)

	g.Update(w)
	assert.Equal(t, 1, match.Round)
	assert.Equal(t, "ROUND 1", match.Message)
	for _, e := range tanks {
		tank, _ := ecs.Get(w, e, component.TankComponent)
		assert.False(t, tank.ControlEnabled, "controls are off while the round starts")
	}

	runUntil(t, g, w, match, component.PhaseRoundPlaying, 100)
	g.Update(w)
	assert.Empty(t, match.Message)
	for _, e := range tanks {
		tank, _ := ecs.Get(w, e, component.TankComponent)
		assert.True(t, tank.ControlEnabled)
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		assert.False(t, body.Kinematic)
	}

	killTank(w, tanks[1])
	runUntil(t, g, w, match, component.PhaseRoundEnding, 2)
	g.Update(w)

	assert.Equal(t, uint64(tanks[0]), match.RoundWinner)
	assert.Zero(t, match.MatchWinner)
	winner, _ := ecs.Get(w, tanks[0], component.TankComponent)
	assert.Equal(t, 1, winner.Wins)
	assert.True(t, strings.HasPrefix(match.Message, "[color=2A64B2]PLAYER 1[/color] WINS THE ROUND!"), match.Message)
	assert.Contains(t, match.Message, "PLAYER 1[/color]: 1 WINS\n")
	assert.Contains(t, match.Message, "PLAYER 2[/color]: 0 WINS\n")

	runUntil(t, g, w, match, component.PhaseRoundStarting, 100)
	g.Update(w)
	assert.Equal(t, 2, match.Round)
	loser, _ := ecs.Get(w, tanks[1], component.TankComponent)
	assert.True(t, loser.Active, "tanks are reset for the next round")
	health, _ := ecs.Get(w, tanks[1], component.HealthComponent)
	assert.Equal(t, 100.0, health.Current)
	assert.False(t, health.Dead)
}

func TestGameManagerDraw(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 3, 0, 0)
	tanks := []ecs.Entity{
		newTestTank(t, w, 1, mgl64.Vec3{-5, 0, 0}),
		newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0}),
	}
	g := NewGameManager(tanks, nil)
	g.Start(w)
	runUntil(t, g, w, match, component.PhaseRoundPlaying, 10)
	g.Update(w)

	killTank(w, tanks[0])
	killTank(w, tanks[1])
	runUntil(t, g, w, match, component.PhaseRoundEnding, 2)
	g.Update(w)

	assert.Zero(t, match.RoundWinner)
	assert.True(t, strings.HasPrefix(match.Message, "DRAW!"))
	for _, e := range tanks {
		tank, _ := ecs.Get(w, e, component.TankComponent)
		assert.Zero(t, tank.Wins)
	}
}

func TestGameManagerMatchWinner(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 3, 0, 0)
	var tanks []ecs.Entity
	for i := 1; i <= 4; i++ {
		tanks = append(tanks, newTestTank(t, w, i, mgl64.Vec3{float64(i) * 4, 0, 0}))
	}
	g := NewGameManager(tanks, nil)
	g.Start(w)

	for round := 1; round <= 3; round++ {
		runUntil(t, g, w, match, component.PhaseRoundPlaying, 10)
		g.Update(w)
		// player 3 survives every round
		for i, e := range tanks {
			if i != 2 {
				killTank(w, e)
			}
		}
		runUntil(t, g, w, match, component.PhaseRoundEnding, 2)
		g.Update(w)
		assert.Equal(t, uint64(tanks[2]), match.RoundWinner)
		if round < 3 {
			assert.Zero(t, match.MatchWinner)
		}
	}

	assert.Equal(t, uint64(tanks[2]), match.MatchWinner)
	assert.Equal(t, "[color=2A64B2]PLAYER 3[/color] WINS THE GAME!", match.Message)
	// no end delay, so the final round's first ending tick already hands over
	assert.Equal(t, component.PhaseMatchOver, match.Phase)
	assert.False(t, match.GameOver)

	g.Update(w)
	assert.Empty(t, match.Message)
	assert.Equal(t, component.PhaseMatchOver, match.Phase)
	assert.False(t, match.GameOver)
	g.Update(w)
	assert.Equal(t, component.PhaseGameOver, match.Phase)
	assert.True(t, match.GameOver)

	// a restart clears the tallies and opens a new match
	oldID := match.ID
	g.Start(w)
	assert.NotEqual(t, oldID, match.ID)
	assert.Zero(t, match.MatchWinner)
	for _, e := range tanks {
		tank, _ := ecs.Get(w, e, component.TankComponent)
		assert.Zero(t, tank.Wins)
	}
}

func TestGameManagerWaitsForStartDelay(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 3, 1, 0)
	tanks := []ecs.Entity{
		newTestTank(t, w, 1, mgl64.Vec3{}),
		newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0}),
	}
	g := NewGameManager(tanks, nil)
	g.Start(w)

	ticks := runUntil(t, g, w, match, component.PhaseRoundPlaying, 200)
	// one entry tick plus a second of waiting at 60 ticks per second
	assert.InDelta(t, 61, ticks, 1)
}

func TestGameManagerRoundStartHook(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 3, 0, 0)
	tanks := []ecs.Entity{newTestTank(t, w, 1, mgl64.Vec3{}), newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0})}
	g := NewGameManager(tanks, nil)

	calls := 0
	g.OnRoundStart(func(*ecs.World) { calls++ })
	g.Start(w)
	runUntil(t, g, w, match, component.PhaseRoundPlaying, 10)
	assert.Equal(t, 1, calls)
}

func TestGameManagerWithoutMatchIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	g := NewGameManager(nil, nil)
	assert.NotPanics(t, func() {
		g.Start(w)
		g.Update(w)
	})
}

func TestClampRoundsToWin(t *testing.T) {
	tests := []struct {
		name      string
		tally     int
		requested int
		want      int
	}{
		{name: "below tally", tally: 4, requested: 3, want: 5},
		{name: "equal to tally", tally: 4, requested: 4, want: 5},
		{name: "above tally", tally: 1, requested: 3, want: 3},
		{name: "fresh match", tally: 0, requested: 1, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ecs.NewWorld()
			match := newTestMatch(t, w, tt.requested, 0, 0)
			tanks := []ecs.Entity{newTestTank(t, w, 1, mgl64.Vec3{}), newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0})}
			leader, _ := ecs.Get(w, tanks[0], component.TankComponent)
			leader.Wins = tt.tally

			g := NewGameManager(tanks, nil)
			assert.Equal(t, tt.want, g.ClampRoundsToWin(w))
			assert.Equal(t, tt.want, match.RoundsToWin)
		})
	}
}

func TestLoweredRoundsToWinStillEndsTheMatch(t *testing.T) {
	w := ecs.NewWorld()
	match := newTestMatch(t, w, 5, 0, 0)
	tanks := []ecs.Entity{newTestTank(t, w, 1, mgl64.Vec3{}), newTestTank(t, w, 2, mgl64.Vec3{5, 0, 0})}
	g := NewGameManager(tanks, nil)
	g.OnRoundStart(func(w *ecs.World) {
		if match.Round == 4 {
			match.RoundsToWin = 3
			g.ClampRoundsToWin(w)
		}
	})
	g.Start(w)

	for round := 1; round <= 5; round++ {
		runUntil(t, g, w, match, component.PhaseRoundPlaying, 10)
		g.Update(w)
		killTank(w, tanks[1])
		runUntil(t, g, w, match, component.PhaseRoundEnding, 2)
		g.Update(w)
	}

	assert.Equal(t, 5, match.RoundsToWin)
	assert.Equal(t, uint64(tanks[0]), match.MatchWinner)
	assert.Equal(t, component.PhaseMatchOver, match.Phase)
}
