package system

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// StepStatus is the result of ticking one phase of the match.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepComplete
)

// GameManager runs rounds until a tank reaches the win threshold. Each phase
// is a step ticked once per update; waits are tracked as elapsed time.
type GameManager struct {
	tanks  []ecs.Entity
	camera *CameraSystem
	dt     float64

	entered bool
	elapsed float64

	onRoundStart func(w *ecs.World)
}

func NewGameManager(tanks []ecs.Entity, camera *CameraSystem) *GameManager {
	return &GameManager{
		tanks:  append([]ecs.Entity(nil), tanks...),
		camera: camera,
		dt:     common.FixedDelta,
	}
}

func (g *GameManager) Tanks() []ecs.Entity {
	return append([]ecs.Entity(nil), g.tanks...)
}

// OnRoundStart registers fn to run at the top of every round, before the
// tanks are reset.
func (g *GameManager) OnRoundStart(fn func(w *ecs.World)) {
	g.onRoundStart = fn
}

// Start frames the tanks, opens a new match and begins the first round.
func (g *GameManager) Start(w *ecs.World) {
	match, ok := matchState(w)
	if !ok {
		return
	}
	if g.camera != nil {
		g.camera.SetTargets(w, g.tanks)
	}
	for _, e := range g.tanks {
		if tank, ok := ecs.Get(w, e, component.TankComponent); ok {
			tank.Wins = 0
		}
	}
	match.ID = uuid.NewString()
	match.Round = 0
	match.RoundWinner = 0
	match.MatchWinner = 0
	match.GameOver = false
	match.Message = ""
	g.enter(match, component.PhaseRoundStarting)
	log.Info("match started", "match", match.ID, "tanks", len(g.tanks), "rounds_to_win", match.RoundsToWin)
}

func (g *GameManager) Update(w *ecs.World) {
	if g == nil || w == nil {
		return
	}
	match, ok := matchState(w)
	if !ok {
		return
	}

	switch match.Phase {
	case component.PhaseRoundStarting:
		if g.roundStarting(w, match) == StepComplete {
			g.enter(match, component.PhaseRoundPlaying)
		}
	case component.PhaseRoundPlaying:
		if g.roundPlaying(w, match) == StepComplete {
			g.enter(match, component.PhaseRoundEnding)
		}
	case component.PhaseRoundEnding:
		if g.roundEnding(w, match) == StepComplete {
			if match.MatchWinner != 0 {
				g.enter(match, component.PhaseMatchOver)
			} else {
				g.enter(match, component.PhaseRoundStarting)
			}
		}
	case component.PhaseMatchOver:
		if g.matchOver(match) == StepComplete {
			g.enter(match, component.PhaseGameOver)
			match.GameOver = true
			log.Info("game over", "match", match.ID)
		}
	}
}

func (g *GameManager) enter(match *component.Match, phase component.MatchPhase) {
	log.Debug("match phase", "from", match.Phase, "to", phase)
	match.Phase = phase
	g.entered = false
	g.elapsed = 0
}

// begin reports whether this is the first tick of the current phase and
// advances the phase clock otherwise.
func (g *GameManager) begin() bool {
	if !g.entered {
		g.entered = true
		return true
	}
	g.elapsed += g.dt
	return false
}

func (g *GameManager) roundStarting(w *ecs.World, match *component.Match) StepStatus {
	if g.begin() {
		if g.onRoundStart != nil {
			g.onRoundStart(w)
		}
		for _, e := range g.tanks {
			ResetTank(w, e)
			DisableControl(w, e)
		}
		if g.camera != nil {
			g.camera.Snap(w)
		}
		match.Round++
		match.RoundWinner = 0
		match.Message = "ROUND " + strconv.Itoa(match.Round)
		log.Info("round starting", "match", match.ID, "round", match.Round)
	}
	if g.elapsed >= match.StartDelay {
		return StepComplete
	}
	return StepPending
}

func (g *GameManager) roundPlaying(w *ecs.World, match *component.Match) StepStatus {
	if g.begin() {
		for _, e := range g.tanks {
			EnableControl(w, e)
		}
		match.Message = ""
	}
	if len(ActiveTanks(w, g.tanks)) <= 1 {
		return StepComplete
	}
	return StepPending
}

func (g *GameManager) roundEnding(w *ecs.World, match *component.Match) StepStatus {
	if g.begin() {
		for _, e := range g.tanks {
			DisableControl(w, e)
		}

		match.RoundWinner = 0
		if winner, ok := g.roundWinner(w); ok {
			match.RoundWinner = winner.Ref()
			if tank, ok := ecs.Get(w, winner, component.TankComponent); ok {
				tank.Wins++
			}
		}
		if winner, ok := g.matchWinner(w, match.RoundsToWin); ok {
			match.MatchWinner = winner.Ref()
		}

		match.Message = g.endMessage(w, ecs.EntityFromRef(match.RoundWinner), ecs.EntityFromRef(match.MatchWinner))
		log.Info("round ended", "match", match.ID, "round", match.Round, "winner", match.RoundWinner, "match_winner", match.MatchWinner)
	}
	if g.elapsed >= match.EndDelay {
		return StepComplete
	}
	return StepPending
}

// matchOver clears the message and yields one tick before the end screen.
func (g *GameManager) matchOver(match *component.Match) StepStatus {
	if g.begin() {
		match.Message = ""
		return StepPending
	}
	return StepComplete
}

// roundWinner is the first active tank in tank order.
func (g *GameManager) roundWinner(w *ecs.World) (ecs.Entity, bool) {
	for _, e := range g.tanks {
		if IsTankActive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// ClampRoundsToWin raises the match threshold past the best current tally
// when it was lowered mid-match, and returns the threshold in effect.
func (g *GameManager) ClampRoundsToWin(w *ecs.World) int {
	match, ok := matchState(w)
	if !ok {
		return 0
	}
	best := 0
	for _, e := range g.tanks {
		if tank, ok := ecs.Get(w, e, component.TankComponent); ok {
			best = max(best, tank.Wins)
		}
	}
	if match.RoundsToWin <= best {
		log.Warn("rounds to win below current tally", "requested", match.RoundsToWin, "using", best+1)
		match.RoundsToWin = best + 1
	}
	return match.RoundsToWin
}

// matchWinner is the first tank whose tally equals roundsToWin.
func (g *GameManager) matchWinner(w *ecs.World, roundsToWin int) (ecs.Entity, bool) {
	for _, e := range g.tanks {
		if tank, ok := ecs.Get(w, e, component.TankComponent); ok && tank.Wins == roundsToWin {
			return e, true
		}
	}
	return 0, false
}

func (g *GameManager) endMessage(w *ecs.World, roundWinner, matchWinner ecs.Entity) string {
	if tank, ok := ecs.Get(w, matchWinner, component.TankComponent); ok {
		return ColoredPlayerText(tank) + " WINS THE GAME!"
	}

	var b strings.Builder
	if tank, ok := ecs.Get(w, roundWinner, component.TankComponent); ok {
		b.WriteString(ColoredPlayerText(tank) + " WINS THE ROUND!")
	} else {
		b.WriteString("DRAW!")
	}
	b.WriteString("\n\n\n\n")
	for _, e := range g.tanks {
		tank, ok := ecs.Get(w, e, component.TankComponent)
		if !ok {
			continue
		}
		b.WriteString(ColoredPlayerText(tank) + ": " + strconv.Itoa(tank.Wins) + " WINS\n")
	}
	return b.String()
}

func matchState(w *ecs.World) (*component.Match, bool) {
	if w == nil {
		return nil, false
	}
	e, ok := w.First(component.MatchComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.MatchComponent)
}
