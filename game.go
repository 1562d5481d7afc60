package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/ecs/entity"
	"github.com/milk9111/tanks/ecs/render"
	"github.com/milk9111/tanks/ecs/system"
	"github.com/milk9111/tanks/hud"
	"github.com/milk9111/tanks/input"
	"github.com/milk9111/tanks/prefabs"
	"github.com/milk9111/tanks/sound"
)

// Options are the command line choices for a game.
type Options struct {
	MatchFile   string
	Players     int
	Bots        map[int]bool
	RoundsToWin int
	Watch       bool
	Debug       bool
}

// Game owns one scene at a time. A scene is a fresh world holding the match,
// arena and camera; tanks join when the start button is pressed.
type Game struct {
	opts Options
	spec *prefabs.MatchSpec

	keyboard *input.Keyboard
	audio    *sound.AudioSystem
	renderer *render.Renderer
	hud      *hud.HUD
	watcher  *prefabs.Watcher
	changed  map[string]struct{}

	world     *ecs.World
	camEntity ecs.Entity
	camera    *system.CameraSystem
	bots      *system.BotSystem
	physics   *system.PhysicsSystem
	manager   *system.GameManager
	scheduler *ecs.Scheduler

	restart bool
}

func NewGame(opts Options) (*Game, error) {
	if opts.MatchFile == "" {
		opts.MatchFile = "match.yaml"
	}
	spec, err := loadMatch(opts)
	if err != nil {
		return nil, err
	}
	players, err := selectPlayers(spec, opts.Players)
	if err != nil {
		return nil, err
	}
	opts.Players = players

	keys := newEbitenKeys()
	var bindings []input.Binding
	for n := 1; n <= opts.Players; n++ {
		if opts.Bots[n] {
			continue
		}
		b := bindingFor(n, spec.Players[n-1].Keys)
		for _, name := range []string{b.Up, b.Down, b.Left, b.Right, b.Fire} {
			if err := keys.Bind(name); err != nil {
				return nil, fmt.Errorf("game: player %d: key %q: %w", n, name, err)
			}
		}
		bindings = append(bindings, b)
	}

	g := &Game{
		opts: opts,
		spec: spec,
		keyboard: input.NewKeyboard(keys, input.Config{
			Sensitivity: spec.Input.Sensitivity,
			Gravity:     spec.Input.Gravity,
			Snap:        spec.Input.Snap,
		}, bindings...),
		audio:    sound.NewAudioSystem(sound.NewEbitenBackend()),
		renderer: render.NewRenderer(),
		changed:  make(map[string]struct{}),
	}

	g.hud, err = hud.New(hud.Options{
		Title:     strings.ToUpper(spec.Name),
		OnStart:   g.startGame,
		OnRestart: func() { g.restart = true },
	})
	if err != nil {
		return nil, err
	}

	if opts.Watch {
		g.watcher, err = prefabs.NewWatcher(prefabs.Dir, filepath.Join(prefabs.Dir, "scripts"))
		if err != nil {
			log.Warn("prefab watch disabled", "dir", prefabs.Dir, "err", err)
		}
	}

	if err := g.buildScene(); err != nil {
		return nil, err
	}
	return g, nil
}

func loadMatch(opts Options) (*prefabs.MatchSpec, error) {
	spec, err := prefabs.LoadMatchSpec(opts.MatchFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	if opts.RoundsToWin > 0 {
		spec.RoundsToWin = opts.RoundsToWin
	}
	return spec, nil
}

// selectPlayers clamps the requested tank count to what the match file
// defines, between 2 and 4.
func selectPlayers(spec *prefabs.MatchSpec, requested int) (int, error) {
	available := min(len(spec.Players), 4)
	if available < 2 {
		return 0, fmt.Errorf("game: match %q defines %d players, need at least 2", spec.Name, len(spec.Players))
	}
	if requested < 2 {
		requested = 2
	}
	return min(requested, available), nil
}

func bindingFor(player int, keys prefabs.KeyBindings) input.Binding {
	return input.Binding{
		Player: player,
		Up:     keys.Up,
		Down:   keys.Down,
		Left:   keys.Left,
		Right:  keys.Right,
		Fire:   keys.Fire,
	}
}

// buildScene replaces the world with a waiting match.
func (g *Game) buildScene() error {
	g.audio.StopAll()

	w := ecs.NewWorld()
	if _, err := entity.NewMatch(w, g.spec); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	cam, err := entity.NewCamera(w, g.spec.Camera)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	g.world = w
	g.camEntity = cam
	g.camera = system.NewCameraSystem()
	g.camera.SetAspect(w, float64(common.BaseWidth)/float64(common.BaseHeight))
	g.bots = nil
	g.physics = nil
	g.manager = nil
	g.scheduler = nil
	log.Debug("scene built", "match", g.spec.Name)
	return nil
}

// startGame spawns the tanks and opens the match.
func (g *Game) startGame() {
	if g.manager != nil {
		return
	}

	var tanks []ecs.Entity
	for n := 1; n <= g.opts.Players; n++ {
		opts := entity.TankOptions{
			Prefab: g.spec.TankPrefab,
			Number: n,
			Player: g.spec.Players[n-1],
		}
		if g.opts.Bots[n] {
			opts.BotScript = g.spec.BotScript
		}
		e, err := entity.SpawnTank(g.world, opts)
		if err != nil {
			log.Error("spawn tank", "player", n, "err", err)
			for _, t := range tanks {
				ecs.DestroyEntity(g.world, t)
			}
			return
		}
		tanks = append(tanks, e)
	}

	g.bots = system.NewBotSystem(prefabs.LoadScript)
	inputs := system.NewInputSystem(g.keyboard)
	for n := range g.opts.Bots {
		inputs.Assign(n, g.bots)
	}

	physics := system.NewPhysicsSystem()
	g.physics = physics
	g.manager = system.NewGameManager(tanks, g.camera)
	g.manager.OnRoundStart(g.applyChanges)
	g.scheduler = ecs.NewScheduler(
		g.bots,
		inputs,
		g.manager,
		system.NewMovementSystem(nil),
		system.NewShootingSystem(entity.SpawnShell),
		physics,
		system.NewShellSystem(physics),
		system.NewHealthSystem(),
		system.NewTTLSystem(),
		g.camera,
		system.NewTutorialSystem(),
		g.audio,
	)
	g.manager.Start(g.world)
}

func (g *Game) Update() error {
	for _, name := range g.watcher.Drain() {
		log.Info("prefab changed", "file", name)
		g.changed[filepath.Base(name)] = struct{}{}
	}

	g.hud.Update()
	if g.restart {
		g.restart = false
		if err := g.buildScene(); err != nil {
			return err
		}
	}

	if g.scheduler != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && hud.ScreenFor(g.match()) == hud.ScreenNone {
			g.scheduler.SetPaused(!g.scheduler.Paused())
			log.Info("pause", "paused", g.scheduler.Paused())
		}
		g.hud.SetPaused(g.scheduler.Paused())
		g.scheduler.Update(g.world)
	} else {
		g.hud.SetPaused(false)
	}
	g.hud.Sync(g.match())
	return nil
}

func (g *Game) match() *component.Match {
	e, ok := g.world.First(component.MatchComponent.Kind())
	if !ok {
		return nil
	}
	match, _ := ecs.Get(g.world, e, component.MatchComponent)
	return match
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.world, screen)
	g.hud.Draw(screen)
	if g.opts.Debug {
		if v, ok := g.renderer.View(g.world, screen); ok && g.physics != nil {
			render.DrawPhysicsDebug(g.physics.Space(), v, screen)
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f  entities: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), len(g.world.Entities())))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Close() error {
	g.audio.StopAll()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

type changeKind int

const (
	changeIgnored changeKind = iota
	changeMatch
	changeTank
	changeCamera
	changeScript
)

// classifyChange maps a changed file name to what it retunes. Shell prefabs
// are read on every shot and need nothing.
func classifyChange(name string, matchFile string, spec *prefabs.MatchSpec) changeKind {
	base := filepath.Base(name)
	switch {
	case base == filepath.Base(matchFile):
		return changeMatch
	case base == filepath.Base(spec.TankPrefab):
		return changeTank
	case base == filepath.Base(spec.Camera):
		return changeCamera
	case strings.EqualFold(filepath.Ext(base), ".tengo"):
		return changeScript
	default:
		return changeIgnored
	}
}

// applyChanges retunes the scene from the files changed since the last
// round started.
func (g *Game) applyChanges(w *ecs.World) {
	if len(g.changed) == 0 {
		return
	}
	names := make([]string, 0, len(g.changed))
	for name := range g.changed {
		names = append(names, name)
	}
	sort.Strings(names)
	clear(g.changed)

	for _, name := range names {
		switch classifyChange(name, g.opts.MatchFile, g.spec) {
		case changeMatch:
			spec, err := loadMatch(g.opts)
			if err != nil {
				log.Error("reload match", "file", name, "err", err)
				continue
			}
			g.spec.RoundsToWin, g.spec.StartDelay, g.spec.EndDelay = spec.RoundsToWin, spec.StartDelay, spec.EndDelay
			rounds := g.spec.RoundsToWin
			if match := g.match(); match != nil {
				entity.ApplyMatchSpec(match, g.spec)
				rounds = g.manager.ClampRoundsToWin(w)
			}
			log.Info("match retuned; arena and player changes apply on restart", "rounds_to_win", rounds)
		case changeTank:
			for _, e := range g.manager.Tanks() {
				if err := entity.RetuneTank(w, e, g.spec.TankPrefab); err != nil {
					log.Error("retune tank", "entity", e, "err", err)
				}
			}
			log.Info("tanks retuned", "prefab", g.spec.TankPrefab)
		case changeCamera:
			if err := entity.RetuneCamera(w, g.camEntity, g.spec.Camera); err != nil {
				log.Error("retune camera", "err", err)
				continue
			}
			g.camera.SetAspect(w, float64(common.BaseWidth)/float64(common.BaseHeight))
			log.Info("camera retuned", "prefab", g.spec.Camera)
		case changeScript:
			if g.bots != nil {
				g.bots.Reload()
			}
			log.Info("bot scripts reloaded", "file", name)
		default:
			log.Debug("prefab change needs no retune", "file", name)
		}
	}
}
