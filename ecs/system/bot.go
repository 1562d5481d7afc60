package system

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/prefabs"
)

// ScriptLoader returns the source of a named bot script.
type ScriptLoader func(name string) ([]byte, error)

const botDispatchScript = `
update(__engine, __memory)
`

// BotSystem runs a tengo script per bot tank each tick and serves the
// result as an AxisSource for the input system.
type BotSystem struct {
	load     ScriptLoader
	runtimes map[ecs.Entity]*botRuntime

	axes    map[string]float64
	buttons map[string]bool
	prev    map[string]bool
}

type botRuntime struct {
	script   string
	compiled *tengo.Compiled
	memory   *tengo.Map

	err error

	vertical   float64
	horizontal float64
	fire       bool
}

func NewBotSystem(load ScriptLoader) *BotSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &BotSystem{
		load:     load,
		runtimes: make(map[ecs.Entity]*botRuntime),
		axes:     make(map[string]float64),
		buttons:  make(map[string]bool),
		prev:     make(map[string]bool),
	}
}

func (s *BotSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for e := range s.runtimes {
		if !w.IsAlive(e) || !ecs.Has(w, e, component.BotComponent) {
			delete(s.runtimes, e)
		}
	}

	for name, down := range s.buttons {
		s.prev[name] = down
	}

	for _, e := range w.Query(component.BotComponent.Kind(), component.TankComponent.Kind()) {
		bot, _ := ecs.Get(w, e, component.BotComponent)
		tank, _ := ecs.Get(w, e, component.TankComponent)
		n := tank.PlayerNumber

		rt := s.runtime(e, bot.Script)
		ok := rt.err == nil && tank.Active && tank.ControlEnabled
		if ok {
			if err := rt.run(buildBotEngine(w, e, rt)); err != nil {
				log.Error("bot script run", "player", n, "script", bot.Script, "err", err)
				ok = false
			}
		}
		if !ok {
			s.axes[VerticalAxis(n)] = 0
			s.axes[HorizontalAxis(n)] = 0
			s.buttons[FireButton(n)] = false
			continue
		}

		s.axes[VerticalAxis(n)] = clampAxis(rt.vertical)
		s.axes[HorizontalAxis(n)] = clampAxis(rt.horizontal)
		s.buttons[FireButton(n)] = rt.fire
	}
}

// Reload drops every compiled script. Bots recompile on their next tick
// with fresh memory.
func (s *BotSystem) Reload() {
	clear(s.runtimes)
}

// runtime returns the cached runtime for e, compiling script on first use.
// Load and compile failures are cached on the runtime and logged once.
func (s *BotSystem) runtime(e ecs.Entity, script string) *botRuntime {
	if rt, ok := s.runtimes[e]; ok && rt.script == script {
		return rt
	}

	rt := &botRuntime{
		script: script,
		memory: &tengo.Map{Value: map[string]tengo.Object{}},
	}
	rt.compiled, rt.err = s.compile(script)
	if rt.err != nil {
		log.Error("bot script load", "entity", e, "script", script, "err", rt.err)
	}
	s.runtimes[e] = rt
	return rt
}

func (s *BotSystem) compile(script string) (*tengo.Compiled, error) {
	if strings.TrimSpace(script) == "" {
		return nil, fmt.Errorf("bot has no script")
	}
	src, err := s.load(script)
	if err != nil {
		return nil, err
	}
	compiled, err := compileBotScript(src)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", script, err)
	}
	return compiled, nil
}

func compileBotScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), botDispatchScript...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

func (rt *botRuntime) run(engine *tengo.ImmutableMap) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bot script panic: %v", r)
		}
	}()
	rt.vertical, rt.horizontal, rt.fire = 0, 0, false
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__memory", rt.memory); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildBotEngine(w *ecs.World, self ecs.Entity, rt *botRuntime) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["self"] = &tengo.UserFunction{Name: "self", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tankView(w, self), nil
	}}

	values["enemies"] = &tengo.UserFunction{Name: "enemies", Value: func(args ...tengo.Object) (tengo.Object, error) {
		out := &tengo.Array{}
		for _, e := range w.Query(component.TankComponent.Kind(), component.TransformComponent.Kind()) {
			if e == self || !IsTankActive(w, e) {
				continue
			}
			out.Value = append(out.Value, tankView(w, e))
		}
		return out, nil
	}}

	values["drive"] = &tengo.UserFunction{Name: "drive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) > 0 {
			rt.vertical, _ = tengo.ToFloat64(args[0])
		}
		return tengo.UndefinedValue, nil
	}}

	values["turn"] = &tengo.UserFunction{Name: "turn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) > 0 {
			rt.horizontal, _ = tengo.ToFloat64(args[0])
		}
		return tengo.UndefinedValue, nil
	}}

	values["fire"] = &tengo.UserFunction{Name: "fire", Value: func(args ...tengo.Object) (tengo.Object, error) {
		rt.fire = len(args) == 0 || !args[0].IsFalsy()
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func tankView(w *ecs.World, e ecs.Entity) tengo.Object {
	values := map[string]tengo.Object{}
	if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
		values["x"] = &tengo.Float{Value: transform.Position.X()}
		values["z"] = &tengo.Float{Value: transform.Position.Z()}
		values["yaw"] = &tengo.Float{Value: transform.Yaw()}
	}
	if tank, ok := ecs.Get(w, e, component.TankComponent); ok {
		values["player"] = &tengo.Int{Value: int64(tank.PlayerNumber)}
	}
	if health, ok := ecs.Get(w, e, component.HealthComponent); ok {
		values["health"] = &tengo.Float{Value: health.Current}
	}
	if shooting, ok := ecs.Get(w, e, component.ShootingComponent); ok {
		values["charge"] = &tengo.Float{Value: shooting.CurrentLaunchForce}
		values["min_force"] = &tengo.Float{Value: shooting.MinLaunchForce}
		values["max_force"] = &tengo.Float{Value: shooting.MaxLaunchForce}
		values["pitch"] = &tengo.Float{Value: mgl64.DegToRad(shooting.MuzzlePitch)}
		values["charging"] = boolObject(shooting.State == component.WeaponCharging)
	}
	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func clampAxis(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}

func (s *BotSystem) Poll(float64) {}

func (s *BotSystem) Axis(name string) float64 {
	return s.axes[name]
}

func (s *BotSystem) Button(name string) bool {
	return s.buttons[name]
}

func (s *BotSystem) ButtonDown(name string) bool {
	return s.buttons[name] && !s.prev[name]
}

func (s *BotSystem) ButtonUp(name string) bool {
	return !s.buttons[name] && s.prev[name]
}
