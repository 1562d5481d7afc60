// Package input turns raw key state into smoothed per-player axes.
package input

import (
	"math"

	"github.com/milk9111/tanks/ecs/system"
)

// KeyState reports whether a named key is held this tick.
type KeyState interface {
	Pressed(key string) bool
}

// Binding maps one player's controls to key names.
type Binding struct {
	Player int
	Up     string
	Down   string
	Left   string
	Right  string
	Fire   string
}

// Config tunes axis smoothing. Sensitivity and Gravity are in axis units
// per second. Snap drops the axis to zero when the direction reverses.
type Config struct {
	Sensitivity float64
	Gravity     float64
	Snap        bool
}

// Keyboard is an AxisSource backed by held keys.
type Keyboard struct {
	keys     KeyState
	cfg      Config
	bindings []Binding

	axes    map[string]float64
	buttons map[string]bool
	prev    map[string]bool
}

func NewKeyboard(keys KeyState, cfg Config, bindings ...Binding) *Keyboard {
	if cfg.Sensitivity <= 0 {
		cfg.Sensitivity = 3
	}
	if cfg.Gravity <= 0 {
		cfg.Gravity = 3
	}
	return &Keyboard{
		keys:     keys,
		cfg:      cfg,
		bindings: append([]Binding(nil), bindings...),
		axes:     make(map[string]float64),
		buttons:  make(map[string]bool),
		prev:     make(map[string]bool),
	}
}

func (k *Keyboard) Poll(dt float64) {
	if k == nil || k.keys == nil {
		return
	}
	for _, b := range k.bindings {
		k.step(system.VerticalAxis(b.Player), k.raw(b.Up, b.Down), dt)
		k.step(system.HorizontalAxis(b.Player), k.raw(b.Right, b.Left), dt)

		fire := system.FireButton(b.Player)
		k.prev[fire] = k.buttons[fire]
		k.buttons[fire] = k.pressed(b.Fire)
	}
}

func (k *Keyboard) raw(positive, negative string) float64 {
	v := 0.0
	if k.pressed(positive) {
		v++
	}
	if k.pressed(negative) {
		v--
	}
	return v
}

func (k *Keyboard) pressed(key string) bool {
	return key != "" && k.keys.Pressed(key)
}

func (k *Keyboard) step(name string, target, dt float64) {
	current := k.axes[name]
	if target == 0 {
		k.axes[name] = moveTowards(current, 0, k.cfg.Gravity*dt)
		return
	}
	if k.cfg.Snap && current != 0 && math.Signbit(current) != math.Signbit(target) {
		current = 0
	}
	k.axes[name] = moveTowards(current, target, k.cfg.Sensitivity*dt)
}

func moveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

func (k *Keyboard) Axis(name string) float64 {
	return k.axes[name]
}

func (k *Keyboard) Button(name string) bool {
	return k.buttons[name]
}

func (k *Keyboard) ButtonDown(name string) bool {
	return k.buttons[name] && !k.prev[name]
}

func (k *Keyboard) ButtonUp(name string) bool {
	return !k.buttons[name] && k.prev[name]
}
