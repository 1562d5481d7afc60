package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type heldKeys map[string]bool

func (h heldKeys) Pressed(key string) bool { return h[key] }

const dt = 1.0 / 60

func wasd(player int) Binding {
	return Binding{Player: player, Up: "W", Down: "S", Left: "A", Right: "D", Fire: "Space"}
}

func TestKeyboardAxisRampsUpAndDown(t *testing.T) {
	keys := heldKeys{}
	k := NewKeyboard(keys, Config{Sensitivity: 3, Gravity: 3}, wasd(1))

	keys["W"] = true
	k.Poll(dt)
	assert.InDelta(t, 0.05, k.Axis("Vertical1"), 1e-9)

	for i := 0; i < 30; i++ {
		k.Poll(dt)
	}
	assert.Equal(t, 1.0, k.Axis("Vertical1"), "clamped at full")

	keys["W"] = false
	k.Poll(dt)
	assert.InDelta(t, 0.95, k.Axis("Vertical1"), 1e-9)
	for i := 0; i < 30; i++ {
		k.Poll(dt)
	}
	assert.Equal(t, 0.0, k.Axis("Vertical1"))
}

func TestKeyboardSnapOnReverse(t *testing.T) {
	tests := []struct {
		name string
		snap bool
		want float64
	}{
		{"snap", true, -0.05},
		{"no_snap", false, 0.95},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			keys := heldKeys{"D": true}
			k := NewKeyboard(keys, Config{Sensitivity: 3, Gravity: 3, Snap: tc.snap}, wasd(1))
			for i := 0; i < 30; i++ {
				k.Poll(dt)
			}
			keys["D"] = false
			keys["A"] = true
			k.Poll(dt)
			assert.InDelta(t, tc.want, k.Axis("Horizontal1"), 1e-9)
		})
	}
}

func TestKeyboardOpposingKeysCancel(t *testing.T) {
	keys := heldKeys{"W": true, "S": true}
	k := NewKeyboard(keys, Config{}, wasd(1))
	k.Poll(dt)
	assert.Zero(t, k.Axis("Vertical1"))
}

func TestKeyboardFireEdges(t *testing.T) {
	keys := heldKeys{}
	k := NewKeyboard(keys, Config{}, wasd(1), Binding{Player: 2, Fire: "Enter"})

	keys["Space"] = true
	k.Poll(dt)
	assert.True(t, k.Button("Fire1"))
	assert.True(t, k.ButtonDown("Fire1"))
	assert.False(t, k.Button("Fire2"))

	k.Poll(dt)
	assert.True(t, k.Button("Fire1"))
	assert.False(t, k.ButtonDown("Fire1"))

	keys["Space"] = false
	k.Poll(dt)
	assert.True(t, k.ButtonUp("Fire1"))
	assert.False(t, k.Button("Fire1"))
}
