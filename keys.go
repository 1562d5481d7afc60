package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// ebitenKeys resolves key names from the match file to ebiten keys once and
// answers held-key queries.
type ebitenKeys struct {
	keys map[string]ebiten.Key
}

func newEbitenKeys() *ebitenKeys {
	return &ebitenKeys{keys: make(map[string]ebiten.Key)}
}

// Bind resolves name. Names are ebiten key names such as "W", "ArrowUp" or
// "Numpad0", matched without regard to case.
func (k *ebitenKeys) Bind(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := k.keys[name]; ok {
		return nil
	}
	var key ebiten.Key
	if err := key.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return err
	}
	k.keys[name] = key
	return nil
}

func (k *ebitenKeys) Pressed(name string) bool {
	key, ok := k.keys[name]
	if !ok {
		if err := k.Bind(name); err != nil {
			log.Warn("unknown key", "key", name, "err", err)
			k.keys[name] = -1
			return false
		}
		key = k.keys[name]
	}
	return key >= 0 && ebiten.IsKeyPressed(key)
}
