package component

import "image/color"

type EffectKind string

const (
	EffectShellExplosion EffectKind = "shell_explosion"
	EffectTankExplosion  EffectKind = "tank_explosion"
)

// Effect is a detached visual that outlives its source. It is drawn as an
// expanding ring and removed by its TTL.
type Effect struct {
	Kind     EffectKind
	Duration float64
	Radius   float64
	Color    color.NRGBA
}

var EffectComponent = NewComponent[Effect]()
