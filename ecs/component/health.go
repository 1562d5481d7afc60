package component

import "image/color"

type Health struct {
	Starting float64
	Current  float64
	Dead     bool

	FullColor color.NRGBA
	ZeroColor color.NRGBA

	ExplosionClip     string
	ExplosionDuration float64
	ExplosionRadius   float64

	// Indicator mirrors Current for drawing.
	Indicator HealthIndicator
}

type HealthIndicator struct {
	Value   float64
	Max     float64
	Fill    color.NRGBA
	Visible bool
}

var HealthComponent = NewComponent[Health]()
