package component

// Shell is a fired projectile. Height and VerticalVelocity run off the
// physics plane.
type Shell struct {
	MaxDamage       float64
	ExplosionForce  float64
	ExplosionRadius float64
	EffectDuration  float64
	ExplosionClip   string

	Height           float64
	VerticalVelocity float64
	Exploded         bool
}

var ShellComponent = NewComponent[Shell]()
