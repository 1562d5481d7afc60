package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name and a map of component specs keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Yaw   float64 `yaml:"yaw"`
	Pitch float64 `yaml:"pitch"`
}

type PhysicsBodyComponentSpec struct {
	Radius           float64 `yaml:"radius"`
	Width            float64 `yaml:"width"`
	Length           float64 `yaml:"length"`
	Height           float64 `yaml:"height"`
	Mass             float64 `yaml:"mass"`
	Friction         float64 `yaml:"friction"`
	Elasticity       float64 `yaml:"elasticity"`
	Static           bool    `yaml:"static"`
	Sensor           bool    `yaml:"sensor"`
	KnockbackDamping float64 `yaml:"knockback_damping"`
}

type MovementComponentSpec struct {
	Speed           float64 `yaml:"speed"`
	TurnSpeed       float64 `yaml:"turn_speed"`
	EngineIdleClip  string  `yaml:"engine_idle_clip"`
	EngineDriveClip string  `yaml:"engine_drive_clip"`
	Pitch           float64 `yaml:"pitch"`
	PitchRange      float64 `yaml:"pitch_range"`
}

type ShootingComponentSpec struct {
	MinLaunchForce float64  `yaml:"min_launch_force"`
	MaxLaunchForce float64  `yaml:"max_launch_force"`
	MaxChargeTime  float64  `yaml:"max_charge_time"`
	MuzzleOffset   Vec3Spec `yaml:"muzzle_offset"`
	MuzzlePitch    float64  `yaml:"muzzle_pitch"`
	ShellPrefab    string   `yaml:"shell_prefab"`
	ChargingClip   string   `yaml:"charging_clip"`
	FireClip       string   `yaml:"fire_clip"`
}

type HealthComponentSpec struct {
	Starting          float64   `yaml:"starting"`
	FullColor         YAMLColor `yaml:"full_color"`
	ZeroColor         YAMLColor `yaml:"zero_color"`
	ExplosionClip     string    `yaml:"explosion_clip"`
	ExplosionDuration float64   `yaml:"explosion_duration"`
	ExplosionRadius   float64   `yaml:"explosion_radius"`
}

type ShellComponentSpec struct {
	MaxDamage       float64 `yaml:"max_damage"`
	ExplosionForce  float64 `yaml:"explosion_force"`
	ExplosionRadius float64 `yaml:"explosion_radius"`
	EffectDuration  float64 `yaml:"effect_duration"`
	ExplosionClip   string  `yaml:"explosion_clip"`
}

type CameraComponentSpec struct {
	DampTime         float64 `yaml:"damp_time"`
	ScreenEdgeBuffer float64 `yaml:"screen_edge_buffer"`
	MinSize          float64 `yaml:"min_size"`
}

type TTLComponentSpec struct {
	Seconds float64 `yaml:"seconds"`
}

type AudioComponentSpec struct {
	Volume float64 `yaml:"volume"`
}
