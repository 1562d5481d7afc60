package component

import "github.com/go-gl/mathgl/mgl64"

type WeaponState int

const (
	WeaponIdle WeaponState = iota
	WeaponCharging
	WeaponFired
)

func (s WeaponState) String() string {
	switch s {
	case WeaponCharging:
		return "charging"
	case WeaponFired:
		return "fired"
	default:
		return "idle"
	}
}

type Shooting struct {
	MinLaunchForce float64
	MaxLaunchForce float64
	MaxChargeTime  float64

	// MuzzleOffset is in tank local space. MuzzlePitch raises the launch
	// direction above the tank forward, in degrees.
	MuzzleOffset mgl64.Vec3
	MuzzlePitch  float64

	ShellPrefab  string
	ChargingClip string
	FireClip     string

	State              WeaponState
	CurrentLaunchForce float64
	ChargeSpeed        float64

	AimValue   float64
	AimVisible bool
	Enabled    bool
}

var ShootingComponent = NewComponent[Shooting]()
