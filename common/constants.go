package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed update rate; every system advances by FixedDelta.
	TPS        = 60
	FixedDelta = 1.0 / TPS

	// Gravity pulls shells down along world Y, in units per second squared.
	Gravity = 9.81
)
