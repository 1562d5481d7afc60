package component

import "github.com/go-gl/mathgl/mgl64"

// Camera frames its targets with an orthographic projection. Size is the
// half-height of the view in world units.
type Camera struct {
	Targets []uint64

	DampTime         float64
	ScreenEdgeBuffer float64
	MinSize          float64
	Aspect           float64

	Size         float64
	ZoomSpeed    float64
	MoveVelocity mgl64.Vec3

	// Desired is the last average of the active targets. It holds while
	// none are active.
	Desired    mgl64.Vec3
	HasDesired bool
}

var CameraComponent = NewComponent[Camera]()
