package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform places an entity in the world. Y is up and tanks drive on the
// XZ plane.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()

var worldUp = mgl64.Vec3{0, 1, 0}

// YawRotation returns the rotation of yaw radians about the up axis.
func YawRotation(yaw float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, worldUp)
}

// YawPitchRotation turns by yaw about up, then tilts down by pitch. Both
// are in degrees. A camera rig built this way looks along its local -Z.
func YawPitchRotation(yawDegrees, pitchDegrees float64) mgl64.Quat {
	yaw := YawRotation(mgl64.DegToRad(yawDegrees))
	pitch := mgl64.QuatRotate(-mgl64.DegToRad(pitchDegrees), mgl64.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Forward returns the unit direction the transform faces.
func (t Transform) Forward() mgl64.Vec3 {
	return t.rotation().Rotate(mgl64.Vec3{0, 0, 1})
}

// Yaw returns the heading about the up axis in radians.
func (t Transform) Yaw() float64 {
	f := t.Forward()
	return math.Atan2(f.X(), f.Z())
}

func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}
