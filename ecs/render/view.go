package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/ecs/system"
)

// View maps world points to screen pixels through the camera rig.
type View struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Size     float64
	Aspect   float64
	Width    float64
	Height   float64
}

// ViewFromCamera reads the rig of camera e for a screen of width by height
// pixels.
func ViewFromCamera(w *ecs.World, e ecs.Entity, width, height float64) (View, bool) {
	cam, ok := ecs.Get(w, e, component.CameraComponent)
	if !ok {
		return View{}, false
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return View{}, false
	}
	return View{
		Position: transform.Position,
		Rotation: transform.Rotation,
		Size:     cam.Size,
		Aspect:   width / height,
		Width:    width,
		Height:   height,
	}, true
}

// Project returns the screen pixel of p. Screen y grows downward.
func (v View) Project(p mgl64.Vec3) (float64, float64) {
	vx, vy := system.ProjectToView(v.Position, v.Rotation, v.Size, v.Aspect, p)
	return v.Width/2 + vx*v.Width/2, v.Height/2 - vy*v.Height/2
}

// Depth grows with distance from the viewer.
func (v View) Depth(p mgl64.Vec3) float64 {
	rot := v.Rotation
	if rot.Len() == 0 {
		rot = mgl64.QuatIdent()
	}
	return -rot.Normalize().Inverse().Rotate(p.Sub(v.Position)).Z()
}

// PixelsPerUnit is the screen length of one world unit seen face on.
func (v View) PixelsPerUnit() float64 {
	if v.Size <= 0 {
		return 0
	}
	return v.Height / 2 / v.Size
}

// footprint returns the corners of a width by length rectangle centred on
// pos and turned by yaw, at height y.
func footprint(pos mgl64.Vec3, yaw, width, length, y float64) [4]mgl64.Vec3 {
	sin, cos := math.Sincos(yaw)
	right := mgl64.Vec3{cos, 0, -sin}
	fwd := mgl64.Vec3{sin, 0, cos}
	base := mgl64.Vec3{pos.X(), y, pos.Z()}
	hw, hl := width/2, length/2
	return [4]mgl64.Vec3{
		base.Add(fwd.Mul(hl)).Add(right.Mul(hw)),
		base.Add(fwd.Mul(hl)).Sub(right.Mul(hw)),
		base.Sub(fwd.Mul(hl)).Sub(right.Mul(hw)),
		base.Sub(fwd.Mul(hl)).Add(right.Mul(hw)),
	}
}

// arcPoints samples the arc from angle 0 to frac of a full turn around
// centre on the ground plane.
func arcPoints(centre mgl64.Vec3, radius, frac float64, segments int) []mgl64.Vec3 {
	frac = math.Max(0, math.Min(1, frac))
	n := int(math.Ceil(float64(segments) * frac))
	if n == 0 {
		return nil
	}
	out := make([]mgl64.Vec3, 0, n+1)
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * frac * float64(i) / float64(n)
		out = append(out, centre.Add(mgl64.Vec3{math.Sin(a) * radius, 0, math.Cos(a) * radius}))
	}
	return out
}
