package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// CameraSystem keeps every active camera target in view by moving and
// zooming the camera rig.
type CameraSystem struct {
	camEntity ecs.Entity
	dt        float64
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{dt: common.FixedDelta}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	cam, transform, ok := cs.rig(w)
	if !ok {
		return
	}

	targets := activeTargetPositions(w, cam.Targets)
	desired := desiredPosition(cam, targets, transform.Position.Y())
	transform.Position = common.SmoothDampVec3(transform.Position, desired, &cam.MoveVelocity, cam.DampTime, cs.dt)

	required := RequiredSize(targets, desired, transform.Rotation, aspectOf(cam), cam.ScreenEdgeBuffer, cam.MinSize)
	cam.Size = common.SmoothDamp(cam.Size, required, &cam.ZoomSpeed, cam.DampTime, cs.dt)
}

// Snap places the rig on the current framing without smoothing.
func (cs *CameraSystem) Snap(w *ecs.World) {
	cam, transform, ok := cs.rig(w)
	if !ok {
		return
	}
	targets := activeTargetPositions(w, cam.Targets)
	transform.Position = desiredPosition(cam, targets, transform.Position.Y())
	cam.Size = RequiredSize(targets, transform.Position, transform.Rotation, aspectOf(cam), cam.ScreenEdgeBuffer, cam.MinSize)
	cam.MoveVelocity = mgl64.Vec3{}
	cam.ZoomSpeed = 0
}

// SetTargets replaces the framed entities.
func (cs *CameraSystem) SetTargets(w *ecs.World, targets []ecs.Entity) {
	cam, _, ok := cs.rig(w)
	if !ok {
		return
	}
	cam.Targets = cam.Targets[:0]
	for _, e := range targets {
		cam.Targets = append(cam.Targets, e.Ref())
	}
}

// SetAspect records the screen width over height.
func (cs *CameraSystem) SetAspect(w *ecs.World, aspect float64) {
	if cam, _, ok := cs.rig(w); ok && aspect > 0 {
		cam.Aspect = aspect
	}
}

func (cs *CameraSystem) rig(w *ecs.World) (*component.Camera, *component.Transform, bool) {
	if w == nil {
		return nil, nil, false
	}
	if !w.IsAlive(cs.camEntity) {
		e, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return nil, nil, false
		}
		cs.camEntity = e
	}
	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent)
	if !ok {
		return nil, nil, false
	}
	transform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent)
	if !ok {
		return nil, nil, false
	}
	return cam, transform, true
}

func aspectOf(cam *component.Camera) float64 {
	if cam.Aspect > 0 {
		return cam.Aspect
	}
	return float64(common.BaseWidth) / float64(common.BaseHeight)
}

func activeTargetPositions(w *ecs.World, targets []uint64) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(targets))
	for _, raw := range targets {
		e := ecs.EntityFromRef(raw)
		if !w.IsAlive(e) {
			continue
		}
		if tank, ok := ecs.Get(w, e, component.TankComponent); ok && !tank.Active {
			continue
		}
		if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
			out = append(out, transform.Position)
		}
	}
	return out
}

// desiredPosition updates the remembered framing centre from the active
// targets and returns it at rigY.
func desiredPosition(cam *component.Camera, targets []mgl64.Vec3, rigY float64) mgl64.Vec3 {
	if len(targets) > 0 || !cam.HasDesired {
		cam.Desired = AveragePosition(targets, rigY)
		cam.HasDesired = true
	}
	desired := cam.Desired
	desired[1] = rigY
	return desired
}

// AveragePosition is the mean of targets with Y pinned to rigY. With no
// targets it is the origin at rigY.
func AveragePosition(targets []mgl64.Vec3, rigY float64) mgl64.Vec3 {
	var sum mgl64.Vec3
	for _, p := range targets {
		sum = sum.Add(p)
	}
	if len(targets) > 0 {
		sum = sum.Mul(1 / float64(len(targets)))
	}
	sum[1] = rigY
	return sum
}

// RequiredSize is the orthographic half-height that shows every target
// around desired, padded by buffer and floored at minSize.
func RequiredSize(targets []mgl64.Vec3, desired mgl64.Vec3, rotation mgl64.Quat, aspect, buffer, minSize float64) float64 {
	inv := normalizedRotation(rotation).Inverse()
	size := 0.0
	for _, p := range targets {
		local := inv.Rotate(p.Sub(desired))
		size = math.Max(size, math.Abs(local.Y()))
		size = math.Max(size, math.Abs(local.X())/aspect)
	}
	size += buffer
	return math.Max(size, minSize)
}

// ProjectToView maps a world point to view coordinates in [-1, 1] on both
// axes when the point is inside the frame. Y grows upward. The rig looks
// along its local -Z.
func ProjectToView(rigPos mgl64.Vec3, rotation mgl64.Quat, size, aspect float64, point mgl64.Vec3) (float64, float64) {
	if size <= 0 || aspect <= 0 {
		return 0, 0
	}
	local := normalizedRotation(rotation).Inverse().Rotate(point.Sub(rigPos))
	return local.X() / (size * aspect), local.Y() / size
}

func normalizedRotation(q mgl64.Quat) mgl64.Quat {
	if q.Len() == 0 {
		return mgl64.QuatIdent()
	}
	return q.Normalize()
}
