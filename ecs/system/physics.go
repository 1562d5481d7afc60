package system

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const (
	collisionTypeTank cp.CollisionType = iota + 1
	collisionTypeShell
	collisionTypeSolid
)

const wallThickness = 0.5

// Joint limits for the control body that drags solid bodies around, scaled
// by the body's mass and moment.
const (
	driveForcePerMass   = 1000.0
	turnTorquePerMoment = 1000.0
	turnMaxBias         = 1.2
)

// PhysicsSystem owns the Chipmunk space. The ground plane maps world X to
// cp X and world Z to cp Y, and a body angle of a is a yaw of -a.
type PhysicsSystem struct {
	space         *cp.Space
	handlersReady bool
	dt            float64

	entities map[ecs.Entity]*bodyInfo
	shapes   map[*cp.Shape]ecs.Entity
	contacts []shellContact
}

type bodyInfo struct {
	body    *cp.Body
	shapes  []*cp.Shape
	static  bool
	inSpace bool

	// control is a kinematic body joined to body. Driving it instead of body
	// lets the solver weigh the drive against contacts. Sensors have none.
	control     *cp.Body
	joints      []*cp.Constraint
	constrained bool
}

type shellContact struct {
	shell ecs.Entity
	other ecs.Entity
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		dt:       common.FixedDelta,
		entities: make(map[ecs.Entity]*bodyInfo),
		shapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if ps.space == nil {
		ps.space = newSpace()
		ps.handlersReady = false
	}

	ps.ensureHandlers()
	ps.cleanupEntities(w)
	ps.syncArena(w)
	ps.syncEntities(w)
	ps.applyMoves(w)

	ps.contacts = ps.contacts[:0]
	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushContacts(w)
}

// ToPlane projects a world position onto the physics plane.
func ToPlane(x, z float64) cp.Vector {
	return cp.Vector{X: x, Y: z}
}

// EntitiesInRadius returns each entity owning a shape within radius of
// point, measured to the shape's surface. Shapes without an entity are
// skipped.
func (ps *PhysicsSystem) EntitiesInRadius(point cp.Vector, radius float64) []ecs.Entity {
	if ps == nil || ps.space == nil || radius <= 0 {
		return nil
	}
	var out []ecs.Entity
	seen := make(map[ecs.Entity]struct{})
	ps.space.BBQuery(cp.NewBBForCircle(point, radius), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		e, ok := ps.shapes[shape]
		if !ok {
			return
		}
		if shape.PointQuery(point).Distance > radius {
			return
		}
		if _, dup := seen[e]; dup {
			return
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}, nil)
	return out
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady || ps.space == nil {
		return
	}

	for _, other := range []cp.CollisionType{collisionTypeTank, collisionTypeSolid} {
		handler := ps.space.NewCollisionHandler(collisionTypeShell, other)
		handler.UserData = ps
		// Sensors still run pre-solve every step, so a shell passing over a
		// tank keeps reporting and the shell system decides on height.
		handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
			sys, ok := userData.(*PhysicsSystem)
			if !ok || sys == nil {
				return true
			}
			shapeA, shapeB := arb.Shapes()
			shell, okA := sys.shapes[shapeA]
			if !okA {
				return true
			}
			sys.contacts = append(sys.contacts, shellContact{shell: shell, other: sys.shapes[shapeB]})
			return true
		}
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncArena(w *ecs.World) {
	arenaEntity, ok := w.First(component.ArenaComponent.Kind())
	if !ok {
		return
	}
	if _, exists := ps.entities[arenaEntity]; exists {
		return
	}
	arena, ok := ecs.Get(w, arenaEntity, component.ArenaComponent)
	if !ok || arena.MaxX <= arena.MinX || arena.MaxZ <= arena.MinZ {
		return
	}

	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: ToPlane(arena.MinX, arena.MinZ), b: ToPlane(arena.MaxX, arena.MinZ)},
		{a: ToPlane(arena.MinX, arena.MaxZ), b: ToPlane(arena.MaxX, arena.MaxZ)},
		{a: ToPlane(arena.MinX, arena.MinZ), b: ToPlane(arena.MinX, arena.MaxZ)},
		{a: ToPlane(arena.MaxX, arena.MinZ), b: ToPlane(arena.MaxX, arena.MaxZ)},
	}

	info := &bodyInfo{static: true, body: ps.space.StaticBody, inSpace: true}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, wallThickness)
		shape.SetFriction(0.8)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.shapes[shape] = arenaEntity
		info.shapes = append(info.shapes, shape)
	}
	ps.entities[arenaEntity] = info
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}

		info := ps.entities[e]
		if info == nil {
			info = ps.createBodyInfo(e, transform, bodyComp, ecs.Has(w, e, component.TankTagComponent), ecs.Has(w, e, component.ShellTagComponent))
			if info == nil {
				continue
			}
			ps.entities[e] = info
			bodyComp.Body = info.body
			bodyComp.Shape = info.shapes[0]
		}

		if info.static {
			continue
		}

		if bodyComp.Teleport {
			pos := ToPlane(transform.Position.X(), transform.Position.Z())
			for _, body := range []*cp.Body{info.body, info.control} {
				if body == nil {
					continue
				}
				body.SetPosition(pos)
				body.SetAngle(-transform.Yaw())
				body.SetVelocityVector(cp.Vector{})
				body.SetAngularVelocity(0)
			}
			bodyComp.Teleport = false
		}

		bodyType := cp.BODY_DYNAMIC
		if bodyComp.Kinematic {
			bodyType = cp.BODY_KINEMATIC
		}
		if info.body.GetType() != bodyType {
			// a joint between two kinematic bodies has no finite mass to solve
			ps.setConstrained(info, false)
			info.body.SetType(bodyType)
		}

		ps.setInSpace(info, !bodyComp.Disabled)
		ps.setConstrained(info, info.inSpace && bodyType == cp.BODY_DYNAMIC)
	}
}

func (ps *PhysicsSystem) setInSpace(info *bodyInfo, in bool) {
	if info.inSpace == in {
		return
	}
	if in {
		ps.space.AddBody(info.body)
		for _, shape := range info.shapes {
			ps.space.AddShape(shape)
		}
		if info.control != nil {
			ps.space.AddBody(info.control)
		}
	} else {
		ps.setConstrained(info, false)
		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
		}
		ps.space.RemoveBody(info.body)
		if info.control != nil {
			ps.space.RemoveBody(info.control)
		}
	}
	info.inSpace = in
}

func (ps *PhysicsSystem) setConstrained(info *bodyInfo, on bool) {
	if info.control == nil || info.constrained == on {
		return
	}
	if on {
		info.control.SetPosition(info.body.Position())
		info.control.SetAngle(info.body.Angle())
		for _, joint := range info.joints {
			ps.space.AddConstraint(joint)
		}
	} else {
		for _, joint := range info.joints {
			ps.space.RemoveConstraint(joint)
		}
	}
	info.constrained = on
}

// newControl joins a kinematic control body to body. The pivot carries no
// positional bias, so only velocities are matched.
func newControl(body *cp.Body, mass, moment float64) (*cp.Body, []*cp.Constraint) {
	control := cp.NewKinematicBody()
	control.SetPosition(body.Position())
	control.SetAngle(body.Angle())

	pivot := cp.NewPivotJoint2(control, body, cp.Vector{}, cp.Vector{})
	pivot.SetMaxBias(0)
	pivot.SetMaxForce(driveForcePerMass * mass)

	gear := cp.NewGearJoint(control, body, 0, 1)
	gear.SetErrorBias(0)
	gear.SetMaxBias(turnMaxBias)
	gear.SetMaxForce(turnTorquePerMoment * moment)

	return control, []*cp.Constraint{pivot, gear}
}

func (ps *PhysicsSystem) createBodyInfo(e ecs.Entity, transform *component.Transform, bodyComp *component.PhysicsBody, isTank, isShell bool) *bodyInfo {
	pos := ToPlane(transform.Position.X(), transform.Position.Z())
	radius := bodyComp.Radius
	width := bodyComp.Width
	length := bodyComp.Length
	if radius <= 0 && (width <= 0 || length <= 0) {
		radius = 0.5
	}

	collisionType := collisionTypeSolid
	switch {
	case isTank:
		collisionType = collisionTypeTank
	case isShell:
		collisionType = collisionTypeShell
	}

	info := &bodyInfo{static: bodyComp.Static}

	if bodyComp.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, pos)
		} else {
			bb := cp.BB{L: pos.X - width/2, B: pos.Y - length/2, R: pos.X + width/2, T: pos.Y + length/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetElasticity(bodyComp.Elasticity)
		shape.SetCollisionType(collisionType)
		shape.SetSensor(bodyComp.Sensor)
		ps.space.AddShape(shape)
		ps.shapes[shape] = e

		info.body = ps.space.StaticBody
		info.shapes = []*cp.Shape{shape}
		info.inSpace = true
		return info
	}

	mass := bodyComp.Mass
	if mass <= 0 {
		mass = 1
	}
	var moment float64
	if radius > 0 {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, width, length)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(pos)
	body.SetAngle(-transform.Yaw())
	body.UserData = e

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, length, 0)
	}
	// shape mass lets SetType rebuild the body mass after a kinematic spell
	shape.SetMass(mass)
	shape.SetFriction(bodyComp.Friction)
	shape.SetElasticity(bodyComp.Elasticity)
	shape.SetCollisionType(collisionType)
	shape.SetSensor(bodyComp.Sensor)
	ps.shapes[shape] = e

	info.body = body
	info.shapes = []*cp.Shape{shape}
	if !bodyComp.Sensor {
		info.control, info.joints = newControl(body, mass, moment)
	}
	if !bodyComp.Disabled {
		ps.setInSpace(info, true)
	}
	return info
}

// applyMoves hands drive velocities to the control bodies and folds pending
// impulses into the external velocity so the next drive update keeps them.
// Sensors have no contacts to respect and are moved directly.
func (ps *PhysicsSystem) applyMoves(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, bodyComp *component.PhysicsBody) {
		info := ps.entities[e]
		if info == nil || info.static || !info.inSpace {
			bodyComp.Impulses = bodyComp.Impulses[:0]
			return
		}
		body := info.body

		if bodyComp.Kinematic {
			bodyComp.ExternalVelocity = cp.Vector{}
			body.SetVelocityVector(cp.Vector{})
			body.SetAngularVelocity(0)
			bodyComp.Impulses = bodyComp.Impulses[:0]
			return
		}

		if info.control == nil {
			base := bodyComp.DriveVelocity.Add(bodyComp.ExternalVelocity)
			body.SetVelocityVector(base)
			body.SetAngularVelocity(bodyComp.AngularVelocity)
			for _, imp := range bodyComp.Impulses {
				body.ApplyImpulseAtWorldPoint(imp.Impulse, imp.Point)
			}
			if len(bodyComp.Impulses) > 0 {
				bodyComp.ExternalVelocity = bodyComp.ExternalVelocity.Add(body.Velocity().Sub(base))
			}
		} else {
			for _, imp := range bodyComp.Impulses {
				body.ApplyImpulseAtWorldPoint(imp.Impulse, imp.Point)
				bodyComp.ExternalVelocity = bodyComp.ExternalVelocity.Add(imp.Impulse.Mult(1 / body.Mass()))
			}
			info.control.SetAngle(body.Angle())
			info.control.SetVelocityVector(bodyComp.DriveVelocity.Add(bodyComp.ExternalVelocity))
			info.control.SetAngularVelocity(bodyComp.AngularVelocity)
		}
		if len(bodyComp.Impulses) > 0 {
			log.Debug("impulse applied", "entity", e, "external", bodyComp.ExternalVelocity)
		}
		bodyComp.Impulses = bodyComp.Impulses[:0]
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind()) {
		info := ps.entities[e]
		if info == nil || info.static || !info.inSpace {
			continue
		}
		bodyComp, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		transform, _ := ecs.Get(w, e, component.TransformComponent)

		pos := info.body.Position()
		transform.Position[0] = pos.X
		transform.Position[2] = pos.Y
		transform.Rotation = component.YawRotation(-info.body.Angle())

		if bodyComp.KnockbackDamping > 0 {
			decay := math.Max(0, 1-bodyComp.KnockbackDamping*ps.dt)
			bodyComp.ExternalVelocity = bodyComp.ExternalVelocity.Mult(decay)
		}
	}
}

func (ps *PhysicsSystem) flushContacts(w *ecs.World) {
	seen := make(map[shellContact]struct{}, len(ps.contacts))
	for _, c := range ps.contacts {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		w.Events().Push(ecs.Event{
			Type: ecs.EventCollision,
			Data: ecs.CollisionEvent{Entity: c.shell, Other: c.other, Kind: ecs.CollisionEventShellHit},
		})
	}
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && (ecs.Has(w, e, component.PhysicsBodyComponent) || ecs.Has(w, e, component.ArenaComponent)) {
			continue
		}
		for _, shape := range info.shapes {
			if info.inSpace {
				ps.space.RemoveShape(shape)
			}
			delete(ps.shapes, shape)
		}
		if !info.static && info.inSpace {
			ps.setConstrained(info, false)
			ps.space.RemoveBody(info.body)
			if info.control != nil {
				ps.space.RemoveBody(info.control)
			}
		}
		delete(ps.entities, e)
	}
}
