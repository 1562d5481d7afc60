package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// The physics plane maps world X to cp X and world Z to cp Y.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Radius     float64
	Width      float64
	Length     float64
	Height     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
	Sensor     bool

	// Kinematic bodies ignore impulses and keep their velocity.
	Kinematic bool
	// Disabled bodies are kept out of the space.
	Disabled bool
	// Teleport moves the body to the transform on the next step.
	Teleport bool

	DriveVelocity   cp.Vector
	AngularVelocity float64

	// ExternalVelocity is knockback layered over the drive velocity.
	ExternalVelocity cp.Vector
	KnockbackDamping float64

	Impulses []Impulse
}

// Impulse is applied at a world point on the next physics step.
type Impulse struct {
	Impulse cp.Vector
	Point   cp.Vector
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
