package component

type Movement struct {
	Speed     float64
	TurnSpeed float64 // degrees per second

	EngineIdleClip  string
	EngineDriveClip string
	Pitch           float64
	PitchRange      float64

	Vertical      float64
	Horizontal    float64
	Driving       bool
	EngineStarted bool
	Enabled       bool
}

var MovementComponent = NewComponent[Movement]()
