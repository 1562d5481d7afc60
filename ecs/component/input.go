package component

// Input is the per-tick control state of one player.
type Input struct {
	PlayerNumber int

	Vertical   float64
	Horizontal float64
	Fire       bool
	FireDown   bool
	FireUp     bool
}

var InputComponent = NewComponent[Input]()
