package component

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// Tank is one player's actor. Tanks live for the whole match and are reset
// at every round start.
type Tank struct {
	PlayerNumber int
	Color        color.NRGBA

	// Active is false once the tank is destroyed in the current round.
	Active bool
	Wins   int

	SpawnPosition mgl64.Vec3
	SpawnYaw      float64

	// ControlEnabled is true while the round is being played.
	ControlEnabled bool
}

var TankComponent = NewComponent[Tank]()
