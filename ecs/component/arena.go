package component

// Arena bounds the playing field on the XZ plane.
type Arena struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

var ArenaComponent = NewComponent[Arena]()
