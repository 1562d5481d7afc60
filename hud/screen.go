package hud

import "github.com/milk9111/tanks/ecs/component"

// Screen is the overlay shown over the arena.
type Screen int

const (
	ScreenNone Screen = iota
	ScreenStart
	ScreenEnd
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenEnd:
		return "end"
	default:
		return "none"
	}
}

// ScreenFor picks the overlay for a match. A nil match shows the start
// screen.
func ScreenFor(match *component.Match) Screen {
	if match == nil {
		return ScreenStart
	}
	switch {
	case match.Phase == component.PhaseWaiting:
		return ScreenStart
	case match.GameOver || match.Phase == component.PhaseGameOver:
		return ScreenEnd
	default:
		return ScreenNone
	}
}

// MessageFor is the banner text for a match. Overlays replace the banner.
func MessageFor(match *component.Match) string {
	if match == nil || ScreenFor(match) != ScreenNone {
		return ""
	}
	return match.Message
}
