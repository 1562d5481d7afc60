package hud

import (
	"testing"

	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/assert"
)

func TestScreenFor(t *testing.T) {
	tests := []struct {
		name  string
		match *component.Match
		want  Screen
	}{
		{"no_match", nil, ScreenStart},
		{"waiting", &component.Match{Phase: component.PhaseWaiting}, ScreenStart},
		{"round_starting", &component.Match{Phase: component.PhaseRoundStarting}, ScreenNone},
		{"playing", &component.Match{Phase: component.PhaseRoundPlaying}, ScreenNone},
		{"match_over", &component.Match{Phase: component.PhaseMatchOver}, ScreenNone},
		{"game_over", &component.Match{Phase: component.PhaseGameOver, GameOver: true}, ScreenEnd},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScreenFor(tc.match))
		})
	}
}

func TestMessageHiddenBehindOverlays(t *testing.T) {
	assert.Equal(t, "ROUND 2", MessageFor(&component.Match{Phase: component.PhaseRoundStarting, Message: "ROUND 2"}))
	assert.Empty(t, MessageFor(&component.Match{Phase: component.PhaseWaiting, Message: "stale"}))
	assert.Empty(t, MessageFor(&component.Match{Phase: component.PhaseGameOver, GameOver: true, Message: "stale"}))
	assert.Empty(t, MessageFor(nil))
	assert.Equal(t, "end", ScreenEnd.String())
}
