package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryClipSynthesizes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			pcm, err := Clip(name, 1)
			require.NoError(t, err)
			assert.NotEmpty(t, pcm)
			assert.Zero(t, len(pcm)%4, "whole stereo frames")
		})
	}
}

func TestClipPitchChangesLength(t *testing.T) {
	normal, err := Clip("shot_firing", 1)
	require.NoError(t, err)
	high, err := Clip("shot_firing", 2)
	require.NoError(t, err)

	assert.InDelta(t, len(normal)/2, len(high), 8)
}

func TestClipIsCached(t *testing.T) {
	a, err := Clip("engine_idle", 1.004)
	require.NoError(t, err)
	b, err := Clip("engine_idle", 0.996)
	require.NoError(t, err)
	assert.Same(t, &a[0], &b[0])
}

func TestUnknownClip(t *testing.T) {
	_, err := Clip("kazoo", 1)
	assert.Error(t, err)
}
