package sound

import (
	"errors"
	"testing"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVoice struct {
	clip    string
	pitch   float64
	loop    bool
	stopped bool
	done    bool
}

func (v *fakeVoice) Stop()         { v.stopped = true }
func (v *fakeVoice) Playing() bool { return !v.stopped && !v.done }
func (v *fakeVoice) Looping() bool { return v.loop }

type fakeBackend struct {
	voices []*fakeVoice
}

func (b *fakeBackend) Play(clip string, pitch, _ float64, loop bool) (Voice, error) {
	if clip == "missing" {
		return nil, errors.New("no clip")
	}
	v := &fakeVoice{clip: clip, pitch: pitch, loop: loop}
	b.voices = append(b.voices, v)
	return v, nil
}

func TestChannelReplacesVoice(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	a := &component.Audio{Volume: 1}
	require.NoError(t, ecs.Add(w, e, component.AudioComponent, a))
	backend := &fakeBackend{}
	s := NewAudioSystem(backend)

	a.Play("engine", "engine_idle", 1.1, true)
	s.Update(w)
	require.Len(t, backend.voices, 1)
	assert.Empty(t, a.Requests)

	a.Play("engine", "engine_driving", 0.9, true)
	a.Play("weapon", "shot_firing", 1, false)
	s.Update(w)
	require.Len(t, backend.voices, 3)
	assert.True(t, backend.voices[0].stopped, "idle replaced by driving")
	assert.False(t, backend.voices[1].stopped)
	assert.Equal(t, 0.9, backend.voices[1].pitch)

	a.Stop("engine")
	s.Update(w)
	assert.True(t, backend.voices[1].stopped)
	assert.False(t, backend.voices[2].stopped)
}

func TestDestroyedEntityStopsLoopsButLetsOneShotsFinish(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	a := &component.Audio{Volume: 1}
	require.NoError(t, ecs.Add(w, e, component.AudioComponent, a))
	backend := &fakeBackend{}
	s := NewAudioSystem(backend)

	a.Play("engine", "engine_idle", 1, true)
	a.Play("explosion", "shell_explosion", 1, false)
	s.Update(w)
	w.DestroyEntity(e)
	s.Update(w)

	assert.True(t, backend.voices[0].stopped)
	assert.False(t, backend.voices[1].stopped)
}

func TestPlayErrorsAreSkipped(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	a := &component.Audio{Volume: 1}
	require.NoError(t, ecs.Add(w, e, component.AudioComponent, a))
	s := NewAudioSystem(&fakeBackend{})

	a.Play("weapon", "missing", 1, false)
	assert.NotPanics(t, func() { s.Update(w) })
	assert.Empty(t, a.Requests)
}
