// Package sound plays the audio requests queued on Audio components.
package sound

import (
	"bytes"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/tanks/assets"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// Voice is one playing clip.
type Voice interface {
	Stop()
	Playing() bool
}

// Backend starts clips.
type Backend interface {
	Play(clip string, pitch, volume float64, loop bool) (Voice, error)
}

type channelKey struct {
	entity  ecs.Entity
	channel string
}

// AudioSystem gives every (entity, channel) pair at most one voice. A new
// request on a channel replaces what it was playing.
type AudioSystem struct {
	backend Backend
	voices  map[channelKey]Voice
	failed  map[string]bool
}

func NewAudioSystem(backend Backend) *AudioSystem {
	return &AudioSystem{
		backend: backend,
		voices:  make(map[channelKey]Voice),
		failed:  make(map[string]bool),
	}
}

func (s *AudioSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.AudioComponent, func(e ecs.Entity, a *component.Audio) {
		for _, req := range a.Requests {
			key := channelKey{entity: e, channel: req.Channel}
			if v, ok := s.voices[key]; ok {
				v.Stop()
				delete(s.voices, key)
			}
			if req.Stop || s.backend == nil {
				continue
			}
			v, err := s.backend.Play(req.Clip, req.Pitch, a.Volume, req.Loop)
			if err != nil {
				if !s.failed[req.Clip] {
					s.failed[req.Clip] = true
					log.Error("play clip", "clip", req.Clip, "err", err)
				}
				continue
			}
			s.voices[key] = v
		}
		a.Requests = a.Requests[:0]
	})

	for key, v := range s.voices {
		if !w.IsAlive(key.entity) || !ecs.Has(w, key.entity, component.AudioComponent) {
			// one-shots on removed entities finish on their own
			if v.Playing() && !isLooping(v) {
				continue
			}
			v.Stop()
			delete(s.voices, key)
			continue
		}
		if !v.Playing() {
			delete(s.voices, key)
		}
	}
}

// StopAll silences every voice.
func (s *AudioSystem) StopAll() {
	for key, v := range s.voices {
		v.Stop()
		delete(s.voices, key)
	}
}

func isLooping(v Voice) bool {
	l, ok := v.(interface{ Looping() bool })
	return ok && l.Looping()
}

// EbitenBackend plays synthesized clips through an ebiten audio context.
type EbitenBackend struct {
	ctx *audio.Context
}

func NewEbitenBackend() *EbitenBackend {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(assets.SampleRate)
	}
	return &EbitenBackend{ctx: ctx}
}

func (b *EbitenBackend) Play(clip string, pitch, volume float64, loop bool) (Voice, error) {
	pcm, err := assets.Clip(clip, pitch)
	if err != nil {
		return nil, err
	}

	var player *audio.Player
	if loop {
		stream := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
		player, err = b.ctx.NewPlayer(stream)
		if err != nil {
			return nil, err
		}
	} else {
		player = b.ctx.NewPlayerFromBytes(pcm)
	}
	player.SetVolume(volume)
	player.Play()
	return &ebitenVoice{player: player, loop: loop}, nil
}

type ebitenVoice struct {
	player *audio.Player
	loop   bool
}

func (v *ebitenVoice) Stop() {
	v.player.Pause()
}

func (v *ebitenVoice) Playing() bool { return v.player.IsPlaying() }

func (v *ebitenVoice) Looping() bool { return v.loop }
