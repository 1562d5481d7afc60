// Package assets synthesizes the game's sound clips. Clips are 16-bit
// little-endian stereo PCM at SampleRate.
package assets

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync"
)

const SampleRate = 44100

// voice shapes one synthesized clip. Frequencies and duration are scaled by
// the playback pitch.
type voice struct {
	duration float64
	freq     float64
	sweep    float64 // Hz per second
	noise    float64 // 0 tone only, 1 noise only
	decay    float64 // envelope decay per second, 0 keeps full volume
	gain     float64
}

var voices = map[string]voice{
	"engine_idle":     {duration: 0.5, freq: 55, noise: 0.25, gain: 0.25},
	"engine_driving":  {duration: 0.5, freq: 82, noise: 0.35, gain: 0.3},
	"shot_charging":   {duration: 0.75, freq: 220, sweep: 520, gain: 0.3},
	"shot_firing":     {duration: 0.35, freq: 140, sweep: -260, noise: 0.6, decay: 9, gain: 0.6},
	"shell_explosion": {duration: 1.0, freq: 60, sweep: -40, noise: 0.85, decay: 4.5, gain: 0.8},
	"tank_explosion":  {duration: 1.6, freq: 45, sweep: -25, noise: 0.9, decay: 2.5, gain: 0.9},
}

type clipKey struct {
	name  string
	pitch int // hundredths
}

var (
	cacheMu sync.Mutex
	cache   = make(map[clipKey][]byte)
)

// Names lists every clip in name order.
func Names() []string {
	out := make([]string, 0, len(voices))
	for name := range voices {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clip returns the PCM for name played at pitch. Pitch is quantized to
// hundredths so repeated requests share a buffer.
func Clip(name string, pitch float64) ([]byte, error) {
	v, ok := voices[name]
	if !ok {
		return nil, fmt.Errorf("assets: unknown clip %q", name)
	}
	if pitch <= 0 {
		pitch = 1
	}
	key := clipKey{name: name, pitch: int(math.Round(pitch * 100))}

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if pcm, ok := cache[key]; ok {
		return pcm, nil
	}
	pcm := synthesize(v, float64(key.pitch)/100, seedFor(name))
	cache[key] = pcm
	return pcm, nil
}

func seedFor(name string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(name); i++ {
		h ^= uint64(name[i])
		h *= 1099511628211
	}
	return h
}

func synthesize(v voice, pitch float64, seed uint64) []byte {
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	frames := int(v.duration / pitch * SampleRate)
	out := make([]byte, frames*4)

	phase := 0.0
	smoothed := 0.0
	for i := 0; i < frames; i++ {
		t := float64(i) / SampleRate
		freq := math.Max(10, (v.freq+v.sweep*t*pitch)*pitch)
		phase += 2 * math.Pi * freq / SampleRate

		tone := math.Sin(phase) + 0.3*math.Sin(2*phase)
		// low-passed noise reads as rumble rather than hiss
		smoothed += 0.15 * (rng.Float64()*2 - 1 - smoothed)
		s := (1-v.noise)*tone + v.noise*smoothed*3

		env := 1.0
		if v.decay > 0 {
			env = math.Exp(-v.decay * t * pitch)
		}
		// short fades avoid clicks at the clip edges
		edge := math.Min(1, math.Min(float64(i), float64(frames-1-i))/64)

		sample := int16(math.Max(-1, math.Min(1, s*env*edge*v.gain)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(sample))
	}
	return out
}
