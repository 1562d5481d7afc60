package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

const (
	channelEngine    = "engine"
	channelWeapon    = "weapon"
	channelExplosion = "explosion"
)

var (
	shellExplosionColor = color.NRGBA{R: 0xff, G: 0xb0, B: 0x30, A: 0xff}
	tankExplosionColor  = color.NRGBA{R: 0xff, G: 0x60, B: 0x20, A: 0xff}
)

// spawnEffect creates a detached effect entity that plays clip once and is
// removed after duration seconds.
func spawnEffect(w *ecs.World, kind component.EffectKind, pos mgl64.Vec3, duration, radius float64, tint color.NRGBA, clip string) ecs.Entity {
	if duration <= 0 {
		duration = 1
	}
	e := w.CreateEntity()
	mustAdd(ecs.Add(w, e, component.TransformComponent, &component.Transform{Position: pos, Rotation: mgl64.QuatIdent()}), "effect", "transform")
	mustAdd(ecs.Add(w, e, component.EffectComponent, &component.Effect{Kind: kind, Duration: duration, Radius: radius, Color: tint}), "effect", "effect")
	mustAdd(ecs.Add(w, e, component.TTLComponent, &component.TTL{Remaining: duration}), "effect", "ttl")

	audio := &component.Audio{Volume: 1}
	audio.Play(channelExplosion, clip, 1, false)
	mustAdd(ecs.Add(w, e, component.AudioComponent, audio), "effect", "audio")
	return e
}

func mustAdd(err error, system, what string) {
	if err != nil {
		panic(system + " system: add " + what + ": " + err.Error())
	}
}

func entityPosition(w *ecs.World, e ecs.Entity) mgl64.Vec3 {
	if transform, ok := ecs.Get(w, e, component.TransformComponent); ok {
		return transform.Position
	}
	return mgl64.Vec3{}
}
