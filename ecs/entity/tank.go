package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
	"github.com/milk9111/tanks/ecs/system"
	"github.com/milk9111/tanks/prefabs"
)

// TankOptions picks the player slot a tank is spawned for. A non-empty
// BotScript hands the tank to the bot system instead of the keyboard.
type TankOptions struct {
	Prefab    string
	Number    int
	Player    prefabs.PlayerSpec
	BotScript string
}

func SpawnTank(w *ecs.World, opts TankOptions) (ecs.Entity, error) {
	if opts.Number <= 0 {
		return 0, fmt.Errorf("tank: player number must be positive, got %d", opts.Number)
	}
	prefab := opts.Prefab
	if prefab == "" {
		prefab = "tank.yaml"
	}

	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("tank %d: %w", opts.Number, err)
	}

	spawn := mgl64.Vec3{opts.Player.Spawn.X, 0, opts.Player.Spawn.Z}
	if err := SetEntityTransform(w, e, spawn, opts.Player.Spawn.Yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("tank %d: place: %w", opts.Number, err)
	}

	if err := ecs.Add(w, e, component.TankComponent, &component.Tank{
		PlayerNumber:  opts.Number,
		Color:         opts.Player.Color.NRGBA(),
		Active:        true,
		SpawnPosition: spawn,
		SpawnYaw:      mgl64.DegToRad(opts.Player.Spawn.Yaw),
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("tank %d: add tank: %w", opts.Number, err)
	}

	input, ok := ecs.Get(w, e, component.InputComponent)
	if !ok {
		input = &component.Input{}
		if err := ecs.Add(w, e, component.InputComponent, input); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("tank %d: add input: %w", opts.Number, err)
		}
	}
	input.PlayerNumber = opts.Number

	if opts.BotScript != "" {
		if err := ecs.Add(w, e, component.BotComponent, &component.Bot{Script: opts.BotScript}); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("tank %d: add bot: %w", opts.Number, err)
		}
		return e, nil
	}

	if err := ecs.Add(w, e, component.TutorialComponent, &component.Tutorial{
		Text:    system.TutorialText(opts.Player.MoveText, opts.Player.ShootText),
		Visible: true,
	}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("tank %d: add tutorial: %w", opts.Number, err)
	}
	return e, nil
}
