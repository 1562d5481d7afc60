package entity

import (
	"fmt"

	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

func NewCamera(w *ecs.World, prefab string) (ecs.Entity, error) {
	if prefab == "" {
		prefab = "camera.yaml"
	}
	e, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, e, component.CameraComponent) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("camera: prefab %q has no camera component", prefab)
	}
	return e, nil
}
