package system

import (
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// TTLSystem counts TTL components down and destroys entities when they run
// out.
type TTLSystem struct {
	dt float64
}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{dt: common.FixedDelta}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent, func(e ecs.Entity, ttl *component.TTL) {
		ttl.Remaining -= s.dt
		if ttl.Remaining > 0 {
			return
		}
		w.DestroyEntity(e)
	})
}
