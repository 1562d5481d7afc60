package system

import (
	"github.com/charmbracelet/log"
	"github.com/milk9111/tanks/common"
	"github.com/milk9111/tanks/ecs"
	"github.com/milk9111/tanks/ecs/component"
)

// HealthSystem keeps health indicators in step with the numbers.
type HealthSystem struct{}

func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

func (s *HealthSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.HealthComponent, func(_ ecs.Entity, health *component.Health) {
		refreshHealthIndicator(health)
	})
}

// TakeDamage subtracts amount and fires the death effects the first time
// health reaches zero. Damage after death only moves the number.
func TakeDamage(w *ecs.World, e ecs.Entity, amount float64) {
	health, ok := ecs.Get(w, e, component.HealthComponent)
	if !ok {
		return
	}
	health.Current -= amount
	refreshHealthIndicator(health)

	if health.Current <= 0 && !health.Dead {
		onDeath(w, e, health)
	}
}

// ResetHealth restores full health and the alive state.
func ResetHealth(health *component.Health) {
	health.Current = health.Starting
	health.Dead = false
	refreshHealthIndicator(health)
}

// HealthFill is the indicator colour for the current fraction of starting
// health. The fraction is not clamped.
func HealthFill(health *component.Health) common.RGBA {
	frac := 0.0
	if health.Starting != 0 {
		frac = health.Current / health.Starting
	}
	return common.LerpRGBA(common.FromColor(health.ZeroColor), common.FromColor(health.FullColor), frac)
}

func refreshHealthIndicator(health *component.Health) {
	health.Indicator.Value = health.Current
	health.Indicator.Max = health.Starting
	health.Indicator.Fill = HealthFill(health).NRGBA()
}

func onDeath(w *ecs.World, e ecs.Entity, health *component.Health) {
	health.Dead = true

	pos := entityPosition(w, e)
	spawnEffect(w, component.EffectTankExplosion, pos, health.ExplosionDuration, health.ExplosionRadius, tankExplosionColor, health.ExplosionClip)

	if tank, ok := ecs.Get(w, e, component.TankComponent); ok {
		log.Info("tank destroyed", "player", tank.PlayerNumber)
	}
	SetTankActive(w, e, false)
}
