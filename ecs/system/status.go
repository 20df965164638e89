package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// StatusSystem deals the periodic damage of burning and poison. Durations
// are aged by the systems that own the affected entities.
type StatusSystem struct {
	damage *DamageResolver
}

func NewStatusSystem(damage *DamageResolver) *StatusSystem {
	return &StatusSystem{damage: damage}
}

// Apply puts the catalog tuning of kind on target. Re-applying refreshes the
// duration. Targets without a status slot are ignored.
func (s *StatusSystem) Apply(w *ecs.World, target ecs.Damageable, kind component.StatusKind) bool {
	if w == nil || target == nil || kind == component.StatusNone {
		return false
	}
	spec, ok := w.Catalog().Status[kind]
	if !ok {
		return false
	}
	if spec.Kind == component.StatusNone {
		spec.Kind = kind
	}
	effects := statusSlot(target)
	if effects == nil {
		return false
	}
	effects.Apply(spec)
	return true
}

func statusSlot(target ecs.Damageable) *component.StatusEffects {
	switch t := target.(type) {
	case *component.Enemy:
		if t.Active && !t.Dead {
			return &t.Effects
		}
	case *component.Player:
		if t.Alive() {
			return &t.Effects
		}
	}
	return nil
}

func (s *StatusSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.damage == nil || dt <= 0 {
		return
	}
	for _, e := range w.Enemies {
		if !e.Active || e.Dead {
			continue
		}
		if amount := dotAmount(e.Effects, dt); amount > 0 {
			s.damage.DamageOverTime(w, e, amount)
		}
	}
	if p := w.PlayerTarget(); p != nil {
		if amount := dotAmount(p.Effects, dt); amount > 0 {
			s.damage.DamageOverTime(w, p, amount)
		}
	}
}

// dotAmount sums the damage every periodic effect deals over dt.
func dotAmount(effects component.StatusEffects, dt float64) float64 {
	total := 0.0
	for _, e := range effects {
		if e.Kind.DamageOverTime() && e.Remaining > 0 {
			total += e.Magnitude * dt / 1000
		}
	}
	return total
}
