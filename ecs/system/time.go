package system

import (
	"math"

	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// TimeSystem runs bullet time, freeze and accelerate and eases the world
// time scale toward the running effect's scale. It is stepped on the real
// clock ahead of every scaled system.
type TimeSystem struct{}

func NewTimeSystem() *TimeSystem {
	return &TimeSystem{}
}

func (s *TimeSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	t := w.Catalog().Time
	te := &w.Time
	if w.Input().BulletTime {
		s.Activate(w, component.TimeBulletTime, 0)
	}

	for _, kind := range component.TimeEffectKinds {
		slot := te.Slot(kind)
		slot.Cooldown.Tick(dt)
		if !slot.Active {
			continue
		}
		expired := slot.Remaining.Tick(dt)
		if kind == component.TimeBulletTime {
			te.Energy -= t.EnergyDrain * dt / 1000
			if te.Energy <= 0 {
				te.Energy = 0
				expired = true
			}
		}
		if expired {
			s.end(w, kind, slot)
		}
	}
	if !te.BulletTime.Active && te.Energy < t.MaxEnergy {
		te.Energy = math.Min(t.MaxEnergy, te.Energy+t.EnergyRegen*dt/1000)
	}

	te.Target = s.target(w)
	s.ease(w, dt)
}

// Activate starts an effect for ms milliseconds, or its tuned duration when
// ms is not positive. It fails while the effect runs or cools down, and bullet
// time also needs the minimum energy.
func (s *TimeSystem) Activate(w *ecs.World, kind component.TimeEffectKind, ms float64) bool {
	if w == nil {
		return false
	}
	t := w.Catalog().Time
	spec, ok := t.Effects[kind]
	slot := w.Time.Slot(kind)
	if !ok || slot == nil || slot.Active || slot.Cooldown.Active() {
		return false
	}
	if kind == component.TimeBulletTime && w.Time.Energy < t.MinEnergy {
		return false
	}
	if ms <= 0 {
		ms = spec.Duration
	}
	slot.Active = true
	slot.Remaining.Start(ms)
	slot.Cooldown.Start(spec.Cooldown)
	w.Time.Current = kind
	w.Time.Target = spec.Scale
	w.Emit(ecs.Event{Type: ecs.EventTimeEffectStarted, Kind: string(kind), Amount: spec.Scale, Value: int(ms)})
	return true
}

// DeactivateAll stops every effect and restores the normal scale target.
// Cooldowns keep running.
func (s *TimeSystem) DeactivateAll(w *ecs.World) {
	if w == nil {
		return
	}
	for _, kind := range component.TimeEffectKinds {
		if slot := w.Time.Slot(kind); slot.Active {
			s.end(w, kind, slot)
		}
	}
	w.Time.Target = 1
}

func (s *TimeSystem) end(w *ecs.World, kind component.TimeEffectKind, slot *component.TimeEffect) {
	slot.Active = false
	slot.Remaining.Stop()
	w.Emit(ecs.Event{Type: ecs.EventTimeEffectEnded, Kind: string(kind)})
}

// target is the scale of the most recent running effect, else the first
// running one in fallback order, else 1.
func (s *TimeSystem) target(w *ecs.World) float64 {
	te := &w.Time
	effects := w.Catalog().Time.Effects
	if slot := te.Slot(te.Current); slot != nil && slot.Active {
		return effects[te.Current].Scale
	}
	for _, kind := range component.TimeEffectKinds {
		if te.Slot(kind).Active {
			te.Current = kind
			return effects[kind].Scale
		}
	}
	te.Current = ""
	return 1
}

func (s *TimeSystem) ease(w *ecs.World, dt float64) {
	t := w.Catalog().Time
	scale, target := w.TimeScale(), w.Time.Target
	if math.Abs(scale-target) > t.SnapWithin {
		scale = common.Lerp(scale, target, common.Clamp01(t.TransitionRate*dt/1000))
	} else {
		scale = target
	}
	w.SetTimeScale(scale)
}

// comboBulletTime fires bullet time on each multiple of the tuned combo.
func (s *TimeSystem) comboBulletTime(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	t := w.Catalog().Time
	if t.ComboEvery <= 0 || w.Combo == 0 || w.Combo%t.ComboEvery != 0 {
		return
	}
	s.Activate(w, component.TimeBulletTime, t.ComboMs)
}
