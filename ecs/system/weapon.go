package system

import (
	"math"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// updateArsenal runs the per-tick weapon bookkeeping: rate cooldowns, heat
// dissipation and ammo regeneration.
func (s *PlayerSystem) updateArsenal(w *ecs.World, p *component.Player, dt float64) {
	t := w.Catalog().Weapons
	a := &p.Arsenal
	for kind, st := range a.Weapons {
		st.Cooldown.Tick(dt)
		spec, ok := t.Kinds[kind]
		if !ok || st.MaxAmmo <= 0 || st.Ammo >= st.MaxAmmo {
			continue
		}
		st.Ammo = math.Min(st.MaxAmmo, st.Ammo+spec.AmmoRegen*dt/1000)
	}
	if a.Heat > 0 {
		a.Heat = math.Max(0, a.Heat-t.HeatCool*dt/1000)
		if a.Overheated && a.Heat < t.OverheatAt*t.CoolBelow {
			a.Overheated = false
			w.Emit(ecs.Event{Type: ecs.EventWeaponCooled, Entity: p.ID, Amount: a.Heat})
		}
	}
}

// trigger drives one slot from its trigger state. Charge weapons build while
// held and fire on release; the rest fire whenever their rate allows.
func (s *PlayerSystem) trigger(w *ecs.World, p *component.Player, slot component.WeaponSlot, held bool, dt float64) {
	a := &p.Arsenal
	kind := a.Equipped(slot)
	if kind == "" {
		return
	}
	t := w.Catalog().Weapons
	spec, ok := t.Kinds[kind]
	st := a.State(kind)
	if !ok || st == nil {
		return
	}
	if spec.ChargeMs <= 0 {
		if held {
			s.fireWeapon(w, p, spec, st, 1)
		}
		return
	}

	charging := a.IsCharging && a.Charging == slot
	if held {
		if !a.IsCharging {
			if a.Overheated || !hasAmmo(spec, st) {
				return
			}
			a.IsCharging = true
			a.Charging = slot
			a.ChargeMs = 0
			charging = true
		}
		if charging {
			a.ChargeMs += dt
			a.ChargeRatio = chargeRatio(t, spec, a.ChargeMs)
		}
		return
	}
	if charging {
		ratio := a.ChargeRatio
		s.cancelCharge(p)
		s.fireWeapon(w, p, spec, st, ratio)
	}
}

// chargeRatio is the fraction of the charge time held, capped at 1 until
// the hold passes OverchargeAt charge times.
func chargeRatio(t component.WeaponTuning, spec component.WeaponSpec, held float64) float64 {
	if held > spec.ChargeMs*t.OverchargeAt {
		return t.MaxCharge
	}
	return math.Min(1, held/spec.ChargeMs)
}

func hasAmmo(spec component.WeaponSpec, st *component.WeaponState) bool {
	return spec.Ammo <= 0 || st.Ammo >= 1
}

func (s *PlayerSystem) cancelCharge(p *component.Player) {
	a := &p.Arsenal
	a.IsCharging = false
	a.ChargeMs = 0
	a.ChargeRatio = 0
}

// fireWeapon shoots one volley scaled by the charge ratio. It refuses while
// the weapon's rate cooldown runs, the arsenal is overheated or the magazine
// is empty.
func (s *PlayerSystem) fireWeapon(w *ecs.World, p *component.Player, spec component.WeaponSpec, st *component.WeaponState, ratio float64) bool {
	a := &p.Arsenal
	if st.Cooldown.Active() || a.Overheated || !hasAmmo(spec, st) {
		return false
	}
	t := w.Catalog().Weapons
	dmgScale, rateScale := t.LevelScale(st.Level)
	rate := spec.FireRate * rateScale
	if p.RapidFire.Active() {
		rate *= w.Catalog().Player.RapidFireScale
	}
	st.Cooldown.Start(rate)

	x := p.Pos.X + spec.OffsetX
	if spec.Alternate && w.RNG().Chance(0.5) {
		x = p.Pos.X - spec.OffsetX
	}
	y := p.Pos.Y - p.Shape.Radius + spec.OffsetY
	var shots []*component.Projectile
	switch {
	case spec.Beam > 0:
		shots = s.proj.FireLaser(w, x, y, playerHeading, spec.Beam, p.ID)
	case spec.Count > 1:
		shots = s.proj.FireSpread(w, x, y, playerHeading, spec.Bullet, spec.Count, spec.Spread, p.ID)
	default:
		angle := playerHeading
		if spec.Spread > 0 {
			angle += w.RNG().Centered() * spec.Spread
		}
		if b := s.proj.Fire(w, x, y, angle, spec.Bullet, p.ID); b != nil {
			shots = append(shots, b)
		}
	}

	damage := spec.Damage * dmgScale * ratio * a.ComboMult * p.Effects.DamageScale()
	for _, b := range shots {
		b.Damage = damage
		if spec.Homing > 0 {
			b.Homing = true
			b.HomingStrength = spec.Homing
		}
		if spec.Pierce {
			b.Pierce = true
			if spec.MaxPierce > 0 {
				b.MaxPierce = int(math.Floor(float64(spec.MaxPierce) + 2*ratio))
			}
		}
		if spec.BlastRadius > 0 {
			b.BlastRadius = spec.BlastRadius * ratio
		}
		if spec.Status != component.StatusNone {
			b.Status = spec.Status
		}
		if spec.SizeGain > 0 {
			b.Shape = component.Circle(b.Shape.Radius * (1 + ratio*spec.SizeGain))
		}
	}

	if spec.Ammo > 0 {
		st.Ammo = math.Max(0, st.Ammo-1)
	}
	a.Heat = math.Min(t.MaxHeat, a.Heat+spec.Heat*ratio)
	if !a.Overheated && a.Heat >= t.OverheatAt {
		a.Overheated = true
		s.cancelCharge(p)
		w.Emit(ecs.Event{Type: ecs.EventWeaponOverheated, Entity: p.ID, Kind: string(spec.Kind), Amount: a.Heat})
	}

	now := w.Now()
	if a.LastKind == spec.Kind && now-a.LastFiredAt < t.ComboWindowMs {
		a.ComboMult = math.Min(t.ComboMax, a.ComboMult+t.ComboStep)
	} else {
		a.ComboMult = 1
	}
	a.LastKind = spec.Kind
	a.LastFiredAt = now

	if len(shots) > 0 {
		p.Stats.ShotsFired++
	}
	w.Emit(ecs.Event{Type: ecs.EventWeaponFired, Entity: p.ID, Kind: string(spec.Kind), X: x, Y: y, Amount: ratio, Value: len(shots)})
	return true
}

// EquipWeapon puts an unlocked weapon in slot. An empty kind clears the
// secondary or special slot; the primary slot is never empty.
func (s *PlayerSystem) EquipWeapon(w *ecs.World, kind component.WeaponKind, slot component.WeaponSlot) bool {
	if w == nil || w.Player == nil || slot < 0 || slot >= component.NumWeaponSlots {
		return false
	}
	p := w.Player
	a := &p.Arsenal
	if kind == "" {
		if slot == component.SlotPrimary || a.Slots[slot] == "" {
			return false
		}
	} else if st := a.State(kind); st == nil || !st.Unlocked {
		return false
	}
	if a.IsCharging && a.Charging == slot {
		s.cancelCharge(p)
	}
	a.Slots[slot] = kind
	w.Emit(ecs.Event{Type: ecs.EventWeaponEquipped, Entity: p.ID, Kind: string(kind), Value: int(slot)})
	return true
}

// UnlockWeapon makes a weapon equippable and reports whether it was locked.
func (s *PlayerSystem) UnlockWeapon(w *ecs.World, kind component.WeaponKind) bool {
	if w == nil || w.Player == nil {
		return false
	}
	st := w.Player.Arsenal.State(kind)
	if st == nil || st.Unlocked {
		return false
	}
	st.Unlocked = true
	w.Emit(ecs.Event{Type: ecs.EventWeaponUnlocked, Entity: w.Player.ID, Kind: string(kind)})
	return true
}

// UnlockNextWeapon unlocks the first locked weapon in unlock order. With the
// whole arsenal open it upgrades the primary weapon instead.
func (s *PlayerSystem) UnlockNextWeapon(w *ecs.World) (component.WeaponKind, bool) {
	if w == nil || w.Player == nil {
		return "", false
	}
	a := &w.Player.Arsenal
	for _, kind := range component.WeaponKinds {
		if st := a.State(kind); st != nil && !st.Unlocked {
			return kind, s.UnlockWeapon(w, kind)
		}
	}
	primary := a.Equipped(component.SlotPrimary)
	return primary, s.UpgradeArsenalWeapon(w, primary)
}

// UpgradeArsenalWeapon raises one weapon's level. Each level multiplies its
// damage by LevelDamage and its fire interval by LevelRate. The basic cannon
// shares the weapon level of its spread pattern.
func (s *PlayerSystem) UpgradeArsenalWeapon(w *ecs.World, kind component.WeaponKind) bool {
	if w == nil || w.Player == nil {
		return false
	}
	if kind == component.WeaponBasic {
		return s.UpgradeWeapon(w)
	}
	st := w.Player.Arsenal.State(kind)
	if st == nil || st.Level >= w.Catalog().Weapons.MaxLevel {
		return false
	}
	st.Level++
	w.Emit(ecs.Event{Type: ecs.EventWeaponUpgraded, Entity: w.Player.ID, Kind: string(kind), Value: st.Level})
	return true
}
