package ecs

import "github.com/milk9111/shmup/ecs/component"

// Snapshot copies the render-facing state of the world. Nothing in the result
// aliases simulation memory.
func (w *World) Snapshot() *Snapshot {
	if w == nil {
		return nil
	}
	s := &Snapshot{
		RunID:    w.RunID.String(),
		Frame:    w.frame,
		TimeMs:   w.now,
		Score:    w.Score,
		Combo:    w.Combo,
		GameOver: w.GameOver,
	}
	s.Time = TimeView{Scale: w.timeScale, Energy: w.Time.Energy}
	for _, kind := range w.Time.Active() {
		s.Time.Active = append(s.Time.Active, string(kind))
	}
	for _, evt := range w.delivered {
		s.Events = append(s.Events, string(evt.Type))
	}
	if p := w.Player; p != nil {
		s.Player = PlayerView{
			EntityView:   view(&p.Body, "player", p.Health.Ratio(), p.Flash.Active()),
			Lives:        p.Lives,
			Current:      p.Current,
			Max:          p.Max,
			WeaponLevel:  p.WeaponLevel,
			ShieldUp:     p.ShieldUp,
			ShieldEnergy: p.ShieldEnergy,
			Invulnerable: p.IsInvulnerable(),
			Alive:        p.Alive(),
			Arsenal:      arsenalView(&p.Arsenal),
		}
	}
	for _, e := range w.Enemies {
		if e.Active {
			s.Enemies = append(s.Enemies, view(&e.Body, e.Kind, e.Health.Ratio(), e.Flash.Active()))
		}
	}
	w.Projectiles.Each(func(p *component.Projectile) {
		s.Projectiles = append(s.Projectiles, view(&p.Body, p.Kind, 1, false))
	})
	for _, h := range w.Hazards {
		if h.Active {
			ratio := 1.0
			if h.Destroyable {
				ratio = h.Health.Ratio()
			}
			s.Hazards = append(s.Hazards, view(&h.Body, h.Kind, ratio, false))
		}
	}
	for _, p := range w.Powerups {
		if p.Active {
			s.Powerups = append(s.Powerups, view(&p.Body, p.Kind, 1, false))
		}
	}
	if b := w.Boss; b != nil && !b.CleanedUp {
		bv := &BossView{
			EntityView: view(&b.Body, b.Type, b.Health.Ratio(), false),
			Type:       b.Type,
			Phase:      b.Phase,
			Phases:     b.Phases,
			State:      b.State.String(),
			Shield:     b.Shield,
			Darkness:   b.Darkness,
		}
		for i, wp := range b.WeakPoints {
			pos := b.WeakPointPos(i)
			bv.WeakPoints = append(bv.WeakPoints, WeakPointView{
				X:          pos.X,
				Y:          pos.Y,
				Size:       wp.Size,
				Health:     wp.Health.Ratio(),
				Active:     wp.Active,
				Vulnerable: wp.Vulnerable,
			})
		}
		for _, a := range b.Casting {
			if a.Remaining.Active() {
				bv.Abilities = append(bv.Abilities, string(a.ID))
			}
		}
		s.Boss = bv
	}
	s.Environment = w.Environment.Names()
	enc := &w.Encounter
	s.Wave = WaveView{
		Wave:      enc.Wave,
		Remaining: enc.EnemiesRemaining,
		Queued:    len(enc.SpawnQueue),
		Active:    enc.WaveActive,
		BossWave:  enc.BossWave,
		Progress:  enc.Progress(),
		NextWave:  enc.WaveTimer.Remaining(),
	}
	return s
}

func view(b *component.Body, kind string, health float64, flash bool) EntityView {
	v := EntityView{
		ID:       b.ID,
		Kind:     kind,
		Layer:    uint32(b.Layer),
		X:        b.Pos.X,
		Y:        b.Pos.Y,
		Rotation: b.Rotation,
		Alpha:    b.Alpha,
		Scale:    b.Scale,
		Radius:   b.Radius(),
		Health:   health,
		Flash:    flash,
	}
	if b.Shape.Kind == component.ShapeRect {
		v.Width, v.Height = b.Shape.Width, b.Shape.Height
	}
	return v
}

func arsenalView(a *component.Arsenal) ArsenalView {
	v := ArsenalView{Heat: a.Heat, Overheated: a.Overheated}
	for _, kind := range a.Slots {
		v.Slots = append(v.Slots, string(kind))
	}
	if a.IsCharging {
		v.Charge = a.ChargeRatio
	}
	for _, kind := range component.WeaponKinds {
		st := a.State(kind)
		if st == nil {
			continue
		}
		v.Weapons = append(v.Weapons, WeaponView{
			Kind:     string(kind),
			Level:    st.Level,
			Unlocked: st.Unlocked,
			Ammo:     st.Ammo,
			MaxAmmo:  st.MaxAmmo,
		})
	}
	return v
}
