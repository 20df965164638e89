package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	// playerHeading points the guns up the screen.
	playerHeading   = -math.Pi / 2
	laserBullet     = "player_laser"
	laserAbility    = "laser"
	laserBurstMs    = 3000.0
	laserCooldownMs = 20000.0
)

// PlayerSystem moves the player from the input snapshot, fires its weapon,
// runs the shield and handles death and respawn.
type PlayerSystem struct {
	proj *ProjectileSystem
}

func NewPlayerSystem(proj *ProjectileSystem) *PlayerSystem {
	return &PlayerSystem{proj: proj}
}

// SpawnPlayer places a fresh player at the tuned spawn point.
func (s *PlayerSystem) SpawnPlayer(w *ecs.World) *component.Player {
	if w == nil {
		return nil
	}
	t := w.Catalog().Player
	p := &component.Player{
		Body: component.Body{
			ID:       w.NewID(),
			Pos:      cp.Vector{X: t.SpawnX, Y: t.SpawnY},
			Shape:    component.Circle(t.Radius),
			Layer:    w.Config().Layers.Player,
			Active:   true,
			Rotation: playerHeading,
			Alpha:    1,
			Scale:    1,
		},
		Health:          component.NewHealth(t.Health),
		Lives:           t.Lives,
		Speed:           t.Speed,
		Acceleration:    t.Acceleration,
		Friction:        t.Friction,
		WeaponLevel:     1,
		ShieldEnergy:    t.MaxShieldEnergy,
		MaxShieldEnergy: t.MaxShieldEnergy,
		Arsenal:         component.NewArsenal(w.Catalog().Weapons),
	}
	if w.Player != nil {
		w.Unregister(w.Player.ID)
	}
	w.Player = p
	w.Register(p)
	return p
}

func (s *PlayerSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	if w.ComboTimer.Tick(dt) {
		w.Combo = 0
	}
	p := w.Player
	if p == nil {
		return
	}
	if p.Dead {
		if p.Respawn.Tick(dt) {
			s.respawn(w, p)
		}
		return
	}
	if !p.Active {
		return
	}
	p.Stats.SurvivalMs += dt
	p.Health.Tick(dt)
	p.Flash.Tick(dt)
	p.RapidFire.Tick(dt)
	p.Laser.Tick(dt)
	p.LaserCooldown.Tick(dt)
	p.Effects.Tick(dt)

	in := w.Input()
	s.move(w, p, in, dt)
	s.updateShield(w, p, in, dt)
	if in.Ability {
		s.ActivateLaser(w)
	}
	s.updateArsenal(w, p, dt)
	p.FireTimer.Tick(dt)
	if p.Arsenal.Equipped(component.SlotPrimary) == component.WeaponBasic {
		if in.Shoot && !p.FireTimer.Active() {
			s.fire(w, p)
		}
	} else {
		s.trigger(w, p, component.SlotPrimary, in.Shoot, dt)
	}
	s.trigger(w, p, component.SlotSecondary, in.Secondary, dt)
	s.trigger(w, p, component.SlotSpecial, in.Special, dt)
}

// move applies acceleration from the input vector, caps the speed, applies
// friction and keeps the ship on screen.
func (s *PlayerSystem) move(w *ecs.World, p *component.Player, in ecs.Input, dt float64) {
	if m := p.Effects.Magnitude(component.StatusShocked); m > 0 && w.RNG().Chance(m*dt/1000) {
		return
	}
	frames := common.Frames(dt)
	p.Vel = p.Vel.Add(in.Move.Mult(p.Acceleration * frames))
	if p.Vel.Length() > p.Speed {
		p.Vel = common.WithLength(p.Vel, p.Speed)
	}
	p.Vel = p.Vel.Mult(p.Friction)
	p.Pos = p.Pos.Add(p.Vel.Mult(frames * p.Effects.MoveScale()))
	r := p.Shape.Radius
	p.Pos = w.ClampToWorld(p.Pos, r, r)
}

func (s *PlayerSystem) updateShield(w *ecs.World, p *component.Player, in ecs.Input, dt float64) {
	t := w.Catalog().Player
	if p.ShieldUp {
		if p.ShieldTimer.Tick(dt) {
			p.ShieldUp = false
		}
		return
	}
	if in.Shield && p.ShieldEnergy >= t.ShieldCost {
		p.ShieldUp = true
		p.ShieldEnergy -= t.ShieldCost
		p.ShieldTimer.Start(t.ShieldDuration)
		return
	}
	if p.ShieldEnergy < p.MaxShieldEnergy {
		p.ShieldEnergy = math.Min(p.MaxShieldEnergy, p.ShieldEnergy+t.ShieldRegen*dt/1000)
	}
}

// fire shoots the basic cannon pattern for the current weapon level. It runs
// off FireTimer and never builds heat.
func (s *PlayerSystem) fire(w *ecs.World, p *component.Player) {
	t := w.Catalog().Player
	rate := t.FireRate
	if p.RapidFire.Active() {
		rate *= t.RapidFireScale
	}
	p.FireTimer.Start(rate)

	kind := t.Bullet
	if p.Laser.Active() {
		kind = laserBullet
	}
	x, y := p.Pos.X, p.Pos.Y-p.Shape.Radius
	angle := playerHeading
	var shots []*component.Projectile
	switch p.WeaponLevel {
	case 1:
		shots = s.offsets(w, x, y, angle, kind, p.ID, 0)
	case 2:
		shots = s.offsets(w, x, y, angle, kind, p.ID, -5, 5)
	case 3:
		shots = s.proj.FireSpread(w, x, y, angle, kind, 3, math.Pi/12, p.ID)
	case 4:
		shots = s.offsets(w, x, y, angle, kind, p.ID, -8, -3, 3, 8)
	default:
		shots = s.proj.FireSpread(w, x, y, angle, kind, 5, math.Pi/8, p.ID)
	}
	if scale := p.Effects.DamageScale(); scale != 1 {
		for _, b := range shots {
			b.Damage *= scale
		}
	}
	if len(shots) > 0 {
		p.Stats.ShotsFired++
	}
}

func (s *PlayerSystem) offsets(w *ecs.World, x, y, angle float64, kind string, owner ecs.Entity, dx ...float64) []*component.Projectile {
	out := make([]*component.Projectile, 0, len(dx))
	for _, d := range dx {
		if b := s.proj.Fire(w, x+d, y, angle, kind, owner); b != nil {
			out = append(out, b)
		}
	}
	return out
}

// ActivateLaser starts the laser burst unless it is running or cooling down.
func (s *PlayerSystem) ActivateLaser(w *ecs.World) bool {
	if w == nil || !w.Player.Alive() {
		return false
	}
	p := w.Player
	if p.Laser.Active() || p.LaserCooldown.Active() {
		return false
	}
	p.Laser.Start(laserBurstMs)
	p.LaserCooldown.Start(laserCooldownMs)
	w.Emit(ecs.Event{Type: ecs.EventAbilityUsed, Entity: p.ID, Kind: laserAbility, X: p.Pos.X, Y: p.Pos.Y})
	return true
}

// Die costs the player a life. It clears the player's bullets and either
// schedules the respawn or ends the game.
func (s *PlayerSystem) Die(w *ecs.World, p *component.Player, source ecs.Entity) {
	if w == nil || p == nil || p.Dead {
		return
	}
	p.Dead = true
	p.Active = false
	p.Current = 0
	p.ShieldUp = false
	p.Vel = cp.Vector{}
	p.Lives--
	if s.proj != nil {
		s.proj.ClearByOwner(w, p.ID)
	}
	w.Emit(ecs.Event{Type: ecs.EventPlayerDied, Entity: p.ID, Source: source, X: p.Pos.X, Y: p.Pos.Y, Value: p.Lives})
	if p.Lives > 0 {
		p.Respawn.Start(w.Catalog().Player.RespawnMs)
		return
	}
	w.GameOver = true
	w.Emit(ecs.Event{Type: ecs.EventGameOver, Entity: p.ID, Amount: w.Score})
	w.Logger().Printf("player: game over score=%.0f frame=%d run=%s", w.Score, w.Frame(), w.RunID)
}

func (s *PlayerSystem) respawn(w *ecs.World, p *component.Player) {
	t := w.Catalog().Player
	p.Dead = false
	p.Active = true
	p.Current = p.Max
	p.Pos = cp.Vector{X: t.SpawnX, Y: t.SpawnY}
	p.Vel = cp.Vector{}
	p.Effects = nil
	p.Flash.Stop()
	p.Laser.Stop()
	p.Arsenal.Heat = 0
	p.Arsenal.Overheated = false
	s.cancelCharge(p)
	p.StartInvulnerability(t.InvulnerableMs)
	w.Emit(ecs.Event{Type: ecs.EventPlayerRespawned, Entity: p.ID, X: p.Pos.X, Y: p.Pos.Y, Value: p.Lives})
}

// Heal restores player health and returns the amount restored.
func (s *PlayerSystem) Heal(w *ecs.World, amount float64) float64 {
	if w == nil || !w.Player.Alive() {
		return 0
	}
	return w.Player.Health.Heal(amount)
}

// UpgradeWeapon raises the weapon level and reports whether it changed.
func (s *PlayerSystem) UpgradeWeapon(w *ecs.World) bool {
	if w == nil || w.Player == nil {
		return false
	}
	p := w.Player
	if p.WeaponLevel >= w.Catalog().Player.MaxWeaponLevel {
		return false
	}
	p.WeaponLevel++
	if st := p.Arsenal.State(component.WeaponBasic); st != nil {
		st.Level = p.WeaponLevel
	}
	w.Emit(ecs.Event{Type: ecs.EventWeaponUpgraded, Entity: p.ID, Kind: string(component.WeaponBasic), Value: p.WeaponLevel})
	return true
}
