package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	weakPointCooldownMs = 500.0
	weakPointBonus      = 50.0
	weakPointPenalty    = 0.3
	bossStunMs          = 3000.0
	comboPowerupBase    = 0.1
	comboPowerupStep    = 0.01
	comboPowerupMax     = 0.15
)

var comboTiers = []struct {
	threshold  int
	multiplier float64
}{
	{100, 5.0},
	{75, 4.0},
	{50, 3.0},
	{35, 2.5},
	{20, 2.0},
	{10, 1.5},
	{5, 1.2},
}

// ComboMultiplier returns the score multiplier earned by a kill streak.
func ComboMultiplier(combo int) float64 {
	for _, t := range comboTiers {
		if combo >= t.threshold {
			return t.multiplier
		}
	}
	return 1
}

// DamageResolver is the single authority for hurting anything. Every entry
// point returns the damage that actually reached health.
type DamageResolver struct {
	proj    *ProjectileSystem
	enemies *EnemySystem
	swarms  *SwarmSystem
	boss    *BossSystem
	hazards *HazardSystem
	player  *PlayerSystem
	drops   *PowerupSystem
	time    *TimeSystem
}

func NewDamageResolver() *DamageResolver { return &DamageResolver{} }

// ApplyDamage dispatches to the entry point for the target's kind.
func (r *DamageResolver) ApplyDamage(w *ecs.World, target ecs.Damageable, amount float64, source ecs.Entity) float64 {
	switch t := target.(type) {
	case *component.Enemy:
		return r.DamageEnemy(w, t, amount, source)
	case *component.Boss:
		return r.DamageBoss(w, t, amount, source)
	case *component.Player:
		return r.DamagePlayer(w, t, amount, source)
	case *component.Hazard:
		return r.DamageHazard(w, t, amount, source)
	}
	return 0
}

// DamageOverTime applies periodic status damage. It skips the hit feedback
// windows so a dot never grants immunity from other sources.
func (r *DamageResolver) DamageOverTime(w *ecs.World, target ecs.Damageable, amount float64) float64 {
	switch t := target.(type) {
	case *component.Enemy:
		return r.damageEnemy(w, t, amount, 0, false)
	case *component.Boss:
		return r.DamageBoss(w, t, amount, 0)
	case *component.Player:
		return r.damagePlayer(w, t, amount, 0, false)
	}
	return 0
}

// DamageEnemy applies a hit to an enemy: shield first, then health, then the
// kind-specific reactions and death.
func (r *DamageResolver) DamageEnemy(w *ecs.World, e *component.Enemy, amount float64, source ecs.Entity) float64 {
	return r.damageEnemy(w, e, amount, source, true)
}

func (r *DamageResolver) damageEnemy(w *ecs.World, e *component.Enemy, amount float64, source ecs.Entity, feedback bool) float64 {
	if w == nil || e == nil || !e.Active || e.Dead || amount <= 0 {
		return 0
	}
	if e.IsInvulnerable() {
		return 0
	}
	remaining := amount
	if sh := e.Shield; sh != nil && sh.Active && sh.Health > 0 {
		absorbed := math.Min(remaining, sh.Health)
		sh.Health -= absorbed
		remaining -= absorbed
		if sh.Health <= 0 {
			sh.Health = 0
			sh.Active = false
			sh.Delay.Start(sh.RegenDelay)
		}
	}

	actual := e.Health.Subtract(remaining)
	if actual > 0 {
		if rg := e.Regen; rg != nil {
			rg.Timer.Start(rg.Delay)
		}
		if ph := e.Phase; ph != nil && e.Current > 0 && !ph.Phased && !ph.CooldownTimer.Active() && e.Ratio() < ph.DamageTrigger {
			enterPhase(e)
		}
		if sp := e.Splitter; sp != nil && e.Current <= 0 {
			sp.Pending = true
		}
		if feedback {
			e.Flash.Start(enemyFlashMs)
			e.StartInvulnerability(enemyHitInvulnMs)
		}
		w.Emit(ecs.Event{Type: ecs.EventHit, Entity: e.ID, Source: source, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, Amount: actual})
		if p := w.Player; p != nil && source == p.ID {
			p.Stats.DamageDealt += actual
		}
	}
	if e.Current <= 0 {
		r.killEnemy(w, e, source)
	}
	return actual
}

// killEnemy runs the death transition exactly once.
func (r *DamageResolver) killEnemy(w *ecs.World, e *component.Enemy, source ecs.Entity) {
	if e.Dead {
		return
	}
	e.Dead = true
	e.Current = 0
	e.Active = false
	if sp := e.Splitter; sp != nil && sp.Pending {
		sp.Pending = false
		r.split(w, e)
	}
	if r.swarms != nil {
		r.swarms.Leave(w, e)
	}
	w.Emit(ecs.Event{Type: ecs.EventEnemyKilled, Entity: e.ID, Source: source, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, Amount: e.ScoreValue})
	if r.fromPlayer(w, source) {
		r.awardKill(w, e)
	}
}

// split launches the splitter's children outward from its position.
func (r *DamageResolver) split(w *ecs.World, e *component.Enemy) {
	sp := e.Splitter
	if sp.Count <= 0 || r.enemies == nil {
		return
	}
	k, ok := w.Catalog().Enemy(sp.Child)
	if !ok {
		w.Logger().Printf("enemy: entity=%d unknown split child %q", e.ID, sp.Child)
		return
	}
	k.Health *= sp.HealthScale
	k.Size *= sp.SizeScale
	k.Swarm = nil
	k.Split = nil
	for i := 0; i < sp.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sp.Count)
		dir := cp.ForAngle(angle)
		child := r.enemies.add(w, k, e.Pos.Add(dir.Mult(sp.Distance)))
		if child == nil {
			break
		}
		child.Vel = dir.Mult(sp.Speed)
		child.Wave = e.Wave
	}
	w.Emit(ecs.Event{Type: ecs.EventEnemySplit, Entity: e.ID, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, Value: sp.Count})
}

// awardKill books score, combo and drops for a kill credited to the player.
func (r *DamageResolver) awardKill(w *ecs.World, e *component.Enemy) {
	w.Combo++
	w.ComboTimer.Start(w.Catalog().Player.ComboWindow)
	mult := ComboMultiplier(w.Combo)
	gained := math.Floor(e.ScoreValue * mult)
	w.Score += gained
	if p := w.Player; p != nil {
		p.Stats.EnemiesKilled++
	}
	w.Emit(ecs.Event{Type: ecs.EventComboIncremented, Entity: e.ID, Amount: mult, Value: w.Combo})
	r.time.comboBulletTime(w)
	if r.drops == nil {
		return
	}
	r.drops.SpawnPowerup(w, e.Pos.X, e.Pos.Y, component.PowerupExperience)
	chance := comboPowerupBase + math.Min(float64(w.Combo)*comboPowerupStep, comboPowerupMax)
	if w.RNG().Chance(chance) {
		r.drops.SpawnPowerup(w, e.Pos.X, e.Pos.Y, randomPowerup(w))
	}
}

// Splash deals falloff damage to every live enemy within radius of at,
// except skip, credited to source. It returns the number of enemies struck.
func (r *DamageResolver) Splash(w *ecs.World, at cp.Vector, radius, damage float64, source, skip ecs.Entity) int {
	if w == nil || radius <= 0 || damage <= 0 {
		return 0
	}
	w.Emit(ecs.Event{Type: ecs.EventExplosion, Source: source, X: at.X, Y: at.Y, Amount: radius})
	n := 0
	for _, o := range w.Enemies {
		if o.ID == skip || !o.Active || o.Dead {
			continue
		}
		if d := o.Pos.Distance(at); d < radius {
			r.DamageEnemy(w, o, damage*(1-d/radius), source)
			n++
		}
	}
	return n
}

// Detonate blows up a kamikaze: falloff damage to the player and at half
// strength to nearby enemies. The kamikaze itself is removed without loot.
func (r *DamageResolver) Detonate(w *ecs.World, e *component.Enemy) {
	if w == nil || e == nil || e.Dead || e.Kamikaze == nil {
		return
	}
	k := e.Kamikaze
	e.Dead = true
	e.Active = false
	e.Current = 0
	k.Charging = false
	w.Emit(ecs.Event{Type: ecs.EventExplosion, Entity: e.ID, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, Amount: k.ExplosionRadius})
	if k.ExplosionRadius <= 0 {
		return
	}
	if p := w.PlayerTarget(); p != nil {
		if d := p.Pos.Distance(e.Pos); d < k.ExplosionRadius {
			r.DamagePlayer(w, p, k.ExplosionDamage*(1-d/k.ExplosionRadius), e.ID)
		}
	}
	for _, o := range w.Enemies {
		if o == e || !o.Active {
			continue
		}
		if d := o.Pos.Distance(e.Pos); d < k.ExplosionRadius {
			r.DamageEnemy(w, o, k.ExplosionDamage*0.5*(1-d/k.ExplosionRadius), e.ID)
		}
	}
}

// DamageBoss applies a hit to the boss body: shield first, then health, then
// the phase threshold and death checks.
func (r *DamageResolver) DamageBoss(w *ecs.World, b *component.Boss, amount float64, source ecs.Entity) float64 {
	if w == nil || b == nil || !b.Active || b.Dead || amount <= 0 {
		return 0
	}
	if b.IsInvulnerable() {
		return 0
	}
	remaining := amount
	if b.Shield > 0 {
		absorbed := math.Min(remaining, b.Shield)
		b.Shield -= absorbed
		remaining -= absorbed
		if b.Shield <= 0 {
			b.Shield = 0
			b.MaxShield = 0
		}
	}
	return r.hurtBoss(w, b, remaining, source)
}

// hurtBoss subtracts health directly and runs the reactive checks.
func (r *DamageResolver) hurtBoss(w *ecs.World, b *component.Boss, amount float64, source ecs.Entity) float64 {
	actual := b.Health.Subtract(amount)
	if actual > 0 {
		w.Emit(ecs.Event{Type: ecs.EventHit, Entity: b.ID, Source: source, Kind: b.Type, X: b.Pos.X, Y: b.Pos.Y, Amount: actual})
		if p := w.Player; p != nil && source == p.ID {
			p.Stats.DamageDealt += actual
		}
	}
	if r.boss == nil {
		return actual
	}
	if b.Current <= 0 {
		r.boss.Die(w, b, source)
		return actual
	}
	r.boss.CheckPhase(w, b)
	return actual
}

// DamageWeakPoint hits weak point i. Destroying it deals a bonus hit to the
// boss; destroying the last one costs the boss a share of its max health and
// stuns it.
func (r *DamageResolver) DamageWeakPoint(w *ecs.World, b *component.Boss, i int, amount float64, source ecs.Entity) float64 {
	if w == nil || b == nil || !b.Active || b.Dead || amount <= 0 || i < 0 || i >= len(b.WeakPoints) {
		return 0
	}
	wp := &b.WeakPoints[i]
	if !wp.Active || !wp.Vulnerable || wp.HitCooldown.Active() || b.WeakPointLock {
		return 0
	}
	actual := wp.Health.Subtract(amount)
	if actual <= 0 {
		return 0
	}
	wp.HitCooldown.Start(weakPointCooldownMs)
	pos := b.WeakPointPos(i)
	w.Emit(ecs.Event{Type: ecs.EventWeakPointHit, Entity: b.ID, Source: source, X: pos.X, Y: pos.Y, Amount: actual, Value: i})
	if wp.Health.Current > 0 {
		return actual
	}

	wp.Active = false
	b.Destroyed++
	w.Emit(ecs.Event{Type: ecs.EventWeakPointDestroyed, Entity: b.ID, Source: source, X: pos.X, Y: pos.Y, Value: i})
	r.DamageBoss(w, b, weakPointBonus, source)
	if b.Dead || !allWeakPointsDown(b) {
		return actual
	}
	b.WeakPointLock = true
	b.Stun.Start(bossStunMs)
	w.Emit(ecs.Event{Type: ecs.EventBossStunned, Entity: b.ID, Kind: b.Type, X: b.Pos.X, Y: b.Pos.Y, Amount: bossStunMs})
	r.hurtBoss(w, b, b.Max*weakPointPenalty, source)
	return actual
}

func allWeakPointsDown(b *component.Boss) bool {
	if len(b.WeakPoints) == 0 {
		return false
	}
	for _, wp := range b.WeakPoints {
		if wp.Active {
			return false
		}
	}
	return true
}

// DamagePlayer applies a hit to the player: shield energy first, then
// health. A damaging hit opens the invulnerability window.
func (r *DamageResolver) DamagePlayer(w *ecs.World, p *component.Player, amount float64, source ecs.Entity) float64 {
	return r.damagePlayer(w, p, amount, source, true)
}

func (r *DamageResolver) damagePlayer(w *ecs.World, p *component.Player, amount float64, source ecs.Entity, feedback bool) float64 {
	if w == nil || !p.Alive() || amount <= 0 {
		return 0
	}
	if p.IsInvulnerable() {
		return 0
	}
	remaining := amount
	if p.ShieldUp && p.ShieldEnergy > 0 {
		absorbed := math.Min(remaining, p.ShieldEnergy)
		p.ShieldEnergy -= absorbed
		remaining -= absorbed
		if p.ShieldEnergy <= 0 {
			p.ShieldEnergy = 0
			p.ShieldUp = false
			p.ShieldTimer.Stop()
		}
	}
	actual := p.Health.Subtract(remaining)
	if actual > 0 {
		p.Stats.DamageTaken += actual
		w.Emit(ecs.Event{Type: ecs.EventPlayerDamaged, Entity: p.ID, Source: source, X: p.Pos.X, Y: p.Pos.Y, Amount: actual})
		if feedback {
			tuning := w.Catalog().Player
			p.Flash.Start(tuning.FlashMs)
			p.StartInvulnerability(tuning.InvulnerableMs)
		}
	}
	if p.Current <= 0 && r.player != nil {
		r.player.Die(w, p, source)
	}
	return actual
}

// DamageHazard hurts a destroyable hazard. Indestructible hazards ignore it.
func (r *DamageResolver) DamageHazard(w *ecs.World, h *component.Hazard, amount float64, source ecs.Entity) float64 {
	if w == nil || h == nil || !h.Active || h.Dead || !h.Destroyable || amount <= 0 {
		return 0
	}
	if h.IsInvulnerable() {
		return 0
	}
	actual := h.Health.Subtract(amount)
	if actual > 0 {
		w.Emit(ecs.Event{Type: ecs.EventHit, Entity: h.ID, Source: source, Kind: h.Kind, X: h.Pos.X, Y: h.Pos.Y, Amount: actual})
	}
	if h.Current <= 0 && r.hazards != nil {
		r.hazards.Destroy(w, h, source)
	}
	return actual
}

func (r *DamageResolver) fromPlayer(w *ecs.World, source ecs.Entity) bool {
	return w.Player != nil && source.Valid() && source == w.Player.ID
}

var dropKinds = []string{
	component.PowerupHealth,
	component.PowerupShield,
	component.PowerupRapidFire,
	component.PowerupMultiShot,
}

func randomPowerup(w *ecs.World) string {
	return dropKinds[w.RNG().Intn(len(dropKinds))]
}
