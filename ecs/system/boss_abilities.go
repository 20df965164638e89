package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	turretBullet  = "enemy_heavy"
	missileBullet = "enemy_missile"
	shardBullet   = "enemy_fast"
	acidBullet    = "enemy_basic"
	minionKind    = "swarm"
	cloneKind     = "phase"
	cloneOffset   = 80.0
	minionOffset  = 40.0
	beamWindupMs  = 500.0
	prisonWindMs  = 500.0
	drainPeriodMs = 1000.0
)

// TriggerAbility casts an ability immediately, bypassing the frequency gate
// but not the catalog. It starts the cooldown and, for lasting abilities,
// the active window. Only the combat lottery records LastAbility.
func (s *BossSystem) TriggerAbility(w *ecs.World, b *component.Boss, id component.AbilityID) bool {
	if w == nil || b == nil || !b.Active || b.Dead {
		return false
	}
	spec, ok := w.Catalog().Ability(id)
	if !ok {
		w.Logger().Printf("boss: entity=%d unknown ability %q", b.ID, id)
		return false
	}
	if b.Cooldowns == nil {
		b.Cooldowns = make(map[component.AbilityID]float64)
	}
	b.Cooldowns[id] = spec.Cooldown * b.CooldownScale
	if spec.Duration > 0 {
		startCasting(b, id, spec.Duration)
	}
	s.execute(w, b, spec)
	w.Emit(ecs.Event{Type: ecs.EventAbilityUsed, Entity: b.ID, Kind: string(id), X: b.Pos.X, Y: b.Pos.Y})
	return true
}

func startCasting(b *component.Boss, id component.AbilityID, duration float64) {
	for i := range b.Casting {
		if b.Casting[i].ID == id {
			b.Casting[i].Remaining.Start(duration)
			b.Casting[i].Tick = 0
			return
		}
	}
	a := component.ActiveAbility{ID: id}
	a.Remaining.Start(duration)
	b.Casting = append(b.Casting, a)
}

// schedule queues count staggered sub-steps of an ability.
func schedule(b *component.Boss, id component.AbilityID, count int, stagger float64) {
	for i := 0; i < count; i++ {
		b.Pending = append(b.Pending, component.DelayedAction{Remaining: float64(i) * stagger, Ability: id, Index: i})
	}
}

func (s *BossSystem) execute(w *ecs.World, b *component.Boss, spec component.AbilitySpec) {
	player := w.PlayerTarget()
	switch spec.ID {
	case component.AbilityTurretBarrage, component.AbilityMissileSwarm, component.AbilityShardStorm:
		schedule(b, spec.ID, spec.Count, spec.Stagger)
	case component.AbilityShieldBurst:
		b.Shield = spec.Amount
		b.MaxShield = spec.Amount
	case component.AbilityTentacleStrike:
		if player != nil && player.Pos.Distance(b.Pos) <= spec.Range {
			s.damage.DamagePlayer(w, player, spec.Damage*b.DamageMul, b.ID)
		}
	case component.AbilitySpawnMinions:
		s.spawnMinions(w, b, spec.Count)
	case component.AbilityAcidSpray:
		angle := b.Rotation
		if player != nil {
			angle = common.AngleTo(b.Pos, player.Pos)
		}
		for _, p := range s.proj.FireSpread(w, b.Pos.X, b.Pos.Y, angle, acidBullet, spec.Count, spec.Spread, b.ID) {
			p.Damage = spec.Damage * b.DamageMul
			p.Status = spec.Status
		}
	case component.AbilityBerserk, component.AbilityFinalForm:
		applyMultipliers(w, b)
	case component.AbilityCrystalBeam:
		if player != nil {
			b.Pending = append(b.Pending, component.DelayedAction{
				Remaining: beamWindupMs,
				Ability:   spec.ID,
				Angle:     common.AngleTo(b.Pos, player.Pos),
			})
		}
	case component.AbilityTeleport:
		s.teleport(w, b, spec.Duration)
	case component.AbilityCrystalPrison:
		if player != nil {
			b.Pending = append(b.Pending, component.DelayedAction{Remaining: prisonWindMs, Ability: spec.ID, Origin: player.Pos})
		}
	case component.AbilityShadowClone:
		s.spawnClones(w, b, spec.Count)
	case component.AbilityVoidBlast:
		if player != nil && spec.Radius > 0 {
			if d := player.Pos.Distance(b.Pos); d < spec.Radius {
				s.damage.DamagePlayer(w, player, spec.Damage*(1-d/spec.Radius)*b.DamageMul, b.ID)
			}
		}
	case component.AbilityDarkness:
		b.Darkness = common.Clamp01(spec.Amount)
	}
}

// runPending advances the staggered sub-steps and resolves the due ones.
func (s *BossSystem) runPending(w *ecs.World, b *component.Boss, dt float64) {
	if len(b.Pending) == 0 {
		return
	}
	var due []component.DelayedAction
	kept := b.Pending[:0]
	for _, a := range b.Pending {
		a.Remaining -= dt
		if a.Remaining > 0 {
			kept = append(kept, a)
			continue
		}
		due = append(due, a)
	}
	b.Pending = kept
	for _, a := range due {
		if b.Dead {
			return
		}
		s.resolve(w, b, a)
	}
}

func (s *BossSystem) resolve(w *ecs.World, b *component.Boss, a component.DelayedAction) {
	spec, ok := w.Catalog().Ability(a.Ability)
	if !ok {
		return
	}
	player := w.PlayerTarget()
	rng := w.RNG()
	var p *component.Projectile
	switch a.Ability {
	case component.AbilityTurretBarrage:
		count := max(spec.Count, 1)
		muzzle := b.Pos.Add(cp.ForAngle(2 * math.Pi * float64(a.Index) / float64(count)).Mult(b.Shape.Radius))
		angle := common.AngleTo(b.Pos, muzzle)
		if player != nil {
			angle = common.AngleTo(muzzle, player.Pos)
		}
		p = s.proj.Fire(w, muzzle.X, muzzle.Y, angle, turretBullet, b.ID)
	case component.AbilityMissileSwarm:
		if player == nil {
			return
		}
		angle := common.AngleTo(b.Pos, player.Pos) + rng.Centered()*spec.Spread
		p = s.proj.Fire(w, b.Pos.X, b.Pos.Y, angle, missileBullet, b.ID)
		if p != nil && spec.Homing > 0 {
			p.Homing = true
			p.HomingStrength = common.Clamp01(spec.Homing)
		}
	case component.AbilityShardStorm:
		p = s.proj.Fire(w, b.Pos.X, b.Pos.Y, rng.Angle(), shardBullet, b.ID)
	case component.AbilityCrystalBeam:
		s.fireBeam(w, b, spec, a.Angle)
	case component.AbilityCrystalPrison:
		if player != nil && player.Pos.Distance(a.Origin) <= spec.Radius {
			status := w.Catalog().Status[spec.Status]
			status.Kind = spec.Status
			status.Duration = spec.Duration
			player.Effects.Apply(status)
		}
	}
	if p != nil && spec.Damage > 0 {
		p.Damage = spec.Damage * b.DamageMul
	}
}

// fireBeam resolves the crystal beam along its locked heading. The ray test
// is widened by the beam width so a near miss still connects.
func (s *BossSystem) fireBeam(w *ecs.World, b *component.Boss, spec component.AbilitySpec, angle float64) {
	player := w.PlayerTarget()
	if player == nil {
		return
	}
	dir := cp.ForAngle(angle)
	hit := false
	for _, h := range w.Grid().Raycast(b.Pos, dir, spec.Range, w.Config().Layers.Player) {
		if h.Collider.AsBody().ID == player.ID {
			hit = true
			break
		}
	}
	if !hit {
		end := b.Pos.Add(dir.Mult(spec.Range))
		hit = segmentDistance(player.Pos, b.Pos, end) <= player.Shape.Radius+spec.Width/2
	}
	if hit {
		s.damage.DamagePlayer(w, player, spec.Damage*b.DamageMul, b.ID)
	}
}

func segmentDistance(p, a, b cp.Vector) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSq()
	if l2 == 0 {
		return p.Distance(a)
	}
	t := common.Clamp01(p.Sub(a).Dot(ab) / l2)
	return p.Distance(a.Add(ab.Mult(t)))
}

func (s *BossSystem) teleport(w *ecs.World, b *component.Boss, blinkMs float64) {
	rng := w.RNG()
	margin := b.Shape.Radius + bossTargetMargin
	pos := cp.Vector{
		X: rng.Range(margin, w.Width()-margin),
		Y: rng.Range(margin, max(margin, bossCeiling-margin)),
	}
	b.Pos = pos
	b.Target = pos
	b.Vel = cp.Vector{}
	b.StartInvulnerability(blinkMs)
}

func (s *BossSystem) spawnMinions(w *ecs.World, b *component.Boss, count int) {
	if s.enemies == nil || count <= 0 {
		return
	}
	k, ok := w.Catalog().Enemy(minionKind)
	if !ok {
		w.Logger().Printf("boss: entity=%d unknown minion kind %q", b.ID, minionKind)
		return
	}
	pos := b.Pos.Add(cp.Vector{Y: b.Shape.Radius + minionOffset})
	leader := s.enemies.add(w, k, pos)
	if leader == nil || k.Swarm == nil || s.swarms == nil {
		return
	}
	swarm := *k.Swarm
	swarm.Size = count
	k.Swarm = &swarm
	s.swarms.Form(w, s.enemies, leader, k)
}

func (s *BossSystem) spawnClones(w *ecs.World, b *component.Boss, count int) {
	if s.enemies == nil || count <= 0 {
		return
	}
	k, ok := w.Catalog().Enemy(cloneKind)
	if !ok {
		w.Logger().Printf("boss: entity=%d unknown clone kind %q", b.ID, cloneKind)
		return
	}
	for i := 0; i < count; i++ {
		side := float64(i%2*2 - 1)
		ring := float64(i/2 + 1)
		e := s.enemies.add(w, k, b.Pos.Add(cp.Vector{X: side * ring * cloneOffset}))
		if e == nil {
			return
		}
		b.Clones = append(b.Clones, e.ID)
	}
}

// tickCasting runs the per-tick part of lasting abilities and ends the
// expired ones.
func (s *BossSystem) tickCasting(w *ecs.World, b *component.Boss, dt float64) {
	if len(b.Casting) == 0 {
		return
	}
	var expired []component.AbilityID
	kept := b.Casting[:0]
	for _, a := range b.Casting {
		s.sustain(w, b, &a, dt)
		if a.Remaining.Tick(dt) || !a.Remaining.Active() {
			expired = append(expired, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	b.Casting = kept
	for _, id := range expired {
		s.expire(w, b, id)
	}
}

func (s *BossSystem) sustain(w *ecs.World, b *component.Boss, a *component.ActiveAbility, dt float64) {
	spec, ok := w.Catalog().Ability(a.ID)
	if !ok {
		return
	}
	switch a.ID {
	case component.AbilityRepairDrones, component.AbilityRegeneration:
		b.Health.Heal(spec.Amount * dt / 1000)
	case component.AbilitySoulDrain:
		a.Tick += dt
		for a.Tick >= drainPeriodMs {
			a.Tick -= drainPeriodMs
			if p := w.PlayerTarget(); p != nil {
				s.damage.DamageOverTime(w, p, spec.Damage)
			}
			b.Health.Heal(spec.Amount)
		}
	}
}

func (s *BossSystem) expire(w *ecs.World, b *component.Boss, id component.AbilityID) {
	switch id {
	case component.AbilityShieldBurst:
		b.Shield = 0
		b.MaxShield = 0
	case component.AbilityBerserk, component.AbilityFinalForm:
		applyMultipliers(w, b)
	case component.AbilityDarkness:
		b.Darkness = 0
	case component.AbilityShadowClone:
		s.dismissClones(w, b)
	}
}

// endCasting drops every lasting effect, used when the boss dies.
func (s *BossSystem) endCasting(w *ecs.World, b *component.Boss) {
	b.Casting = nil
	b.Shield = 0
	b.MaxShield = 0
	b.Darkness = 0
	s.dismissClones(w, b)
	applyMultipliers(w, b)
}

func (s *BossSystem) dismissClones(w *ecs.World, b *component.Boss) {
	for _, id := range b.Clones {
		if c, ok := w.Lookup(id); ok {
			c.AsBody().Active = false
		}
	}
	b.Clones = nil
}

// applyMultipliers recomputes the temporary speed, damage and size
// multipliers from the abilities still active, so expiry restores the base
// values exactly.
func applyMultipliers(w *ecs.World, b *component.Boss) {
	speed, damage, scale := 1.0, 1.0, 1.0
	for _, a := range b.Casting {
		if !a.Remaining.Active() {
			continue
		}
		spec, ok := w.Catalog().Ability(a.ID)
		if !ok {
			continue
		}
		switch a.ID {
		case component.AbilityBerserk:
			speed *= spec.Speed
			damage *= spec.Amount
		case component.AbilityFinalForm:
			speed *= spec.Speed
			damage *= spec.Amount
			scale *= spec.Size
		}
	}
	b.SpeedMul = speed
	b.DamageMul = damage
	b.Scale = scale
	b.Shape.Radius = b.BaseRadius * scale
}
