package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	bossSpawnMs         = 2000.0
	bossTransitionMs    = 3000.0
	bossCleanupMs       = 3000.0
	bossRetargetMs      = 3000.0
	bossRetargetJitter  = 2000.0
	bossAbilityBase     = 4000.0
	bossAbilityMin      = 1500.0
	bossArrive          = 5.0
	bossDamping         = 0.9
	bossCeiling         = 300.0
	bossTargetMargin    = 50.0
	bossPhaseSpeed      = 1.2
	bossPhaseDamage     = 1.1
	bossPhaseHeal       = 0.1
	bossPhaseCooldown   = 0.8
	bossWeakPointRegen  = 0.7
	bossLootOffset      = 30.0
	bossLootRing        = 50.0
	bossExperienceDrops = 3
)

var bossLoot = []string{component.PowerupLegendaryWeapon, "rare_armor", "epic_accessory"}

// BossSystem runs the epic boss: its lifecycle state machine, movement,
// ability selection and the lasting effects of its abilities.
type BossSystem struct {
	proj    *ProjectileSystem
	enemies *EnemySystem
	swarms  *SwarmSystem
	damage  *DamageResolver
	drops   *PowerupSystem
	weigher AbilityWeigher
}

func NewBossSystem(proj *ProjectileSystem, enemies *EnemySystem, swarms *SwarmSystem, damage *DamageResolver, drops *PowerupSystem) *BossSystem {
	return &BossSystem{
		proj:    proj,
		enemies: enemies,
		swarms:  swarms,
		damage:  damage,
		drops:   drops,
		weigher: DefaultWeigher{},
	}
}

// SetWeigher replaces the ability weighting. nil restores the default.
func (s *BossSystem) SetWeigher(wt AbilityWeigher) {
	if wt == nil {
		wt = DefaultWeigher{}
	}
	s.weigher = wt
}

// SpawnBoss starts an epic boss of the given kind at (x, y). Only one boss
// exists at a time; it returns nil while another is still being cleaned up
// or for an unknown kind.
func (s *BossSystem) SpawnBoss(w *ecs.World, kind string, x, y float64) *component.Boss {
	if w == nil {
		return nil
	}
	if w.Boss != nil && !w.Boss.CleanedUp {
		return nil
	}
	k, ok := w.Catalog().Boss(kind)
	if !ok {
		w.Logger().Printf("boss: unknown kind %q", kind)
		return nil
	}
	pos := cp.Vector{X: x, Y: y}
	b := &component.Boss{
		Body: component.Body{
			ID:     w.NewID(),
			Pos:    pos,
			Shape:  component.Circle(k.Size / 2),
			Layer:  w.Config().Layers.Enemy,
			Active: true,
			Alpha:  1,
			Scale:  1,
		},
		Health:        component.NewHealth(k.Health),
		Type:          k.Name,
		Movement:      k.Movement,
		Phase:         1,
		Phases:        k.Phases,
		Abilities:     append([]component.AbilityID(nil), k.Abilities...),
		Cooldowns:     make(map[component.AbilityID]float64, len(k.Abilities)),
		Speed:         k.Speed,
		Damage:        k.Damage,
		BaseRadius:    k.Size / 2,
		ScoreValue:    k.Score,
		SpeedMul:      1,
		DamageMul:     1,
		CooldownScale: 1,
	}
	for i := 1; i < k.Phases; i++ {
		b.Thresholds = append(b.Thresholds, float64(k.Phases-i)/float64(k.Phases)*k.Health)
	}
	for _, spec := range k.WeakPoints {
		b.WeakPoints = append(b.WeakPoints, component.WeakPoint{
			Offset:     cp.Vector{X: spec.X, Y: spec.Y},
			Size:       spec.Size,
			Health:     component.NewHealth(spec.Health),
			Active:     true,
			Vulnerable: spec.Vulnerable,
		})
	}
	b.State = component.BossSpawning
	b.StateTimer.Start(bossSpawnMs)
	b.Health.Invulnerable = true
	b.Target = pos

	w.Boss = b
	w.Register(b)
	w.Emit(ecs.Event{Type: ecs.EventBossSpawned, Entity: b.ID, Kind: b.Type, X: x, Y: y, Value: b.Phases})
	w.Logger().Printf("boss: entity=%d spawned %s run=%s", b.ID, b.Type, w.RunID)
	return b
}

func (s *BossSystem) Update(w *ecs.World, dt float64) {
	if w == nil || w.Boss == nil || w.Boss.CleanedUp {
		return
	}
	b := w.Boss
	if b.State == component.BossDeath {
		if b.Cleanup.Tick(dt) {
			b.CleanedUp = true
			w.Unregister(b.ID)
		}
		return
	}
	if !b.Active {
		return
	}

	b.Health.Tick(dt)
	for i := range b.WeakPoints {
		b.WeakPoints[i].HitCooldown.Tick(dt)
	}
	for id, cd := range b.Cooldowns {
		if cd > 0 {
			b.Cooldowns[id] = math.Max(0, cd-dt)
		}
	}
	// The AI holds still through a phase transition: lasting abilities and
	// staggered sub-steps resume once combat does.
	if b.State != component.BossPhaseTransition {
		s.tickCasting(w, b, dt)
		s.runPending(w, b, dt)
	}
	if b.Dead {
		return
	}

	stunned := b.Stun.Active()
	if stunned && b.Stun.Tick(dt) {
		regenerateWeakPoints(b)
		stunned = false
	}

	switch b.State {
	case component.BossSpawning:
		if b.StateTimer.Tick(dt) {
			b.State = component.BossCombat
			b.Health.Invulnerable = false
			b.TargetTimer.Start(s.retargetDelay(w))
		}
	case component.BossCombat:
		if !stunned {
			s.combat(w, b, dt)
		}
	case component.BossPhaseTransition:
		if b.StateTimer.Tick(dt) {
			s.completeTransition(w, b)
		}
	}
	if !stunned {
		s.move(w, b, dt)
	}
	s.CheckPhase(w, b)
}

func (s *BossSystem) retargetDelay(w *ecs.World) float64 {
	return bossRetargetMs + w.RNG().Float64()*bossRetargetJitter
}

func (s *BossSystem) combat(w *ecs.World, b *component.Boss, dt float64) {
	b.TargetTimer.Tick(dt)
	if !b.TargetTimer.Active() {
		s.selectTarget(w, b)
		b.TargetTimer.Start(s.retargetDelay(w))
	}
	if b.Dead || b.State != component.BossCombat {
		return
	}
	b.SinceAbility += dt
	if b.SinceAbility <= abilityFrequency(b.Ratio()) {
		return
	}
	available := s.availableAbilities(w, b)
	if len(available) == 0 {
		return
	}
	if id, ok := s.chooseAbility(w, b, available); ok && s.TriggerAbility(w, b, id) {
		b.LastAbility = id
		b.SinceAbility = 0
	}
}

// abilityFrequency is the minimum spacing between ability uses. It shrinks
// as the boss loses health.
func abilityFrequency(ratio float64) float64 {
	return math.Max(bossAbilityMin, bossAbilityBase*ratio)
}

func (s *BossSystem) availableAbilities(w *ecs.World, b *component.Boss) []component.AbilityID {
	var out []component.AbilityID
	for _, id := range b.Abilities {
		if b.Cooldowns[id] > 0 || b.IsAbilityActive(id) {
			continue
		}
		if _, ok := w.Catalog().Ability(id); !ok {
			continue
		}
		out = append(out, id)
	}
	return out
}

// chooseAbility runs the weighted lottery over the available abilities.
func (s *BossSystem) chooseAbility(w *ecs.World, b *component.Boss, available []component.AbilityID) (component.AbilityID, bool) {
	ctx := AbilityContext{HealthRatio: b.Ratio(), Last: b.LastAbility}
	if p := w.PlayerTarget(); p != nil {
		ctx.HasPlayer = true
		ctx.Distance = p.Pos.Distance(b.Pos)
	}
	weights := make([]float64, len(available))
	for i, id := range available {
		spec, _ := w.Catalog().Ability(id)
		ctx.Ability = id
		ctx.Category = spec.Category
		weights[i] = s.weigher.Weight(ctx)
	}
	i := w.RNG().Weighted(weights)
	if i < 0 {
		return available[0], true
	}
	return available[i], true
}

// selectTarget picks the next reposition target for the boss movement policy.
func (s *BossSystem) selectTarget(w *ecs.World, b *component.Boss) {
	rng := w.RNG()
	margin := b.Shape.Radius + bossTargetMargin
	width := w.Width()
	x := rng.Range(margin, width-margin)
	var y float64
	switch b.Movement {
	case component.MoveFortress:
		y = rng.Range(80, 180)
	case component.MoveOrganic:
		y = rng.Range(80, 230)
	case component.MoveCrystalline:
		if rng.Chance(0.3) && b.HasAbility(component.AbilityTeleport) {
			s.TriggerAbility(w, b, component.AbilityTeleport)
		}
		y = rng.Range(80, 200)
	case component.MoveShadow:
		if p := w.PlayerTarget(); p != nil {
			offset := cp.ForAngle(rng.Angle()).Mult(rng.Range(150, 250))
			x, y = p.Pos.X+offset.X, p.Pos.Y+offset.Y
		} else {
			y = rng.Range(80, 280)
		}
	}
	b.Target = cp.Vector{
		X: common.Clamp(x, margin, width-margin),
		Y: common.Clamp(y, margin, math.Max(margin, bossCeiling-margin)),
	}
}

// move steers toward the target, damps once arrived and keeps the boss in
// the upper band of the field.
func (s *BossSystem) move(w *ecs.World, b *component.Boss, dt float64) {
	if b.Pos.Distance(b.Target) > bossArrive {
		b.Vel = common.Toward(b.Pos, b.Target, b.EffectiveSpeed())
	} else {
		b.Vel = b.Vel.Mult(math.Pow(bossDamping, common.Frames(dt)))
	}
	b.Integrate(dt)
	if p := w.PlayerTarget(); p != nil {
		b.Rotation = common.AngleTo(b.Pos, p.Pos)
	}
	r := b.Shape.Radius
	b.Pos.X = common.Clamp(b.Pos.X, r, w.Width()-r)
	b.Pos.Y = common.Clamp(b.Pos.Y, r, math.Max(r, bossCeiling))
}

// CheckPhase starts at most one phase transition. It is re-evaluated every
// tick, so a hit that crosses several thresholds advances one phase now and
// the next once the boss is back in combat.
func (s *BossSystem) CheckPhase(w *ecs.World, b *component.Boss) {
	if b == nil || b.Dead || !b.Active || b.Phase >= b.Phases {
		return
	}
	if b.State != component.BossCombat && b.State != component.BossSpawning {
		return
	}
	threshold := float64(b.Phases-b.Phase) / float64(b.Phases)
	if b.Ratio() > threshold {
		return
	}
	prev := b.Phase
	b.Phase++
	b.State = component.BossPhaseTransition
	b.StateTimer.Start(bossTransitionMs)
	b.Health.Invulnerable = true
	s.unlockPhase(w, b)
	w.Emit(ecs.Event{Type: ecs.EventBossPhaseChanged, Entity: b.ID, Kind: b.Type, X: b.Pos.X, Y: b.Pos.Y, Value: b.Phase})
	w.Logger().Printf("boss: entity=%d phase %d -> %d", b.ID, prev, b.Phase)
}

func (s *BossSystem) unlockPhase(w *ecs.World, b *component.Boss) {
	switch b.Phase {
	case 2:
		b.CooldownScale *= bossPhaseCooldown
		for id, cd := range b.Cooldowns {
			b.Cooldowns[id] = cd * bossPhaseCooldown
		}
		for i := range b.WeakPoints {
			b.WeakPoints[i].Vulnerable = true
		}
	case 3:
		if b.Movement == component.MoveShadow && !b.HasAbility(component.AbilityFinalForm) {
			if _, ok := w.Catalog().Ability(component.AbilityFinalForm); ok {
				b.Abilities = append(b.Abilities, component.AbilityFinalForm)
			}
		}
	}
}

func (s *BossSystem) completeTransition(w *ecs.World, b *component.Boss) {
	b.Health.Invulnerable = false
	b.State = component.BossCombat
	b.Speed *= bossPhaseSpeed
	b.Damage *= bossPhaseDamage
	b.Health.Heal(b.Max * bossPhaseHeal)
	b.TargetTimer.Start(s.retargetDelay(w))
}

// Die runs the boss death sequence exactly once: the boss leaves play,
// rewards and loot are granted and cleanup is scheduled.
func (s *BossSystem) Die(w *ecs.World, b *component.Boss, source ecs.Entity) {
	if w == nil || b == nil || b.State == component.BossDeath {
		return
	}
	b.Dead = true
	b.Current = 0
	b.Active = false
	b.State = component.BossDeath
	b.Health.Invulnerable = false
	b.Pending = nil
	s.endCasting(w, b)
	b.Cleanup.Start(bossCleanupMs)

	if !b.Rewarded {
		b.Rewarded = true
		s.reward(w, b)
	}
	w.Emit(ecs.Event{Type: ecs.EventBossDefeated, Entity: b.ID, Source: source, Kind: b.Type, X: b.Pos.X, Y: b.Pos.Y, Amount: b.ScoreValue})
	w.Logger().Printf("boss: entity=%d defeated %s", b.ID, b.Type)
}

func (s *BossSystem) reward(w *ecs.World, b *component.Boss) {
	score := b.ScoreValue
	w.Score += score
	rewards := []struct {
		kind   string
		amount float64
	}{
		{"experience", score / 10},
		{"credits", score / 5},
		{"gems", math.Floor(score / 200)},
	}
	for _, r := range rewards {
		w.Emit(ecs.Event{Type: ecs.EventReward, Entity: b.ID, Kind: r.kind, X: b.Pos.X, Y: b.Pos.Y, Amount: r.amount})
	}
	if s.drops == nil {
		return
	}
	loot := bossLoot[w.RNG().Intn(len(bossLoot))]
	s.drops.SpawnPowerup(w, b.Pos.X, b.Pos.Y-bossLootOffset, loot)
	for i := 0; i < bossExperienceDrops; i++ {
		p := b.Pos.Add(cp.ForAngle(2 * math.Pi * float64(i) / bossExperienceDrops).Mult(bossLootRing))
		s.drops.SpawnPowerup(w, p.X, p.Y, component.PowerupExperience)
	}
}

// regenerateWeakPoints restores destroyed weak points at reduced health once
// the all-destroyed stun ends.
func regenerateWeakPoints(b *component.Boss) {
	for i := range b.WeakPoints {
		wp := &b.WeakPoints[i]
		if wp.Active {
			continue
		}
		wp.Active = true
		wp.Health.Dead = false
		wp.Health.SetCurrent(wp.Health.Max * bossWeakPointRegen)
	}
	b.Destroyed = 0
	b.WeakPointLock = false
}
