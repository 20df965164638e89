package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	enemyFlashMs        = 300.0
	enemyHitInvulnMs    = 100.0
	bossBasicPatrolMin  = 100.0
	bossBasicWaypointY  = 150.0
	bossBasicArriveDist = 10.0
	spawnJitter         = 100.0
	spawnBand           = 50.0
)

// EnemySystem spawns enemies and advances their timed states, movement and
// firing.
type EnemySystem struct {
	proj   *ProjectileSystem
	swarms *SwarmSystem
	damage *DamageResolver
}

func NewEnemySystem(proj *ProjectileSystem, swarms *SwarmSystem, damage *DamageResolver) *EnemySystem {
	return &EnemySystem{proj: proj, swarms: swarms, damage: damage}
}

// SpawnEnemy creates an enemy of the given kind at (x, y). It returns nil
// when the kind is unknown or the enemy cap is reached. A swarm kind brings
// its whole group.
func (s *EnemySystem) SpawnEnemy(w *ecs.World, kind string, x, y float64) *component.Enemy {
	if w == nil {
		return nil
	}
	k, ok := w.Catalog().Enemy(kind)
	if !ok {
		w.Logger().Printf("enemy: unknown kind %q", kind)
		return nil
	}
	e := s.add(w, k, cp.Vector{X: x, Y: y})
	if e == nil {
		return nil
	}
	if k.Swarm != nil && s.swarms != nil {
		s.swarms.Form(w, s, e, k)
	}
	return e
}

// add builds and registers one enemy without any group side effects.
func (s *EnemySystem) add(w *ecs.World, k component.EnemyKind, pos cp.Vector) *component.Enemy {
	if w.ActiveEnemies() >= w.Config().MaxEnemies {
		return nil
	}
	e := newEnemy(w, k, pos)
	w.Enemies = append(w.Enemies, e)
	w.Register(e)
	w.Emit(ecs.Event{Type: ecs.EventEnemySpawned, Entity: e.ID, Kind: e.Kind, X: pos.X, Y: pos.Y})
	return e
}

func newEnemy(w *ecs.World, k component.EnemyKind, pos cp.Vector) *component.Enemy {
	rng := w.RNG()
	e := &component.Enemy{
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
		Kind:          k.Name,
		Behavior:      k.Behavior,
		Speed:         k.Speed,
		Damage:        k.Damage,
		FireRate:      k.FireRate,
		ScoreValue:    k.Score,
		PowerupChance: k.PowerupChance,
		BulletKind:    k.Bullet,
	}
	if k.FireRate > 0 {
		e.FireTimer.Start(k.FireRate * (0.5 + rng.Float64()*0.5))
	}

	switch k.Behavior {
	case component.BehaviorStraight:
		e.Vel = cp.Vector{Y: k.Speed}
	case component.BehaviorZigzag:
		e.Vel = cp.Vector{X: rng.Centered() * k.Speed, Y: k.Speed}
	case component.BehaviorTank:
		e.Vel = cp.Vector{Y: k.Speed * 0.5}
	case component.BehaviorFollow:
		e.Vel = cp.Vector{Y: k.Speed * 0.7}
	case component.BehaviorBossBasic:
		e.State.Waypoint = cp.Vector{X: w.Width() / 2, Y: bossBasicWaypointY}
		e.State.HasWaypoint = true
	}

	if sp := k.Shield; sp != nil {
		e.Shield = &component.Shield{Health: sp.Health, Max: sp.Health, RegenRate: sp.RegenRate, RegenDelay: sp.RegenDelay, Active: sp.Health > 0}
	}
	if sp := k.Stealth; sp != nil {
		e.Stealth = &component.Stealth{Duration: sp.Duration, Cooldown: sp.Cooldown, AlphaVisible: sp.AlphaVisible, AlphaInvisible: sp.AlphaInvisible}
		e.Stealth.Timer.Start(sp.Cooldown)
		e.SetAlpha(sp.AlphaVisible)
	}
	if sp := k.Regen; sp != nil {
		e.Regen = &component.Regen{Rate: sp.Rate, Delay: sp.Delay}
	}
	if sp := k.Kamikaze; sp != nil {
		e.Kamikaze = &component.Kamikaze{
			ExplosionRadius: sp.ExplosionRadius,
			ExplosionDamage: sp.ExplosionDamage,
			TriggerRange:    sp.TriggerRange,
			DetonateRange:   sp.DetonateRange,
			FuseMs:          sp.Fuse,
		}
	}
	if sp := k.Phase; sp != nil {
		e.Phase = &component.Phase{Duration: sp.Duration, Cooldown: sp.Cooldown, HealthTrigger: sp.HealthTrigger, DamageTrigger: sp.DamageTrigger}
	}
	if sp := k.Hunter; sp != nil {
		e.Hunter = &component.Hunter{TrackingStrength: sp.TrackingStrength, TrackingRange: sp.TrackingRange}
	}
	if sp := k.Split; sp != nil {
		e.Splitter = &component.Splitter{SplitSpec: *sp}
	}
	return e
}

func (s *EnemySystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	player := w.PlayerTarget()
	rng := w.RNG()
	for _, e := range w.Enemies {
		if !e.Active {
			continue
		}
		s.updateStates(e, dt)
		e.Effects.Tick(dt)

		stunned := false
		if m := e.Effects.Magnitude(component.StatusShocked); m > 0 {
			stunned = rng.Chance(m * dt / 1000)
		}
		if stunned {
			continue
		}
		s.behave(w, e, dt, player)
		if !e.Active {
			continue
		}
		e.Pos = e.Pos.Add(e.Vel.Mult(common.Frames(dt) * e.Effects.MoveScale()))
		if e.Behavior != component.BehaviorTank && (e.Vel.X != 0 || e.Vel.Y != 0) {
			e.Rotation = math.Atan2(e.Vel.Y, e.Vel.X)
		}
		s.bounds(w, e)
		if e.Active {
			s.fire(w, e, dt, player)
		}
	}
}

// bounds retires enemies that leave the world grown by the margin on either
// axis and bounces the rest off the side edges. Swarm members are clamped
// instead so a live group never loses members to the edges.
func (s *EnemySystem) bounds(w *ecs.World, e *component.Enemy) {
	r := e.Shape.Radius
	if e.Swarm != nil {
		e.Pos = w.ClampToWorld(e.Pos, r, r)
		return
	}
	margin := math.Max(w.Config().BoundsMargin, e.Size()*2)
	if !w.InBounds(e.Pos, margin) {
		e.Active = false
		return
	}
	edge := e.Size()
	if e.Pos.X < edge {
		e.Pos.X = edge
		e.Vel.X = math.Abs(e.Vel.X)
	} else if e.Pos.X > w.Width()-edge {
		e.Pos.X = w.Width() - edge
		e.Vel.X = -math.Abs(e.Vel.X)
	}
}

func (s *EnemySystem) fire(w *ecs.World, e *component.Enemy, dt float64, player *component.Player) {
	if e.FireRate <= 0 || e.BulletKind == "" || player == nil {
		return
	}
	switch e.Behavior {
	case component.BehaviorKamikaze, component.BehaviorSwarm:
		return
	}
	e.FireTimer.Tick(dt)
	if e.FireTimer.Active() {
		return
	}
	e.FireTimer.Start(e.FireRate)

	angle := common.AngleTo(e.Pos, player.Pos)
	x, y := e.Pos.X, e.Pos.Y
	var shots []*component.Projectile
	switch e.Behavior {
	case component.BehaviorTank:
		shots = s.proj.FireSpread(w, x, y, angle, e.BulletKind, 3, math.Pi/6, e.ID)
	case component.BehaviorBossBasic:
		if w.RNG().Chance(0.3) {
			shots = s.proj.FireCircle(w, x, y, e.BulletKind, 8, e.ID)
		} else {
			shots = s.proj.FireSpread(w, x, y, angle, e.BulletKind, 5, math.Pi/4, e.ID)
		}
	default:
		if p := s.proj.Fire(w, x, y, angle, e.BulletKind, e.ID); p != nil {
			shots = append(shots, p)
		}
	}
	if scale := e.Effects.DamageScale(); scale != 1 {
		for _, p := range shots {
			p.Damage *= scale
		}
	}
}

// SpawnPosition rolls a point in one of the spawn bands along the top and
// side edges and nudges it away from existing enemies.
func (s *EnemySystem) SpawnPosition(w *ecs.World) cp.Vector {
	rng := w.RNG()
	width, height := w.Width(), w.Height()
	var p cp.Vector
	switch rng.Intn(3) {
	case 0:
		p = cp.Vector{X: rng.Range(0, width), Y: rng.Range(0, spawnBand)}
	case 1:
		p = cp.Vector{X: rng.Range(-spawnBand, 0), Y: rng.Range(0, height)}
	default:
		p = cp.Vector{X: rng.Range(width, width+spawnBand), Y: rng.Range(0, height)}
	}
	return s.findValidSpawnPosition(w, p)
}

// findValidSpawnPosition retries around p until no active enemy is closer
// than the minimum spawn distance, giving up after the configured attempts.
func (s *EnemySystem) findValidSpawnPosition(w *ecs.World, p cp.Vector) cp.Vector {
	tuning := w.Catalog().Waves
	minDist := tuning.SpawnMinDistance
	candidate := p
	for attempt := 0; attempt < tuning.SpawnAttempts; attempt++ {
		if !s.crowded(w, candidate, minDist) {
			return candidate
		}
		candidate = cp.Vector{
			X: p.X + w.RNG().Centered()*spawnJitter,
			Y: p.Y + w.RNG().Centered()*spawnJitter,
		}
	}
	return candidate
}

func (s *EnemySystem) crowded(w *ecs.World, p cp.Vector, minDist float64) bool {
	for _, e := range w.Enemies {
		if e.Active && e.Pos.Distance(p) < minDist {
			return true
		}
	}
	return false
}

// NearestEnemy returns the closest active enemy to (x, y), or nil.
func (s *EnemySystem) NearestEnemy(w *ecs.World, x, y float64) *component.Enemy {
	if w == nil {
		return nil
	}
	p := cp.Vector{X: x, Y: y}
	var (
		best     *component.Enemy
		bestDist = math.Inf(1)
	)
	for _, e := range w.Enemies {
		if !e.Active {
			continue
		}
		if d := e.Pos.DistanceSq(p); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// EnemiesInArea returns active enemies whose centers lie within radius of
// (x, y).
func (s *EnemySystem) EnemiesInArea(w *ecs.World, x, y, radius float64) []*component.Enemy {
	if w == nil {
		return nil
	}
	p := cp.Vector{X: x, Y: y}
	var out []*component.Enemy
	for _, e := range w.Enemies {
		if e.Active && e.Pos.Distance(p) <= radius {
			out = append(out, e)
		}
	}
	return out
}
