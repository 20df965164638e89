package system

import (
	"math"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	laserSpacing = 10.0
	laserLife    = 100.0
)

// ProjectileSystem fires pooled projectiles and advances them each frame.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem { return &ProjectileSystem{} }

// Fire launches one projectile. It returns nil for an unknown kind or when
// the pool is exhausted; neither is an error.
func (s *ProjectileSystem) Fire(w *ecs.World, x, y, angle float64, kind string, owner ecs.Entity) *component.Projectile {
	if w == nil {
		return nil
	}
	k, ok := w.Catalog().Projectile(kind)
	if !ok {
		w.Logger().Printf("projectile: unknown kind %q", kind)
		return nil
	}
	p := w.Projectiles.Acquire()
	if p == nil {
		return nil
	}
	layers := w.Config().Layers
	layer := layers.EnemyBullet
	if isPlayerProjectile(kind) {
		layer = layers.PlayerBullet
	}
	p.Body = component.Body{
		ID:       w.NewID(),
		Pos:      cp.Vector{X: x, Y: y},
		Vel:      cp.ForAngle(angle).Mult(k.Speed),
		Shape:    component.Circle(k.Size),
		Layer:    layer,
		Active:   true,
		Rotation: angle,
		Alpha:    1,
		Scale:    1,
	}
	p.Kind = kind
	p.Damage = k.Damage
	p.Speed = k.Speed
	p.Owner = owner
	p.Pierce = k.Pierce
	p.MaxPierce = k.MaxPierce
	p.Homing = k.Homing > 0
	p.HomingStrength = common.Clamp01(k.Homing)
	p.LifeRemaining = k.Life
	p.Continuous = k.Continuous
	return p
}

// FireSpread fans count projectiles evenly across spread radians centered on
// angle, both ends included.
func (s *ProjectileSystem) FireSpread(w *ecs.World, x, y, angle float64, kind string, count int, spread float64, owner ecs.Entity) []*component.Projectile {
	if count <= 0 {
		return nil
	}
	if count == 1 {
		if p := s.Fire(w, x, y, angle, kind, owner); p != nil {
			return []*component.Projectile{p}
		}
		return nil
	}
	start := angle - spread/2
	step := spread / float64(count-1)
	out := make([]*component.Projectile, 0, count)
	for i := 0; i < count; i++ {
		if p := s.Fire(w, x, y, start+step*float64(i), kind, owner); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// FireCircle distributes count projectiles evenly over a full turn.
func (s *ProjectileSystem) FireCircle(w *ecs.World, x, y float64, kind string, count int, owner ecs.Entity) []*component.Projectile {
	if count <= 0 {
		return nil
	}
	step := 2 * math.Pi / float64(count)
	out := make([]*component.Projectile, 0, count)
	for i := 0; i < count; i++ {
		if p := s.Fire(w, x, y, step*float64(i), kind, owner); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// FireLaser lays short-lived stationary beam segments along a line.
func (s *ProjectileSystem) FireLaser(w *ecs.World, x, y, angle, length float64, owner ecs.Entity) []*component.Projectile {
	dir := cp.ForAngle(angle)
	origin := cp.Vector{X: x, Y: y}
	var out []*component.Projectile
	for d := 0.0; d < length; d += laserSpacing {
		pos := origin.Add(dir.Mult(d))
		p := s.Fire(w, pos.X, pos.Y, angle, "player_laser", owner)
		if p == nil {
			break
		}
		p.Vel = cp.Vector{}
		p.LifeRemaining = laserLife
		out = append(out, p)
	}
	return out
}

func (s *ProjectileSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	margin := w.Config().BoundsMargin
	w.Projectiles.Each(func(p *component.Projectile) {
		if p.Homing {
			s.steer(w, p)
		}
		p.Integrate(dt)
		if p.Vel.X != 0 || p.Vel.Y != 0 {
			p.Rotation = math.Atan2(p.Vel.Y, p.Vel.X)
		}
		p.LifeRemaining -= dt
		switch {
		case p.LifeRemaining <= 0:
			p.Active = false
		case !w.InBounds(p.Pos, margin):
			p.Active = false
		case p.Pierce && p.PierceCount > p.MaxPierce:
			p.Active = false
		}
	})
}

// steer blends the heading toward the homing target and restores the
// configured speed.
func (s *ProjectileSystem) steer(w *ecs.World, p *component.Projectile) {
	target, ok := w.Lookup(p.HomingTarget)
	if !ok || !homingCandidate(w, p, target) {
		target = s.acquireTarget(w, p)
		if target == nil {
			p.HomingTarget = 0
			return
		}
		p.HomingTarget = target.AsBody().ID
	}
	desired := common.Toward(p.Pos, target.AsBody().Pos, 1)
	if desired.X == 0 && desired.Y == 0 {
		return
	}
	heading := common.WithLength(p.Vel, 1)
	if heading.X == 0 && heading.Y == 0 {
		heading = desired
	}
	blended := heading.Lerp(desired, p.HomingStrength)
	if blended.LengthSq() == 0 {
		blended = desired
	}
	p.Vel = common.WithLength(blended, p.Speed)
}

// acquireTarget picks the nearest valid entity on the opposing side.
func (s *ProjectileSystem) acquireTarget(w *ecs.World, p *component.Projectile) ecs.Collider {
	if p.Layer.Matches(w.Config().Layers.EnemyBullet) {
		if pl := w.PlayerTarget(); pl != nil {
			return pl
		}
		return nil
	}
	var (
		best     ecs.Collider
		bestDist = math.Inf(1)
	)
	for _, e := range w.Enemies {
		if !e.Active || e.Dead {
			continue
		}
		if d := p.Pos.DistanceSq(e.Pos); d < bestDist {
			best, bestDist = e, d
		}
	}
	if b := w.Boss; b != nil && b.Active && !b.Dead {
		if d := p.Pos.DistanceSq(b.Pos); d < bestDist {
			best = b
		}
	}
	return best
}

func homingCandidate(w *ecs.World, p *component.Projectile, target ecs.Collider) bool {
	layers := w.Config().Layers
	if p.Layer.Matches(layers.EnemyBullet) {
		return target.AsBody().Layer.Matches(layers.Player)
	}
	return target.AsBody().Layer.Matches(layers.Enemy)
}

// OnHit records a confirmed hit and returns the damage to apply. A target
// already struck by this projectile yields zero. A non-piercing projectile
// deactivates on its first hit; a piercing one once its pierce count has
// reached the cap.
func (s *ProjectileSystem) OnHit(p *component.Projectile, target ecs.Entity) float64 {
	if p == nil || !p.Active {
		return 0
	}
	if p.HasHit(target) {
		return 0
	}
	p.Hits = append(p.Hits, target)
	if !p.Pierce {
		p.Active = false
		return p.Damage
	}
	if p.PierceCount >= p.MaxPierce {
		p.Active = false
		return p.Damage
	}
	p.PierceCount++
	return p.Damage
}

// Clear deactivates every projectile.
func (s *ProjectileSystem) Clear(w *ecs.World) {
	if w == nil {
		return
	}
	w.Projectiles.Each(func(p *component.Projectile) { p.Active = false })
}

// ClearByOwner deactivates the projectiles fired by owner.
func (s *ProjectileSystem) ClearByOwner(w *ecs.World, owner ecs.Entity) {
	if w == nil {
		return
	}
	w.Projectiles.Each(func(p *component.Projectile) {
		if p.Owner == owner {
			p.Active = false
		}
	})
}

// ByLayer returns active projectiles on any layer in mask.
func (s *ProjectileSystem) ByLayer(w *ecs.World, mask component.Layer) []*component.Projectile {
	if w == nil {
		return nil
	}
	var out []*component.Projectile
	w.Projectiles.Each(func(p *component.Projectile) {
		if p.Layer.Matches(mask) {
			out = append(out, p)
		}
	})
	return out
}

// ByOwner returns active projectiles fired by owner.
func (s *ProjectileSystem) ByOwner(w *ecs.World, owner ecs.Entity) []*component.Projectile {
	if w == nil {
		return nil
	}
	var out []*component.Projectile
	w.Projectiles.Each(func(p *component.Projectile) {
		if p.Owner == owner {
			out = append(out, p)
		}
	})
	return out
}

func (s *ProjectileSystem) Stats(w *ecs.World) ecs.PoolStats {
	if w == nil {
		return ecs.PoolStats{}
	}
	return w.Projectiles.Stats()
}

func isPlayerProjectile(kind string) bool {
	return strings.HasPrefix(kind, "player_")
}
