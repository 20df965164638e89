package system

import (
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

// CollisionSystem resolves the frame's overlapping pairs. Candidates come
// from the spatial grid; every pair is confirmed with an exact test before
// any damage is applied.
type CollisionSystem struct {
	proj   *ProjectileSystem
	damage *DamageResolver
	drops  *PowerupSystem
	status *StatusSystem
}

func NewCollisionSystem(proj *ProjectileSystem, damage *DamageResolver, drops *PowerupSystem, status *StatusSystem) *CollisionSystem {
	return &CollisionSystem{proj: proj, damage: damage, drops: drops, status: status}
}

func (s *CollisionSystem) Update(w *ecs.World, _ float64) {
	if w == nil || s.damage == nil || s.proj == nil {
		return
	}
	s.playerContacts(w)
	s.playerBullets(w)
}

// playerContacts handles everything that touches the player: at most one
// enemy bullet and one enemy ram per frame, plus boss contact, hazard
// contact and powerup pickup.
func (s *CollisionSystem) playerContacts(w *ecs.World) {
	p := w.PlayerTarget()
	if p == nil {
		return
	}
	layers := w.Config().Layers
	bulletTaken, rammed := false, false
	for _, c := range w.Grid().QueryNear(p) {
		if !p.Alive() {
			return
		}
		if !ecs.Overlaps(p, c) {
			continue
		}
		switch o := c.(type) {
		case *component.Projectile:
			if bulletTaken || !o.Layer.Matches(layers.EnemyBullet) {
				continue
			}
			bulletTaken = true
			if dmg := s.proj.OnHit(o, p.ID); dmg > 0 {
				if s.damage.DamagePlayer(w, p, dmg, o.Owner) > 0 && o.Status != component.StatusNone && s.status != nil {
					s.status.Apply(w, p, o.Status)
				}
			}
		case *component.Enemy:
			if rammed || o.Dead {
				continue
			}
			rammed = true
			s.damage.DamagePlayer(w, p, o.Damage*o.Effects.DamageScale(), o.ID)
			s.ram(w, o, p.ID)
		case *component.Boss:
			if o.Dead || o.State == component.BossDeath {
				continue
			}
			s.damage.DamagePlayer(w, p, o.EffectiveDamage(), o.ID)
		case *component.Hazard:
			if contactHazard(o) {
				s.damage.DamagePlayer(w, p, o.Damage, o.ID)
			}
		case *component.Powerup:
			if s.drops != nil {
				s.drops.Collect(w, p, o)
			}
		}
	}
}

// ram destroys an enemy that flew into the player. Its shield is rammed
// through but a phased enemy survives.
func (s *CollisionSystem) ram(w *ecs.World, e *component.Enemy, source ecs.Entity) {
	amount := e.Current
	if sh := e.Shield; sh != nil && sh.Active {
		amount += sh.Health
	}
	s.damage.DamageEnemy(w, e, amount, source)
}

// contactHazard reports whether touching the hazard hurts. Pull, sweep and
// teleport hazards act through their own per-tick behavior instead.
func contactHazard(h *component.Hazard) bool {
	return h.Damage > 0 && h.PullRadius <= 0 && !h.Wave && h.TeleportRadius <= 0
}

// playerBullets resolves player projectiles against enemies, the boss and
// destroyable hazards.
func (s *CollisionSystem) playerBullets(w *ecs.World) {
	layers := w.Config().Layers
	for _, b := range s.proj.ByLayer(w, layers.PlayerBullet) {
		for _, c := range w.Grid().QueryNear(b) {
			if !b.Active {
				break
			}
			switch o := c.(type) {
			case *component.Enemy:
				if o.Dead || !ecs.Overlaps(b, o) {
					continue
				}
				if dmg := s.proj.OnHit(b, o.ID); dmg > 0 {
					if s.damage.DamageEnemy(w, o, dmg, b.Owner) > 0 && b.Status != component.StatusNone && s.status != nil {
						s.status.Apply(w, o, b.Status)
					}
					if b.BlastRadius > 0 {
						s.damage.Splash(w, b.Pos, b.BlastRadius, dmg, b.Owner, o.ID)
					}
				}
			case *component.Boss:
				s.hitBoss(w, b, o)
			case *component.Hazard:
				if !o.Destroyable || o.Dead || !ecs.Overlaps(b, o) {
					continue
				}
				if dmg := s.proj.OnHit(b, o.ID); dmg > 0 {
					s.damage.DamageHazard(w, o, dmg, b.Owner)
				}
			}
		}
	}
}

// hitBoss lets a bullet strike a hittable weak point before the body.
func (s *CollisionSystem) hitBoss(w *ecs.World, b *component.Projectile, boss *component.Boss) {
	if boss.Dead || !boss.Active {
		return
	}
	for i := range boss.WeakPoints {
		if !weakPointHittable(boss, i) {
			continue
		}
		wp := &boss.WeakPoints[i]
		pos := boss.WeakPointPos(i)
		r := b.Shape.Radius + wp.Size
		if b.Pos.DistanceSq(pos) > r*r {
			continue
		}
		if dmg := s.proj.OnHit(b, boss.ID); dmg > 0 {
			s.damage.DamageWeakPoint(w, boss, i, dmg, b.Owner)
		}
		return
	}
	if !ecs.Overlaps(b, boss) {
		return
	}
	if dmg := s.proj.OnHit(b, boss.ID); dmg > 0 {
		s.damage.DamageBoss(w, boss, dmg, b.Owner)
	}
}

func weakPointHittable(b *component.Boss, i int) bool {
	wp := &b.WeakPoints[i]
	return wp.Active && wp.Vulnerable && !wp.HitCooldown.Active() && !b.WeakPointLock
}
