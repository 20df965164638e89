package ecs

import "github.com/milk9111/shmup/ecs/component"

// ProjectilePool is a fixed set of projectile slots. A slot returns to the
// pool when its projectile goes inactive.
type ProjectilePool struct {
	slots     []component.Projectile
	cursor    int
	exhausted int
}

// PoolStats reports pool occupancy.
type PoolStats struct {
	Active    int
	Capacity  int
	Exhausted int
}

func NewProjectilePool(capacity int) *ProjectilePool {
	if capacity <= 0 {
		capacity = 1
	}
	return &ProjectilePool{slots: make([]component.Projectile, capacity)}
}

// Acquire returns a reset inactive slot, or nil when every slot is in use.
// The caller activates it.
func (p *ProjectilePool) Acquire() *component.Projectile {
	if p == nil {
		return nil
	}
	n := len(p.slots)
	for i := 0; i < n; i++ {
		idx := (p.cursor + i) % n
		slot := &p.slots[idx]
		if slot.Active {
			continue
		}
		p.cursor = (idx + 1) % n
		slot.Reset()
		return slot
	}
	p.exhausted++
	return nil
}

// Each calls fn for every active projectile in slot order.
func (p *ProjectilePool) Each(fn func(*component.Projectile)) {
	if p == nil || fn == nil {
		return
	}
	for i := range p.slots {
		if p.slots[i].Active {
			fn(&p.slots[i])
		}
	}
}

// Active returns the active projectiles in slot order.
func (p *ProjectilePool) Active() []*component.Projectile {
	if p == nil {
		return nil
	}
	out := make([]*component.Projectile, 0, len(p.slots))
	for i := range p.slots {
		if p.slots[i].Active {
			out = append(out, &p.slots[i])
		}
	}
	return out
}

// Count returns the number of active projectiles.
func (p *ProjectilePool) Count() int {
	if p == nil {
		return 0
	}
	n := 0
	for i := range p.slots {
		if p.slots[i].Active {
			n++
		}
	}
	return n
}

func (p *ProjectilePool) Cap() int {
	if p == nil {
		return 0
	}
	return len(p.slots)
}

// Exhausted returns how many acquisitions were refused.
func (p *ProjectilePool) Exhausted() int {
	if p == nil {
		return 0
	}
	return p.exhausted
}

func (p *ProjectilePool) Stats() PoolStats {
	return PoolStats{Active: p.Count(), Capacity: p.Cap(), Exhausted: p.Exhausted()}
}
