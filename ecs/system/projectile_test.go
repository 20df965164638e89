package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectileAdvancesOneFrame(t *testing.T) {
	k := newTestKernel(t)
	w := k.World

	p := k.Projectiles.Fire(w, 100, 100, 0, "player_basic", 0)
	require.NotNil(t, p)
	k.Projectiles.Update(w, 16)

	assert.InDelta(t, 108.0, p.Pos.X, 1e-9)
	assert.InDelta(t, 100.0, p.Pos.Y, 1e-9)
	assert.InDelta(t, 4984.0, p.LifeRemaining, 1e-9)
	assert.True(t, p.Active)
}

func TestProjectileExpires(t *testing.T) {
	cases := []struct {
		name  string
		setup func(p *component.Projectile)
	}{
		{"life runs out", func(p *component.Projectile) { p.LifeRemaining = 10 }},
		{"leaves the field", func(p *component.Projectile) { p.Pos = cp.Vector{X: -100, Y: 100} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := newTestKernel(t)
			p := k.Projectiles.Fire(k.World, 100, 100, math.Pi, "enemy_basic", 0)
			require.NotNil(t, p)
			tc.setup(p)
			k.Projectiles.Update(k.World, 16)
			assert.False(t, p.Active)
		})
	}
}

func TestProjectileLayerFromKind(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	layers := w.Config().Layers

	mine := k.Projectiles.Fire(w, 0, 0, 0, "player_rapid", w.Player.ID)
	theirs := k.Projectiles.Fire(w, 0, 0, 0, "enemy_fast", 0)
	require.NotNil(t, mine)
	require.NotNil(t, theirs)
	assert.Equal(t, layers.PlayerBullet, mine.Layer)
	assert.Equal(t, layers.EnemyBullet, theirs.Layer)

	assert.Len(t, k.Projectiles.ByLayer(w, layers.PlayerBullet), 1)
	assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), 1)
}

func TestPierceCap(t *testing.T) {
	k := newTestKernel(t)
	p := k.Projectiles.Fire(k.World, 100, 100, 0, "player_heavy", 0)
	require.NotNil(t, p)
	require.Equal(t, 3, p.MaxPierce)

	for hit := 1; hit <= 3; hit++ {
		assert.Equal(t, 25.0, k.Projectiles.OnHit(p, ecs.Entity(100+hit)))
		assert.Equal(t, hit, p.PierceCount)
		assert.True(t, p.Active, "hit %d", hit)
	}
	assert.Zero(t, k.Projectiles.OnHit(p, ecs.Entity(101)), "a target is struck only once")

	assert.Equal(t, 25.0, k.Projectiles.OnHit(p, ecs.Entity(104)))
	assert.False(t, p.Active)
}

func TestNonPiercingStopsOnFirstHit(t *testing.T) {
	k := newTestKernel(t)
	p := k.Projectiles.Fire(k.World, 100, 100, 0, "player_basic", 0)
	require.NotNil(t, p)

	assert.Equal(t, 10.0, k.Projectiles.OnHit(p, 7))
	assert.False(t, p.Active)
	assert.Zero(t, k.Projectiles.OnHit(p, 8))
}

func TestPoolExhaustion(t *testing.T) {
	k := newTestKernel(t, func(cfg *ecs.Config, _ *component.Catalog) {
		cfg.MaxProjectiles = 3
	})
	w := k.World

	var fired []*component.Projectile
	for i := 0; i < 3; i++ {
		p := k.Projectiles.Fire(w, float64(100+i*10), 100, 0, "enemy_basic", 0)
		require.NotNil(t, p)
		fired = append(fired, p)
	}
	before := make([]component.Projectile, len(fired))
	for i, p := range fired {
		before[i] = *p
	}

	assert.Nil(t, k.Projectiles.Fire(w, 500, 500, 1, "enemy_heavy", 0))
	for i, p := range fired {
		assert.Equal(t, before[i].Pos, p.Pos)
		assert.Equal(t, before[i].Kind, p.Kind)
		assert.Equal(t, before[i].ID, p.ID)
	}
	stats := k.Projectiles.Stats(w)
	assert.Equal(t, 3, stats.Active)
	assert.Equal(t, 1, stats.Exhausted)
}

func TestPooledSlotIsReset(t *testing.T) {
	k := newTestKernel(t, func(cfg *ecs.Config, _ *component.Catalog) {
		cfg.MaxProjectiles = 1
	})
	w := k.World

	p := k.Projectiles.Fire(w, 100, 100, 0, "player_homing", 42)
	require.NotNil(t, p)
	p.HomingTarget = 9
	k.Projectiles.OnHit(p, 9)
	require.False(t, p.Active)

	q := k.Projectiles.Fire(w, 200, 200, 0, "enemy_basic", 7)
	require.NotNil(t, q)
	assert.Equal(t, ecs.Entity(7), q.Owner)
	assert.Zero(t, q.HomingTarget)
	assert.False(t, q.Homing)
	assert.Empty(t, q.Hits)
	assert.Zero(t, q.PierceCount)
}

func TestUnknownProjectileKind(t *testing.T) {
	k := newTestKernel(t)
	assert.Nil(t, k.Projectiles.Fire(k.World, 0, 0, 0, "plasma", 0))
}

func TestFireSpreadAngles(t *testing.T) {
	k := newTestKernel(t)
	shots := k.Projectiles.FireSpread(k.World, 100, 100, 0, "enemy_basic", 3, math.Pi/2, 0)
	require.Len(t, shots, 3)
	for i, want := range []float64{-math.Pi / 4, 0, math.Pi / 4} {
		assert.InDelta(t, want, shots[i].Rotation, 1e-9)
	}

	ring := k.Projectiles.FireCircle(k.World, 100, 100, "enemy_basic", 4, 0)
	require.Len(t, ring, 4)
	assert.InDelta(t, math.Pi/2, ring[1].Rotation, 1e-9)
}

func TestFireLaserSegments(t *testing.T) {
	k := newTestKernel(t)
	segs := k.Projectiles.FireLaser(k.World, 100, 100, 0, 50, 0)
	require.Len(t, segs, 5)
	for i, s := range segs {
		assert.InDelta(t, 100+float64(i)*laserSpacing, s.Pos.X, 1e-9)
		assert.Equal(t, cp.Vector{}, s.Vel)
		assert.Equal(t, laserLife, s.LifeRemaining)
	}
}

func TestHomingSteersTowardEnemy(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "heavy", 100, 400)

	p := k.Projectiles.Fire(w, 100, 100, 0, "player_homing", w.Player.ID)
	require.NotNil(t, p)
	k.Projectiles.Update(w, 16)

	assert.Equal(t, e.ID, p.HomingTarget)
	assert.Greater(t, p.Vel.Y, 0.0)
	assert.InDelta(t, 7.0, p.Vel.Length(), 1e-9)
}

func TestHomingDropsDeadTarget(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "heavy", 100, 400)

	p := k.Projectiles.Fire(w, 100, 100, 0, "player_homing", w.Player.ID)
	require.NotNil(t, p)
	p.HomingTarget = e.ID
	k.Damage.DamageEnemy(w, e, 1000, 0)

	k.Projectiles.Update(w, 16)
	assert.Zero(t, p.HomingTarget)
	assert.True(t, p.Active)
}

func TestClearByOwner(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	a := k.Projectiles.Fire(w, 0, 0, 0, "enemy_basic", 5)
	b := k.Projectiles.Fire(w, 0, 0, 0, "enemy_basic", 6)
	require.NotNil(t, a)
	require.NotNil(t, b)

	k.Projectiles.ClearByOwner(w, 5)
	assert.False(t, a.Active)
	assert.True(t, b.Active)

	k.Projectiles.Clear(w)
	assert.False(t, b.Active)
	assert.Zero(t, w.Projectiles.Count())
}
