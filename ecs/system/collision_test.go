package system

import (
	"math"
	"testing"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerTakesOneEnemyBulletPerFrame(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	for i := 0; i < 3; i++ {
		require.NotNil(t, k.Projectiles.Fire(w, p.Pos.X, p.Pos.Y, math.Pi/2, "enemy_basic", 0))
	}
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.Equal(t, 95.0, p.Current)
	assert.Len(t, k.Projectiles.ByLayer(w, w.Config().Layers.EnemyBullet), 2)
	assert.Equal(t, 1, countEvents(w, ecs.EventPlayerDamaged))
}

func TestPlayerBulletKillsEnemy(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "basic", 300, 300)
	b := k.Projectiles.Fire(w, 300, 300, 0, "player_heavy", w.Player.ID)
	require.NotNil(t, b)
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.True(t, e.Dead)
	assert.Equal(t, 10.0, w.Score)
	assert.Equal(t, 1, w.Combo)
	assert.True(t, b.Active, "piercing shots keep going")
	assert.Equal(t, 1, countEvents(w, ecs.EventEnemyKilled))
}

func TestBulletAppliesStatus(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "heavy", 300, 300)
	b := k.Projectiles.Fire(w, 300, 300, 0, "player_basic", w.Player.ID)
	require.NotNil(t, b)
	b.Status = component.StatusBurning
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.Equal(t, 50.0, e.Current)
	assert.True(t, e.Effects.Has(component.StatusBurning))
}

func TestEnemyRamsPlayer(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	e := spawnEnemy(t, k, "basic", p.Pos.X, p.Pos.Y)
	f := spawnEnemy(t, k, "basic", p.Pos.X+5, p.Pos.Y)
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.Equal(t, 95.0, p.Current)
	assert.NotEqual(t, e.Dead, f.Dead, "one ram per frame")
	assert.Equal(t, 10.0, w.Score)
}

func TestHazardContact(t *testing.T) {
	cases := []struct {
		kind string
		want float64
	}{
		{"meteor", 85},
		{"asteroid", 75},
		{"blackhole", 100},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			k := newTestKernel(t)
			w := k.World
			p := w.Player
			require.NotNil(t, k.Hazards.SpawnHazard(w, tc.kind, p.Pos.X, p.Pos.Y))
			rebuildGrid(w)

			k.Collision.Update(w, 16)
			assert.Equal(t, tc.want, p.Current)
		})
	}
}

func TestPowerupPickedUpOnContact(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	pu := k.SpawnPowerup(w.Player.Pos.X+10, w.Player.Pos.Y, component.PowerupMultiShot)
	require.NotNil(t, pu)
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.False(t, pu.Active)
	assert.Equal(t, 2, w.Player.WeaponLevel)
	assert.Equal(t, 50.0, w.Score)
}

func TestWeakPointStruckBeforeBody(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	boss := spawnCombatBoss(t, k, "fortress")
	pos := boss.WeakPointPos(0)
	b := k.Projectiles.Fire(w, pos.X, pos.Y, 0, "player_heavy", w.Player.ID)
	require.NotNil(t, b)
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.Equal(t, 75.0, boss.WeakPoints[0].Health.Current)
	assert.Equal(t, boss.Max, boss.Current)
	assert.Equal(t, 1, countEvents(w, ecs.EventWeakPointHit))
}

func TestBodyHitWhenWeakPointsLocked(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	boss := spawnCombatBoss(t, k, "fortress")
	boss.WeakPointLock = true
	pos := boss.WeakPointPos(0)
	require.NotNil(t, k.Projectiles.Fire(w, pos.X, pos.Y, 0, "player_heavy", w.Player.ID))
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.Equal(t, 100.0, boss.WeakPoints[0].Health.Current)
	assert.Equal(t, boss.Max-25, boss.Current)
}

func TestDeadPlayerIgnoresContacts(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	k.Damage.DamagePlayer(w, p, 500, 0)
	require.True(t, p.Dead)
	b := k.Projectiles.Fire(w, p.Pos.X, p.Pos.Y, 0, "enemy_basic", 0)
	require.NotNil(t, b)
	rebuildGrid(w)

	k.Collision.Update(w, 16)
	assert.True(t, b.Active)
}
