package system

import (
	"testing"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDamageEnemyConservation(t *testing.T) {
	cases := []struct {
		name     string
		amount   float64
		want     float64
		health   float64
		wantDead bool
	}{
		{"partial", 5, 5, 15, false},
		{"exact", 20, 20, 0, true},
		{"overkill clamps", 25, 20, 0, true},
		{"zero", 0, 0, 20, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := newTestKernel(t)
			e := spawnEnemy(t, k, "basic", 600, 300)

			got := k.Damage.DamageEnemy(k.World, e, tc.amount, 0)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.health, e.Current)
			assert.Equal(t, tc.wantDead, e.Dead)
			assert.GreaterOrEqual(t, e.Current, 0.0)
		})
	}
}

func TestDamageEnemyDiesOnce(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "basic", 600, 300)

	require.Equal(t, 20.0, k.Damage.DamageEnemy(w, e, 25, 0))
	assert.True(t, e.Dead)
	assert.False(t, e.Active)
	assert.Equal(t, 1, countEvents(w, ecs.EventEnemyKilled))

	assert.Zero(t, k.Damage.DamageEnemy(w, e, 25, 0))
	k.Damage.killEnemy(w, e, 0)
	assert.Equal(t, 1, countEvents(w, ecs.EventEnemyKilled))
}

func TestShieldAbsorbsFirst(t *testing.T) {
	k := newTestKernel(t)
	e := spawnEnemy(t, k, "shielded", 600, 300)
	require.NotNil(t, e.Shield)

	got := k.Damage.DamageEnemy(k.World, e, 50, 0)
	assert.Equal(t, 20.0, got)
	assert.Equal(t, 20.0, e.Current)
	assert.Zero(t, e.Shield.Health)
	assert.False(t, e.Shield.Active)
	assert.True(t, e.Shield.Delay.Active())
}

func TestInvulnerabilityGate(t *testing.T) {
	k := newTestKernel(t)
	w := k.World

	e := spawnEnemy(t, k, "basic", 600, 300)
	e.Invulnerable = true
	assert.Zero(t, k.Damage.ApplyDamage(w, e, 1000, 0))
	assert.Equal(t, 20.0, e.Current)

	p := w.Player
	p.Invulnerable = true
	assert.Zero(t, k.Damage.ApplyDamage(w, p, 1000, 0))
	assert.Equal(t, 100.0, p.Current)

	b := k.Boss.SpawnBoss(w, "fortress", 600, 150)
	require.NotNil(t, b)
	assert.Zero(t, k.Damage.ApplyDamage(w, b, 1000, 0), "boss is invulnerable while spawning")
	assert.Equal(t, 800.0, b.Current)
}

func TestEnemyHitWindowBlocksRepeatHit(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "heavy", 600, 300)

	require.Equal(t, 10.0, k.Damage.DamageEnemy(w, e, 10, 0))
	assert.True(t, e.Flash.Active())
	assert.Zero(t, k.Damage.DamageEnemy(w, e, 10, 0))

	e.Health.Tick(enemyHitInvulnMs)
	assert.Equal(t, 10.0, k.Damage.DamageEnemy(w, e, 10, 0))
}

func TestPlayerShieldEnergyAbsorbs(t *testing.T) {
	k := newTestKernel(t)
	p := k.World.Player
	p.ShieldUp = true
	p.ShieldEnergy = 20

	got := k.Damage.DamagePlayer(k.World, p, 30, 0)
	assert.Equal(t, 10.0, got)
	assert.Equal(t, 90.0, p.Current)
	assert.Zero(t, p.ShieldEnergy)
	assert.False(t, p.ShieldUp)
	assert.True(t, p.IsInvulnerable())
}

func TestDamageOverTimeSkipsHitWindow(t *testing.T) {
	k := newTestKernel(t)
	p := k.World.Player

	assert.Equal(t, 2.0, k.Damage.DamageOverTime(k.World, p, 2))
	assert.False(t, p.IsInvulnerable())
	assert.Equal(t, 2.0, k.Damage.DamageOverTime(k.World, p, 2))
	assert.Equal(t, 96.0, p.Current)
}

func TestPlayerKillAwardsScoreAndCombo(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "basic", 600, 300)

	k.Damage.DamageEnemy(w, e, 100, w.Player.ID)
	assert.Equal(t, 10.0, w.Score)
	assert.Equal(t, 1, w.Combo)
	assert.True(t, w.ComboTimer.Active())
	assert.Equal(t, 1, w.Player.Stats.EnemiesKilled)
	assert.Equal(t, 1, countEvents(w, ecs.EventComboIncremented))

	other := spawnEnemy(t, k, "basic", 300, 300)
	k.Damage.DamageEnemy(w, other, 100, 0)
	assert.Equal(t, 10.0, w.Score, "kills not credited to the player score nothing")
}

func TestComboMultiplier(t *testing.T) {
	cases := []struct {
		combo int
		want  float64
	}{
		{0, 1},
		{4, 1},
		{5, 1.2},
		{10, 1.5},
		{20, 2},
		{35, 2.5},
		{50, 3},
		{75, 4},
		{100, 5},
		{500, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ComboMultiplier(tc.combo), "combo %d", tc.combo)
	}
}

func TestSplitterReleasesChildren(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	e := spawnEnemy(t, k, "splitter", 600, 300)
	e.Wave = 3

	k.Damage.DamageEnemy(w, e, 100, 0)
	require.True(t, e.Dead)

	var children []*component.Enemy
	for _, c := range w.Enemies {
		if c.Active && c.Kind == "basic" {
			children = append(children, c)
		}
	}
	require.Len(t, children, 3)
	for _, c := range children {
		assert.InDelta(t, 12.0, c.Max, 1e-9)
		assert.InDelta(t, 7.0, c.Shape.Radius, 1e-9)
		assert.InDelta(t, 40.0, c.Pos.Distance(e.Pos), 1e-9)
		assert.InDelta(t, 2.0, c.Vel.Length(), 1e-9)
		assert.Equal(t, 3, c.Wave)
	}
	assert.Equal(t, 1, countEvents(w, ecs.EventEnemySplit))
}

func TestDetonateFalloff(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	e := spawnEnemy(t, k, "kamikaze", p.Pos.X+30, p.Pos.Y)
	bystander := spawnEnemy(t, k, "heavy", p.Pos.X+30, p.Pos.Y+30)

	k.Damage.Detonate(w, e)
	assert.True(t, e.Dead)
	assert.InDelta(t, 80.0, p.Current, 1e-9)
	assert.InDelta(t, 60-20*(1-30.0/60), bystander.Current, 1e-9)
	assert.Equal(t, 1, countEvents(w, ecs.EventExplosion))

	k.Damage.Detonate(w, e)
	assert.Equal(t, 1, countEvents(w, ecs.EventExplosion))
}

func TestHealthBoundsAfterDamage(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	for i, kind := range []string{"basic", "shielded", "regenerator", "phase"} {
		e := spawnEnemy(t, k, kind, 100+float64(i)*200, 300)
		for j := 0; j < 5; j++ {
			k.Damage.DamageEnemy(w, e, 17, 0)
			e.Health.Tick(enemyHitInvulnMs)
			assert.GreaterOrEqual(t, e.Current, 0.0)
			assert.LessOrEqual(t, e.Current, e.Max)
		}
	}
}
