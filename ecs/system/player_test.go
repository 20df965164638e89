package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnPlayerDefaults(t *testing.T) {
	k := newTestKernel(t)
	p := k.World.Player
	require.NotNil(t, p)

	assert.Equal(t, cp.Vector{X: 600, Y: 700}, p.Pos)
	assert.Equal(t, 100.0, p.Current)
	assert.Equal(t, 3, p.Lives)
	assert.Equal(t, 1, p.WeaponLevel)
	assert.Equal(t, 100.0, p.ShieldEnergy)
	assert.True(t, p.Alive())
}

func TestPlayerMovement(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player

	k.Update(16, ecs.Input{Move: cp.Vector{X: 1}})
	assert.InDelta(t, 0.255, p.Vel.X, 1e-9)
	assert.InDelta(t, 600.255, p.Pos.X, 1e-9)

	p.Pos = cp.Vector{X: 5, Y: 5}
	p.Vel = cp.Vector{X: -5, Y: -5}
	k.Player.move(w, p, ecs.Input{}, 16)
	assert.Equal(t, cp.Vector{X: 20, Y: 20}, p.Pos)
}

func TestPlayerSpeedCap(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	p.Vel = cp.Vector{X: 50}

	k.Player.move(w, p, ecs.Input{}, 16)
	assert.InDelta(t, 5*0.85, p.Vel.Length(), 1e-9)
}

func TestPlayerFiresThroughUpdate(t *testing.T) {
	k := newTestKernel(t)
	w := k.World

	k.Update(16, ecs.Input{Shoot: true})
	shots := k.Projectiles.ByOwner(w, w.Player.ID)
	require.Len(t, shots, 1)
	assert.Equal(t, "player_basic", shots[0].Kind)
	assert.Less(t, shots[0].Vel.Y, 0.0)
	assert.Equal(t, 1, w.Player.Stats.ShotsFired)

	k.Update(16, ecs.Input{Shoot: true})
	assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), 1, "fire rate gates the next shot")
}

func TestWeaponLevelPatterns(t *testing.T) {
	for level, want := range map[int]int{1: 1, 2: 2, 3: 3, 4: 4, 5: 5} {
		k := newTestKernel(t)
		w := k.World
		w.Player.WeaponLevel = level
		k.Player.fire(w, w.Player)
		assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), want, "level %d", level)
	}
}

func TestUpgradeWeaponCaps(t *testing.T) {
	k := newTestKernel(t)
	for i := 0; i < 4; i++ {
		assert.True(t, k.UpgradeWeapon())
	}
	assert.False(t, k.UpgradeWeapon())
	assert.Equal(t, 5, k.World.Player.WeaponLevel)
}

func TestRapidFireShortensRate(t *testing.T) {
	k := newTestKernel(t)
	p := k.World.Player
	p.RapidFire.Start(5000)

	k.Player.fire(k.World, p)
	assert.InDelta(t, 60.0, p.FireTimer.Remaining(), 1e-9)
}

func TestHealClamps(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	k.Damage.DamagePlayer(w, w.Player, 30, 0)

	assert.Equal(t, 30.0, k.Heal(50))
	assert.Equal(t, 100.0, w.Player.Current)
	assert.Zero(t, k.Heal(10))
}

func TestPlayerShield(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player

	k.Update(16, ecs.Input{Shield: true})
	require.True(t, p.ShieldUp)
	assert.Equal(t, 70.0, p.ShieldEnergy)

	k.Player.updateShield(w, p, ecs.Input{Shield: true}, 16)
	assert.Equal(t, 70.0, p.ShieldEnergy, "holding the flag does not pay again")

	k.Player.updateShield(w, p, ecs.Input{}, 5000)
	assert.False(t, p.ShieldUp)

	k.Player.updateShield(w, p, ecs.Input{}, 1000)
	assert.InDelta(t, 80.0, p.ShieldEnergy, 1e-9)
}

func TestShieldNeedsEnergy(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	p.ShieldEnergy = 29

	k.Player.updateShield(w, p, ecs.Input{Shield: true}, 16)
	assert.False(t, p.ShieldUp)
}

func TestLaserAbility(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player

	k.Update(16, ecs.Input{Ability: true, Shoot: true})
	require.True(t, p.Laser.Active())
	shots := k.Projectiles.ByOwner(w, p.ID)
	require.Len(t, shots, 1)
	assert.Equal(t, "player_laser", shots[0].Kind)

	var used int
	for _, evt := range w.Delivered() {
		if evt.Type == ecs.EventAbilityUsed && evt.Kind == "laser" {
			used++
		}
	}
	assert.Equal(t, 1, used)

	assert.False(t, k.Player.ActivateLaser(w), "burst already running")
	p.Laser.Stop()
	assert.False(t, k.Player.ActivateLaser(w), "cooldown")

	p.FireTimer.Stop()
	k.Player.fire(w, p)
	kinds := map[string]int{}
	for _, b := range k.Projectiles.ByOwner(w, p.ID) {
		kinds[b.Kind]++
	}
	assert.Equal(t, map[string]int{"player_laser": 1, "player_basic": 1}, kinds)
}

func TestPlayerDeathAndRespawn(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	k.Player.fire(w, p)
	require.NotEmpty(t, k.Projectiles.ByOwner(w, p.ID))

	k.Damage.DamagePlayer(w, p, 150, 0)
	require.True(t, p.Dead)
	assert.Equal(t, 2, p.Lives)
	assert.False(t, w.GameOver)
	assert.Nil(t, w.PlayerTarget())
	assert.Empty(t, k.Projectiles.ByOwner(w, p.ID), "bullets are cleared on death")
	assert.Equal(t, 1, countEvents(w, ecs.EventPlayerDied))

	k.Player.Update(w, 2999)
	assert.True(t, p.Dead)
	k.Player.Update(w, 1)
	assert.False(t, p.Dead)
	assert.Equal(t, 100.0, p.Current)
	assert.Equal(t, cp.Vector{X: 600, Y: 700}, p.Pos)
	assert.True(t, p.IsInvulnerable())
	assert.Equal(t, 1, countEvents(w, ecs.EventPlayerRespawned))
}

func TestGameOver(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	p.Lives = 1

	k.Damage.DamagePlayer(w, p, 500, 0)
	assert.True(t, w.GameOver)
	assert.Zero(t, p.Lives)
	assert.Equal(t, 1, countEvents(w, ecs.EventGameOver))

	k.Player.Update(w, 10000)
	assert.True(t, p.Dead, "no respawn after the last life")
}

func TestComboExpires(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	w.Combo = 4
	w.ComboTimer.Start(100)

	k.Player.Update(w, 99)
	assert.Equal(t, 4, w.Combo)
	k.Player.Update(w, 1)
	assert.Zero(t, w.Combo)
}

func TestCollectPowerups(t *testing.T) {
	cases := []struct {
		kind  string
		setup func(p *component.Player)
		check func(t *testing.T, k *Kernel)
	}{
		{component.PowerupHealth, func(p *component.Player) { p.Current = 50 }, func(t *testing.T, k *Kernel) {
			assert.Equal(t, 75.0, k.World.Player.Current)
		}},
		{component.PowerupShield, func(p *component.Player) { p.ShieldEnergy = 10 }, func(t *testing.T, k *Kernel) {
			assert.Equal(t, 100.0, k.World.Player.ShieldEnergy)
		}},
		{component.PowerupRapidFire, nil, func(t *testing.T, k *Kernel) {
			assert.True(t, k.World.Player.RapidFire.Active())
		}},
		{component.PowerupMultiShot, nil, func(t *testing.T, k *Kernel) {
			assert.Equal(t, 2, k.World.Player.WeaponLevel)
		}},
		{"rare_armor", nil, func(t *testing.T, k *Kernel) {
			assert.Equal(t, 1, countEvents(k.World, ecs.EventPowerupCollected))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			k := newTestKernel(t)
			w := k.World
			if tc.setup != nil {
				tc.setup(w.Player)
			}
			pu := k.SpawnPowerup(w.Player.Pos.X, w.Player.Pos.Y, tc.kind)
			require.NotNil(t, pu)

			k.Powerups.Collect(w, w.Player, pu)
			assert.False(t, pu.Active)
			assert.Equal(t, 50.0, w.Score)
			tc.check(t, k)

			k.Powerups.Collect(w, w.Player, pu)
			assert.Equal(t, 50.0, w.Score, "a powerup is collected once")
		})
	}
}

func TestPowerupDriftsAndExpires(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	pu := k.SpawnPowerup(300, 100, component.PowerupExperience)
	require.NotNil(t, pu)
	assert.Equal(t, 10.0, pu.Value)

	k.Powerups.Update(w, 16)
	assert.InDelta(t, 101.0, pu.Pos.Y, 1e-9)

	k.Powerups.Update(w, 10000)
	assert.False(t, pu.Active)
}
