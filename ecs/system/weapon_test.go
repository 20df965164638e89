package system

import (
	"math"
	"testing"

	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// equip unlocks kind and puts it in slot.
func equip(t *testing.T, k *Kernel, kind component.WeaponKind, slot component.WeaponSlot) *component.WeaponState {
	t.Helper()
	k.UnlockWeapon(kind)
	require.True(t, k.EquipWeapon(kind, slot))
	st := k.World.Player.Arsenal.State(kind)
	require.NotNil(t, st)
	return st
}

func TestArsenalStartsWithBasicPrimary(t *testing.T) {
	k := newTestKernel(t)
	a := &k.World.Player.Arsenal

	assert.Equal(t, component.WeaponBasic, a.Equipped(component.SlotPrimary))
	assert.Empty(t, a.Equipped(component.SlotSecondary))
	assert.Empty(t, a.Equipped(component.SlotSpecial))
	assert.Equal(t, 1.0, a.ComboMult)
	for _, kind := range component.WeaponKinds {
		st := a.State(kind)
		require.NotNil(t, st, "weapon %s", kind)
		assert.Equal(t, kind == component.WeaponBasic, st.Unlocked, "weapon %s", kind)
		assert.Equal(t, 1, st.Level)
	}
	assert.Equal(t, 20.0, a.State(component.WeaponMissile).Ammo)
	assert.Equal(t, 10.0, a.State(component.WeaponRailgun).MaxAmmo)
	assert.Zero(t, a.State(component.WeaponShotgun).MaxAmmo)
}

func TestEquipWeaponRules(t *testing.T) {
	k := newTestKernel(t)
	w := k.World

	assert.False(t, k.EquipWeapon(component.WeaponPlasma, component.SlotSecondary), "locked")
	assert.False(t, k.EquipWeapon("trebuchet", component.SlotSecondary), "unknown")
	assert.True(t, k.UnlockWeapon(component.WeaponPlasma))
	assert.False(t, k.UnlockWeapon(component.WeaponPlasma), "already unlocked")
	assert.Equal(t, 1, countEvents(w, ecs.EventWeaponUnlocked))

	assert.True(t, k.EquipWeapon(component.WeaponPlasma, component.SlotSecondary))
	assert.Equal(t, component.WeaponPlasma, w.Player.Arsenal.Equipped(component.SlotSecondary))
	assert.False(t, k.EquipWeapon(component.WeaponPlasma, component.NumWeaponSlots))
	assert.False(t, k.EquipWeapon("", component.SlotPrimary), "primary is never empty")
	assert.False(t, k.EquipWeapon("", component.SlotSpecial), "already empty")
	assert.True(t, k.EquipWeapon("", component.SlotSecondary))
	assert.Empty(t, w.Player.Arsenal.Equipped(component.SlotSecondary))
	assert.Equal(t, 2, countEvents(w, ecs.EventWeaponEquipped))
}

func TestWeaponVolleys(t *testing.T) {
	cases := []struct {
		kind   component.WeaponKind
		shots  int
		damage float64
		check  func(t *testing.T, b *component.Projectile)
	}{
		{component.WeaponBasic, 1, 10, nil},
		{component.WeaponPlasma, 1, 18, func(t *testing.T, b *component.Projectile) {
			assert.InDelta(t, 7.5, b.Shape.Radius, 1e-9)
		}},
		{component.WeaponShotgun, 5, 8, nil},
		{component.WeaponMissile, 1, 40, func(t *testing.T, b *component.Projectile) {
			assert.True(t, b.Homing)
			assert.Equal(t, 0.15, b.HomingStrength)
		}},
		{component.WeaponLaser, 30, 3, func(t *testing.T, b *component.Projectile) {
			assert.True(t, b.Pierce)
			assert.Zero(t, b.Vel.Length(), "beam segments hold still")
		}},
		{component.WeaponWave, 1, 25, func(t *testing.T, b *component.Projectile) {
			assert.Equal(t, 50.0, b.BlastRadius)
		}},
		{component.WeaponFlamethrower, 3, 5, func(t *testing.T, b *component.Projectile) {
			assert.Equal(t, component.StatusBurning, b.Status)
			assert.Equal(t, 600.0, b.LifeRemaining)
		}},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			k := newTestKernel(t)
			w := k.World
			p := w.Player
			equip(t, k, tc.kind, component.SlotSecondary)

			k.Player.trigger(w, p, component.SlotSecondary, true, 16)
			shots := k.Projectiles.ByOwner(w, p.ID)
			require.Len(t, shots, tc.shots)
			for _, b := range shots {
				assert.InDelta(t, tc.damage, b.Damage, 1e-9)
				assert.Equal(t, w.Config().Layers.PlayerBullet, b.Layer)
				assert.Less(t, b.Pos.Y, p.Pos.Y)
				if tc.check != nil {
					tc.check(t, b)
				}
			}
			assert.Equal(t, 1, p.Stats.ShotsFired)
			assert.Equal(t, 1, countEvents(w, ecs.EventWeaponFired))
		})
	}
}

func TestWeaponMuzzleOffsets(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponMissile, component.SlotSecondary)

	for i := 0; i < 8; i++ {
		st.Cooldown.Stop()
		k.Player.trigger(w, p, component.SlotSecondary, true, 16)
	}
	for _, b := range k.Projectiles.ByOwner(w, p.ID) {
		assert.InDelta(t, 15, math.Abs(b.Pos.X-p.Pos.X), 1e-9, "missiles leave a side rail")
	}
}

func TestWeaponRateLimit(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponShotgun, component.SlotSecondary)
	spec, _ := w.Catalog().Weapon(component.WeaponShotgun)

	require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
	assert.False(t, k.Player.fireWeapon(w, p, spec, st, 1))
	k.Player.updateArsenal(w, p, 499)
	assert.False(t, k.Player.fireWeapon(w, p, spec, st, 1))
	k.Player.updateArsenal(w, p, 1)
	assert.True(t, k.Player.fireWeapon(w, p, spec, st, 1))

	p.RapidFire.Start(1000)
	k.Player.updateArsenal(w, p, 500)
	require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
	assert.InDelta(t, 500*w.Catalog().Player.RapidFireScale, st.Cooldown.Remaining(), 1e-9)
}

func TestRailgunChargesAndFiresOnRelease(t *testing.T) {
	cases := []struct {
		name      string
		holdMs    float64
		ratio     float64
		maxPierce int
	}{
		{"half charge", 496, 0.496, 3},
		{"full charge", 1200, 1, 5},
		{"overcharge", 1504, 1.5, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			k := newTestKernel(t)
			w := k.World
			p := w.Player
			st := equip(t, k, component.WeaponRailgun, component.SlotSpecial)

			for held := 0.0; held < tc.holdMs; held += 16 {
				k.Player.trigger(w, p, component.SlotSpecial, true, 16)
			}
			assert.Empty(t, k.Projectiles.ByOwner(w, p.ID), "nothing fires while charging")
			assert.True(t, p.Arsenal.IsCharging)
			assert.InDelta(t, tc.ratio, p.Arsenal.ChargeRatio, 1e-9)

			k.Player.trigger(w, p, component.SlotSpecial, false, 16)
			shots := k.Projectiles.ByOwner(w, p.ID)
			require.Len(t, shots, 1)
			assert.InDelta(t, 80*tc.ratio, shots[0].Damage, 1e-9)
			assert.True(t, shots[0].Pierce)
			assert.Equal(t, tc.maxPierce, shots[0].MaxPierce)
			assert.False(t, p.Arsenal.IsCharging)
			assert.Equal(t, 9.0, st.Ammo)
			assert.InDelta(t, 25*tc.ratio, p.Arsenal.Heat, 1e-9)
		})
	}
}

func TestChargeNeedsAmmo(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponRailgun, component.SlotSpecial)
	st.Ammo = 0.5

	k.Player.trigger(w, p, component.SlotSpecial, true, 16)
	assert.False(t, p.Arsenal.IsCharging)
}

func TestOverheatBlocksUntilCooled(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponShotgun, component.SlotSecondary)
	spec, _ := w.Catalog().Weapon(component.WeaponShotgun)
	p.Arsenal.Heat = 79

	require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
	assert.True(t, p.Arsenal.Overheated)
	assert.Equal(t, 91.0, p.Arsenal.Heat)
	assert.Equal(t, 1, countEvents(w, ecs.EventWeaponOverheated))

	st.Cooldown.Stop()
	assert.False(t, k.Player.fireWeapon(w, p, spec, st, 1))

	k.Player.updateArsenal(w, p, 1000)
	assert.True(t, p.Arsenal.Overheated, "61 is above the reset point")
	k.Player.updateArsenal(w, p, 1000)
	assert.False(t, p.Arsenal.Overheated)
	assert.InDelta(t, 31, p.Arsenal.Heat, 1e-9)
	assert.Equal(t, 1, countEvents(w, ecs.EventWeaponCooled))
	assert.True(t, k.Player.fireWeapon(w, p, spec, st, 1))

	k.Player.updateArsenal(w, p, 10000)
	assert.Zero(t, p.Arsenal.Heat)
}

func TestBasicPrimaryIgnoresHeat(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	p.Arsenal.Overheated = true
	p.Arsenal.Heat = 100

	k.Update(16, ecs.Input{Shoot: true})
	assert.NotEmpty(t, k.Projectiles.ByOwner(w, p.ID))
}

func TestAmmoGatesAndRegenerates(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponMissile, component.SlotSecondary)
	spec, _ := w.Catalog().Weapon(component.WeaponMissile)
	st.Ammo = 0.6

	assert.False(t, k.Player.fireWeapon(w, p, spec, st, 1))
	k.Player.updateArsenal(w, p, 1000)
	assert.InDelta(t, 1.1, st.Ammo, 1e-9)
	require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
	assert.InDelta(t, 0.1, st.Ammo, 1e-9)

	k.Player.updateArsenal(w, p, 100000)
	assert.Equal(t, 20.0, st.Ammo, "regen stops at the magazine size")
}

func TestWeaponComboMultiplier(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	plasma := equip(t, k, component.WeaponPlasma, component.SlotSecondary)
	shotgun := equip(t, k, component.WeaponShotgun, component.SlotSpecial)
	plasmaSpec, _ := w.Catalog().Weapon(component.WeaponPlasma)
	shotgunSpec, _ := w.Catalog().Weapon(component.WeaponShotgun)

	fire := func(spec component.WeaponSpec, st *component.WeaponState) *component.Projectile {
		st.Cooldown.Stop()
		p.Arsenal.Heat = 0
		k.Projectiles.Clear(w)
		require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
		shots := k.Projectiles.ByOwner(w, p.ID)
		require.NotEmpty(t, shots)
		return shots[0]
	}

	assert.InDelta(t, 18, fire(plasmaSpec, plasma).Damage, 1e-9)
	assert.InDelta(t, 1.0, p.Arsenal.ComboMult, 1e-9)
	assert.InDelta(t, 18, fire(plasmaSpec, plasma).Damage, 1e-9)
	assert.InDelta(t, 1.1, p.Arsenal.ComboMult, 1e-9)
	assert.InDelta(t, 19.8, fire(plasmaSpec, plasma).Damage, 1e-9)

	for i := 0; i < 20; i++ {
		fire(plasmaSpec, plasma)
	}
	assert.InDelta(t, 2.0, p.Arsenal.ComboMult, 1e-9)

	fire(shotgunSpec, shotgun)
	assert.Equal(t, 1.0, p.Arsenal.ComboMult, "switching weapons resets the chain")
}

func TestUpgradeArsenalWeapon(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player
	st := equip(t, k, component.WeaponPlasma, component.SlotSecondary)
	for i := 0; i < 4; i++ {
		assert.True(t, k.UpgradeArsenalWeapon(component.WeaponPlasma))
	}
	assert.False(t, k.UpgradeArsenalWeapon(component.WeaponPlasma))
	assert.Equal(t, 5, st.Level)
	assert.False(t, k.UpgradeArsenalWeapon("trebuchet"))

	spec, _ := w.Catalog().Weapon(component.WeaponPlasma)
	require.True(t, k.Player.fireWeapon(w, p, spec, st, 1))
	shots := k.Projectiles.ByOwner(w, p.ID)
	require.Len(t, shots, 1)
	assert.InDelta(t, 18*math.Pow(1.2, 4), shots[0].Damage, 1e-9)
	assert.InDelta(t, 300*math.Pow(0.9, 4), st.Cooldown.Remaining(), 1e-9)

	assert.True(t, k.UpgradeArsenalWeapon(component.WeaponBasic))
	assert.Equal(t, 2, p.WeaponLevel)
	assert.Equal(t, 2, p.Arsenal.State(component.WeaponBasic).Level)
}

func TestNonBasicPrimaryFiresFromShootInput(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	equip(t, k, component.WeaponShotgun, component.SlotPrimary)

	k.Update(16, ecs.Input{Shoot: true})
	assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), 5)
}

func TestSlotInputsFireTheirWeapons(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	equip(t, k, component.WeaponPlasma, component.SlotSecondary)
	equip(t, k, component.WeaponShotgun, component.SlotSpecial)

	k.Update(16, ecs.Input{Secondary: true})
	assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), 1)
	k.Update(16, ecs.Input{Special: true})
	assert.Len(t, k.Projectiles.ByOwner(w, w.Player.ID), 6)
}

func TestLegendaryWeaponUnlocksInOrder(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	p := w.Player

	pu := k.SpawnPowerup(p.Pos.X, p.Pos.Y, component.PowerupLegendaryWeapon)
	require.NotNil(t, pu)
	k.Powerups.Collect(w, p, pu)
	assert.True(t, p.Arsenal.State(component.WeaponPlasma).Unlocked)
	assert.False(t, p.Arsenal.State(component.WeaponShotgun).Unlocked)

	for _, kind := range component.WeaponKinds {
		k.UnlockWeapon(kind)
	}
	kind, ok := k.Player.UnlockNextWeapon(w)
	assert.True(t, ok)
	assert.Equal(t, component.WeaponBasic, kind)
	assert.Equal(t, 2, p.WeaponLevel, "a full arsenal upgrades the primary")
}

func TestWaveBlastSplashesNearbyEnemies(t *testing.T) {
	k := newTestKernel(t)
	w := k.World
	hit := spawnEnemy(t, k, "heavy", 600, 300)
	near := spawnEnemy(t, k, "heavy", 630, 300)
	far := spawnEnemy(t, k, "heavy", 800, 300)

	b := k.Projectiles.Fire(w, 600, 300, playerHeading, "player_wave", w.Player.ID)
	require.NotNil(t, b)
	b.Damage = 25
	b.BlastRadius = 50
	rebuildGrid(w)
	k.Collision.Update(w, 16)

	assert.Less(t, hit.Current, hit.Max)
	assert.Less(t, near.Current, near.Max)
	assert.Equal(t, far.Max, far.Current)
	assert.Equal(t, 1, countEvents(w, ecs.EventExplosion))
}
