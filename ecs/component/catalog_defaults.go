package component

import "math"

// DefaultCatalog returns the built-in tuning. The embedded prefabs carry the
// same values; this copy keeps the kernel usable without any files.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Projectiles: defaultProjectiles(),
		Enemies:     defaultEnemies(),
		Bosses:      defaultBosses(),
		Abilities:   defaultAbilities(),
		Hazards:     defaultHazards(),
		Status:      defaultStatus(),
		Waves:       defaultWaves(),
		Player:      defaultPlayer(),
		Time:        defaultTime(),
		Weapons:     defaultWeapons(),
	}
}

func defaultProjectiles() map[string]ProjectileKind {
	kinds := []ProjectileKind{
		{Name: "player_basic", Speed: 8, Damage: 10, Size: 4},
		{Name: "player_rapid", Speed: 10, Damage: 8, Size: 3},
		{Name: "player_heavy", Speed: 6, Damage: 25, Size: 6, Pierce: true},
		{Name: "player_laser", Speed: 15, Damage: 15, Size: 2, Pierce: true, Continuous: true},
		{Name: "player_homing", Speed: 7, Damage: 12, Size: 4, Homing: 0.1},
		{Name: "player_plasma", Speed: 9, Damage: 18, Size: 5},
		{Name: "player_shotgun", Speed: 9, Damage: 8, Size: 3},
		{Name: "player_wave", Speed: 6, Damage: 25, Size: 8},
		{Name: "player_flame", Speed: 6, Damage: 5, Size: 5, Life: 600},
		{Name: "enemy_basic", Speed: 4, Damage: 5, Size: 4},
		{Name: "enemy_fast", Speed: 7, Damage: 3, Size: 3},
		{Name: "enemy_heavy", Speed: 3, Damage: 15, Size: 8},
		{Name: "enemy_seeking", Speed: 5, Damage: 8, Size: 5, Homing: 0.08},
		{Name: "enemy_missile", Speed: 5, Damage: 12, Size: 5, Homing: 0.1},
	}
	out := make(map[string]ProjectileKind, len(kinds))
	for _, k := range kinds {
		if k.MaxPierce == 0 {
			k.MaxPierce = 3
		}
		if k.Life == 0 {
			k.Life = 5000
		}
		out[k.Name] = k
	}
	return out
}

func defaultEnemies() map[string]EnemyKind {
	kinds := []EnemyKind{
		{Name: "basic", Health: 20, Speed: 2, Size: 20, Score: 10, FireRate: 2000, Bullet: "enemy_basic", Behavior: BehaviorStraight, Damage: 5, PowerupChance: 0.1, SpawnWeight: 4},
		{Name: "fast", Health: 10, Speed: 4, Size: 18, Score: 15, FireRate: 1500, Bullet: "enemy_fast", Behavior: BehaviorZigzag, Damage: 3, PowerupChance: 0.15, SpawnWeight: 3},
		{Name: "heavy", Health: 60, Speed: 1, Size: 30, Score: 30, FireRate: 3000, Bullet: "enemy_heavy", Behavior: BehaviorTank, Damage: 15, PowerupChance: 0.25, SpawnWeight: 2},
		{Name: "seeker", Health: 25, Speed: 2.5, Size: 22, Score: 20, FireRate: 2500, Bullet: "enemy_seeking", Behavior: BehaviorFollow, Damage: 8, PowerupChance: 0.2, SpawnWeight: 2},
		{Name: "boss", Health: 200, Speed: 1.5, Size: 60, Score: 100, FireRate: 1000, Bullet: "enemy_heavy", Behavior: BehaviorBossBasic, Damage: 20, PowerupChance: 0.8},

		{Name: "splitter", Health: 25, Speed: 2, Size: 45, Score: 30, Behavior: BehaviorAggressive, Damage: 15, SpawnWeight: 3, Advanced: true,
			Split: &SplitSpec{Count: 3, Child: "basic", HealthScale: 0.6, SizeScale: 0.7, Distance: 40, Speed: 2}},
		{Name: "shielded", Health: 40, Speed: 1.5, Size: 50, Score: 50, Behavior: BehaviorDefensive, Damage: 20, SpawnWeight: 2, Advanced: true,
			Shield: &ShieldSpec{Health: 30, RegenRate: 2, RegenDelay: 3000}},
		{Name: "stealth", Health: 15, Speed: 3, Size: 40, Score: 40, Behavior: BehaviorHitAndRun, Damage: 12, SpawnWeight: 2, Advanced: true,
			Stealth: &StealthSpec{Duration: 2000, Cooldown: 4000, AlphaVisible: 0.3, AlphaInvisible: 0.1}},
		{Name: "swarm", Health: 8, Speed: 4, Size: 25, Score: 15, Behavior: BehaviorSwarm, Damage: 8, SpawnWeight: 4, Advanced: true,
			Swarm: &SwarmSpec{Size: 5, FormationRadius: 80}},
		{Name: "regenerator", Health: 35, Speed: 1.8, Size: 42, Score: 35, Behavior: BehaviorTanky, Damage: 18, SpawnWeight: 2, Advanced: true,
			Regen: &RegenSpec{Rate: 3, Delay: 2000}},
		{Name: "kamikaze", Health: 12, Speed: 5, Size: 35, Score: 25, Behavior: BehaviorKamikaze, Damage: 35, SpawnWeight: 3, Advanced: true,
			Kamikaze: &KamikazeSpec{ExplosionRadius: 60, ExplosionDamage: 40, Fuse: 1000, TriggerRange: 80, DetonateRange: 30}},
		{Name: "phase", Health: 28, Speed: 2.2, Size: 48, Score: 45, Behavior: BehaviorPhase, Damage: 16, SpawnWeight: 1, Advanced: true,
			Phase: &PhaseSpec{Duration: 1500, Cooldown: 5000, HealthTrigger: 0.5, DamageTrigger: 0.3}},
		{Name: "hunter", Health: 22, Speed: 2.8, Size: 38, Score: 38, Behavior: BehaviorHunter, Damage: 14, SpawnWeight: 3, Advanced: true,
			Hunter: &HunterSpec{TrackingStrength: 0.8, TrackingRange: 200}},
	}
	out := make(map[string]EnemyKind, len(kinds))
	for _, k := range kinds {
		out[k.Name] = k
	}
	return out
}

func defaultBosses() map[string]BossKind {
	return map[string]BossKind{
		"fortress": {
			Name: "fortress", Health: 800, Size: 120, Speed: 0.8, Damage: 25, Score: 1000, Phases: 3,
			Abilities: []AbilityID{AbilityTurretBarrage, AbilityMissileSwarm, AbilityShieldBurst, AbilityRepairDrones},
			WeakPoints: []WeakPointSpec{
				{X: -30, Y: -35, Size: 15, Health: 100, Vulnerable: true},
				{X: 30, Y: -35, Size: 15, Health: 100, Vulnerable: true},
				{X: 0, Y: -20, Size: 20, Health: 150, Vulnerable: true},
			},
			Movement: MoveFortress,
		},
		"organic": {
			Name: "organic", Health: 1200, Size: 100, Speed: 1.2, Damage: 20, Score: 1500, Phases: 4,
			Abilities: []AbilityID{AbilityTentacleStrike, AbilitySpawnMinions, AbilityAcidSpray, AbilityRegeneration, AbilityBerserk},
			WeakPoints: []WeakPointSpec{
				{X: 0, Y: 0, Size: 25, Health: 200, Vulnerable: true},
			},
			Movement: MoveOrganic,
		},
		"crystalline": {
			Name: "crystalline", Health: 600, Size: 90, Speed: 1.5, Damage: 30, Score: 1200, Phases: 3,
			Abilities: []AbilityID{AbilityCrystalBeam, AbilityShardStorm, AbilityTeleport, AbilityCrystalPrison},
			WeakPoints: []WeakPointSpec{
				{X: -25, Y: -25, Size: 12, Health: 80, Vulnerable: true},
				{X: 25, Y: -25, Size: 12, Health: 80, Vulnerable: true},
				{X: -25, Y: 25, Size: 12, Health: 80, Vulnerable: true},
				{X: 25, Y: 25, Size: 12, Health: 80, Vulnerable: true},
			},
			Movement: MoveCrystalline,
		},
		"shadow": {
			Name: "shadow", Health: 1000, Size: 110, Speed: 2.0, Damage: 35, Score: 2000, Phases: 5,
			Abilities: []AbilityID{AbilityShadowClone, AbilityVoidBlast, AbilityDarkness, AbilitySoulDrain},
			WeakPoints: []WeakPointSpec{
				{X: 0, Y: -40, Size: 18, Health: 120, Vulnerable: false},
			},
			Movement: MoveShadow,
		},
	}
}

func defaultAbilities() map[AbilityID]AbilitySpec {
	specs := []AbilitySpec{
		{ID: AbilityTurretBarrage, Cooldown: 3000, Duration: 2000, Category: CategoryLong, Damage: 15, Count: 8, Stagger: 100},
		{ID: AbilityMissileSwarm, Cooldown: 8000, Duration: 1000, Category: CategoryLong, Damage: 30, Count: 12, Stagger: 200, Homing: 0.1, Spread: math.Pi / 4},
		{ID: AbilityShieldBurst, Cooldown: 12000, Duration: 3000, Category: CategoryRecovery, Amount: 200},
		{ID: AbilityRepairDrones, Cooldown: 15000, Duration: 5000, Category: CategoryRecovery, Amount: 3, Count: 4},
		{ID: AbilityTentacleStrike, Cooldown: 2500, Duration: 1500, Category: CategoryClose, Damage: 20, Range: 150},
		{ID: AbilitySpawnMinions, Cooldown: 10000, Duration: 1000, Count: 6},
		{ID: AbilityAcidSpray, Cooldown: 6000, Duration: 3000, Damage: 8, Count: 5, Spread: math.Pi / 3, Status: StatusPoisoned},
		{ID: AbilityRegeneration, Cooldown: 20000, Duration: 8000, Category: CategoryRecovery, Amount: 5},
		{ID: AbilityBerserk, Cooldown: 30000, Duration: 10000, Category: CategoryUltimate, Speed: 2.0, Amount: 1.5},
		{ID: AbilityCrystalBeam, Cooldown: 4000, Duration: 2000, Category: CategoryClose, Damage: 25, Width: 20, Range: 900},
		{ID: AbilityShardStorm, Cooldown: 7000, Duration: 4000, Category: CategoryLong, Damage: 12, Count: 20, Stagger: 150},
		{ID: AbilityTeleport, Cooldown: 8000, Duration: 500},
		{ID: AbilityCrystalPrison, Cooldown: 18000, Duration: 6000, Radius: 80, Status: StatusFrozen},
		{ID: AbilityShadowClone, Cooldown: 12000, Duration: 8000, Count: 2},
		{ID: AbilityVoidBlast, Cooldown: 6000, Duration: 1500, Category: CategoryClose, Damage: 40, Radius: 100},
		{ID: AbilityDarkness, Cooldown: 25000, Duration: 10000, Category: CategoryUltimate, Amount: 0.7},
		{ID: AbilitySoulDrain, Cooldown: 15000, Duration: 5000, Damage: 2, Amount: 1},
		{ID: AbilityFinalForm, Cooldown: 0, Duration: 30000, Category: CategoryUltimate, Size: 1.5, Speed: 1.8, Amount: 2.0},
	}
	out := make(map[AbilityID]AbilitySpec, len(specs))
	for _, s := range specs {
		out[s.ID] = s
	}
	return out
}

func defaultHazards() map[string]HazardKind {
	kinds := []HazardKind{
		{Name: "meteor", Damage: 15, Health: 30, Speed: 3, Size: 35, RotationSpeed: 0.05, SpawnChance: 0.1, Destroyable: true, Score: 5},
		{Name: "blackhole", Damage: 5, Speed: 1, Size: 80, RotationSpeed: 0.1, SpawnChance: 0.02, PullRadius: 150, PullStrength: 0.3, Life: 15000},
		{Name: "energyfield", Damage: 8, Health: 50, Speed: 2, Size: 60, SpawnChance: 0.05, Destroyable: true, Score: 10, ElectricRadius: 80, ShockChance: 0.02},
		{Name: "asteroid", Damage: 25, Health: 80, Speed: 1.5, Size: 50, RotationSpeed: 0.02, SpawnChance: 0.08, Destroyable: true, Score: 15, Splits: true},
		{Name: "wormhole", Speed: 0.5, Size: 60, RotationSpeed: 0.08, SpawnChance: 0.01, TeleportRadius: 40, Life: 10000, Paired: true},
		{Name: "solarflare", Damage: 12, Speed: 8, Size: 200, SpawnChance: 0.03, Wave: true},
	}
	out := make(map[string]HazardKind, len(kinds))
	for _, k := range kinds {
		out[k.Name] = k
	}
	return out
}

func defaultStatus() map[StatusKind]StatusSpec {
	return map[StatusKind]StatusSpec{
		StatusBurning:  {Kind: StatusBurning, Duration: 3000, Magnitude: 2},
		StatusFrozen:   {Kind: StatusFrozen, Duration: 2000, Magnitude: 0.5},
		StatusShocked:  {Kind: StatusShocked, Duration: 1500, Magnitude: 0.3},
		StatusPoisoned: {Kind: StatusPoisoned, Duration: 5000, Magnitude: 1},
		StatusWeakened: {Kind: StatusWeakened, Duration: 4000, Magnitude: 0.3},
	}
}

func defaultWaves() WaveTuning {
	return WaveTuning{
		BaseEnemies:      5,
		EnemiesPerWave:   1.5,
		BossEvery:        5,
		EpicBossEvery:    10,
		BaseSpawnDelay:   2000,
		SpawnDelayStep:   100,
		MinSpawnDelay:    500,
		WaveDelay:        5000,
		SpawnAttempts:    10,
		SpawnMinDistance: 40,
		AdvancedFrom:     3,
		EventChance:      0.0001,
		EventMinMs:       8000,
		EventMaxMs:       15000,
		Unlocks:          map[string]int{"basic": 1, "fast": 2, "heavy": 3, "seeker": 4},
		Bosses:           []string{"fortress", "organic", "crystalline", "shadow"},
	}
}

func defaultPlayer() PlayerTuning {
	return PlayerTuning{
		Radius:          20,
		Health:          100,
		Lives:           3,
		Speed:           5,
		Acceleration:    0.3,
		Friction:        0.85,
		SpawnX:          600,
		SpawnY:          700,
		FireRate:        200,
		Bullet:          "player_basic",
		MaxWeaponLevel:  5,
		InvulnerableMs:  2000,
		RespawnMs:       3000,
		FlashMs:         300,
		MaxShieldEnergy: 100,
		ShieldCost:      30,
		ShieldDuration:  5000,
		ShieldRegen:     10,
		ComboWindow:     3000,
		PowerupHeal:     25,
		RapidFireMs:     5000,
		RapidFireScale:  0.3,
	}
}

func defaultTime() TimeTuning {
	return TimeTuning{
		Effects: map[TimeEffectKind]TimeEffectSpec{
			TimeBulletTime: {Kind: TimeBulletTime, Scale: 0.3, Duration: 2000, Cooldown: 15000},
			TimeFreeze:     {Kind: TimeFreeze, Scale: 0, Duration: 1000, Cooldown: 20000},
			TimeAccelerate: {Kind: TimeAccelerate, Scale: 2, Duration: 1500, Cooldown: 10000},
		},
		MaxEnergy:      100,
		MinEnergy:      20,
		EnergyDrain:    50,
		EnergyRegen:    20,
		TransitionRate: 3,
		SnapWithin:     0.01,
		ComboEvery:     25,
		ComboMs:        2000,
	}
}

func defaultWeapons() WeaponTuning {
	kinds := []WeaponSpec{
		{Kind: WeaponBasic, Bullet: "player_basic", FireRate: 200, Damage: 10, Count: 1, Heat: 5, Unlocked: true},
		{Kind: WeaponPlasma, Bullet: "player_plasma", FireRate: 300, Damage: 18, Count: 1, Heat: 8, SizeGain: 0.5},
		{Kind: WeaponShotgun, Bullet: "player_shotgun", FireRate: 500, Damage: 8, Spread: math.Pi / 6, Count: 5, Heat: 12, OffsetY: -5},
		{Kind: WeaponMissile, Bullet: "player_homing", FireRate: 800, Damage: 40, Count: 1, Heat: 15, Ammo: 20, AmmoRegen: 0.5, Homing: 0.15, OffsetX: 15, Alternate: true},
		{Kind: WeaponLaser, Bullet: "player_laser", FireRate: 50, Damage: 3, Count: 1, Heat: 3, Pierce: true, Beam: 300},
		{Kind: WeaponWave, Bullet: "player_wave", FireRate: 400, Damage: 25, Spread: math.Pi / 4, Count: 1, Heat: 10, BlastRadius: 50},
		{Kind: WeaponRailgun, Bullet: "player_heavy", FireRate: 1200, Damage: 80, Count: 1, Heat: 25, Ammo: 10, AmmoRegen: 0.2, ChargeMs: 1000, Pierce: true, MaxPierce: 3},
		{Kind: WeaponFlamethrower, Bullet: "player_flame", FireRate: 80, Damage: 5, Spread: math.Pi / 8, Count: 3, Heat: 2, Status: StatusBurning, OffsetY: -10},
	}
	out := make(map[WeaponKind]WeaponSpec, len(kinds))
	for _, k := range kinds {
		out[k.Kind] = k
	}
	return WeaponTuning{
		Kinds:         out,
		MaxHeat:       100,
		OverheatAt:    80,
		CoolBelow:     0.5,
		HeatCool:      30,
		MaxLevel:      5,
		LevelDamage:   1.2,
		LevelRate:     0.9,
		OverchargeAt:  1.5,
		MaxCharge:     1.5,
		ComboWindowMs: 2000,
		ComboStep:     0.1,
		ComboMax:      2,
	}
}
