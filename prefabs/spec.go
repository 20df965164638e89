package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/shmup/ecs"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

// Tuning files in load order.
const (
	WorldFile       = "world.yaml"
	ProjectilesFile = "projectiles.yaml"
	EnemiesFile     = "enemies.yaml"
	BossesFile      = "bosses.yaml"
	AbilitiesFile   = "abilities.yaml"
	HazardsFile     = "hazards.yaml"
	StatusFile      = "status.yaml"
	WavesFile       = "waves.yaml"
	PlayerFile      = "player.yaml"
	TimeFile        = "time.yaml"
	WeaponsFile     = "weapons.yaml"

	AbilityWeightsScript = "ability_weights.tengo"
)

// CatalogFiles lists every file LoadCatalog reads.
var CatalogFiles = []string{
	ProjectilesFile, EnemiesFile, BossesFile, AbilitiesFile,
	HazardsFile, StatusFile, WavesFile, PlayerFile,
	TimeFile, WeaponsFile,
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadConfig reads world.yaml over the built-in world constants, so a file
// only needs the fields it changes.
func LoadConfig() (ecs.Config, error) {
	cfg := ecs.DefaultConfig()
	data, err := Load(WorldFile)
	if err != nil {
		return cfg, fmt.Errorf("prefabs: load %s: %w", WorldFile, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("prefabs: unmarshal %s: %w", WorldFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("prefabs: %s: %w", WorldFile, err)
	}
	return cfg, nil
}

type ProjectileSpec struct {
	Name       string  `yaml:"name"`
	Speed      float64 `yaml:"speed"`
	Damage     float64 `yaml:"damage"`
	Size       float64 `yaml:"size"`
	Pierce     bool    `yaml:"pierce"`
	MaxPierce  int     `yaml:"max_pierce"`
	Continuous bool    `yaml:"continuous"`
	Homing     float64 `yaml:"homing"`
	Life       float64 `yaml:"life"`
}

type ProjectileDefaultsSpec struct {
	MaxPierce int     `yaml:"max_pierce"`
	Life      float64 `yaml:"life"`
}

type ProjectilesSpec struct {
	Defaults    ProjectileDefaultsSpec `yaml:"defaults"`
	Projectiles []ProjectileSpec       `yaml:"projectiles"`
}

// EnemySpec is one enemy kind. Components holds the optional payloads keyed
// by name (shield, stealth, swarm, regen, kamikaze, phase, hunter, split).
type EnemySpec struct {
	Name          string         `yaml:"name"`
	Health        float64        `yaml:"health"`
	Speed         float64        `yaml:"speed"`
	Size          float64        `yaml:"size"`
	Score         float64        `yaml:"score"`
	FireRate      float64        `yaml:"fire_rate"`
	Bullet        string         `yaml:"bullet"`
	Behavior      string         `yaml:"behavior"`
	Damage        float64        `yaml:"damage"`
	PowerupChance float64        `yaml:"powerup_chance"`
	SpawnWeight   float64        `yaml:"spawn_weight"`
	Advanced      bool           `yaml:"advanced"`
	Components    map[string]any `yaml:"components"`
}

type EnemiesSpec struct {
	Enemies []EnemySpec `yaml:"enemies"`
}

type WeakPointSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Size       float64 `yaml:"size"`
	Health     float64 `yaml:"health"`
	Vulnerable bool    `yaml:"vulnerable"`
}

type BossSpec struct {
	Name       string          `yaml:"name"`
	Health     float64         `yaml:"health"`
	Size       float64         `yaml:"size"`
	Speed      float64         `yaml:"speed"`
	Damage     float64         `yaml:"damage"`
	Score      float64         `yaml:"score"`
	Phases     int             `yaml:"phases"`
	Movement   string          `yaml:"movement"`
	Abilities  []string        `yaml:"abilities"`
	WeakPoints []WeakPointSpec `yaml:"weak_points"`
}

type BossesSpec struct {
	Bosses []BossSpec `yaml:"bosses"`
}

// AbilitySpec is one boss ability. Spread is given in degrees.
type AbilitySpec struct {
	ID        string  `yaml:"id"`
	Cooldown  float64 `yaml:"cooldown"`
	Duration  float64 `yaml:"duration"`
	Category  string  `yaml:"category"`
	Damage    float64 `yaml:"damage"`
	Count     int     `yaml:"count"`
	Stagger   float64 `yaml:"stagger"`
	Range     float64 `yaml:"range"`
	Radius    float64 `yaml:"radius"`
	Amount    float64 `yaml:"amount"`
	Homing    float64 `yaml:"homing"`
	SpreadDeg float64 `yaml:"spread_deg"`
	Width     float64 `yaml:"width"`
	Speed     float64 `yaml:"speed"`
	Size      float64 `yaml:"size"`
	Status    string  `yaml:"status"`
}

type AbilitiesSpec struct {
	Abilities []AbilitySpec `yaml:"abilities"`
}

type HazardSpec struct {
	Name           string  `yaml:"name"`
	Damage         float64 `yaml:"damage"`
	Health         float64 `yaml:"health"`
	Speed          float64 `yaml:"speed"`
	Size           float64 `yaml:"size"`
	RotationSpeed  float64 `yaml:"rotation_speed"`
	SpawnChance    float64 `yaml:"spawn_chance"`
	Destroyable    bool    `yaml:"destroyable"`
	Score          float64 `yaml:"score"`
	PullRadius     float64 `yaml:"pull_radius"`
	PullStrength   float64 `yaml:"pull_strength"`
	ElectricRadius float64 `yaml:"electric_radius"`
	ShockChance    float64 `yaml:"shock_chance"`
	TeleportRadius float64 `yaml:"teleport_radius"`
	Life           float64 `yaml:"life"`
	Paired         bool    `yaml:"paired"`
	Splits         bool    `yaml:"splits"`
	Wave           bool    `yaml:"wave"`
}

type HazardsSpec struct {
	Hazards []HazardSpec `yaml:"hazards"`
}

type StatusSpec struct {
	Kind      string  `yaml:"kind"`
	Duration  float64 `yaml:"duration"`
	Magnitude float64 `yaml:"magnitude"`
}

type StatusEffectsSpec struct {
	Effects []StatusSpec `yaml:"effects"`
}

type WavesSpec struct {
	BaseEnemies      float64        `yaml:"base_enemies"`
	EnemiesPerWave   float64        `yaml:"enemies_per_wave"`
	BossEvery        int            `yaml:"boss_every"`
	EpicBossEvery    int            `yaml:"epic_boss_every"`
	BaseSpawnDelay   float64        `yaml:"base_spawn_delay"`
	SpawnDelayStep   float64        `yaml:"spawn_delay_step"`
	MinSpawnDelay    float64        `yaml:"min_spawn_delay"`
	WaveDelay        float64        `yaml:"wave_delay"`
	SpawnAttempts    int            `yaml:"spawn_attempts"`
	SpawnMinDistance float64        `yaml:"spawn_min_distance"`
	AdvancedFrom     int            `yaml:"advanced_from"`
	EventChance      float64        `yaml:"event_chance"`
	EventMinMs       float64        `yaml:"event_min_ms"`
	EventMaxMs       float64        `yaml:"event_max_ms"`
	Unlocks          map[string]int `yaml:"unlocks"`
	Bosses           []string       `yaml:"bosses"`
}

type PlayerSpec struct {
	Radius          float64 `yaml:"radius"`
	Health          float64 `yaml:"health"`
	Lives           int     `yaml:"lives"`
	Speed           float64 `yaml:"speed"`
	Acceleration    float64 `yaml:"acceleration"`
	Friction        float64 `yaml:"friction"`
	SpawnX          float64 `yaml:"spawn_x"`
	SpawnY          float64 `yaml:"spawn_y"`
	FireRate        float64 `yaml:"fire_rate"`
	Bullet          string  `yaml:"bullet"`
	MaxWeaponLevel  int     `yaml:"max_weapon_level"`
	InvulnerableMs  float64 `yaml:"invulnerable_ms"`
	RespawnMs       float64 `yaml:"respawn_ms"`
	FlashMs         float64 `yaml:"flash_ms"`
	MaxShieldEnergy float64 `yaml:"max_shield_energy"`
	ShieldCost      float64 `yaml:"shield_cost"`
	ShieldDuration  float64 `yaml:"shield_duration"`
	ShieldRegen     float64 `yaml:"shield_regen"`
	ComboWindow     float64 `yaml:"combo_window"`
	PowerupHeal     float64 `yaml:"powerup_heal"`
	RapidFireMs     float64 `yaml:"rapid_fire_ms"`
	RapidFireScale  float64 `yaml:"rapid_fire_scale"`
}

type TimeEffectSpec struct {
	Kind     string  `yaml:"kind"`
	Scale    float64 `yaml:"scale"`
	Duration float64 `yaml:"duration"`
	Cooldown float64 `yaml:"cooldown"`
}

type TimeSpec struct {
	MaxEnergy      float64          `yaml:"max_energy"`
	MinEnergy      float64          `yaml:"min_energy"`
	EnergyDrain    float64          `yaml:"energy_drain"`
	EnergyRegen    float64          `yaml:"energy_regen"`
	TransitionRate float64          `yaml:"transition_rate"`
	SnapWithin     float64          `yaml:"snap_within"`
	ComboEvery     int              `yaml:"combo_every"`
	ComboMs        float64          `yaml:"combo_ms"`
	Effects        []TimeEffectSpec `yaml:"effects"`
}

// WeaponSpec is one player weapon. Spread is given in degrees.
type WeaponSpec struct {
	Kind        string  `yaml:"kind"`
	Bullet      string  `yaml:"bullet"`
	FireRate    float64 `yaml:"fire_rate"`
	Damage      float64 `yaml:"damage"`
	SpreadDeg   float64 `yaml:"spread_deg"`
	Count       int     `yaml:"count"`
	Heat        float64 `yaml:"heat"`
	Ammo        int     `yaml:"ammo"`
	AmmoRegen   float64 `yaml:"ammo_regen"`
	ChargeMs    float64 `yaml:"charge_ms"`
	Homing      float64 `yaml:"homing"`
	Pierce      bool    `yaml:"pierce"`
	MaxPierce   int     `yaml:"max_pierce"`
	BlastRadius float64 `yaml:"blast_radius"`
	Beam        float64 `yaml:"beam"`
	Status      string  `yaml:"status"`
	SizeGain    float64 `yaml:"size_gain"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	Alternate   bool    `yaml:"alternate"`
	Unlocked    bool    `yaml:"unlocked"`
}

type WeaponsSpec struct {
	MaxHeat       float64      `yaml:"max_heat"`
	OverheatAt    float64      `yaml:"overheat_at"`
	CoolBelow     float64      `yaml:"cool_below"`
	HeatCool      float64      `yaml:"heat_cool"`
	MaxLevel      int          `yaml:"max_level"`
	LevelDamage   float64      `yaml:"level_damage"`
	LevelRate     float64      `yaml:"level_rate"`
	OverchargeAt  float64      `yaml:"overcharge_at"`
	MaxCharge     float64      `yaml:"max_charge"`
	ComboWindowMs float64      `yaml:"combo_window_ms"`
	ComboStep     float64      `yaml:"combo_step"`
	ComboMax      float64      `yaml:"combo_max"`
	Weapons       []WeaponSpec `yaml:"weapons"`
}
