package component

import "fmt"

// ProjectileKind is the tuning for one bullet type.
type ProjectileKind struct {
	Name       string
	Speed      float64
	Damage     float64
	Size       float64
	Pierce     bool
	MaxPierce  int
	Continuous bool
	Homing     float64
	Life       float64
}

type ShieldSpec struct {
	Health     float64
	RegenRate  float64
	RegenDelay float64
}

type StealthSpec struct {
	Duration       float64
	Cooldown       float64
	AlphaVisible   float64
	AlphaInvisible float64
}

type SwarmSpec struct {
	Size            int
	FormationRadius float64
}

type RegenSpec struct {
	Rate  float64
	Delay float64
}

type KamikazeSpec struct {
	ExplosionRadius float64
	ExplosionDamage float64
	Fuse            float64
	TriggerRange    float64
	DetonateRange   float64
}

type PhaseSpec struct {
	Duration float64
	Cooldown float64
	// HealthTrigger arms the phase from per-tick checks, DamageTrigger from hits.
	HealthTrigger float64
	DamageTrigger float64
}

type HunterSpec struct {
	TrackingStrength float64
	TrackingRange    float64
}

type SplitSpec struct {
	Count       int
	Child       string
	HealthScale float64
	SizeScale   float64
	Distance    float64
	Speed       float64
}

// EnemyKind is the tuning for one enemy type. Optional payload specs turn on
// the matching advanced state machine.
type EnemyKind struct {
	Name          string
	Health        float64
	Speed         float64
	Size          float64
	Score         float64
	FireRate      float64
	Bullet        string
	Behavior      BehaviorKind
	Damage        float64
	PowerupChance float64
	SpawnWeight   float64
	Advanced      bool

	Shield   *ShieldSpec
	Stealth  *StealthSpec
	Swarm    *SwarmSpec
	Regen    *RegenSpec
	Kamikaze *KamikazeSpec
	Phase    *PhaseSpec
	Hunter   *HunterSpec
	Split    *SplitSpec
}

// WeakPointSpec places one boss weak point relative to the boss center.
type WeakPointSpec struct {
	X          float64
	Y          float64
	Size       float64
	Health     float64
	Vulnerable bool
}

// BossKind is the tuning for one epic boss type.
type BossKind struct {
	Name       string
	Health     float64
	Size       float64
	Speed      float64
	Damage     float64
	Score      float64
	Phases     int
	Abilities  []AbilityID
	WeakPoints []WeakPointSpec
	Movement   BossMovement
}

// AbilitySpec is the tuning for one boss ability.
type AbilitySpec struct {
	ID       AbilityID
	Cooldown float64
	Duration float64
	Category AbilityCategory
	Damage   float64
	Count    int
	Stagger  float64
	Range    float64
	Radius   float64
	Amount   float64
	Homing   float64
	Spread   float64
	Width    float64
	Speed    float64
	Size     float64
	Status   StatusKind
}

// HazardKind is the tuning for one environmental hazard type.
type HazardKind struct {
	Name           string
	Damage         float64
	Health         float64
	Speed          float64
	Size           float64
	RotationSpeed  float64
	SpawnChance    float64
	Destroyable    bool
	Score          float64
	PullRadius     float64
	PullStrength   float64
	ElectricRadius float64
	ShockChance    float64
	TeleportRadius float64
	Life           float64
	Paired         bool
	Splits         bool
	Wave           bool
}

// StatusSpec is the tuning for one status effect.
type StatusSpec struct {
	Kind      StatusKind
	Duration  float64
	Magnitude float64
}

type WaveTuning struct {
	BaseEnemies      float64
	EnemiesPerWave   float64
	BossEvery        int
	EpicBossEvery    int
	BaseSpawnDelay   float64
	SpawnDelayStep   float64
	MinSpawnDelay    float64
	WaveDelay        float64
	SpawnAttempts    int
	SpawnMinDistance float64
	AdvancedFrom     int
	EventChance      float64
	EventMinMs       float64
	EventMaxMs       float64
	// Unlocks maps a basic kind to the first wave it appears in.
	Unlocks map[string]int
	Bosses  []string
}

type PlayerTuning struct {
	Radius          float64
	Health          float64
	Lives           int
	Speed           float64
	Acceleration    float64
	Friction        float64
	SpawnX          float64
	SpawnY          float64
	FireRate        float64
	Bullet          string
	MaxWeaponLevel  int
	InvulnerableMs  float64
	RespawnMs       float64
	FlashMs         float64
	MaxShieldEnergy float64
	ShieldCost      float64
	ShieldDuration  float64
	ShieldRegen     float64
	ComboWindow     float64
	PowerupHeal     float64
	RapidFireMs     float64
	RapidFireScale  float64
}

// Catalog is the full tuning set the kernel spawns from.
type Catalog struct {
	Projectiles map[string]ProjectileKind
	Enemies     map[string]EnemyKind
	Bosses      map[string]BossKind
	Abilities   map[AbilityID]AbilitySpec
	Hazards     map[string]HazardKind
	Status      map[StatusKind]StatusSpec
	Waves       WaveTuning
	Player      PlayerTuning
	Time        TimeTuning
	Weapons     WeaponTuning
}

// Validate checks cross references between catalog entries.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil catalog", ErrInvalidCatalog)
	}
	for name, e := range c.Enemies {
		if e.Health <= 0 {
			return fmt.Errorf("%w: enemy %s health must be positive", ErrInvalidCatalog, name)
		}
		if e.Bullet != "" {
			if _, ok := c.Projectiles[e.Bullet]; !ok {
				return fmt.Errorf("%w: enemy %s bullet %q", ErrInvalidCatalog, name, e.Bullet)
			}
		}
		if e.Split != nil {
			if _, ok := c.Enemies[e.Split.Child]; !ok {
				return fmt.Errorf("%w: enemy %s split child %q", ErrInvalidCatalog, name, e.Split.Child)
			}
		}
	}
	for name, b := range c.Bosses {
		if b.Phases <= 0 {
			return fmt.Errorf("%w: boss %s phases must be positive", ErrInvalidCatalog, name)
		}
		for _, id := range b.Abilities {
			if _, ok := c.Abilities[id]; !ok {
				return fmt.Errorf("%w: boss %s ability %q", ErrInvalidCatalog, name, id)
			}
		}
	}
	if _, ok := c.Projectiles[c.Player.Bullet]; !ok {
		return fmt.Errorf("%w: player bullet %q", ErrInvalidCatalog, c.Player.Bullet)
	}
	for _, kind := range TimeEffectKinds {
		if _, ok := c.Time.Effects[kind]; !ok {
			return fmt.Errorf("%w: time effect %q missing", ErrInvalidCatalog, kind)
		}
	}
	if c.Time.ComboEvery < 0 {
		return fmt.Errorf("%w: time combo_every must not be negative", ErrInvalidCatalog)
	}
	for kind, wp := range c.Weapons.Kinds {
		if wp.Bullet == "" {
			continue
		}
		if _, ok := c.Projectiles[wp.Bullet]; !ok {
			return fmt.Errorf("%w: weapon %s bullet %q", ErrInvalidCatalog, kind, wp.Bullet)
		}
	}
	if _, ok := c.Weapons.Kinds[WeaponBasic]; !ok {
		return fmt.Errorf("%w: weapon %q missing", ErrInvalidCatalog, WeaponBasic)
	}
	return nil
}

// Weapon looks up a weapon spec.
func (c *Catalog) Weapon(kind WeaponKind) (WeaponSpec, bool) {
	if c == nil {
		return WeaponSpec{}, false
	}
	k, ok := c.Weapons.Kinds[kind]
	return k, ok
}

// Projectile looks up a projectile kind.
func (c *Catalog) Projectile(name string) (ProjectileKind, bool) {
	if c == nil {
		return ProjectileKind{}, false
	}
	k, ok := c.Projectiles[name]
	return k, ok
}

// Enemy looks up an enemy kind.
func (c *Catalog) Enemy(name string) (EnemyKind, bool) {
	if c == nil {
		return EnemyKind{}, false
	}
	k, ok := c.Enemies[name]
	return k, ok
}

// Boss looks up a boss kind.
func (c *Catalog) Boss(name string) (BossKind, bool) {
	if c == nil {
		return BossKind{}, false
	}
	k, ok := c.Bosses[name]
	return k, ok
}

// Ability looks up an ability spec.
func (c *Catalog) Ability(id AbilityID) (AbilitySpec, bool) {
	if c == nil {
		return AbilitySpec{}, false
	}
	k, ok := c.Abilities[id]
	return k, ok
}

// Hazard looks up a hazard kind.
func (c *Catalog) Hazard(name string) (HazardKind, bool) {
	if c == nil {
		return HazardKind{}, false
	}
	k, ok := c.Hazards[name]
	return k, ok
}
