package prefabs

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/milk9111/shmup/ecs/component"
	"gopkg.in/yaml.v3"
)

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type ShieldComponentSpec struct {
	Health     float64 `yaml:"health"`
	RegenRate  float64 `yaml:"regen_rate"`
	RegenDelay float64 `yaml:"regen_delay"`
}

type StealthComponentSpec struct {
	Duration       float64 `yaml:"duration"`
	Cooldown       float64 `yaml:"cooldown"`
	AlphaVisible   float64 `yaml:"alpha_visible"`
	AlphaInvisible float64 `yaml:"alpha_invisible"`
}

type SwarmComponentSpec struct {
	Size            int     `yaml:"size"`
	FormationRadius float64 `yaml:"formation_radius"`
}

type RegenComponentSpec struct {
	Rate  float64 `yaml:"rate"`
	Delay float64 `yaml:"delay"`
}

type KamikazeComponentSpec struct {
	ExplosionRadius float64 `yaml:"explosion_radius"`
	ExplosionDamage float64 `yaml:"explosion_damage"`
	Fuse            float64 `yaml:"fuse"`
	TriggerRange    float64 `yaml:"trigger_range"`
	DetonateRange   float64 `yaml:"detonate_range"`
}

type PhaseComponentSpec struct {
	Duration      float64 `yaml:"duration"`
	Cooldown      float64 `yaml:"cooldown"`
	HealthTrigger float64 `yaml:"health_trigger"`
	DamageTrigger float64 `yaml:"damage_trigger"`
}

type HunterComponentSpec struct {
	TrackingStrength float64 `yaml:"tracking_strength"`
	TrackingRange    float64 `yaml:"tracking_range"`
}

type SplitComponentSpec struct {
	Count       int     `yaml:"count"`
	Child       string  `yaml:"child"`
	HealthScale float64 `yaml:"health_scale"`
	SizeScale   float64 `yaml:"size_scale"`
	Distance    float64 `yaml:"distance"`
	Speed       float64 `yaml:"speed"`
}

// LoadCatalog reads every tuning file and builds a validated catalog.
func LoadCatalog() (*component.Catalog, error) {
	projectiles, err := LoadSpec[ProjectilesSpec](ProjectilesFile)
	if err != nil {
		return nil, err
	}
	enemies, err := LoadSpec[EnemiesSpec](EnemiesFile)
	if err != nil {
		return nil, err
	}
	bosses, err := LoadSpec[BossesSpec](BossesFile)
	if err != nil {
		return nil, err
	}
	abilities, err := LoadSpec[AbilitiesSpec](AbilitiesFile)
	if err != nil {
		return nil, err
	}
	hazards, err := LoadSpec[HazardsSpec](HazardsFile)
	if err != nil {
		return nil, err
	}
	status, err := LoadSpec[StatusEffectsSpec](StatusFile)
	if err != nil {
		return nil, err
	}
	waves, err := LoadSpec[WavesSpec](WavesFile)
	if err != nil {
		return nil, err
	}
	player, err := LoadSpec[PlayerSpec](PlayerFile)
	if err != nil {
		return nil, err
	}
	timing, err := LoadSpec[TimeSpec](TimeFile)
	if err != nil {
		return nil, err
	}
	weapons, err := LoadSpec[WeaponsSpec](WeaponsFile)
	if err != nil {
		return nil, err
	}

	c := &component.Catalog{
		Projectiles: BuildProjectiles(projectiles),
		Hazards:     BuildHazards(hazards),
		Waves:       BuildWaves(waves),
		Player:      BuildPlayer(player),
	}
	if c.Enemies, err = BuildEnemies(enemies); err != nil {
		return nil, err
	}
	if c.Bosses, err = BuildBosses(bosses); err != nil {
		return nil, err
	}
	if c.Abilities, err = BuildAbilities(abilities); err != nil {
		return nil, err
	}
	if c.Status, err = BuildStatus(status); err != nil {
		return nil, err
	}
	if c.Time, err = BuildTime(timing); err != nil {
		return nil, err
	}
	if c.Weapons, err = BuildWeapons(weapons); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: build catalog: %w", err)
	}
	return c, nil
}

func BuildProjectiles(spec ProjectilesSpec) map[string]component.ProjectileKind {
	out := make(map[string]component.ProjectileKind, len(spec.Projectiles))
	for _, p := range spec.Projectiles {
		k := component.ProjectileKind{
			Name:       p.Name,
			Speed:      p.Speed,
			Damage:     p.Damage,
			Size:       p.Size,
			Pierce:     p.Pierce,
			MaxPierce:  p.MaxPierce,
			Continuous: p.Continuous,
			Homing:     p.Homing,
			Life:       p.Life,
		}
		if k.MaxPierce == 0 {
			k.MaxPierce = spec.Defaults.MaxPierce
		}
		if k.Life == 0 {
			k.Life = spec.Defaults.Life
		}
		out[k.Name] = k
	}
	return out
}

func BuildEnemies(spec EnemiesSpec) (map[string]component.EnemyKind, error) {
	out := make(map[string]component.EnemyKind, len(spec.Enemies))
	for _, e := range spec.Enemies {
		behavior, ok := component.ParseBehavior(e.Behavior)
		if !ok {
			return nil, fmt.Errorf("%w: enemy %s behavior %q", ErrInvalidSpec, e.Name, e.Behavior)
		}
		k := component.EnemyKind{
			Name:          e.Name,
			Health:        e.Health,
			Speed:         e.Speed,
			Size:          e.Size,
			Score:         e.Score,
			FireRate:      e.FireRate,
			Bullet:        e.Bullet,
			Behavior:      behavior,
			Damage:        e.Damage,
			PowerupChance: e.PowerupChance,
			SpawnWeight:   e.SpawnWeight,
			Advanced:      e.Advanced,
		}
		if err := applyEnemyComponents(&k, e.Components); err != nil {
			return nil, fmt.Errorf("prefabs: enemy %s: %w", e.Name, err)
		}
		out[k.Name] = k
	}
	return out, nil
}

// applyEnemyComponents decodes each payload in name order so the first
// failure reported is stable.
func applyEnemyComponents(k *component.EnemyKind, raw map[string]any) error {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := applyEnemyComponent(k, name, raw[name]); err != nil {
			return fmt.Errorf("component %s: %w", name, err)
		}
	}
	return nil
}

func applyEnemyComponent(k *component.EnemyKind, name string, raw any) error {
	switch name {
	case "shield":
		s, err := DecodeComponentSpec[ShieldComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Shield = &component.ShieldSpec{Health: s.Health, RegenRate: s.RegenRate, RegenDelay: s.RegenDelay}
	case "stealth":
		s, err := DecodeComponentSpec[StealthComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Stealth = &component.StealthSpec{Duration: s.Duration, Cooldown: s.Cooldown, AlphaVisible: s.AlphaVisible, AlphaInvisible: s.AlphaInvisible}
	case "swarm":
		s, err := DecodeComponentSpec[SwarmComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Swarm = &component.SwarmSpec{Size: s.Size, FormationRadius: s.FormationRadius}
	case "regen":
		s, err := DecodeComponentSpec[RegenComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Regen = &component.RegenSpec{Rate: s.Rate, Delay: s.Delay}
	case "kamikaze":
		s, err := DecodeComponentSpec[KamikazeComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Kamikaze = &component.KamikazeSpec{
			ExplosionRadius: s.ExplosionRadius,
			ExplosionDamage: s.ExplosionDamage,
			Fuse:            s.Fuse,
			TriggerRange:    s.TriggerRange,
			DetonateRange:   s.DetonateRange,
		}
	case "phase":
		s, err := DecodeComponentSpec[PhaseComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Phase = &component.PhaseSpec{Duration: s.Duration, Cooldown: s.Cooldown, HealthTrigger: s.HealthTrigger, DamageTrigger: s.DamageTrigger}
	case "hunter":
		s, err := DecodeComponentSpec[HunterComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Hunter = &component.HunterSpec{TrackingStrength: s.TrackingStrength, TrackingRange: s.TrackingRange}
	case "split":
		s, err := DecodeComponentSpec[SplitComponentSpec](raw)
		if err != nil {
			return err
		}
		k.Split = &component.SplitSpec{
			Count:       s.Count,
			Child:       s.Child,
			HealthScale: s.HealthScale,
			SizeScale:   s.SizeScale,
			Distance:    s.Distance,
			Speed:       s.Speed,
		}
	default:
		return fmt.Errorf("%w: unknown component", ErrInvalidSpec)
	}
	return nil
}

func BuildBosses(spec BossesSpec) (map[string]component.BossKind, error) {
	out := make(map[string]component.BossKind, len(spec.Bosses))
	for _, b := range spec.Bosses {
		movement, ok := component.ParseBossMovement(b.Movement)
		if !ok {
			return nil, fmt.Errorf("%w: boss %s movement %q", ErrInvalidSpec, b.Name, b.Movement)
		}
		k := component.BossKind{
			Name:     b.Name,
			Health:   b.Health,
			Size:     b.Size,
			Speed:    b.Speed,
			Damage:   b.Damage,
			Score:    b.Score,
			Phases:   b.Phases,
			Movement: movement,
		}
		for _, id := range b.Abilities {
			k.Abilities = append(k.Abilities, component.AbilityID(id))
		}
		for _, wp := range b.WeakPoints {
			k.WeakPoints = append(k.WeakPoints, component.WeakPointSpec{
				X:          wp.X,
				Y:          wp.Y,
				Size:       wp.Size,
				Health:     wp.Health,
				Vulnerable: wp.Vulnerable,
			})
		}
		out[k.Name] = k
	}
	return out, nil
}

func BuildAbilities(spec AbilitiesSpec) (map[component.AbilityID]component.AbilitySpec, error) {
	out := make(map[component.AbilityID]component.AbilitySpec, len(spec.Abilities))
	for _, a := range spec.Abilities {
		category := component.ParseCategory(a.Category)
		if a.Category != "" && category == component.CategoryNone {
			return nil, fmt.Errorf("%w: ability %s category %q", ErrInvalidSpec, a.ID, a.Category)
		}
		status := component.StatusNone
		if a.Status != "" {
			var ok bool
			if status, ok = component.ParseStatus(a.Status); !ok {
				return nil, fmt.Errorf("%w: ability %s status %q", ErrInvalidSpec, a.ID, a.Status)
			}
		}
		id := component.AbilityID(a.ID)
		out[id] = component.AbilitySpec{
			ID:       id,
			Cooldown: a.Cooldown,
			Duration: a.Duration,
			Category: category,
			Damage:   a.Damage,
			Count:    a.Count,
			Stagger:  a.Stagger,
			Range:    a.Range,
			Radius:   a.Radius,
			Amount:   a.Amount,
			Homing:   a.Homing,
			Spread:   a.SpreadDeg * math.Pi / 180,
			Width:    a.Width,
			Speed:    a.Speed,
			Size:     a.Size,
			Status:   status,
		}
	}
	return out, nil
}

func BuildHazards(spec HazardsSpec) map[string]component.HazardKind {
	out := make(map[string]component.HazardKind, len(spec.Hazards))
	for _, h := range spec.Hazards {
		out[h.Name] = component.HazardKind{
			Name:           h.Name,
			Damage:         h.Damage,
			Health:         h.Health,
			Speed:          h.Speed,
			Size:           h.Size,
			RotationSpeed:  h.RotationSpeed,
			SpawnChance:    h.SpawnChance,
			Destroyable:    h.Destroyable,
			Score:          h.Score,
			PullRadius:     h.PullRadius,
			PullStrength:   h.PullStrength,
			ElectricRadius: h.ElectricRadius,
			ShockChance:    h.ShockChance,
			TeleportRadius: h.TeleportRadius,
			Life:           h.Life,
			Paired:         h.Paired,
			Splits:         h.Splits,
			Wave:           h.Wave,
		}
	}
	return out
}

func BuildStatus(spec StatusEffectsSpec) (map[component.StatusKind]component.StatusSpec, error) {
	out := make(map[component.StatusKind]component.StatusSpec, len(spec.Effects))
	for _, s := range spec.Effects {
		kind, ok := component.ParseStatus(s.Kind)
		if !ok {
			return nil, fmt.Errorf("%w: status %q", ErrInvalidSpec, s.Kind)
		}
		out[kind] = component.StatusSpec{Kind: kind, Duration: s.Duration, Magnitude: s.Magnitude}
	}
	return out, nil
}

func BuildWaves(spec WavesSpec) component.WaveTuning {
	return component.WaveTuning{
		BaseEnemies:      spec.BaseEnemies,
		EnemiesPerWave:   spec.EnemiesPerWave,
		BossEvery:        spec.BossEvery,
		EpicBossEvery:    spec.EpicBossEvery,
		BaseSpawnDelay:   spec.BaseSpawnDelay,
		SpawnDelayStep:   spec.SpawnDelayStep,
		MinSpawnDelay:    spec.MinSpawnDelay,
		WaveDelay:        spec.WaveDelay,
		SpawnAttempts:    spec.SpawnAttempts,
		SpawnMinDistance: spec.SpawnMinDistance,
		AdvancedFrom:     spec.AdvancedFrom,
		EventChance:      spec.EventChance,
		EventMinMs:       spec.EventMinMs,
		EventMaxMs:       spec.EventMaxMs,
		Unlocks:          spec.Unlocks,
		Bosses:           spec.Bosses,
	}
}

func BuildPlayer(spec PlayerSpec) component.PlayerTuning {
	return component.PlayerTuning{
		Radius:          spec.Radius,
		Health:          spec.Health,
		Lives:           spec.Lives,
		Speed:           spec.Speed,
		Acceleration:    spec.Acceleration,
		Friction:        spec.Friction,
		SpawnX:          spec.SpawnX,
		SpawnY:          spec.SpawnY,
		FireRate:        spec.FireRate,
		Bullet:          spec.Bullet,
		MaxWeaponLevel:  spec.MaxWeaponLevel,
		InvulnerableMs:  spec.InvulnerableMs,
		RespawnMs:       spec.RespawnMs,
		FlashMs:         spec.FlashMs,
		MaxShieldEnergy: spec.MaxShieldEnergy,
		ShieldCost:      spec.ShieldCost,
		ShieldDuration:  spec.ShieldDuration,
		ShieldRegen:     spec.ShieldRegen,
		ComboWindow:     spec.ComboWindow,
		PowerupHeal:     spec.PowerupHeal,
		RapidFireMs:     spec.RapidFireMs,
		RapidFireScale:  spec.RapidFireScale,
	}
}

func BuildTime(spec TimeSpec) (component.TimeTuning, error) {
	t := component.TimeTuning{
		Effects:        make(map[component.TimeEffectKind]component.TimeEffectSpec, len(spec.Effects)),
		MaxEnergy:      spec.MaxEnergy,
		MinEnergy:      spec.MinEnergy,
		EnergyDrain:    spec.EnergyDrain,
		EnergyRegen:    spec.EnergyRegen,
		TransitionRate: spec.TransitionRate,
		SnapWithin:     spec.SnapWithin,
		ComboEvery:     spec.ComboEvery,
		ComboMs:        spec.ComboMs,
	}
	for _, e := range spec.Effects {
		kind := component.TimeEffectKind(e.Kind)
		if !slices.Contains(component.TimeEffectKinds, kind) {
			return t, fmt.Errorf("%w: time effect %q", ErrInvalidSpec, e.Kind)
		}
		t.Effects[kind] = component.TimeEffectSpec{Kind: kind, Scale: e.Scale, Duration: e.Duration, Cooldown: e.Cooldown}
	}
	return t, nil
}

func BuildWeapons(spec WeaponsSpec) (component.WeaponTuning, error) {
	t := component.WeaponTuning{
		Kinds:         make(map[component.WeaponKind]component.WeaponSpec, len(spec.Weapons)),
		MaxHeat:       spec.MaxHeat,
		OverheatAt:    spec.OverheatAt,
		CoolBelow:     spec.CoolBelow,
		HeatCool:      spec.HeatCool,
		MaxLevel:      spec.MaxLevel,
		LevelDamage:   spec.LevelDamage,
		LevelRate:     spec.LevelRate,
		OverchargeAt:  spec.OverchargeAt,
		MaxCharge:     spec.MaxCharge,
		ComboWindowMs: spec.ComboWindowMs,
		ComboStep:     spec.ComboStep,
		ComboMax:      spec.ComboMax,
	}
	for _, wp := range spec.Weapons {
		kind := component.WeaponKind(wp.Kind)
		if !slices.Contains(component.WeaponKinds, kind) {
			return t, fmt.Errorf("%w: weapon %q", ErrInvalidSpec, wp.Kind)
		}
		status := component.StatusNone
		if wp.Status != "" {
			var ok bool
			if status, ok = component.ParseStatus(wp.Status); !ok {
				return t, fmt.Errorf("%w: weapon %s status %q", ErrInvalidSpec, wp.Kind, wp.Status)
			}
		}
		t.Kinds[kind] = component.WeaponSpec{
			Kind:        kind,
			Bullet:      wp.Bullet,
			FireRate:    wp.FireRate,
			Damage:      wp.Damage,
			Spread:      wp.SpreadDeg * math.Pi / 180,
			Count:       wp.Count,
			Heat:        wp.Heat,
			Ammo:        wp.Ammo,
			AmmoRegen:   wp.AmmoRegen,
			ChargeMs:    wp.ChargeMs,
			Homing:      wp.Homing,
			Pierce:      wp.Pierce,
			MaxPierce:   wp.MaxPierce,
			BlastRadius: wp.BlastRadius,
			Beam:        wp.Beam,
			Status:      status,
			SizeGain:    wp.SizeGain,
			OffsetX:     wp.OffsetX,
			OffsetY:     wp.OffsetY,
			Alternate:   wp.Alternate,
			Unlocked:    wp.Unlocked,
		}
	}
	return t, nil
}
