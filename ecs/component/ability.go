package component

import "github.com/jakecoffman/cp"

// AbilityID names a boss ability.
type AbilityID string

const (
	AbilityTurretBarrage  AbilityID = "turret_barrage"
	AbilityMissileSwarm   AbilityID = "missile_swarm"
	AbilityShieldBurst    AbilityID = "shield_burst"
	AbilityRepairDrones   AbilityID = "repair_drones"
	AbilityTentacleStrike AbilityID = "tentacle_strike"
	AbilitySpawnMinions   AbilityID = "spawn_minions"
	AbilityAcidSpray      AbilityID = "acid_spray"
	AbilityRegeneration   AbilityID = "regeneration"
	AbilityBerserk        AbilityID = "berserk"
	AbilityCrystalBeam    AbilityID = "crystal_beam"
	AbilityShardStorm     AbilityID = "shard_storm"
	AbilityTeleport       AbilityID = "teleport"
	AbilityCrystalPrison  AbilityID = "crystal_prison"
	AbilityShadowClone    AbilityID = "shadow_clone"
	AbilityVoidBlast      AbilityID = "void_blast"
	AbilityDarkness       AbilityID = "darkness"
	AbilitySoulDrain      AbilityID = "soul_drain"
	AbilityFinalForm      AbilityID = "final_form"
)

// AbilityCategory groups abilities for selection weighting.
type AbilityCategory uint8

const (
	CategoryNone AbilityCategory = iota
	CategoryRecovery
	CategoryUltimate
	CategoryClose
	CategoryLong
)

func (c AbilityCategory) String() string {
	switch c {
	case CategoryRecovery:
		return "recovery"
	case CategoryUltimate:
		return "ultimate"
	case CategoryClose:
		return "close"
	case CategoryLong:
		return "long"
	}
	return "none"
}

// ParseCategory maps a category name to its value.
func ParseCategory(name string) AbilityCategory {
	for c := CategoryRecovery; c <= CategoryLong; c++ {
		if c.String() == name {
			return c
		}
	}
	return CategoryNone
}

// ActiveAbility tracks an ability whose effect lasts beyond the cast.
type ActiveAbility struct {
	ID        AbilityID
	Remaining Countdown
	// Tick accumulates milliseconds for per-second effects.
	Tick float64
}

// DelayedAction is a staggered ability sub-step owned by the boss.
type DelayedAction struct {
	Remaining float64
	Ability   AbilityID
	Index     int
	Angle     float64
	Origin    cp.Vector
}
