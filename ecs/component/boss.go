package component

import "github.com/jakecoffman/cp"

// BossAIState is the epic boss lifecycle state.
type BossAIState uint8

const (
	BossSpawning BossAIState = iota
	BossCombat
	BossPhaseTransition
	BossDeath
)

func (s BossAIState) String() string {
	switch s {
	case BossSpawning:
		return "spawning"
	case BossCombat:
		return "combat"
	case BossPhaseTransition:
		return "phase_transition"
	case BossDeath:
		return "death"
	}
	return "unknown"
}

// BossMovement selects the repositioning policy used in combat.
type BossMovement uint8

const (
	MoveFortress BossMovement = iota
	MoveOrganic
	MoveCrystalline
	MoveShadow
)

// ParseBossMovement maps a movement policy name to its value.
func ParseBossMovement(name string) (BossMovement, bool) {
	switch name {
	case "fortress":
		return MoveFortress, true
	case "organic":
		return MoveOrganic, true
	case "crystalline":
		return MoveCrystalline, true
	case "shadow":
		return MoveShadow, true
	}
	return 0, false
}

// WeakPoint is a sub-target positioned relative to the boss center.
type WeakPoint struct {
	Offset      cp.Vector
	Size        float64
	Health      Health
	Active      bool
	Vulnerable  bool
	HitCooldown Countdown
}

// BossRuntime stores the mutable AI state of an epic boss.
type BossRuntime struct {
	State       BossAIState
	StateTimer  Countdown
	Target      cp.Vector
	TargetTimer Countdown
	// SinceAbility is the time since the last ability, compared against the
	// health-scaled use frequency.
	SinceAbility float64
	LastAbility  AbilityID
	Casting      []ActiveAbility
	Pending      []DelayedAction
	// Clones are the shadow clones alive for the current cast.
	Clones []EntityID
	Stun   Countdown
	// WeakPointLock blocks weak point damage while the all-destroyed stun runs.
	WeakPointLock bool
	Destroyed     int
	Rewarded      bool
	Cleanup       Countdown
	CleanedUp     bool
}

// Boss is the singleton epic boss of an encounter.
type Boss struct {
	Body
	Health
	BossRuntime

	Type       string
	Movement   BossMovement
	Phase      int
	Phases     int
	Thresholds []float64
	Abilities  []AbilityID
	Cooldowns  map[AbilityID]float64
	WeakPoints []WeakPoint

	Shield     float64
	MaxShield  float64
	Speed      float64
	Damage     float64
	BaseRadius float64
	ScoreValue float64
	Darkness   float64
	SpeedMul   float64
	DamageMul  float64
	// CooldownScale multiplies ability cooldowns; phase unlocks shrink it.
	CooldownScale float64
}

// HasAbility reports whether the boss knows the ability.
func (b *Boss) HasAbility(id AbilityID) bool {
	for _, a := range b.Abilities {
		if a == id {
			return true
		}
	}
	return false
}

// IsAbilityActive reports whether a lasting ability is in effect.
func (b *Boss) IsAbilityActive(id AbilityID) bool {
	for _, a := range b.Casting {
		if a.ID == id && a.Remaining.Active() {
			return true
		}
	}
	return false
}

// WeakPointPos returns the world position of weak point i.
func (b *Boss) WeakPointPos(i int) cp.Vector {
	if i < 0 || i >= len(b.WeakPoints) {
		return b.Pos
	}
	return b.Pos.Add(b.WeakPoints[i].Offset)
}

// EffectiveSpeed returns speed with temporary multipliers applied.
func (b *Boss) EffectiveSpeed() float64 {
	m := b.SpeedMul
	if m <= 0 {
		m = 1
	}
	return b.Speed * m
}

// EffectiveDamage returns contact damage with temporary multipliers applied.
func (b *Boss) EffectiveDamage() float64 {
	m := b.DamageMul
	if m <= 0 {
		m = 1
	}
	return b.Damage * m
}
