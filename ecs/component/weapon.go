package component

import "math"

// WeaponKind names a player weapon.
type WeaponKind string

const (
	WeaponBasic        WeaponKind = "basic"
	WeaponPlasma       WeaponKind = "plasma"
	WeaponShotgun      WeaponKind = "shotgun"
	WeaponMissile      WeaponKind = "missile"
	WeaponLaser        WeaponKind = "laser"
	WeaponWave         WeaponKind = "wave"
	WeaponRailgun      WeaponKind = "railgun"
	WeaponFlamethrower WeaponKind = "flamethrower"
)

// WeaponKinds lists every weapon in unlock order.
var WeaponKinds = []WeaponKind{
	WeaponBasic, WeaponPlasma, WeaponShotgun, WeaponMissile,
	WeaponLaser, WeaponWave, WeaponRailgun, WeaponFlamethrower,
}

// WeaponSlot is one of the three equip slots.
type WeaponSlot int

const (
	SlotPrimary WeaponSlot = iota
	SlotSecondary
	SlotSpecial
	NumWeaponSlots
)

func (s WeaponSlot) String() string {
	switch s {
	case SlotPrimary:
		return "primary"
	case SlotSecondary:
		return "secondary"
	case SlotSpecial:
		return "special"
	}
	return "unknown"
}

// ParseWeaponSlot maps a slot name to its slot.
func ParseWeaponSlot(name string) (WeaponSlot, bool) {
	for s := SlotPrimary; s < NumWeaponSlots; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// WeaponSpec is the tuning for one weapon kind. Spread is in radians. Ammo
// of zero means unlimited; ChargeMs of zero fires while the trigger is held.
type WeaponSpec struct {
	Kind        WeaponKind
	Bullet      string
	FireRate    float64
	Damage      float64
	Spread      float64
	Count       int
	Heat        float64
	Ammo        int
	AmmoRegen   float64
	ChargeMs    float64
	Homing      float64
	Pierce      bool
	MaxPierce   int
	BlastRadius float64
	// Beam fires a stationary laser of this length instead of rounds.
	Beam     float64
	Status   StatusKind
	SizeGain float64
	OffsetX  float64
	OffsetY  float64
	// Alternate fires from OffsetX on a random side.
	Alternate bool
	Unlocked  bool
}

// WeaponTuning holds the weapon kinds and the shared heat, level and
// weapon-combo rules.
type WeaponTuning struct {
	Kinds map[WeaponKind]WeaponSpec

	MaxHeat    float64
	OverheatAt float64
	// CoolBelow is the fraction of OverheatAt heat must fall under to clear
	// an overheat.
	CoolBelow float64
	HeatCool  float64

	MaxLevel    int
	LevelDamage float64
	LevelRate   float64

	// OverchargeAt is the fraction of ChargeMs past which a held charge
	// reaches MaxCharge.
	OverchargeAt float64
	MaxCharge    float64

	ComboWindowMs float64
	ComboStep     float64
	ComboMax      float64
}

// WeaponState is the per-kind runtime state.
type WeaponState struct {
	Unlocked bool
	Level    int
	Ammo     float64
	MaxAmmo  float64
	Cooldown Countdown
}

// Arsenal is the player's weapon loadout.
type Arsenal struct {
	Slots   [NumWeaponSlots]WeaponKind
	Weapons map[WeaponKind]*WeaponState

	Heat       float64
	Overheated bool

	// Charging is the slot holding a charge, ChargeMs the time held.
	Charging    WeaponSlot
	IsCharging  bool
	ChargeMs    float64
	ChargeRatio float64

	LastKind    WeaponKind
	LastFiredAt float64
	ComboMult   float64
}

// NewArsenal builds a loadout with basic in the primary slot. Weapons tuned
// as unlocked start available.
func NewArsenal(t WeaponTuning) Arsenal {
	a := Arsenal{
		Weapons:   make(map[WeaponKind]*WeaponState, len(t.Kinds)),
		ComboMult: 1,
	}
	a.Slots[SlotPrimary] = WeaponBasic
	for kind, spec := range t.Kinds {
		a.Weapons[kind] = &WeaponState{
			Unlocked: spec.Unlocked || kind == WeaponBasic,
			Level:    1,
			Ammo:     float64(spec.Ammo),
			MaxAmmo:  float64(spec.Ammo),
		}
	}
	return a
}

// State returns the runtime state of kind, nil when it is not tuned.
func (a *Arsenal) State(kind WeaponKind) *WeaponState {
	if a == nil || a.Weapons == nil {
		return nil
	}
	return a.Weapons[kind]
}

// Equipped returns the weapon in slot, empty when none.
func (a *Arsenal) Equipped(slot WeaponSlot) WeaponKind {
	if a == nil || slot < 0 || slot >= NumWeaponSlots {
		return ""
	}
	return a.Slots[slot]
}

// LevelScale returns the damage and rate multipliers for a weapon level.
func (t WeaponTuning) LevelScale(level int) (damage, rate float64) {
	n := float64(max(level, 1) - 1)
	return math.Pow(t.LevelDamage, n), math.Pow(t.LevelRate, n)
}
