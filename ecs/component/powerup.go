package component

const (
	PowerupHealth     = "health"
	PowerupShield     = "shield"
	PowerupRapidFire  = "rapidFire"
	PowerupMultiShot  = "multiShot"
	PowerupExperience = "experience"
	// PowerupLegendaryWeapon unlocks the next locked weapon.
	PowerupLegendaryWeapon = "legendary_weapon"
)

// Powerup is a collectible dropped into the field.
type Powerup struct {
	Body

	Kind  string
	Value float64
	Life  Countdown
}
