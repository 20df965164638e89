package component

// PlayerStats accumulates per-run counters.
type PlayerStats struct {
	ShotsFired    int
	DamageDealt   float64
	DamageTaken   float64
	EnemiesKilled int
	SurvivalMs    float64
}

// Player is the player ship.
type Player struct {
	Body
	Health

	Lives        int
	Speed        float64
	Acceleration float64
	Friction     float64
	WeaponLevel  int
	FireTimer    Countdown
	Flash        Countdown
	Respawn      Countdown
	RapidFire    Countdown
	// Laser is the special ability burst; LaserCooldown gates reuse.
	Laser         Countdown
	LaserCooldown Countdown
	// ShieldUp means the shield layer is absorbing damage.
	ShieldUp        bool
	ShieldEnergy    float64
	MaxShieldEnergy float64
	ShieldTimer     Countdown
	Arsenal         Arsenal
	Effects         StatusEffects
	Stats           PlayerStats
}

// Alive reports whether the player is in play.
func (p *Player) Alive() bool {
	return p != nil && p.Active && !p.Dead
}
