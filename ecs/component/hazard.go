package component

// Hazard is an environmental obstacle. Indestructible hazards ignore damage.
type Hazard struct {
	Body
	Health

	Kind          string
	Damage        float64
	Destroyable   bool
	ScoreValue    float64
	RotationSpeed float64
	// Pull is the base pull strength; storms scale it while they run.
	Pull           float64
	PullRadius     float64
	ElectricRadius float64
	ShockChance    float64
	TeleportRadius float64
	Life           Countdown
	Timed          bool
	PairID         EntityID
	// Teleport blocks re-entry right after a wormhole jump.
	Teleport Countdown
	Splits   bool
	Wave     bool
}
