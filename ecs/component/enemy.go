package component

import "github.com/jakecoffman/cp"

// BehaviorKind selects an enemy's movement function.
type BehaviorKind uint8

const (
	BehaviorStraight BehaviorKind = iota
	BehaviorZigzag
	BehaviorTank
	BehaviorFollow
	BehaviorBossBasic
	BehaviorAggressive
	BehaviorDefensive
	BehaviorHitAndRun
	BehaviorSwarm
	BehaviorTanky
	BehaviorKamikaze
	BehaviorPhase
	BehaviorHunter
	behaviorCount
)

var behaviorNames = [behaviorCount]string{
	BehaviorStraight:   "straight",
	BehaviorZigzag:     "zigzag",
	BehaviorTank:       "tank",
	BehaviorFollow:     "follow",
	BehaviorBossBasic:  "boss",
	BehaviorAggressive: "aggressive",
	BehaviorDefensive:  "defensive",
	BehaviorHitAndRun:  "hit_and_run",
	BehaviorSwarm:      "swarm",
	BehaviorTanky:      "tanky",
	BehaviorKamikaze:   "kamikaze",
	BehaviorPhase:      "phase",
	BehaviorHunter:     "hunter",
}

func (b BehaviorKind) String() string {
	if b < behaviorCount {
		return behaviorNames[b]
	}
	return "unknown"
}

// ParseBehavior maps a behavior name to its kind. "boss-basic" is accepted as
// an alias for the legacy boss patrol.
func ParseBehavior(name string) (BehaviorKind, bool) {
	if name == "boss-basic" || name == "boss_basic" {
		return BehaviorBossBasic, true
	}
	for i, n := range behaviorNames {
		if n == name {
			return BehaviorKind(i), true
		}
	}
	return 0, false
}

// HitRunMode is the hit-and-run sub state.
type HitRunMode uint8

const (
	HitRunApproach HitRunMode = iota
	HitRunRetreat
)

// BehaviorState is the per-enemy scratch the movement functions mutate.
type BehaviorState struct {
	Timer       float64
	Mode        HitRunMode
	ModeElapsed float64
	Waypoint    cp.Vector
	HasWaypoint bool
	AtWaypoint  bool
}

// Shield is an absorb layer that regenerates after a delay.
type Shield struct {
	Health     float64
	Max        float64
	RegenRate  float64
	RegenDelay float64
	Active     bool
	Delay      Countdown
}

type Stealth struct {
	Duration       float64
	Cooldown       float64
	Stealthed      bool
	AlphaVisible   float64
	AlphaInvisible float64
	Timer          Countdown
}

type SwarmMember struct {
	GroupID         GroupID
	FormationAngle  float64
	FormationRadius float64
}

type Regen struct {
	Rate  float64
	Delay float64
	Timer Countdown
}

type Kamikaze struct {
	ExplosionRadius float64
	ExplosionDamage float64
	TriggerRange    float64
	DetonateRange   float64
	FuseMs          float64
	Charging        bool
	Fuse            Countdown
	Flash           float64
}

type Phase struct {
	Duration      float64
	Cooldown      float64
	HealthTrigger float64
	DamageTrigger float64
	Phased        bool
	Timer         Countdown
	CooldownTimer Countdown
}

type Hunter struct {
	TrackingStrength float64
	TrackingRange    float64
	TargetLocked     bool
}

type Splitter struct {
	SplitSpec
	Pending bool
}

// Enemy is a basic or advanced enemy. Advanced payloads are nil unless the
// kind enables them.
type Enemy struct {
	Body
	Health

	Kind          string
	Behavior      BehaviorKind
	State         BehaviorState
	Speed         float64
	Damage        float64
	FireRate      float64
	FireTimer     Countdown
	ScoreValue    float64
	PowerupChance float64
	BulletKind    string
	Flash         Countdown
	Effects       StatusEffects
	// Wave is the wave that spawned the enemy, zero for summoned ones.
	Wave int

	Shield   *Shield
	Stealth  *Stealth
	Swarm    *SwarmMember
	Regen    *Regen
	Kamikaze *Kamikaze
	Phase    *Phase
	Hunter   *Hunter
	Splitter *Splitter
}

// Size returns the enemy diameter.
func (e *Enemy) Size() float64 {
	return e.Shape.Radius * 2
}
