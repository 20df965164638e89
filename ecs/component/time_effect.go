package component

// TimeEffectKind names a time manipulation.
type TimeEffectKind string

const (
	TimeBulletTime TimeEffectKind = "bullet_time"
	TimeFreeze     TimeEffectKind = "freeze"
	TimeAccelerate TimeEffectKind = "accelerate"
)

// TimeEffectKinds lists the kinds in fallback order: when the most recent
// effect ends, the first still running one sets the target scale.
var TimeEffectKinds = []TimeEffectKind{TimeFreeze, TimeBulletTime, TimeAccelerate}

// TimeEffectSpec is the tuning for one time effect.
type TimeEffectSpec struct {
	Kind     TimeEffectKind
	Scale    float64
	Duration float64
	Cooldown float64
}

// TimeTuning configures the time effect system. Energy only gates bullet
// time.
type TimeTuning struct {
	Effects     map[TimeEffectKind]TimeEffectSpec
	MaxEnergy   float64
	MinEnergy   float64
	EnergyDrain float64
	EnergyRegen float64
	// TransitionRate is the fraction per second the scale closes on its
	// target; SnapWithin is the gap below which it jumps the rest.
	TransitionRate float64
	SnapWithin     float64
	// ComboEvery triggers bullet time of ComboMs on each multiple of it.
	ComboEvery int
	ComboMs    float64
}

type TimeEffect struct {
	Active    bool
	Remaining Countdown
	Cooldown  Countdown
}

// TimeEffects is the world's time manipulation state.
type TimeEffects struct {
	BulletTime TimeEffect
	Freeze     TimeEffect
	Accelerate TimeEffect
	Energy     float64
	Target     float64
	// Current is the most recently started effect.
	Current TimeEffectKind
}

// NewTimeEffects returns an idle state with full energy.
func NewTimeEffects(t TimeTuning) TimeEffects {
	return TimeEffects{Energy: t.MaxEnergy, Target: 1}
}

// Slot returns the state for kind, or nil for an unknown kind.
func (t *TimeEffects) Slot(kind TimeEffectKind) *TimeEffect {
	switch kind {
	case TimeBulletTime:
		return &t.BulletTime
	case TimeFreeze:
		return &t.Freeze
	case TimeAccelerate:
		return &t.Accelerate
	}
	return nil
}

// AnyActive reports whether some effect is running.
func (t *TimeEffects) AnyActive() bool {
	return t.BulletTime.Active || t.Freeze.Active || t.Accelerate.Active
}

// Active returns the kinds currently running in fallback order.
func (t *TimeEffects) Active() []TimeEffectKind {
	var out []TimeEffectKind
	for _, k := range TimeEffectKinds {
		if t.Slot(k).Active {
			out = append(out, k)
		}
	}
	return out
}
