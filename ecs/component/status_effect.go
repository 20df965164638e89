package component

// StatusKind identifies a status effect.
type StatusKind uint8

const (
	StatusNone StatusKind = iota
	StatusBurning
	StatusFrozen
	StatusShocked
	StatusPoisoned
	StatusWeakened
)

func (k StatusKind) String() string {
	switch k {
	case StatusBurning:
		return "burning"
	case StatusFrozen:
		return "frozen"
	case StatusShocked:
		return "shocked"
	case StatusPoisoned:
		return "poisoned"
	case StatusWeakened:
		return "weakened"
	}
	return "none"
}

// ParseStatus maps a status name to its kind.
func ParseStatus(name string) (StatusKind, bool) {
	for k := StatusBurning; k <= StatusWeakened; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return StatusNone, false
}

// DamageOverTime reports whether the effect deals periodic damage.
func (k StatusKind) DamageOverTime() bool {
	return k == StatusBurning || k == StatusPoisoned
}

// StatusEffect is one applied effect with its remaining lifetime.
type StatusEffect struct {
	Kind      StatusKind
	Remaining float64
	Magnitude float64
}

// StatusEffects is the set of effects on one entity, at most one per kind.
type StatusEffects []StatusEffect

// Apply adds an effect or refreshes an existing one of the same kind.
func (s *StatusEffects) Apply(spec StatusSpec) {
	if s == nil || spec.Kind == StatusNone || spec.Duration <= 0 {
		return
	}
	for i := range *s {
		if (*s)[i].Kind == spec.Kind {
			(*s)[i].Remaining = spec.Duration
			(*s)[i].Magnitude = spec.Magnitude
			return
		}
	}
	*s = append(*s, StatusEffect{Kind: spec.Kind, Remaining: spec.Duration, Magnitude: spec.Magnitude})
}

// Magnitude returns the magnitude of an active effect, or zero.
func (s StatusEffects) Magnitude(kind StatusKind) float64 {
	for _, e := range s {
		if e.Kind == kind && e.Remaining > 0 {
			return e.Magnitude
		}
	}
	return 0
}

// Has reports whether the effect is active.
func (s StatusEffects) Has(kind StatusKind) bool {
	for _, e := range s {
		if e.Kind == kind && e.Remaining > 0 {
			return true
		}
	}
	return false
}

// Tick ages every effect by dt and drops the expired ones.
func (s *StatusEffects) Tick(dt float64) {
	if s == nil || len(*s) == 0 {
		return
	}
	out := (*s)[:0]
	for _, e := range *s {
		e.Remaining -= dt
		if e.Remaining > 0 {
			out = append(out, e)
		}
	}
	*s = out
}

// MoveScale returns the movement multiplier implied by slowing effects.
func (s StatusEffects) MoveScale() float64 {
	if m := s.Magnitude(StatusFrozen); m > 0 {
		return 1 - m
	}
	return 1
}

// DamageScale returns the outgoing damage multiplier implied by weakening.
func (s StatusEffects) DamageScale() float64 {
	if m := s.Magnitude(StatusWeakened); m > 0 {
		return 1 - m
	}
	return 1
}
