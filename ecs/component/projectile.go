package component

// Projectile is a pooled bullet or missile.
type Projectile struct {
	Body

	Kind           string
	Damage         float64
	Speed          float64
	Owner          EntityID
	Pierce         bool
	PierceCount    int
	MaxPierce      int
	Homing         bool
	HomingStrength float64
	HomingTarget   EntityID
	LifeRemaining  float64
	Continuous     bool
	// Status is applied to the struck target, StatusNone for plain rounds.
	Status StatusKind
	// BlastRadius splashes falloff damage onto nearby enemies on impact.
	BlastRadius float64
	// Hits records the targets already struck so a piercing round counts
	// each target once.
	Hits []EntityID
}

// Reset clears the slot for reuse. The hits buffer keeps its capacity.
func (p *Projectile) Reset() {
	hits := p.Hits[:0]
	*p = Projectile{Hits: hits}
}

// HasHit reports whether the target was already struck.
func (p *Projectile) HasHit(id EntityID) bool {
	for _, h := range p.Hits {
		if h == id {
			return true
		}
	}
	return false
}
