package component

// Health is the damage state shared by everything that can be hurt.
//
// Invulnerable is a state-driven immunity (phase shift, boss transition) that
// stays until cleared. InvulnerableMs is a timed window after a hit.
type Health struct {
	Max            float64
	Current        float64
	Invulnerable   bool
	InvulnerableMs float64
	Dead           bool
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Max: max, Current: max}
}

// AsHealth gives embedding types a uniform accessor.
func (h *Health) AsHealth() *Health {
	return h
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// IsInvulnerable reports whether any immunity is in effect.
func (h *Health) IsInvulnerable() bool {
	return h != nil && (h.Invulnerable || h.InvulnerableMs > 0)
}

// Ratio returns Current/Max.
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// Subtract removes up to amount health and returns what was actually removed.
func (h *Health) Subtract(amount float64) float64 {
	if h == nil || amount <= 0 {
		return 0
	}
	if amount > h.Current {
		amount = h.Current
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	return amount
}

// Heal restores health up to Max and returns the amount restored.
func (h *Health) Heal(amount float64) float64 {
	if h == nil || h.Dead || amount <= 0 {
		return 0
	}
	before := h.Current
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return h.Current - before
}

// StartInvulnerability opens a timed immunity window. A shorter request never
// truncates a longer window already running.
func (h *Health) StartInvulnerability(ms float64) {
	if h == nil || ms <= 0 {
		return
	}
	if ms > h.InvulnerableMs {
		h.InvulnerableMs = ms
	}
}

// Tick advances the timed immunity window.
func (h *Health) Tick(dt float64) {
	if h == nil || h.InvulnerableMs <= 0 {
		return
	}
	h.InvulnerableMs -= dt
	if h.InvulnerableMs < 0 {
		h.InvulnerableMs = 0
	}
}

// SetCurrent sets the current health value and clamps to [0, Max].
func (h *Health) SetCurrent(v float64) {
	if h == nil {
		return
	}
	h.Current = v
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// SetMax sets the maximum health value and clamps Current if needed.
func (h *Health) SetMax(v float64) {
	if h == nil {
		return
	}
	h.Max = v
	if h.Max <= 0 {
		h.Max = 1
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
