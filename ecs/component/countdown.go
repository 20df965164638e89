package component

// Countdown is a cooperative millisecond timer decremented by the owning
// system each tick. Zero means idle; cancelling is just Stop.
type Countdown float64

// Start arms the timer.
func (c *Countdown) Start(ms float64) {
	if ms < 0 {
		ms = 0
	}
	*c = Countdown(ms)
}

// Stop cancels the timer.
func (c *Countdown) Stop() {
	*c = 0
}

// Active reports whether time remains.
func (c Countdown) Active() bool {
	return c > 0
}

// Remaining returns the milliseconds left.
func (c Countdown) Remaining() float64 {
	return float64(c)
}

// Tick advances the timer by dt and reports whether it expired on this tick.
func (c *Countdown) Tick(dt float64) bool {
	if *c <= 0 {
		return false
	}
	*c -= Countdown(dt)
	if *c <= 0 {
		*c = 0
		return true
	}
	return false
}
