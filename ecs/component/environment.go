package component

// EnvironmentEvent is a timed world-wide hazard modifier.
type EnvironmentEvent struct {
	Name      string
	Remaining Countdown
}

// Environment is the hazard field state shared by the whole world.
type Environment struct {
	// SpawnTimer accumulates milliseconds toward the next hazard spawn roll.
	SpawnTimer float64
	Events     []EnvironmentEvent
}

// IsActive reports whether the named event is running.
func (e *Environment) IsActive(name string) bool {
	if e == nil {
		return false
	}
	for _, ev := range e.Events {
		if ev.Name == name && ev.Remaining.Active() {
			return true
		}
	}
	return false
}

// Names returns the running events in activation order.
func (e *Environment) Names() []string {
	if e == nil || len(e.Events) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.Events))
	for _, ev := range e.Events {
		out = append(out, ev.Name)
	}
	return out
}
