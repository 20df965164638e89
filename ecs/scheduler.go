package ecs

// System advances one concern of the world each frame. dt is in milliseconds.
type System interface {
	Update(w *World, dt float64)
}

// Clock selects the time base a system is stepped with.
type Clock uint8

const (
	// ClockScaled steps a system with the frame dt multiplied by the world
	// time scale.
	ClockScaled Clock = iota
	// ClockReal steps a system with the unscaled frame dt.
	ClockReal
)

func (c Clock) String() string {
	if c == ClockReal {
		return "real"
	}
	return "scaled"
}

type scheduled struct {
	system System
	clock  Clock
}

// Scheduler runs systems in registration order. The time scale is read per
// system, so a real-clock system that changes it affects every scaled system
// after it in the same frame.
type Scheduler struct {
	entries []scheduled
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{entries: make([]scheduled, 0, len(systems))}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// Add appends a system on the scaled clock.
func (s *Scheduler) Add(system System) {
	s.AddOn(system, ClockScaled)
}

// AddReal appends a system on the real clock.
func (s *Scheduler) AddReal(system System) {
	s.AddOn(system, ClockReal)
}

func (s *Scheduler) AddOn(system System, clock Clock) {
	if system == nil {
		return
	}
	s.entries = append(s.entries, scheduled{system: system, clock: clock})
}

func (s *Scheduler) Update(w *World, dt float64) {
	for _, e := range s.entries {
		step := dt
		if e.clock == ClockScaled {
			step *= w.TimeScale()
		}
		e.system.Update(w, step)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.entries))
	for _, e := range s.entries {
		systems = append(systems, e.system)
	}
	return systems
}
