package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsInOrder(t *testing.T) {
	var order []string
	s := NewScheduler(
		systemFunc(func(*World, float64) { order = append(order, "a") }),
		nil,
		systemFunc(func(*World, float64) { order = append(order, "b") }),
	)
	s.Add(nil)
	s.AddReal(systemFunc(func(*World, float64) { order = append(order, "c") }))

	s.Update(newTestWorld(t), 16)
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Len(t, s.Systems(), 3)
}

func TestSchedulerScalesDeltaPerClock(t *testing.T) {
	cases := []struct {
		name   string
		scale  float64
		scaled float64
	}{
		{"normal", 1, 16},
		{"bullet time", 0.3, 4.8},
		{"freeze", 0, 0},
		{"accelerate", 2, 32},
		{"clamped high", 10, 48},
		{"clamped low", -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			w.SetTimeScale(tc.scale)
			var unscaled, scaled float64
			w.AddRealSystem(systemFunc(func(_ *World, dt float64) { unscaled = dt }))
			w.AddSystem(systemFunc(func(_ *World, dt float64) { scaled = dt }))

			w.Update(16, Input{})
			assert.Equal(t, 16.0, unscaled)
			assert.InDelta(t, tc.scaled, scaled, 1e-9)
			assert.InDelta(t, 16, w.Now(), 1e-9, "world time is real time")
		})
	}
}

func TestSchedulerReadsScalePerSystem(t *testing.T) {
	w := newTestWorld(t)
	var before, after float64
	w.AddSystem(systemFunc(func(_ *World, dt float64) { before = dt }))
	w.AddRealSystem(systemFunc(func(w *World, _ float64) { w.SetTimeScale(0.5) }))
	w.AddSystem(systemFunc(func(_ *World, dt float64) { after = dt }))

	w.Update(10, Input{})
	require.Equal(t, 10.0, before)
	assert.Equal(t, 5.0, after)
}

func TestClockString(t *testing.T) {
	assert.Equal(t, "scaled", ClockScaled.String())
	assert.Equal(t, "real", ClockReal.String())
}
