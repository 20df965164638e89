package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bareEnemy(behavior component.BehaviorKind, speed float64, x, y float64) *component.Enemy {
	return &component.Enemy{
		Body:     component.Body{ID: 1, Pos: cp.Vector{X: x, Y: y}, Shape: component.Circle(10), Active: true, Alpha: 1},
		Health:   component.NewHealth(10),
		Behavior: behavior,
		Speed:    speed,
	}
}

func barePlayer(x, y float64) *component.Player {
	return &component.Player{
		Body:   component.Body{ID: 2, Pos: cp.Vector{X: x, Y: y}, Shape: component.Circle(15), Active: true, Alpha: 1},
		Health: component.NewHealth(100),
	}
}

// step moves the enemy by one 60Hz frame of its velocity.
func step(e *component.Enemy) {
	e.Pos = e.Pos.Add(e.Vel)
}

func TestFollowVelocityAroundStandoff(t *testing.T) {
	player := barePlayer(600, 600)
	cases := []struct {
		name      string
		y         float64
		speed     float64
		towardsUs bool
	}{
		{"far approaches", 300, 2.5 * 0.7, true},
		{"near retreats", 550, 2.5 * 0.3, false},
		{"at standoff retreats", 500, 2.5 * 0.3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := bareEnemy(component.BehaviorFollow, 2.5, 600, tc.y)
			follow(e, player)
			assert.InDelta(t, tc.speed, e.Vel.Length(), 1e-9)
			assert.Equal(t, tc.towardsUs, e.Vel.Y > 0)
		})
	}
}

func TestFollowSettlesAtStandoff(t *testing.T) {
	player := barePlayer(600, 600)
	e := bareEnemy(component.BehaviorFollow, 2.5, 600, 200)
	for i := 0; i < 400; i++ {
		follow(e, player)
		step(e)
	}
	assert.InDelta(t, followStandoff, e.Pos.Distance(player.Pos), 2)
}

func TestFollowWithoutPlayerDrifts(t *testing.T) {
	e := bareEnemy(component.BehaviorFollow, 2.5, 600, 200)
	follow(e, nil)
	assert.Equal(t, cp.Vector{Y: 2.5}, e.Vel)
}

func TestDefensiveOrbitBand(t *testing.T) {
	player := barePlayer(600, 600)
	cases := []struct {
		name  string
		y     float64
		speed float64
		// radial is the sign of the velocity along the enemy to player axis.
		radial int
	}{
		{"outside band approaches", 300, 1.5 * 0.5, 1},
		{"inside band retreats", 570, 1.5, -1},
		{"within band strafes", 450, 1.5, 0},
		{"band edge strafes", 400, 1.5, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := bareEnemy(component.BehaviorDefensive, 1.5, 600, tc.y)
			defensive(e, player)
			assert.InDelta(t, tc.speed, e.Vel.Length(), 1e-9)
			axis := common.Toward(e.Pos, player.Pos, 1)
			dot := e.Vel.Dot(axis)
			switch tc.radial {
			case 1:
				assert.Greater(t, dot, 0.0)
			case -1:
				assert.Less(t, dot, 0.0)
			default:
				assert.InDelta(t, 0, dot, 1e-9)
			}
		})
	}
}

func TestDefensiveHoldsBandOverTime(t *testing.T) {
	player := barePlayer(600, 600)
	e := bareEnemy(component.BehaviorDefensive, 1.5, 600, 100)
	for i := 0; i < 600; i++ {
		defensive(e, player)
		step(e)
	}
	d := e.Pos.Distance(player.Pos)
	assert.GreaterOrEqual(t, d, defensiveOrbit-defensiveBand-1.5)
	assert.LessOrEqual(t, d, defensiveOrbit+defensiveBand+1.5)
}

func TestHitAndRunTransitions(t *testing.T) {
	cases := []struct {
		name     string
		mode     component.HitRunMode
		elapsed  float64
		y        float64
		dt       float64
		wantMode component.HitRunMode
	}{
		{"approach closes in", component.HitRunApproach, 0, 510, 16, component.HitRunRetreat},
		{"approach keeps going", component.HitRunApproach, 0, 300, 16, component.HitRunApproach},
		{"approach at timer limit", component.HitRunApproach, 1984, 300, 16, component.HitRunApproach},
		{"approach times out", component.HitRunApproach, 1990, 300, 16, component.HitRunRetreat},
		{"retreat breaks away", component.HitRunRetreat, 0, 390, 16, component.HitRunApproach},
		{"retreat keeps going", component.HitRunRetreat, 0, 450, 16, component.HitRunRetreat},
		{"retreat at timer limit", component.HitRunRetreat, 1484, 450, 16, component.HitRunRetreat},
		{"retreat times out", component.HitRunRetreat, 1490, 450, 16, component.HitRunApproach},
	}
	player := barePlayer(600, 600)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := bareEnemy(component.BehaviorHitAndRun, 3, 600, tc.y)
			e.State.Mode = tc.mode
			e.State.ModeElapsed = tc.elapsed
			hitAndRun(e, tc.dt, player)
			assert.Equal(t, tc.wantMode, e.State.Mode)
			if tc.wantMode != tc.mode {
				assert.Zero(t, e.State.ModeElapsed)
			} else {
				assert.Equal(t, tc.elapsed+tc.dt, e.State.ModeElapsed)
			}
			// Velocity follows the mode the tick started in.
			if tc.mode == component.HitRunApproach {
				assert.Greater(t, e.Vel.Y, 0.0)
			} else {
				assert.Less(t, e.Vel.Y, 0.0)
			}
		})
	}
}

func TestHitAndRunLoops(t *testing.T) {
	player := barePlayer(600, 600)
	e := bareEnemy(component.BehaviorHitAndRun, 3, 600, 300)
	var switches int
	last := e.State.Mode
	for i := 0; i < 600; i++ {
		hitAndRun(e, 16, player)
		step(e)
		if e.State.Mode != last {
			switches++
			last = e.State.Mode
		}
	}
	assert.GreaterOrEqual(t, switches, 4, "approach and retreat alternate")
	assert.Less(t, e.Pos.Distance(player.Pos), 320.0)
}

func TestZigzagRerollsHorizontalVelocity(t *testing.T) {
	k := newTestKernel(t)
	e := bareEnemy(component.BehaviorZigzag, 4, 600, 100)

	zigzag(k.World, e, 1000)
	zigzag(k.World, e, 1000)
	assert.Zero(t, e.Vel.X, "the interval has not been exceeded yet")
	assert.Equal(t, 2000.0, e.State.Timer)

	zigzag(k.World, e, 16)
	assert.NotZero(t, e.Vel.X)
	assert.LessOrEqual(t, math.Abs(e.Vel.X), 4.0)
	assert.Equal(t, 4.0, e.Vel.Y)
	assert.Zero(t, e.State.Timer)

	first := e.Vel.X
	for i := 0; i < 10; i++ {
		zigzag(k.World, e, 100)
	}
	assert.Equal(t, first, e.Vel.X, "no re-roll inside the interval")
}

func TestHunterPatrolsUntilPlayerInRange(t *testing.T) {
	k := newTestKernel(t)
	player := barePlayer(600, 700)
	e := bareEnemy(component.BehaviorHunter, 2.8, 600, 100)
	e.Hunter = &component.Hunter{TrackingStrength: 0.8, TrackingRange: 200}
	e.State.Waypoint = cp.Vector{X: 100, Y: 700}
	e.State.HasWaypoint = true

	hunter(k.World, e, player)
	assert.False(t, e.Hunter.TargetLocked)
	require.True(t, e.State.HasWaypoint)
	assert.InDelta(t, 2.8*0.5, e.Vel.Length(), 1e-9)
	assert.Less(t, e.Vel.X, 0.0)

	// Arriving near the waypoint rolls a new one.
	wp := e.State.Waypoint
	e.Pos = wp.Add(cp.Vector{X: 10})
	hunter(k.World, e, player)
	assert.NotEqual(t, wp, e.State.Waypoint)
	assert.False(t, e.Hunter.TargetLocked)
}

func TestHunterLocksOnAndLeads(t *testing.T) {
	k := newTestKernel(t)
	player := barePlayer(600, 600)
	player.Vel = cp.Vector{X: 40}
	e := bareEnemy(component.BehaviorHunter, 2.8, 600, 450)
	e.Hunter = &component.Hunter{TrackingStrength: 0.8, TrackingRange: 200}

	hunter(k.World, e, player)
	require.True(t, e.Hunter.TargetLocked)
	predicted := cp.Vector{X: 620, Y: 600}
	want := common.Toward(e.Pos, predicted, 2.8*0.8)
	assert.InDelta(t, want.X, e.Vel.X, 1e-9)
	assert.InDelta(t, want.Y, e.Vel.Y, 1e-9)
	assert.Greater(t, e.Vel.X, 0.0, "leads the player's motion")

	// The lock survives the player leaving tracking range.
	e.Pos = cp.Vector{X: 100, Y: 0}
	hunter(k.World, e, player)
	assert.True(t, e.Hunter.TargetLocked)
	want = common.Toward(e.Pos, predicted, 2.8*0.8)
	assert.InDelta(t, want.X, e.Vel.X, 1e-9)
	assert.InDelta(t, want.Y, e.Vel.Y, 1e-9)
}
