package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	zigzagInterval     = 2000.0
	bossBasicInterval  = 3000.0
	followStandoff     = 100.0
	defensiveOrbit     = 150.0
	defensiveBand      = 50.0
	hitRunNear         = 100.0
	hitRunFar          = 200.0
	hitRunApproachMs   = 2000.0
	hitRunRetreatMs    = 1500.0
	tankyScale         = 0.7
	kamikazeFlashCycle = 200.0
	hunterLead         = 0.5
	hunterArrive       = 50.0
)

// behave sets the enemy velocity for this tick from its behavior kind.
func (s *EnemySystem) behave(w *ecs.World, e *component.Enemy, dt float64, player *component.Player) {
	switch e.Behavior {
	case component.BehaviorStraight:
		e.Vel.Y = e.Speed
	case component.BehaviorZigzag:
		zigzag(w, e, dt)
	case component.BehaviorTank:
		tank(e, player)
	case component.BehaviorFollow:
		follow(e, player)
	case component.BehaviorBossBasic:
		bossBasic(w, e, dt)
	case component.BehaviorAggressive, component.BehaviorPhase:
		pursue(e, player, 1)
	case component.BehaviorDefensive:
		defensive(e, player)
	case component.BehaviorHitAndRun:
		hitAndRun(e, dt, player)
	case component.BehaviorSwarm:
		if s.swarms != nil {
			s.swarms.Steer(w, e, dt)
		}
	case component.BehaviorTanky:
		pursue(e, player, tankyScale)
	case component.BehaviorKamikaze:
		s.kamikaze(w, e, dt, player)
	case component.BehaviorHunter:
		hunter(w, e, player)
	}
}

func zigzag(w *ecs.World, e *component.Enemy, dt float64) {
	e.Vel.Y = e.Speed
	e.State.Timer += dt
	if e.State.Timer > zigzagInterval {
		e.Vel.X = w.RNG().Centered() * e.Speed * 2
		e.State.Timer = 0
	}
}

func tank(e *component.Enemy, player *component.Player) {
	e.Vel = cp.Vector{Y: e.Speed * 0.5}
	if player != nil {
		e.Rotation = common.AngleTo(e.Pos, player.Pos)
	}
}

func follow(e *component.Enemy, player *component.Player) {
	if player == nil {
		e.Vel = cp.Vector{Y: e.Speed}
		return
	}
	if e.Pos.Distance(player.Pos) > followStandoff {
		e.Vel = common.Toward(e.Pos, player.Pos, e.Speed*0.7)
		return
	}
	e.Vel = common.Toward(player.Pos, e.Pos, e.Speed*0.3)
}

// bossBasic flies to its waypoint once and then patrols sideways.
func bossBasic(w *ecs.World, e *component.Enemy, dt float64) {
	st := &e.State
	if st.HasWaypoint {
		if e.Pos.Distance(st.Waypoint) > bossBasicArriveDist {
			e.Vel = common.Toward(e.Pos, st.Waypoint, e.Speed)
			return
		}
		e.Vel = cp.Vector{}
		st.HasWaypoint = false
		st.AtWaypoint = true
	}
	st.Timer += dt
	if st.Timer > bossBasicInterval {
		e.Vel.X = w.RNG().Centered() * e.Speed * 2
		st.Timer = 0
	}
	e.Vel.Y = 0
	if e.Pos.X < bossBasicPatrolMin {
		e.Vel.X = math.Abs(e.Vel.X)
	}
	if e.Pos.X > w.Width()-bossBasicPatrolMin {
		e.Vel.X = -math.Abs(e.Vel.X)
	}
}

func pursue(e *component.Enemy, player *component.Player, scale float64) {
	if player == nil {
		return
	}
	if v := common.Toward(e.Pos, player.Pos, e.Speed*scale); v.X != 0 || v.Y != 0 {
		e.Vel = v
	}
}

// defensive holds an orbit band around the player: approach from outside,
// back off from inside, strafe within.
func defensive(e *component.Enemy, player *component.Player) {
	if player == nil {
		return
	}
	d := e.Pos.Distance(player.Pos)
	if d == 0 {
		return
	}
	switch {
	case d > defensiveOrbit+defensiveBand:
		e.Vel = common.Toward(e.Pos, player.Pos, e.Speed*0.5)
	case d < defensiveOrbit-defensiveBand:
		e.Vel = common.Toward(player.Pos, e.Pos, e.Speed)
	default:
		toward := common.Toward(e.Pos, player.Pos, e.Speed)
		e.Vel = toward.Perp()
	}
}

func hitAndRun(e *component.Enemy, dt float64, player *component.Player) {
	if player == nil {
		return
	}
	st := &e.State
	st.ModeElapsed += dt
	d := e.Pos.Distance(player.Pos)
	switch st.Mode {
	case component.HitRunApproach:
		e.Vel = common.Toward(e.Pos, player.Pos, e.Speed)
		if d < hitRunNear || st.ModeElapsed > hitRunApproachMs {
			st.Mode = component.HitRunRetreat
			st.ModeElapsed = 0
		}
	case component.HitRunRetreat:
		e.Vel = common.Toward(player.Pos, e.Pos, e.Speed)
		if d > hitRunFar || st.ModeElapsed > hitRunRetreatMs {
			st.Mode = component.HitRunApproach
			st.ModeElapsed = 0
		}
	}
}

// kamikaze pursues until the trigger range, then charges at double speed
// and detonates on fuse expiry or contact range.
func (s *EnemySystem) kamikaze(w *ecs.World, e *component.Enemy, dt float64, player *component.Player) {
	k := e.Kamikaze
	if k == nil {
		pursue(e, player, 1)
		return
	}
	if player == nil {
		if k.Charging {
			k.Fuse.Tick(dt)
			if !k.Fuse.Active() {
				s.damage.Detonate(w, e)
			}
		}
		return
	}
	d := e.Pos.Distance(player.Pos)
	if !k.Charging && d < k.TriggerRange {
		k.Charging = true
		k.Flash = 0
		k.Fuse.Start(k.FuseMs)
	}
	if !k.Charging {
		e.Vel = common.Toward(e.Pos, player.Pos, e.Speed)
		return
	}
	k.Flash += dt
	if math.Mod(k.Flash, kamikazeFlashCycle) < kamikazeFlashCycle/2 {
		e.SetAlpha(1)
	} else {
		e.SetAlpha(0.3)
	}
	e.Vel = common.Toward(e.Pos, player.Pos, e.Speed*2)
	k.Fuse.Tick(dt)
	if !k.Fuse.Active() || d < k.DetonateRange {
		s.damage.Detonate(w, e)
	}
}

// hunter patrols random waypoints until the player enters tracking range,
// then locks on for good and leads the player's movement.
func hunter(w *ecs.World, e *component.Enemy, player *component.Player) {
	h := e.Hunter
	if h == nil {
		pursue(e, player, 1)
		return
	}
	if player != nil && e.Pos.Distance(player.Pos) <= h.TrackingRange {
		h.TargetLocked = true
	}
	if h.TargetLocked && player != nil {
		predicted := player.Pos.Add(player.Vel.Mult(hunterLead))
		if v := common.Toward(e.Pos, predicted, e.Speed*h.TrackingStrength); v.X != 0 || v.Y != 0 {
			e.Vel = v
		}
		return
	}
	st := &e.State
	if !st.HasWaypoint {
		st.Waypoint = randomPoint(w)
		st.HasWaypoint = true
	}
	if e.Pos.Distance(st.Waypoint) < hunterArrive {
		st.Waypoint = randomPoint(w)
		return
	}
	e.Vel = common.Toward(e.Pos, st.Waypoint, e.Speed*0.5)
}

func randomPoint(w *ecs.World) cp.Vector {
	rng := w.RNG()
	return cp.Vector{X: rng.Range(0, w.Width()), Y: rng.Range(0, w.Height())}
}
