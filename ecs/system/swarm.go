package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/shmup/common"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
)

const (
	swarmSpring     = 0.05
	swarmPrecession = 0.02
	swarmDrift      = 0.5
)

// SwarmSystem keeps swarm groups consistent with their live members and
// moves each group centroid toward the player.
type SwarmSystem struct{}

func NewSwarmSystem() *SwarmSystem { return &SwarmSystem{} }

// Form turns leader into a new group and spawns the rest of the formation
// evenly around it.
func (s *SwarmSystem) Form(w *ecs.World, enemies *EnemySystem, leader *component.Enemy, k component.EnemyKind) *component.SwarmGroup {
	if w == nil || leader == nil || k.Swarm == nil {
		return nil
	}
	g := &component.SwarmGroup{
		ID:      w.NewGroupID(),
		Leader:  leader.ID,
		Members: []ecs.Entity{leader.ID},
		Center:  leader.Pos,
	}
	w.Swarms[g.ID] = g
	radius := k.Swarm.FormationRadius
	leader.Swarm = &component.SwarmMember{GroupID: g.ID, FormationRadius: radius}

	size := k.Swarm.Size
	for i := 1; i < size; i++ {
		angle := 2 * math.Pi * float64(i) / float64(size)
		pos := leader.Pos.Add(cp.ForAngle(angle).Mult(radius))
		m := enemies.add(w, k, pos)
		if m == nil {
			break
		}
		m.Swarm = &component.SwarmMember{GroupID: g.ID, FormationAngle: angle, FormationRadius: radius}
		g.Members = append(g.Members, m.ID)
	}
	return g
}

// Update prunes dead members, drops empty groups, recomputes each centroid
// and drifts it toward the player.
func (s *SwarmSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	player := w.PlayerTarget()
	for id, g := range w.Swarms {
		var sum cp.Vector
		var speed float64
		live := g.Members[:0]
		for _, mid := range g.Members {
			c, ok := w.Lookup(mid)
			if !ok {
				continue
			}
			e, ok := c.(*component.Enemy)
			if !ok {
				continue
			}
			live = append(live, mid)
			sum = sum.Add(e.Pos)
			speed = math.Max(speed, e.Speed)
		}
		g.Members = live
		if g.Empty() {
			delete(w.Swarms, id)
			continue
		}
		if _, ok := w.Lookup(g.Leader); !ok {
			g.Leader = g.Members[0]
		}
		g.Center = sum.Mult(1 / float64(len(g.Members)))
		if player != nil {
			g.Center = g.Center.Add(common.Toward(g.Center, player.Pos, speed*swarmDrift*common.Frames(dt)))
		}
	}
}

// Steer pulls a member toward its formation slot around the group centroid
// and precesses the slot.
func (s *SwarmSystem) Steer(w *ecs.World, e *component.Enemy, dt float64) {
	if e.Swarm == nil {
		return
	}
	g, ok := w.Swarms[e.Swarm.GroupID]
	if !ok {
		return
	}
	slot := g.Center.Add(cp.ForAngle(e.Swarm.FormationAngle).Mult(e.Swarm.FormationRadius))
	e.Vel = slot.Sub(e.Pos).Mult(swarmSpring)
	e.Swarm.FormationAngle += swarmPrecession * common.Frames(dt)
}

// Leave removes a member from its group and deletes the group once empty.
func (s *SwarmSystem) Leave(w *ecs.World, e *component.Enemy) {
	if w == nil || e == nil || e.Swarm == nil {
		return
	}
	g, ok := w.Swarms[e.Swarm.GroupID]
	if !ok {
		return
	}
	g.Remove(e.ID)
	if g.Empty() {
		delete(w.Swarms, g.ID)
		return
	}
	if g.Leader == e.ID {
		g.Leader = g.Members[0]
	}
}

// Group returns the group with the given id.
func (s *SwarmSystem) Group(w *ecs.World, id component.GroupID) (*component.SwarmGroup, bool) {
	if w == nil {
		return nil, false
	}
	g, ok := w.Swarms[id]
	return g, ok
}
