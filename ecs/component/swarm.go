package component

import "github.com/jakecoffman/cp"

// GroupID identifies a swarm group.
type GroupID uint32

// SwarmGroup is a formation of swarm enemies around a shared centroid.
// Members are ids resolved through the world each tick.
type SwarmGroup struct {
	ID      GroupID
	Leader  EntityID
	Members []EntityID
	Center  cp.Vector
}

// Remove drops a member id and reports whether it was present.
func (g *SwarmGroup) Remove(id EntityID) bool {
	if g == nil {
		return false
	}
	for i, m := range g.Members {
		if m == id {
			g.Members = append(g.Members[:i], g.Members[i+1:]...)
			return true
		}
	}
	return false
}

// Empty reports whether the group has no members left.
func (g *SwarmGroup) Empty() bool {
	return g == nil || len(g.Members) == 0
}
