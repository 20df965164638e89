package ecs

import "github.com/milk9111/shmup/ecs/component"

// Entity is the world-unique id of a simulated entity.
type Entity = component.EntityID

// entityStore hands out ids. Ids are never recycled, so a weak reference to a
// removed entity can never alias a new one.
type entityStore struct {
	nextID uint64
}

func (s *entityStore) create() Entity {
	if s == nil {
		return 0
	}
	s.nextID++
	return Entity(s.nextID)
}
