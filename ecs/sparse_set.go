package ecs

// SparseSet stores one value per entity in dense slices, so iteration runs in
// a stable order and needs no map walk. Ids grow without reuse, so the sparse
// side is a map instead of a slice sized to the largest id.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        map[Entity]int
}

func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{sparse: make(map[Entity]int)}
}

// Has returns true if the entity id exists in the set.
func (s *SparseSet[T]) Has(id Entity) bool {
	if s == nil || !id.Valid() {
		return false
	}
	_, ok := s.sparse[id]
	return ok
}

// Get returns the value for id and whether it was present.
func (s *SparseSet[T]) Get(id Entity) (T, bool) {
	var zero T
	if !s.Has(id) {
		return zero, false
	}
	return s.denseValues[s.sparse[id]], true
}

// Set inserts or updates the value for id.
func (s *SparseSet[T]) Set(id Entity, v T) {
	if s == nil || !id.Valid() {
		return
	}
	if s.sparse == nil {
		s.sparse = make(map[Entity]int)
	}
	if idx, ok := s.sparse[id]; ok {
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id] = len(s.denseEntities) - 1
}

// Remove deletes the value for id if present. The last element moves into the
// freed slot.
func (s *SparseSet[T]) Remove(id Entity) {
	if !s.Has(id) {
		return
	}
	idx := s.sparse[id]
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	delete(s.sparse, id)
}

// Len is the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

// Entities returns the dense entity id list.
func (s *SparseSet[T]) Entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}

// Values returns the dense value list, parallel to Entities.
func (s *SparseSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	return s.denseValues
}
