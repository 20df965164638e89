package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSetSetGetHas(t *testing.T) {
	s := NewSparseSet[string]()
	s.Set(3, "c")
	s.Set(1, "a")

	v, ok := s.Get(3)
	require.True(t, ok)
	assert.Equal(t, "c", v)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(2))
	assert.Equal(t, []Entity{3, 1}, s.Entities(), "insertion order")

	s.Set(3, "cc")
	v, _ = s.Get(3)
	assert.Equal(t, "cc", v)
	assert.Equal(t, 2, s.Len(), "update keeps one entry")
}

func TestSparseSetRemoveSwapsLast(t *testing.T) {
	s := NewSparseSet[int]()
	for id := Entity(1); id <= 4; id++ {
		s.Set(id, int(id)*10)
	}

	s.Remove(2)
	assert.Equal(t, []Entity{1, 4, 3}, s.Entities())
	assert.Equal(t, []int{10, 40, 30}, s.Values())
	v, ok := s.Get(4)
	require.True(t, ok)
	assert.Equal(t, 40, v, "moved entry still resolves")

	s.Remove(2)
	s.Remove(99)
	assert.Equal(t, 3, s.Len())

	s.Remove(3)
	assert.Equal(t, []Entity{1, 4}, s.Entities())
}

func TestSparseSetRejectsInvalidIDs(t *testing.T) {
	s := NewSparseSet[int]()
	s.Set(0, 5)
	assert.Zero(t, s.Len())
	_, ok := s.Get(0)
	assert.False(t, ok)

	var nilSet *SparseSet[int]
	assert.False(t, nilSet.Has(1))
	assert.Zero(t, nilSet.Len())
	assert.Nil(t, nilSet.Entities())
	nilSet.Remove(1)

	var zero SparseSet[int]
	zero.Set(7, 70)
	assert.True(t, zero.Has(7))
}
