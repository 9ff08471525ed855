package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

var _ IntSet = &StateSet{}

// StateSet accumulates the interned ids of the states reached by one
// determinization step before it is frozen into a FrozenIntSet.
type StateSet struct {
	inner       *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

// NewStateSet returns an empty set sized for ids below capacity.
func NewStateSet(capacity int) *StateSet {
	return &StateSet{
		inner: bitset.New(uint(capacity)),
	}
}

// Hash implements Hashable.
func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = hashIntSet(s.GetArray())
	s.hashUpdated = true
	return s.hashCode
}

// Equals implements Hashable.
func (s *StateSet) Equals(other Hashable) bool {
	iset, ok := other.(IntSet)
	if !ok || isNilIntSet(iset) {
		return false
	}
	return slices.Equal(s.GetArray(), iset.GetArray())
}

// GetArray implements IntSet.
func (s *StateSet) GetArray() []int {
	keys := make([]int, 0, s.inner.Count())
	for i, ok := s.inner.NextSet(0); ok; i, ok = s.inner.NextSet(i + 1) {
		keys = append(keys, int(i))
	}
	return keys
}

// Size implements IntSet.
func (s *StateSet) Size() int {
	return int(s.inner.Count())
}

// Add puts id in the set.
func (s *StateSet) Add(id int) {
	if !s.inner.Test(uint(id)) {
		s.inner.Set(uint(id))
		s.hashUpdated = false
	}
}

// Reset empties the set for reuse.
func (s *StateSet) Reset() {
	s.inner.ClearAll()
	s.hashUpdated = false
}

// Freeze returns an immutable copy of the set.
func (s *StateSet) Freeze() *FrozenIntSet {
	return NewFrozenIntSet(s.GetArray(), s.Hash())
}
