package automaton

import "slices"

// IntSet is a set of interned state ids usable as a HashMap key.
type IntSet interface {
	Hashable

	// GetArray returns the ids in ascending order.
	GetArray() []int
	Size() int
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable, sorted set of state ids. Determinization
// stores one per DFA state as the key of its memo table.
type FrozenIntSet struct {
	values   []int
	hashCode uint64
}

// NewFrozenIntSet wraps sorted, duplicate-free values.
func NewFrozenIntSet(values []int, hashCode uint64) *FrozenIntSet {
	return &FrozenIntSet{values: values, hashCode: hashCode}
}

// Hash implements Hashable.
func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals implements Hashable. A FrozenIntSet equals any IntSet, frozen or
// not, holding the same ids.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	iset, ok := other.(IntSet)
	if !ok {
		return false
	}
	if f == nil || isNilIntSet(iset) {
		return f == nil && isNilIntSet(iset)
	}
	return f.hashCode == iset.Hash() && slices.Equal(f.values, iset.GetArray())
}

func isNilIntSet(s IntSet) bool {
	switch v := s.(type) {
	case nil:
		return true
	case *FrozenIntSet:
		return v == nil
	case *StateSet:
		return v == nil
	}
	return false
}

// GetArray implements IntSet.
func (f *FrozenIntSet) GetArray() []int {
	return f.values
}

// Size implements IntSet.
func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

func hashIntSet(values []int) uint64 {
	h := uint64(len(values))
	for _, v := range values {
		h += uint64(mix(v))
	}
	return h
}
