package automaton

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFrozenIntSet(t *testing.T) {
	tests := []struct {
		name       string
		values     []int
		hashCode   int64
		wantValues []int
		wantCode   int64
	}{
		{
			name:       "Normal case",
			values:     []int{1, 2, 3},
			hashCode:   123456789,
			wantValues: []int{1, 2, 3},
			wantCode:   123456789,
		},
		{
			name:       "Nil slice",
			values:     nil,
			hashCode:   0,
			wantValues: nil,
			wantCode:   0,
		},
		{
			name:       "Empty slice",
			values:     []int{},
			hashCode:   -987654321,
			wantValues: []int{},
			wantCode:   -987654321,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewFrozenIntSet(tt.values, uint64(tt.hashCode))
			if !reflect.DeepEqual(got.GetArray(), tt.wantValues) {
				t.Errorf("Values mismatch: got %v, want %v", got.GetArray(), tt.wantValues)
			}
			if !reflect.DeepEqual(got.Size(), len(tt.wantValues)) {
				t.Errorf("Values size mismatch: got %v, want %v", got.Size(), len(tt.wantValues))
			}
			if got.Hash() != uint64(tt.wantCode) {
				t.Errorf("HashCode mismatch: got %d, want %d", got.Hash(), tt.wantCode)
			}
		})
	}
}

func TestFrozenIntSet_Equals(t *testing.T) {
	tests := []struct {
		name     string
		f        *FrozenIntSet
		other    Hashable
		expected bool
	}{
		{
			name:     "TC01 - both nil",
			f:        nil,
			other:    (*FrozenIntSet)(nil),
			expected: true,
		},
		{
			name:     "TC02 - f not nil, other nil",
			f:        &FrozenIntSet{},
			other:    nil,
			expected: false,
		},
		{
			name: "TC03 - different type",
			f: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 123,
			},
			other:    AnotherKey(123),
			expected: false,
		},
		{
			name: "TC04 - values differ",
			f: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 123,
			},
			other: &FrozenIntSet{
				values:   []int{1, 2},
				hashCode: 123,
			},
			expected: false,
		},
		{
			name: "TC05 - live StateSet with the same ids",
			f:    NewFrozenIntSet([]int{1, 2, 3}, hashIntSet([]int{1, 2, 3})),
			other: func() Hashable {
				s := NewStateSet(4)
				s.Add(3)
				s.Add(1)
				s.Add(2)
				return s
			}(),
			expected: true,
		},
		{
			name: "TC06 - hashCode differs",
			f: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 123,
			},
			other: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 456,
			},
			expected: false,
		},
		{
			name: "TC07 - all fields equal",
			f: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 123,
			},
			other: &FrozenIntSet{
				values:   []int{1, 2, 3},
				hashCode: 123,
			},
			expected: true,
		},
		{
			name:     "TC08 - nil StateSet",
			f:        &FrozenIntSet{},
			other:    (*StateSet)(nil),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.f.Equals(tt.other)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestStateSet(t *testing.T) {
	s := NewStateSet(4)
	s.Add(9)
	s.Add(3)
	s.Add(3)
	assert.Equal(t, []int{3, 9}, s.GetArray())
	assert.Equal(t, 2, s.Size())

	h := s.Hash()
	assert.Equal(t, hashIntSet([]int{3, 9}), h)

	frozen := s.Freeze()
	assert.Equal(t, h, frozen.Hash())
	assert.True(t, frozen.Equals(s))
	assert.True(t, s.Equals(frozen))

	s.Add(1)
	assert.NotEqual(t, h, s.Hash())
	assert.False(t, frozen.Equals(s))
	assert.Equal(t, []int{3, 9}, frozen.GetArray())

	s.Reset()
	assert.Equal(t, 0, s.Size())
	assert.Equal(t, hashIntSet(nil), s.Hash())
	assert.False(t, s.Equals(AnotherKey(0)))
}
