package automaton

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestKey is a Hashable with a deliberately weak hash.
type TestKey struct {
	part1 int
	part2 string
}

func (k TestKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k TestKey) Equals(other Hashable) bool {
	o, ok := other.(TestKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

// AnotherKey collides with TestKey hashes.
type AnotherKey int

func (k AnotherKey) Hash() uint64 {
	return uint64(k)
}

func (k AnotherKey) Equals(other Hashable) bool {
	o, ok := other.(AnotherKey)
	return ok && k == o
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		// missing key
		_, exists = hm.Get(TestKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(16))

	key1 := TestKey{1, "a"}  // Hash: 1+1=2
	key2 := TestKey{0, "bb"} // Hash: 0+2=2
	key3 := TestKey{2, "a"}  // Hash: 2+1=3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	assert.Equal(t, 3, hm.Size())

	t.Run("GetCollisionKeys", func(t *testing.T) {
		val, exists := hm.Get(key1)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		val, exists = hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})

	t.Run("UpdateCollisionKey", func(t *testing.T) {
		hm.Set(key2, "value2b")
		assert.Equal(t, 3, hm.Size())
		val, _ := hm.Get(key1)
		assert.Equal(t, "value1", val)
		val, _ = hm.Get(key2)
		assert.Equal(t, "value2b", val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		key := TestKey{i, ""}
		hm.Set(key, i)
	}

	assert.Equal(t, 2*initialCap, len(hm.buckets))
	assert.Equal(t, 13, hm.Size())

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(TestKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
}

func TestConcurrency(t *testing.T) {
	hm := NewHashMap[int](WithCapacity(32))
	var wg sync.WaitGroup

	numWorkers := 100
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(n int) {
			defer wg.Done()
			key := TestKey{n, "test"}
			hm.Set(key, n)
			hm.Get(key)
		}(i)
	}

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(n int) {
			defer wg.Done()
			hm.Size()
			hm.Get(TestKey{n, "test"})
		}(i)
	}

	wg.Wait()
	assert.Equal(t, numWorkers, hm.Size())
	for i := 0; i < numWorkers; i++ {
		val, exists := hm.Get(TestKey{i, "test"})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}
}

func TestTypeSafety(t *testing.T) {
	hm := NewHashMap[string](WithCapacity(8))

	key1 := TestKey{1, "a"} // Hash = 2
	key2 := AnotherKey(2)   // Hash = 2

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")

	val, exists := hm.Get(key1)
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestEdgeCases(t *testing.T) {
	t.Run("NilKey", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected panic with nil key")
			}
		}()

		hm.Set(nil, "value")
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})

	t.Run("DuplicateInsert", func(t *testing.T) {
		hm := NewHashMap[string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "v1")
		hm.Set(key, "v2")
		assert.Equal(t, 1, hm.Size())
	})
}

func TestHashMapStateSetKeys(t *testing.T) {
	hm := NewHashMap[int](WithCapacity(4))

	scratch := NewStateSet(8)
	for _, ids := range [][]int{{0}, {0, 1}, {}, {2, 5, 7}} {
		scratch.Reset()
		for _, id := range ids {
			scratch.Add(id)
		}
		hm.Set(scratch.Freeze(), hm.Size())
	}
	assert.Equal(t, 4, hm.Size())

	// A live StateSet finds the frozen copy holding the same ids.
	scratch.Reset()
	scratch.Add(7)
	scratch.Add(2)
	scratch.Add(5)
	state, ok := hm.Get(scratch)
	assert.True(t, ok)
	assert.Equal(t, 3, state)

	scratch.Reset()
	state, ok = hm.Get(scratch)
	assert.True(t, ok)
	assert.Equal(t, 2, state)

	// Keys are copies; the scratch set may change after insertion.
	scratch.Add(0)
	state, ok = hm.Get(scratch)
	assert.True(t, ok)
	assert.Equal(t, 0, state)

	scratch.Add(3)
	_, ok = hm.Get(scratch)
	assert.False(t, ok)
}

func TestHashMapPatternKeys(t *testing.T) {
	hm := NewHashMap[string]()
	hm.Set(MustParse("(a|b)*"), "star")
	hm.Set(MustParse("ab"), "concat")

	v, ok := hm.Get(Star(Union(Literal('a'), Literal('b'))))
	assert.True(t, ok)
	assert.Equal(t, "star", v)

	_, ok = hm.Get(MustParse("a|b"))
	assert.False(t, ok)
}
