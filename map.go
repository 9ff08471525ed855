package automaton

import "sync"

// Hashable is a key of HashMap. Equal keys must have equal hashes.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// maxLoad is the number of keys per bucket above which a HashMap doubles.
const maxLoad = 0.75

// HashMap is a chained hash table keyed by Hashable values. It backs the
// memo tables of pattern compilation and determinization, where the keys
// (patterns, state sets) are not comparable Go values. A key may be looked
// up through any Hashable that Equals it, so a mutable StateSet finds the
// FrozenIntSet stored for the same ids.
type HashMap[T any] struct {
	mutex   sync.RWMutex
	buckets []*entry[T]
	size    int
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

// OptionsHashMap configures NewHashMap.
type OptionsHashMap func(capacity *int)

// WithCapacity sets the initial number of buckets, rounded up to a power of two.
func WithCapacity(capacity int) OptionsHashMap {
	return func(c *int) {
		*c = capacity
	}
}

// NewHashMap returns an empty HashMap.
func NewHashMap[T any](options ...OptionsHashMap) *HashMap[T] {
	capacity := 1
	for _, opt := range options {
		opt(&capacity)
	}
	buckets := 1
	for buckets < capacity {
		buckets <<= 1
	}
	return &HashMap[T]{buckets: make([]*entry[T], buckets)}
}

func (m *HashMap[T]) find(key Hashable) (*entry[T], uint64) {
	index := key.Hash() & uint64(len(m.buckets)-1)
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e, index
		}
	}
	return nil, index
}

// Set stores value under key, replacing any previous value. The key is kept
// as given and must not change afterwards.
func (m *HashMap[T]) Set(key Hashable, value T) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	e, index := m.find(key)
	if e != nil {
		e.value = value
		return
	}
	m.buckets[index] = &entry[T]{key: key, value: value, next: m.buckets[index]}
	m.size++

	if float64(m.size) > maxLoad*float64(len(m.buckets)) {
		m.grow()
	}
}

// Get returns the value stored under a key equal to key.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if e, _ := m.find(key); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

// grow doubles the bucket count, relinking the existing entries.
func (m *HashMap[T]) grow() {
	buckets := make([]*entry[T], len(m.buckets)<<1)
	mask := uint64(len(buckets) - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; {
			next := e.next
			index := e.key.Hash() & mask
			e.next = buckets[index]
			buckets[index] = e
			e = next
		}
	}
	m.buckets = buckets
}

// Size returns the number of keys.
func (m *HashMap[T]) Size() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.size
}
