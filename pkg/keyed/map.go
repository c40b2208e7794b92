package keyed

import "slices"

type mapEntry[V, T any] struct {
	elem  V
	value T
}

// Map associates values of type T with elements of type V, keyed by a
// derived key of type K.
//
// Like [Set], the first element stored for a key stays the canonical key
// holder; [Map.Set] on an existing key replaces only the value.
//
// The zero value of Map is not usable; use [NewMap] to create instances.
type Map[V any, K comparable, T any] struct {
	key     func(V) K
	index   map[K]int
	entries []mapEntry[V, T]
}

// NewMap creates an empty map keyed by the given function. The key
// function must not be nil.
func NewMap[V any, K comparable, T any](key func(V) K) *Map[V, K, T] {
	if key == nil {
		panic("keyed: nil key function")
	}
	return &Map[V, K, T]{
		key:   key,
		index: make(map[K]int),
	}
}

// Set stores t under v's derived key. If the key is already present the
// value is overwritten and the originally stored element is kept.
func (m *Map[V, K, T]) Set(v V, t T) {
	k := m.key(v)
	if i, ok := m.index[k]; ok {
		m.entries[i].value = t
		return
	}
	m.index[k] = len(m.entries)
	m.entries = append(m.entries, mapEntry[V, T]{elem: v, value: t})
}

// Get returns the value stored under v's derived key.
func (m *Map[V, K, T]) Get(v V) (T, bool) {
	i, ok := m.index[m.key(v)]
	if !ok {
		var zero T
		return zero, false
	}
	return m.entries[i].value, true
}

// GetKey returns the value stored under the given key.
func (m *Map[V, K, T]) GetKey(k K) (T, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero T
		return zero, false
	}
	return m.entries[i].value, true
}

// Has reports whether v's derived key is present.
func (m *Map[V, K, T]) Has(v V) bool {
	_, ok := m.index[m.key(v)]
	return ok
}

// Delete removes the entry under v's derived key and reports whether it
// was present. The relative order of the remaining entries is preserved.
func (m *Map[V, K, T]) Delete(v V) bool {
	k := m.key(v)
	i, ok := m.index[k]
	if !ok {
		return false
	}
	delete(m.index, k)
	m.entries = slices.Delete(m.entries, i, i+1)
	for j := i; j < len(m.entries); j++ {
		m.index[m.key(m.entries[j].elem)] = j
	}
	return true
}

// Len returns the number of entries in the map.
func (m *Map[V, K, T]) Len() int {
	return len(m.entries)
}

// Keys returns the canonical elements in insertion order. The returned
// slice is a copy and may be modified by the caller.
func (m *Map[V, K, T]) Keys() []V {
	keys := make([]V, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.elem
	}
	return keys
}
