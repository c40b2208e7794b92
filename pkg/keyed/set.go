package keyed

import "slices"

// Set stores elements of type V deduplicated by a derived key of type K.
//
// The key function is fixed at construction and applied to every element
// passed to any method. Elements with equal keys are the same entry; the
// first element stored for a key is retained as the canonical one.
//
// The zero value of Set is not usable; use [NewSet] to create instances.
type Set[V any, K comparable] struct {
	key   func(V) K
	index map[K]int
	elems []V
}

// NewSet creates an empty set keyed by the given function.
//
// The key function must not be nil and must be pure: it is called on every
// element handed to the set, possibly more than once.
func NewSet[V any, K comparable](key func(V) K) *Set[V, K] {
	if key == nil {
		panic("keyed: nil key function")
	}
	return &Set[V, K]{
		key:   key,
		index: make(map[K]int),
	}
}

// Add inserts v under its derived key. It reports whether the set changed:
// false means an element with the same key was already present, and that
// original element remains the stored one.
func (s *Set[V, K]) Add(v V) bool {
	k := s.key(v)
	if _, ok := s.index[k]; ok {
		return false
	}
	s.index[k] = len(s.elems)
	s.elems = append(s.elems, v)
	return true
}

// Contains reports whether an element with v's derived key is present.
func (s *Set[V, K]) Contains(v V) bool {
	_, ok := s.index[s.key(v)]
	return ok
}

// ContainsKey reports whether an element with the given key is present.
func (s *Set[V, K]) ContainsKey(k K) bool {
	_, ok := s.index[k]
	return ok
}

// Get returns the canonical stored element for v's derived key.
func (s *Set[V, K]) Get(v V) (V, bool) {
	return s.GetKey(s.key(v))
}

// GetKey returns the canonical stored element for the given key.
func (s *Set[V, K]) GetKey(k K) (V, bool) {
	i, ok := s.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return s.elems[i], true
}

// Remove deletes the element with v's derived key and reports whether it
// was present. The relative order of the remaining elements is preserved.
func (s *Set[V, K]) Remove(v V) bool {
	k := s.key(v)
	i, ok := s.index[k]
	if !ok {
		return false
	}
	delete(s.index, k)
	s.elems = slices.Delete(s.elems, i, i+1)
	for j := i; j < len(s.elems); j++ {
		s.index[s.key(s.elems[j])] = j
	}
	return true
}

// Len returns the number of elements in the set.
func (s *Set[V, K]) Len() int {
	return len(s.elems)
}

// At returns the i'th element in insertion order. It panics if i is out of
// range. At stays valid while elements are appended during iteration, which
// lets callers treat the set as a growable worklist:
//
//	for i := 0; i < set.Len(); i++ {
//		expand(set.At(i)) // may Add more elements
//	}
func (s *Set[V, K]) At(i int) V {
	return s.elems[i]
}

// Values returns the elements in insertion order. The returned slice is a
// copy and may be modified by the caller.
func (s *Set[V, K]) Values() []V {
	return slices.Clone(s.elems)
}
