// Package keyed provides set and map containers whose entries are keyed
// by a value derived from the element rather than by the element itself.
//
// # Overview
//
// Graph engines frequently need to track values that are not comparable,
// or whose natural equality is wrong for the task: two distinct structs
// may be "the same vertex" because they share an identity (a pointer, an
// id field, an interned name). Both containers in this package take a key
// function at construction and apply it to every element on the way in:
//
//	set := keyed.NewSet(func(n *Node) uintptr { return uintptr(unsafe.Pointer(n)) })
//	set.Add(n)
//
// A [Set] holds at most one element per derived key, and it keeps the
// FIRST element stored for a key: adding a second value with the same key
// is a no-op that reports false. A [Map] associates an extra value with
// each key; setting an existing key overwrites the value but keeps the
// original element as the canonical key holder.
//
// Both containers preserve insertion order. [Set.Values], [Set.At] and
// [Map.Keys] iterate elements in the order they were first added, which
// makes traversal results reproducible.
//
// # Concurrency
//
// Sets and maps are not safe for concurrent use. Callers must synchronize
// access if multiple goroutines read and modify the same container.
// Read-only use from multiple goroutines is safe.
package keyed
