package digraph

import "errors"

// ErrVertexNotFound indicates that a vertex handed to an algorithm is not
// part of the graph being queried.
var ErrVertexNotFound = errors.New("vertex not found")

// Interface is the contract graph algorithms are written against.
//
// Implementations decide how vertices and edges are stored; the interface
// only requires enumeration, neighbor lookup in both edge directions, a
// membership test, key derivation, and induced subgraphs. Methods must be
// safe for concurrent readers on a graph that is no longer being modified.
type Interface[V any, K comparable] interface {
	// Vertices returns every vertex exactly once, in a deterministic
	// order. The returned slice must not be retained by the graph.
	Vertices() []V

	// Children returns the vertices at the head of each edge leaving v,
	// in edge order. Parallel edges yield repeated entries; a self-loop
	// includes v itself. Unknown vertices yield nil.
	Children(v V) []V

	// Parents returns the vertices at the tail of each edge entering v,
	// in edge order. Unknown vertices yield nil.
	Parents(v V) []V

	// HasVertex reports whether a vertex with v's key is in the graph.
	HasVertex(v V) bool

	// Key returns the identity key that distinguishes v from every other
	// vertex. Values with equal keys are the same vertex.
	Key(v V) K

	// Subgraph returns the subgraph induced by the given vertices: those
	// vertices (deduplicated by key) plus every edge of the receiver
	// whose endpoints are both included. Vertices unknown to the
	// receiver are kept as isolated vertices.
	Subgraph(vertices []V) Interface[V, K]
}
