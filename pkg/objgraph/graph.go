package objgraph

import (
	"slices"
	"sync"

	"github.com/matzehuels/refgraph/pkg/digraph"
	"github.com/matzehuels/refgraph/pkg/keyed"
)

// Graph is a directed graph over vertices of type V identified by keys of
// type K. Build one with [FromRoots] or [FromVertices]; the zero value is
// not usable.
//
// Graph implements [digraph.Interface], so the package-level algorithms
// in [digraph] accept it directly.
type Graph[V any, K comparable] struct {
	key      func(V) K
	vertices *keyed.Set[V, K]
	out      *keyed.Map[V, K, []int]
	in       *keyed.Map[V, K, []int]
	heads    map[int]V
	tails    map[int]V
	edges    []int // ascending

	annotateVertex func(V) string
	annotateEdge   func(tail, head V) string

	annoMu      sync.Mutex
	vertexNotes *keyed.Map[V, K, string]
	edgeNotes   map[int]string
}

var _ digraph.Interface[int, int] = (*Graph[int, int])(nil)

// Option configures a graph under construction.
type Option[V any, K comparable] func(*Graph[V, K])

func newGraph[V any, K comparable](key func(V) K, opts []Option[V, K]) *Graph[V, K] {
	if key == nil {
		panic("objgraph: nil key function")
	}
	g := &Graph[V, K]{
		key:         key,
		vertices:    keyed.NewSet(key),
		out:         keyed.NewMap[V, K, []int](key),
		in:          keyed.NewMap[V, K, []int](key),
		heads:       make(map[int]V),
		tails:       make(map[int]V),
		vertexNotes: keyed.NewMap[V, K, string](key),
		edgeNotes:   make(map[int]string),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromRoots builds the graph reachable from the given roots: every vertex
// in the closure of roots under expand, and one edge per reference the
// callback returns.
//
// Construction runs a single breadth-first pass. Each vertex is expanded
// exactly once, in discovery order; references to vertices already seen
// resolve to the stored canonical value. A nil expand yields a graph with
// the deduplicated roots and no edges. The key function must not be nil.
func FromRoots[V any, K comparable](key func(V) K, roots []V, expand func(V) []V, opts ...Option[V, K]) *Graph[V, K] {
	g := newGraph(key, opts)
	for _, r := range roots {
		g.addVertex(r)
	}
	if expand == nil {
		return g
	}
	next := 0
	for i := 0; i < g.vertices.Len(); i++ {
		v := g.vertices.At(i)
		for _, w := range expand(v) {
			g.addVertex(w)
			head, _ := g.vertices.Get(w)
			g.addEdge(next, v, head)
			next++
		}
	}
	return g
}

// FromVertices builds a graph over exactly the given vertices. The
// expansion callback runs once per vertex, and references to vertices
// outside the given universe are silently dropped; the graph never grows
// beyond the universe.
//
// Duplicate vertices (by key) collapse to the first value given. A nil
// expand yields a graph with no edges. The key function must not be nil.
func FromVertices[V any, K comparable](key func(V) K, vertices []V, expand func(V) []V, opts ...Option[V, K]) *Graph[V, K] {
	g := newGraph(key, opts)
	for _, v := range vertices {
		g.addVertex(v)
	}
	if expand == nil {
		return g
	}
	next := 0
	for i := 0; i < g.vertices.Len(); i++ {
		v := g.vertices.At(i)
		for _, w := range expand(v) {
			head, ok := g.vertices.Get(w)
			if !ok {
				continue
			}
			g.addEdge(next, v, head)
			next++
		}
	}
	return g
}

func (g *Graph[V, K]) addVertex(v V) {
	if g.vertices.Add(v) {
		g.out.Set(v, nil)
		g.in.Set(v, nil)
	}
}

// addEdge records an edge between canonical vertices. Callers resolve the
// endpoints through the vertex set first.
func (g *Graph[V, K]) addEdge(id int, tail, head V) {
	outs, _ := g.out.Get(tail)
	g.out.Set(tail, append(outs, id))
	ins, _ := g.in.Get(head)
	g.in.Set(head, append(ins, id))
	g.tails[id] = tail
	g.heads[id] = head
	g.edges = append(g.edges, id)
}

// Vertices returns all vertices in discovery order.
func (g *Graph[V, K]) Vertices() []V {
	return g.vertices.Values()
}

// Len returns the number of vertices.
func (g *Graph[V, K]) Len() int {
	return g.vertices.Len()
}

// EdgeCount returns the number of edges.
func (g *Graph[V, K]) EdgeCount() int {
	return len(g.edges)
}

// Edges returns all edge ids in ascending order.
func (g *Graph[V, K]) Edges() []int {
	return slices.Clone(g.edges)
}

// HasVertex reports whether a vertex with v's key is in the graph.
func (g *Graph[V, K]) HasVertex(v V) bool {
	return g.vertices.Contains(v)
}

// Key returns v's identity key.
func (g *Graph[V, K]) Key(v V) K {
	return g.key(v)
}

// Children returns the heads of v's outgoing edges, in edge order.
// Unknown vertices yield nil.
func (g *Graph[V, K]) Children(v V) []V {
	ids, ok := g.out.Get(v)
	if !ok {
		return nil
	}
	children := make([]V, len(ids))
	for i, e := range ids {
		children[i] = g.heads[e]
	}
	return children
}

// Parents returns the tails of v's incoming edges, in edge order.
// Unknown vertices yield nil.
func (g *Graph[V, K]) Parents(v V) []V {
	ids, ok := g.in.Get(v)
	if !ok {
		return nil
	}
	parents := make([]V, len(ids))
	for i, e := range ids {
		parents[i] = g.tails[e]
	}
	return parents
}

// OutEdges returns the ids of v's outgoing edges, in the order they were
// materialized. Unknown vertices yield nil.
func (g *Graph[V, K]) OutEdges(v V) []int {
	ids, ok := g.out.Get(v)
	if !ok {
		return nil
	}
	return slices.Clone(ids)
}

// InEdges returns the ids of v's incoming edges, in the order they were
// materialized. Unknown vertices yield nil.
func (g *Graph[V, K]) InEdges(v V) []int {
	ids, ok := g.in.Get(v)
	if !ok {
		return nil
	}
	return slices.Clone(ids)
}

// Head returns the vertex an edge points to.
func (g *Graph[V, K]) Head(edge int) (V, bool) {
	v, ok := g.heads[edge]
	return v, ok
}

// Tail returns the vertex an edge leaves from.
func (g *Graph[V, K]) Tail(edge int) (V, bool) {
	v, ok := g.tails[edge]
	return v, ok
}

// Subgraph returns the subgraph induced by the given vertices: exactly
// those vertices (deduplicated by key), plus every edge of g whose
// endpoints are both included. Edge ids are carried over unchanged.
//
// Vertices that are not part of g are accepted and kept as isolated
// vertices, which lets callers restrict to a vertex list assembled
// elsewhere without filtering it first. Passing every vertex of g yields
// a structurally identical copy. The dynamic type of the result is always
// *Graph.
func (g *Graph[V, K]) Subgraph(vertices []V) digraph.Interface[V, K] {
	return g.induce(vertices)
}

func (g *Graph[V, K]) induce(vertices []V) *Graph[V, K] {
	sub := newGraph(g.key, nil)
	sub.annotateVertex = g.annotateVertex
	sub.annotateEdge = g.annotateEdge

	for _, v := range vertices {
		sub.addVertex(v)
	}
	for i := 0; i < sub.vertices.Len(); i++ {
		tail := sub.vertices.At(i)
		ids, ok := g.out.Get(tail)
		if !ok {
			continue // not a vertex of g: stays isolated
		}
		for _, e := range ids {
			head, ok := sub.vertices.Get(g.heads[e])
			if !ok {
				continue
			}
			sub.addEdge(e, tail, head)
		}
	}
	slices.Sort(sub.edges)
	return sub
}

// Descendants returns the subgraph of every vertex reachable from start,
// including start. It returns [digraph.ErrVertexNotFound] if start is not
// a vertex of g.
func (g *Graph[V, K]) Descendants(start V) (*Graph[V, K], error) {
	sub, err := digraph.Descendants[V, K](g, start)
	if err != nil {
		return nil, err
	}
	return sub.(*Graph[V, K]), nil
}

// Ancestors returns the subgraph of every vertex that can reach start,
// including start. It returns [digraph.ErrVertexNotFound] if start is not
// a vertex of g.
func (g *Graph[V, K]) Ancestors(start V) (*Graph[V, K], error) {
	sub, err := digraph.Ancestors[V, K](g, start)
	if err != nil {
		return nil, err
	}
	return sub.(*Graph[V, K]), nil
}

// Components returns the strongly connected components of g, each as a
// subgraph with original edge ids.
func (g *Graph[V, K]) Components() []*Graph[V, K] {
	comps := digraph.StronglyConnectedComponents[V, K](g)
	out := make([]*Graph[V, K], len(comps))
	for i, c := range comps {
		out[i] = c.(*Graph[V, K])
	}
	return out
}
