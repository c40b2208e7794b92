// Package objgraph builds directed graphs over arbitrary values by
// expanding references from seed vertices.
//
// # Overview
//
// A [Graph] is constructed from an expansion callback that, given a
// vertex, returns the vertices it references. [FromRoots] grows the graph
// until the closure of the roots is covered; [FromVertices] fixes the
// vertex universe up front and keeps only references that stay inside it:
//
//	key := func(n *Node) string { return n.Name }
//	refs := func(n *Node) []*Node { return n.DependsOn }
//
//	g := objgraph.FromRoots(key, []*Node{root}, refs)
//
// Vertices are tracked by the derived key, never by value equality: two
// values with equal keys are the same vertex, and the first value seen is
// kept as the canonical one. Every reference returned by the callback
// becomes its own edge, so parallel edges and self-loops are preserved.
//
// Graphs are immutable once a constructor returns. Analysis goes through
// the methods [Graph.Descendants], [Graph.Ancestors] and
// [Graph.Components], which delegate to the algorithms in [digraph] and
// return results as graphs of the same type.
//
// # Edges
//
// Edges are identified by plain ints, assigned from zero in the order the
// expansion callback returns references. Ids are local to one
// construction: two graphs built independently reuse the same ids with
// unrelated meanings. [Graph.Subgraph] carries edge ids over unchanged,
// so an edge keeps its identity in every subgraph derived from the same
// build. [Graph.Head] and [Graph.Tail] recover an edge's endpoints.
//
// # Annotations
//
// Optional callbacks attached with [WithVertexAnnotator] and
// [WithEdgeAnnotator] supply human-readable labels. They run lazily, at
// most once per vertex or edge, and the memoized results are safe to read
// from concurrent goroutines. Subgraphs inherit the callbacks but not the
// memoized values.
//
// # Concurrency
//
// Construction is single-threaded. A constructed graph is safe for
// concurrent readers; no method mutates graph structure.
//
// [digraph]: github.com/matzehuels/refgraph/pkg/digraph
package objgraph
