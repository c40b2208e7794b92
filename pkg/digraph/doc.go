// Package digraph defines the minimal contract a directed graph must
// satisfy and implements graph algorithms once against that contract.
//
// # Overview
//
// The [Interface] type abstracts a directed graph over an arbitrary vertex
// type V identified by a comparable key type K. Any structure that can
// enumerate its vertices, walk edges in both directions, and restrict
// itself to a vertex subset gets the derived algorithms for free:
//
//   - [Descendants]: every vertex reachable from a start vertex
//   - [Ancestors]: every vertex that can reach a start vertex
//   - [StronglyConnectedComponents]: the partition into maximal
//     mutually-reachable vertex groups
//
// All three return induced subgraphs produced by the implementation's own
// Subgraph method, so results stay in the caller's concrete graph type.
//
// [objgraph.Graph] is the primary implementation.
//
// # Vertex identity
//
// Vertices are compared by derived key, never by value equality. Two
// values with the same key are the same vertex; implementations must
// return canonical vertex values consistently from Vertices, Children and
// Parents.
//
// # Algorithms
//
// The traversals and the strongly-connected-components search run
// iteratively on explicit stacks. Call-stack depth stays constant no
// matter how deep or cyclic the graph is, so pathological inputs (a
// million-vertex chain, say) cannot overflow the goroutine stack.
//
// StronglyConnectedComponents uses Gabow's path-based algorithm: a single
// depth-first pass over the graph maintaining a path stack and a boundary
// stack, identifying each component the moment its root finishes. Runtime
// is O(V + E).
//
// [objgraph.Graph]: github.com/matzehuels/refgraph/pkg/objgraph.Graph
package digraph
