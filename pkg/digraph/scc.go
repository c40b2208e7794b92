package digraph

import "slices"

// sccOp tags the pending work a frame on the traversal stack represents.
type sccOp uint8

const (
	opVisit     sccOp = iota // first encounter: open the vertex
	opEdge                   // examine one edge into a possibly-seen vertex
	opPostvisit              // all children done: maybe close a component
)

type sccFrame[V any, K comparable] struct {
	op     sccOp
	vertex V
	key    K
}

// StronglyConnectedComponents partitions g's vertices into maximal groups
// whose members are all mutually reachable. Each group is returned as the
// induced subgraph g.Subgraph(members); every vertex of g appears in
// exactly one group, and vertices on no cycle form singleton groups.
//
// The search is Gabow's path-based algorithm in O(V + E): one depth-first
// pass maintaining the current path and the boundaries of components that
// are still open. It runs on an explicit frame stack, so recursion depth
// does not grow with the graph. Components are emitted innermost first,
// which puts every group before the groups that can reach it.
func StronglyConnectedComponents[V any, K comparable](g Interface[V, K]) []Interface[V, K] {
	var (
		components [][]V
		stack      []V   // vertices on the current depth-first path
		boundaries []int // stack positions where open components begin
		todo       []sccFrame[V, K]
	)
	index := make(map[K]int) // vertex key -> position on stack
	identified := make(map[K]bool)

	for _, root := range g.Vertices() {
		if _, seen := index[g.Key(root)]; seen {
			continue
		}
		todo = append(todo, sccFrame[V, K]{op: opVisit, vertex: root, key: g.Key(root)})

		for len(todo) > 0 {
			f := todo[len(todo)-1]
			todo = todo[:len(todo)-1]

			switch f.op {
			case opVisit:
				index[f.key] = len(stack)
				stack = append(stack, f.vertex)
				boundaries = append(boundaries, index[f.key])
				todo = append(todo, sccFrame[V, K]{op: opPostvisit, vertex: f.vertex, key: f.key})
				// Push children in reverse so they are examined in
				// natural edge order.
				children := g.Children(f.vertex)
				for i := len(children) - 1; i >= 0; i-- {
					w := children[i]
					todo = append(todo, sccFrame[V, K]{op: opEdge, vertex: w, key: g.Key(w)})
				}

			case opEdge:
				pos, seen := index[f.key]
				if !seen {
					todo = append(todo, sccFrame[V, K]{op: opVisit, vertex: f.vertex, key: f.key})
				} else if !identified[f.key] {
					// A back or cross edge inside the current path:
					// everything down to the target is one component.
					for pos < boundaries[len(boundaries)-1] {
						boundaries = boundaries[:len(boundaries)-1]
					}
				}

			case opPostvisit:
				if boundaries[len(boundaries)-1] != index[f.key] {
					continue
				}
				// f.vertex opened the component on top of the path;
				// everything above it belongs to that component.
				boundaries = boundaries[:len(boundaries)-1]
				members := slices.Clone(stack[index[f.key]:])
				stack = stack[:index[f.key]]
				for _, w := range members {
					identified[g.Key(w)] = true
				}
				components = append(components, members)
			}
		}
	}

	result := make([]Interface[V, K], len(components))
	for i, members := range components {
		result[i] = g.Subgraph(members)
	}
	return result
}
