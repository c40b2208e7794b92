package digraph

import "fmt"

// Descendants returns the subgraph induced by every vertex reachable from
// start by following edges forward, including start itself. Vertices
// appear in discovery order.
//
// It returns [ErrVertexNotFound] if start is not a vertex of g.
func Descendants[V any, K comparable](g Interface[V, K], start V) (Interface[V, K], error) {
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("descendants of %v: %w", g.Key(start), ErrVertexNotFound)
	}
	return g.Subgraph(reachable(g, start, g.Children)), nil
}

// Ancestors returns the subgraph induced by every vertex from which start
// is reachable by following edges forward, including start itself.
// Vertices appear in discovery order.
//
// It returns [ErrVertexNotFound] if start is not a vertex of g.
func Ancestors[V any, K comparable](g Interface[V, K], start V) (Interface[V, K], error) {
	if !g.HasVertex(start) {
		return nil, fmt.Errorf("ancestors of %v: %w", g.Key(start), ErrVertexNotFound)
	}
	return g.Subgraph(reachable(g, start, g.Parents)), nil
}

// reachable collects the closure of start under next with an iterative
// depth-first walk. A vertex is marked seen when it enters the frontier,
// never when it leaves, so no vertex is pushed twice; the returned order
// is the order vertices leave the frontier.
func reachable[V any, K comparable](g Interface[V, K], start V, next func(V) []V) []V {
	seen := map[K]bool{g.Key(start): true}
	frontier := []V{start}
	var order []V

	for len(frontier) > 0 {
		v := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		order = append(order, v)

		for _, w := range next(v) {
			k := g.Key(w)
			if seen[k] {
				continue
			}
			seen[k] = true
			frontier = append(frontier, w)
		}
	}
	return order
}
