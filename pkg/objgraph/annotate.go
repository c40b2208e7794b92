package objgraph

// WithVertexAnnotator attaches a callback that produces a descriptive
// label for a vertex. The callback runs lazily, at most once per vertex.
func WithVertexAnnotator[V any, K comparable](fn func(v V) string) Option[V, K] {
	return func(g *Graph[V, K]) {
		g.annotateVertex = fn
	}
}

// WithEdgeAnnotator attaches a callback that produces a descriptive label
// for an edge, given its endpoints. The callback runs lazily, at most
// once per edge.
func WithEdgeAnnotator[V any, K comparable](fn func(tail, head V) string) Option[V, K] {
	return func(g *Graph[V, K]) {
		g.annotateEdge = fn
	}
}

// VertexAnnotation returns the annotator's label for v, computing and
// memoizing it on first use. It returns the empty string when no vertex
// annotator is configured. Safe for concurrent use; the annotator must
// not call back into g.
func (g *Graph[V, K]) VertexAnnotation(v V) string {
	if g.annotateVertex == nil {
		return ""
	}
	g.annoMu.Lock()
	defer g.annoMu.Unlock()
	if note, ok := g.vertexNotes.Get(v); ok {
		return note
	}
	note := g.annotateVertex(v)
	g.vertexNotes.Set(v, note)
	return note
}

// EdgeAnnotation returns the annotator's label for an edge, computing and
// memoizing it on first use. It returns the empty string when no edge
// annotator is configured or the edge id is unknown. Safe for concurrent
// use; the annotator must not call back into g.
func (g *Graph[V, K]) EdgeAnnotation(edge int) string {
	if g.annotateEdge == nil {
		return ""
	}
	tail, ok := g.tails[edge]
	if !ok {
		return ""
	}
	g.annoMu.Lock()
	defer g.annoMu.Unlock()
	if note, ok := g.edgeNotes[edge]; ok {
		return note
	}
	note := g.annotateEdge(tail, g.heads[edge])
	g.edgeNotes[edge] = note
	return note
}
