package pipeline

import (
	"strconv"

	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// computeAnalysis runs the requested operation against a materialized graph.
// Subgraph results are captured with their original vertex and edge ids so
// they stay addressable against the full graph.
func computeAnalysis(g *Graph, opts Options) (*Analysis, error) {
	analysis := &Analysis{Op: opts.Op, Vertex: opts.Vertex}

	switch opts.Op {
	case OpDescendants, OpAncestors:
		v, err := findVertex(g, opts.Vertex)
		if err != nil {
			return nil, err
		}
		reach := g.Descendants
		if opts.Op == OpAncestors {
			reach = g.Ancestors
		}
		sub, err := reach(v)
		if err != nil {
			return nil, err
		}
		snap := snapshot.Recapture(sub, "")
		analysis.Subgraph = &snap

	case OpComponents:
		comps := g.Components()
		analysis.Components = make([]snapshot.Graph, len(comps))
		for i, c := range comps {
			analysis.Components[i] = snapshot.Recapture(c, "")
		}

	case OpStats:
		analysis.Stats = computeStats(g)

	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unsupported op: %s", opts.Op)
	}

	return analysis, nil
}

// findVertex resolves a vertex selector against a graph. An exact label
// match wins; otherwise the selector is tried as a numeric vertex id.
func findVertex(g *Graph, selector string) (*snapshot.Vertex, error) {
	for _, v := range g.Vertices() {
		if v.Label == selector {
			return v, nil
		}
	}
	if id, err := strconv.ParseInt(selector, 10, 64); err == nil {
		for _, v := range g.Vertices() {
			if v.ID == id {
				return v, nil
			}
		}
	}
	return nil, &apperrors.VertexNotFoundError{Vertex: selector}
}

// computeStats summarizes the shape of a graph.
func computeStats(g *Graph) *GraphStats {
	stats := &GraphStats{
		Vertices: g.Len(),
		Edges:    g.EdgeCount(),
	}

	for _, c := range g.Components() {
		stats.Components++
		if c.Len() > stats.LargestComponent {
			stats.LargestComponent = c.Len()
		}
	}

	for _, v := range g.Vertices() {
		if len(g.Parents(v)) == 0 {
			stats.Roots++
		}
		if len(g.Children(v)) == 0 {
			stats.Leaves++
		}
	}

	for _, e := range g.Edges() {
		tail, _ := g.Tail(e)
		head, _ := g.Head(e)
		if tail.ID == head.ID {
			stats.SelfLoops++
		}
	}

	return stats
}
