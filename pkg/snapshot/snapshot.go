package snapshot

import (
	"errors"
	"fmt"

	"github.com/matzehuels/refgraph/pkg/objgraph"
)

// Validation errors returned by [Graph.Validate] and the loaders.
var (
	// ErrDuplicateVertexID indicates two vertices share an id.
	ErrDuplicateVertexID = errors.New("duplicate vertex id")

	// ErrDuplicateEdgeID indicates two edges share an id.
	ErrDuplicateEdgeID = errors.New("duplicate edge id")

	// ErrDanglingEdge indicates an edge references a vertex id that is
	// not part of the snapshot.
	ErrDanglingEdge = errors.New("edge references unknown vertex")
)

// Vertex is one vertex of a snapshot. Label is optional descriptive
// text; an empty label is omitted from serialized output.
type Vertex struct {
	ID    int64  `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Edge is one directed edge of a snapshot, pointing from the vertex with
// id Tail to the vertex with id Head.
type Edge struct {
	ID    int64  `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
	Tail  int64  `json:"tail" bson:"tail"`
	Head  int64  `json:"head" bson:"head"`
}

// Graph is the portable form of a directed graph: pure data, ready for
// JSON or bson serialization. Vertices and edges keep the order of the
// graph they were captured from.
type Graph struct {
	Name     string   `json:"name,omitempty" bson:"name,omitempty"`
	Vertices []Vertex `json:"vertices" bson:"vertices"`
	Edges    []Edge   `json:"edges" bson:"edges"`
}

// FromGraph captures a built graph as a snapshot. Vertices receive
// ordinal ids in discovery order; edges keep the graph's own edge ids.
// Labels come from the graph's annotators, so capturing forces every
// lazy annotation once.
func FromGraph[V any, K comparable](g *objgraph.Graph[V, K], name string) Graph {
	vertices := g.Vertices()
	ordinals := make(map[K]int64, len(vertices))

	vs := make([]Vertex, len(vertices))
	for i, v := range vertices {
		ordinals[g.Key(v)] = int64(i)
		vs[i] = Vertex{ID: int64(i), Label: g.VertexAnnotation(v)}
	}

	edges := g.Edges()
	es := make([]Edge, len(edges))
	for i, e := range edges {
		tail, _ := g.Tail(e)
		head, _ := g.Head(e)
		es[i] = Edge{
			ID:    int64(e),
			Label: g.EdgeAnnotation(e),
			Tail:  ordinals[g.Key(tail)],
			Head:  ordinals[g.Key(head)],
		}
	}

	return Graph{Name: name, Vertices: vs, Edges: es}
}

// Validate checks structural integrity: vertex and edge ids must be
// unique, and every edge must reference vertices that exist.
func (g Graph) Validate() error {
	vertexIDs := make(map[int64]bool, len(g.Vertices))
	for _, v := range g.Vertices {
		if vertexIDs[v.ID] {
			return fmt.Errorf("vertex %d: %w", v.ID, ErrDuplicateVertexID)
		}
		vertexIDs[v.ID] = true
	}

	edgeIDs := make(map[int64]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("edge %d: %w", e.ID, ErrDuplicateEdgeID)
		}
		edgeIDs[e.ID] = true
		if !vertexIDs[e.Tail] {
			return fmt.Errorf("edge %d tail %d: %w", e.ID, e.Tail, ErrDanglingEdge)
		}
		if !vertexIDs[e.Head] {
			return fmt.Errorf("edge %d head %d: %w", e.ID, e.Head, ErrDanglingEdge)
		}
	}
	return nil
}

// Materialize rebuilds a queryable graph from the snapshot. Vertex
// pointers are fresh; labels are served back through the rebuilt graph's
// annotators. Edge ids are assigned anew in edge-list order, so they
// generally differ from the ids recorded in the snapshot.
func (g Graph) Materialize() *objgraph.Graph[*Vertex, int64] {
	vertices := make([]*Vertex, len(g.Vertices))
	byID := make(map[int64]*Vertex, len(g.Vertices))
	for i := range g.Vertices {
		v := g.Vertices[i]
		vertices[i] = &v
		byID[v.ID] = &v
	}

	children := make(map[int64][]*Vertex)
	edgeLabels := make(map[[2]int64]string)
	for _, e := range g.Edges {
		head, ok := byID[e.Head]
		if !ok || byID[e.Tail] == nil {
			continue
		}
		children[e.Tail] = append(children[e.Tail], head)
		pair := [2]int64{e.Tail, e.Head}
		if _, ok := edgeLabels[pair]; !ok {
			edgeLabels[pair] = e.Label
		}
	}

	key := func(v *Vertex) int64 { return v.ID }
	expand := func(v *Vertex) []*Vertex { return children[v.ID] }

	return objgraph.FromVertices(key, vertices, expand,
		objgraph.WithVertexAnnotator[*Vertex, int64](func(v *Vertex) string {
			return v.Label
		}),
		objgraph.WithEdgeAnnotator[*Vertex, int64](func(tail, head *Vertex) string {
			return edgeLabels[[2]int64{tail.ID, head.ID}]
		}),
	)
}

// Recapture snapshots a graph whose vertices already carry snapshot ids,
// keeping vertex ids, edge ids, and labels intact. Use it for subgraphs
// of a materialized snapshot, where [FromGraph] would renumber the
// vertices and lose the correspondence with the original.
func Recapture(g *objgraph.Graph[*Vertex, int64], name string) Graph {
	vertices := g.Vertices()
	vs := make([]Vertex, len(vertices))
	for i, v := range vertices {
		vs[i] = Vertex{ID: v.ID, Label: v.Label}
	}

	edges := g.Edges()
	es := make([]Edge, len(edges))
	for i, e := range edges {
		tail, _ := g.Tail(e)
		head, _ := g.Head(e)
		es[i] = Edge{
			ID:    int64(e),
			Label: g.EdgeAnnotation(e),
			Tail:  tail.ID,
			Head:  head.ID,
		}
	}

	return Graph{Name: name, Vertices: vs, Edges: es}
}
