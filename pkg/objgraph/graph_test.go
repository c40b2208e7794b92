package objgraph_test

import (
	"errors"
	"slices"
	"sort"
	"testing"

	"github.com/matzehuels/refgraph/pkg/digraph"
	"github.com/matzehuels/refgraph/pkg/objgraph"
)

type node struct {
	name string
	refs []*node
}

func nodeKey(n *node) string   { return n.name }
func nodeRefs(n *node) []*node { return n.refs }

func link(tail *node, heads ...*node) {
	tail.refs = append(tail.refs, heads...)
}

// buildCycle builds the running example from a single root:
//
//	A → B → C → D
//	^       │
//	└───────┘
//
// Discovery order is A, B, C, D and edge ids are
// 0: A→B, 1: B→C, 2: C→A, 3: C→D.
func buildCycle() (*objgraph.Graph[*node, string], map[string]*node) {
	a := &node{name: "A"}
	b := &node{name: "B"}
	c := &node{name: "C"}
	d := &node{name: "D"}
	link(a, b)
	link(b, c)
	link(c, a, d)

	g := objgraph.FromRoots(nodeKey, []*node{a}, nodeRefs)
	return g, map[string]*node{"A": a, "B": b, "C": c, "D": d}
}

func sortedNames(g *objgraph.Graph[*node, string]) []string {
	var out []string
	for _, v := range g.Vertices() {
		out = append(out, v.name)
	}
	sort.Strings(out)
	return out
}

func TestFromRootsClosure(t *testing.T) {
	g, nodes := buildCycle()

	if got := g.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := g.EdgeCount(); got != 4 {
		t.Errorf("EdgeCount() = %d, want 4", got)
	}
	if got, want := g.Edges(), []int{0, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}

	var order []string
	for _, v := range g.Vertices() {
		order = append(order, v.name)
	}
	if want := []string{"A", "B", "C", "D"}; !slices.Equal(order, want) {
		t.Errorf("Vertices() order = %v, want %v", order, want)
	}

	if tail, _ := g.Tail(2); tail != nodes["C"] {
		t.Errorf("Tail(2) = %v, want C", tail)
	}
	if head, _ := g.Head(2); head != nodes["A"] {
		t.Errorf("Head(2) = %v, want A", head)
	}
	if _, ok := g.Head(99); ok {
		t.Error("Head(99) reported present, want missing")
	}
}

func TestFromRootsCanonicalVertices(t *testing.T) {
	// The expansion returns fresh values; vertices with equal keys must
	// collapse onto the first value seen.
	refs := map[string][]*node{
		"A": {{name: "B"}},
		"C": {{name: "B"}},
	}
	expand := func(n *node) []*node { return refs[n.name] }

	a := &node{name: "A"}
	c := &node{name: "C"}
	g := objgraph.FromRoots(nodeKey, []*node{a, c}, expand)

	if got := g.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	fromA := g.Children(a)[0]
	fromC := g.Children(c)[0]
	if fromA != fromC {
		t.Errorf("Children(A)[0] = %p, Children(C)[0] = %p, want the same canonical vertex", fromA, fromC)
	}
}

func TestFromRootsParallelEdgesAndSelfLoops(t *testing.T) {
	a := &node{name: "A"}
	b := &node{name: "B"}
	link(a, b, b, a)

	g := objgraph.FromRoots(nodeKey, []*node{a}, nodeRefs)

	if got := g.EdgeCount(); got != 3 {
		t.Fatalf("EdgeCount() = %d, want 3", got)
	}
	if got, want := g.OutEdges(a), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("OutEdges(A) = %v, want %v", got, want)
	}

	var childNames []string
	for _, ch := range g.Children(a) {
		childNames = append(childNames, ch.name)
	}
	if want := []string{"B", "B", "A"}; !slices.Equal(childNames, want) {
		t.Errorf("Children(A) = %v, want %v", childNames, want)
	}

	if got, want := g.InEdges(a), []int{2}; !slices.Equal(got, want) {
		t.Errorf("InEdges(A) = %v, want %v", got, want)
	}
	if parents := g.Parents(a); len(parents) != 1 || parents[0] != a {
		t.Errorf("Parents(A) = %v, want [A] via the self-loop", parents)
	}
}

func TestFromRootsNilExpand(t *testing.T) {
	a := &node{name: "A"}
	g := objgraph.FromRoots(nodeKey, []*node{a, {name: "A"}, {name: "B"}}, nil)

	if got := g.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if got := g.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount() = %d, want 0", got)
	}
}

func TestFromVerticesDropsOutsideReferences(t *testing.T) {
	a := &node{name: "A"}
	b := &node{name: "B"}
	x := &node{name: "X"}
	link(a, x, b) // the reference to X leaves the universe

	g := objgraph.FromVertices(nodeKey, []*node{a, b}, nodeRefs)

	if got := g.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	if g.HasVertex(x) {
		t.Error("HasVertex(X) = true, want false")
	}
	if got := g.EdgeCount(); got != 1 {
		t.Fatalf("EdgeCount() = %d, want 1", got)
	}

	// Dropped references consume no edge ids.
	if got, want := g.OutEdges(a), []int{0}; !slices.Equal(got, want) {
		t.Errorf("OutEdges(A) = %v, want %v", got, want)
	}
	if head, _ := g.Head(0); head != b {
		t.Errorf("Head(0) = %v, want B", head)
	}
}

func TestSubgraphPreservesEdgeIDs(t *testing.T) {
	g, nodes := buildCycle()

	sub := g.Subgraph([]*node{nodes["A"], nodes["B"], nodes["C"]}).(*objgraph.Graph[*node, string])

	if got, want := sortedNames(sub), []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("Subgraph vertices = %v, want %v", got, want)
	}
	// Edge 3 (C→D) falls away; the surviving ids stay untouched.
	if got, want := sub.Edges(), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("Subgraph Edges() = %v, want %v", got, want)
	}
	if tail, _ := sub.Tail(2); tail != nodes["C"] {
		t.Errorf("Subgraph Tail(2) = %v, want C", tail)
	}
	if head, _ := sub.Head(2); head != nodes["A"] {
		t.Errorf("Subgraph Head(2) = %v, want A", head)
	}
}

func TestSubgraphOnAllVerticesIsIdentity(t *testing.T) {
	g, _ := buildCycle()

	sub := g.Subgraph(g.Vertices()).(*objgraph.Graph[*node, string])

	gotVerts := g.Vertices()
	subVerts := sub.Vertices()
	if len(gotVerts) != len(subVerts) {
		t.Fatalf("Subgraph has %d vertices, want %d", len(subVerts), len(gotVerts))
	}
	for i := range gotVerts {
		if gotVerts[i] != subVerts[i] {
			t.Errorf("vertex %d = %v, want %v", i, subVerts[i], gotVerts[i])
		}
	}
	if got, want := sub.Edges(), g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Subgraph Edges() = %v, want %v", got, want)
	}
	for _, v := range gotVerts {
		if got, want := sub.OutEdges(v), g.OutEdges(v); !slices.Equal(got, want) {
			t.Errorf("Subgraph OutEdges(%s) = %v, want %v", v.name, got, want)
		}
		if got, want := sub.InEdges(v), g.InEdges(v); !slices.Equal(got, want) {
			t.Errorf("Subgraph InEdges(%s) = %v, want %v", v.name, got, want)
		}
	}
}

func TestSubgraphAcceptsForeignVertices(t *testing.T) {
	g, nodes := buildCycle()
	z := &node{name: "Z"}

	sub := g.Subgraph([]*node{nodes["A"], z}).(*objgraph.Graph[*node, string])

	if !sub.HasVertex(z) {
		t.Error("HasVertex(Z) = false, want true: foreign vertices are kept isolated")
	}
	if got := sub.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount() = %d, want 0", got)
	}
	if got := sub.Children(z); len(got) != 0 {
		t.Errorf("Children(Z) = %v, want none", got)
	}
}

func TestGraphDescendants(t *testing.T) {
	g, nodes := buildCycle()

	sub, err := g.Descendants(nodes["A"])
	if err != nil {
		t.Fatalf("Descendants(A) error: %v", err)
	}
	if got, want := sortedNames(sub), []string{"A", "B", "C", "D"}; !slices.Equal(got, want) {
		t.Errorf("Descendants(A) = %v, want %v", got, want)
	}

	sub, err = g.Descendants(nodes["D"])
	if err != nil {
		t.Fatalf("Descendants(D) error: %v", err)
	}
	if got, want := sortedNames(sub), []string{"D"}; !slices.Equal(got, want) {
		t.Errorf("Descendants(D) = %v, want %v", got, want)
	}

	if _, err := g.Descendants(&node{name: "Z"}); !errors.Is(err, digraph.ErrVertexNotFound) {
		t.Errorf("Descendants(Z) error = %v, want ErrVertexNotFound", err)
	}
}

func TestGraphAncestors(t *testing.T) {
	g, nodes := buildCycle()

	sub, err := g.Ancestors(nodes["D"])
	if err != nil {
		t.Fatalf("Ancestors(D) error: %v", err)
	}
	if got, want := sortedNames(sub), []string{"A", "B", "C", "D"}; !slices.Equal(got, want) {
		t.Errorf("Ancestors(D) = %v, want %v", got, want)
	}

	sub, err = g.Ancestors(nodes["B"])
	if err != nil {
		t.Fatalf("Ancestors(B) error: %v", err)
	}
	if got, want := sortedNames(sub), []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("Ancestors(B) = %v, want %v", got, want)
	}

	if _, err := g.Ancestors(&node{name: "Z"}); !errors.Is(err, digraph.ErrVertexNotFound) {
		t.Errorf("Ancestors(Z) error = %v, want ErrVertexNotFound", err)
	}
}

func TestGraphComponents(t *testing.T) {
	g, _ := buildCycle()

	comps := g.Components()
	if len(comps) != 2 {
		t.Fatalf("Components() returned %d components, want 2", len(comps))
	}
	if got, want := sortedNames(comps[0]), []string{"D"}; !slices.Equal(got, want) {
		t.Errorf("components[0] = %v, want %v", got, want)
	}
	if got, want := sortedNames(comps[1]), []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("components[1] = %v, want %v", got, want)
	}

	// The cycle's edges keep their original ids inside the component.
	if got, want := comps[1].Edges(), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("cycle component Edges() = %v, want %v", got, want)
	}
	if got := comps[0].EdgeCount(); got != 0 {
		t.Errorf("singleton component EdgeCount() = %d, want 0", got)
	}
}

func TestEdgeIDsLocalToConstruction(t *testing.T) {
	build := func() *objgraph.Graph[*node, string] {
		a := &node{name: "A"}
		link(a, &node{name: "B"})
		return objgraph.FromRoots(nodeKey, []*node{a}, nodeRefs)
	}

	g1, g2 := build(), build()
	if got, want := g1.Edges(), []int{0}; !slices.Equal(got, want) {
		t.Errorf("first graph Edges() = %v, want %v", got, want)
	}
	if got, want := g2.Edges(), []int{0}; !slices.Equal(got, want) {
		t.Errorf("second graph Edges() = %v, want %v", got, want)
	}
}
