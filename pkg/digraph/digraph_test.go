package digraph_test

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/matzehuels/refgraph/pkg/digraph"
)

// adjGraph is a minimal adjacency-list implementation of
// [digraph.Interface] used to exercise the derived algorithms.
type adjGraph struct {
	order []string
	out   map[string][]string
	in    map[string][]string
}

func newAdjGraph(vertices []string, edges [][2]string) digraph.Interface[string, string] {
	g := &adjGraph{
		out: make(map[string][]string),
		in:  make(map[string][]string),
	}
	for _, v := range vertices {
		if _, ok := g.out[v]; ok {
			continue
		}
		g.order = append(g.order, v)
		g.out[v] = []string{}
		g.in[v] = []string{}
	}
	for _, e := range edges {
		tail, head := e[0], e[1]
		g.out[tail] = append(g.out[tail], head)
		g.in[head] = append(g.in[head], tail)
	}
	return g
}

func (g *adjGraph) Vertices() []string         { return slices.Clone(g.order) }
func (g *adjGraph) Children(v string) []string { return g.out[v] }
func (g *adjGraph) Parents(v string) []string  { return g.in[v] }
func (g *adjGraph) Key(v string) string        { return v }

func (g *adjGraph) HasVertex(v string) bool {
	_, ok := g.out[v]
	return ok
}

func (g *adjGraph) Subgraph(vertices []string) digraph.Interface[string, string] {
	kept := make(map[string]bool, len(vertices))
	for _, v := range vertices {
		kept[v] = true
	}
	var edges [][2]string
	for _, tail := range g.order {
		if !kept[tail] {
			continue
		}
		for _, head := range g.out[tail] {
			if kept[head] {
				edges = append(edges, [2]string{tail, head})
			}
		}
	}
	return newAdjGraph(vertices, edges)
}

// cycleGraph is the running example used across the tests:
//
//	A → B → C → D
//	^       │
//	└───────┘
func cycleGraph() digraph.Interface[string, string] {
	return newAdjGraph(
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}},
	)
}

func sortedNames(g digraph.Interface[string, string]) []string {
	vs := g.Vertices()
	sort.Strings(vs)
	return vs
}

func TestDescendants(t *testing.T) {
	g := cycleGraph()

	tests := []struct {
		start string
		want  []string
	}{
		{"A", []string{"A", "B", "C", "D"}},
		{"B", []string{"A", "B", "C", "D"}},
		{"C", []string{"A", "B", "C", "D"}},
		{"D", []string{"D"}},
	}
	for _, tt := range tests {
		sub, err := digraph.Descendants(g, tt.start)
		if err != nil {
			t.Fatalf("Descendants(%q) error: %v", tt.start, err)
		}
		if got := sortedNames(sub); !slices.Equal(got, tt.want) {
			t.Errorf("Descendants(%q) = %v, want %v", tt.start, got, tt.want)
		}
	}
}

func TestAncestors(t *testing.T) {
	g := cycleGraph()

	tests := []struct {
		start string
		want  []string
	}{
		{"A", []string{"A", "B", "C"}},
		{"B", []string{"A", "B", "C"}},
		{"D", []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		sub, err := digraph.Ancestors(g, tt.start)
		if err != nil {
			t.Fatalf("Ancestors(%q) error: %v", tt.start, err)
		}
		if got := sortedNames(sub); !slices.Equal(got, tt.want) {
			t.Errorf("Ancestors(%q) = %v, want %v", tt.start, got, tt.want)
		}
	}
}

func TestDescendantsDiscoveryOrder(t *testing.T) {
	// Children are pushed in edge order onto a LIFO frontier, so the
	// later sibling is discovered first.
	g := newAdjGraph(
		[]string{"A", "B", "C"},
		[][2]string{{"A", "B"}, {"A", "C"}},
	)

	sub, err := digraph.Descendants(g, "A")
	if err != nil {
		t.Fatalf("Descendants(A) error: %v", err)
	}
	want := []string{"A", "C", "B"}
	if got := sub.Vertices(); !slices.Equal(got, want) {
		t.Errorf("Descendants(A).Vertices() = %v, want %v", got, want)
	}
}

func TestDescendantsMissingStart(t *testing.T) {
	g := cycleGraph()

	sub, err := digraph.Descendants(g, "Z")
	if !errors.Is(err, digraph.ErrVertexNotFound) {
		t.Errorf("Descendants(Z) error = %v, want ErrVertexNotFound", err)
	}
	if sub != nil {
		t.Errorf("Descendants(Z) graph = %v, want nil", sub)
	}
}

func TestAncestorsMissingStart(t *testing.T) {
	g := cycleGraph()

	if _, err := digraph.Ancestors(g, "Z"); !errors.Is(err, digraph.ErrVertexNotFound) {
		t.Errorf("Ancestors(Z) error = %v, want ErrVertexNotFound", err)
	}
}

func TestAncestorsMatchesDescendantsOnReversedGraph(t *testing.T) {
	vertices := []string{"a", "b", "c", "d", "e"}
	edges := [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}, {"b", "d"}, {"e", "b"}}

	reversed := make([][2]string, len(edges))
	for i, e := range edges {
		reversed[i] = [2]string{e[1], e[0]}
	}
	g := newAdjGraph(vertices, edges)
	r := newAdjGraph(vertices, reversed)

	for _, start := range vertices {
		anc, err := digraph.Ancestors(g, start)
		if err != nil {
			t.Fatalf("Ancestors(%q) error: %v", start, err)
		}
		desc, err := digraph.Descendants(r, start)
		if err != nil {
			t.Fatalf("Descendants(%q) on reversed error: %v", start, err)
		}
		if got, want := sortedNames(anc), sortedNames(desc); !slices.Equal(got, want) {
			t.Errorf("Ancestors(%q) = %v, want reversed Descendants %v", start, got, want)
		}
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	g := cycleGraph()

	comps := digraph.StronglyConnectedComponents(g)
	if len(comps) != 2 {
		t.Fatalf("StronglyConnectedComponents() returned %d components, want 2", len(comps))
	}

	// Components close innermost first: {D} before the {A,B,C} cycle.
	if got, want := sortedNames(comps[0]), []string{"D"}; !slices.Equal(got, want) {
		t.Errorf("components[0] = %v, want %v", got, want)
	}
	if got, want := sortedNames(comps[1]), []string{"A", "B", "C"}; !slices.Equal(got, want) {
		t.Errorf("components[1] = %v, want %v", got, want)
	}
}

func TestStronglyConnectedComponentsPartition(t *testing.T) {
	//	a ⇄ b → c → d → e → f
	//	        ^───────┘
	g := newAdjGraph(
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{
			{"a", "b"}, {"b", "a"},
			{"b", "c"},
			{"c", "d"}, {"d", "e"}, {"e", "c"},
			{"e", "f"},
		},
	)

	comps := digraph.StronglyConnectedComponents(g)

	seen := make(map[string]int)
	for _, comp := range comps {
		for _, v := range comp.Vertices() {
			seen[v]++
		}
	}
	for _, v := range []string{"a", "b", "c", "d", "e", "f"} {
		if seen[v] != 1 {
			t.Errorf("vertex %q appears in %d components, want exactly 1", v, seen[v])
		}
	}

	// Every member of a multi-vertex component reaches every other member
	// without leaving the component.
	for _, comp := range comps {
		members := sortedNames(comp)
		for _, v := range comp.Vertices() {
			sub, err := digraph.Descendants(comp, v)
			if err != nil {
				t.Fatalf("Descendants(%q) within component error: %v", v, err)
			}
			if got := sortedNames(sub); !slices.Equal(got, members) {
				t.Errorf("Descendants(%q) within component = %v, want %v", v, got, members)
			}
		}
	}
}

func TestStronglyConnectedComponentsSelfLoop(t *testing.T) {
	g := newAdjGraph(
		[]string{"X", "Y"},
		[][2]string{{"X", "X"}},
	)

	comps := digraph.StronglyConnectedComponents(g)
	if len(comps) != 2 {
		t.Fatalf("StronglyConnectedComponents() returned %d components, want 2", len(comps))
	}
	for _, comp := range comps {
		vs := comp.Vertices()
		if len(vs) != 1 {
			t.Fatalf("component %v has %d vertices, want 1", vs, len(vs))
		}
		switch vs[0] {
		case "X":
			// The loop edge stays inside X's component.
			if got := comp.Children("X"); !slices.Equal(got, []string{"X"}) {
				t.Errorf("component Children(X) = %v, want [X]", got)
			}
		case "Y":
			if got := comp.Children("Y"); len(got) != 0 {
				t.Errorf("component Children(Y) = %v, want none", got)
			}
		}
	}
}

func TestStronglyConnectedComponentsEmpty(t *testing.T) {
	g := newAdjGraph(nil, nil)
	if comps := digraph.StronglyConnectedComponents(g); len(comps) != 0 {
		t.Errorf("StronglyConnectedComponents() on empty graph = %d components, want 0", len(comps))
	}
}

func TestDeepGraphsStayIterative(t *testing.T) {
	// A long chain and a long cycle would overflow the stack if any of
	// the algorithms recursed per vertex.
	const n = 50000

	vertices := make([]string, n)
	for i := range vertices {
		vertices[i] = fmt.Sprintf("v%06d", i)
	}
	chain := make([][2]string, n-1)
	for i := range chain {
		chain[i] = [2]string{vertices[i], vertices[i+1]}
	}

	g := newAdjGraph(vertices, chain)

	sub, err := digraph.Descendants(g, vertices[0])
	if err != nil {
		t.Fatalf("Descendants on chain error: %v", err)
	}
	if got := len(sub.Vertices()); got != n {
		t.Errorf("Descendants on chain covers %d vertices, want %d", got, n)
	}

	anc, err := digraph.Ancestors(g, vertices[n-1])
	if err != nil {
		t.Fatalf("Ancestors on chain error: %v", err)
	}
	if got := len(anc.Vertices()); got != n {
		t.Errorf("Ancestors on chain covers %d vertices, want %d", got, n)
	}

	if got := len(digraph.StronglyConnectedComponents(g)); got != n {
		t.Errorf("chain has %d components, want %d", got, n)
	}

	// Close the chain into one big cycle.
	cycle := append(slices.Clone(chain), [2]string{vertices[n-1], vertices[0]})
	comps := digraph.StronglyConnectedComponents(newAdjGraph(vertices, cycle))
	if len(comps) != 1 {
		t.Fatalf("cycle has %d components, want 1", len(comps))
	}
	if got := len(comps[0].Vertices()); got != n {
		t.Errorf("cycle component has %d vertices, want %d", got, n)
	}
}
