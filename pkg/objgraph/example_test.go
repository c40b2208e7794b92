package objgraph_test

import (
	"fmt"
	"sort"

	"github.com/matzehuels/refgraph/pkg/objgraph"
)

type service struct {
	Name  string
	Calls []string
}

// Build the call graph of a small system from its root service, then
// report which services are stuck in call cycles.
func ExampleFromRoots() {
	system := map[string]*service{
		"gateway":  {Name: "gateway", Calls: []string{"orders", "users"}},
		"orders":   {Name: "orders", Calls: []string{"billing"}},
		"billing":  {Name: "billing", Calls: []string{"orders", "audit"}},
		"users":    {Name: "users", Calls: nil},
		"audit":    {Name: "audit", Calls: nil},
		"orphaned": {Name: "orphaned", Calls: nil}, // never referenced
	}

	key := func(s *service) string { return s.Name }
	expand := func(s *service) []*service {
		out := make([]*service, 0, len(s.Calls))
		for _, name := range s.Calls {
			out = append(out, system[name])
		}
		return out
	}

	g := objgraph.FromRoots(key, []*service{system["gateway"]}, expand)
	fmt.Println("services:", g.Len())

	for _, comp := range g.Components() {
		if comp.Len() < 2 {
			continue
		}
		var members []string
		for _, s := range comp.Vertices() {
			members = append(members, s.Name)
		}
		sort.Strings(members)
		fmt.Println("cycle:", members)
	}
	// Output:
	// services: 5
	// cycle: [billing orders]
}

// Restrict a graph to a vertex subset while keeping edge identities.
func ExampleGraph_Subgraph() {
	a := &service{Name: "a", Calls: []string{"b", "c"}}
	b := &service{Name: "b"}
	c := &service{Name: "c"}
	byName := map[string]*service{"a": a, "b": b, "c": c}

	key := func(s *service) string { return s.Name }
	expand := func(s *service) []*service {
		var out []*service
		for _, name := range s.Calls {
			out = append(out, byName[name])
		}
		return out
	}

	g := objgraph.FromRoots(key, []*service{a}, expand)
	sub := g.Subgraph([]*service{a, c})

	for _, v := range sub.Vertices() {
		fmt.Println(v.Name, "->", len(sub.Children(v)), "children")
	}
	// Output:
	// a -> 1 children
	// c -> 0 children
}
