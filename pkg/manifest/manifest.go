// Package manifest loads graph declarations from TOML files.
//
// A manifest declares vertices and the references between them:
//
//	[graph]
//	name = "services"
//
//	[[node]]
//	id = "api"
//	label = "API gateway"
//	refs = ["auth", "orders"]
//
//	[[node]]
//	id = "auth"
//
//	[[node]]
//	id = "orders"
//
//	  [[node.link]]
//	  to = "auth"
//	  label = "verifies tokens"
//
// Plain refs become unlabelled edges. Link tables become edges with a
// label, which renderers show on the edge. [Manifest.Build] turns a
// parsed manifest into a graph with the declared nodes as its exact
// vertex set.
package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/objgraph"
)

// Ref is a labelled reference from one node to another.
type Ref struct {
	To    string `toml:"to"`
	Label string `toml:"label"`
}

// Node is one declared vertex.
type Node struct {
	ID    string   `toml:"id"`
	Label string   `toml:"label"`
	Refs  []string `toml:"refs"`
	Links []Ref    `toml:"link"`
}

// Manifest is a parsed graph declaration.
type Manifest struct {
	Graph struct {
		Name string `toml:"name"`
	} `toml:"graph"`
	Nodes []Node `toml:"node"`
}

// Name returns the declared graph name, which may be empty.
func (m *Manifest) Name() string {
	return m.Graph.Name
}

// Parse decodes and validates a manifest document.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "parse manifest")
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// validate rejects manifests the engine could only half-build. The
// engine itself tolerates unresolvable references by dropping them, but
// in a hand-written manifest they are almost certainly typos.
func (m *Manifest) validate() error {
	if len(m.Nodes) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidManifest, "manifest declares no nodes")
	}

	declared := make(map[string]bool, len(m.Nodes))
	for i := range m.Nodes {
		n := &m.Nodes[i]
		if n.ID == "" {
			return apperrors.New(apperrors.ErrCodeInvalidManifest, "node %d has no id", i)
		}
		if declared[n.ID] {
			return apperrors.New(apperrors.ErrCodeInvalidManifest, "duplicate node id %q", n.ID)
		}
		declared[n.ID] = true
	}

	for i := range m.Nodes {
		n := &m.Nodes[i]
		for _, ref := range n.Refs {
			if !declared[ref] {
				return apperrors.New(apperrors.ErrCodeInvalidManifest,
					"node %q references undeclared node %q", n.ID, ref)
			}
		}
		for _, l := range n.Links {
			if l.To == "" {
				return apperrors.New(apperrors.ErrCodeInvalidManifest,
					"node %q has a link with no target", n.ID)
			}
			if !declared[l.To] {
				return apperrors.New(apperrors.ErrCodeInvalidManifest,
					"node %q links to undeclared node %q", n.ID, l.To)
			}
		}
	}
	return nil
}

// Build constructs the graph over exactly the declared nodes. Edges
// follow declaration order, refs before links per node, so edge ids are
// stable across rebuilds of the same manifest. Node labels become
// vertex annotations, falling back to the node id so every vertex stays
// addressable by name after snapshotting. Link labels become edge
// annotations.
func (m *Manifest) Build() *objgraph.Graph[*Node, string] {
	index := make(map[string]*Node, len(m.Nodes))
	nodes := make([]*Node, len(m.Nodes))
	for i := range m.Nodes {
		n := &m.Nodes[i]
		nodes[i] = n
		index[n.ID] = n
	}

	// Edge labels are looked up by endpoint pair. Parallel labelled
	// edges between the same pair share the first declared label.
	edgeLabels := make(map[[2]string]string)
	for _, n := range nodes {
		for _, l := range n.Links {
			if l.Label == "" {
				continue
			}
			pair := [2]string{n.ID, l.To}
			if _, ok := edgeLabels[pair]; !ok {
				edgeLabels[pair] = l.Label
			}
		}
	}

	key := func(n *Node) string { return n.ID }
	expand := func(n *Node) []*Node {
		children := make([]*Node, 0, len(n.Refs)+len(n.Links))
		for _, ref := range n.Refs {
			children = append(children, index[ref])
		}
		for _, l := range n.Links {
			children = append(children, index[l.To])
		}
		return children
	}

	return objgraph.FromVertices(key, nodes, expand,
		objgraph.WithVertexAnnotator[*Node, string](func(n *Node) string {
			if n.Label != "" {
				return n.Label
			}
			return n.ID
		}),
		objgraph.WithEdgeAnnotator[*Node, string](func(tail, head *Node) string {
			return edgeLabels[[2]string{tail.ID, head.ID}]
		}),
	)
}
