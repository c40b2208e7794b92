package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/refgraph/pkg/objgraph"
)

// Options configures DOT serialization.
type Options struct {
	// Labelled replaces vertex keys with their annotations where one is
	// set, and prints edge annotations on the edges that have one.
	Labelled bool
}

// ToDOT converts a graph to Graphviz DOT format. Vertices appear in
// discovery order and edges in id order, so the output is stable for a
// given graph. The resulting DOT string can be rendered with
// [RenderSVG] or [RenderPNG].
func ToDOT[V any, K comparable](g *objgraph.Graph[V, K], opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		id := fmt.Sprint(g.Key(v))
		label := id
		if opts.Labelled {
			if ann := g.VertexAnnotation(v); ann != "" {
				label = ann
			}
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", id, label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		tail, _ := g.Tail(e)
		head, _ := g.Head(e)
		tid, hid := fmt.Sprint(g.Key(tail)), fmt.Sprint(g.Key(head))
		if opts.Labelled {
			if ann := g.EdgeAnnotation(e); ann != "" {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", tid, hid, ann)
				continue
			}
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", tid, hid)
	}

	buf.WriteString("}\n")
	return buf.String()
}
