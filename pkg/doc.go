// Package pkg provides the core libraries for Refgraph reference-graph analysis.
//
// # Overview
//
// Refgraph captures directed reference graphs over arbitrary values, keyed
// by identity rather than equality, and analyzes and renders them. The pkg
// directory is organized into four main areas:
//
//  1. Graph engine ([keyed], [digraph], [objgraph]) - identity registry,
//     immutable graph core, and object-graph construction
//  2. Interchange ([snapshot], [manifest]) - portable graph serialization
//     and TOML graph declarations
//  3. Infrastructure ([cache], [store], [errors], [observability]) -
//     caching, persistence, coded errors, and logging hooks
//  4. Orchestration ([pipeline], [render]) - the load → analyze → render
//     flow shared by the CLI and the HTTP server
//
// # Architecture
//
// The typical data flow through Refgraph:
//
//	TOML manifest / snapshot JSON
//	         ↓
//	    [objgraph] (build graph, intern vertices by identity)
//	         ↓
//	    [digraph] (reachability, strongly connected components)
//	         ↓
//	    [render] (DOT text, Graphviz SVG/PNG)
//
// # Quick Start
//
// Load a manifest, build the graph, and render it:
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/refgraph/pkg/manifest"
//	    "github.com/matzehuels/refgraph/pkg/render"
//	    "github.com/matzehuels/refgraph/pkg/snapshot"
//	)
//
//	// 1. Load the declaration
//	m, _ := manifest.Load("services.toml")
//
//	// 2. Build the graph
//	g := m.Build()
//
//	// 3. Render DOT
//	dot := render.ToDOT(g, render.Options{Labelled: true})
//	os.WriteFile("services.dot", []byte(dot), 0o644)
//
//	// 4. Snapshot for storage or transport
//	snap := snapshot.FromGraph(g, m.Name())
//	snapshot.WriteFile("services.json", snap)
//
// # Main Packages
//
// ## Graph Engine
//
// [keyed] - Identity-keyed containers. Set and map types that key
// entries by a caller-supplied key function and keep the first value
// stored for a key as canonical.
//
// [digraph] - The graph contract and the analyses over it: a small
// Interface plus free functions for descendants, ancestors, and strongly
// connected components. Algorithms are iterative, so deep graphs do not
// exhaust the stack.
//
// [objgraph] - Immutable concrete graph over user objects. Built once
// from a set of roots or an explicit vertex set with an expansion
// function, then queried. Subgraph views preserve edge identity.
//
// ## Interchange
//
// [snapshot] - The portable graph form: named vertex and edge lists with
// stable ids, JSON (de)serialization, and Materialize to turn a snapshot
// back into a queryable graph.
//
// [manifest] - TOML graph declarations for hand-written graphs, with
// labelled nodes and labelled references.
//
// ## Infrastructure
//
// [cache] - Content-addressed result caching. FileCache for the CLI,
// RedisCache for servers, NullCache to disable caching. Keys are built
// from hashes of the inputs, so stale entries are never served.
//
// [store] - Named snapshot persistence behind one interface. FileStore
// keeps JSON files in a local directory; MongoStore keeps them in a
// MongoDB collection.
//
// [errors] - Coded errors shared by the CLI and the HTTP server. Codes
// map to exit behavior and HTTP status.
//
// [observability] - Logging hooks for pipeline stages and HTTP handling.
//
// ## Orchestration
//
// [pipeline] - The load → analyze → render flow used by the CLI and the
// server. Each stage is cached independently: graphs by source content,
// analyses and artifacts by graph hash plus parameters.
//
// [render] - DOT generation and Graphviz rasterization to SVG and PNG.
//
// # Common Workflows
//
// Run the full pipeline with caching:
//
//	cc, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(cc, nil, logger)
//	defer runner.Close()
//
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Manifest: "services.toml",
//	    Formats:  []string{"svg"},
//	})
//
// Analyze a stored snapshot:
//
//	st, _ := store.NewFileStore("")
//	entry, _ := st.Load(ctx, id)
//	analysis, _ := runner.Analyze(ctx, entry.Graph.Materialize(), hash, pipeline.Options{
//	    Op:     pipeline.OpDescendants,
//	    Vertex: "gateway",
//	})
//
// Capture a graph of live objects:
//
//	g := objgraph.FromRoots(key, roots, expand)
//	comps := digraph.StronglyConnectedComponents(g)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/digraph/...  # Specific package
//
// [keyed]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/keyed
// [digraph]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/digraph
// [objgraph]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/objgraph
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/snapshot
// [manifest]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/manifest
// [cache]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/refgraph/pkg/render
package pkg
