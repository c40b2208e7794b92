// Package snapshot defines the portable, serializable form of a graph.
//
// # Overview
//
// A [Graph] is plain data: vertices and edges with numeric ids and
// optional human-readable labels. It carries no callbacks, no generics
// and no behavior beyond validation, which makes it the exchange format
// between the engine, files, the snapshot store and the HTTP API. Types
// carry both json and bson tags so the same structs serve file exports
// and document storage.
//
// [FromGraph] captures a built [objgraph.Graph] together with its
// annotations; [Graph.Materialize] goes the other way, rebuilding a
// queryable graph from snapshot data. Edge ids are renumbered during
// materialization, but topology and labels survive the round trip.
//
// Use [Marshal], [Write] and [WriteFile] to produce JSON, and
// [Unmarshal], [Read] and [ReadFile] to load it back. Loading validates
// structure and fails on duplicate ids or edges that reference missing
// vertices.
//
// [objgraph.Graph]: github.com/matzehuels/refgraph/pkg/objgraph.Graph
package snapshot
