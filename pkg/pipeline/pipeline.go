// Package pipeline provides the core graph pipeline for refgraph.
//
// This package implements the complete load → analyze → render pipeline
// shared by the CLI and the HTTP server. Centralizing this logic keeps
// behavior identical across entry points and avoids duplicating the
// caching layer.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Build a graph from a manifest or read a stored snapshot
//  2. Analyze: Run a graph operation (descendants, ancestors, components, stats)
//  3. Render: Generate output in various formats (DOT, SVG, PNG, JSON)
//
// The analyze stage is optional; load and render run back to back when
// no operation is requested.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Manifest: "services.toml",
//	    Op:       pipeline.OpDescendants,
//	    Vertex:   "auth",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	snap, err := runner.Load(ctx, opts)
//
//	// Analyze an already materialized graph
//	analysis, err := runner.Analyze(ctx, g, graphHash, opts)
//
//	// Render artifacts for a snapshot
//	artifacts, err := runner.Render(ctx, snap, graphHash, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/refgraph/pkg/cache"
	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/objgraph"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// Graph is the materialized graph type the pipeline operates on.
type Graph = objgraph.Graph[*snapshot.Vertex, int64]

// =============================================================================
// Formats and Operations - Single Source of Truth for CLI and Server
// =============================================================================

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// DefaultFormat is the default output format.
const DefaultFormat = FormatDOT

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Op constants for analysis operations.
const (
	OpDescendants = "descendants"
	OpAncestors   = "ancestors"
	OpComponents  = "components"
	OpStats       = "stats"
)

// ValidOps is the set of supported analysis operations.
var ValidOps = map[string]bool{
	OpDescendants: true,
	OpAncestors:   true,
	OpComponents:  true,
	OpStats:       true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the graph pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Manifest string `json:"manifest,omitempty"` // Path to a TOML manifest
	Snapshot string `json:"snapshot,omitempty"` // Path to a JSON snapshot
	Name     string `json:"name,omitempty"`     // Overrides the graph name
	Refresh  bool   `json:"refresh,omitempty"`

	// Analyze options
	Op     string `json:"op,omitempty"`
	Vertex string `json:"vertex,omitempty"` // Vertex selector for reachability ops

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Labelled bool     `json:"labelled,omitempty"` // Render vertex labels instead of ids

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Snapshot is the loaded graph in serializable form.
	Snapshot snapshot.Graph

	// Graph is the materialized form of Snapshot.
	Graph *Graph

	// GraphHash is the content hash of the loaded graph.
	GraphHash string

	// Analysis holds the analysis output when an op was requested.
	Analysis *Analysis

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LoadTime    time.Duration
	AnalyzeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit    bool // Whether the loaded graph came from cache
	AnalyzeHit bool // Whether the analysis came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// Analysis is the output of a single analysis operation. The result
// field matching Op is set; the others are left empty.
type Analysis struct {
	Op     string `json:"op"`
	Vertex string `json:"vertex,omitempty"`

	// Subgraph holds the reachability subgraph for the descendants and
	// ancestors ops. Vertex and edge ids match the analyzed graph.
	Subgraph *snapshot.Graph `json:"subgraph,omitempty"`

	// Components holds one subgraph per strongly connected component.
	Components []snapshot.Graph `json:"components,omitempty"`

	// Stats holds summary counts for the stats op.
	Stats *GraphStats `json:"stats,omitempty"`
}

// GraphStats summarizes the shape of a graph.
type GraphStats struct {
	Vertices         int `json:"vertices"`
	Edges            int `json:"edges"`
	Components       int `json:"components"`
	LargestComponent int `json:"largest_component"`
	Roots            int `json:"roots"`
	Leaves           int `json:"leaves"`
	SelfLoops        int `json:"self_loops"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: dot, svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOp checks that an analysis operation is valid.
func ValidateOp(op string) error {
	if !ValidOps[op] {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"invalid op: %q (must be one of: descendants, ancestors, components, stats)", op)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if o.Op != "" {
		if err := o.ValidateForAnalyze(); err != nil {
			return err
		}
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading a graph.
func (o *Options) ValidateForLoad() error {
	if o.Manifest == "" && o.Snapshot == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "manifest or snapshot is required")
	}
	if o.Manifest != "" && o.Snapshot != "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "manifest and snapshot are mutually exclusive")
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// ValidateForAnalyze checks required fields for an analysis operation.
// Reachability ops require a vertex selector; the others reject one.
func (o *Options) ValidateForAnalyze() error {
	if err := ValidateOp(o.Op); err != nil {
		return err
	}
	if o.IsReachOp() {
		if err := apperrors.ValidateVertexQuery(o.Vertex); err != nil {
			return err
		}
	} else if o.Vertex != "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "op %q does not take a vertex", o.Op)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// IsReachOp returns true if the op computes a reachability subgraph.
func (o *Options) IsReachOp() bool {
	return o.Op == OpDescendants || o.Op == OpAncestors
}

// AnalysisKeyOpts returns cache key options for graph analysis.
func (o *Options) AnalysisKeyOpts() cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{
		Op:     o.Op,
		Vertex: o.Vertex,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Labelled: o.Labelled,
	}
}
