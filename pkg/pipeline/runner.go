package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/refgraph/pkg/cache"
	apperrors "github.com/matzehuels/refgraph/pkg/errors"
	"github.com/matzehuels/refgraph/pkg/manifest"
	"github.com/matzehuels/refgraph/pkg/observability"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → analyze → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	snap, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Snapshot = snap
	result.Graph = snap.Materialize()
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = result.Graph.Len()
	result.Stats.EdgeCount = result.Graph.EdgeCount()
	result.CacheInfo.LoadHit = loadHit

	// Compute graph hash for cache keys and API responses
	if data, err := snapshot.Marshal(snap); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("loaded graph",
		"name", snap.Name,
		"vertices", result.Stats.VertexCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)

	// Rendering works on the analysis subgraph when one is produced.
	workSnap, workHash := snap, result.GraphHash

	// Stage 2: Analyze (optional)
	if opts.Op != "" {
		analyzeStart := time.Now()
		analysis, analyzeHit, err := r.AnalyzeWithCacheInfo(ctx, result.Graph, result.GraphHash, opts)
		if err != nil {
			return nil, fmt.Errorf("analyze: %w", err)
		}
		result.Analysis = analysis
		result.Stats.AnalyzeTime = time.Since(analyzeStart)
		result.CacheInfo.AnalyzeHit = analyzeHit

		r.Logger.Info("analyzed graph",
			"op", opts.Op,
			"duration", result.Stats.AnalyzeTime)

		if analysis.Subgraph != nil {
			workSnap = *analysis.Subgraph
			workSnap.Name = snap.Name
			if data, err := snapshot.Marshal(workSnap); err == nil {
				workHash = cache.Hash(data)
			}
		}
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, workSnap, workHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo loads a graph with caching and returns cache hit info.
// The snapshot name is resolved after loading: an explicit opts.Name wins,
// then the name stored in the source, then the source filename.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (snapshot.Graph, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return snapshot.Graph{}, false, err
	}
	r.applyLogger(&opts)

	source := opts.Manifest
	if source == "" {
		source = opts.Snapshot
	}

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)
	snap, hit, err := r.load(ctx, source, opts)
	observability.Pipeline().OnLoadComplete(ctx, source, len(snap.Vertices), time.Since(start), err)
	if err != nil {
		return snapshot.Graph{}, false, err
	}

	if opts.Name != "" {
		snap.Name = opts.Name
	} else if snap.Name == "" {
		base := filepath.Base(source)
		snap.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return snap, hit, nil
}

// load reads the source file and builds or decodes the snapshot, keyed in
// the cache by source path and content fingerprint.
func (r *Runner) load(ctx context.Context, source string, opts Options) (snapshot.Graph, bool, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		if os.IsNotExist(err) {
			return snapshot.Graph{}, false, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read %s", source)
		}
		return snapshot.Graph{}, false, fmt.Errorf("read %s: %w", source, err)
	}

	// The fingerprint keys the cache by content, so edits behind the same
	// path never serve a stale graph.
	cacheKey := r.Keyer.GraphKey(source, cache.GraphKeyOpts{
		Fingerprint: cache.Hash(data),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if snap, err := snapshot.Unmarshal(cached); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return snap, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	var snap snapshot.Graph
	if opts.Manifest != "" {
		m, err := manifest.Parse(data)
		if err != nil {
			return snapshot.Graph{}, false, fmt.Errorf("manifest %s: %w", source, err)
		}
		snap = snapshot.FromGraph(m.Build(), m.Name())
	} else {
		snap, err = snapshot.Unmarshal(data)
		if err != nil {
			return snapshot.Graph{}, false, apperrors.Wrap(apperrors.ErrCodeInvalidSnapshot, err, "snapshot %s", source)
		}
	}

	// Cache the result
	if enc, err := snapshot.Marshal(snap); err == nil {
		if r.Cache.Set(ctx, cacheKey, enc, cache.TTLGraph) == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(enc))
		}
	}

	return snap, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) (snapshot.Graph, error) {
	snap, _, err := r.LoadWithCacheInfo(ctx, opts)
	return snap, err
}

// AnalyzeWithCacheInfo runs an analysis operation with caching and returns
// cache hit info. The graph hash keys the cache entry, so callers must pass
// the hash of the graph they hand in.
func (r *Runner) AnalyzeWithCacheInfo(ctx context.Context, g *Graph, graphHash string, opts Options) (*Analysis, bool, error) {
	if err := opts.ValidateForAnalyze(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnAnalyzeStart(ctx, opts.Op, g.Len())
	analysis, hit, err := r.analyze(ctx, g, graphHash, opts)
	observability.Pipeline().OnAnalyzeComplete(ctx, opts.Op, time.Since(start), err)
	return analysis, hit, err
}

// analyze checks the cache and falls back to computing the analysis.
// The cache is always consulted: analysis entries are keyed by content
// hash, so a refreshed load changes the key rather than staling the entry.
func (r *Runner) analyze(ctx context.Context, g *Graph, graphHash string, opts Options) (*Analysis, bool, error) {
	cacheKey := r.Keyer.AnalysisKey(graphHash, opts.AnalysisKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		var cached Analysis
		if json.Unmarshal(data, &cached) == nil {
			observability.Cache().OnCacheHit(ctx, "analysis")
			return &cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "analysis")

	analysis, err := computeAnalysis(g, opts)
	if err != nil {
		return nil, false, err
	}

	if enc, err := json.Marshal(analysis); err == nil {
		if r.Cache.Set(ctx, cacheKey, enc, cache.TTLAnalysis) == nil {
			observability.Cache().OnCacheSet(ctx, "analysis", len(enc))
		}
	}

	return analysis, false, nil
}

// Analyze is a convenience wrapper that calls AnalyzeWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Analyze(ctx context.Context, g *Graph, graphHash string, opts Options) (*Analysis, error) {
	analysis, _, err := r.AnalyzeWithCacheInfo(ctx, g, graphHash, opts)
	return analysis, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache hit
// info. Artifacts are keyed by the graph hash, so callers must pass the
// hash of the snapshot they hand in.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, snap snapshot.Graph, graphHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := r.renderArtifacts(ctx, snap, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, snap snapshot.Graph, graphHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, snap, graphHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
