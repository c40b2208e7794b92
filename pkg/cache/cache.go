// Package cache provides content-addressed caching for graph builds,
// analysis results, and rendered artifacts.
//
// A [Cache] is a byte store with optional TTL. Three implementations are
// provided: [FileCache] persists entries under a local directory,
// [RedisCache] talks to a Redis server, and [NullCache] disables caching
// without changing call sites.
//
// A [Keyer] derives cache keys for the three cacheable stages. Keys are
// SHA-256 digests of the inputs that determine the output, so a graph
// rebuilt from unchanged sources hits the cache and any source change
// misses it. Wrap a Keyer with [NewScopedKeyer] to namespace keys, for
// example per stored graph.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values under string keys.
//
// Implementations must be safe for concurrent use. A miss is reported
// via the bool return, not an error; errors are reserved for backend
// failures.
type Cache interface {
	// Get returns the cached value for key. The bool reports whether
	// the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A non-positive ttl means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any backend resources.
	Close() error
}

// ============================================================================
// Null cache
// ============================================================================

// NullCache is a Cache that stores nothing. Every Get is a miss and
// every write succeeds silently. It is the default when caching is
// disabled.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache returns a cache that never stores anything.
func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get always reports a miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// ============================================================================
// TTLs
// ============================================================================

// Cache TTLs per key kind. Keys are content-addressed, so entries never
// go stale; the TTLs bound how long unused entries take up space.
const (
	TTLGraph    = 7 * 24 * time.Hour
	TTLAnalysis = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// ============================================================================
// Key derivation
// ============================================================================

// GraphKeyOpts distinguishes graph builds from the same source path.
type GraphKeyOpts struct {
	// Fingerprint is a content hash of the source document, typically
	// Hash over the raw manifest or snapshot bytes.
	Fingerprint string `json:"fingerprint"`
}

// AnalysisKeyOpts distinguishes analysis results on the same graph.
type AnalysisKeyOpts struct {
	// Op names the analysis: "descendants", "ancestors", "components"
	// or "stats".
	Op string `json:"op"`

	// Vertex is the start vertex for reachability ops, empty for
	// whole-graph ops.
	Vertex string `json:"vertex,omitempty"`
}

// ArtifactKeyOpts distinguishes rendered artifacts of the same graph.
type ArtifactKeyOpts struct {
	// Format is the output format: "dot", "svg", "png" or "json".
	Format string `json:"format"`

	// Labelled reports whether vertex and edge annotations are
	// included in the artifact.
	Labelled bool `json:"labelled"`
}

// Keyer derives cache keys for the cacheable pipeline stages.
type Keyer interface {
	// GraphKey keys a built graph by its source and content
	// fingerprint.
	GraphKey(source string, opts GraphKeyOpts) string

	// AnalysisKey keys an analysis result by the hash of the graph it
	// ran on.
	AnalysisKey(graphHash string, opts AnalysisKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of the graph it
	// was rendered from.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer derives keys by hashing the inputs with SHA-256.
type DefaultKeyer struct{}

var _ Keyer = (*DefaultKeyer)(nil)

// NewDefaultKeyer returns the standard key derivation.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// GraphKey implements Keyer.
func (k *DefaultKeyer) GraphKey(source string, opts GraphKeyOpts) string {
	return hashKey("graph", source, opts)
}

// AnalysisKey implements Keyer.
func (k *DefaultKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return hashKey("analysis", graphHash, opts)
}

// ArtifactKey implements Keyer.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
