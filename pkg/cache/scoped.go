package cache

// ScopedKeyer wraps a Keyer with a prefix so independent graphs get
// separate cache namespaces. The server scopes keys per stored graph,
// which keeps analysis results for one upload from ever colliding with
// another even if the graph bytes match.
//
// Example usage:
//
//	// Keys scoped to one stored graph
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "graph:"+id+":")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

var _ Keyer = (*ScopedKeyer)(nil)

// NewScopedKeyer creates a keyer that prepends prefix to every key.
// A nil inner keyer defaults to NewDefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey generates a prefixed key for a built graph.
func (k *ScopedKeyer) GraphKey(source string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(source, opts)
}

// AnalysisKey generates a prefixed key for an analysis result.
func (k *ScopedKeyer) AnalysisKey(graphHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(graphHash, opts)
}
