// Package cli implements the refgraph command-line interface.
//
// The CLI loads graphs from TOML manifests or snapshot JSON files, runs
// reachability, component, and stats analyses, renders DOT/SVG/PNG
// artifacts, and manages the snapshot store and the local cache. All
// commands support --verbose (-v) for debug-level logging.
//
// Configuration comes from flags plus a few environment variables:
//
//	REFGRAPH_CACHE_DIR  cache directory (default: user cache dir)
//	REFGRAPH_DATA_DIR   snapshot store directory (default: user config dir)
//	REFGRAPH_REDIS_URL  use Redis instead of the file cache
//	REFGRAPH_MONGO_URI  use MongoDB instead of the file store
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/buildinfo"
	"github.com/matzehuels/refgraph/pkg/cache"
	"github.com/matzehuels/refgraph/pkg/pipeline"
	"github.com/matzehuels/refgraph/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "refgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Refgraph analyzes and renders directed reference graphs",
		Long:         `Refgraph is a CLI tool for working with directed reference graphs: computing reachability closures and strongly connected components, rendering Graphviz output, and keeping named snapshots in a local or remote store.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Helpers without a *CLI receiver read the logger from ctx.
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.reachCommand())
	root.AddCommand(c.componentsCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache picks the cache backend: Redis when REFGRAPH_REDIS_URL is
// set, otherwise a file cache under cacheDir. Cache setup failures fall
// back to no caching rather than failing the command.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv("REFGRAPH_REDIS_URL"); url != "" {
		return cache.NewRedisCache(url)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newStore picks the snapshot store backend: MongoDB when
// REFGRAPH_MONGO_URI is set, otherwise JSON files under dataDir.
func newStore(ctx context.Context) (store.Store, error) {
	if uri := os.Getenv("REFGRAPH_MONGO_URI"); uri != "" {
		return store.NewMongoStore(ctx, uri, appName)
	}
	return store.NewFileStore(dataDir())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory, honoring REFGRAPH_CACHE_DIR.
func cacheDir() (string, error) {
	if dir := os.Getenv("REFGRAPH_CACHE_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}

// dataDir returns the snapshot store directory, honoring
// REFGRAPH_DATA_DIR. Empty means the store's own default.
func dataDir() string {
	return os.Getenv("REFGRAPH_DATA_DIR")
}

// =============================================================================
// Options Helpers
// =============================================================================

// sourceOptions builds load options for an input path. Files ending in
// .toml are treated as manifests, everything else as snapshot JSON.
func sourceOptions(input string) pipeline.Options {
	if strings.EqualFold(filepath.Ext(input), ".toml") {
		return pipeline.Options{Manifest: input}
	}
	return pipeline.Options{Snapshot: input}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}
