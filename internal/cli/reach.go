package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/cache"
	"github.com/matzehuels/refgraph/pkg/pipeline"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// reachCommand creates the reach command for computing reachability closures.
func (c *CLI) reachCommand() *cobra.Command {
	var (
		vertex    string
		ancestors bool
		output    string
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "reach [graph file]",
		Short: "Compute the reachability closure of a vertex",
		Long: `Compute the reachability closure of a vertex.

The reach command loads a graph from a TOML manifest or snapshot JSON
file and computes every vertex reachable from the given start vertex
(its descendants), or everything that reaches it with --ancestors.

The start vertex is matched by label first, then by numeric id. The
resulting subgraph keeps the original vertex and edge ids, so it stays
addressable against the full graph.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op := pipeline.OpDescendants
			if ancestors {
				op = pipeline.OpAncestors
			}
			return c.runReach(cmd.Context(), args[0], op, vertex, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&vertex, "vertex", "V", "", "start vertex (label or id)")
	cmd.Flags().BoolVar(&ancestors, "ancestors", false, "walk edges backwards (who reaches the vertex)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output snapshot file (default: <input>.<op>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")
	_ = cmd.MarkFlagRequired("vertex")

	return cmd
}

// runReach loads the graph, computes the closure, and writes the
// subgraph snapshot.
func (c *CLI) runReach(ctx context.Context, input, op, vertex, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(input)
	opts.Refresh = refresh
	opts.Op = op
	opts.Vertex = vertex
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s of %s...", op, vertex))
	spinner.Start()

	snap, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}

	analysis, cacheHit, err := runner.AnalyzeWithCacheInfo(ctx, snap.Materialize(), snapshotHash(snap), opts)
	if err != nil {
		spinner.StopWithError("Reachability failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	sub := *analysis.Subgraph
	sub.Name = fmt.Sprintf("%s %s of %s", snap.Name, op, vertex)

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = fmt.Sprintf("%s.%s.json", base, op)
	}
	if err := snapshot.WriteFile(outputPath, sub); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Closure of %s: %d of %d vertices", StyleHighlight.Render(vertex), len(sub.Vertices), len(snap.Vertices))
	printFile(outputPath)
	printStats(len(sub.Vertices), len(sub.Edges), cacheHit)
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)

	return nil
}

// snapshotHash fingerprints a snapshot for cache keying.
func snapshotHash(snap snapshot.Graph) string {
	data, err := snapshot.Marshal(snap)
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}
