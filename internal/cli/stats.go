package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/pipeline"
)

// statsCommand creates the stats command for graph summary counts.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "stats [graph file]",
		Short: "Print summary statistics for a graph",
		Long: `Print summary statistics for a graph.

Counts vertices, edges, strongly connected components, roots (vertices
with no parents), leaves (vertices with no children), and self-loops.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], asJSON, noCache, refresh)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print statistics as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	return cmd
}

// runStats loads the graph and prints its summary counts.
func (c *CLI) runStats(ctx context.Context, input string, asJSON, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(input)
	opts.Refresh = refresh
	opts.Op = pipeline.OpStats
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing statistics...")
	spinner.Start()

	snap, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}

	analysis, cacheHit, err := runner.AnalyzeWithCacheInfo(ctx, snap.Materialize(), snapshotHash(snap), opts)
	if err != nil {
		spinner.StopWithError("Stats failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	stats := analysis.Stats
	if asJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(StyleTitle.Render(snap.Name))
	printKeyValue("Vertices", strconv.Itoa(stats.Vertices))
	printKeyValue("Edges", strconv.Itoa(stats.Edges))
	printKeyValue("Components", strconv.Itoa(stats.Components))
	printKeyValue("Largest component", strconv.Itoa(stats.LargestComponent))
	printKeyValue("Roots", strconv.Itoa(stats.Roots))
	printKeyValue("Leaves", strconv.Itoa(stats.Leaves))
	printKeyValue("Self-loops", strconv.Itoa(stats.SelfLoops))
	printStats(stats.Vertices, stats.Edges, cacheHit)

	return nil
}
