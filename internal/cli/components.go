package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/pipeline"
)

// componentsCommand creates the components command for SCC analysis.
func (c *CLI) componentsCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "components [graph file]",
		Short: "List the strongly connected components of a graph",
		Long: `List the strongly connected components of a graph.

Every vertex belongs to exactly one component; vertices in the same
component can all reach each other. Components of size one are
vertices that sit on no cycle.

With --output the full component list is written as JSON, one subgraph
per component with the original vertex and edge ids.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runComponents(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write components as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	return cmd
}

// runComponents loads the graph, partitions it, and prints a summary.
func (c *CLI) runComponents(ctx context.Context, input, output string, noCache, refresh bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(input)
	opts.Refresh = refresh
	opts.Op = pipeline.OpComponents
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Computing components...")
	spinner.Start()

	snap, err := runner.Load(ctx, opts)
	if err != nil {
		spinner.StopWithError("Load failed")
		return err
	}

	analysis, cacheHit, err := runner.AnalyzeWithCacheInfo(ctx, snap.Materialize(), snapshotHash(snap), opts)
	if err != nil {
		spinner.StopWithError("Component analysis failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	comps := analysis.Components
	cyclic := 0
	for _, comp := range comps {
		if len(comp.Vertices) > 1 || len(comp.Edges) > 0 {
			cyclic++
		}
	}

	printSuccess("%d components (%d cyclic)", len(comps), cyclic)
	printStats(len(snap.Vertices), len(snap.Edges), cacheHit)
	printNewline()

	// Largest first; show the vertices of every non-trivial component.
	order := make([]int, len(comps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(comps[order[a]].Vertices) > len(comps[order[b]].Vertices)
	})
	for _, i := range order {
		comp := comps[i]
		if len(comp.Vertices) == 1 && len(comp.Edges) == 0 {
			continue
		}
		labels := make([]string, len(comp.Vertices))
		for j, v := range comp.Vertices {
			labels[j] = vertexDisplay(v.ID, v.Label)
		}
		printDetail("%d vertices: %v", len(comp.Vertices), labels)
	}

	if output != "" {
		data, err := json.MarshalIndent(comps, "", "  ")
		if err != nil {
			return fmt.Errorf("encode components: %w", err)
		}
		out, err := openOutput(output)
		if err != nil {
			return err
		}
		defer out.Close()
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
		printFile(output)
	}

	return nil
}

// vertexDisplay formats a vertex for terminal output, preferring the
// label over the bare id.
func vertexDisplay(id int64, label string) string {
	if label != "" {
		return label
	}
	return fmt.Sprintf("#%d", id)
}
