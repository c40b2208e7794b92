package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/refgraph/pkg/pipeline"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		labelled   bool
		op         string
		vertex     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph file]",
		Short: "Render a graph to DOT, SVG, PNG, or JSON",
		Long: `Render a graph to DOT, SVG, PNG, or JSON.

The render command loads a graph from a TOML manifest or snapshot JSON
file and writes one artifact per requested format. With --op and
--vertex the analyzed subgraph is rendered instead of the full graph,
for example the descendants of a single vertex.

With --labelled, vertex annotations replace the numeric ids as node
labels and edge annotations appear on the edges that carry one.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			if op != "" {
				if err := pipeline.ValidateOp(op); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), args[0], renderParams{
				formats:  formats,
				output:   output,
				labelled: labelled,
				op:       op,
				vertex:   vertex,
				noCache:  noCache,
				refresh:  refresh,
			})
		},
	}

	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dot (default), svg, png, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&labelled, "labelled", false, "use vertex annotations as node labels")
	cmd.Flags().StringVar(&op, "op", "", "analysis to apply first: descendants, ancestors")
	cmd.Flags().StringVarP(&vertex, "vertex", "V", "", "start vertex for --op (label or id)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the graph even if cached")

	return cmd
}

// renderParams bundles the render command's flag values.
type renderParams struct {
	formats  []string
	output   string
	labelled bool
	op       string
	vertex   string
	noCache  bool
	refresh  bool
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, p renderParams) error {
	runner, err := c.newRunner(p.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := sourceOptions(input)
	opts.Refresh = p.refresh
	opts.Op = p.op
	opts.Vertex = p.vertex
	opts.Formats = p.formats
	opts.Labelled = p.labelled
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := basePath(p.output, input)
	printSuccess("Rendered %s", StyleHighlight.Render(result.Snapshot.Name))

	for _, format := range p.formats {
		path := p.output
		if path == "" || len(p.formats) > 1 {
			path = base + "." + format
		}
		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.CacheInfo.RenderHit)

	return nil
}

// basePath derives the base output path from the output and input
// paths. A known format extension on the output is stripped so
// multi-format runs produce sibling files.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}
