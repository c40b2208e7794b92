package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/refgraph/pkg/observability"
	"github.com/matzehuels/refgraph/pkg/render"
	"github.com/matzehuels/refgraph/pkg/snapshot"
)

// renderArtifacts renders a snapshot into every requested format.
// The DOT source is generated once and shared by the dot, svg, and
// png formats.
func (r *Runner) renderArtifacts(ctx context.Context, snap snapshot.Graph, opts Options) (map[string][]byte, error) {
	var dot string
	if needsDOT(opts.Formats) {
		dot = render.ToDOT(snap.Materialize(), render.Options{Labelled: opts.Labelled})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}

		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		var data []byte
		var err error

		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = render.RenderPNG(ctx, dot)
		case FormatJSON:
			data, err = snapshot.Marshal(snap)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}

		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// needsDOT reports whether any requested format is produced from DOT.
func needsDOT(formats []string) bool {
	for _, f := range formats {
		switch f {
		case FormatDOT, FormatSVG, FormatPNG:
			return true
		}
	}
	return false
}
