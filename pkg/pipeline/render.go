package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/render/dot"
	"github.com/matzehuels/gridspace/pkg/render/plan"
	"github.com/matzehuels/gridspace/pkg/scene"
)

// RenderFromLayout generates artifacts for l in every requested format.
// Graph formats need edges, so they are rejected for tree layouts.
func RenderFromLayout(ctx context.Context, l *scene.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = scene.WriteLayout(l, &buf)
			data = buf.Bytes()
		case FormatSVG:
			svgOpts := []plan.SVGOption{plan.WithLabels()}
			if l.Mode == scene.ModeTree {
				svgOpts = append(svgOpts, plan.WithAnchors())
			}
			data = plan.RenderSVG(l, svgOpts...)
		case FormatDOT, FormatGraphSVG:
			data, err = renderGraph(ctx, l, format, opts)
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderGraph(ctx context.Context, l *scene.Layout, format string, opts Options) ([]byte, error) {
	if l.Mode == scene.ModeTree {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs a stream layout", format)
	}
	g, _, err := l.Graph()
	if err != nil {
		return nil, err
	}
	src := dot.ToDOT(g, dot.Options{Detailed: opts.Detailed})
	if format == FormatDOT {
		return []byte(src), nil
	}
	return dot.RenderSVG(ctx, src)
}
