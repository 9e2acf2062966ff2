package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/pkg/render/dot"
	"github.com/matzehuels/gridspace/pkg/scene"
)

// graphCommand creates the graph command, which draws a saved layout's
// adjacency graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output string
		svg    bool
		opts   dot.Options
	)

	cmd := &cobra.Command{
		Use:   "graph [layout.json]",
		Short: "Draw the adjacency graph of a layout",
		Long: `Draw the adjacency graph of a stream layout as Graphviz DOT, or as SVG
with --svg. Without --output the result is written to stdout.

By default each symmetric pair of relations is drawn once, as its right,
down or forward edge. --all-edges draws every stored relation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], output, svg, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&svg, "svg", false, "render SVG instead of DOT")
	cmd.Flags().BoolVar(&opts.AllEdges, "all-edges", false, "draw both directions of every relation")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show sizes and positions")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, out *printer, input, output string, svg bool, opts dot.Options) error {
	l, err := scene.ImportLayout(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	if l.Mode == scene.ModeTree {
		out.warn("Tree layouts have no adjacency edges")
	}
	g, _, err := l.Graph()
	if err != nil {
		return err
	}

	data := []byte(dot.ToDOT(g, opts))
	if svg {
		if data, err = dot.RenderSVG(ctx, string(data)); err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
	}
	c.Logger.Debug("drew graph", "blocks", g.Len(), "edges", len(g.Edges()), "svg", svg)

	if output == "" {
		_, err := out.w.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	out.success("Graph written")
	out.file(output)
	return nil
}
