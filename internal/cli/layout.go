package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/pkg/pipeline"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/store"
)

// layoutFlags holds the command-line flags of the layout command.
type layoutFlags struct {
	output     string // output file (one format) or base path (several)
	formats    string // comma-separated output formats
	configPath string // TOML spacing config
	save       bool   // keep the layout in the local store
	noCache    bool
	refresh    bool
	detailed   bool // sizes and positions in graph labels
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "layout [scene.json]",
		Short: "Place the blocks of a scene",
		Long: `Place the blocks of a scene and write the resulting layout.

A scene either lists additions and missing blocks, which are placed into rows
and depth planes one after another, or describes a tree of groups, which are
packed into rows nested by depth.

Formats:
  json       the layout with every block's bounds and the adjacency edges
  svg        a front view of the placed blocks
  dot        the adjacency graph in Graphviz DOT
  graph.svg  the adjacency graph rendered by Graphviz

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), newPrinter(cmd.OutOrStdout()), args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): json (default), svg, dot, graph.svg (comma-separated)")
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "", "spacing config file (TOML)")
	cmd.Flags().BoolVar(&flags.save, "save", false, "save the layout to the local store")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&flags.detailed, "detailed", false, "show sizes and positions in graph output")

	return cmd
}

// runLayout loads the scene, computes the layout, and writes every artifact.
func (c *CLI) runLayout(ctx context.Context, out *printer, input string, flags layoutFlags) error {
	sc, err := scene.ImportScene(input)
	if err != nil {
		return fmt.Errorf("load scene %s: %w", input, err)
	}
	cfg, err := loadConfig(flags.configPath)
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Config:   cfg,
		Formats:  parseFormats(flags.formats),
		Detailed: flags.detailed,
		Refresh:  flags.refresh,
		Logger:   c.Logger,
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	done := stopwatch(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %d blocks...", sc.Len()))
	spinner.Start()

	result, err := runner.Execute(ctx, sc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	done("placed blocks", "blocks", result.Stats.BlockCount, "edges", result.Stats.EdgeCount)

	paths := outputPaths(input, flags.output, opts.Formats)
	for _, format := range opts.Formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	out.success("Layout complete (%s)", result.Layout.Mode)
	for _, format := range opts.Formats {
		out.file(paths[format])
	}
	out.stats(result.Stats.BlockCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)

	if flags.save {
		st, err := store.NewFileStore(storeDir())
		if err != nil {
			return fmt.Errorf("open layout store: %w", err)
		}
		defer st.Close(ctx)
		if err := st.Save(ctx, result.Layout); err != nil {
			return fmt.Errorf("save layout: %w", err)
		}
		out.field("saved as", result.Layout.ID)
	}

	if jsonPath, ok := paths[pipeline.FormatJSON]; ok && result.Layout.Mode == scene.ModeStream {
		out.nextStep("Navigate", appName+" navigate "+jsonPath)
	}
	return nil
}

// formatExt maps each output format to its file suffix.
var formatExt = map[string]string{
	pipeline.FormatJSON:     ".layout.json",
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatGraphSVG: ".graph.svg",
}

// outputPaths picks a file per format. A single format uses output as is;
// otherwise output (or the input without extension) is a base path.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	for _, f := range formats {
		paths[f] = base + formatExt[f]
	}
	return paths
}
