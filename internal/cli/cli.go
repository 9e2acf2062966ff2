// Package cli implements the gridspace command-line interface.
//
// # Commands
//
//   - layout: place the blocks of a scene file and write the layout
//   - graph: draw the adjacency graph of a layout as DOT or SVG
//   - navigate: walk a layout's adjacency graph interactively
//   - serve: run the HTTP API
//   - cache: manage the local layout cache
//   - config: write or show the spacing config
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// is also attached to each command's context.
package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/pkg/buildinfo"
	"github.com/matzehuels/gridspace/pkg/cache"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and commands.
	appName = "gridspace"

	// envCacheDir overrides the cache directory.
	envCacheDir = "GRIDSPACE_CACHE_DIR"
	// envStoreDir overrides the directory of saved layouts.
	envStoreDir = "GRIDSPACE_STORE_DIR"
)

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
		Short:        "Gridspace lays out blocks in a 3D grid",
		Long:         `Gridspace places sized blocks into rows and depth planes, records which block sits next to which, and lets you walk that adjacency graph.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.navigateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(cacheDir())
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $GRIDSPACE_CACHE_DIR, or the per-user cache directory.
func cacheDir() string {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir
	}
	return cache.DefaultDir()
}

// storeDir returns $GRIDSPACE_STORE_DIR. Empty means the store's default.
func storeDir() string {
	return os.Getenv(envStoreDir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// loadConfig reads the config file at path, or returns the defaults.
func loadConfig(path string) (config.Config, error) {
	return config.Load(path)
}
