package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or show the spacing config",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config as TOML",
		Long:  `Write the default config as TOML to path, or to stdout without a path.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return config.Default().Encode(cmd.OutOrStdout())
			}
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --force to overwrite)", path)
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := config.Default().Encode(f); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			out.success("Config written")
			out.file(path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(path)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			num := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
			out.field("h gap", num(cfg.HorizontalGap))
			out.field("v gap", num(cfg.VerticalGap))
			out.field("plane gap", num(cfg.PlaneGap))
			out.field("row break", strconv.Itoa(cfg.RowBreakCount))
			out.field("padding", num(cfg.Padding))
			out.field("depth pad", num(cfg.DepthPadding))
			out.field("row width", num(cfg.MaxRowWidth))
			out.field("fit anchors", strconv.FormatBool(cfg.FitGroupAnchors))
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "config", "c", "", "config file (default: built-in defaults)")

	return cmd
}
