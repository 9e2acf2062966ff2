package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/store"
)

// navigateCommand creates the navigate command.
func (c *CLI) navigateCommand() *cobra.Command {
	var start string

	cmd := &cobra.Command{
		Use:   "navigate [layout.json | saved-id]",
		Short: "Walk a layout's adjacency graph interactively",
		Long: `Open a layout in an interactive navigator. Pick a block, then move focus
to the block left, right, above, below, in front of or behind it.

The argument is either a layout file written by 'layout' or the id of a
layout saved with 'layout --save'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNavigate(cmd.Context(), newPrinter(cmd.ErrOrStderr()), args[0], start)
		},
	}

	cmd.Flags().StringVar(&start, "focus", "", "name of the block to focus first")

	return cmd
}

func (c *CLI) runNavigate(ctx context.Context, out *printer, ref, start string) error {
	l, err := loadLayoutRef(ctx, ref)
	if err != nil {
		return err
	}
	g, blocks, err := l.Graph()
	if err != nil {
		return err
	}
	if len(l.Edges) == 0 {
		out.warn("Layout has no adjacency edges; only the picker is available")
	}

	m := NewNavigatorModel(g, blocks, c.Logger)
	if start != "" {
		found := false
		for _, b := range blocks {
			if b.Name() == start {
				m.Nav.Focus(b)
				found = true
				break
			}
		}
		if !found {
			return errors.New(errors.ErrCodeNotFound, "no block named %q", start)
		}
	}

	_, err = tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// loadLayoutRef loads a layout from a file, or from the local store when ref
// is not a file but looks like a saved id.
func loadLayoutRef(ctx context.Context, ref string) (*scene.Layout, error) {
	if _, err := os.Stat(ref); err == nil || errors.ValidateLayoutID(ref) != nil {
		l, err := scene.ImportLayout(ref)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", ref, err)
		}
		return l, nil
	}

	st, err := store.NewFileStore(storeDir())
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}
	defer st.Close(ctx)
	l, err := st.Get(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load saved layout %s: %w", ref, err)
	}
	return l, nil
}
