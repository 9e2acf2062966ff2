package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/spatial"
	"github.com/matzehuels/gridspace/pkg/spatial/focus"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorBright)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorFaint)
	headerStyle       = lipgloss.NewStyle().Foreground(colorMuted).Bold(true)
)

// trailSize is the number of viewpoint changes shown under the focus panel.
const trailSize = 5

// =============================================================================
// viewTrail - Viewport that remembers camera moves
// =============================================================================

// viewTrail is the navigator's viewport in the terminal: it keeps the most
// recent viewpoint changes so they can be shown.
type viewTrail struct {
	moves []string
}

func (t *viewTrail) SetInitialViewpoint(b block.Block) {
	t.push("view " + b.Name())
}

func (t *viewTrail) MoveViewpoint(b block.Block) {
	t.push("move to " + b.Name())
}

func (t *viewTrail) push(s string) {
	t.moves = append(t.moves, s)
	if len(t.moves) > trailSize {
		t.moves = t.moves[len(t.moves)-trailSize:]
	}
}

// =============================================================================
// NavigatorModel - Interactive focus navigation
// =============================================================================

// keyDirections maps movement keys to directions.
var keyDirections = map[string]spatial.Direction{
	"left": spatial.Left, "h": spatial.Left,
	"right": spatial.Right, "l": spatial.Right,
	"up": spatial.Up, "k": spatial.Up,
	"down": spatial.Down, "j": spatial.Down,
	"f": spatial.Forward,
	"b": spatial.Backward,
}

// NavigatorModel is the bubbletea model of the navigate command. Without a
// focused block it shows a picker; once a block is focused, movement keys
// shift focus along the adjacency graph.
type NavigatorModel struct {
	Blocks []block.Block
	Nav    *focus.Navigator
	Cursor int
	Height int
	Offset int
	Status string

	trail *viewTrail
}

// NewNavigatorModel creates a model over blocks whose relations live in g.
func NewNavigatorModel(g *spatial.Graph, blocks []block.Block, logger *log.Logger) NavigatorModel {
	trail := &viewTrail{}
	return NavigatorModel{
		Blocks: blocks,
		Nav:    focus.New(g, trail, logger),
		Height: 15,
		trail:  trail,
	}
}

func (m NavigatorModel) Init() tea.Cmd {
	return nil
}

func (m NavigatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		if m.Nav.State().IsStart() {
			return m.updatePicker(key), nil
		}
		return m.updateFocused(key), nil
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m NavigatorModel) updatePicker(key string) NavigatorModel {
	m.Status = ""
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Blocks)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if len(m.Blocks) > 0 {
			m.Nav.Focus(m.Blocks[m.Cursor])
		}
	}
	return m
}

func (m NavigatorModel) updateFocused(key string) NavigatorModel {
	m.Status = ""
	if key == "esc" {
		m.Nav.Reset()
		return m
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		neighbors := m.Nav.FocusableNeighbors()
		if i := int(key[0] - '1'); i < len(neighbors) {
			m.Nav.Focus(neighbors[i].Target)
		}
		return m
	}
	d, ok := keyDirections[key]
	if !ok {
		return m
	}
	from := m.Nav.State().Block()
	if !m.Nav.ShiftFocus(d) {
		m.Status = fmt.Sprintf("nothing %s of %s", d, from.Name())
	}
	return m
}

func (m NavigatorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Navigate Layout"))
	b.WriteString("\n")
	if m.Nav.State().IsStart() {
		b.WriteString(listDimStyle.Render("↑/↓ choose  ⏎ focus  q quit"))
		b.WriteString("\n\n")
		m.viewPicker(&b)
	} else {
		b.WriteString(listDimStyle.Render("←→↑↓ or hjkl move  f/b forward/backward  1-9 jump  esc back  q quit"))
		b.WriteString("\n\n")
		m.viewFocused(&b)
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(cautionStyle.Render(m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m NavigatorModel) viewPicker(b *strings.Builder) {
	if len(m.Blocks) == 0 {
		b.WriteString(listDimStyle.Render("  no blocks"))
		b.WriteString("\n")
		return
	}
	end := min(m.Offset+m.Height, len(m.Blocks))
	for i := m.Offset; i < end; i++ {
		line := "  " + m.Blocks[i].Name()
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + m.Blocks[i].Name()))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Blocks))))
	b.WriteString("\n")
}

func (m NavigatorModel) viewFocused(b *strings.Builder) {
	cur := m.Nav.State().Block()
	bb := cur.Bounds()
	b.WriteString(listSelectedStyle.Render(cur.Name()))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("x %.0f..%.0f  y %.0f..%.0f  z %.0f..%.0f",
		bb.Leading, bb.Trailing, bb.Bottom, bb.Top, bb.Back, bb.Front)))
	b.WriteString("\n\n")

	neighbors := m.Nav.FocusableNeighbors()
	if len(neighbors) == 0 {
		b.WriteString(listDimStyle.Render("  no neighbors"))
		b.WriteString("\n")
	} else {
		rows := make([][]string, len(neighbors))
		for i, r := range neighbors {
			rows[i] = []string{fmt.Sprint(i + 1), r.Direction.String(), r.Target.Name()}
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
			Headers("#", "Direction", "Block").
			Rows(rows...).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == -1 {
					return headerStyle
				}
				if col == 2 {
					return listNormalStyle
				}
				return listDimStyle
			})
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(m.trail.moves) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  " + strings.Join(m.trail.moves, " → ")))
		b.WriteString("\n")
	}
}
