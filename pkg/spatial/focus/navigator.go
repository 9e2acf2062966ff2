// Package focus tracks which block a viewer is looking at and moves that
// focus along the adjacency graph.
//
// The navigator starts in the [Start] state. The first [Navigator.Focus]
// asks the [Viewport] to set an initial viewpoint; later focus changes ask it
// to move toward the new block.
package focus

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/spatial"
)

// Viewport receives fire-and-forget camera notifications.
type Viewport interface {
	SetInitialViewpoint(b block.Block)
	MoveViewpoint(b block.Block)
}

// State is either Start (nothing focused) or focused on a block.
type State struct {
	block block.Block
}

// Start is the initial state.
var Start = State{}

// Focused returns the state focused on b. A nil b is Start.
func Focused(b block.Block) State { return State{block: b} }

// Block returns the focused block, or nil in the Start state.
func (s State) Block() block.Block { return s.block }

// IsStart reports whether nothing is focused.
func (s State) IsStart() bool { return s.block == nil }

// Equal compares states by the identity of the focused block.
func (s State) Equal(o State) bool { return block.Same(s.block, o.block) }

func (s State) String() string {
	if s.block == nil {
		return "start"
	}
	return "focused(" + s.block.Name() + ")"
}

// Navigator is the focus state machine. It is not safe for concurrent use.
type Navigator struct {
	graph    *spatial.Graph
	viewport Viewport
	logger   *log.Logger
	state    State
}

// New creates a navigator in the Start state. viewport and logger may be nil.
func New(g *spatial.Graph, viewport Viewport, logger *log.Logger) *Navigator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Navigator{graph: g, viewport: viewport, logger: logger}
}

// State returns the current state.
func (n *Navigator) State() State { return n.state }

// Focus moves focus to b and notifies the viewport. It reports whether the
// transition was handled.
func (n *Navigator) Focus(b block.Block) bool {
	return n.transition(Focused(b))
}

// Reset returns to the Start state without notifying the viewport.
func (n *Navigator) Reset() {
	n.state = Start
}

func (n *Navigator) transition(next State) bool {
	old := n.state
	n.state = next
	return n.OnStateChange(old, next)
}

// OnStateChange emits the viewport side effect of moving from old to next.
// Start to Focused sets the initial viewpoint and Focused to Focused moves
// it. Every other pair is unhandled and reported as false.
func (n *Navigator) OnStateChange(old, next State) bool {
	switch {
	case old.IsStart() && !next.IsStart():
		if n.viewport != nil {
			n.viewport.SetInitialViewpoint(next.block)
		}
		n.logger.Debug("initial focus", "block", next.block.Name())
		return true
	case !old.IsStart() && !next.IsStart():
		if n.viewport != nil {
			n.viewport.MoveViewpoint(next.block)
		}
		n.logger.Debug("focus moved", "from", old.block.Name(), "to", next.block.Name())
		return true
	default:
		n.logger.Debug("unhandled focus transition", "from", old, "to", next)
		return false
	}
}

// FocusableNeighbors lists the focused block's relations ordered by
// direction, then by name. It is empty in the Start state.
func (n *Navigator) FocusableNeighbors() []spatial.Relation {
	if n.state.IsStart() {
		return nil
	}
	return spatial.NeighborsSorted(n.graph, n.state.block)
}

// ShiftFocus moves focus to the first neighbor in direction d. It reports
// false, leaving the state unchanged, when nothing is focused or there is no
// such neighbor.
func (n *Navigator) ShiftFocus(d spatial.Direction) bool {
	if n.state.IsStart() {
		n.logger.Warn("shift focus without a focused block", "direction", d)
		return false
	}
	targets := n.graph.RelationsIn(n.state.block, d)
	if len(targets) == 0 {
		n.logger.Debug("no neighbor", "block", n.state.block.Name(), "direction", d)
		return false
	}
	return n.transition(Focused(targets[0]))
}
