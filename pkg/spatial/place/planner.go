// Package place decides where newly arriving blocks go and wires them into
// the adjacency graph.
//
// Blocks stream in as two size-sorted lists. Additions fill rows of
// RowBreakCount blocks, each placed trailing its predecessor; when a row is
// full the next block starts a row below, aligned with the row's leftmost
// block. Missing blocks (still present, previously known) go on a new depth
// plane behind the additions.
//
//	p := place.New(g, cfg, logger)
//	var cur place.Cursor
//	p.ApplyAllUpdates(&cur, additions, missing)
package place

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/spatial"
)

// Style selects how a block is placed relative to the cursor's last block.
type Style int

const (
	// Trailing places the block to the right of the anchor in the same row.
	Trailing Style = iota
	// NextRow places the block below the anchor's row, at the row's leading edge.
	NextRow
	// NextPlane places the block on a new depth plane behind the anchor.
	NextPlane
)

func (s Style) String() string {
	switch s {
	case Trailing:
		return "trailing"
	case NextRow:
		return "next-row"
	case NextPlane:
		return "next-plane"
	default:
		return "unknown"
	}
}

// Initial displacement of the first block of a run that has no anchor.
const (
	InitialOffsetX = -30.0
	InitialOffsetY = 30.0
	InitialOffsetZ = -100.0
)

// Planner places blocks and records their adjacency.
type Planner struct {
	Graph  *spatial.Graph
	Config config.Config
	Logger *log.Logger
}

// New creates a planner writing into g. A nil logger discards output.
func New(g *spatial.Graph, cfg config.Config, logger *log.Logger) *Planner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Planner{Graph: g, Config: cfg, Logger: logger}
}

// ApplyAllUpdates recomputes the layout from scratch. It clears the graph and
// the cursor, places the first block at the origin as the layout root, lays
// out every addition in row order and then starts a new plane for the
// missing blocks. The row counter carries over into the new plane, so a row
// break pending after the additions applies to the second missing block.
func (p *Planner) ApplyAllUpdates(cur *Cursor, additions, missing []block.Block) {
	p.Graph.Clear()
	cur.Reset()

	switch {
	case len(additions) > 0:
		block.MoveTo(additions[0], 0, 0, 0)
	case len(missing) > 0:
		block.MoveTo(missing[0], 0, 0, 0)
	default:
		p.Logger.Debug("no blocks to lay out")
		return
	}

	for _, b := range additions {
		p.layout(cur, b)
	}

	if len(missing) > 0 {
		p.Add(cur, NextPlane, missing[0])
		for _, b := range missing[1:] {
			p.layout(cur, b)
		}
	}

	p.Logger.Debug("applied updates",
		"additions", len(additions),
		"missing", len(missing),
		"edges", len(p.Graph.Edges()))
}

// layout places b trailing the last block, or below it when a row break is
// pending, then advances the row counter.
func (p *Planner) layout(cur *Cursor, b block.Block) {
	if cur.RowBreakAnchor != nil {
		p.Add(cur, NextRow, b)
	} else {
		p.Add(cur, Trailing, b)
	}

	isBreak, next := RowBreak(cur.RowCounter, p.Config.RowBreakCount)
	cur.RowCounter = next
	if isBreak {
		cur.RowBreakAnchor = b
	} else {
		cur.RowBreakAnchor = nil
	}
	cur.Last = b
}

// Add places b relative to the cursor's last block using style, connects
// it in the graph and makes it the new last block. Without a last block, b
// is moved to the initial offset from the origin and left unconnected.
func (p *Planner) Add(cur *Cursor, style Style, b block.Block) {
	anchor := cur.Last
	if anchor == nil {
		block.MoveTo(b, InitialOffsetX, InitialOffsetY, InitialOffsetZ)
		cur.Last = b
		return
	}

	ab := anchor.Bounds()
	switch style {
	case Trailing:
		p.Graph.ConnectWithInverses(anchor, spatial.Right, b)
		block.MoveTo(b, ab.Trailing+p.Config.HorizontalGap, ab.Top, ab.Front)

	case NextRow:
		p.Graph.ConnectWithInverses(anchor, spatial.Down, b)
		minBottom := ab.Bottom
		var leftmost block.Block
		spatial.IterateChain(p.Graph, anchor, spatial.Left, func(_, current block.Block, _ *bool) {
			minBottom = math.Min(minBottom, current.Bounds().Bottom)
			leftmost = current
		})
		x, z := ab.Leading, ab.Front
		if leftmost != nil {
			lb := leftmost.Bounds()
			x, z = lb.Leading, lb.Front
		}
		block.MoveTo(b, x, minBottom-p.Config.VerticalGap, z)

	case NextPlane:
		p.Graph.ConnectWithInverses(anchor, spatial.Forward, b)
		block.MoveTo(b, 0, 0, ab.Back-p.Config.PlaneGap)
	}

	p.Logger.Debug("placed block", "block", b.Name(), "style", style, "anchor", anchor.Name())
	cur.Last = b
}

// Remove detaches b from the graph, retaining the chains that ran through
// it, and forgets it as the cursor's last block. It reports whether the
// graph changed.
func (p *Planner) Remove(cur *Cursor, b block.Block) bool {
	if block.Same(cur.Last, b) {
		cur.Last = nil
	}
	if block.Same(cur.RowBreakAnchor, b) {
		cur.RowBreakAnchor = nil
	}
	changed := p.Graph.DetachRetaining(b)
	if !changed {
		p.Logger.Debug("remove had no effect", "block", b.Name())
	}
	return changed
}
