package place

import "github.com/matzehuels/gridspace/pkg/block"

// Cursor is the mutable state of a stream insertion run.
type Cursor struct {
	// Last is the most recently placed block; the anchor for the next one.
	Last block.Block
	// RowCounter counts placements in the current run.
	RowCounter int
	// RowBreakAnchor is set when the next placement must start a new row.
	RowBreakAnchor block.Block
}

// Reset clears the cursor for a fresh run.
func (c *Cursor) Reset() { *c = Cursor{} }

// RowBreak reports whether the placement following counter previous
// placements starts a new row, and returns the advanced counter. every is the
// number of blocks per row.
func RowBreak(counter, every int) (isBreak bool, next int) {
	next = counter + 1
	return every > 0 && next%every == 0, next
}
