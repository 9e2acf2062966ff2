package block

import (
	"cmp"
	"slices"
)

// SortBySize orders blocks by ascending volume, breaking ties by name and
// then by ID so the result is deterministic.
func SortBySize(blocks []Block) {
	slices.SortStableFunc(blocks, func(a, b Block) int {
		if c := cmp.Compare(a.Bounds().Volume(), b.Bounds().Volume()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name(), b.Name()); c != 0 {
			return c
		}
		return cmp.Compare(a.ID().String(), b.ID().String())
	})
}

// Names extracts the display name of each block, preserving order.
func Names(blocks []Block) []string {
	names := make([]string, len(blocks))
	for i, b := range blocks {
		names[i] = b.Name()
	}
	return names
}
