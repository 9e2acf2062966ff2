package spatial

import (
	"cmp"
	"iter"
	"slices"

	"github.com/matzehuels/gridspace/pkg/block"
)

// VisitFunc is called for each block reached by IterateChain. previous is the
// block the walk stepped from; setting *stop ends the walk.
type VisitFunc func(previous, current block.Block, stop *bool)

// IterateChain follows direction d from from. At each step it queries the
// current block's neighbors in d:
//
//   - one neighbor: visit it and advance to it;
//   - several: visit all of them with the same previous, then advance to the
//     first one;
//   - none: stop.
//
// The walk also stops as soon as visit sets *stop. A cycle in direction d is
// only ever left that way.
func IterateChain(g *Graph, from block.Block, d Direction, visit VisitFunc) {
	current := from
	stop := false
	for {
		next := g.RelationsIn(current, d)
		if len(next) == 0 {
			return
		}
		for _, n := range next {
			visit(current, n, &stop)
			if stop {
				return
			}
		}
		current = next[0]
	}
}

// Chain returns the walk of IterateChain as a sequence of (previous, current)
// pairs. Breaking out of the range loop stops the walk.
func Chain(g *Graph, from block.Block, d Direction) iter.Seq2[block.Block, block.Block] {
	return func(yield func(block.Block, block.Block) bool) {
		IterateChain(g, from, d, func(previous, current block.Block, stop *bool) {
			if !yield(previous, current) {
				*stop = true
			}
		})
	}
}

// NeighborsSorted returns all relations of b ordered by the fixed direction
// order of Directions, then by the neighbor's display name.
func NeighborsSorted(g *Graph, b block.Block) []Relation {
	rels := g.Relations(b)
	slices.SortStableFunc(rels, func(x, y Relation) int {
		if c := cmp.Compare(x.Direction, y.Direction); c != 0 {
			return c
		}
		return cmp.Compare(x.Target.Name(), y.Target.Name())
	})
	return rels
}
