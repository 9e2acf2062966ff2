// Package pack lays out nested groups of blocks by greedy row packing.
//
// Every [Group] is positioned in its parent's frame through its anchor
// block. Inside a group, blocks and child group anchors are packed in a
// local frame whose origin is the anchor's leading, top and front faces.
// [Flatten] resolves the tree into world coordinates.
//
// Packing is independent of the adjacency graph.
package pack

import "github.com/matzehuels/gridspace/pkg/block"

// Group is a node of the packing tree.
type Group struct {
	// Anchor stands for the whole group inside its parent.
	Anchor block.Block
	// Blocks are the group's direct children.
	Blocks []block.Block
	// Groups are nested groups.
	Groups []*Group
}

// NewGroup creates an empty group represented by anchor.
func NewGroup(anchor block.Block) *Group {
	return &Group{Anchor: anchor}
}

// Add appends blocks to the group.
func (g *Group) Add(blocks ...block.Block) *Group {
	g.Blocks = append(g.Blocks, blocks...)
	return g
}

// AddGroup appends child groups.
func (g *Group) AddGroup(children ...*Group) *Group {
	g.Groups = append(g.Groups, children...)
	return g
}

// Len counts the blocks in the tree, anchors included.
func (g *Group) Len() int {
	n := 1 + len(g.Blocks)
	for _, c := range g.Groups {
		n += c.Len()
	}
	return n
}

// Walk calls fn for g and every descendant, depth first, parents before
// children. depth starts at 0.
func (g *Group) Walk(fn func(g *Group, depth int)) {
	g.walk(0, fn)
}

func (g *Group) walk(depth int, fn func(*Group, int)) {
	fn(g, depth)
	for _, c := range g.Groups {
		c.walk(depth+1, fn)
	}
}
