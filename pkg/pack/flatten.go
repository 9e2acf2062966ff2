package pack

import "github.com/matzehuels/gridspace/pkg/block"

// Placement is a block resolved into world coordinates.
type Placement struct {
	Block block.Block
	// Parent is the anchor of the enclosing group, nil for the root anchor.
	Parent block.Block
	// Anchor marks blocks that represent a group.
	Anchor bool
	Depth  int
	Bounds block.Bounds
}

// Flatten lists every block of the tree in world coordinates, parents
// before children. The root anchor's bounds are taken as world bounds.
func Flatten(root *Group) []Placement {
	if root == nil || root.Anchor == nil {
		return nil
	}
	out := make([]Placement, 0, root.Len())
	rb := root.Anchor.Bounds()
	out = append(out, Placement{Block: root.Anchor, Anchor: true, Bounds: rb})
	return flatten(out, root, rb, 0)
}

func flatten(out []Placement, g *Group, origin block.Bounds, depth int) []Placement {
	dx, dy, dz := origin.Leading, origin.Top, origin.Front
	for _, b := range g.Blocks {
		out = append(out, Placement{
			Block:  b,
			Parent: g.Anchor,
			Depth:  depth + 1,
			Bounds: b.Bounds().Translate(dx, dy, dz),
		})
	}
	for _, c := range g.Groups {
		world := c.Anchor.Bounds().Translate(dx, dy, dz)
		out = append(out, Placement{
			Block:  c.Anchor,
			Parent: g.Anchor,
			Anchor: true,
			Depth:  depth + 1,
			Bounds: world,
		})
		out = flatten(out, c, world, depth+1)
	}
	return out
}
