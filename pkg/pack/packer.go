package pack

import (
	"math"
	"sort"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/config"
)

// Packer arranges group trees.
type Packer struct {
	Config config.Config
	// FitAnchors resizes each group's anchor to enclose its packed contents
	// before the parent packs it.
	FitAnchors bool
}

// New creates a packer from cfg.
func New(cfg config.Config) *Packer {
	return &Packer{Config: cfg, FitAnchors: cfg.FitGroupAnchors}
}

// ApplyAllConstraints packs g and all of its descendants. Child groups are
// finished first so the parent sees their final anchors. Blocks are packed
// in rows ordered by volume, then child groups are packed in rows beneath
// them ordered by footprint, sitting depth*DepthPadding in front.
func (p *Packer) ApplyAllConstraints(g *Group, depth int) {
	for _, child := range g.Groups {
		p.ApplyAllConstraints(child, depth+1)
	}

	blocks := append([]block.Block(nil), g.Blocks...)
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Bounds().Volume() < blocks[j].Bounds().Volume()
	})
	r := p.packRows(blocks, 0, 0)

	// With no blocks the group row still sits one padding below the top.
	groupRowY := r.y - (r.maxHeight + p.Config.Padding)

	anchors := make([]block.Block, len(g.Groups))
	for i, child := range g.Groups {
		anchors[i] = child.Anchor
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Bounds().Footprint() < anchors[j].Bounds().Footprint()
	})
	p.packRows(anchors, groupRowY, float64(depth)*p.Config.DepthPadding)

	if p.FitAnchors {
		p.fit(g)
	}
}

type rowState struct {
	y         float64
	maxHeight float64
}

// packRows places items left to right starting at top y, wrapping whenever
// the next item would push the row past MaxRowWidth.
func (p *Packer) packRows(items []block.Block, y, front float64) rowState {
	pad := p.Config.Padding
	var (
		rowWidth  float64
		maxHeight float64
		lastInRow block.Block
	)
	for _, b := range items {
		bb := b.Bounds()
		gap := 0.0
		if lastInRow != nil {
			gap = pad
		}
		if lastInRow != nil && rowWidth+bb.Width()+gap > p.Config.MaxRowWidth {
			y -= maxHeight + pad
			rowWidth, maxHeight, lastInRow, gap = 0, 0, nil, 0
		}

		if lastInRow != nil {
			lb := lastInRow.Bounds()
			block.MoveTo(b, lb.Trailing+pad, lb.Top, front)
		} else {
			block.MoveTo(b, 0, y, front)
		}

		rowWidth += bb.Width() + gap
		maxHeight = math.Max(maxHeight, bb.Height())
		lastInRow = b
	}
	return rowState{y: y, maxHeight: maxHeight}
}

// fit grows or shrinks g's anchor to enclose its contents plus padding,
// keeping its leading, top and front faces in place.
func (p *Packer) fit(g *Group) {
	var extent block.Bounds
	first := true
	for _, b := range g.Blocks {
		extent = unionFirst(extent, b.Bounds(), &first)
	}
	for _, c := range g.Groups {
		extent = unionFirst(extent, c.Anchor.Bounds(), &first)
	}
	if first {
		return
	}

	ab := g.Anchor.Bounds()
	depth := math.Max(ab.Depth(), extent.Front-extent.Back)
	width := math.Max(extent.Trailing, 0) + p.Config.Padding
	height := math.Max(-extent.Bottom, 0) + p.Config.Padding
	g.Anchor.SetBounds(block.Sized(width, height, depth).Translate(ab.Leading, ab.Top, ab.Front))
}

func unionFirst(acc, b block.Bounds, first *bool) block.Bounds {
	if *first {
		*first = false
		return b
	}
	return acc.Union(b)
}
