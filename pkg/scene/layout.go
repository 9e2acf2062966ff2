package scene

import (
	"time"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/pack"
	"github.com/matzehuels/gridspace/pkg/spatial"
)

// Layout is a computed arrangement.
type Layout struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty"`
	Mode      Mode          `json:"mode" bson:"mode"`
	Config    config.Config `json:"config" bson:"config"`
	Blocks    []PlacedBlock `json:"blocks" bson:"blocks"`
	Edges     []EdgeSpec    `json:"edges,omitempty" bson:"edges,omitempty"`
	CreatedAt time.Time     `json:"created_at,omitzero" bson:"created_at,omitempty"`
}

// PlacedBlock is a block with its final bounds.
type PlacedBlock struct {
	ID     string     `json:"id" bson:"id"`
	Name   string     `json:"name" bson:"name"`
	Parent string     `json:"parent,omitempty" bson:"parent,omitempty"`
	Anchor bool       `json:"anchor,omitempty" bson:"anchor,omitempty"`
	Depth  int        `json:"depth,omitempty" bson:"depth,omitempty"`
	Bounds BoundsSpec `json:"bounds" bson:"bounds"`
}

// BoundsSpec is the wire form of [block.Bounds].
type BoundsSpec struct {
	Leading  float64 `json:"leading" bson:"leading"`
	Trailing float64 `json:"trailing" bson:"trailing"`
	Bottom   float64 `json:"bottom" bson:"bottom"`
	Top      float64 `json:"top" bson:"top"`
	Back     float64 `json:"back" bson:"back"`
	Front    float64 `json:"front" bson:"front"`
}

// EdgeSpec is one directed adjacency edge, by block id.
type EdgeSpec struct {
	From      string            `json:"from" bson:"from"`
	Direction spatial.Direction `json:"direction" bson:"direction"`
	To        string            `json:"to" bson:"to"`
}

func boundsSpec(b block.Bounds) BoundsSpec {
	return BoundsSpec{b.Leading, b.Trailing, b.Bottom, b.Top, b.Back, b.Front}
}

// Bounds converts back to engine bounds.
func (b BoundsSpec) Bounds() block.Bounds {
	return block.Bounds{
		Leading: b.Leading, Trailing: b.Trailing,
		Bottom: b.Bottom, Top: b.Top,
		Back: b.Back, Front: b.Front,
	}
}

func placed(b block.Block) PlacedBlock {
	return PlacedBlock{
		ID:     b.ID().String(),
		Name:   b.Name(),
		Bounds: boundsSpec(b.Bounds()),
	}
}

// FromStream captures a stream layout: the blocks in the order given and
// every edge of g.
func FromStream(cfg config.Config, blocks []block.Block, g *spatial.Graph) *Layout {
	l := &Layout{Mode: ModeStream, Config: cfg, Blocks: make([]PlacedBlock, len(blocks))}
	for i, b := range blocks {
		l.Blocks[i] = placed(b)
	}
	for _, e := range g.Edges() {
		l.Edges = append(l.Edges, EdgeSpec{
			From:      e.Source.ID().String(),
			Direction: e.Direction,
			To:        e.Target.ID().String(),
		})
	}
	return l
}

// FromPlacements captures a packed tree in world coordinates.
func FromPlacements(cfg config.Config, placements []pack.Placement) *Layout {
	l := &Layout{Mode: ModeTree, Config: cfg, Blocks: make([]PlacedBlock, len(placements))}
	for i, p := range placements {
		pb := placed(p.Block)
		pb.Bounds = boundsSpec(p.Bounds)
		pb.Anchor = p.Anchor
		pb.Depth = p.Depth
		if p.Parent != nil {
			pb.Parent = p.Parent.ID().String()
		}
		l.Blocks[i] = pb
	}
	return l
}

// Graph rebuilds the layout's blocks and adjacency graph. Edges are
// restored exactly as stored, without adding inverses. Blocks are returned
// in layout order.
func (l *Layout) Graph() (*spatial.Graph, []block.Block, error) {
	byID := make(map[string]block.Block, len(l.Blocks))
	blocks := make([]block.Block, len(l.Blocks))
	for i, pb := range l.Blocks {
		id, err := block.ParseID(pb.ID)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "block %q has a malformed id", pb.Name)
		}
		b := block.NewBox(id, pb.Name, 0, 0, 0)
		b.SetBounds(pb.Bounds.Bounds())
		byID[pb.ID] = b
		blocks[i] = b
	}

	g := spatial.New()
	for _, e := range l.Edges {
		from, ok := byID[e.From]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "edge references unknown block %s", e.From)
		}
		to, ok := byID[e.To]
		if !ok {
			return nil, nil, errors.New(errors.ErrCodeInvalidFormat, "edge references unknown block %s", e.To)
		}
		g.Connect(from, e.Direction, to)
	}
	return g, blocks, nil
}

// Extent is the union of all placed bounds.
func (l *Layout) Extent() block.Bounds {
	var out block.Bounds
	for i, pb := range l.Blocks {
		if i == 0 {
			out = pb.Bounds.Bounds()
			continue
		}
		out = out.Union(pb.Bounds.Bounds())
	}
	return out
}
