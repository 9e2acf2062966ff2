package scene

import (
	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/pack"
)

// Mode selects the layout algorithm.
type Mode string

const (
	// ModeStream places additions and missing blocks by stream insertion.
	ModeStream Mode = "stream"
	// ModeTree packs a group tree.
	ModeTree Mode = "tree"
)

// Scene is the layout input.
type Scene struct {
	Additions []BlockSpec `json:"additions,omitempty" bson:"additions,omitempty"`
	Missing   []BlockSpec `json:"missing,omitempty" bson:"missing,omitempty"`
	Root      *GroupSpec  `json:"root,omitempty" bson:"root,omitempty"`
}

// BlockSpec describes one sized block.
type BlockSpec struct {
	ID     string  `json:"id,omitempty" bson:"id,omitempty"`
	Name   string  `json:"name" bson:"name"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
	Depth  float64 `json:"depth" bson:"depth"`
}

// GroupSpec describes a node of a packing tree.
type GroupSpec struct {
	Anchor BlockSpec   `json:"anchor" bson:"anchor"`
	Blocks []BlockSpec `json:"blocks,omitempty" bson:"blocks,omitempty"`
	Groups []GroupSpec `json:"groups,omitempty" bson:"groups,omitempty"`
}

// Mode reports which algorithm the scene is laid out with.
func (s *Scene) Mode() Mode {
	if s.Root != nil {
		return ModeTree
	}
	return ModeStream
}

// Len counts the blocks in the scene, group anchors included.
func (s *Scene) Len() int {
	n := len(s.Additions) + len(s.Missing)
	if s.Root != nil {
		n += s.Root.len()
	}
	return n
}

func (g *GroupSpec) len() int {
	n := 1 + len(g.Blocks)
	for i := range g.Groups {
		n += g.Groups[i].len()
	}
	return n
}

// Validate checks names, sizes and ids, and that the scene is either a
// stream or a tree. Errors carry [errors.ErrCodeInvalidScene].
func (s *Scene) Validate() error {
	if s.Root != nil && (len(s.Additions) > 0 || len(s.Missing) > 0) {
		return errors.New(errors.ErrCodeInvalidScene, "scene must be either a stream or a group tree, not both")
	}
	seen := make(map[block.ID]string, s.Len())
	for _, list := range [][]BlockSpec{s.Additions, s.Missing} {
		for i := range list {
			if err := list[i].validate(seen); err != nil {
				return err
			}
		}
	}
	if s.Root != nil {
		return s.Root.validate(seen)
	}
	return nil
}

func (g *GroupSpec) validate(seen map[block.ID]string) error {
	if err := g.Anchor.validate(seen); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "group anchor")
	}
	for i := range g.Blocks {
		if err := g.Blocks[i].validate(seen); err != nil {
			return err
		}
	}
	for i := range g.Groups {
		if err := g.Groups[i].validate(seen); err != nil {
			return err
		}
	}
	return nil
}

func (b *BlockSpec) validate(seen map[block.ID]string) error {
	if err := errors.ValidateBlockName(b.Name); err != nil {
		return err
	}
	for _, dim := range []struct {
		field string
		v     float64
	}{{"width", b.Width}, {"height", b.Height}, {"depth", b.Depth}} {
		if err := errors.ValidateDimension(dim.field, dim.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "block %q", b.Name)
		}
	}
	id, err := b.id()
	if err != nil {
		return err
	}
	if prev, dup := seen[id]; dup {
		return errors.New(errors.ErrCodeInvalidScene, "block %q reuses the id of %q", b.Name, prev)
	}
	seen[id] = b.Name
	return nil
}

func (b *BlockSpec) id() (block.ID, error) {
	if b.ID == "" {
		return block.IDFromName(b.Name), nil
	}
	id, err := block.ParseID(b.ID)
	if err != nil {
		return block.Nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "block %q has a malformed id", b.Name)
	}
	return id, nil
}

// Box builds the block described by b. The spec must be valid.
func (b *BlockSpec) Box() *block.Box {
	id, _ := b.id()
	return block.NewBox(id, b.Name, b.Width, b.Height, b.Depth)
}

// Stream builds the additions and missing blocks, each sorted by size.
func (s *Scene) Stream() (additions, missing []block.Block, err error) {
	if err := s.Validate(); err != nil {
		return nil, nil, err
	}
	if s.Root != nil {
		return nil, nil, errors.New(errors.ErrCodeInvalidScene, "scene is a group tree, not a stream")
	}
	return boxes(s.Additions), boxes(s.Missing), nil
}

func boxes(specs []BlockSpec) []block.Block {
	out := make([]block.Block, len(specs))
	for i := range specs {
		out[i] = specs[i].Box()
	}
	block.SortBySize(out)
	return out
}

// Tree builds the packing tree.
func (s *Scene) Tree() (*pack.Group, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidScene, "scene has no root group")
	}
	return s.Root.group(), nil
}

func (g *GroupSpec) group() *pack.Group {
	out := pack.NewGroup(g.Anchor.Box())
	for i := range g.Blocks {
		out.Add(g.Blocks[i].Box())
	}
	for i := range g.Groups {
		out.AddGroup(g.Groups[i].group())
	}
	return out
}
