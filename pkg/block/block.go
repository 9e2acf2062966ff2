package block

import (
	"github.com/google/uuid"
)

// namespace seeds IDFromName. Changing it changes every derived ID.
var namespace = uuid.MustParse("8f0c4b8e-5a51-4c1e-9d0b-2f6a4f1b7c3d")

// ID is the stable identity of a block.
type ID struct{ uuid.UUID }

// Nil is the zero ID. No tracked block carries it.
var Nil = ID{}

// NewID returns a random identity.
func NewID() ID { return ID{uuid.New()} }

// IDFromName derives a deterministic identity from a display name.
func IDFromName(name string) ID {
	return ID{uuid.NewSHA1(namespace, []byte(name))}
}

// ParseID parses the canonical textual form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return ID{u}, nil
}

// IsNil reports whether id is the zero ID.
func (id ID) IsNil() bool { return id.UUID == uuid.Nil }

// Short returns the first eight hex digits, for logs.
func (id ID) Short() string { return id.String()[:8] }

// Block is a renderable content region positioned by the engine.
//
// SetBounds must take effect immediately: the next Bounds call returns the
// value just written.
type Block interface {
	ID() ID
	Name() string
	Bounds() Bounds
	SetBounds(Bounds)
}

// Same reports whether a and b are the same block. Two nil blocks are the same.
func Same(a, b Block) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ID() == b.ID()
}

// MoveLeading translates b along X so its leading face sits at x.
func MoveLeading(b Block, x float64) {
	bb := b.Bounds()
	b.SetBounds(bb.Translate(x-bb.Leading, 0, 0))
}

// MoveTop translates b along Y so its top face sits at y.
func MoveTop(b Block, y float64) {
	bb := b.Bounds()
	b.SetBounds(bb.Translate(0, y-bb.Top, 0))
}

// MoveFront translates b along Z so its front face sits at z.
func MoveFront(b Block, z float64) {
	bb := b.Bounds()
	b.SetBounds(bb.Translate(0, 0, z-bb.Front))
}

// MoveTo places the leading, top and front faces of b at (x, y, z).
func MoveTo(b Block, x, y, z float64) {
	bb := b.Bounds()
	b.SetBounds(bb.Translate(x-bb.Leading, y-bb.Top, z-bb.Front))
}

// Translate shifts b by (dx, dy, dz).
func Translate(b Block, dx, dy, dz float64) {
	b.SetBounds(b.Bounds().Translate(dx, dy, dz))
}
