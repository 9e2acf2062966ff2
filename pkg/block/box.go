package block

// Box is an in-memory Block.
type Box struct {
	id     ID
	name   string
	bounds Bounds
}

// NewBox creates a box of the given size with its leading, top and front
// faces at the origin. A nil id is replaced by one derived from name.
func NewBox(id ID, name string, width, height, depth float64) *Box {
	if id.IsNil() {
		id = IDFromName(name)
	}
	return &Box{id: id, name: name, bounds: Sized(width, height, depth)}
}

// ID implements Block.
func (b *Box) ID() ID { return b.id }

// Name implements Block.
func (b *Box) Name() string { return b.name }

// Bounds implements Block.
func (b *Box) Bounds() Bounds { return b.bounds }

// SetBounds implements Block.
func (b *Box) SetBounds(bb Bounds) { b.bounds = bb }

// String returns the display name.
func (b *Box) String() string { return b.name }

var _ Block = (*Box)(nil)
