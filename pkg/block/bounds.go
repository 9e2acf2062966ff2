package block

import "math"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Leading, Trailing float64
	Bottom, Top       float64
	Back, Front       float64
}

// Sized returns bounds of the given size whose leading, top and front faces
// sit at the origin.
func Sized(width, height, depth float64) Bounds {
	return Bounds{
		Trailing: width,
		Bottom:   -height,
		Back:     -depth,
	}
}

// Width returns the X extent.
func (b Bounds) Width() float64 { return b.Trailing - b.Leading }

// Height returns the Y extent.
func (b Bounds) Height() float64 { return b.Top - b.Bottom }

// Depth returns the Z extent.
func (b Bounds) Depth() float64 { return b.Front - b.Back }

// Volume returns width × height × depth.
func (b Bounds) Volume() float64 { return b.Width() * b.Height() * b.Depth() }

// Footprint returns the planar area width × height.
func (b Bounds) Footprint() float64 { return b.Width() * b.Height() }

// Translate returns b shifted by (dx, dy, dz).
func (b Bounds) Translate(dx, dy, dz float64) Bounds {
	return Bounds{
		Leading:  b.Leading + dx,
		Trailing: b.Trailing + dx,
		Bottom:   b.Bottom + dy,
		Top:      b.Top + dy,
		Back:     b.Back + dz,
		Front:    b.Front + dz,
	}
}

// Union returns the smallest bounds enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Leading:  math.Min(b.Leading, o.Leading),
		Trailing: math.Max(b.Trailing, o.Trailing),
		Bottom:   math.Min(b.Bottom, o.Bottom),
		Top:      math.Max(b.Top, o.Top),
		Back:     math.Min(b.Back, o.Back),
		Front:    math.Max(b.Front, o.Front),
	}
}

// IsZero reports whether all faces are at zero.
func (b Bounds) IsZero() bool { return b == Bounds{} }
