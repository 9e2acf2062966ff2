// Package plan draws a layout as seen from the front: every block is a
// rectangle at its leading/top position, nearer planes painted over
// farther ones.
package plan

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"slices"

	"github.com/matzehuels/gridspace/pkg/scene"
)

// SVGOption configures rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	labels  bool
	margin  float64
	anchors bool
}

// WithLabels writes each block's name inside its rectangle.
func WithLabels() SVGOption { return func(r *svgRenderer) { r.labels = true } }

// WithMargin sets the blank border around the drawing.
func WithMargin(m float64) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithAnchors includes group anchors, drawn as dashed outlines.
func WithAnchors() SVGOption { return func(r *svgRenderer) { r.anchors = true } }

var planeFills = []string{"#e8f1fb", "#d3e4f5", "#b9d3ee", "#9cc0e6", "#7eaedd"}

// RenderSVG draws l. The Y axis is flipped so larger tops are higher on
// screen.
func RenderSVG(l *scene.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{margin: 16}
	for _, opt := range opts {
		opt(&r)
	}

	blocks := make([]scene.PlacedBlock, 0, len(l.Blocks))
	for _, b := range l.Blocks {
		if b.Anchor && !r.anchors {
			continue
		}
		blocks = append(blocks, b)
	}
	// Back to front, then anchors under their contents.
	slices.SortStableFunc(blocks, func(a, b scene.PlacedBlock) int {
		if c := cmp.Compare(a.Bounds.Front, b.Bounds.Front); c != 0 {
			return c
		}
		if a.Anchor != b.Anchor {
			if a.Anchor {
				return -1
			}
			return 1
		}
		return 0
	})

	ext := l.Extent()
	width := ext.Width() + 2*r.margin
	height := ext.Height() + 2*r.margin
	planes := frontPlanes(blocks)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	for _, b := range blocks {
		bb := b.Bounds
		x := bb.Leading - ext.Leading + r.margin
		y := ext.Top - bb.Top + r.margin
		w, h := bb.Trailing-bb.Leading, bb.Top-bb.Bottom
		if b.Anchor {
			fmt.Fprintf(&buf, `  <rect id="block-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#888" stroke-dasharray="4 3"/>`+"\n",
				b.ID, x, y, w, h)
		} else {
			fill := planeFills[planes[bb.Front]%len(planeFills)]
			fmt.Fprintf(&buf, `  <rect id="block-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="2" fill="%s" stroke="#333"/>`+"\n",
				b.ID, x, y, w, h, fill)
		}
		if r.labels {
			fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="10" fill="#222">%s</text>`+"\n",
				x+3, y+12, html.EscapeString(b.Name))
		}
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// frontPlanes numbers the distinct front values from nearest (0) backwards.
func frontPlanes(blocks []scene.PlacedBlock) map[float64]int {
	var fronts []float64
	seen := map[float64]bool{}
	for _, b := range blocks {
		if !seen[b.Bounds.Front] {
			seen[b.Bounds.Front] = true
			fronts = append(fronts, b.Bounds.Front)
		}
	}
	slices.Sort(fronts)
	slices.Reverse(fronts)
	out := make(map[float64]int, len(fronts))
	for i, f := range fronts {
		out[f] = i
	}
	return out
}
