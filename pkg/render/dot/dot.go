// Package dot exports the adjacency graph as a Graphviz diagram.
//
//	src := dot.ToDOT(g, dot.Options{})
//	svg, err := dot.RenderSVG(ctx, src)
//
// By default each symmetric pair of edges is drawn once, in its Right,
// Down or Forward direction. An edge whose inverse is missing, which
// detach-and-repair can leave behind, is drawn dashed.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridspace/pkg/spatial"
)

// Options configures diagram generation.
type Options struct {
	// AllEdges draws both halves of every symmetric pair.
	AllEdges bool
	// Detailed adds each block's size and position to its label.
	Detailed bool
}

var edgeColors = map[spatial.Direction]string{
	spatial.Left:     "steelblue",
	spatial.Right:    "steelblue",
	spatial.Up:       "darkorange",
	spatial.Down:     "darkorange",
	spatial.Forward:  "seagreen",
	spatial.Backward: "seagreen",
}

func primary(d spatial.Direction) bool {
	return d == spatial.Right || d == spatial.Down || d == spatial.Forward
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *spatial.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, b := range g.Blocks() {
		label := b.Name()
		if opts.Detailed {
			bb := b.Bounds()
			label += fmt.Sprintf("\n%gx%gx%g\n@(%g, %g, %g)",
				bb.Width(), bb.Height(), bb.Depth(), bb.Leading, bb.Top, bb.Front)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", b.ID().String(), label)
	}

	type pair struct {
		from, to string
		d        spatial.Direction
	}
	edges := g.Edges()
	present := make(map[pair]bool, len(edges))
	for _, e := range edges {
		present[pair{e.Source.ID().String(), e.Target.ID().String(), e.Direction}] = true
	}

	buf.WriteString("\n")
	for _, e := range edges {
		from, to := e.Source.ID().String(), e.Target.ID().String()
		symmetric := present[pair{to, from, e.Direction.Inverse()}]
		if symmetric && !opts.AllEdges && !primary(e.Direction) {
			continue
		}
		attrs := []string{
			fmt.Sprintf("label=%q", e.Direction.String()),
			"color=" + edgeColors[e.Direction],
		}
		if !symmetric {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one
// sized in user units so the SVG scales when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
