package plan

import (
	"strings"
	"testing"

	"github.com/matzehuels/gridspace/pkg/scene"
)

func placed(id, name string, l, t, w, h, front float64, anchor bool) scene.PlacedBlock {
	return scene.PlacedBlock{
		ID: id, Name: name, Anchor: anchor,
		Bounds: scene.BoundsSpec{Leading: l, Trailing: l + w, Top: t, Bottom: t - h, Front: front, Back: front - 1},
	}
}

func TestRenderSVG(t *testing.T) {
	l := &scene.Layout{Blocks: []scene.PlacedBlock{
		placed("root", "root", 0, 0, 100, 50, 0, true),
		placed("near", "a<b>.go", 0, 0, 40, 20, 0, false),
		placed("far", "far.go", 50, 0, 40, 20, -200, false),
	}}

	out := string(RenderSVG(l, WithLabels(), WithMargin(10)))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.0 70.0"`) {
		t.Errorf("unexpected root element: %.120s", out)
	}
	if strings.Contains(out, "block-root") {
		t.Error("anchors should be hidden by default")
	}
	if !strings.Contains(out, "a&lt;b&gt;.go") {
		t.Error("labels should be escaped")
	}
	if strings.Index(out, "block-far") > strings.Index(out, "block-near") {
		t.Error("farther planes must be painted first")
	}
	if !strings.Contains(out, `id="block-near" x="10.0" y="10.0" width="40.0" height="20.0"`) {
		t.Errorf("near block misplaced:\n%s", out)
	}

	withAnchors := string(RenderSVG(l, WithAnchors()))
	if !strings.Contains(withAnchors, `id="block-root"`) || !strings.Contains(withAnchors, "stroke-dasharray") {
		t.Error("WithAnchors should draw dashed anchors")
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	out := string(RenderSVG(&scene.Layout{}))
	if !strings.Contains(out, "</svg>") {
		t.Errorf("empty layout = %s", out)
	}
}
