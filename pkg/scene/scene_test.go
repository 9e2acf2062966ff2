package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridspace/pkg/block"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/pack"
	"github.com/matzehuels/gridspace/pkg/spatial"
)

const streamJSON = `{
  "additions": [
    {"name": "big.go", "width": 40, "height": 40, "depth": 2},
    {"name": "small.go", "width": 10, "height": 10, "depth": 2}
  ],
  "missing": [
    {"name": "old.go", "width": 5, "height": 5, "depth": 1}
  ]
}`

func TestReadSceneStream(t *testing.T) {
	s, err := ReadScene(strings.NewReader(streamJSON))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}
	if s.Mode() != ModeStream {
		t.Errorf("Mode() = %v, want %v", s.Mode(), ModeStream)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}

	additions, missing, err := s.Stream()
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	got := block.Names(additions)
	if len(got) != 2 || got[0] != "small.go" || got[1] != "big.go" {
		t.Errorf("additions = %v, want sorted by size", got)
	}
	if len(missing) != 1 || missing[0].Bounds().Width() != 5 {
		t.Errorf("missing = %v", block.Names(missing))
	}
}

func TestReadSceneTree(t *testing.T) {
	in := `{"root": {
		"anchor": {"name": "src", "width": 1, "height": 1, "depth": 1},
		"blocks": [{"name": "a.go", "width": 4, "height": 2, "depth": 1}],
		"groups": [{"anchor": {"name": "src/pkg", "width": 1, "height": 1, "depth": 1},
		            "blocks": [{"name": "b.go", "width": 4, "height": 2, "depth": 1}]}]
	}}`
	s, err := UnmarshalScene([]byte(in))
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}
	if s.Mode() != ModeTree || s.Len() != 4 {
		t.Errorf("Mode() = %v, Len() = %d", s.Mode(), s.Len())
	}
	g, err := s.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	if g.Anchor.Name() != "src" || len(g.Groups) != 1 || g.Groups[0].Blocks[0].Name() != "b.go" {
		t.Errorf("unexpected tree %+v", g)
	}
	if _, _, err := s.Stream(); !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("Stream() on a tree: err = %v", err)
	}
}

func TestSceneValidation(t *testing.T) {
	const id = "0b8f3c1e-4d5a-4c3b-9a2f-1e2d3c4b5a69"
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed json", `{"additions": [`, errors.ErrCodeInvalidFormat},
		{"unknown field", `{"additions": [{"name": "a", "widht": 1}]}`, errors.ErrCodeInvalidFormat},
		{"empty name", `{"additions": [{"name": "", "width": 1, "height": 1, "depth": 1}]}`, errors.ErrCodeInvalidScene},
		{"negative width", `{"additions": [{"name": "a", "width": -1, "height": 1, "depth": 1}]}`, errors.ErrCodeInvalidScene},
		{"duplicate name", `{"additions": [{"name": "a", "width": 1, "height": 1, "depth": 1}],
		                     "missing": [{"name": "a", "width": 2, "height": 1, "depth": 1}]}`, errors.ErrCodeInvalidScene},
		{"duplicate id", `{"additions": [{"id": "` + id + `", "name": "a", "width": 1, "height": 1, "depth": 1},
		                                 {"id": "` + id + `", "name": "b", "width": 1, "height": 1, "depth": 1}]}`, errors.ErrCodeInvalidScene},
		{"bad id", `{"additions": [{"id": "nope", "name": "a", "width": 1, "height": 1, "depth": 1}]}`, errors.ErrCodeInvalidScene},
		{"stream and tree", `{"additions": [{"name": "a", "width": 1, "height": 1, "depth": 1}],
		                      "root": {"anchor": {"name": "r", "width": 1, "height": 1, "depth": 1}}}`, errors.ErrCodeInvalidScene},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalScene([]byte(tt.in))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestEmptySceneIsValid(t *testing.T) {
	s, err := UnmarshalScene([]byte(`{}`))
	if err != nil {
		t.Fatalf("UnmarshalScene: %v", err)
	}
	additions, missing, err := s.Stream()
	if err != nil || len(additions) != 0 || len(missing) != 0 {
		t.Errorf("Stream() = %v, %v, %v", additions, missing, err)
	}
}

func TestExplicitIDsAreKept(t *testing.T) {
	const id = "0b8f3c1e-4d5a-4c3b-9a2f-1e2d3c4b5a69"
	spec := BlockSpec{ID: id, Name: "a", Width: 1, Height: 1, Depth: 1}
	if got := spec.Box().ID().String(); got != id {
		t.Errorf("ID = %s, want %s", got, id)
	}
	named := BlockSpec{Name: "a", Width: 1, Height: 1, Depth: 1}
	if named.Box().ID() != block.IDFromName("a") {
		t.Error("unnamed id should derive from the block name")
	}
}

func TestLayoutGraphRoundTrip(t *testing.T) {
	a := block.NewBox(block.Nil, "a", 10, 10, 1)
	b := block.NewBox(block.Nil, "b", 10, 10, 1)
	block.MoveTo(b, 42, 0, 0)
	g := spatial.New()
	g.ConnectWithInverses(a, spatial.Right, b)

	l := FromStream(config.Default(), []block.Block{a, b}, g)
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf); err != nil {
		t.Fatalf("WriteLayout: %v", err)
	}
	if !strings.Contains(buf.String(), `"direction": "right"`) {
		t.Errorf("directions should be encoded by name:\n%s", buf.String())
	}

	back, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout: %v", err)
	}
	g2, blocks, err := back.Graph()
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if len(blocks) != 2 || blocks[1].Bounds() != b.Bounds() {
		t.Errorf("blocks = %v", blocks)
	}
	right := g2.RelationsIn(blocks[0], spatial.Right)
	if len(right) != 1 || right[0].Name() != "b" {
		t.Errorf("right of a = %v", block.Names(right))
	}
	if len(g2.Edges()) != 2 {
		t.Errorf("edges = %d, want 2", len(g2.Edges()))
	}
}

func TestLayoutGraphUnknownEdge(t *testing.T) {
	l := &Layout{Edges: []EdgeSpec{{From: "x", Direction: spatial.Up, To: "y"}}}
	if _, _, err := l.Graph(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want %v", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFromPlacements(t *testing.T) {
	root := pack.NewGroup(block.NewBox(block.Nil, "root", 1, 1, 1))
	root.Add(block.NewBox(block.Nil, "leaf", 3, 3, 1))
	pack.New(config.Default()).ApplyAllConstraints(root, 0)

	l := FromPlacements(config.Default(), pack.Flatten(root))
	if l.Mode != ModeTree || len(l.Blocks) != 2 {
		t.Fatalf("layout = %+v", l)
	}
	leaf := l.Blocks[1]
	if leaf.Parent != root.Anchor.ID().String() || leaf.Depth != 1 || leaf.Anchor {
		t.Errorf("leaf = %+v", leaf)
	}
	if ext := l.Extent(); ext.Width() != 3 {
		t.Errorf("extent width = %v, want 3", ext.Width())
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")

	l := &Layout{ID: "abc", Mode: ModeStream}
	if err := ExportLayout(l, path); err != nil {
		t.Fatalf("ExportLayout: %v", err)
	}
	got, err := ImportLayout(path)
	if err != nil {
		t.Fatalf("ImportLayout: %v", err)
	}
	if got.ID != "abc" || got.Mode != ModeStream {
		t.Errorf("ImportLayout = %+v", got)
	}

	scenePath := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(scenePath, []byte(streamJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportScene(scenePath); err != nil {
		t.Errorf("ImportScene: %v", err)
	}
	if _, err := ImportScene(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportScene(missing) err = %v", err)
	}
}
