package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/store"
)

const testScene = `{
  "additions": [
    {"name": "a.go", "width": 40, "height": 20, "depth": 2},
    {"name": "b.go", "width": 30, "height": 20, "depth": 2},
    {"name": "c.go", "width": 20, "height": 20, "depth": 2}
  ]
}`

// testEnv points the cache and the store at fresh temp directories.
func testEnv(t *testing.T) (cacheDir, storeDir string) {
	t.Helper()
	cacheDir, storeDir = t.TempDir(), t.TempDir()
	t.Setenv(envCacheDir, cacheDir)
	t.Setenv(envStoreDir, storeDir)
	return cacheDir, storeDir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	for _, name := range []string{"layout", "graph", "navigate", "serve", "cache", "config", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestLayoutCommand(t *testing.T) {
	_, storeDir := testEnv(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", testScene)
	base := filepath.Join(dir, "out", "result")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "layout", input, "-f", "json,svg,dot", "-o", base, "--save")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	for _, want := range []string{"Layout complete (stream)", base + ".svg", "3 blocks", "saved as", "navigate " + base + ".layout.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("layout output is missing %q:\n%s", want, out)
		}
	}

	l, err := scene.ImportLayout(base + ".layout.json")
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Mode != scene.ModeStream || len(l.Blocks) != 3 {
		t.Errorf("layout = %s with %d blocks, want stream with 3", l.Mode, len(l.Blocks))
	}
	if len(l.Edges) != 4 {
		t.Errorf("edges = %d, want 4 (two Right/Left pairs)", len(l.Edges))
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil || !bytes.HasPrefix(svg, []byte("<svg")) {
		t.Errorf("svg output missing or malformed: %v", err)
	}
	dot, err := os.ReadFile(base + ".dot")
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph G {")) {
		t.Errorf("dot output missing or malformed: %v", err)
	}

	st, err := store.NewFileStore(storeDir)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := st.List(context.Background(), 0)
	if err != nil || len(saved) != 1 {
		t.Fatalf("saved layouts = %d (err %v), want 1", len(saved), err)
	}

	got, err := loadLayoutRef(context.Background(), saved[0].ID)
	if err != nil {
		t.Fatalf("loadLayoutRef(id): %v", err)
	}
	if len(got.Blocks) != 3 {
		t.Errorf("saved layout has %d blocks, want 3", len(got.Blocks))
	}
}

func TestLayoutCommandErrors(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()

	_, err := runCLI(t, "layout", filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing scene: err = %v, want FILE_NOT_FOUND", err)
	}

	bad := writeFile(t, dir, "bad.json", `{"additions": [{"name": "x", "width": -1, "height": 1, "depth": 1}]}`)
	_, err = runCLI(t, "layout", bad, "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidScene) {
		t.Errorf("invalid scene: err = %v, want INVALID_SCENE", err)
	}

	good := writeFile(t, dir, "good.json", testScene)
	_, err = runCLI(t, "layout", good, "-f", "png")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: err = %v, want INVALID_FORMAT", err)
	}

	cfg := writeFile(t, dir, "bad.toml", "row_break_count = 0\n")
	_, err = runCLI(t, "layout", good, "-c", cfg)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("bad config: err = %v, want INVALID_CONFIG", err)
	}
}

func TestGraphCommand(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()
	input := writeFile(t, dir, "scene.json", testScene)
	if _, err := runCLI(t, "layout", input); err != nil {
		t.Fatalf("layout: %v", err)
	}

	out := filepath.Join(dir, "graph.dot")
	if _, err := runCLI(t, "graph", filepath.Join(dir, "scene.layout.json"), "-o", out, "--all-edges"); err != nil {
		t.Fatalf("graph: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "->"); got != 4 {
		t.Errorf("--all-edges drew %d edges, want 4", got)
	}

	stdout, err := runCLI(t, "graph", filepath.Join(dir, "scene.layout.json"))
	if err != nil {
		t.Fatalf("graph to stdout: %v", err)
	}
	if !strings.HasPrefix(stdout, "digraph G {") || strings.Count(stdout, "->") != 2 {
		t.Errorf("graph without -o should print one edge per pair:\n%s", stdout)
	}
}

func TestLoadLayoutRefFile(t *testing.T) {
	testEnv(t)
	if _, err := loadLayoutRef(context.Background(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("loadLayoutRef of a missing file should fail")
	}
	if _, err := loadLayoutRef(context.Background(), strings.Repeat("ab", 16)); err == nil {
		t.Error("loadLayoutRef of an unknown id should fail")
	}
}

func TestConfigInit(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "gridspace.toml")

	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg != config.Default() {
		t.Errorf("written config = %+v, want defaults", cfg)
	}

	_, err = runCLI(t, "config", "init", path)
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init: err = %v, want INVALID_PATH", err)
	}
	if _, err := runCLI(t, "config", "init", path, "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := runCLI(t, "config", "init")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "horizontal_gap") {
		t.Errorf("config init to stdout = %q, want TOML", out)
	}
}

func TestCompletion(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should be rejected")
	}
}
