package cli

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestCacheDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(envCacheDir, dir)

	if got := cacheDir(); got != dir {
		t.Errorf("cacheDir() = %q, want %q", got, dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CACHE_HOME is only consulted on Linux")
	}
	xdg := t.TempDir()
	t.Setenv(envCacheDir, "")
	t.Setenv("XDG_CACHE_HOME", xdg)

	if got, want := cacheDir(), filepath.Join(xdg, appName); got != want {
		t.Errorf("cacheDir() = %q, want %q", got, want)
	}
}

func TestStoreDir(t *testing.T) {
	t.Setenv(envStoreDir, "")
	if got := storeDir(); got != "" {
		t.Errorf("storeDir() = %q, want empty for the store default", got)
	}

	t.Setenv(envStoreDir, "/tmp/layouts")
	if got := storeDir(); got != "/tmp/layouts" {
		t.Errorf("storeDir() = %q, want /tmp/layouts", got)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  string
		formats []string
		want    map[string]string
	}{
		{
			name:    "default json next to input",
			input:   "scenes/a.json",
			formats: []string{"json"},
			want:    map[string]string{"json": "scenes/a.layout.json"},
		},
		{
			name:    "single format uses output as is",
			input:   "a.json",
			output:  "out/front.svg",
			formats: []string{"svg"},
			want:    map[string]string{"svg": "out/front.svg"},
		},
		{
			name:    "several formats share a base",
			input:   "a.json",
			output:  "out/result.json",
			formats: []string{"json", "svg", "dot", "graph.svg"},
			want: map[string]string{
				"json":      "out/result.layout.json",
				"svg":       "out/result.svg",
				"dot":       "out/result.dot",
				"graph.svg": "out/result.graph.svg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.input, tt.output, tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"json"}},
		{"svg", []string{"svg"}},
		{"json, svg,dot", []string{"json", "svg", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
