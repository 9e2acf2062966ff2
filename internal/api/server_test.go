package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridspace/pkg/cache"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/observability"
	"github.com/matzehuels/gridspace/pkg/pipeline"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/store"
)

const streamBody = `{
  "scene": {
    "additions": [
      {"name": "a.go", "width": 40, "height": 20, "depth": 2},
      {"name": "b.go", "width": 20, "height": 20, "depth": 2}
    ]
  },
  "formats": ["json", "svg"]
}`

const treeBody = `{
  "scene": {
    "root": {
      "anchor": {"name": "root", "width": 10, "height": 10, "depth": 1},
      "blocks": [{"name": "x", "width": 30, "height": 10, "depth": 1}]
    }
  }
}`

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	logger := log.New(io.Discard)
	st := store.NewMemoryStore()
	srv := New(Config{
		Runner: pipeline.NewRunner(cache.NewNullCache(), nil, logger),
		Store:  st,
		Logger: logger,
	})
	return srv, st
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decode[map[string]any](t, rec)["status"]; got != "ok" {
		t.Errorf("status field = %v, want ok", got)
	}
}

func TestCreateAndGetLayout(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/v1/layouts", streamBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	created := decode[LayoutResponse](t, rec)
	if created.ID == "" {
		t.Fatal("created layout has no id")
	}
	if created.Layout.Mode != scene.ModeStream {
		t.Errorf("mode = %q, want stream", created.Layout.Mode)
	}
	if len(created.Layout.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2", len(created.Layout.Blocks))
	}
	if len(created.Layout.Edges) != 2 {
		t.Errorf("edges = %d, want 2 (one Right/Left pair)", len(created.Layout.Edges))
	}
	if !strings.HasPrefix(created.Artifacts["svg"], "<svg") {
		t.Errorf("svg artifact missing or malformed: %.40q", created.Artifacts["svg"])
	}
	if _, ok := created.Artifacts["json"]; ok {
		t.Error("json artifact should not be duplicated into artifacts")
	}

	if _, err := st.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("layout not stored: %v", err)
	}

	rec = do(t, srv, http.MethodGet, "/v1/layouts/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}
	got := decode[LayoutResponse](t, rec)
	if got.ID != created.ID || len(got.Layout.Blocks) != 2 {
		t.Errorf("GET returned %s with %d blocks", got.ID, len(got.Layout.Blocks))
	}
}

func TestCreateTreeLayout(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodPost, "/v1/layouts", treeBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
	}
	resp := decode[LayoutResponse](t, rec)
	if resp.Layout.Mode != scene.ModeTree {
		t.Errorf("mode = %q, want tree", resp.Layout.Mode)
	}
	if len(resp.Layout.Blocks) != 2 {
		t.Errorf("blocks = %d, want anchor plus one block", len(resp.Layout.Blocks))
	}
}

func TestCreateLayoutConfigOverride(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		wantGap float64
	}{
		{"omitted", "", config.DefaultHorizontalGap},
		{"null", `, "config": null`, config.DefaultHorizontalGap},
		{"partial", `, "config": {"horizontal_gap": 8}`, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			body := `{"scene": {"additions": [` +
				`{"name": "a", "width": 40, "height": 20, "depth": 2},` +
				`{"name": "b", "width": 20, "height": 20, "depth": 2}]}` + tt.config + `}`
			rec := do(t, srv, http.MethodPost, "/v1/layouts", body)
			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d, want 201 (body %s)", rec.Code, rec.Body.String())
			}
			l := decode[LayoutResponse](t, rec).Layout
			if l.Config.HorizontalGap != tt.wantGap {
				t.Errorf("horizontal_gap = %v, want %v", l.Config.HorizontalGap, tt.wantGap)
			}
			if l.Config.RowBreakCount != config.DefaultRowBreakCount {
				t.Errorf("row_break_count = %d, want default %d", l.Config.RowBreakCount, config.DefaultRowBreakCount)
			}
			first, second := l.Blocks[0].Bounds, l.Blocks[1].Bounds
			if second.Leading < first.Leading {
				first, second = second, first
			}
			if gap := second.Leading - first.Trailing; gap != tt.wantGap {
				t.Errorf("gap between blocks = %v, want %v", gap, tt.wantGap)
			}
		})
	}
}

func TestCreateLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"malformed json", `{`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"scene": {}, "extra": 1}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"missing scene", `{}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"negative width", `{"scene": {"additions": [{"name": "a", "width": -1, "height": 1, "depth": 1}]}}`,
			http.StatusBadRequest, errors.ErrCodeInvalidScene},
		{"bad format", `{"scene": {"additions": []}, "formats": ["png"]}`, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad config", `{"scene": {}, "config": {"row_break_count": 0, "max_row_width": 10}}`,
			http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"graph of a tree", `{"scene": {"root": {"anchor": {"name": "r", "width": 1, "height": 1, "depth": 1}}}, "formats": ["dot"]}`,
			http.StatusUnprocessableEntity, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t)
			rec := do(t, srv, http.MethodPost, "/v1/layouts", tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := decode[ErrorResponse](t, rec); got.Code != tt.code {
				t.Errorf("code = %s, want %s", got.Code, tt.code)
			}
		})
	}
}

func TestGetLayoutErrors(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/v1/layouts/not-an-id", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id: status = %d, want 400", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/v1/layouts/"+strings.Repeat("ab", 16), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Code != errors.ErrCodeNotFound {
		t.Errorf("unknown id: code = %s, want NOT_FOUND", got.Code)
	}
}

func TestDeleteLayout(t *testing.T) {
	srv, st := newTestServer(t)
	l := &scene.Layout{Mode: scene.ModeStream}
	if err := st.Save(context.Background(), l); err != nil {
		t.Fatal(err)
	}

	if rec := do(t, srv, http.MethodDelete, "/v1/layouts/"+l.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", rec.Code)
	}
	if rec := do(t, srv, http.MethodDelete, "/v1/layouts/"+l.ID, ""); rec.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", rec.Code)
	}
}

func TestListLayouts(t *testing.T) {
	srv, st := newTestServer(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		l := &scene.Layout{Mode: scene.ModeStream, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if err := st.Save(context.Background(), l); err != nil {
			t.Fatal(err)
		}
	}

	rec := do(t, srv, http.MethodGet, "/v1/layouts?limit=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decode[ListResponse](t, rec)
	if resp.Total != 2 || len(resp.Layouts) != 2 {
		t.Fatalf("got %d layouts (total %d), want 2", len(resp.Layouts), resp.Total)
	}
	if !resp.Layouts[0].CreatedAt.After(resp.Layouts[1].CreatedAt) {
		t.Error("layouts are not newest first")
	}

	for _, bad := range []string{"0", "-1", "x"} {
		if rec := do(t, srv, http.MethodGet, "/v1/layouts?limit="+bad, ""); rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeInvalidScene, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeNotFound, "x"), http.StatusNotFound},
		{fmt.Errorf("get: %w", store.ErrNotFound), http.StatusNotFound},
		{errors.New(errors.ErrCodeUnsupported, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeUnavailable, "x"), http.StatusServiceUnavailable},
		{fmt.Errorf("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusCode(tt.err); got != tt.want {
			t.Errorf("StatusCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	responses []string
	errors    int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, fmt.Sprintf("%s %s %d", method, route, status))
}

func (h *recordingHTTPHooks) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHooksMiddleware(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	srv, _ := newTestServer(t)
	do(t, srv, http.MethodGet, "/healthz", "")
	do(t, srv, http.MethodGet, "/v1/layouts/"+strings.Repeat("cd", 16), "")

	want := []string{
		"GET /healthz 200",
		"GET /v1/layouts/{id} 404",
	}
	if len(hooks.responses) != len(want) {
		t.Fatalf("responses = %v, want %v", hooks.responses, want)
	}
	for i := range want {
		if hooks.responses[i] != want[i] {
			t.Errorf("response[%d] = %q, want %q", i, hooks.responses[i], want[i])
		}
	}
	if hooks.errors != 1 {
		t.Errorf("errors = %d, want 1", hooks.errors)
	}
}
