package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridspace/pkg/buildinfo"
	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/errors"
	"github.com/matzehuels/gridspace/pkg/observability"
	"github.com/matzehuels/gridspace/pkg/pipeline"
	"github.com/matzehuels/gridspace/pkg/scene"
	"github.com/matzehuels/gridspace/pkg/store"
)

// =============================================================================
// Wire Types
// =============================================================================

// CreateLayoutRequest is the body of POST /v1/layouts.
type CreateLayoutRequest struct {
	Scene json.RawMessage `json:"scene"`

	// Config overrides keys of the server's default layout config.
	Config *config.Config `json:"config,omitempty"`
	// Formats lists extra artifacts to render besides the layout itself.
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"`
	Refresh  bool     `json:"refresh,omitempty"`
}

// LayoutResponse is returned for a created or fetched layout.
type LayoutResponse struct {
	ID        string            `json:"id"`
	Layout    *scene.Layout     `json:"layout"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached,omitempty"`
}

// ListResponse is returned by GET /v1/layouts.
type ListResponse struct {
	Layouts []LayoutSummary `json:"layouts"`
	Total   int             `json:"total"`
}

// LayoutSummary describes a stored layout without its geometry.
type LayoutSummary struct {
	ID        string     `json:"id"`
	Mode      scene.Mode `json:"mode"`
	Blocks    int        `json:"blocks"`
	Edges     int        `json:"edges"`
	CreatedAt time.Time  `json:"created_at"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"time":    time.Now().Unix(),
	})
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	// Omitted config keys keep the server defaults.
	cfg := s.defaults
	req := CreateLayoutRequest{Config: &cfg}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(bytes.TrimSpace(req.Scene)) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "scene is required"))
		return
	}
	sc, err := scene.UnmarshalScene(req.Scene)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Config:   s.defaults,
		Formats:  req.Formats,
		Detailed: req.Detailed,
		Refresh:  req.Refresh,
	}
	if req.Config != nil {
		opts.Config = *req.Config
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{pipeline.FormatJSON}
	}

	result, err := s.runner.Execute(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	l := result.Layout
	if err := s.store.Save(r.Context(), l); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeUnavailable, err, "save layout"))
		return
	}

	artifacts := make(map[string]string, len(result.Artifacts))
	for format, data := range result.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		artifacts[format] = string(data)
	}

	s.logger.Debug("stored layout", "id", l.ID, "blocks", len(l.Blocks), "cached", result.CacheInfo.LayoutHit)
	writeJSON(w, http.StatusCreated, LayoutResponse{
		ID:        l.ID,
		Layout:    l,
		Artifacts: artifacts,
		Cached:    result.CacheInfo.LayoutHit,
	})
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateLayoutID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	l, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{ID: l.ID, Layout: l})
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateLayoutID(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "limit must be a positive integer (got %q)", v))
			return
		}
		limit = min(n, MaxListLimit)
	}

	layouts, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp := ListResponse{Layouts: make([]LayoutSummary, 0, len(layouts)), Total: len(layouts)}
	for _, l := range layouts {
		resp.Layouts = append(resp.Layouts, LayoutSummary{
			ID:        l.ID,
			Mode:      l.Mode,
			Blocks:    len(l.Blocks),
			Edges:     len(l.Edges),
			CreatedAt: l.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	route := r.URL.Path
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		route = rctx.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, route, err)

	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	switch {
	case stderrors.Is(err, store.ErrNotFound):
		code, msg = errors.ErrCodeNotFound, err.Error()
	case code == "":
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "route", route, "err", err)
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg})
}

// StatusCode maps an error to the HTTP status reported for it.
func StatusCode(err error) int {
	if stderrors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidScene, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
