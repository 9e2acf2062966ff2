// Package api serves the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz
//	POST   /v1/layouts        compute a layout from a scene and store it
//	GET    /v1/layouts        list stored layouts, newest first
//	GET    /v1/layouts/{id}   fetch one stored layout
//	DELETE /v1/layouts/{id}   remove a stored layout
//
// Every request builds its own engine state through the pipeline runner, so
// handlers are safe to run concurrently.
package api

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridspace/pkg/config"
	"github.com/matzehuels/gridspace/pkg/pipeline"
	"github.com/matzehuels/gridspace/pkg/store"
)

// Limits applied to incoming requests.
const (
	MaxBodyBytes     = 8 << 20
	DefaultListLimit = 50
	MaxListLimit     = 500
	RequestTimeout   = 60 * time.Second
	ShutdownTimeout  = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	// Runner computes layouts. Required.
	Runner *pipeline.Runner
	// Store persists computed layouts. Required.
	Store store.Store
	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger
	// Defaults is the layout config used when a request carries none.
	Defaults config.Config
}

// Server is the HTTP front end of the layout pipeline.
type Server struct {
	runner   *pipeline.Runner
	store    store.Store
	logger   *log.Logger
	defaults config.Config
	router   chi.Router
}

// New creates a server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Defaults == (config.Config{}) {
		cfg.Defaults = config.Default()
	}
	s := &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		logger:   cfg.Logger,
		defaults: cfg.Defaults,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Get("/{id}", s.handleGetLayout)
		r.Delete("/{id}", s.handleDeleteLayout)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
