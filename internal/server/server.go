// Package server exposes the primetree pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                 build information
//	GET /api/v1/tree             laid-out tree and fitted view as JSON
//	GET /api/v1/render.{format}  rendered artifact (svg, png, json, dot, dot-svg, txt)
//	GET /api/v1/hit?x=&y=        hit test against the rendered view
//
// Every route that builds a tree accepts the same query parameters; see
// [ParseOptions]. Input errors are answered with 400 and a JSON body of the
// form {"error": "...", "code": "INVALID_RANGE"}; everything else is a 500.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/primetree/pkg/pipeline"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Timeouts applied to the underlying http.Server.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Server serves the pipeline API.
type Server struct {
	runner   *pipeline.Runner
	logger   *log.Logger
	defaults pipeline.Options
}

// New creates a server. Query parameters override defaults per request.
func New(runner *pipeline.Runner, logger *log.Logger, defaults pipeline.Options) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger, defaults: defaults}
}

// Handler returns the routed handler with middleware attached.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(serverHeader)
	r.Use(s.logRequests)

	r.Get("/healthz", s.health)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tree", s.tree)
		r.Get("/render.{format}", s.render)
		r.Get("/hit", s.hit)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
