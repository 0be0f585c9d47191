// Package server exposes the run-history ledger as a read-only JSON API.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/me/vinabatch/internal/config"
	"github.com/me/vinabatch/internal/store"
)

// Server serves past docking runs and their per-ligand outcomes.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServeConfig
	store     store.Store
	startTime time.Time
}

// New creates a Server with all routes registered.
func New(cfg config.ServeConfig, st store.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		store:     st,
		startTime: time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(tagRequestID)
	s.router.Use(logRequests(s.logger))

	s.router.Get("/healthz", s.handleHealth)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
		r.Get("/runs/{id}/outcomes", s.handleListOutcomes)
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
