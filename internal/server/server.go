package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/me/patrol/internal/config"
	"github.com/me/patrol/internal/reconciler"
	"github.com/me/patrol/internal/store"
)

// Server is the patrol REST API server. Every job mutation goes
// through the reconciler; the store is only touched directly for
// health checks.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	rec       *reconciler.Reconciler
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, rec *reconciler.Reconciler, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		rec:       rec,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// Operational endpoints
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Job control surface
	r.Get("/jobs", s.handleListJobs)
	r.Post("/jobs/{id}/start", s.handleStartJob)
	r.Post("/jobs/{id}/pause", s.handlePauseJob)
	r.Put("/jobs/{id}", s.handleUpdateJob)
	r.Delete("/jobs/{id}", s.handleDeleteJob)
}
