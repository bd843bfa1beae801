// Package server exposes stored CogSNet runs over a JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cogsnet/cogsnet/internal/store"
)

// Server is the cogsnet HTTP API server.
type Server struct {
	db      *store.DB
	router  chi.Router
	version string
	started time.Time
}

// New creates a new Server with the given database and version string.
func New(db *store.DB, version string) *Server {
	s := &Server{
		db:      db,
		version: version,
		started: time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
		r.Get("/runs/{runID}/snapshots/{idx}", s.handleGetSnapshot)
		r.Delete("/runs/{runID}", s.handleDeleteRun)
	})

	s.router = r
}
