// Package server exposes the session set and layout snapshots over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ha1tch/orbview/internal/config"
	"github.com/ha1tch/orbview/pkg/session"
)

// Server is the orbview HTTP API server.
type Server struct {
	st      *session.Store
	export  config.ExportConfig
	router  chi.Router
	version string
	started time.Time
}

// New creates a Server over the given store. The export config supplies
// snapshot defaults that query parameters may override.
func New(st *session.Store, export config.ExportConfig, version string) *Server {
	s := &Server{
		st:      st,
		export:  export,
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

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleAddSession)
		r.Delete("/sessions/{id}", s.handleRemoveSession)

		r.Get("/snapshot.png", s.handleSnapshotPNG)
		r.Get("/snapshot.svg", s.handleSnapshotSVG)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.st.Count()
	dbOK := err == nil

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"version":  s.version,
		"uptime":   time.Since(s.started).Seconds(),
		"db":       dbOK,
		"db_path":  s.st.Path,
		"sessions": count,
	})
}
