// Package server provides the HTTP surface of the gallery daemon: the
// media API, the camera preview stream, and the WebSocket state feed the
// browser overlay renders from.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/capture"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/server/api"
	"github.com/FreyaWang0323/2025-Annual-Memory-Month/internal/store"
)

// Config holds the server configuration. Nil fields disable their routes,
// which keeps tests free to stand up only the parts they need.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	State     StateSource
}

// Server is the HTTP server for the gallery daemon.
type Server struct {
	config Config
	mux    *http.ServeMux
	state  *StateHandler
	start  time.Time
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		mediaHandler := api.NewMediaHandler(s.config.Store)
		s.mux.Handle("/api/media", mediaHandler)
		s.mux.Handle("/api/media/", mediaHandler)

		settingsHandler := api.NewSettingsHandler(s.config.Store)
		s.mux.Handle("/api/settings", settingsHandler)
		s.mux.Handle("/api/settings/", settingsHandler)
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.State != nil {
		s.state = NewStateHandler(s.config.State)
		s.mux.Handle("/api/state", s.state)
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// State returns the WebSocket state handler, or nil when no StateSource
// was configured. The pipeline uses it to forward synthetic input events.
func (s *Server) State() *StateHandler {
	return s.state
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
