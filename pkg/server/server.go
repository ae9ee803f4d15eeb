// Package server exposes the coaching pipeline over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/hustlemode/coach/pkg/pipeline"
	"github.com/hustlemode/coach/pkg/store"
)

// Server serves the REST API and chat WebSocket.
type Server struct {
	pipeline *pipeline.Pipeline
	goals    store.GoalStore
	prefs    store.PreferenceStore
	checkins store.CheckInStore
	srv      *http.Server
}

// New creates a new Server.
func New(
	p *pipeline.Pipeline,
	goals store.GoalStore,
	prefs store.PreferenceStore,
	checkins store.CheckInStore,
) *Server {
	return &Server{
		pipeline: p,
		goals:    goals,
		prefs:    prefs,
		checkins: checkins,
	}
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// Messages
	mux.HandleFunc("POST /api/messages", s.handleMessage)
	mux.HandleFunc("POST /api/messages/analyze", s.handleAnalyze)

	// Tools
	mux.HandleFunc("POST /api/tools/execute", s.handleExecuteTool)

	// User state
	mux.HandleFunc("GET /api/users/{id}/goals", s.handleListGoals)
	mux.HandleFunc("GET /api/users/{id}/preferences", s.handleGetPreferences)
	mux.HandleFunc("GET /api/users/{id}/check-ins", s.handleListCheckIns)

	// WebSocket
	mux.HandleFunc("/api/users/{id}/chat", s.handleChatWebSocket)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.srv = &http.Server{
		Addr:    addr,
		Handler: s.corsMiddleware(mux),
	}

	slog.Info("Starting server", "addr", addr)
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, err error) {
	slog.Error("API Error", "error", err)
	s.jsonResponse(w, status, map[string]string{"error": err.Error()})
}
