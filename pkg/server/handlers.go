package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/hustlemode/coach/pkg/domain"
)

// messageRequest is the inbound payload for both message endpoints.
type messageRequest struct {
	UserID  string         `json:"user_id"`
	Channel domain.Channel `json:"channel"`
	Message string         `json:"message"`
	Context string         `json:"context,omitempty"`
}

func (m *messageRequest) validate() error {
	if m.UserID == "" {
		return errors.New("user_id is required")
	}
	if m.Message == "" {
		return errors.New("message is required")
	}
	if m.Channel == "" {
		m.Channel = domain.ChannelAPI
	}
	return nil
}

// --- Messages ---

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err)
		return
	}

	resp := s.pipeline.Respond(r.Context(), req.Message, req.UserID, req.Channel, req.Context)
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err)
		return
	}
	if err := req.validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err)
		return
	}

	analysis := s.pipeline.AnalyzeMessageForTools(r.Context(), req.Message, req.UserID, req.Channel, req.Context)
	s.jsonResponse(w, http.StatusOK, analysis)
}

// --- Tools ---

func (s *Server) handleExecuteTool(w http.ResponseWriter, r *http.Request) {
	var inv domain.ToolInvocation
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err)
		return
	}
	if inv.UserID == "" {
		s.errorResponse(w, http.StatusBadRequest, fmt.Errorf("user_id is required"))
		return
	}
	if inv.Channel == "" {
		inv.Channel = domain.ChannelAPI
	}

	// The executor contains failures into the result itself.
	result := s.pipeline.ExecuteTool(r.Context(), inv)
	s.jsonResponse(w, http.StatusOK, result)
}

// --- User state ---

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	goals, err := s.goals.ListActive(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, goals)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	prefs, err := s.prefs.GetPreferences(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, prefs)
}

func (s *Server) handleListCheckIns(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	checkIns, err := s.checkins.ListCheckIns(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, checkIns)
}
