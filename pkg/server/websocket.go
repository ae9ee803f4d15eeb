package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/hustlemode/coach/pkg/domain"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleChatWebSocket runs a chat session: each inbound frame is one user
// message, each outbound frame the formatted reply.
func (s *Server) handleChatWebSocket(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		http.Error(w, "Missing user ID", http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err)
		return
	}
	defer ws.Close()

	// Rolling context of the last few turns, oldest dropped first.
	var history string

	for {
		var msg struct {
			Message string         `json:"message"`
			Channel domain.Channel `json:"channel"`
		}
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				break
			}
			slog.Error("WebSocket read error", "error", err)
			break
		}
		if msg.Message == "" {
			continue
		}
		if msg.Channel == "" {
			msg.Channel = domain.ChannelAPI
		}

		resp := s.pipeline.Respond(r.Context(), msg.Message, userID, msg.Channel, history)
		history = appendHistory(history, msg.Message, resp.Text)

		if err := ws.WriteJSON(resp); err != nil {
			slog.Error("WebSocket write error", "error", err)
			break
		}
	}
}

const maxHistory = 2000

func appendHistory(history, userMsg, reply string) string {
	history = history + "\nUser: " + userMsg + "\nCoach: " + reply
	if len(history) > maxHistory {
		history = history[len(history)-maxHistory:]
	}
	return history
}
