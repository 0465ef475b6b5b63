package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/resrv/backend/internal/domain"
)

// ChatMessageRequest is the body of POST /chat/sessions/{id}/messages.
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// ChatReplyResponse is returned when a session starts or receives a message.
// Filters is present only once Stage is "recommend".
type ChatReplyResponse struct {
	SessionID string           `json:"session_id"`
	Reply     string           `json:"reply"`
	Stage     domain.ChatStage `json:"stage"`
	Filters   *domain.Filters  `json:"filters,omitempty"`
}

// StartChat handles POST /chat/sessions.
func (s *Server) StartChat(w http.ResponseWriter, r *http.Request) {
	reply, err := s.chat.Start(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusCreated, chatReplyToResponse(reply))
}

// SendChatMessage handles POST /chat/sessions/{id}/messages.
func (s *Server) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var req ChatMessageRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	reply, err := s.chat.Message(r.Context(), chi.URLParam(r, "id"), req.Message)
	if err != nil {
		writeServiceError(r.Context(), w, err, "session not found")
		return
	}
	writeJSON(w, http.StatusOK, chatReplyToResponse(reply))
}

// ListChatMessages handles GET /chat/sessions/{id}/messages.
func (s *Server) ListChatMessages(w http.ResponseWriter, r *http.Request) {
	history, err := s.chat.History(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(r.Context(), w, err, "session not found")
		return
	}
	if history == nil {
		history = []domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, history)
}

// ResetChat handles DELETE /chat/sessions/{id}.
func (s *Server) ResetChat(w http.ResponseWriter, r *http.Request) {
	if err := s.chat.Reset(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(r.Context(), w, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func chatReplyToResponse(r domain.ChatReply) ChatReplyResponse {
	return ChatReplyResponse{
		SessionID: r.SessionID,
		Reply:     r.Reply,
		Stage:     r.Stage,
		Filters:   r.Filters,
	}
}
