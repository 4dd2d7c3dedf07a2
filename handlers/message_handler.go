package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"sikkerchat/middleware"
	"sikkerchat/services"
)

type MessageHandler struct {
	svc    *services.MessageService
	logger *slog.Logger
}

func NewMessageHandler(s *services.MessageService, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{svc: s, logger: logger}
}

// List returns all stored messages in append order, optionally narrowed to
// one room via ?room=.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	room := r.URL.Query().Get("room")

	msgs, err := h.svc.List(room)
	if err != nil {
		h.logger.Error("listing messages failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load messages")
		return
	}
	respondJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sender     string `json:"sender"`
		Ciphertext string `json:"ciphertext"`
		Room       string `json:"room"`
	}
	// every field is optional, so an empty body is fine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// when the gate is on the author comes from the verified token, not
	// from whatever sender the client claims
	author, _ := middleware.UsernameFromContext(r.Context())

	if _, err := h.svc.Append(req.Sender, req.Ciphertext, req.Room, author); err != nil {
		h.logger.Error("storing message failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to store message")
		return
	}
	respondMessage(w, http.StatusCreated, "Message stored!")
}
