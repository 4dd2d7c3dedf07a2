package handlers

import (
	"log/slog"
	"net/http"

	"sikkerchat/services"
	"sikkerchat/ws"
)

type WSHandler struct {
	hub     *ws.Hub
	authSvc *services.AuthService
	msgSvc  *services.MessageService
	logger  *slog.Logger
}

func NewWSHandler(h *ws.Hub, a *services.AuthService, m *services.MessageService, logger *slog.Logger) *WSHandler {
	return &WSHandler{hub: h, authSvc: a, msgSvc: m, logger: logger}
}

// Serve upgrades /ws?room=<name>&token=<jwt> to a live message feed. The
// token travels as a query parameter because browsers cannot set headers on
// WebSocket handshakes.
func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, http.StatusUnauthorized, "Missing token")
		return
	}
	username, err := h.authSvc.VerifyToken(token)
	if err != nil {
		h.logger.Warn("websocket token rejected", "error", err)
		respondError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	room := r.URL.Query().Get("room")
	if room == "" {
		room = services.DefaultRoom
	}

	h.hub.ServeWS(w, r, room, username, h.msgSvc)
}
