package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sikkerchat/repository"
	"sikkerchat/services"
)

type RoomHandler struct {
	svc    *services.RoomService
	logger *slog.Logger
}

func NewRoomHandler(s *services.RoomService, logger *slog.Logger) *RoomHandler {
	return &RoomHandler{svc: s, logger: logger}
}

// List returns every known room name, sorted: the explicit registry merged
// with rooms seen on stored messages.
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.svc.List()
	if err != nil {
		h.logger.Error("listing rooms failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load rooms")
		return
	}
	respondJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room string `json:"room"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	name, err := h.svc.Create(req.Room)
	switch {
	case errors.Is(err, services.ErrMissingRoomName):
		respondError(w, http.StatusBadRequest, "Missing room name")
	case errors.Is(err, repository.ErrRoomExists):
		respondError(w, http.StatusConflict, "Room already exists")
	case err != nil:
		h.logger.Error("creating room failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create room")
	default:
		h.logger.Info("room created", "room", name)
		respondMessage(w, http.StatusCreated, "Room created")
	}
}
