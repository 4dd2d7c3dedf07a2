package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"sikkerchat/repository"
	"sikkerchat/services"
)

type AuthHandler struct {
	svc    *services.AuthService
	logger *slog.Logger
}

func NewAuthHandler(s *services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: s, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.svc.Register(req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingField):
		respondError(w, http.StatusBadRequest, "Missing username/password")
	case errors.Is(err, repository.ErrUserExists):
		respondError(w, http.StatusConflict, "User already exists")
	case err != nil:
		h.logger.Error("register failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Registration failed")
	default:
		h.logger.Info("user registered", "username", req.Username)
		respondMessage(w, http.StatusCreated, "User registered!")
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	token, err := h.svc.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrMissingField):
		respondError(w, http.StatusBadRequest, "Missing username/password")
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case err != nil:
		h.logger.Error("login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
	default:
		h.logger.Info("user logged in", "username", req.Username)
		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Login successful",
			"token":   token,
		})
	}
}
