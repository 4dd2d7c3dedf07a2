package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"sikkerchat/config"
	"sikkerchat/middleware"
	"sikkerchat/repository"
	"sikkerchat/services"
	"sikkerchat/storage"
)

type testEnv struct {
	mux     *http.ServeMux
	store   *storage.FileStore
	authSvc *services.AuthService
	msgSvc  *services.MessageService
}

// newTestEnv wires the routes the way cmd/server does, against a throwaway
// data directory.
func newTestEnv(t *testing.T, authRequired bool) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewFileStore(t.TempDir())
	cfg := config.Config{JWTSecret: "test-secret", TokenTTL: 3600, AuthRequired: authRequired}

	userRepo := repository.NewFileUserRepo(store)
	messageRepo := repository.NewFileMessageRepo(store)
	roomRepo := repository.NewFileRoomRepo(store)

	authSvc := services.NewAuthService(userRepo, &cfg)
	msgSvc := services.NewMessageService(messageRepo, nil)
	roomSvc := services.NewRoomService(roomRepo, messageRepo)

	authH := NewAuthHandler(authSvc, logger)
	msgH := NewMessageHandler(msgSvc, logger)
	roomH := NewRoomHandler(roomSvc, logger)

	gate := func(h http.Handler) http.Handler { return h }
	if cfg.AuthRequired {
		gate = middleware.Auth(logger, authSvc)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", authH.Register)
	mux.HandleFunc("POST /login", authH.Login)
	mux.Handle("GET /messages", gate(http.HandlerFunc(msgH.List)))
	mux.Handle("POST /messages", gate(http.HandlerFunc(msgH.Create)))
	mux.HandleFunc("GET /rooms", roomH.List)
	mux.HandleFunc("POST /rooms", roomH.Create)

	return &testEnv{mux: mux, store: store, authSvc: authSvc, msgSvc: msgSvc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
