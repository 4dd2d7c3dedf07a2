package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sikkerchat/config"
	"sikkerchat/handlers"
	"sikkerchat/middleware"
	"sikkerchat/models"
	"sikkerchat/repository"
	"sikkerchat/services"
	"sikkerchat/storage"
	"sikkerchat/ws"
)

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// checkCollections fails fast on corrupted persisted state. A missing file
// is fine (empty collection); a file that will not parse is not.
func checkCollections(store *storage.FileStore) error {
	var users []models.User
	if err := store.Load("users", &users); err != nil {
		return err
	}
	var msgs []models.Message
	if err := store.Load("messages", &msgs); err != nil {
		return err
	}
	var rooms []string
	return store.Load("rooms", &rooms)
}

func main() {
	cfg := config.Load()
	logger := newLogger(cfg.LogLevel)

	logger.Info("starting sikkerchat server",
		"port", cfg.Port, "data_dir", cfg.DataDir, "auth_required", cfg.AuthRequired)

	// --- persistence ---
	store := storage.NewFileStore(cfg.DataDir)
	if err := checkCollections(store); err != nil {
		logger.Error("persisted state is corrupted", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewFileUserRepo(store)
	messageRepo := repository.NewFileMessageRepo(store)
	roomRepo := repository.NewFileRoomRepo(store)

	// --- websocket hub ---
	hub := ws.NewHub(logger)
	go hub.Run()

	// --- services ---
	authSvc := services.NewAuthService(userRepo, &cfg)
	msgSvc := services.NewMessageService(messageRepo, hub)
	roomSvc := services.NewRoomService(roomRepo, messageRepo)

	// --- handlers ---
	authH := handlers.NewAuthHandler(authSvc, logger)
	msgH := handlers.NewMessageHandler(msgSvc, logger)
	roomH := handlers.NewRoomHandler(roomSvc, logger)
	wsH := handlers.NewWSHandler(hub, authSvc, msgSvc, logger)

	// the message endpoints are gated by composition: wrap handler with the
	// auth middleware when the gate is on, pass through untouched otherwise
	gate := func(h http.Handler) http.Handler { return h }
	if cfg.AuthRequired {
		gate = middleware.Auth(logger, authSvc)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("POST /register", authH.Register)
	mux.HandleFunc("POST /login", authH.Login)
	mux.Handle("GET /messages", gate(http.HandlerFunc(msgH.List)))
	mux.Handle("POST /messages", gate(http.HandlerFunc(msgH.Create)))
	mux.HandleFunc("GET /rooms", roomH.List)
	mux.HandleFunc("POST /rooms", roomH.Create)
	mux.HandleFunc("GET /ws", wsH.Serve)

	handler := middleware.CORS(
		middleware.RequestID(
			middleware.Logging(logger)(
				middleware.Recovery(logger)(mux))))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server exited")
}
