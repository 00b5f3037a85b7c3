package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"goaltracker/internal/api"
	"goaltracker/internal/auth"
	"goaltracker/internal/bot"
	"goaltracker/internal/config"
	"goaltracker/internal/database"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	config.LoadEnv()
	cfg := config.New()
	if cfg.SecretKey == "" {
		log.Error("environment variable SECRET_KEY is not set")
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("database error", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Error("migration error", "error", err)
		os.Exit(1)
	}
	log.Info("connected to database", "host", cfg.DBHost, "database", cfg.DBDatabase)

	store := database.NewStore(db)

	revoked, err := auth.NewRevokedTokens()
	if err != nil {
		log.Error("token cache error", "error", err)
		os.Exit(1)
	}

	// Without a bot token the verify endpoint still links accounts, it
	// just skips the chat confirmation.
	var tg bot.Client
	if cfg.BotToken != "" {
		client, err := bot.NewAPIClient(cfg.BotToken)
		if err != nil {
			log.Error("telegram client error", "error", err)
			os.Exit(1)
		}
		tg = client
	}

	handler := api.New(store, log, []byte(cfg.SecretKey), revoked, tg)
	server := http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: handler.Router(),
	}

	go func() {
		log.Info("listening", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
