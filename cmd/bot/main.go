package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"goaltracker/internal/bot"
	"goaltracker/internal/config"
	"goaltracker/internal/database"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	config.LoadEnv()
	cfg := config.New()
	if cfg.BotToken == "" {
		log.Error("environment variable BOT_TOKEN is not set")
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
	store := database.NewStore(db)

	client, err := bot.NewAPIClient(cfg.BotToken)
	if err != nil {
		log.Error("telegram client error", "error", err)
		os.Exit(1)
	}
	log.Info("authorized", "account", client.Username())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Info("shutting down bot")
		cancel()
	}()

	scheduler := bot.NewScheduler(client, store, log, cfg.NotificationHour, cfg.NotificationMinute)
	go func() {
		if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("scheduler stopped", "error", err)
		}
	}()

	poller, err := bot.NewPoller(client, store, log, cfg.PollTimeout)
	if err != nil {
		log.Error("poller error", "error", err)
		os.Exit(1)
	}
	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("poller stopped", "error", err)
		os.Exit(1)
	}

	log.Info("bot stopped")
}
