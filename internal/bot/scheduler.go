package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"goaltracker/internal/common"
	"goaltracker/internal/database"
)

// Scheduler sends a daily reminder for goals due today to the creators'
// linked chats.
type Scheduler struct {
	client Client
	store  *database.Store
	log    *slog.Logger
	hour   int
	minute int
}

func NewScheduler(client Client, store *database.Store, log *slog.Logger, hour, minute int) *Scheduler {
	return &Scheduler{
		client: client,
		store:  store,
		log:    log,
		hour:   hour,
		minute: minute,
	}
}

// Run waits for the next scheduled time, fires, and repeats until the
// context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), s.hour, s.minute, 0, 0, now.Location())
		if !now.Before(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		s.log.Info("next goal reminder scheduled", "at", nextRun)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(nextRun.Sub(now)):
		}

		s.sendReminders(ctx)
	}
}

func (s *Scheduler) sendReminders(ctx context.Context) {
	goals, err := s.store.ListGoalsDueOn(ctx, time.Now())
	if err != nil {
		s.log.Error("listing due goals failed", "error", err)
		return
	}

	for _, goal := range goals {
		tgUser, err := s.store.GetTgUserByUserID(ctx, goal.UserID)
		if errors.Is(err, common.ErrNotFound) {
			continue
		}
		if err != nil {
			s.log.Error("linked chat lookup failed", "user_id", goal.UserID, "error", err)
			continue
		}

		text := fmt.Sprintf("🔔 Сегодня срок выполнения цели: %s", goal.Title)
		if err := s.client.SendMessage(tgUser.TgChatID, text); err != nil {
			s.log.Error("reminder send failed", "chat_id", tgUser.TgChatID, "error", err)
		}
	}
}
