package bot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	lru "github.com/hashicorp/golang-lru/v2"
	"goaltracker/internal/database"
)

const (
	linkedCacheSize = 1000
	pollErrBackoff  = 3 * time.Second
)

// Poller drives the long-poll loop. Per chat the linking state machine is
// Unknown -> AwaitingVerification -> Linked: the first message from an
// unlinked chat gets a fresh verification code, a linked chat only gets a
// greeting. Delivery is at most once: the offset advances after each batch
// regardless of side-effect failures.
type Poller struct {
	client  Client
	store   *database.Store
	log     *slog.Logger
	timeout int
	offset  int

	// linked caches chats already attached to an account so repeat
	// messages skip the database lookup.
	linked *lru.Cache[int64, bool]
}

func NewPoller(client Client, store *database.Store, log *slog.Logger, timeout int) (*Poller, error) {
	linked, err := lru.New[int64, bool](linkedCacheSize)
	if err != nil {
		return nil, err
	}
	return &Poller{
		client:  client,
		store:   store,
		log:     log,
		timeout: timeout,
		linked:  linked,
	}, nil
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := p.client.GetUpdates(p.offset, p.timeout)
		if err != nil {
			p.log.Error("get updates failed", "offset", p.offset, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollErrBackoff):
			}
			continue
		}

		for _, update := range updates {
			if err := p.handleUpdate(ctx, update); err != nil {
				p.log.Error("update processing failed", "update_id", update.UpdateID, "error", err)
			}
		}
		if len(updates) > 0 {
			p.offset = updates[len(updates)-1].UpdateID + 1
		}
	}
}

func (p *Poller) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return nil
	}

	chatID := msg.Chat.ID
	var username string
	if msg.From != nil {
		username = msg.From.UserName
	}

	p.log.Info("message received", "chat_id", chatID, "username", username)

	if p.linked.Contains(chatID) {
		return p.client.SendMessage(chatID, greetingText(username))
	}

	tgUser, err := p.store.GetOrCreateTgUser(ctx, chatID, username)
	if err != nil {
		return err
	}

	if tgUser.UserID != nil {
		p.linked.Add(chatID, true)
		return p.client.SendMessage(chatID, greetingText(username))
	}

	code, err := newVerificationCode()
	if err != nil {
		return err
	}
	if err := p.store.SetVerificationCode(ctx, tgUser.ID, code); err != nil {
		return err
	}
	return p.client.SendMessage(chatID, verificationText(code))
}

// newVerificationCode returns 128 bits of hex-encoded entropy.
func newVerificationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func greetingText(username string) string {
	if username == "" {
		return "Привет! Ваш аккаунт уже привязан."
	}
	return fmt.Sprintf("Привет, %s! Ваш аккаунт уже привязан.", username)
}

func verificationText(code string) string {
	return fmt.Sprintf("Подтвердите, пожалуйста, свой аккаунт. Введите этот код на сайте: %s", code)
}

// LinkedText is the confirmation pushed to the chat after the code is
// redeemed through the web API.
const LinkedText = "Привязка телеграм аккаунта выполнена успешно"
