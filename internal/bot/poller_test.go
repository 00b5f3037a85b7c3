package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goaltracker/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMessage struct {
	chatID int64
	text   string
}

// fakeClient replays scripted update batches and cancels the poller's
// context once they run out.
type fakeClient struct {
	batches [][]tgbotapi.Update
	cancel  context.CancelFunc

	offsets []int
	sent    []sentMessage
}

func (f *fakeClient) GetUpdates(offset, timeout int) ([]tgbotapi.Update, error) {
	f.offsets = append(f.offsets, offset)
	if len(f.batches) == 0 {
		f.cancel()
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func (f *fakeClient) SendMessage(chatID int64, text string) error {
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func newTestStore(t *testing.T) *database.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return database.NewStore(db)
}

func textMessage(updateID int, chatID int64, username, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: updateID,
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			From: &tgbotapi.User{UserName: username},
			Text: text,
		},
	}
}

func runPoller(t *testing.T, store *database.Store, client *fakeClient) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	client.cancel = cancel

	poller, err := NewPoller(client, store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
	require.NoError(t, err)

	err = poller.Run(ctx)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestPoller_IssuesCodeForUnknownChat(t *testing.T) {
	store := newTestStore(t)
	client := &fakeClient{
		batches: [][]tgbotapi.Update{
			{textMessage(10, 12345, "alice", "/start")},
		},
	}

	runPoller(t, store, client)

	require.Len(t, client.sent, 1)
	assert.Equal(t, int64(12345), client.sent[0].chatID)

	tgUser, err := store.GetOrCreateTgUser(context.Background(), 12345, "alice")
	require.NoError(t, err)
	assert.Nil(t, tgUser.UserID)
	require.Len(t, tgUser.VerificationCode, 32) // 128 bits, hex-encoded
	assert.Contains(t, client.sent[0].text, tgUser.VerificationCode)
}

func TestPoller_LinkedChatGetsGreetingOnly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Chat already went through the full linking flow.
	tgUser, err := store.GetOrCreateTgUser(ctx, 12345, "carol")
	require.NoError(t, err)
	require.NoError(t, store.SetVerificationCode(ctx, tgUser.ID, "cafebabe"))
	user := createUser(t, store, "carol")
	_, err = store.RedeemVerificationCode(ctx, "cafebabe", user.ID)
	require.NoError(t, err)

	client := &fakeClient{
		batches: [][]tgbotapi.Update{
			{textMessage(20, 12345, "carol", "hello")},
			{textMessage(21, 12345, "carol", "hello again")},
		},
	}
	runPoller(t, store, client)

	require.Len(t, client.sent, 2)
	for _, msg := range client.sent {
		assert.NotContains(t, msg.text, "код")
	}

	// No code was reissued and the link is intact.
	stored, err := store.GetOrCreateTgUser(ctx, 12345, "carol")
	require.NoError(t, err)
	assert.Empty(t, stored.VerificationCode)
	require.NotNil(t, stored.UserID)
	assert.Equal(t, user.ID, *stored.UserID)
}

func TestPoller_OffsetAdvancesPastBatch(t *testing.T) {
	store := newTestStore(t)
	client := &fakeClient{
		batches: [][]tgbotapi.Update{
			{
				textMessage(10, 1, "a", "hi"),
				textMessage(11, 2, "b", "hi"),
			},
			{textMessage(12, 3, "c", "hi")},
		},
	}

	runPoller(t, store, client)

	// Initial poll at 0, then one past each batch's last update id.
	assert.Equal(t, []int{0, 12, 13}, client.offsets)
}

func TestPoller_SecondMessageReplacesCode(t *testing.T) {
	store := newTestStore(t)
	client := &fakeClient{
		batches: [][]tgbotapi.Update{
			{textMessage(10, 12345, "alice", "/start")},
		},
	}
	runPoller(t, store, client)

	first, err := store.GetOrCreateTgUser(context.Background(), 12345, "alice")
	require.NoError(t, err)

	client2 := &fakeClient{
		batches: [][]tgbotapi.Update{
			{textMessage(11, 12345, "alice", "/start")},
		},
	}
	runPoller(t, store, client2)

	second, err := store.GetOrCreateTgUser(context.Background(), 12345, "alice")
	require.NoError(t, err)

	// Still unlinked, one live code, and it is a fresh one.
	assert.Nil(t, second.UserID)
	assert.Len(t, second.VerificationCode, 32)
	assert.NotEqual(t, first.VerificationCode, second.VerificationCode)
}
