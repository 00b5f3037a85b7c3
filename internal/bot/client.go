// Package bot runs the Telegram side of the system: the long-poll update
// loop with account linking, and the daily due-goal reminder scheduler.
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client is the fixed contract with the messaging endpoint. Failed sends are
// not retried.
type Client interface {
	GetUpdates(offset, timeout int) ([]tgbotapi.Update, error)
	SendMessage(chatID int64, text string) error
}

type APIClient struct {
	api *tgbotapi.BotAPI
}

func NewAPIClient(token string) (*APIClient, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &APIClient{api: api}, nil
}

func (c *APIClient) Username() string {
	return c.api.Self.UserName
}

func (c *APIClient) GetUpdates(offset, timeout int) ([]tgbotapi.Update, error) {
	u := tgbotapi.NewUpdate(offset)
	u.Timeout = timeout
	return c.api.GetUpdates(u)
}

func (c *APIClient) SendMessage(chatID int64, text string) error {
	_, err := c.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
