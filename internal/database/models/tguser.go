package models

import "time"

// TgUser links a telegram chat to an account. UserID stays nil until the
// verification code is redeemed through the web API; until then the code is
// replaced on every new linking attempt.
type TgUser struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	TgChatID         int64     `gorm:"uniqueIndex;not null" json:"tg_id"`
	TgUsername       string    `gorm:"size:150" json:"username"`
	VerificationCode string    `gorm:"size:255;index" json:"-"`
	UserID           *uint     `json:"user_id,omitempty"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}
