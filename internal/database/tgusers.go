package database

import (
	"context"
	"errors"
	"fmt"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

// GetOrCreateTgUser resolves the linking record for a chat, creating it on
// first contact. The stored username follows the chat's current one.
func (s *Store) GetOrCreateTgUser(ctx context.Context, chatID int64, username string) (*models.TgUser, error) {
	var tgUser models.TgUser
	err := s.db.WithContext(ctx).Where("tg_chat_id = ?", chatID).First(&tgUser).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tgUser = models.TgUser{TgChatID: chatID, TgUsername: username}
		if err := s.db.WithContext(ctx).Create(&tgUser).Error; err != nil {
			return nil, err
		}
		return &tgUser, nil
	}
	if err != nil {
		return nil, err
	}

	if username != "" && tgUser.TgUsername != username {
		tgUser.TgUsername = username
		if err := s.db.WithContext(ctx).Model(&tgUser).
			Update("tg_username", username).Error; err != nil {
			return nil, err
		}
	}
	return &tgUser, nil
}

// SetVerificationCode stores a fresh code for an unlinked chat, replacing
// any previous one so at most one code is live per chat.
func (s *Store) SetVerificationCode(ctx context.Context, tgUserID uint, code string) error {
	return s.db.WithContext(ctx).Model(&models.TgUser{}).
		Where("id = ? AND user_id IS NULL", tgUserID).
		Update("verification_code", code).Error
}

// RedeemVerificationCode looks the record up by code alone, attaches it to
// the user and clears the code in the same transaction, so a code can be
// redeemed exactly once.
func (s *Store) RedeemVerificationCode(ctx context.Context, code string, userID uint) (*models.TgUser, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: verification code is required", common.ErrValidation)
	}

	var tgUser models.TgUser
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("verification_code = ?", code).First(&tgUser).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: unknown verification code", common.ErrValidation)
		}
		if err != nil {
			return err
		}

		tgUser.UserID = &userID
		tgUser.VerificationCode = ""
		return tx.Model(&models.TgUser{}).
			Where("id = ?", tgUser.ID).
			Updates(map[string]interface{}{
				"user_id":           userID,
				"verification_code": "",
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &tgUser, nil
}

// GetTgUserByUserID returns the linked chat of an account, if any.
func (s *Store) GetTgUserByUserID(ctx context.Context, userID uint) (*models.TgUser, error) {
	var tgUser models.TgUser
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&tgUser).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tgUser, nil
}
