package database

import (
	"context"
	"errors"
	"fmt"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

// ParticipantUpdate is one entry of a proposed board participant set.
type ParticipantUpdate struct {
	UserID uint        `json:"user"`
	Role   models.Role `json:"role"`
}

// CreateBoard creates the board and its owner participant in one
// transaction, so a board is never visible without an owner.
func (s *Store) CreateBoard(ctx context.Context, userID uint, title string) (*models.Board, error) {
	board := &models.Board{Title: title}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		owner := &models.BoardParticipant{
			BoardID: board.ID,
			UserID:  userID,
			Role:    models.RoleOwner,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, userID, board.ID)
}

// ListBoards returns the boards the user participates in, deleted ones
// excluded.
func (s *Store) ListBoards(ctx context.Context, userID uint, opts ListOptions) ([]models.Board, error) {
	allowed := map[string]string{"title": "boards.title", "created": "boards.created_at"}

	var boards []models.Board
	q := s.db.WithContext(ctx).Model(&models.Board{}).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND boards.is_deleted = ?", userID, false)
	q = applySearch(q, opts.Search, "boards.title")
	err := q.Order(opts.orderClause(allowed, "boards.title")).
		Limit(opts.limit()).Offset(opts.Offset).
		Find(&boards).Error
	if err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *Store) GetBoard(ctx context.Context, userID, boardID uint) (*models.Board, error) {
	var board models.Board
	err := s.db.WithContext(ctx).
		Preload("Participants").
		Where("id = ? AND is_deleted = ?", boardID, false).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.CheckBoard(ctx, userID, boardID, CapRead); err != nil {
		return nil, err
	}
	return &board, nil
}

// UpdateBoard applies the sharing update: the proposed participant set is
// diffed against the current non-owner participants by user id, and the
// title is updated in the same transaction. Only the owner may call it; the
// owner row itself is never touched, and a proposed owner role is rejected.
func (s *Store) UpdateBoard(ctx context.Context, actorID, boardID uint, title string, proposed []ParticipantUpdate) (*models.Board, error) {
	if _, err := s.getVisibleBoard(ctx, boardID); err != nil {
		return nil, err
	}
	if err := s.CheckBoard(ctx, actorID, boardID, CapWrite); err != nil {
		return nil, err
	}

	proposedByUser := make(map[uint]models.Role, len(proposed))
	for _, p := range proposed {
		if p.Role == models.RoleOwner {
			return nil, fmt.Errorf("%w: owner role cannot be assigned", common.ErrValidation)
		}
		if !p.Role.Valid() {
			return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, p.Role)
		}
		if _, dup := proposedByUser[p.UserID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %d", common.ErrValidation, p.UserID)
		}
		proposedByUser[p.UserID] = p.Role
	}
	// The owner may appear in the proposal only as an echo of the current
	// set; its row is immutable through this path.
	delete(proposedByUser, actorID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current []models.BoardParticipant
		if err := tx.Where("board_id = ? AND role <> ?", boardID, models.RoleOwner).
			Find(&current).Error; err != nil {
			return err
		}

		seen := make(map[uint]bool, len(current))
		for _, p := range current {
			seen[p.UserID] = true
			role, keep := proposedByUser[p.UserID]
			if !keep {
				if err := tx.Delete(&models.BoardParticipant{}, p.ID).Error; err != nil {
					return err
				}
				continue
			}
			if role != p.Role {
				if err := tx.Model(&models.BoardParticipant{}).
					Where("id = ?", p.ID).
					Update("role", role).Error; err != nil {
					return err
				}
			}
		}

		for userID, role := range proposedByUser {
			if seen[userID] {
				continue
			}
			participant := &models.BoardParticipant{BoardID: boardID, UserID: userID, Role: role}
			if err := tx.Create(participant).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Board{}).
			Where("id = ?", boardID).
			Update("title", title).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetBoard(ctx, actorID, boardID)
}

// DeleteBoard soft-deletes the board and cascades: its categories become
// deleted, every goal under those categories becomes archived. All or
// nothing.
func (s *Store) DeleteBoard(ctx context.Context, actorID, boardID uint) error {
	if _, err := s.getVisibleBoard(ctx, boardID); err != nil {
		return err
	}
	if err := s.CheckBoard(ctx, actorID, boardID, CapWrite); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Board{}).
			Where("id = ?", boardID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		categoryIDs := tx.Model(&models.GoalCategory{}).
			Select("id").
			Where("board_id = ?", boardID)
		if err := tx.Model(&models.Goal{}).
			Where("category_id IN (?)", categoryIDs).
			Update("status", models.StatusArchived).Error; err != nil {
			return err
		}

		return tx.Model(&models.GoalCategory{}).
			Where("board_id = ?", boardID).
			Update("is_deleted", true).Error
	})
}

func (s *Store) getVisibleBoard(ctx context.Context, boardID uint) (*models.Board, error) {
	var board models.Board
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", boardID, false).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}
