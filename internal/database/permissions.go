package database

import (
	"context"
	"errors"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

// Capability is what an operation needs from the actor's board role.
// CapRead is satisfied by any participant; CapWrite depends on the level:
// board-level writes (title/participants, delete) require the owner,
// content writes (categories, goals, comments) require owner or editor.
type Capability int

const (
	CapRead Capability = iota
	CapWrite
)

func (s *Store) participantRole(ctx context.Context, userID, boardID uint) (models.Role, error) {
	var participant models.BoardParticipant
	err := s.db.WithContext(ctx).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", common.ErrPermissionDenied
	}
	if err != nil {
		return "", err
	}
	return participant.Role, nil
}

// CheckBoard gates board-level operations.
func (s *Store) CheckBoard(ctx context.Context, userID, boardID uint, cap Capability) error {
	role, err := s.participantRole(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if cap == CapWrite && role != models.RoleOwner {
		return common.ErrPermissionDenied
	}
	return nil
}

// CheckBoardContent gates operations on categories, goals and comments.
func (s *Store) CheckBoardContent(ctx context.Context, userID, boardID uint, cap Capability) error {
	role, err := s.participantRole(ctx, userID, boardID)
	if err != nil {
		return err
	}
	if cap == CapWrite && role != models.RoleOwner && role != models.RoleEditor {
		return common.ErrPermissionDenied
	}
	return nil
}

// The resolvers below walk an entity's fixed parent chain up to its board.
// They apply the soft-delete visibility rules on the way: an entity behind a
// deleted board/category, or an archived goal, resolves to ErrNotFound.

func (s *Store) boardIDForCategory(ctx context.Context, categoryID uint) (uint, error) {
	var category models.GoalCategory
	err := s.db.WithContext(ctx).
		Joins("JOIN boards ON boards.id = goal_categories.board_id AND boards.is_deleted = ?", false).
		Where("goal_categories.id = ? AND goal_categories.is_deleted = ?", categoryID, false).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, common.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return category.BoardID, nil
}

func (s *Store) boardIDForGoal(ctx context.Context, goalID uint) (uint, error) {
	var category models.GoalCategory
	err := s.db.WithContext(ctx).
		Joins("JOIN goals ON goals.category_id = goal_categories.id AND goals.status <> ?", models.StatusArchived).
		Joins("JOIN boards ON boards.id = goal_categories.board_id AND boards.is_deleted = ?", false).
		Where("goals.id = ? AND goal_categories.is_deleted = ?", goalID, false).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, common.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return category.BoardID, nil
}

func (s *Store) boardIDForComment(ctx context.Context, commentID uint) (uint, error) {
	var comment models.GoalComment
	err := s.db.WithContext(ctx).
		Where("id = ?", commentID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, common.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return s.boardIDForGoal(ctx, comment.GoalID)
}

// CheckCategory resolves the category's board and checks the capability there.
func (s *Store) CheckCategory(ctx context.Context, userID, categoryID uint, cap Capability) (uint, error) {
	boardID, err := s.boardIDForCategory(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	return boardID, s.CheckBoardContent(ctx, userID, boardID, cap)
}

func (s *Store) CheckGoal(ctx context.Context, userID, goalID uint, cap Capability) (uint, error) {
	boardID, err := s.boardIDForGoal(ctx, goalID)
	if err != nil {
		return 0, err
	}
	return boardID, s.CheckBoardContent(ctx, userID, boardID, cap)
}

func (s *Store) CheckComment(ctx context.Context, userID, commentID uint, cap Capability) (uint, error) {
	boardID, err := s.boardIDForComment(ctx, commentID)
	if err != nil {
		return 0, err
	}
	return boardID, s.CheckBoardContent(ctx, userID, boardID, cap)
}
