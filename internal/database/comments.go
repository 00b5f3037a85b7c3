package database

import (
	"context"
	"errors"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(ctx context.Context, userID, goalID uint, text string) (*models.GoalComment, error) {
	if _, err := s.CheckGoal(ctx, userID, goalID, CapWrite); err != nil {
		return nil, err
	}

	comment := &models.GoalComment{
		Text:   text,
		UserID: userID,
		GoalID: goalID,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns the comments of one goal, newest first by default.
// The goal itself must be visible to the user.
func (s *Store) ListComments(ctx context.Context, userID, goalID uint, opts ListOptions) ([]models.GoalComment, error) {
	if _, err := s.CheckGoal(ctx, userID, goalID, CapRead); err != nil {
		return nil, err
	}

	allowed := map[string]string{"created": "created_at", "updated": "updated_at"}

	var comments []models.GoalComment
	err := s.db.WithContext(ctx).Model(&models.GoalComment{}).
		Where("goal_id = ?", goalID).
		Order(opts.orderClause(allowed, "created_at DESC")).
		Limit(opts.limit()).Offset(opts.Offset).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) GetComment(ctx context.Context, userID, commentID uint) (*models.GoalComment, error) {
	if _, err := s.CheckComment(ctx, userID, commentID, CapRead); err != nil {
		return nil, err
	}
	return s.getComment(ctx, commentID)
}

func (s *Store) UpdateComment(ctx context.Context, userID, commentID uint, text string) (*models.GoalComment, error) {
	if _, err := s.CheckComment(ctx, userID, commentID, CapWrite); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.GoalComment{}).
		Where("id = ?", commentID).
		Update("text", text).Error
	if err != nil {
		return nil, err
	}
	return s.getComment(ctx, commentID)
}

// DeleteComment removes the comment row. Comments have no soft-delete state
// of their own; they disappear from view with their goal.
func (s *Store) DeleteComment(ctx context.Context, userID, commentID uint) error {
	if _, err := s.CheckComment(ctx, userID, commentID, CapWrite); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&models.GoalComment{}, commentID).Error
}

func (s *Store) getComment(ctx context.Context, commentID uint) (*models.GoalComment, error) {
	var comment models.GoalComment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
