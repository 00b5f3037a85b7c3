package database

import (
	"context"
	"errors"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

func (s *Store) CreateCategory(ctx context.Context, userID, boardID uint, title string) (*models.GoalCategory, error) {
	if _, err := s.getVisibleBoard(ctx, boardID); err != nil {
		return nil, err
	}
	if err := s.CheckBoardContent(ctx, userID, boardID, CapWrite); err != nil {
		return nil, err
	}

	category := &models.GoalCategory{
		Title:   title,
		UserID:  userID,
		BoardID: boardID,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns the categories visible to the user: those on boards
// the user participates in, with deleted categories and deleted boards
// filtered out. A non-zero boardID narrows the list to one board.
func (s *Store) ListCategories(ctx context.Context, userID uint, boardID uint, opts ListOptions) ([]models.GoalCategory, error) {
	allowed := map[string]string{"title": "goal_categories.title", "created": "goal_categories.created_at"}

	q := s.db.WithContext(ctx).Model(&models.GoalCategory{}).
		Joins("JOIN boards ON boards.id = goal_categories.board_id AND boards.is_deleted = ?", false).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND goal_categories.is_deleted = ?", userID, false)
	if boardID != 0 {
		q = q.Where("goal_categories.board_id = ?", boardID)
	}
	q = applySearch(q, opts.Search, "goal_categories.title")

	var categories []models.GoalCategory
	err := q.Order(opts.orderClause(allowed, "goal_categories.title")).
		Limit(opts.limit()).Offset(opts.Offset).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Store) GetCategory(ctx context.Context, userID, categoryID uint) (*models.GoalCategory, error) {
	if _, err := s.CheckCategory(ctx, userID, categoryID, CapRead); err != nil {
		return nil, err
	}
	return s.getCategory(ctx, categoryID)
}

func (s *Store) UpdateCategory(ctx context.Context, userID, categoryID uint, title string) (*models.GoalCategory, error) {
	if _, err := s.CheckCategory(ctx, userID, categoryID, CapWrite); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Model(&models.GoalCategory{}).
		Where("id = ?", categoryID).
		Update("title", title).Error
	if err != nil {
		return nil, err
	}
	return s.getCategory(ctx, categoryID)
}

// DeleteCategory soft-deletes the category and archives its goals in one
// transaction.
func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID uint) error {
	if _, err := s.CheckCategory(ctx, userID, categoryID, CapWrite); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GoalCategory{}).
			Where("id = ?", categoryID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&models.Goal{}).
			Where("category_id = ?", categoryID).
			Update("status", models.StatusArchived).Error
	})
}

func (s *Store) getCategory(ctx context.Context, categoryID uint) (*models.GoalCategory, error) {
	var category models.GoalCategory
	err := s.db.WithContext(ctx).First(&category, categoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
