package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
)

// GoalFilter carries the list-endpoint filters: category/priority in-sets
// and a due-date window.
type GoalFilter struct {
	Categories []uint
	Priorities []models.GoalPriority
	DueDateLte *time.Time
	DueDateGte *time.Time
}

// GoalUpdate carries the writable goal fields. Nil pointers leave the field
// unchanged, so the same struct serves PUT and PATCH. The category is not
// here: a goal's parent chain is fixed at creation.
type GoalUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *models.GoalStatus
	Priority    *models.GoalPriority
}

func (s *Store) CreateGoal(ctx context.Context, userID uint, goal *models.Goal) (*models.Goal, error) {
	if goal.Status == "" {
		goal.Status = models.StatusToDo
	}
	if goal.Priority == "" {
		goal.Priority = models.PriorityLow
	}
	if !goal.Status.Valid() || goal.Status == models.StatusArchived {
		return nil, fmt.Errorf("%w: invalid status %q", common.ErrValidation, goal.Status)
	}
	if !goal.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", common.ErrValidation, goal.Priority)
	}

	if _, err := s.CheckCategory(ctx, userID, goal.CategoryID, CapWrite); err != nil {
		return nil, err
	}

	goal.UserID = userID
	if err := s.db.WithContext(ctx).Create(goal).Error; err != nil {
		return nil, err
	}
	return goal, nil
}

// ListGoals returns goals visible to the user across all their boards:
// archived goals and goals behind a deleted category or board are excluded.
func (s *Store) ListGoals(ctx context.Context, userID uint, filter GoalFilter, opts ListOptions) ([]models.Goal, error) {
	allowed := map[string]string{
		"title":    "goals.title",
		"created":  "goals.created_at",
		"due_date": "goals.due_date",
		"priority": "goals.priority",
	}

	q := s.db.WithContext(ctx).Model(&models.Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id AND goal_categories.is_deleted = ?", false).
		Joins("JOIN boards ON boards.id = goal_categories.board_id AND boards.is_deleted = ?", false).
		Joins("JOIN board_participants ON board_participants.board_id = boards.id").
		Where("board_participants.user_id = ? AND goals.status <> ?", userID, models.StatusArchived)

	if len(filter.Categories) > 0 {
		q = q.Where("goals.category_id IN ?", filter.Categories)
	}
	if len(filter.Priorities) > 0 {
		q = q.Where("goals.priority IN ?", filter.Priorities)
	}
	if filter.DueDateLte != nil {
		q = q.Where("goals.due_date <= ?", *filter.DueDateLte)
	}
	if filter.DueDateGte != nil {
		q = q.Where("goals.due_date >= ?", *filter.DueDateGte)
	}
	q = applySearch(q, opts.Search, "goals.title", "goals.description")

	var goals []models.Goal
	err := q.Order(opts.orderClause(allowed, "goals.title")).
		Limit(opts.limit()).Offset(opts.Offset).
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *Store) GetGoal(ctx context.Context, userID, goalID uint) (*models.Goal, error) {
	if _, err := s.CheckGoal(ctx, userID, goalID, CapRead); err != nil {
		return nil, err
	}
	return s.getGoal(ctx, goalID)
}

func (s *Store) UpdateGoal(ctx context.Context, userID, goalID uint, upd GoalUpdate) (*models.Goal, error) {
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", common.ErrValidation, *upd.Status)
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", common.ErrValidation, *upd.Priority)
	}

	// Archived goals never resolve here, which makes archived terminal.
	if _, err := s.CheckGoal(ctx, userID, goalID, CapWrite); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if upd.Title != nil {
		updates["title"] = *upd.Title
	}
	if upd.Description != nil {
		updates["description"] = *upd.Description
	}
	if upd.DueDate != nil {
		updates["due_date"] = *upd.DueDate
	}
	if upd.Status != nil {
		updates["status"] = *upd.Status
	}
	if upd.Priority != nil {
		updates["priority"] = *upd.Priority
	}

	if len(updates) > 0 {
		err := s.db.WithContext(ctx).Model(&models.Goal{}).
			Where("id = ?", goalID).
			Updates(updates).Error
		if err != nil {
			return nil, err
		}
	}
	return s.getGoal(ctx, goalID)
}

// DeleteGoal archives the goal; nothing is removed physically.
func (s *Store) DeleteGoal(ctx context.Context, userID, goalID uint) error {
	if _, err := s.CheckGoal(ctx, userID, goalID, CapWrite); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ?", goalID).
		Update("status", models.StatusArchived).Error
}

// ListGoalsDueOn returns live goals whose due date falls on the given day,
// for the reminder scheduler.
func (s *Store) ListGoalsDueOn(ctx context.Context, day time.Time) ([]models.Goal, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var goals []models.Goal
	err := s.db.WithContext(ctx).Model(&models.Goal{}).
		Joins("JOIN goal_categories ON goal_categories.id = goals.category_id AND goal_categories.is_deleted = ?", false).
		Joins("JOIN boards ON boards.id = goal_categories.board_id AND boards.is_deleted = ?", false).
		Where("goals.status <> ? AND goals.due_date >= ? AND goals.due_date < ?",
			models.StatusArchived, start, end).
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *Store) getGoal(ctx context.Context, goalID uint) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.WithContext(ctx).First(&goal, goalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
