package database

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"goaltracker/internal/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	return NewStore(db)
}

func createTestUser(t *testing.T, s *Store, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func createTestBoard(t *testing.T, s *Store, ownerID uint, title string) *models.Board {
	t.Helper()

	board, err := s.CreateBoard(context.Background(), ownerID, title)
	require.NoError(t, err)
	return board
}

func addParticipant(t *testing.T, s *Store, boardID, userID uint, role models.Role) {
	t.Helper()

	require.NoError(t, s.db.Create(&models.BoardParticipant{
		BoardID: boardID,
		UserID:  userID,
		Role:    role,
	}).Error)
}

func createTestCategory(t *testing.T, s *Store, userID, boardID uint, title string) *models.GoalCategory {
	t.Helper()

	category, err := s.CreateCategory(context.Background(), userID, boardID, title)
	require.NoError(t, err)
	return category
}

func createTestGoal(t *testing.T, s *Store, userID, categoryID uint, title string) *models.Goal {
	t.Helper()

	goal, err := s.CreateGoal(context.Background(), userID, &models.Goal{
		Title:      title,
		CategoryID: categoryID,
	})
	require.NoError(t, err)
	return goal
}
