package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goaltracker/internal/common"
	"goaltracker/internal/database/models"
)

func TestCheckBoard_RoleMatrix(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner")
	editor := createTestUser(t, s, "editor")
	reader := createTestUser(t, s, "reader")
	outsider := createTestUser(t, s, "outsider")

	board := createTestBoard(t, s, owner.ID, "Work")
	addParticipant(t, s, board.ID, editor.ID, models.RoleEditor)
	addParticipant(t, s, board.ID, reader.ID, models.RoleReader)

	// Board-level writes are owner only.
	assert.NoError(t, s.CheckBoard(ctx, owner.ID, board.ID, CapWrite))
	assert.ErrorIs(t, s.CheckBoard(ctx, editor.ID, board.ID, CapWrite), common.ErrPermissionDenied)
	assert.ErrorIs(t, s.CheckBoard(ctx, reader.ID, board.ID, CapWrite), common.ErrPermissionDenied)

	// Content writes accept owner and editor.
	assert.NoError(t, s.CheckBoardContent(ctx, owner.ID, board.ID, CapWrite))
	assert.NoError(t, s.CheckBoardContent(ctx, editor.ID, board.ID, CapWrite))
	assert.ErrorIs(t, s.CheckBoardContent(ctx, reader.ID, board.ID, CapWrite), common.ErrPermissionDenied)

	// Reads accept any participant.
	for _, u := range []*models.User{owner, editor, reader} {
		assert.NoError(t, s.CheckBoard(ctx, u.ID, board.ID, CapRead))
		assert.NoError(t, s.CheckBoardContent(ctx, u.ID, board.ID, CapRead))
	}

	// No participant row denies everything.
	assert.ErrorIs(t, s.CheckBoard(ctx, outsider.ID, board.ID, CapRead), common.ErrPermissionDenied)
	assert.ErrorIs(t, s.CheckBoardContent(ctx, outsider.ID, board.ID, CapWrite), common.ErrPermissionDenied)
}

func TestCheckGoal_WalksParentChain(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner")
	reader := createTestUser(t, s, "reader")
	board := createTestBoard(t, s, owner.ID, "Work")
	addParticipant(t, s, board.ID, reader.ID, models.RoleReader)
	category := createTestCategory(t, s, owner.ID, board.ID, "Sprint1")
	goal := createTestGoal(t, s, owner.ID, category.ID, "Ship v1")

	boardID, err := s.CheckGoal(ctx, reader.ID, goal.ID, CapRead)
	require.NoError(t, err)
	assert.Equal(t, board.ID, boardID)

	_, err = s.CheckGoal(ctx, reader.ID, goal.ID, CapWrite)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}

func TestCheckGoal_DeletedChainResolvesNotFound(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner")
	board := createTestBoard(t, s, owner.ID, "Work")
	category := createTestCategory(t, s, owner.ID, board.ID, "Sprint1")
	goal := createTestGoal(t, s, owner.ID, category.ID, "Ship v1")

	require.NoError(t, s.DeleteCategory(ctx, owner.ID, category.ID))

	// The goal is archived and its category deleted: the chain no longer
	// resolves, even for the owner.
	_, err := s.CheckGoal(ctx, owner.ID, goal.ID, CapRead)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.CheckCategory(ctx, owner.ID, category.ID, CapRead)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCheckComment_WalksToBoard(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	owner := createTestUser(t, s, "owner")
	outsider := createTestUser(t, s, "outsider")
	board := createTestBoard(t, s, owner.ID, "Work")
	category := createTestCategory(t, s, owner.ID, board.ID, "Sprint1")
	goal := createTestGoal(t, s, owner.ID, category.ID, "Ship v1")

	comment, err := s.CreateComment(ctx, owner.ID, goal.ID, "looks good")
	require.NoError(t, err)

	boardID, err := s.CheckComment(ctx, owner.ID, comment.ID, CapRead)
	require.NoError(t, err)
	assert.Equal(t, board.ID, boardID)

	_, err = s.CheckComment(ctx, outsider.ID, comment.ID, CapRead)
	assert.ErrorIs(t, err, common.ErrPermissionDenied)
}
