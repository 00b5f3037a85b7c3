package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goaltracker/internal/common"
)

func TestGetOrCreateTgUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.GetOrCreateTgUser(ctx, 12345, "alice_tg")
	require.NoError(t, err)
	assert.Nil(t, created.UserID)
	assert.Empty(t, created.VerificationCode)

	again, err := s.GetOrCreateTgUser(ctx, 12345, "alice_renamed")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "alice_renamed", again.TgUsername)
}

func TestRedeemVerificationCode_SingleUse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "carol")
	tgUser, err := s.GetOrCreateTgUser(ctx, 12345, "carol_tg")
	require.NoError(t, err)
	require.NoError(t, s.SetVerificationCode(ctx, tgUser.ID, "deadbeef"))

	linked, err := s.RedeemVerificationCode(ctx, "deadbeef", user.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.UserID)
	assert.Equal(t, user.ID, *linked.UserID)

	stored, err := s.GetTgUserByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.VerificationCode)

	// The same code cannot be redeemed twice.
	_, err = s.RedeemVerificationCode(ctx, "deadbeef", user.ID)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRedeemVerificationCode_UnknownCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "carol")
	_, err := s.RedeemVerificationCode(ctx, "nope", user.ID)
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = s.RedeemVerificationCode(ctx, "", user.ID)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSetVerificationCode_IgnoresLinkedChat(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, s, "carol")
	tgUser, err := s.GetOrCreateTgUser(ctx, 12345, "carol_tg")
	require.NoError(t, err)
	require.NoError(t, s.SetVerificationCode(ctx, tgUser.ID, "first"))
	_, err = s.RedeemVerificationCode(ctx, "first", user.ID)
	require.NoError(t, err)

	// Once linked, a new code is never stored.
	require.NoError(t, s.SetVerificationCode(ctx, tgUser.ID, "second"))

	stored, err := s.GetTgUserByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.VerificationCode)
}
