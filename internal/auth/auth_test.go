package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"goaltracker/internal/common"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(42, secret, time.Hour)
	require.NoError(t, err)

	userID, err := UserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("wrong"))
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken(42, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = UserIDFromToken(token, []byte("secret"))
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "correct horse"))
	assert.False(t, CheckPassword(hash, "wrong horse"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.ErrorIs(t, ValidatePassword("short"), common.ErrValidation)
}

func TestRevokedTokens(t *testing.T) {
	revoked, err := NewRevokedTokens()
	require.NoError(t, err)

	assert.False(t, revoked.IsRevoked("abc"))
	revoked.Revoke("abc")
	assert.True(t, revoked.IsRevoked("abc"))
	assert.False(t, revoked.IsRevoked("def"))
}
