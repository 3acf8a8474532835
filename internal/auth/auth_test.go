package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.NoError(t, CheckPassword(hash, "hunter2"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
	assert.ErrorIs(t, CheckPassword("not-a-hash", "hunter2"), ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", time.Hour)
	require.NoError(t, err)

	assert.NoError(t, VerifyToken("secret", token))
	assert.ErrorIs(t, VerifyToken("other-secret", token), ErrInvalidToken)
	assert.ErrorIs(t, VerifyToken("secret", "garbage.token.here"), ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := IssueToken("secret", -time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyToken("secret", token), ErrInvalidToken)
}
