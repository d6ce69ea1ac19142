package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newManager() *TokenManager {
	return NewTokenManager("test-secret", "todo-list-api", "todo-list-clients")
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newManager()

	token, err := m.Generate(1, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, uint(1), claims.UserID)
	require.Equal(t, "alice", claims.Username)
}

func TestValidateToken_Invalid(t *testing.T) {
	m := newManager()
	_, err := m.Validate("invalid.token")
	require.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	other := NewTokenManager("test-secret", "someone-else", "todo-list-clients")
	token, err := other.Generate(1, "alice")
	require.NoError(t, err)

	_, err = newManager().Validate(token)
	require.Error(t, err)
}

func TestValidateToken_WrongAudience(t *testing.T) {
	other := NewTokenManager("test-secret", "todo-list-api", "someone-else")
	token, err := other.Generate(1, "alice")
	require.NoError(t, err)

	_, err = newManager().Validate(token)
	require.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, CheckPassword(hash, "hunter2"))
	require.False(t, CheckPassword(hash, "wrong"))
}
