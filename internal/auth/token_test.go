package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := MakeToken("ali@example.com", false, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "ali@example.com", claims.Email)
	require.False(t, claims.Admin)
}

func TestTokenAdminScope(t *testing.T) {
	token, err := MakeToken("admin@example.com", true, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "test-secret")
	require.NoError(t, err)
	require.True(t, claims.Admin)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := MakeToken("ali@example.com", false, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "another-secret")
	require.ErrorIs(t, err, ErrBadToken)
}

func TestTokenExpired(t *testing.T) {
	token, err := MakeToken("ali@example.com", false, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "test-secret")
	require.ErrorIs(t, err, ErrBadToken)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-jwt", "test-secret")
	require.ErrorIs(t, err, ErrBadToken)
}
