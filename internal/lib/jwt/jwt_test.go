package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := NewToken("Alice", 1001, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "Alice", claims.Customer)
	assert.Equal(t, int64(1001), claims.AccountID)
	assert.Equal(t, "Alice", claims.Subject)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewToken("Alice", 1001, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := NewToken("Alice", 1001, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
