package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", string(hash))

	assert.True(t, h.Compare(hash, "pw1"))
	assert.False(t, h.Compare(hash, "pw2"))
	assert.False(t, h.Compare(hash, ""))
}

func TestBcryptSaltsEachHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptRejectsGarbageHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	assert.False(t, h.Compare([]byte("not-a-hash"), "pw"))
}

func TestNewBcryptFallsBackToDefaultCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcrypt(bcrypt.MinCost).cost)
}

func TestBcryptAcceptsLongPasswords(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	long := strings.Repeat("p", 73)

	hash, err := h.Hash(long)
	require.NoError(t, err)

	assert.True(t, h.Compare(hash, long))
	assert.False(t, h.Compare(hash, long[:72]))
}

func TestBcryptLongPasswordsDifferPastLimit(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	prefix := strings.Repeat("x", 72)

	hash, err := h.Hash(prefix + "a")
	require.NoError(t, err)

	assert.True(t, h.Compare(hash, prefix+"a"))
	assert.False(t, h.Compare(hash, prefix+"b"))
}
