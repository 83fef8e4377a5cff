package bcrypt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("pw123")
	require.NoError(t, err)

	assert.True(t, VerifyHash(hash))
	assert.NotEqual(t, "pw123", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultCost, cost)

	assert.NoError(t, ComparePassword(hash, "pw123"))
	assert.ErrorIs(t, ComparePassword(hash, "wrong"), ErrMismatch)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same")
	require.NoError(t, err)
	second, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCompareMalformedHash(t *testing.T) {
	err := ComparePassword("not-a-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
	assert.False(t, VerifyHash("not-a-hash"))
}
