package jwt

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestIssueValidate(t *testing.T) {
	manager := NewTokenManager("secret")

	token, err := manager.Issue(42, true)
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.True(t, claims.IsAdmin)
	assert.NotZero(t, claims.LoginTime)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, TokenExpiry, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestIssueRejectsZeroUser(t *testing.T) {
	manager := NewTokenManager("secret")
	_, err := manager.Issue(0, false)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueProducesDistinctTokens(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	manager := NewTokenManager("secret", WithClock(clock.Now))

	first, err := manager.Issue(1, false)
	require.NoError(t, err)
	second, err := manager.Issue(1, false)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstClaims, err := manager.Decode(first)
	require.NoError(t, err)
	secondClaims, err := manager.Decode(second)
	require.NoError(t, err)
	assert.Greater(t, secondClaims.LoginTime, firstClaims.LoginTime)
}

func TestValidateExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	manager := NewTokenManager("secret", WithClock(clock.Now))

	token, err := manager.Issue(7, false)
	require.NoError(t, err)

	clock.now = clock.now.Add(59 * time.Minute)
	_, err = manager.Validate(token)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Minute)
	_, err = manager.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret").Issue(7, false)
	require.NoError(t, err)

	_, err = NewTokenManager("other").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret").Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissing(t *testing.T) {
	_, err := NewTokenManager("secret").Validate("  ")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestDecode(t *testing.T) {
	manager := NewTokenManager("secret")
	token, err := manager.Issue(9, false)
	require.NoError(t, err)

	// Decode ignores the signature, so a token from another secret still reads.
	claims, err := NewTokenManager("other").Decode(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)

	_, err = manager.Decode("not.a.token")
	assert.ErrorIs(t, err, ErrMalformedToken)

	_, err = manager.Decode(strings.Repeat("x", 20))
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{header: "Bearer abc", want: "abc"},
		{header: "bearer abc", want: "abc"},
		{header: "", wantErr: true},
		{header: "Bearer", wantErr: true},
		{header: "Basic abc", wantErr: true},
		{header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		got, err := TokenFromHeader(tt.header)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMissingToken, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
