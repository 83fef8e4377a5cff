package jwt

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session tokens are valid for exactly one hour after issuance.
const TokenExpiry = time.Hour

var (
	ErrMissingToken   = errors.New("missing token")
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token has expired")
	ErrMalformedToken = errors.New("malformed token")
)

// Claims carried by a session token. LoginTime is a strictly increasing
// nanosecond stamp, so two logins with the same user never sign the same
// payload.
type Claims struct {
	UserID    uint  `json:"user_id"`
	IsAdmin   bool  `json:"is_admin"`
	LoginTime int64 `json:"login_time"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret    []byte
	issuer    string
	now       func() time.Time
	lastStamp atomic.Int64
}

type Option func(*TokenManager)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) {
		m.now = now
	}
}

func WithIssuer(issuer string) Option {
	return func(m *TokenManager) {
		m.issuer = issuer
	}
}

func NewTokenManager(secret string, opts ...Option) *TokenManager {
	m := &TokenManager{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Issue signs a new session token for the given user.
func (m *TokenManager) Issue(userID uint, isAdmin bool) (string, error) {
	if userID == 0 {
		return "", ErrInvalidToken
	}

	now := m.now()
	claims := &Claims{
		UserID:    userID,
		IsAdmin:   isAdmin,
		LoginTime: m.nextStamp(now),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate verifies signature, signing method and expiry.
func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Decode reads the claims without checking the signature. Only for internal
// lookups on tokens that already passed Validate upstream.
func (m *TokenManager) Decode(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, ErrMalformedToken
	}
	if claims.UserID == 0 {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func (m *TokenManager) nextStamp(now time.Time) int64 {
	for {
		last := m.lastStamp.Load()
		stamp := now.UnixNano()
		if stamp <= last {
			stamp = last + 1
		}
		if m.lastStamp.CompareAndSwap(last, stamp) {
			return stamp
		}
	}
}

// TokenFromHeader extracts the token from an "Authorization: Bearer <token>" value.
func TokenFromHeader(authHeader string) (string, error) {
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrMissingToken
	}
	return parts[1], nil
}
