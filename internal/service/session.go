// File: internal/service/session.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"personal-blog/internal/cache"
	"personal-blog/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrInvalidSession = errors.New("invalid session")

// MinSecretLength is the shortest accepted signing key, in bytes.
const MinSecretLength = 32

var (
	timeNow         = time.Now
	newTokenID      = uuid.NewString
	parseWithClaims = jwt.ParseWithClaims
)

// SessionClaims is the payload of the signed session cookie.
type SessionClaims struct {
	UserID int `json:"uid"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies session tokens. Tokens are HS256 JWTs kept
// client-side; logging out records the token ID in the cache until the
// token would have expired anyway.
type Sessions struct {
	secret  []byte
	ttl     time.Duration
	revoked cache.Cache
}

func NewSessions(secret []byte, ttl time.Duration, revoked cache.Cache) (*Sessions, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("session secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Sessions{secret: secret, ttl: ttl, revoked: revoked}, nil
}

// TTL is the lifetime of newly issued tokens.
func (s *Sessions) TTL() time.Duration { return s.ttl }

// Issue signs a new session token for user.
func (s *Sessions) Issue(user model.User) (string, time.Time, error) {
	now := timeNow()
	expires := now.Add(s.ttl)
	claims := SessionClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        newTokenID(),
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// Verify parses token and rejects bad signatures, expired tokens and
// revoked tokens. A cache failure is reported as an error, never as valid.
func (s *Sessions) Verify(ctx context.Context, token string) (*SessionClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	err = s.revoked.Get(ctx, cache.RevokedSessionKey(claims.ID)).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return claims, nil
	case err != nil:
		return nil, fmt.Errorf("check revocation: %w", err)
	default:
		return nil, ErrInvalidSession
	}
}

// Revoke invalidates a still-valid token. Invalid or expired tokens are
// ignored so logging out is always safe to repeat.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(timeNow())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.Set(ctx, cache.RevokedSessionKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (s *Sessions) parse(token string) (*SessionClaims, error) {
	parsed, err := parseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.ID == "" || claims.UserID <= 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
