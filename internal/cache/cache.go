package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the key/value surface the app needs from Redis. Sessions write
// and look up revocation markers through it and the health check round-trips
// a single key. ttl <= 0 means no expiry.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Close() error
}

// Key namespaces. Each key the app writes belongs to exactly one of them.
const (
	revokedSessionPrefix = "session:revoked:"
	healthPrefix         = "health:"
)

// HealthKey is the key written and read back by the health check.
const HealthKey = healthPrefix + "ping"

// RevokedSessionKey returns the marker key for a logged-out session id.
func RevokedSessionKey(sessionID string) string {
	return revokedSessionPrefix + sessionID
}

// IsRevokedSessionKey reports whether key lives in the revocation namespace.
func IsRevokedSessionKey(key string) bool {
	return strings.HasPrefix(key, revokedSessionPrefix)
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	CloseFn func() error
}

func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// Close is a no-op unless CloseFn is set.
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
