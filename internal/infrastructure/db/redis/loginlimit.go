package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginWindow  = time.Minute
	defaultLimit = 10
)

// LoginLimiter throttles login attempts per client IP over a fixed window.
// The auth core deliberately carries no lockout logic; this is the hardening
// layer in front of it. Key format: login_attempts:<ip>
type LoginLimiter struct {
	client *redis.Client
	limit  int64
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per window.
func NewLoginLimiter(client *redis.Client, limit int) *LoginLimiter {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &LoginLimiter{client: client, limit: int64(limit)}
}

// Allow records one attempt from ip and reports whether it is still within
// the window's budget. On Redis failure it returns the error so the caller
// can decide to fail open.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (bool, error) {
	key := fmt.Sprintf("login_attempts:%s", ip)

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return true, fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, loginWindow).Err(); err != nil {
			return true, fmt.Errorf("login limiter expire: %w", err)
		}
	}
	return n <= l.limit, nil
}
