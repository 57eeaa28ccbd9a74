package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLoginAttempts = 5
	defaultLoginWindow   = time.Minute
)

// LoginLimiter caps login attempts per client key using a fixed window.
// Key format: login:attempts:<key>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter allows max attempts per window. Non-positive values fall
// back to 5 attempts per minute.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultLoginAttempts
	}
	if window <= 0 {
		window = defaultLoginWindow
	}
	return &LoginLimiter{client: client, max: int64(max), window: window}
}

// Allow counts one attempt for key. When the window is exhausted it returns
// false together with the time left until the window resets.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := l.key(key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("login limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("login limiter expire: %w", err)
		}
	}
	if n <= l.max {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil {
		return false, l.window, nil
	}
	if ttl < 0 {
		// The counter lost its expiry (e.g. a failed EXPIRE); restore it so
		// the key cannot lock the client out forever.
		_ = l.client.Expire(ctx, k, l.window).Err()
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *LoginLimiter) key(key string) string {
	return fmt.Sprintf("login:attempts:%s", key)
}
