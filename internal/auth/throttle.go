package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per email in Redis.
type LoginThrottle struct {
	client      redis.UniversalClient
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle builds a throttle. A nil client disables throttling.
func NewLoginThrottle(client redis.UniversalClient, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allowed reports whether email may attempt another login. Redis failures allow the attempt.
func (t *LoginThrottle) Allowed(ctx context.Context, email string) (bool, error) {
	if t == nil || t.client == nil {
		return true, nil
	}
	count, err := t.client.Get(ctx, t.key(email)).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return true, err
	}
	return count < t.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the window on the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	key := t.key(email)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, t.window)
	_, err := pipe.Exec(ctx)
	return err
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *LoginThrottle) key(email string) string {
	return "login:attempts:" + strings.ToLower(strings.TrimSpace(email))
}
