package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/primemotors/inventory-service/pkg/util"
)

const loginFailureKeyPrefix = "login:failures:"

// LoginLimiter counts failed logins per username in Redis.
// Redis outages are logged and do not block logins.
type LoginLimiter struct {
	client redis.Cmdable
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter; max <= 0 disables it.
func NewLoginLimiter(client redis.Cmdable, max int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoginLimiter{client: client, max: max, window: window, logger: logger}
}

func (l *LoginLimiter) enabled() bool {
	return l != nil && l.client != nil && l.max > 0
}

func loginFailureKey(username string) string {
	return loginFailureKeyPrefix + strings.ToLower(strings.TrimSpace(username))
}

// Check returns TOO_MANY_ATTEMPTS once the username has reached the failure limit.
func (l *LoginLimiter) Check(ctx context.Context, username string) error {
	if !l.enabled() {
		return nil
	}
	key := loginFailureKey(username)
	count, err := l.client.Get(ctx, key).Int()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
	if count < l.max {
		return nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = l.window
	}
	return apperrors.NewTooManyAttempts(int(ttl.Round(time.Second) / time.Second))
}

// RecordFailure increments the failure counter, starting the window on the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	key := loginFailureKey(username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username string) {
	if !l.enabled() {
		return
	}
	if err := l.client.Del(ctx, loginFailureKey(username)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
