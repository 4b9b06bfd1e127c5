package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wildhaven/cms-auth/internal/config"
)

// Throttled endpoint names, part of the Redis key.
const (
	PurposeRegister = "register"
	PurposeLogin    = "login"
)

// Limiter throttles credential endpoints with a fixed window per client
// IP and purpose, backed by Redis. Fails open when Redis is unreachable
// so an outage never locks everyone out.
type Limiter struct {
	client *redis.Client
	logger *zap.Logger
	cfg    config.RateLimitConfig
}

// NewLimiter builds the limiter.
func NewLimiter(client *redis.Client, logger *zap.Logger, cfg config.RateLimitConfig) *Limiter {
	return &Limiter{client: client, logger: logger, cfg: cfg}
}

func attemptKey(ip, purpose string) string {
	return fmt.Sprintf("ratelimit:%s:%s", purpose, ip)
}

// Allow records an attempt and reports whether the caller is still
// within the window budget.
func (l *Limiter) Allow(ctx context.Context, ip, purpose string) bool {
	if l == nil || !l.cfg.Enabled || l.client == nil {
		return true
	}

	key := attemptKey(ip, purpose)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limit check failed", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cfg.Window()).Err(); err != nil {
			l.logger.Warn("rate limit expire failed", zap.Error(err))
		}
	}

	return count <= int64(l.cfg.MaxAttempts)
}

// Reset clears the window for a client, used after a successful login.
func (l *Limiter) Reset(ctx context.Context, ip, purpose string) {
	if l == nil || !l.cfg.Enabled || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, attemptKey(ip, purpose)).Err(); err != nil {
		l.logger.Warn("rate limit reset failed", zap.Error(err))
	}
}

// Window exposes the configured window, mainly for logging.
func (l *Limiter) Window() time.Duration {
	return l.cfg.Window()
}
