package ratelimit

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wildhaven/cms-auth/internal/config"
)

func TestAllow_DisabledAlwaysPasses(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(nil, zap.NewNop(), config.RateLimitConfig{Enabled: false, MaxAttempts: 1})
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow(context.Background(), "203.0.113.7", "login"))
	}
}

func TestAllow_FailsOpenWithoutRedis(t *testing.T) {
	t.Parallel()

	// No reachable Redis: the limiter must not lock callers out.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	limiter := NewLimiter(client, zap.NewNop(), config.RateLimitConfig{
		Enabled:       true,
		MaxAttempts:   1,
		WindowSeconds: 60,
	})
	assert.True(t, limiter.Allow(context.Background(), "203.0.113.7", "login"))
	assert.True(t, limiter.Allow(context.Background(), "203.0.113.7", "login"))
}

func TestAllow_NilClientPasses(t *testing.T) {
	t.Parallel()

	limiter := NewLimiter(nil, zap.NewNop(), config.RateLimitConfig{Enabled: true, MaxAttempts: 1})
	assert.True(t, limiter.Allow(context.Background(), "203.0.113.7", "login"))
}

func TestAttemptKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ratelimit:login:203.0.113.7", attemptKey("203.0.113.7", "login"))
}
