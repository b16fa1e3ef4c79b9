package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "loan-scheduler:ratelimit:"

// redisLimiter is a fixed window counter shared by every replica pointing at the same Redis.
type redisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

func newRedisLimiter(client *redis.Client, limit int64, window time.Duration, logger *slog.Logger) *redisLimiter {
	return &redisLimiter{
		client: client,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

func (rl *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := redisKeyPrefix + key

	pipe := rl.client.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	ttlCmd := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit pipeline for %s: %w", redisKey, err)
	}

	count, err := incrCmd.Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr for %s: %w", redisKey, err)
	}

	// A key without expiry would count forever.
	if ttl, err := ttlCmd.Result(); err != nil || ttl < 0 {
		if err := rl.client.Expire(ctx, redisKey, rl.window).Err(); err != nil {
			rl.logger.ErrorContext(ctx, "Failed to set Redis EXPIRE for rate limit key", "error", err, "key", redisKey)
		}
	}

	return count <= rl.limit, nil
}
