package repository

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/logging"
	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "storefront:login_attempts:"

type RateLimitRepository interface {
	// CheckLoginRateLimit records one attempt for account and reports whether
	// it is allowed, how many attempts are left and, once blocked, how many
	// seconds until the oldest attempt leaves the window.
	CheckLoginRateLimit(ctx context.Context, account string) (bool, int, int, error)
}

type redisRateLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
	now         func() time.Time
}

func NewRateLimitRepo(client *redis.Client, cfg config.RateConfig) RateLimitRepository {
	return &redisRateLimiter{
		client:      client,
		maxAttempts: cfg.MaxAttempts,
		window:      cfg.WindowSize,
		now:         time.Now,
	}
}

// Attempts live in a sorted set scored by unix millis; each call trims the
// set to the window before counting, so the window slides per attempt.
func (r *redisRateLimiter) CheckLoginRateLimit(ctx context.Context, account string) (bool, int, int, error) {

	logger := logging.FromContext(ctx)

	now := r.now()
	key := loginAttemptsPrefix + strings.ToLower(strings.TrimSpace(account))
	windowStart := now.Add(-r.window).UnixMilli()

	var attempts *redis.IntCmd
	var oldest *redis.ZSliceCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixMilli()), Member: now.UnixNano()})
		attempts = pipe.ZCard(ctx, key)
		oldest = pipe.ZRangeWithScores(ctx, key, 0, 0)
		pipe.PExpire(ctx, key, r.window)
		return nil
	})
	if err != nil {
		logger.Error("Login rate limit check failed", slog.String("key", key), slog.Any("error", err))
		return false, 0, 0, fmt.Errorf("rate limit pipeline: %w", err)
	}

	count := attempts.Val()
	if count <= r.maxAttempts {
		return true, int(r.maxAttempts - count), 0, nil
	}

	wait := r.window
	if first := oldest.Val(); len(first) > 0 {
		wait = time.UnixMilli(int64(first[0].Score)).Add(r.window).Sub(now)
	}

	retryAfter := max(int(math.Ceil(wait.Seconds())), 1)

	logger.Warn("Login rate limit exceeded", slog.String("key", key), slog.Int64("attempts", count), slog.Int("retryAfter", retryAfter))

	return false, 0, retryAfter, nil
}
