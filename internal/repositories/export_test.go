package repository

import (
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRateLimitRepoAt pins the limiter clock for tests.
func NewRateLimitRepoAt(client *redis.Client, cfg config.RateConfig, now time.Time) RateLimitRepository {
	limiter := NewRateLimitRepo(client, cfg).(*redisRateLimiter)
	limiter.now = func() time.Time { return now }
	return limiter
}
