package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the instance backing the login rate limiter and
// the order and notification caches.
func NewRedisClient(cfg *config.RedisConnect) (*redis.Client, error) {

	opt, err := redis.ParseURL(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url for %s: %w", cfg.Addr(), err)
	}
	opt.DB = cfg.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}

	slog.Info("✅ Connected to Redis", slog.String("addr", cfg.Addr()), slog.Int("db", cfg.DB))

	return client, nil
}
