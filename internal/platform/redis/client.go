// Package redis holds the Redis-backed components: the connection setup and
// the per-user daily generation quota.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/ideaflow-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewClient connects to the Redis server described by cfg and verifies the
// connection with a PING.
func NewClient(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if logger != nil {
		logger.Info("Connected to Redis", "addr", cfg.Addr, "db", cfg.DB)
	}
	return client, nil
}
