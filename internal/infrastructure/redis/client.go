// Package redis connects the webhook inbox and the health monitor to Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/studentos/backend/internal/config"
)

// NewClient dials Redis and fails fast when it is unreachable: the webhook
// surface cannot accept deliveries without its queue.
func NewClient(cfg config.RedisConfig) (*redislib.Client, error) {
	opts, err := redislib.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	// REDIS_PASSWORD and REDIS_DB override whatever the URL encodes.
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client := redislib.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
