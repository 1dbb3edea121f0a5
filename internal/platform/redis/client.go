// Package redis provides a Redis-backed read-through cache for category
// lookups.
package redis

import (
	"context"
	"fmt"
	"time"

	gredis "github.com/redis/go-redis/v9"
)

// NewClient parses url, connects and verifies the connection with a PING.
func NewClient(ctx context.Context, url string) (*gredis.Client, error) {
	opts, err := gredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := gredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
