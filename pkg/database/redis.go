package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OpenRedis connects to a Redis-compatible key-value store (Vercel KV,
// Upstash, plain Redis). rawURL is a redis:// or rediss:// URL; a non-empty
// token overrides the password embedded in it.
func OpenRedis(ctx context.Context, rawURL, token string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid kv url: %w", err)
	}
	if token != "" {
		opts.Password = token
	}
	rdb := redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctxPing).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("kv ping failed: %w", err)
	}
	return rdb, nil
}
