// Package cache holds the Redis-backed read models and the category deletion
// lock used by the menu service.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/backoffice/pkg/config"
)

const pingTimeout = 2 * time.Second

// RedisClient is the shared connection pool. Every key written through it is
// prefixed with the configured namespace so several deployments can share one
// Redis database.
type RedisClient struct {
	client    *redis.Client
	namespace string
}

// NewRedisClient connects using REDIS_URL and the pool settings from cfg and
// verifies the connection before returning.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*RedisClient, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisClient{client: rdb, namespace: cfg.RedisKeyPrefix}, nil
}

func redisOptions(cfg *config.Config) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	// Shows up in CLIENT LIST, which is how a stuck category lock is traced
	// back to the instance holding it.
	opts.ClientName = cfg.ServiceName
	opts.PoolSize = cfg.RedisPoolSize
	if opts.PoolSize <= 0 {
		opts.PoolSize = 10
	}
	opts.MinIdleConns = max(1, opts.PoolSize/5)
	opts.MaxRetries = 3
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = opts.ReadTimeout + time.Second
	return opts, nil
}

// Key joins parts with ':' under the client namespace. A nil client or an
// empty namespace yields the bare key.
func (r *RedisClient) Key(parts ...string) string {
	key := strings.Join(parts, ":")
	if r == nil || r.namespace == "" {
		return key
	}
	return r.namespace + ":" + key
}

// Ping checks the Redis connection health.
func (r *RedisClient) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (r *RedisClient) Close() error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("redis close: %w", err)
	}
	return nil
}

// Client returns the underlying redis.Client for direct use.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}
