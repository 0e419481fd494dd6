package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"codeberg.org/snonux/lingopop/internal/logger"
)

// RedisStore keeps values as plain redis strings under a key prefix
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	logger *logger.Logger
}

// NewRedisStore connects and pings the server
func NewRedisStore(ctx context.Context, addr string, db int, log *logger.Logger) (*RedisStore, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Debug("RedisStore opened", "addr", addr, "db", db)
	return &RedisStore{rdb: rdb, prefix: "lingopop:", logger: log}, nil
}

// Get reads the value for key
func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, nil
}

// Set writes the value for key without expiry
func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close closes the client
func (r *RedisStore) Close() error {
	return r.rdb.Close()
}
