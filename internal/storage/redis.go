package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSession is a SessionStore that keeps the inventory in Redis with an
// expiry, so a session outlives the process but not the day.
type RedisSession struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions configures a RedisSession.
type RedisOptions struct {
	Addr string
	DB   int
	// TTL is refreshed on every write. Zero keeps keys forever.
	TTL time.Duration
}

// NewRedisSession connects to Redis. The connection is lazy; an unreachable
// server surfaces as an error from Get or Set.
func NewRedisSession(opts RedisOptions) *RedisSession {
	client := redis.NewClient(&redis.Options{
		Addr: opts.Addr,
		DB:   opts.DB,
	})
	return &RedisSession{client: client, ttl: opts.TTL}
}

// Get returns the bytes under key.
func (r *RedisSession) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrUnavailable
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores data under key and refreshes its expiry.
func (r *RedisSession) Set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the client connection pool.
func (r *RedisSession) Close() error {
	return r.client.Close()
}
