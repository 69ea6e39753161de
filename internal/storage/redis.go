package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisNamespace = "sutra"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// RedisStore keeps values as plain strings under the "sutra:" namespace.
type RedisStore struct {
	cmd cmdable
}

// NewRedisStore connects to the redis url and verifies connectivity.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{cmd: client}, nil
}

func (s *RedisStore) namespaced(key string) string {
	return redisNamespace + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}
	v, err := s.cmd.Get(ctx, s.namespaced(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.cmd.Set(ctx, s.namespaced(key), string(value), 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.cmd.Del(ctx, s.namespaced(key)).Err()
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.cmd.Ping(ctx).Err()
}

// Close releases the client connection pool.
func (s *RedisStore) Close() error {
	if c, ok := s.cmd.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
