package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var ErrKeyNotFound = errors.New("key not found")

type RedisStorage struct {
	Connection *redis.Client
}

func NewRedisStorage(ctx context.Context, opts *redis.Options) (*RedisStorage, error) {
	conn := redis.NewClient(opts)

	_, err := conn.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStorage{Connection: conn}, nil
}

func (that *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := that.Connection.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, nil
}

// Set - stores value under key without expiration, replacing any previous value.
func (that *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := that.Connection.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

func (that *RedisStorage) Close() error {
	return that.Connection.Close()
}
