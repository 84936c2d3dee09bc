package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisSlot keeps the payload under a Redis key. The payload never
// expires; durability depends on the Redis persistence configuration.
type RedisSlot struct {
	client *redis.Client
	key    string
}

var _ Slot = (*RedisSlot)(nil)

// NewRedisSlot builds a client and verifies connectivity with a short
// ping. Connection failures are returned rather than deferred so the
// operator learns about a bad address at startup.
func NewRedisSlot(addr, password string, db int, key string) (*RedisSlot, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisSlot{client: client, key: key}, nil
}

func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisSlot) Close() error { return s.client.Close() }
