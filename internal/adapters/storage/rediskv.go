package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisKV stores blobs as plain redis string values. Keys are namespaced
// so one redis database can host other data alongside.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV connects to redis and verifies the connection.
func NewRedisKV(ctx context.Context, addr, password string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisKV{client: client, prefix: "studytracker:"}, nil
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get blob %q: %w", key, err)
	}
	return blob, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key string, blob []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("set blob %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("remove blob %q: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}
