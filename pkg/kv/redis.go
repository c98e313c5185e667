package kv

import (
	"context"
	"fmt"
	"time"
)

type redisStore interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	SlotKey(key string) string
}

// RedisSlot stores slot values under the client's slot namespace, no TTL.
type RedisSlot struct {
	client redisStore
}

func NewRedisSlot(client redisStore) (*RedisSlot, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSlot{client: client}, nil
}

func (r *RedisSlot) Get(ctx context.Context, key string) (string, bool, error) {
	return r.client.GetValue(ctx, r.client.SlotKey(key))
}

func (r *RedisSlot) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.SlotKey(key), value, 0)
}
