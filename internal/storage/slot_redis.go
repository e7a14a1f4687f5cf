package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot stores the image under Prefix+key with no expiry.
type RedisSlot struct {
	Client *redis.Client
	Prefix string
}

func NewRedisSlot(client *redis.Client, prefix string) *RedisSlot {
	return &RedisSlot{Client: client, Prefix: prefix}
}

func (r *RedisSlot) Load(ctx context.Context, key string) (string, bool, error) {
	v, err := r.Client.Get(ctx, r.Prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis slot: get %s: %w", r.Prefix+key, err)
	}
	return v, true, nil
}

func (r *RedisSlot) Save(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, r.Prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis slot: set %s: %w", r.Prefix+key, err)
	}
	return nil
}
