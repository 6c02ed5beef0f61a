package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*RedisStore)(nil)

type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	return &RedisStore{
		client:    client,
		namespace: namespace,
	}
}

func (s *RedisStore) key(k string) string {
	return s.namespace + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis: get %s failed: %w", key, err)
	}
	return val, nil
}

// Set stores the value without expiry; demo freshness is governed by the marker.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s failed: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, s.key(k))
	}

	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis: delete failed: %w", err)
	}
	return nil
}
