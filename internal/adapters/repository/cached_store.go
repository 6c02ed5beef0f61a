package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*CachedStore)(nil)

const defaultCacheTTL = 30 * time.Minute

// CachedStore is a Redis read-through cache in front of a slower store.
// Writes go to the next store first, then drop the cached copy.
type CachedStore struct {
	next   domain.KeyValueStore
	cache  *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

func NewCachedStore(next domain.KeyValueStore, cache *redis.Client, prefix string, log *zap.Logger) *CachedStore {
	return &CachedStore{
		next:   next,
		cache:  cache,
		prefix: "cache:" + prefix,
		ttl:    defaultCacheTTL,
		log:    log,
	}
}

func (r *CachedStore) cacheKey(key string) string {
	return r.prefix + key
}

func (r *CachedStore) invalidate(ctx context.Context, keys ...string) {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.cacheKey(k))
	}
	if err := r.cache.Del(ctx, full...).Err(); err != nil {
		r.log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

func (r *CachedStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.cache.Get(ctx, r.cacheKey(key)).Bytes()
	if err == nil {
		return val, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	val, err = r.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if setErr := r.cache.Set(ctx, r.cacheKey(key), val, r.ttl).Err(); setErr != nil {
		r.log.Warn("cache write failed", zap.String("key", key), zap.Error(setErr))
	}
	return val, nil
}

func (r *CachedStore) Set(ctx context.Context, key string, value []byte) error {
	if err := r.next.Set(ctx, key, value); err != nil {
		return err
	}
	r.invalidate(ctx, key)
	return nil
}

func (r *CachedStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.next.Delete(ctx, keys...); err != nil {
		return err
	}
	r.invalidate(ctx, keys...)
	return nil
}
