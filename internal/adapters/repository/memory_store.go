package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*InMemoryStore)(nil)

type InMemoryStore struct {
	store map[string][]byte

	mu sync.RWMutex
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		store: make(map[string][]byte),
	}
}

func (r *InMemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.store[key]
	if !ok {
		return nil, domain.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

func (r *InMemoryStore) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[key] = append([]byte(nil), value...)
	return nil
}

func (r *InMemoryStore) Delete(ctx context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		delete(r.store, key)
	}
	return nil
}

// Len reports how many keys are stored.
func (r *InMemoryStore) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.store)
}
