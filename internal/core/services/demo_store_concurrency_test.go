package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/generator"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

// refillingCache behaves like CachedStore: a miss reads the backing store and
// fills the cache afterwards, and writes only drop the cached copy. The gap
// between the read and the fill is where a concurrent write can slip in.
type refillingCache struct {
	backing *repository.InMemoryStore
	gap     time.Duration

	mu    sync.Mutex
	cache map[string][]byte
}

func newRefillingCache(gap time.Duration) *refillingCache {
	return &refillingCache{
		backing: repository.NewInMemoryStore(),
		gap:     gap,
		cache:   make(map[string][]byte),
	}
}

func (c *refillingCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	val, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return append([]byte(nil), val...), nil
	}

	val, err := c.backing.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	time.Sleep(c.gap)

	c.mu.Lock()
	c.cache[key] = val
	c.mu.Unlock()
	return append([]byte(nil), val...), nil
}

func (c *refillingCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.backing.Set(ctx, key, value); err != nil {
		return err
	}
	c.mu.Lock()
	delete(c.cache, key)
	c.mu.Unlock()
	return nil
}

func (c *refillingCache) Delete(ctx context.Context, keys ...string) error {
	if err := c.backing.Delete(ctx, keys...); err != nil {
		return err
	}
	c.mu.Lock()
	for _, k := range keys {
		delete(c.cache, k)
	}
	c.mu.Unlock()
	return nil
}

func TestDemoStore_ConcurrentReadsAndWrites(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache refills during writes lose no mood rating", func(t *testing.T) {
		kv := newRefillingCache(2 * time.Millisecond)
		store := services.NewDemoStore(kv,
			services.WithSource(generator.NewSource(42)),
			services.WithClock(func() time.Time { return testNow }),
			services.WithSyncDelay(0),
		)
		require.NoError(t, store.Initialize(ctx))

		const writers = 20
		var wg sync.WaitGroup
		errs := make(chan error, writers*3)

		for i := 0; i < writers; i++ {
			date := fmt.Sprintf("2026-04-%02d", i+1)
			wg.Add(3)
			go func() {
				defer wg.Done()
				if _, err := store.CreateMoodRating(ctx, domain.CreateMoodInput{Date: date, Rating: 6}); err != nil {
					errs <- err
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := store.GetMoodRatings(ctx, domain.DateRange{}); err != nil {
					errs <- err
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := store.GetDashboard(ctx); err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		moods, err := store.GetMoodRatings(ctx, domain.DateRange{StartDate: "2026-04-01", EndDate: "2026-04-30"})
		require.NoError(t, err)
		assert.Len(t, moods, writers)

		raw, err := kv.backing.Get(ctx, domain.KeyMoodRatings)
		require.NoError(t, err)
		for i := 0; i < writers; i++ {
			assert.Contains(t, string(raw), fmt.Sprintf(`"date":"2026-04-%02d"`, i+1))
		}
	})

	t.Run("Sync and connection reads do not deadlock", func(t *testing.T) {
		store, _, _ := newTestDemoStore(t)
		require.NoError(t, store.Initialize(ctx))

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := store.SyncWearable(ctx)
				assert.NoError(t, err)
			}()
			go func() {
				defer wg.Done()
				_, err := store.GetWearableConnection(ctx)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}
