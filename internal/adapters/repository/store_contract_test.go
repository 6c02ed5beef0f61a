package repository

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runStoreContract exercises the behaviour every KeyValueStore must share.
func runStoreContract(t *testing.T, store domain.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Missing key is ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Set then Get round-trips bytes", func(t *testing.T) {
		payload := []byte(`[{"date":"2026-01-01","rating":7}]`)
		require.NoError(t, store.Set(ctx, domain.KeyMoodRatings, payload))

		got, err := store.Get(ctx, domain.KeyMoodRatings)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("Set overwrites the whole value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, domain.KeyInsights, []byte(`["a","b","c"]`)))
		require.NoError(t, store.Set(ctx, domain.KeyInsights, []byte(`["d"]`)))

		got, err := store.Get(ctx, domain.KeyInsights)
		require.NoError(t, err)
		assert.Equal(t, []byte(`["d"]`), got)
	})

	t.Run("Delete removes several keys and ignores absent ones", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, domain.KeyUserProfile, []byte(`{}`)))
		require.NoError(t, store.Set(ctx, domain.KeyInitializedAt, []byte(`"2026-01-01T00:00:00Z"`)))

		require.NoError(t, store.Delete(ctx, domain.KeyUserProfile, domain.KeyInitializedAt, "never-written"))

		_, err := store.Get(ctx, domain.KeyUserProfile)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
		_, err = store.Get(ctx, domain.KeyInitializedAt)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)

		assert.NoError(t, store.Delete(ctx))
	})
}
