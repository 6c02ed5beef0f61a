package domain

import (
	"context"
	"fmt"
)

var ErrKeyNotFound = fmt.Errorf("storage key %w", ErrNotFound)

// Storage keys, relative to the store namespace.
const (
	KeyHealthMetrics      = "health_metrics"
	KeyMoodRatings        = "mood_ratings"
	KeyBurnoutScores      = "burnout_scores"
	KeyInsights           = "insights"
	KeyUserProfile        = "user_profile"
	KeyWearableConnection = "wearable_connection"
	KeyInitializedAt      = "initialized_at"
)

// CollectionKeys lists every key written by a full initialization, marker last.
var CollectionKeys = []string{
	KeyHealthMetrics,
	KeyMoodRatings,
	KeyBurnoutScores,
	KeyInsights,
	KeyUserProfile,
	KeyWearableConnection,
	KeyInitializedAt,
}

// KeyValueStore persists whole documents under string keys.
// Every write replaces the full value for its key.
type KeyValueStore interface {
	// Get returns ErrKeyNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the keys; absent keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}
