package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/generator"
)

const (
	DefaultFreshness = 7 * 24 * time.Hour
	DefaultSyncDelay = 2 * time.Second

	defaultStatsDays = 30
)

// DemoStore is the offline implementation of domain.Client. It owns the demo
// dataset lifecycle and serves every read and write from a KeyValueStore.
type DemoStore struct {
	store     domain.KeyValueStore
	src       generator.Source
	now       func() time.Time
	freshness time.Duration
	syncDelay time.Duration
	logger    *zap.Logger

	// mu serializes read-modify-write cycles on whole collections. Reads hold
	// it shared so a read-through cache never refills from a pre-write value
	// while a write is in flight.
	mu sync.RWMutex
}

var _ domain.Client = (*DemoStore)(nil)

type DemoOption func(*DemoStore)

func WithSource(src generator.Source) DemoOption {
	return func(s *DemoStore) { s.src = src }
}

func WithClock(now func() time.Time) DemoOption {
	return func(s *DemoStore) { s.now = now }
}

func WithFreshness(d time.Duration) DemoOption {
	return func(s *DemoStore) { s.freshness = d }
}

func WithSyncDelay(d time.Duration) DemoOption {
	return func(s *DemoStore) { s.syncDelay = d }
}

func WithLogger(l *zap.Logger) DemoOption {
	return func(s *DemoStore) { s.logger = l }
}

func NewDemoStore(store domain.KeyValueStore, opts ...DemoOption) *DemoStore {
	s := &DemoStore{
		store:     store,
		now:       time.Now,
		freshness: DefaultFreshness,
		syncDelay: DefaultSyncDelay,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = generator.NewSource(0)
	}
	return s
}

// DemoStatus describes the persisted dataset.
type DemoStatus struct {
	Initialized   bool           `json:"initialized"`
	Fresh         bool           `json:"fresh"`
	InitializedAt *time.Time     `json:"initialized_at,omitempty"`
	ExpiresAt     *time.Time     `json:"expires_at,omitempty"`
	Counts        map[string]int `json:"counts"`
}

// Initialize generates and persists a full dataset unless a marker younger
// than the freshness window already exists. The marker is written last so an
// interrupted run is regenerated next time.
func (s *DemoStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initializeLocked(ctx)
}

func (s *DemoStore) initializeLocked(ctx context.Context) error {
	at, ok, err := s.marker(ctx)
	if err != nil {
		return err
	}
	now := s.now()
	if ok && now.Sub(at) < s.freshness {
		s.logger.Debug("demo data fresh, skipping", zap.Time("initialized_at", at))
		return nil
	}

	ds, err := generator.Generate(now, s.src)
	if err != nil {
		return fmt.Errorf("demo store: generate: %w", err)
	}

	writes := []struct {
		key   string
		value any
	}{
		{domain.KeyHealthMetrics, ds.Metrics},
		{domain.KeyMoodRatings, ds.Moods},
		{domain.KeyBurnoutScores, ds.Scores},
		{domain.KeyInsights, ds.Insights},
		{domain.KeyUserProfile, ds.Profile},
		{domain.KeyWearableConnection, ds.Connection},
	}
	for _, w := range writes {
		if err := s.save(ctx, w.key, w.value); err != nil {
			return err
		}
	}

	stamp := now.UTC().Format(time.RFC3339Nano)
	if err := s.store.Set(ctx, domain.KeyInitializedAt, []byte(stamp)); err != nil {
		return fmt.Errorf("demo store: write marker: %w", err)
	}

	s.logger.Info("demo data generated",
		zap.Int("metrics", len(ds.Metrics)),
		zap.Int("moods", len(ds.Moods)),
		zap.Int("burnout_scores", len(ds.Scores)),
		zap.Int("insights", len(ds.Insights)),
	)
	return nil
}

// Reset drops everything and regenerates regardless of freshness.
func (s *DemoStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.clearLocked(ctx); err != nil {
		return err
	}
	return s.initializeLocked(ctx)
}

// Clear removes every collection and the marker without regenerating.
func (s *DemoStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearLocked(ctx)
}

func (s *DemoStore) clearLocked(ctx context.Context) error {
	if err := s.store.Delete(ctx, domain.CollectionKeys...); err != nil {
		return fmt.Errorf("demo store: clear: %w", err)
	}
	s.logger.Info("demo data cleared")
	return nil
}

func (s *DemoStore) IsInitialized(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok, err := s.marker(ctx)
	return ok, err
}

func (s *DemoStore) Status(ctx context.Context) (*DemoStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok, err := s.marker(ctx)
	if err != nil {
		return nil, err
	}

	status := &DemoStatus{Initialized: ok, Counts: make(map[string]int)}
	if ok {
		expires := at.Add(s.freshness)
		status.InitializedAt = &at
		status.ExpiresAt = &expires
		status.Fresh = s.now().Before(expires)
	}

	metrics, err := loadList[domain.DailyMetric](ctx, s.store, domain.KeyHealthMetrics)
	if err != nil {
		return nil, err
	}
	moods, err := loadList[domain.MoodRating](ctx, s.store, domain.KeyMoodRatings)
	if err != nil {
		return nil, err
	}
	scores, err := loadList[domain.BurnoutScore](ctx, s.store, domain.KeyBurnoutScores)
	if err != nil {
		return nil, err
	}
	insights, err := loadList[domain.Insight](ctx, s.store, domain.KeyInsights)
	if err != nil {
		return nil, err
	}

	status.Counts[domain.KeyHealthMetrics] = len(metrics)
	status.Counts[domain.KeyMoodRatings] = len(moods)
	status.Counts[domain.KeyBurnoutScores] = len(scores)
	status.Counts[domain.KeyInsights] = len(insights)
	return status, nil
}

func (s *DemoStore) marker(ctx context.Context) (time.Time, bool, error) {
	raw, err := s.store.Get(ctx, domain.KeyInitializedAt)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("demo store: read marker: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		// A corrupt marker is treated as absent so the next Initialize repairs it.
		s.logger.Warn("ignoring unreadable demo marker", zap.ByteString("value", raw))
		return time.Time{}, false, nil
	}
	return at, true, nil
}

func (s *DemoStore) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		metrics  []domain.DailyMetric
		moods    []domain.MoodRating
		scores   []domain.BurnoutScore
		insights []domain.Insight
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metrics, err = loadList[domain.DailyMetric](gctx, s.store, domain.KeyHealthMetrics)
		return err
	})
	g.Go(func() (err error) {
		moods, err = loadList[domain.MoodRating](gctx, s.store, domain.KeyMoodRatings)
		return err
	})
	g.Go(func() (err error) {
		scores, err = loadList[domain.BurnoutScore](gctx, s.store, domain.KeyBurnoutScores)
		return err
	})
	g.Go(func() (err error) {
		insights, err = loadList[domain.Insight](gctx, s.store, domain.KeyInsights)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dash := &domain.Dashboard{BurnoutTrend: domain.BurnoutTrendOf(scores)}
	if n := len(metrics); n > 0 {
		dash.LatestMetrics = &metrics[n-1]
	}
	if n := len(moods); n > 0 {
		dash.LatestMood = &moods[n-1]
	}
	if n := len(scores); n > 0 {
		dash.BurnoutRisk = &scores[n-1]
	}
	if len(insights) > 0 {
		generator.SortNewestFirst(insights)
		dash.LatestInsight = &insights[0]
	}
	return dash, nil
}

func (s *DemoStore) GetHealthMetrics(ctx context.Context, r domain.DateRange) ([]domain.DailyMetric, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	metrics, err := loadList[domain.DailyMetric](ctx, s.store, domain.KeyHealthMetrics)
	if err != nil {
		return nil, err
	}
	return filterByDate(metrics, r, func(m domain.DailyMetric) string { return m.Date }), nil
}

func (s *DemoStore) GetBurnoutHistory(ctx context.Context, r domain.DateRange) ([]domain.BurnoutScore, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores, err := loadList[domain.BurnoutScore](ctx, s.store, domain.KeyBurnoutScores)
	if err != nil {
		return nil, err
	}
	return filterByDate(scores, r, func(b domain.BurnoutScore) string { return b.Date }), nil
}

// CalculateBurnoutRisk returns the most recent stored score. Without one it
// scores the latest metric on the fly; days only matters to the live backend.
func (s *DemoStore) CalculateBurnoutRisk(ctx context.Context, days int) (*domain.BurnoutScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores, err := loadList[domain.BurnoutScore](ctx, s.store, domain.KeyBurnoutScores)
	if err != nil {
		return nil, err
	}
	if n := len(scores); n > 0 {
		return &scores[n-1], nil
	}

	metrics, err := loadList[domain.DailyMetric](ctx, s.store, domain.KeyHealthMetrics)
	if err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return nil, domain.ErrNoMetrics
	}
	score := generator.ScoreAt(metrics[len(metrics)-1], s.now().UTC(), s.src)
	return &score, nil
}

func (s *DemoStore) GetWearableConnection(ctx context.Context) (*domain.WearableConnection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.connection(ctx)
}

func (s *DemoStore) connection(ctx context.Context) (*domain.WearableConnection, error) {
	var conn domain.WearableConnection
	if err := s.loadDoc(ctx, domain.KeyWearableConnection, &conn); err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrConnectionNotFound
		}
		return nil, err
	}
	return &conn, nil
}

func (s *DemoStore) ConnectWearable(ctx context.Context, provider string) (string, error) {
	return "", fmt.Errorf("connect %s: %w", provider, domain.ErrUnsupported)
}

// SyncWearable waits for the simulated sync delay and then only bumps the
// connection's last-synced timestamp.
func (s *DemoStore) SyncWearable(ctx context.Context) (*domain.SyncResult, error) {
	if _, err := s.GetWearableConnection(ctx); err != nil {
		return nil, err
	}

	if s.syncDelay > 0 {
		timer := time.NewTimer(s.syncDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.connection(ctx)
	if err != nil {
		return nil, err
	}
	synced := s.now().UTC()
	conn.LastSyncedAt = &synced
	if err := s.save(ctx, domain.KeyWearableConnection, conn); err != nil {
		return nil, err
	}

	return &domain.SyncResult{
		Success:       true,
		Message:       "Demo sync completed",
		RecordsSynced: 0,
	}, nil
}

func (s *DemoStore) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var profile domain.UserProfile
	if err := s.loadDoc(ctx, domain.KeyUserProfile, &profile); err != nil {
		if errors.Is(err, domain.ErrKeyNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (s *DemoStore) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	return nil, fmt.Errorf("register: %w", domain.ErrUnsupported)
}

func (s *DemoStore) loadDoc(ctx context.Context, key string, v any) error {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("demo store: decode %s: %w", key, err)
	}
	return nil
}

func (s *DemoStore) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("demo store: encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("demo store: write %s: %w", key, err)
	}
	return nil
}

// loadList reads a JSON array collection. An absent key is an empty collection.
func loadList[T any](ctx context.Context, kv domain.KeyValueStore, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("demo store: read %s: %w", key, err)
	}
	items := []T{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("demo store: decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// filterByDate keeps date-ascending records inside r and then the most recent r.Limit.
func filterByDate[T any](items []T, r domain.DateRange, date func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if r.Contains(date(it)) {
			out = append(out, it)
		}
	}
	if r.Limit > 0 && len(out) > r.Limit {
		out = out[len(out)-r.Limit:]
	}
	return out
}

func sortByDate[T any](items []T, date func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return date(items[i]) < date(items[j]) })
}
