package domain

import "context"

// Client is the operation set the application consumes. The demo store and the
// live backend client both implement it, so callers never branch on the mode.
type Client interface {
	// GetDashboard composes the latest metric, mood, burnout score and insight.
	GetDashboard(ctx context.Context) (*Dashboard, error)

	GetHealthMetrics(ctx context.Context, r DateRange) ([]DailyMetric, error)

	GetMoodRatings(ctx context.Context, r DateRange) ([]MoodRating, error)

	// CreateMoodRating upserts by date: an existing rating for the date is replaced.
	CreateMoodRating(ctx context.Context, input CreateMoodInput) (*MoodRating, error)

	UpdateMoodRating(ctx context.Context, date string, input UpdateMoodInput) (*MoodRating, error)

	DeleteMoodRating(ctx context.Context, date string) error

	GetMoodStats(ctx context.Context, days int) (*MoodStats, error)

	CalculateBurnoutRisk(ctx context.Context, days int) (*BurnoutScore, error)

	GetBurnoutHistory(ctx context.Context, r DateRange) ([]BurnoutScore, error)

	// GetInsights returns insights newest first.
	GetInsights(ctx context.Context, limit int) ([]Insight, error)

	GenerateInsight(ctx context.Context, input GenerateInsightInput) (*Insight, error)

	UpdateInsightFeedback(ctx context.Context, id string, helpful bool) (*Insight, error)

	DeleteInsight(ctx context.Context, id string) (*MessageResponse, error)

	GetWearableConnection(ctx context.Context) (*WearableConnection, error)

	// ConnectWearable starts the provider OAuth flow and returns its authorization URL.
	ConnectWearable(ctx context.Context, provider string) (string, error)

	SyncWearable(ctx context.Context) (*SyncResult, error)

	GetProfile(ctx context.Context) (*UserProfile, error)

	Register(ctx context.Context, input RegisterInput) (*UserProfile, error)
}
