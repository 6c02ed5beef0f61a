package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

type MockClient struct {
	mock.Mock
}

func result[T any](args mock.Arguments) (*T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func list[T any](args mock.Arguments) ([]T, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockClient) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	return result[domain.Dashboard](m.Called(ctx))
}

func (m *MockClient) GetHealthMetrics(ctx context.Context, r domain.DateRange) ([]domain.DailyMetric, error) {
	return list[domain.DailyMetric](m.Called(ctx, r))
}

func (m *MockClient) GetMoodRatings(ctx context.Context, r domain.DateRange) ([]domain.MoodRating, error) {
	return list[domain.MoodRating](m.Called(ctx, r))
}

func (m *MockClient) CreateMoodRating(ctx context.Context, input domain.CreateMoodInput) (*domain.MoodRating, error) {
	return result[domain.MoodRating](m.Called(ctx, input))
}

func (m *MockClient) UpdateMoodRating(ctx context.Context, date string, input domain.UpdateMoodInput) (*domain.MoodRating, error) {
	return result[domain.MoodRating](m.Called(ctx, date, input))
}

func (m *MockClient) DeleteMoodRating(ctx context.Context, date string) error {
	return m.Called(ctx, date).Error(0)
}

func (m *MockClient) GetMoodStats(ctx context.Context, days int) (*domain.MoodStats, error) {
	return result[domain.MoodStats](m.Called(ctx, days))
}

func (m *MockClient) CalculateBurnoutRisk(ctx context.Context, days int) (*domain.BurnoutScore, error) {
	return result[domain.BurnoutScore](m.Called(ctx, days))
}

func (m *MockClient) GetBurnoutHistory(ctx context.Context, r domain.DateRange) ([]domain.BurnoutScore, error) {
	return list[domain.BurnoutScore](m.Called(ctx, r))
}

func (m *MockClient) GetInsights(ctx context.Context, limit int) ([]domain.Insight, error) {
	return list[domain.Insight](m.Called(ctx, limit))
}

func (m *MockClient) GenerateInsight(ctx context.Context, input domain.GenerateInsightInput) (*domain.Insight, error) {
	return result[domain.Insight](m.Called(ctx, input))
}

func (m *MockClient) UpdateInsightFeedback(ctx context.Context, id string, helpful bool) (*domain.Insight, error) {
	return result[domain.Insight](m.Called(ctx, id, helpful))
}

func (m *MockClient) DeleteInsight(ctx context.Context, id string) (*domain.MessageResponse, error) {
	return result[domain.MessageResponse](m.Called(ctx, id))
}

func (m *MockClient) GetWearableConnection(ctx context.Context) (*domain.WearableConnection, error) {
	return result[domain.WearableConnection](m.Called(ctx))
}

func (m *MockClient) ConnectWearable(ctx context.Context, provider string) (string, error) {
	args := m.Called(ctx, provider)
	return args.String(0), args.Error(1)
}

func (m *MockClient) SyncWearable(ctx context.Context) (*domain.SyncResult, error) {
	return result[domain.SyncResult](m.Called(ctx))
}

func (m *MockClient) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	return result[domain.UserProfile](m.Called(ctx))
}

func (m *MockClient) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	return result[domain.UserProfile](m.Called(ctx, input))
}
