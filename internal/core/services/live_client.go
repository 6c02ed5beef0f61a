package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

// APIError is a non-2xx answer from the live backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("live api: %d %s", e.StatusCode, e.Message)
}

// Unwrap lets callers match a 404 with errors.Is(err, domain.ErrNotFound).
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// LiveClient forwards every operation to the real backend over HTTP.
type LiveClient struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

var _ domain.Client = (*LiveClient)(nil)

func NewLiveClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *LiveClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LiveClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *LiveClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("live api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("live api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("live api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: readDetail(resp.Body)}
		c.logger.Debug("live api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("live api: decode %s: %w", path, err)
	}
	return nil
}

// readDetail extracts {"detail": "..."} or {"error": "..."} from an error body.
func readDetail(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var payload struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func rangeQuery(r domain.DateRange) url.Values {
	q := url.Values{}
	if r.StartDate != "" {
		q.Set("start_date", r.StartDate)
	}
	if r.EndDate != "" {
		q.Set("end_date", r.EndDate)
	}
	if r.Limit > 0 {
		q.Set("limit", strconv.Itoa(r.Limit))
	}
	return q
}

func daysQuery(days int) url.Values {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	return q
}

func (c *LiveClient) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	var out domain.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/v1/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) GetHealthMetrics(ctx context.Context, r domain.DateRange) ([]domain.DailyMetric, error) {
	out := []domain.DailyMetric{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/health-metrics", rangeQuery(r), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LiveClient) GetMoodRatings(ctx context.Context, r domain.DateRange) ([]domain.MoodRating, error) {
	out := []domain.MoodRating{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/mood-ratings", rangeQuery(r), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LiveClient) CreateMoodRating(ctx context.Context, input domain.CreateMoodInput) (*domain.MoodRating, error) {
	var out domain.MoodRating
	if err := c.do(ctx, http.MethodPost, "/api/v1/mood-ratings", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) UpdateMoodRating(ctx context.Context, date string, input domain.UpdateMoodInput) (*domain.MoodRating, error) {
	var out domain.MoodRating
	if err := c.do(ctx, http.MethodPut, "/api/v1/mood-ratings/"+url.PathEscape(date), nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) DeleteMoodRating(ctx context.Context, date string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/mood-ratings/"+url.PathEscape(date), nil, nil, nil)
}

func (c *LiveClient) GetMoodStats(ctx context.Context, days int) (*domain.MoodStats, error) {
	var out domain.MoodStats
	if err := c.do(ctx, http.MethodGet, "/api/v1/mood-ratings/stats", daysQuery(days), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) CalculateBurnoutRisk(ctx context.Context, days int) (*domain.BurnoutScore, error) {
	var out domain.BurnoutScore
	if err := c.do(ctx, http.MethodPost, "/api/v1/burnout/calculate", daysQuery(days), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) GetBurnoutHistory(ctx context.Context, r domain.DateRange) ([]domain.BurnoutScore, error) {
	out := []domain.BurnoutScore{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/burnout/history", rangeQuery(r), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LiveClient) GetInsights(ctx context.Context, limit int) ([]domain.Insight, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	out := []domain.Insight{}
	if err := c.do(ctx, http.MethodGet, "/api/v1/insights", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LiveClient) GenerateInsight(ctx context.Context, input domain.GenerateInsightInput) (*domain.Insight, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrInvalidInsightType
	}
	var out domain.Insight
	if err := c.do(ctx, http.MethodPost, "/api/v1/insights/generate", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) UpdateInsightFeedback(ctx context.Context, id string, helpful bool) (*domain.Insight, error) {
	body := map[string]bool{"is_helpful": helpful}
	var out domain.Insight
	if err := c.do(ctx, http.MethodPatch, "/api/v1/insights/"+url.PathEscape(id)+"/feedback", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) DeleteInsight(ctx context.Context, id string) (*domain.MessageResponse, error) {
	var out domain.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/api/v1/insights/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) GetWearableConnection(ctx context.Context) (*domain.WearableConnection, error) {
	var out domain.WearableConnection
	err := c.do(ctx, http.MethodGet, "/api/v1/wearables/connection", nil, nil, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnectionNotFound, err)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) ConnectWearable(ctx context.Context, provider string) (string, error) {
	var out struct {
		AuthorizationURL string `json:"authorization_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/wearables/connect/"+url.PathEscape(provider), nil, nil, &out); err != nil {
		return "", err
	}
	return out.AuthorizationURL, nil
}

func (c *LiveClient) SyncWearable(ctx context.Context) (*domain.SyncResult, error) {
	var out domain.SyncResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/wearables/sync", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/v1/users/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *LiveClient) Register(ctx context.Context, input domain.RegisterInput) (*domain.UserProfile, error) {
	var out domain.UserProfile
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/register", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
