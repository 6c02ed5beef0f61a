package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInsightNotFound    = fmt.Errorf("insight %w", ErrNotFound)
	ErrInvalidInsightType = errors.New("invalid insight type (must be weekly_summary, burnout_alert, or trend_analysis)")
)

type InsightType string

const (
	InsightWeeklySummary InsightType = "weekly_summary"
	InsightBurnoutAlert  InsightType = "burnout_alert"
	InsightTrendAnalysis InsightType = "trend_analysis"
)

func (t InsightType) Valid() bool {
	switch t {
	case InsightWeeklySummary, InsightBurnoutAlert, InsightTrendAnalysis:
		return true
	}
	return false
}

// Insight is a narrative record. Data carries the type-specific payload
// (WeeklySummaryData, BurnoutAlertData or TrendAnalysisData) and may be empty.
type Insight struct {
	ID             string          `json:"id"`
	Type           InsightType     `json:"insight_type"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Data           json.RawMessage `json:"data,omitempty"`
	DateRangeStart string          `json:"date_range_start"`
	DateRangeEnd   string          `json:"date_range_end"`
	CreatedAt      time.Time       `json:"created_at"`
	IsHelpful      *bool           `json:"is_helpful,omitempty"`
}

// DecodeData unmarshals the payload into v. It is a no-op for insights without data.
func (i *Insight) DecodeData(v any) error {
	if len(i.Data) == 0 {
		return nil
	}
	return json.Unmarshal(i.Data, v)
}

type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

type KeyMetric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Trend  Trend  `json:"trend"`
	Status string `json:"status"`
}

type Recommendation struct {
	Category string `json:"category"`
	Text     string `json:"text"`
	Impact   Tier   `json:"impact"`
}

type WeeklySummaryData struct {
	Summary         string           `json:"summary"`
	KeyMetrics      []KeyMetric      `json:"key_metrics"`
	FocusAreas      []string         `json:"focus_areas"`
	Recommendations []Recommendation `json:"recommendations"`
}

type WarningSign struct {
	Sign     string `json:"sign"`
	Severity Tier   `json:"severity"`
}

type ImmediateAction struct {
	Action    string `json:"action"`
	Rationale string `json:"rationale"`
	Timeframe string `json:"timeframe"`
}

type BurnoutAlertData struct {
	RiskLevel        RiskLevel         `json:"risk_level"`
	Message          string            `json:"message"`
	WarningSigns     []WarningSign     `json:"warning_signs"`
	ImmediateActions []ImmediateAction `json:"immediate_actions"`
	SupportResources []string          `json:"support_resources"`
}

type MetricTrend struct {
	Metric       string `json:"metric"`
	Direction    Trend  `json:"direction"`
	Significance Tier   `json:"significance"`
	Description  string `json:"description"`
}

type EvidenceRecommendation struct {
	Recommendation string `json:"recommendation"`
	BasedOn        string `json:"based_on"`
}

type TrendAnalysisData struct {
	Overview        string                   `json:"overview"`
	Trends          []MetricTrend            `json:"trends"`
	Patterns        []string                 `json:"patterns"`
	Recommendations []EvidenceRecommendation `json:"recommendations"`
}

type GenerateInsightInput struct {
	Type InsightType `json:"insight_type"`
	Days int         `json:"days"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
