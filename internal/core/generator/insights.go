package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

// catalog ids are stable for a given window start
var insightNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("kanso-demo-engine/insights"))

const insightPublishHour = 9

type catalogEntry struct {
	key     string
	typ     domain.InsightType
	day     int
	span    int
	title   string
	content string
	data    any
}

var catalog = []catalogEntry{
	{
		key:   "weekly-baseline",
		typ:   domain.InsightWeeklySummary,
		day:   13,
		span:  7,
		title: "A steady, well-recovered week",
		content: "Your recovery stayed in the green all week and your sleep was consistent. " +
			"Strain matched what your body could absorb.",
		data: domain.WeeklySummaryData{
			Summary: "Balanced training load with strong overnight recovery.",
			KeyMetrics: []domain.KeyMetric{
				{Name: "Recovery", Value: "76%", Trend: domain.TrendStable, Status: "good"},
				{Name: "HRV", Value: "66 ms", Trend: domain.TrendStable, Status: "good"},
				{Name: "Sleep", Value: "7h 32m", Trend: domain.TrendUp, Status: "good"},
			},
			FocusAreas: []string{"Keep bedtime consistent", "Maintain current training volume"},
			Recommendations: []domain.Recommendation{
				{Category: "sleep", Text: "Protect your 10:30pm wind-down routine.", Impact: domain.TierMedium},
				{Category: "activity", Text: "Add one mobility session to balance strength work.", Impact: domain.TierLow},
			},
		},
	},
	{
		key:   "weekly-decline",
		typ:   domain.InsightWeeklySummary,
		day:   34,
		span:  7,
		title: "Recovery is slipping",
		content: "Recovery dropped for the second week in a row while strain kept climbing. " +
			"Sleep quality is down and your HRV is trending below your baseline.",
		data: domain.WeeklySummaryData{
			Summary: "Accumulating stress: load is outpacing recovery.",
			KeyMetrics: []domain.KeyMetric{
				{Name: "Recovery", Value: "58%", Trend: domain.TrendDown, Status: "warning"},
				{Name: "HRV", Value: "51 ms", Trend: domain.TrendDown, Status: "warning"},
				{Name: "Sleep quality", Value: "66", Trend: domain.TrendDown, Status: "warning"},
				{Name: "Day strain", Value: "14.6", Trend: domain.TrendUp, Status: "elevated"},
			},
			FocusAreas: []string{"Reduce late-evening screen time", "Cut one high-intensity session", "Schedule real breaks during work"},
			Recommendations: []domain.Recommendation{
				{Category: "recovery", Text: "Swap tomorrow's interval session for an easy walk.", Impact: domain.TierHigh},
				{Category: "sleep", Text: "Aim for lights out 30 minutes earlier this week.", Impact: domain.TierHigh},
				{Category: "stress", Text: "Try a 10 minute breathing session after work.", Impact: domain.TierMedium},
			},
		},
	},
	{
		key:   "alert-elevated",
		typ:   domain.InsightBurnoutAlert,
		day:   36,
		span:  14,
		title: "Elevated burnout risk detected",
		content: "Several recovery signals have declined together over the past two weeks. " +
			"This pattern often precedes burnout if the load is not reduced.",
		data: domain.BurnoutAlertData{
			RiskLevel: domain.RiskHigh,
			Message:   "Your body is showing sustained signs of stress. Now is the time to ease off.",
			WarningSigns: []domain.WarningSign{
				{Sign: "HRV 20% below your baseline", Severity: domain.TierHigh},
				{Sign: "Resting heart rate up 6 bpm", Severity: domain.TierMedium},
				{Sign: "Sleep quality below 65 on 5 of the last 7 nights", Severity: domain.TierMedium},
			},
			ImmediateActions: []domain.ImmediateAction{
				{Action: "Take a full rest day", Rationale: "Lets your nervous system reset after a heavy block.", Timeframe: "next 48 hours"},
				{Action: "Move high-stakes meetings", Rationale: "Lowers cognitive load while recovery is low.", Timeframe: "this week"},
			},
			SupportResources: []string{
				"Talk to your manager about workload",
				"Employee assistance program",
				"Guided breathing exercises in the app",
			},
		},
	},
	{
		key:   "alert-critical",
		typ:   domain.InsightBurnoutAlert,
		day:   39,
		span:  14,
		title: "Critical: recovery at its lowest point",
		content: "Recovery, HRV and sleep all hit their lowest values of the quarter while strain peaked. " +
			"Prioritise rest before anything else.",
		data: domain.BurnoutAlertData{
			RiskLevel: domain.RiskCritical,
			Message:   "Your stress load is at a critical level. Please take it seriously.",
			WarningSigns: []domain.WarningSign{
				{Sign: "Recovery below 50% for 4 consecutive days", Severity: domain.TierHigh},
				{Sign: "HRV 30% below baseline", Severity: domain.TierHigh},
				{Sign: "Day strain above 15 despite low recovery", Severity: domain.TierHigh},
			},
			ImmediateActions: []domain.ImmediateAction{
				{Action: "Pause all structured training", Rationale: "Training on low recovery deepens the deficit.", Timeframe: "until recovery is above 60%"},
				{Action: "Sleep 8+ hours tonight", Rationale: "Sleep is the fastest lever on HRV.", Timeframe: "tonight"},
				{Action: "Block an afternoon off", Rationale: "Unstructured downtime reduces sympathetic load.", Timeframe: "this week"},
			},
			SupportResources: []string{
				"Speak with a healthcare professional",
				"Employee assistance program",
				"Crisis line if you feel overwhelmed",
			},
		},
	},
	{
		key:   "trend-rebound",
		typ:   domain.InsightTrendAnalysis,
		day:   47,
		span:  21,
		title: "You are bouncing back",
		content: "After the low point two weeks ago your recovery signals are climbing steadily. " +
			"The rest days are paying off.",
		data: domain.TrendAnalysisData{
			Overview: "Recovery-related metrics reversed direction and are improving week over week.",
			Trends: []domain.MetricTrend{
				{Metric: "recovery_score", Direction: domain.TrendUp, Significance: domain.TierHigh, Description: "Up 12 points from the trough."},
				{Metric: "heart_rate_variability", Direction: domain.TrendUp, Significance: domain.TierMedium, Description: "Back within 15% of baseline."},
				{Metric: "day_strain", Direction: domain.TrendDown, Significance: domain.TierMedium, Description: "Load reduced to a sustainable level."},
			},
			Patterns: []string{
				"Recovery improves the day after strain below 12",
				"Mood ratings follow recovery with a one day lag",
			},
			Recommendations: []domain.EvidenceRecommendation{
				{Recommendation: "Reintroduce intensity gradually, one session per week.", BasedOn: "Recovery still 10% below baseline"},
				{Recommendation: "Keep the earlier bedtime.", BasedOn: "Sleep quality gains since the schedule change"},
			},
		},
	},
	{
		key:   "weekly-recovery",
		typ:   domain.InsightWeeklySummary,
		day:   55,
		span:  7,
		title: "Recovery is trending up",
		content: "Your best week in over a month. Recovery and sleep are both improving, " +
			"and strain is back in a healthy range.",
		data: domain.WeeklySummaryData{
			Summary: "Clear rebound: rest and sleep changes are working.",
			KeyMetrics: []domain.KeyMetric{
				{Name: "Recovery", Value: "67%", Trend: domain.TrendUp, Status: "improving"},
				{Name: "HRV", Value: "60 ms", Trend: domain.TrendUp, Status: "improving"},
				{Name: "Sleep", Value: "7h 5m", Trend: domain.TrendUp, Status: "good"},
			},
			FocusAreas: []string{"Consolidate sleep gains", "Return to training gradually"},
			Recommendations: []domain.Recommendation{
				{Category: "activity", Text: "Add back one moderate session this week.", Impact: domain.TierMedium},
				{Category: "mindfulness", Text: "Keep the evening breathing routine.", Impact: domain.TierLow},
			},
		},
	},
	{
		key:   "trend-stable",
		typ:   domain.InsightTrendAnalysis,
		day:   76,
		span:  28,
		title: "Your metrics have stabilized",
		content: "For the past two weeks your metrics have held close to your healthy baseline " +
			"with only normal day-to-day variation.",
		data: domain.TrendAnalysisData{
			Overview: "Metrics are back at baseline and holding steady.",
			Trends: []domain.MetricTrend{
				{Metric: "recovery_score", Direction: domain.TrendStable, Significance: domain.TierLow, Description: "Within 3 points of baseline."},
				{Metric: "sleep_quality_score", Direction: domain.TrendStable, Significance: domain.TierLow, Description: "Consistent night to night."},
			},
			Patterns: []string{
				"Weekend sleep is slightly longer without hurting weekday recovery",
				"Two workouts a day are followed by lower next-day recovery",
			},
			Recommendations: []domain.EvidenceRecommendation{
				{Recommendation: "Avoid doubling up sessions on work days.", BasedOn: "Next-day recovery drop after double sessions"},
				{Recommendation: "Keep strain between 10 and 14.", BasedOn: "Your most stable recovery weeks"},
			},
		},
	},
	{
		key:   "weekly-stable",
		typ:   domain.InsightWeeklySummary,
		day:   83,
		span:  7,
		title: "Back to your baseline",
		content: "Another balanced week. You have held your recovery for a month now, " +
			"which suggests the changes you made are sustainable.",
		data: domain.WeeklySummaryData{
			Summary: "Stable recovery, steady sleep and balanced strain.",
			KeyMetrics: []domain.KeyMetric{
				{Name: "Recovery", Value: "74%", Trend: domain.TrendStable, Status: "good"},
				{Name: "HRV", Value: "64 ms", Trend: domain.TrendStable, Status: "good"},
				{Name: "Mood", Value: "8.1", Trend: domain.TrendUp, Status: "good"},
			},
			FocusAreas: []string{"Watch for early warning signs during busy weeks"},
			Recommendations: []domain.Recommendation{
				{Category: "planning", Text: "Plan a lighter week before your next deadline.", Impact: domain.TierMedium},
			},
		},
	},
}

// Catalog instantiates every catalog entry for a window starting on start,
// newest first by creation time.
func Catalog(start time.Time) ([]domain.Insight, error) {
	insights := make([]domain.Insight, 0, len(catalog))
	for _, e := range catalog {
		insight, err := e.instantiate(start)
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	SortNewestFirst(insights)
	return insights, nil
}

func (e catalogEntry) instantiate(start time.Time) (domain.Insight, error) {
	end := start.AddDate(0, 0, e.day)
	rangeStart := end.AddDate(0, 0, -(e.span - 1))
	if rangeStart.Before(start) {
		rangeStart = start
	}

	data, err := json.Marshal(e.data)
	if err != nil {
		return domain.Insight{}, fmt.Errorf("insight catalog %s: %w", e.key, err)
	}

	id := uuid.NewSHA1(insightNamespace, []byte(e.key+"/"+domain.FormatDate(start)))

	return domain.Insight{
		ID:             id.String(),
		Type:           e.typ,
		Title:          e.title,
		Content:        e.content,
		Data:           data,
		DateRangeStart: domain.FormatDate(rangeStart),
		DateRangeEnd:   domain.FormatDate(end),
		CreatedAt:      end.Add(insightPublishHour * time.Hour),
	}, nil
}

// PlaceholderInsight is the demo stand-in for on-demand insight generation.
// It performs no analysis and carries no payload.
func PlaceholderInsight(typ domain.InsightType, days int, now time.Time) domain.Insight {
	if days < 1 {
		days = 7
	}
	end := now.UTC()
	return domain.Insight{
		ID:             uuid.NewString(),
		Type:           typ,
		Title:          fmt.Sprintf("New %s", insightTitles[typ]),
		Content:        fmt.Sprintf("Demo mode placeholder covering the last %d days. Connect a wearable to generate a real analysis.", days),
		DateRangeStart: domain.FormatDate(end.AddDate(0, 0, -(days - 1))),
		DateRangeEnd:   domain.FormatDate(end),
		CreatedAt:      end,
	}
}

var insightTitles = map[domain.InsightType]string{
	domain.InsightWeeklySummary: "weekly summary",
	domain.InsightBurnoutAlert:  "burnout alert",
	domain.InsightTrendAnalysis: "trend analysis",
}

func SortNewestFirst(insights []domain.Insight) {
	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].CreatedAt.After(insights[j].CreatedAt)
	})
}
