package domain

type BurnoutTrend string

const (
	BurnoutIncreasing BurnoutTrend = "increasing"
	BurnoutDecreasing BurnoutTrend = "decreasing"
	BurnoutStable     BurnoutTrend = "stable"

	// TrendDeadband is the score delta below which two readings count as stable.
	TrendDeadband = 5.0
)

// Dashboard aggregates the latest record of each collection. Any of the pointers
// is nil when its collection is empty.
type Dashboard struct {
	LatestMetrics *DailyMetric  `json:"latest_metrics"`
	LatestMood    *MoodRating   `json:"latest_mood"`
	BurnoutRisk   *BurnoutScore `json:"burnout_risk"`
	LatestInsight *Insight      `json:"latest_insight"`
	BurnoutTrend  BurnoutTrend  `json:"burnout_trend"`
}

// TrendBetween labels the change from previous to latest with a ±TrendDeadband band.
func TrendBetween(previous, latest float64) BurnoutTrend {
	diff := latest - previous
	switch {
	case diff > TrendDeadband:
		return BurnoutIncreasing
	case diff < -TrendDeadband:
		return BurnoutDecreasing
	default:
		return BurnoutStable
	}
}

// BurnoutTrendOf compares the two most recent scores of a date-ascending history.
func BurnoutTrendOf(history []BurnoutScore) BurnoutTrend {
	if len(history) < 2 {
		return BurnoutStable
	}
	n := len(history)
	return TrendBetween(history[n-2].OverallRiskScore, history[n-1].OverallRiskScore)
}
