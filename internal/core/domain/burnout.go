package domain

import "time"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevelFor classifies a 0-100 score: <30 low, <50 moderate, <70 high, else critical.
func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 30:
		return RiskLow
	case score < 50:
		return RiskModerate
	case score < 70:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// RiskFactors holds the points each signal contributed on top of the base score,
// together with the inputs that produced them.
type RiskFactors struct {
	RecoveryComponent float64 `json:"recovery_component"`
	HRVComponent      float64 `json:"hrv_component"`
	SleepComponent    float64 `json:"sleep_component"`
	StrainComponent   float64 `json:"strain_component"`
	RecoveryScore     int     `json:"recovery_score"`
	HRV               int     `json:"hrv"`
	SleepQuality      int     `json:"sleep_quality"`
	DayStrain         float64 `json:"day_strain"`
}

type BurnoutScore struct {
	Date             string      `json:"date"`
	OverallRiskScore float64     `json:"overall_risk_score"`
	RiskLevel        RiskLevel   `json:"risk_level"`
	RiskFactors      RiskFactors `json:"risk_factors"`
	ConfidenceScore  float64     `json:"confidence_score"`
	DataPointsUsed   int         `json:"data_points_used"`
	CalculatedAt     time.Time   `json:"calculated_at"`
}
