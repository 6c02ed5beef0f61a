package generator

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

const (
	baseRisk = 30.0

	recoveryThreshold = 60
	recoveryWeight    = 1.5
	hrvThreshold      = 50
	hrvWeight         = 0.8
	sleepThreshold    = 70
	sleepWeight       = 0.6
	strainThreshold   = 15.0
	strainWeight      = 2.0

	minScoreInterval = 4

	minConfidence     = 85.0
	confidenceSpread  = 10.0
	minDataPoints     = 14
	dataPointsChoices = 7

	scoreCalcHour = 6
)

// Score is deterministic: the same metric always yields the same risk score,
// level and factor breakdown. Confidence and data point fields are left zero.
func Score(m domain.DailyMetric) domain.BurnoutScore {
	var f domain.RiskFactors
	f.RecoveryScore = m.RecoveryScore
	f.HRV = m.HeartRateVariability
	f.SleepQuality = m.SleepQualityScore
	f.DayStrain = m.DayStrain

	if m.RecoveryScore < recoveryThreshold {
		f.RecoveryComponent = float64(recoveryThreshold-m.RecoveryScore) * recoveryWeight
	}
	if m.HeartRateVariability < hrvThreshold {
		f.HRVComponent = float64(hrvThreshold-m.HeartRateVariability) * hrvWeight
	}
	if m.SleepQualityScore < sleepThreshold {
		f.SleepComponent = float64(sleepThreshold-m.SleepQualityScore) * sleepWeight
	}
	if m.DayStrain > strainThreshold {
		f.StrainComponent = (m.DayStrain - strainThreshold) * strainWeight
	}

	risk := baseRisk + f.RecoveryComponent + f.HRVComponent + f.SleepComponent + f.StrainComponent
	risk = round1(clamp(risk, 0, 100))

	f.RecoveryComponent = round1(f.RecoveryComponent)
	f.HRVComponent = round1(f.HRVComponent)
	f.SleepComponent = round1(f.SleepComponent)
	f.StrainComponent = round1(f.StrainComponent)

	return domain.BurnoutScore{
		Date:             m.Date,
		OverallRiskScore: risk,
		RiskLevel:        domain.RiskLevelFor(risk),
		RiskFactors:      f,
	}
}

// ScoreAt scores m and fills the analytics-shaped fields the real service reports.
func ScoreAt(m domain.DailyMetric, calculatedAt time.Time, src Source) domain.BurnoutScore {
	s := Score(m)
	s.ConfidenceScore = round1(minConfidence + src.Next()*confidenceSpread)
	s.DataPointsUsed = minDataPoints + int(math.Min(src.Next()*dataPointsChoices, dataPointsChoices-1))
	s.CalculatedAt = calculatedAt
	return s
}

// GenerateScores scores every 4th or 5th day of the series, starting with the first.
func GenerateScores(metrics []domain.DailyMetric, src Source) []domain.BurnoutScore {
	var scores []domain.BurnoutScore
	for day := 0; day < len(metrics); {
		m := metrics[day]
		scores = append(scores, ScoreAt(m, logTime(m.Date, scoreCalcHour), src))

		step := minScoreInterval
		if chance(src, 0.5) {
			step++
		}
		day += step
	}
	return scores
}
