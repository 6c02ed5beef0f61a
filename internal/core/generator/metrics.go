package generator

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

// Baseline holds the healthy-phase mean of each signal and the amplitude of its daily noise.
type Baseline struct {
	Recovery, RecoveryNoise         float64
	HRV, HRVNoise                   float64
	RestingHR, RestingHRNoise       float64
	SleepMinutes, SleepMinutesNoise float64
	SleepQuality, SleepQualityNoise float64
	Strain, StrainNoise             float64
}

var DefaultBaseline = Baseline{
	Recovery: 75, RecoveryNoise: 10,
	HRV: 65, HRVNoise: 8,
	RestingHR: 58, RestingHRNoise: 3,
	SleepMinutes: 450, SleepMinutesNoise: 40,
	SleepQuality: 80, SleepQualityNoise: 8,
	Strain: 12, StrainNoise: 3,
}

const (
	// how strongly a falling HRV trend lifts resting heart rate
	restingHRCoupling = 0.5

	workoutProbability       = 0.5
	secondWorkoutProbability = 0.3
)

// WindowStart returns the first day of a window of ArcDays ending on today.
func WindowStart(today time.Time) time.Time {
	y, m, d := today.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(ArcDays - 1))
}

// GenerateMetrics produces exactly one record per day for ArcDays days from start.
func GenerateMetrics(start time.Time, b Baseline, src Source) []domain.DailyMetric {
	metrics := make([]domain.DailyMetric, 0, ArcDays)
	for day := 0; day < ArcDays; day++ {
		date := domain.FormatDate(start.AddDate(0, 0, day))
		metrics = append(metrics, MetricForDay(date, TrendMultipliers(day, src), b, src))
	}
	return metrics
}

// MetricForDay applies the multipliers and noise to each baseline signal.
func MetricForDay(date string, m Multipliers, b Baseline, src Source) domain.DailyMetric {
	recovery := clamp(b.Recovery*m.Recovery+variance(src, b.RecoveryNoise), 0, domain.MaxRecoveryScore)
	hrv := math.Max(0, b.HRV*m.HRV+variance(src, b.HRVNoise))
	restingHR := math.Max(0, b.RestingHR*(1+(1-m.HRV)*restingHRCoupling)+variance(src, b.RestingHRNoise))
	sleepMinutes := math.Max(0, b.SleepMinutes*m.Sleep+variance(src, b.SleepMinutesNoise))
	sleepQuality := clamp(b.SleepQuality*m.Sleep+variance(src, b.SleepQualityNoise), 0, domain.MaxSleepQuality)
	strain := clamp(b.Strain*m.Strain+variance(src, b.StrainNoise), 0, domain.MaxDayStrain)

	workouts := 0
	if chance(src, workoutProbability) {
		workouts = 1
		if chance(src, secondWorkoutProbability) {
			workouts = 2
		}
	}

	return domain.DailyMetric{
		Date:                 date,
		RecoveryScore:        int(math.Round(recovery)),
		RestingHeartRate:     int(math.Round(restingHR)),
		HeartRateVariability: int(math.Round(hrv)),
		SleepDurationMinutes: int(math.Round(sleepMinutes)),
		SleepQualityScore:    int(math.Round(sleepQuality)),
		DayStrain:            round1(strain),
		WorkoutCount:         workouts,
	}
}
