package domain

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate = errors.New("invalid date format (must be YYYY-MM-DD)")
	ErrNoMetrics   = fmt.Errorf("health metrics %w", ErrNotFound)
)

const (
	MaxRecoveryScore = 100
	MaxSleepQuality  = 100
	MaxDayStrain     = 21.0
	MaxWorkoutCount  = 2
)

// DailyMetric is one day of wearable biometrics. Date is the unique key.
type DailyMetric struct {
	Date                 string  `json:"date"`
	RecoveryScore        int     `json:"recovery_score"`
	RestingHeartRate     int     `json:"resting_heart_rate"`
	HeartRateVariability int     `json:"heart_rate_variability"`
	SleepDurationMinutes int     `json:"sleep_duration_minutes"`
	SleepQualityScore    int     `json:"sleep_quality_score"`
	DayStrain            float64 `json:"day_strain"`
	WorkoutCount         int     `json:"workout_count"`
}

// ParseDate parses a calendar date in YYYY-MM-DD form as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// DateRange is an optional inclusive [Start, End] filter plus a "most recent N" limit.
// Empty bounds are open; Limit <= 0 means unlimited.
type DateRange struct {
	StartDate string
	EndDate   string
	Limit     int
}

func (r DateRange) Validate() error {
	if r.StartDate != "" {
		if _, err := ParseDate(r.StartDate); err != nil {
			return err
		}
	}
	if r.EndDate != "" {
		if _, err := ParseDate(r.EndDate); err != nil {
			return err
		}
	}
	return nil
}

// Contains compares dates lexically, which is exact for YYYY-MM-DD.
func (r DateRange) Contains(date string) bool {
	if r.StartDate != "" && date < r.StartDate {
		return false
	}
	if r.EndDate != "" && date > r.EndDate {
		return false
	}
	return true
}
