package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBurnoutTrendOf(t *testing.T) {
	score := func(v float64) BurnoutScore { return BurnoutScore{OverallRiskScore: v} }

	tests := []struct {
		name    string
		history []BurnoutScore
		want    BurnoutTrend
	}{
		{"Empty history is stable", nil, BurnoutStable},
		{"Single score is stable", []BurnoutScore{score(60)}, BurnoutStable},
		{"Rise beyond deadband", []BurnoutScore{score(40), score(45.1)}, BurnoutIncreasing},
		{"Rise exactly at deadband", []BurnoutScore{score(40), score(45)}, BurnoutStable},
		{"Drop beyond deadband", []BurnoutScore{score(70), score(60)}, BurnoutDecreasing},
		{"Drop exactly at deadband", []BurnoutScore{score(70), score(65)}, BurnoutStable},
		{"Only the last two count", []BurnoutScore{score(90), score(40), score(42)}, BurnoutStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BurnoutTrendOf(tt.history))
		})
	}
}
