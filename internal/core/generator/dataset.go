package generator

import (
	"time"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

const (
	DemoUserID       = "demo-user"
	DemoUserEmail    = "demo@kanso.app"
	DemoProvider     = "whoop"
	demoConnectionID = "demo-connection"
)

// Dataset is every collection written by one demo initialization.
type Dataset struct {
	Metrics    []domain.DailyMetric
	Moods      []domain.MoodRating
	Scores     []domain.BurnoutScore
	Insights   []domain.Insight
	Profile    domain.UserProfile
	Connection domain.WearableConnection
}

// Generate builds a full arc ending on the calendar day of now. All three
// series share the same metric run so they stay aligned with the arc.
func Generate(now time.Time, src Source) (*Dataset, error) {
	start := WindowStart(now)

	metrics := GenerateMetrics(start, DefaultBaseline, src)
	moods := GenerateMoods(metrics, src)
	scores := GenerateScores(metrics, src)

	insights, err := Catalog(start)
	if err != nil {
		return nil, err
	}

	lastSync := now.UTC()

	return &Dataset{
		Metrics:  metrics,
		Moods:    moods,
		Scores:   scores,
		Insights: insights,
		Profile: domain.UserProfile{
			ID:        DemoUserID,
			Email:     DemoUserEmail,
			FullName:  "Alex Demo",
			Timezone:  "UTC",
			IsDemo:    true,
			CreatedAt: start,
		},
		Connection: domain.WearableConnection{
			ID:           demoConnectionID,
			Provider:     DemoProvider,
			IsActive:     true,
			ConnectedAt:  start,
			LastSyncedAt: &lastSync,
		},
	}, nil
}
