package generator

import (
	"math"
	"time"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
)

const (
	MoodProbability = 0.85
	NoteProbability = 0.30

	minGeneratedMood = 3
	maxGeneratedMood = 10

	// wide enough that trough-phase recovery (about 40) can land in the 3-4 band
	moodNoise = 3.5

	// mood ratings are logged in the evening of their day
	moodLogHour = 21
)

type noteTemplate struct {
	minMood, maxMood int
	text             string
}

// Mood 7 has no template, so a 7 never carries a generated note.
var noteTemplates = []noteTemplate{
	{3, 4, "Exhausted, hard to focus at work today."},
	{3, 4, "Barely slept. Everything feels like a lot right now."},
	{3, 4, "Skipped my workout, just wanted to get through the day."},
	{5, 6, "Okay day. A bit tired in the afternoon."},
	{5, 6, "Busy but manageable. Need an earlier night."},
	{5, 6, "Meetings all day, some energy left for a walk."},
	{8, 10, "Great energy today, workout felt easy."},
	{8, 10, "Slept really well and felt sharp all day."},
	{8, 10, "Calm and productive. Took a long walk after lunch."},
}

// GenerateMoods emits a rating for roughly MoodProbability of the metric days.
// The rating tracks that day's recovery score, not the raw arc.
func GenerateMoods(metrics []domain.DailyMetric, src Source) []domain.MoodRating {
	moods := make([]domain.MoodRating, 0, len(metrics))
	for _, m := range metrics {
		if !chance(src, MoodProbability) {
			continue
		}

		rating := MoodFromRecovery(m.RecoveryScore, variance(src, moodNoise))

		var notes *string
		if chance(src, NoteProbability) {
			notes = pickNote(rating, src)
		}

		loggedAt := logTime(m.Date, moodLogHour)
		moods = append(moods, domain.MoodRating{
			Date:      m.Date,
			Rating:    rating,
			Notes:     notes,
			CreatedAt: loggedAt,
			UpdatedAt: loggedAt,
		})
	}
	return moods
}

// MoodFromRecovery computes clamp(round(5 + 4*recovery/100 + noise), 3, 10).
func MoodFromRecovery(recoveryScore int, noise float64) int {
	raw := math.Round(5 + 4*float64(recoveryScore)/100 + noise)
	return int(clamp(raw, minGeneratedMood, maxGeneratedMood))
}

// pickNote returns nil when no template covers the rating.
func pickNote(rating int, src Source) *string {
	var eligible []string
	for _, t := range noteTemplates {
		if rating >= t.minMood && rating <= t.maxMood {
			eligible = append(eligible, t.text)
		}
	}
	if len(eligible) == 0 {
		return nil
	}
	idx := int(src.Next() * float64(len(eligible)))
	if idx >= len(eligible) {
		idx = len(eligible) - 1
	}
	note := eligible[idx]
	return &note
}

func logTime(date string, hour int) time.Time {
	t, err := domain.ParseDate(date)
	if err != nil {
		return time.Time{}
	}
	return t.Add(time.Duration(hour) * time.Hour)
}
