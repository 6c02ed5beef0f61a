package generator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoodFromRecovery(t *testing.T) {
	tests := []struct {
		name     string
		recovery int
		noise    float64
		want     int
	}{
		{"Full recovery, no noise", 100, 0, 9},
		{"Zero recovery, no noise", 0, 0, 5},
		{"Mid recovery rounds half up", 63, 0, 8},
		{"Clamped at the top", 100, 1.5, 10},
		{"Clamped at the bottom", 0, -3, 3},
		{"Trough recovery with full negative noise", 39, -moodNoise, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MoodFromRecovery(tt.recovery, tt.noise))
		})
	}
}

func TestGenerateMoods(t *testing.T) {
	metrics := GenerateMetrics(testStart, DefaultBaseline, NewSource(3))

	t.Run("Emission rate is close to 85 percent", func(t *testing.T) {
		emitted, total := 0, 0
		for seed := int64(1); seed <= 50; seed++ {
			emitted += len(GenerateMoods(metrics, NewSource(seed)))
			total += len(metrics)
		}
		assert.InDelta(t, MoodProbability, float64(emitted)/float64(total), 0.03)
	})

	t.Run("Only metric days, ascending, never backfilled", func(t *testing.T) {
		dates := make(map[string]bool, len(metrics))
		for _, m := range metrics {
			dates[m.Date] = true
		}

		moods := GenerateMoods(metrics, NewSource(11))
		require.NotEmpty(t, moods)
		assert.Less(t, len(moods), len(metrics))
		for i, mood := range moods {
			assert.True(t, dates[mood.Date])
			assert.GreaterOrEqual(t, mood.Rating, minGeneratedMood)
			assert.LessOrEqual(t, mood.Rating, maxGeneratedMood)
			if i > 0 {
				assert.Greater(t, mood.Date, moods[i-1].Date)
			}
		}
	})

	t.Run("Idempotent under a fixed seed", func(t *testing.T) {
		a := GenerateMoods(metrics, NewSource(5))
		b := GenerateMoods(metrics, NewSource(5))
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("moods differ (-a +b):\n%s", diff)
		}
	})

	t.Run("Every note band is reachable", func(t *testing.T) {
		seen := make(map[int]bool)
		for seed := int64(1); seed <= 50; seed++ {
			full := GenerateMetrics(testStart, DefaultBaseline, NewSource(seed))
			for _, mood := range GenerateMoods(full, NewSource(seed)) {
				seen[mood.Rating] = true
			}
		}
		assert.True(t, seen[3] || seen[4], "no rating in the 3-4 band")
		assert.True(t, seen[5] || seen[6], "no rating in the 5-6 band")
		assert.True(t, seen[8] || seen[9] || seen[10], "no rating in the 8-10 band")
	})

	t.Run("Notes always match the rating band", func(t *testing.T) {
		for seed := int64(1); seed <= 20; seed++ {
			for _, mood := range GenerateMoods(metrics, NewSource(seed)) {
				if mood.Notes == nil {
					continue
				}
				assert.NotEqual(t, 7, mood.Rating, "a 7 has no eligible template")
				assert.True(t, noteFits(*mood.Notes, mood.Rating), "note %q for rating %d", *mood.Notes, mood.Rating)
			}
		}
	})

	t.Run("Skipped day draws nothing else", func(t *testing.T) {
		moods := GenerateMoods(metrics, Constant(0.9))
		assert.Empty(t, moods)
	})
}

func TestPickNote(t *testing.T) {
	t.Run("No eligible template yields no note", func(t *testing.T) {
		assert.Nil(t, pickNote(7, Constant(0.1)))
	})

	t.Run("Picks within the band", func(t *testing.T) {
		note := pickNote(9, Constant(0.99))
		require.NotNil(t, note)
		assert.True(t, noteFits(*note, 9))

		note = pickNote(3, Constant(0))
		require.NotNil(t, note)
		assert.Equal(t, noteTemplates[0].text, *note)
	})
}

func noteFits(text string, rating int) bool {
	for _, tpl := range noteTemplates {
		if tpl.text == text {
			return rating >= tpl.minMood && rating <= tpl.maxMood
		}
	}
	return false
}
