package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2026-2-28", "28/02/2026", "2026-02-30", "2026-02-28T10:00:00Z"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDateRange(t *testing.T) {
	t.Run("Open bounds contain everything", func(t *testing.T) {
		assert.True(t, DateRange{}.Contains("1999-01-01"))
	})

	t.Run("Bounds are inclusive", func(t *testing.T) {
		r := DateRange{StartDate: "2026-01-10", EndDate: "2026-01-12"}
		assert.False(t, r.Contains("2026-01-09"))
		assert.True(t, r.Contains("2026-01-10"))
		assert.True(t, r.Contains("2026-01-12"))
		assert.False(t, r.Contains("2026-01-13"))
	})

	t.Run("Validate rejects malformed bounds", func(t *testing.T) {
		assert.NoError(t, DateRange{StartDate: "2026-01-10"}.Validate())
		assert.ErrorIs(t, DateRange{EndDate: "yesterday"}.Validate(), ErrInvalidDate)
	})
}
