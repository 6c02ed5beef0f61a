package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendMultipliers(t *testing.T) {
	t.Run("Defined, finite and non-negative for every day", func(t *testing.T) {
		src := NewSource(42)
		for day := 0; day < ArcDays; day++ {
			m := TrendMultipliers(day, src)
			for _, v := range []float64{m.Recovery, m.HRV, m.Sleep, m.Strain} {
				require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "day %d", day)
				require.GreaterOrEqual(t, v, 0.0, "day %d", day)
			}
		}
	})

	t.Run("Baseline phase is flat", func(t *testing.T) {
		for day := 0; day < DeclineStart; day++ {
			assert.Equal(t, baseline, TrendMultipliers(day, nil))
		}
	})

	t.Run("Boundary days belong to the higher range", func(t *testing.T) {
		assert.Equal(t, PhaseBaseline, PhaseOf(24))
		assert.Equal(t, PhaseDecline, PhaseOf(25))
		assert.Equal(t, PhaseDecline, PhaseOf(39))
		assert.Equal(t, PhaseRecovery, PhaseOf(40))
		assert.Equal(t, PhaseRecovery, PhaseOf(59))
		assert.Equal(t, PhaseStabilizing, PhaseOf(60))

		assert.Equal(t, baseline, TrendMultipliers(25, nil), "decline starts at p=0")
		assert.Equal(t, trough, TrendMultipliers(40, nil), "recovery starts from the trough")
	})

	t.Run("Day 32 sits part way down the decline", func(t *testing.T) {
		m := TrendMultipliers(32, nil)
		p := 7.0 / 15.0

		assert.InDelta(t, 1-p*0.35, m.Recovery, 1e-9)
		assert.InDelta(t, 0.8367, m.Recovery, 1e-3)
		assert.InDelta(t, 1-p*0.30, m.HRV, 1e-9)
		assert.InDelta(t, 1-p*0.25, m.Sleep, 1e-9)
		assert.InDelta(t, 1+p*0.30, m.Strain, 1e-9)
		assert.InDelta(t, 62.7, 75*m.Recovery, 0.1)
	})

	t.Run("Decline is monotonic, recovery climbs back", func(t *testing.T) {
		for day := DeclineStart + 1; day < RecoveryStart; day++ {
			prev, cur := TrendMultipliers(day-1, nil), TrendMultipliers(day, nil)
			assert.Less(t, cur.Recovery, prev.Recovery, "day %d", day)
			assert.Less(t, cur.HRV, prev.HRV, "day %d", day)
			assert.Less(t, cur.Sleep, prev.Sleep, "day %d", day)
			assert.Greater(t, cur.Strain, prev.Strain, "day %d", day)
		}
		for day := RecoveryStart + 1; day < StabilizeStart; day++ {
			prev, cur := TrendMultipliers(day-1, nil), TrendMultipliers(day, nil)
			assert.Greater(t, cur.Recovery, prev.Recovery, "day %d", day)
			assert.Less(t, cur.Strain, prev.Strain, "day %d", day)
		}
	})

	t.Run("Stabilization jitters around 1.0", func(t *testing.T) {
		src := NewSource(7)
		for day := StabilizeStart; day < ArcDays; day++ {
			m := TrendMultipliers(day, src)
			for _, v := range []float64{m.Recovery, m.HRV, m.Sleep, m.Strain} {
				assert.InDelta(t, 1.0, v, stabilizationJitter)
			}
		}
	})

	t.Run("Only stabilization consumes randomness", func(t *testing.T) {
		calls := 0
		src := SourceFunc(func() float64 { calls++; return 0.5 })

		for day := 0; day < StabilizeStart; day++ {
			TrendMultipliers(day, src)
		}
		assert.Zero(t, calls)

		TrendMultipliers(StabilizeStart, src)
		assert.Equal(t, 4, calls)
	})

	t.Run("Out of range days are clamped", func(t *testing.T) {
		assert.Equal(t, TrendMultipliers(0, nil), TrendMultipliers(-5, nil))
		m := TrendMultipliers(500, Constant(0.5))
		assert.Equal(t, Multipliers{Recovery: 1, HRV: 1, Sleep: 1, Strain: 1}, m)
	})
}
