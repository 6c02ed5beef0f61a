package generator

// ArcDays is the length of the generated window.
const ArcDays = 90

// Phase boundaries. A boundary day belongs to the phase that starts on it.
const (
	DeclineStart   = 25
	RecoveryStart  = 40
	StabilizeStart = 60
)

type Phase string

const (
	PhaseBaseline    Phase = "baseline"
	PhaseDecline     Phase = "decline"
	PhaseRecovery    Phase = "recovery"
	PhaseStabilizing Phase = "stabilization"
)

// Multipliers scale each signal's base value for one day of the arc.
type Multipliers struct {
	Recovery float64
	HRV      float64
	Sleep    float64
	Strain   float64
}

var baseline = Multipliers{Recovery: 1, HRV: 1, Sleep: 1, Strain: 1}

// stress peak reached at the end of the decline phase
var trough = Multipliers{Recovery: 0.65, HRV: 0.70, Sleep: 0.75, Strain: 1.30}

// reached at the end of the recovery phase
var recovered = Multipliers{Recovery: 0.90, HRV: 0.95, Sleep: 0.95, Strain: 1.10}

const stabilizationJitter = 0.05

// PhaseOf returns the arc phase for day; days outside [0, ArcDays) are clamped.
func PhaseOf(day int) Phase {
	day = clampDay(day)
	switch {
	case day < DeclineStart:
		return PhaseBaseline
	case day < RecoveryStart:
		return PhaseDecline
	case day < StabilizeStart:
		return PhaseRecovery
	default:
		return PhaseStabilizing
	}
}

// TrendMultipliers maps a day of the arc to its phase multipliers.
// Only the stabilization phase draws from src; the other phases are pure.
func TrendMultipliers(day int, src Source) Multipliers {
	day = clampDay(day)
	switch PhaseOf(day) {
	case PhaseBaseline:
		return baseline
	case PhaseDecline:
		p := float64(day-DeclineStart) / float64(RecoveryStart-DeclineStart)
		return interpolate(baseline, trough, p)
	case PhaseRecovery:
		p := float64(day-RecoveryStart) / float64(StabilizeStart-RecoveryStart)
		return interpolate(trough, recovered, p)
	default:
		// independent jitter around 1.0, no carry-over from the previous day
		return Multipliers{
			Recovery: 1 + variance(src, stabilizationJitter),
			HRV:      1 + variance(src, stabilizationJitter),
			Sleep:    1 + variance(src, stabilizationJitter),
			Strain:   1 + variance(src, stabilizationJitter),
		}
	}
}

func interpolate(from, to Multipliers, p float64) Multipliers {
	return Multipliers{
		Recovery: lerp(from.Recovery, to.Recovery, p),
		HRV:      lerp(from.HRV, to.HRV, p),
		Sleep:    lerp(from.Sleep, to.Sleep, p),
		Strain:   lerp(from.Strain, to.Strain, p),
	}
}

func lerp(a, b, p float64) float64 {
	return a + (b-a)*p
}

func clampDay(day int) int {
	if day < 0 {
		return 0
	}
	if day >= ArcDays {
		return ArcDays - 1
	}
	return day
}
