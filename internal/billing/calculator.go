package billing

// Calculator maps a call duration to a cost in minor units (euro cents).
//
// Contract:
// - Pure: no I/O, no clock.
// - Monotonic: non-decreasing in duration for a fixed rate.
// - Output is already at currency precision; callers never round further.
type Calculator interface {
	CallCost(durationSeconds int, ratePerMinuteMinor int64) int64
}

// MinuteProrated charges the per-minute rate prorated to the second.
// 125s at 25 minor/min → 25*125/60 = 52.08 → 52 minor (half-up to the cent).
type MinuteProrated struct{}

func (MinuteProrated) CallCost(durationSeconds int, ratePerMinuteMinor int64) int64 {
	if durationSeconds <= 0 || ratePerMinuteMinor <= 0 {
		return 0
	}
	// Integer arithmetic, rounded half-up. Monotonicity follows from the
	// numerator being non-decreasing in durationSeconds.
	return (ratePerMinuteMinor*int64(durationSeconds) + 30) / 60
}

// EurosFromMinor converts minor units to a float euro amount for JSON
// responses. Never use the float form for arithmetic or storage.
func EurosFromMinor(minor int64) float64 {
	return float64(minor) / 100
}
