package billing

import "testing"

func TestCallCostProration(t *testing.T) {
	var c MinuteProrated

	// 0.25 EUR/min = 25 minor units per minute.
	if got := c.CallCost(125, 25); got != 52 {
		t.Fatalf("125s at 25/min: expected 52, got %d", got)
	}
	if got := c.CallCost(60, 25); got != 25 {
		t.Fatalf("60s at 25/min: expected 25, got %d", got)
	}
	if got := c.CallCost(1, 25); got != 0 {
		// 25/60 = 0.41 minor, rounds down to zero.
		t.Fatalf("1s at 25/min: expected 0, got %d", got)
	}
	if got := c.CallCost(0, 25); got != 0 {
		t.Fatalf("0s: expected 0, got %d", got)
	}
	if got := c.CallCost(-5, 25); got != 0 {
		t.Fatalf("negative duration: expected 0, got %d", got)
	}
}

func TestCallCostMonotonic(t *testing.T) {
	var c MinuteProrated
	prev := int64(0)
	for secs := 0; secs <= 600; secs++ {
		got := c.CallCost(secs, 25)
		if got < prev {
			t.Fatalf("cost decreased at %ds: %d < %d", secs, got, prev)
		}
		prev = got
	}
}

func TestEurosFromMinor(t *testing.T) {
	if got := EurosFromMinor(52); got != 0.52 {
		t.Fatalf("expected 0.52, got %v", got)
	}
	if got := EurosFromMinor(-100); got != -1.0 {
		t.Fatalf("expected -1.0, got %v", got)
	}
}
