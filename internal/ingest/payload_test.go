package ingest

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-06-01T12:30:45Z", time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), true},
		{"2025-06-01T12:30:45.123Z", time.Date(2025, 6, 1, 12, 30, 45, 123000000, time.UTC), true},
		{"2025-06-01T14:30:45+02:00", time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), true},
		{"2025-06-01T12:30:45", time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), true},
		{"2025-06-01 12:30:45", time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"yesterday-ish", time.Time{}, false},
		{"1717245045", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := parseTimestamp(c.in)
		if ok != c.ok {
			t.Fatalf("%q: expected ok=%v, got %v", c.in, c.ok, ok)
		}
		if ok && !got.Equal(c.want) {
			t.Fatalf("%q: expected %v, got %v", c.in, c.want, got)
		}
	}
}
