package calls

import "testing"

func TestDurationDisplay(t *testing.T) {
	cases := []struct {
		secs int
		want string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{3605, "60:05"},
	}
	for _, c := range cases {
		got := CallRecord{DurationSeconds: c.secs}.DurationDisplay()
		if got != c.want {
			t.Fatalf("%ds: expected %q, got %q", c.secs, c.want, got)
		}
	}
}
