package views

import (
	"testing"
	"time"
)

func TestDueLabel(t *testing.T) {
	now := time.Date(2025, 4, 15, 9, 0, 0, 0, time.Local)

	cases := []struct {
		due  time.Time
		want string
	}{
		{now.AddDate(0, 0, -1), "Overdue"},
		{time.Date(2025, 4, 15, 23, 59, 0, 0, time.Local), "Today"},
		{now.AddDate(0, 0, 1), "Tomorrow"},
		{now.AddDate(0, 0, 3), "3 days"},
		{now.AddDate(0, 0, 7), "7 days"},
		{now.AddDate(0, 0, 8), "Apr 23"},
	}
	for _, c := range cases {
		if got := dueLabel(c.due, now); got != c.want {
			t.Errorf("dueLabel(%v) = %q, want %q", c.due, got, c.want)
		}
	}
}

func TestDueLabelAcrossSpringForward(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database unavailable")
	}

	// March 9 2025 is the spring-forward date: the calendar day after
	// March 8 is only 23 hours away.
	now := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	due := time.Date(2025, 3, 9, 9, 0, 0, 0, loc)
	if got := dueLabel(due, now); got != "Tomorrow" {
		t.Errorf("dueLabel across DST = %q, want Tomorrow", got)
	}
}
