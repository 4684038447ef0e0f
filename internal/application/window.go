package application

import (
	"fmt"
	"time"
)

// Window bounds a leaderboard aggregation in time. The zero value covers
// all recorded activity.
type Window struct {
	days int
}

func AllTime() Window {
	return Window{}
}

func LastNDays(n int) (Window, error) {
	if n <= 0 {
		return Window{}, fmt.Errorf("window must cover at least one day, got %d", n)
	}
	return Window{days: n}, nil
}

// Days returns the window span in days, 0 meaning unbounded.
func (w Window) Days() int {
	return w.days
}

// Since returns the inclusive lower bound of the window, or nil for an
// unbounded one.
func (w Window) Since(now time.Time) *time.Time {
	if w.days == 0 {
		return nil
	}
	since := now.AddDate(0, 0, -w.days)
	return &since
}

func (w Window) String() string {
	if w.days == 0 {
		return "histórica"
	}
	return fmt.Sprintf("últimos %d días", w.days)
}
