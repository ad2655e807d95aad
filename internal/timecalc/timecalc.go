package timecalc

import (
	"fmt"
	"time"
)

// FormatMinutes formats a minute count as "1h 40m", "45m" or "0m".
func FormatMinutes(minutes int) string {
	sign := ""
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	h := minutes / 60
	m := minutes % 60
	if h > 0 {
		return fmt.Sprintf("%s%dh %dm", sign, h, m)
	}
	return fmt.Sprintf("%s%dm", sign, m)
}

// FormatElapsed formats seconds as HH:MM:SS.
func FormatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DaysAgo returns the start of the calendar day n days before now.
func DaysAgo(now time.Time, n int) time.Time {
	return StartOfDay(now).AddDate(0, 0, -n)
}

// DayRange returns the calendar days between a and b days ago, inclusive,
// oldest first. The arguments may be given in either order.
func DayRange(now time.Time, a, b int) []time.Time {
	oldest, newest := a, b
	if oldest < newest {
		oldest, newest = newest, oldest
	}
	days := make([]time.Time, 0, oldest-newest+1)
	for n := oldest; n >= newest; n-- {
		days = append(days, DaysAgo(now, n))
	}
	return days
}
