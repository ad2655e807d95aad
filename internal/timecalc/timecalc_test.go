package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/tim/internal/timecalc"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{90, "1h 30m"},
		{-15, "-15m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
	}
	for _, tt := range tests {
		got := timecalc.FormatElapsed(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatElapsed(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	b := time.Date(2026, 2, 27, 23, 59, 59, 0, time.UTC)
	c := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	if !timecalc.SameDay(a, b) {
		t.Error("SameDay: expected same day for a and b")
	}
	if timecalc.SameDay(a, c) {
		t.Error("SameDay: expected different day for a and c")
	}
}

func TestDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	got := timecalc.DaysAgo(now, 1)
	want := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DaysAgo(1) = %v, want %v", got, want)
	}
}

func TestDayRange(t *testing.T) {
	now := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)
	for _, args := range [][2]int{{2, 0}, {0, 2}} {
		days := timecalc.DayRange(now, args[0], args[1])
		if len(days) != 3 {
			t.Fatalf("DayRange(%v) len = %d, want 3", args, len(days))
		}
		if days[0].Day() != 27 || days[2].Day() != 1 {
			t.Errorf("DayRange(%v) = %v, want oldest first", args, days)
		}
	}
	if days := timecalc.DayRange(now, 0, 0); len(days) != 1 {
		t.Errorf("DayRange(0, 0) len = %d, want 1", len(days))
	}
}
