package model_test

import (
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/Tiliavir/tim/internal/model"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:15", "09:15", false},
		{"9:05", "09:05", false},
		{"9:5", "09:05", false},
		{" 23:59 ", "23:59", false},
		{"00:00", "00:00", false},
		{"24:00", "", true},
		{"25:00", "", true},
		{"12:60", "", true},
		{"ab:cd", "", true},
		{"1200", "", true},
		{"-1:00", "", true},
		{"123:00", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := model.ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseClock(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}

func TestClockStringParses(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := model.Clock(rapid.IntRange(0, 24*60-1).Draw(rt, "minutes"))
		got, err := model.ParseClock(c.String())
		if err != nil || got != c {
			rt.Fatalf("ParseClock(%q) = %v, %v", c.String(), got, err)
		}
	})
}

func TestClockSubAndOn(t *testing.T) {
	a, _ := model.ParseClock("09:00")
	b, _ := model.ParseClock("10:45")
	if d := b.Sub(a); d != 105 {
		t.Errorf("Sub = %d, want 105", d)
	}
	day := time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC)
	got := b.On(day, time.UTC)
	want := time.Date(2026, 2, 27, 10, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On = %v, want %v", got, want)
	}
	if c := model.ClockOf(want.Add(30 * time.Second)); c != b {
		t.Errorf("ClockOf = %v, want %v", c, b)
	}
}
