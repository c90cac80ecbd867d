package report

import (
	"testing"
	"time"
)

func TestMinutesBetween(t *testing.T) {
	base := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{"same instant", base, base, 0},
		{"eight hours", base, base.Add(8 * time.Hour), 480},
		{"fractional", base, base.Add(90 * time.Second), 1.5},
		{"reversed is negative", base.Add(time.Hour), base, -60},
		{"zero start", time.Time{}, base, 0},
		{"zero end", base, time.Time{}, 0},
	}
	for _, c := range cases {
		if got := MinutesBetween(c.start, c.end); got != c.want {
			t.Errorf("%s: MinutesBetween = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestMinutesBetweenAntisymmetric(t *testing.T) {
	start := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	end := start.Add(125 * time.Minute)
	if MinutesBetween(start, end) != -MinutesBetween(end, start) {
		t.Error("MinutesBetween(start, end) != -MinutesBetween(end, start)")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "0h 0m"},
		{-5, "0h 0m"},
		{125, "2h 5m"},
		{480, "8h 0m"},
		{59.9, "0h 59m"},
		{60, "1h 0m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.minutes); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.minutes, got, c.want)
		}
	}
}
