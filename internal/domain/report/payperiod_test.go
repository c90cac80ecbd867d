package report

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestPeriodKey(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{day(2024, time.March, 21), "2024-02"},   // last day of the period started Feb 22
		{day(2024, time.March, 22), "2024-03"},   // first day of the next period
		{day(2024, time.January, 15), "2023-12"}, // year rollover
		{day(2024, time.January, 22), "2024-01"},
		{day(2024, time.December, 22), "2024-12"},
		{day(2025, time.January, 21), "2024-12"},
		{day(2024, time.February, 29), "2024-02"}, // leap day sits past the 21st
	}
	for _, c := range cases {
		if got := PeriodKey(c.date); got != c.want {
			t.Errorf("PeriodKey(%s) = %q, want %q", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestPeriodKeyForDay(t *testing.T) {
	got, ok := PeriodKeyForDay("2024-03-21")
	if !ok || got != "2024-02" {
		t.Errorf("PeriodKeyForDay(2024-03-21) = %q, %v; want %q, true", got, ok, "2024-02")
	}

	if _, ok := PeriodKeyForDay("not-a-date"); ok {
		t.Error("PeriodKeyForDay accepted a malformed day key")
	}
}
