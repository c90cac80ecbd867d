package report

import (
	"sort"
	"time"
)

// Entry is the minimal view of a time entry the aggregation consumes.
// Entries missing a username or either timestamp are skipped wholesale;
// malformed data never fails a report.
type Entry struct {
	Username     string
	ClockInTime  time.Time
	ClockOutTime time.Time
}

func (e Entry) wellFormed() bool {
	return e.Username != "" && !e.ClockInTime.IsZero() && !e.ClockOutTime.IsZero()
}

// TotalsByUser sums each user's minutes across all their entries.
func TotalsByUser(entries []Entry) map[string]float64 {
	totals := make(map[string]float64)
	for _, e := range entries {
		if !e.wellFormed() {
			continue
		}
		totals[e.Username] += MinutesBetween(e.ClockInTime, e.ClockOutTime)
	}
	return totals
}

// DailyTotals buckets each user's minutes by the UTC calendar day of the
// clock-in. Day keys are "YYYY-MM-DD".
func DailyTotals(entries []Entry) map[string]map[string]float64 {
	daily := make(map[string]map[string]float64)
	for _, e := range entries {
		if !e.wellFormed() {
			continue
		}
		dayKey := e.ClockInTime.UTC().Format("2006-01-02")
		if daily[e.Username] == nil {
			daily[e.Username] = make(map[string]float64)
		}
		daily[e.Username][dayKey] += MinutesBetween(e.ClockInTime, e.ClockOutTime)
	}
	return daily
}

// PayPeriodTotals buckets each user's minutes by the pay period of the
// clock-in.
func PayPeriodTotals(entries []Entry) map[string]map[string]float64 {
	periods := make(map[string]map[string]float64)
	for _, e := range entries {
		if !e.wellFormed() {
			continue
		}
		periodKey := PeriodKey(e.ClockInTime)
		if periods[e.Username] == nil {
			periods[e.Username] = make(map[string]float64)
		}
		periods[e.Username][periodKey] += MinutesBetween(e.ClockInTime, e.ClockOutTime)
	}
	return periods
}

// DistinctPeriods returns the union of period keys across all users, newest
// first. "YYYY-MM" sorts lexically in chronological order, so a reversed
// lexical sort is a reversed chronological one.
func DistinctPeriods(periodTotals map[string]map[string]float64) []string {
	seen := make(map[string]struct{})
	for _, userPeriods := range periodTotals {
		for period := range userPeriods {
			seen[period] = struct{}{}
		}
	}

	periods := make([]string, 0, len(seen))
	for period := range seen {
		periods = append(periods, period)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(periods)))
	return periods
}

// BuildReport computes all groupings in one pass over the snapshot. Pure:
// two calls over the same entries yield identical reports.
func BuildReport(entries []Entry) Report {
	periodTotals := PayPeriodTotals(entries)
	return Report{
		TotalsByUser:    TotalsByUser(entries),
		DailyTotals:     DailyTotals(entries),
		PayPeriodTotals: periodTotals,
		Periods:         DistinctPeriods(periodTotals),
	}
}
