package report

import (
	"fmt"
	"time"
)

// Pay periods run from the 22nd of one month through the 21st of the next,
// and a period is labeled by the month it starts in. Period "2024-02" spans
// 2024-02-22 through 2024-03-21.

// PeriodKey returns the "YYYY-MM" pay period containing the date. Pure
// function of the date's UTC calendar components; days on or before the
// 21st belong to the period that started on the 22nd of the previous month,
// with January rolling back into the previous year.
func PeriodKey(t time.Time) string {
	y, m, d := t.UTC().Date()
	if d <= 21 {
		// time.Date normalizes month 0 to December of the previous year.
		periodStart := time.Date(y, m-1, 22, 0, 0, 0, 0, time.UTC)
		return fmt.Sprintf("%04d-%02d", periodStart.Year(), int(periodStart.Month()))
	}
	return fmt.Sprintf("%04d-%02d", y, int(m))
}

// PeriodKeyForDay is PeriodKey for a "YYYY-MM-DD" day-bucket key. Returns
// false when the key does not parse.
func PeriodKeyForDay(day string) (string, bool) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", false
	}
	return PeriodKey(t), true
}
