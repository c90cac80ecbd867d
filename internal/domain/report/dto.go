package report

import (
	"github.com/shopspring/decimal"
)

// Report is the full aggregation output for the viewer's entry snapshot.
// Minutes are fractional; the formatted totals use the "Hh Mm" rendering.
type Report struct {
	TotalsByUser          map[string]float64            `json:"totals_by_user"`
	TotalsByUserFormatted map[string]string             `json:"totals_by_user_formatted,omitempty"`
	DailyTotals           map[string]map[string]float64 `json:"daily_totals"`
	PayPeriodTotals       map[string]map[string]float64 `json:"pay_period_totals"`
	Periods               []string                      `json:"periods"`
}

// WithFormattedTotals fills TotalsByUserFormatted from TotalsByUser.
func (r Report) WithFormattedTotals() Report {
	formatted := make(map[string]string, len(r.TotalsByUser))
	for username, minutes := range r.TotalsByUser {
		formatted[username] = FormatDuration(minutes)
	}
	r.TotalsByUserFormatted = formatted
	return r
}

// PeriodSummary is the pay-period view: per user, the days falling inside
// the selected period with hours rounded to two decimals.
type PeriodSummary struct {
	SelectedPeriod string              `json:"selected_period,omitempty"`
	Periods        []string            `json:"periods"`
	Users          []UserPeriodSummary `json:"users"`
}

type UserPeriodSummary struct {
	Username   string          `json:"username"`
	Days       []DayTotal      `json:"days"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

type DayTotal struct {
	Date    string          `json:"date"`
	Minutes float64         `json:"minutes"`
	Hours   decimal.Decimal `json:"hours"`
}

// HoursFromMinutes converts minutes to hours rounded to two decimal places.
func HoursFromMinutes(minutes float64) decimal.Decimal {
	return decimal.NewFromFloat(minutes / 60).Round(2)
}
