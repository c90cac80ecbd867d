package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-chi/jwtauth/v5"
	"github.com/tracklite/timeclock-backend-go/internal/domain/auth"
	"github.com/tracklite/timeclock-backend-go/internal/domain/report"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/authz"
)

type ReportServiceImpl struct {
	timeentry.EntryRepository
	policy authz.Policy
}

func NewReportService(entryRepository timeentry.EntryRepository, policy authz.Policy) report.ReportService {
	return &ReportServiceImpl{
		EntryRepository: entryRepository,
		policy:          policy,
	}
}

// snapshot loads the viewer-scoped entries and maps them into the
// aggregation input shape.
func (s *ReportServiceImpl) snapshot(ctx context.Context) ([]report.Entry, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, auth.ErrInvalidToken
	}

	scope := timeentry.ScopeUser(userID)
	if s.policy.IsAdmin(userID) {
		scope = timeentry.ScopeAll()
	}

	entries, err := s.EntryRepository.ListEntries(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for report: %w", err)
	}

	mapped := make([]report.Entry, 0, len(entries))
	for _, e := range entries {
		mapped = append(mapped, report.Entry{
			Username:     e.Username,
			ClockInTime:  e.ClockInTime,
			ClockOutTime: e.ClockOutTime,
		})
	}

	return mapped, nil
}

// GetReport implements report.ReportService.
func (s *ReportServiceImpl) GetReport(ctx context.Context) (report.Report, error) {
	entries, err := s.snapshot(ctx)
	if err != nil {
		return report.Report{}, err
	}

	return report.BuildReport(entries).WithFormattedTotals(), nil
}

// GetPeriodSummary implements report.ReportService.
func (s *ReportServiceImpl) GetPeriodSummary(ctx context.Context, requestedPeriod string) (report.PeriodSummary, error) {
	entries, err := s.snapshot(ctx)
	if err != nil {
		return report.PeriodSummary{}, err
	}

	periods := report.DistinctPeriods(report.PayPeriodTotals(entries))

	// The requested period sticks while it still exists in the data.
	// Otherwise fall back to the newest, or to nothing when no entries
	// aggregate at all.
	selected := ""
	for _, p := range periods {
		if p == requestedPeriod {
			selected = requestedPeriod
			break
		}
	}
	if selected == "" && len(periods) > 0 {
		selected = periods[0]
	}

	summary := report.PeriodSummary{
		SelectedPeriod: selected,
		Periods:        periods,
		Users:          []report.UserPeriodSummary{},
	}
	if selected == "" {
		return summary, nil
	}

	daily := report.DailyTotals(entries)

	// Keep only each user's day buckets falling inside the selected period.
	perUser := make(map[string][]report.DayTotal)
	for username, days := range daily {
		for day, minutes := range days {
			key, ok := report.PeriodKeyForDay(day)
			if !ok || key != selected {
				continue
			}
			perUser[username] = append(perUser[username], report.DayTotal{
				Date:    day,
				Minutes: minutes,
				Hours:   report.HoursFromMinutes(minutes),
			})
		}
	}

	usernames := make([]string, 0, len(perUser))
	for username := range perUser {
		usernames = append(usernames, username)
	}
	sort.Strings(usernames)

	for _, username := range usernames {
		days := perUser[username]
		sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

		var totalMinutes float64
		for _, d := range days {
			totalMinutes += d.Minutes
		}

		summary.Users = append(summary.Users, report.UserPeriodSummary{
			Username:   username,
			Days:       days,
			TotalHours: report.HoursFromMinutes(totalMinutes),
		})
	}

	return summary, nil
}
