package report

import (
	"context"
)

// ReportService exposes the aggregation over the viewer's entry snapshot.
// Visibility follows the entry scoping rule: admins aggregate everyone,
// other viewers only themselves.
type ReportService interface {
	// GetReport computes the full report.
	GetReport(ctx context.Context) (Report, error)

	// GetPeriodSummary computes the per-day view for one pay period.
	// requestedPeriod is honored while it still exists in the data;
	// otherwise the newest period is selected, or none when there is no
	// data at all.
	GetPeriodSummary(ctx context.Context, requestedPeriod string) (PeriodSummary, error)
}
