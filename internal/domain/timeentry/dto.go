package timeentry

import (
	"time"

	"github.com/tracklite/timeclock-backend-go/internal/domain/report"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	// Task may still be empty at clock-in; it becomes mandatory at clock-out.
	Task string `json:"task"`
}

type ClockOutRequest struct {
	Task string `json:"task"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Task) {
		errs = append(errs, validator.ValidationError{
			Field:   "task",
			Message: "task description is required before clocking out",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimeEntryResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	ClockInTime  string `json:"clock_in_time"`
	ClockOutTime string `json:"clock_out_time"`
	Task         string `json:"task"`
	Duration     string `json:"duration"`
	CreatedAt    string `json:"created_at"`
}

func (e TimeEntry) ToResponse() TimeEntryResponse {
	minutes := report.MinutesBetween(e.ClockInTime, e.ClockOutTime)
	return TimeEntryResponse{
		ID:           e.ID,
		UserID:       e.UserID,
		Username:     e.Username,
		ClockInTime:  formatTimestamp(e.ClockInTime),
		ClockOutTime: formatTimestamp(e.ClockOutTime),
		Task:         e.Task,
		Duration:     report.FormatDuration(minutes),
		CreatedAt:    formatTimestamp(e.CreatedAt),
	}
}

type ListEntriesResponse struct {
	Entries []TimeEntryResponse `json:"entries"`
	Total   int                 `json:"total"`
}

// ActiveClockResponse mirrors the live clock document. ClockedIn false means
// the remaining fields are empty.
type ActiveClockResponse struct {
	ClockedIn   bool   `json:"clocked_in"`
	ClockInTime string `json:"clock_in_time,omitempty"`
	Task        string `json:"task,omitempty"`
	Username    string `json:"username,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
}

func (a ActiveClock) ToResponse() ActiveClockResponse {
	return ActiveClockResponse{
		ClockedIn:   true,
		ClockInTime: formatTimestamp(a.ClockInTime),
		Task:        a.Task,
		Username:    a.Username,
		LastUpdated: formatTimestamp(a.LastUpdated),
	}
}

// SSETokenResponse carries the short-lived token used to open the event
// stream, since EventSource cannot send Authorization headers.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
