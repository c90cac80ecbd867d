package timeentry

import (
	"time"
)

// TimeEntry is a completed clock-in/clock-out pair. Entries are created
// whole at clock-out and never updated, only deleted.
type TimeEntry struct {
	ID           string
	UserID       string
	Username     string
	ClockInTime  time.Time
	ClockOutTime time.Time
	Task         string
	CreatedAt    time.Time
}

// ActiveClock is the single open clock-in record for a user. At most one
// exists per user; absence means the user is not clocked in.
type ActiveClock struct {
	UserID      string
	Username    string
	Task        string
	ClockInTime time.Time
	LastUpdated time.Time
}
