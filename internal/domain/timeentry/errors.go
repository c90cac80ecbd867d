package timeentry

import "errors"

// Time entry domain errors
var (
	// Clock lifecycle errors
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")

	// General errors
	ErrEntryNotFound   = errors.New("time entry not found")
	ErrDeleteForbidden = errors.New("not allowed to delete this entry")
)
