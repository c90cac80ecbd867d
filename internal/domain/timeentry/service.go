package timeentry

import (
	"context"
)

// EntryService defines business logic for the clock lifecycle.
type EntryService interface {
	// ClockIn opens the viewer's active clock. Fails with ErrAlreadyClockedIn
	// when an open clock exists.
	ClockIn(ctx context.Context, req ClockInRequest) (ActiveClockResponse, error)

	// ClockOut validates the task, writes the completed entry and clears the
	// active clock atomically.
	ClockOut(ctx context.Context, req ClockOutRequest) (TimeEntryResponse, error)

	// ActiveClock returns the viewer's current clock state.
	ActiveClock(ctx context.Context) (ActiveClockResponse, error)

	// ActiveClockForUser returns the clock state for an explicit user ID.
	// Used by the SSE stream, which authenticates with a short-lived token
	// instead of the JWT middleware.
	ActiveClockForUser(ctx context.Context, userID string) (ActiveClockResponse, error)

	// List returns entries visible to the viewer: all of them for admins,
	// otherwise only the viewer's own. Newest clock-in first.
	List(ctx context.Context) (ListEntriesResponse, error)

	// Delete removes an entry. Only admins or the entry's owner may delete;
	// the check happens before any delete is issued to the repository.
	Delete(ctx context.Context, id string) error
}
