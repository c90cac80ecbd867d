package timeentry

import (
	"context"
)

// EntryScope selects which entries a query returns. Admins get ScopeAll;
// everyone else is restricted to their own user ID.
type EntryScope struct {
	All    bool
	UserID string
}

// ScopeAll returns the unrestricted scope.
func ScopeAll() EntryScope {
	return EntryScope{All: true}
}

// ScopeUser restricts queries to a single user's entries.
func ScopeUser(userID string) EntryScope {
	return EntryScope{UserID: userID}
}

// EntryRepository defines data access for completed entries and the
// per-user active clock document.
type EntryRepository interface {
	// CreateEntry inserts a completed entry and returns it with the
	// assigned ID and creation timestamp.
	CreateEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	// DeleteEntry removes an entry by ID. Returns ErrEntryNotFound when the
	// entry is already absent.
	DeleteEntry(ctx context.Context, id string) error

	// GetEntryByID retrieves a single entry.
	GetEntryByID(ctx context.Context, id string) (TimeEntry, error)

	// ListEntries returns entries in the scope ordered by clock-in time
	// descending.
	ListEntries(ctx context.Context, scope EntryScope) ([]TimeEntry, error)

	// GetActiveClock returns the user's open clock, or nil when the user is
	// not clocked in.
	GetActiveClock(ctx context.Context, userID string) (*ActiveClock, error)

	// SetActiveClock creates or replaces the user's open clock.
	SetActiveClock(ctx context.Context, clock ActiveClock) error

	// ClearActiveClock removes the user's open clock if present.
	ClearActiveClock(ctx context.Context, userID string) error
}
