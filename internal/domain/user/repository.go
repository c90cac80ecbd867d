package user

import "context"

// UserRepository defines data access methods for user records.
type UserRepository interface {
	// UpsertByGoogleID creates or refreshes the user row for a Google
	// identity and returns the stored record. Called on every sign-in.
	UpsertByGoogleID(ctx context.Context, u User) (User, error)

	// GetByID retrieves a user by internal ID
	GetByID(ctx context.Context, id string) (User, error)
}
