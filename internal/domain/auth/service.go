package auth

import "context"

// AuthService defines business logic for session management. Sign-in is
// Google-only; there are no password credentials in this system.
type AuthService interface {
	// LoginWithGoogle upserts the user for a verified Google identity and
	// issues an access + refresh token pair.
	LoginWithGoogle(ctx context.Context, googleID string, email string, name string, session SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken rotates the refresh token and issues a new access token.
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes the refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// Viewer resolves the authenticated viewer from the request context.
	Viewer(ctx context.Context) (ViewerResponse, error)
}
