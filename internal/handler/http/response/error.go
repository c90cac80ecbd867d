package response

import (
	"errors"
	"net/http"

	"github.com/tracklite/timeclock-backend-go/internal/domain/auth"
	"github.com/tracklite/timeclock-backend-go/internal/domain/timeentry"
	"github.com/tracklite/timeclock-backend-go/internal/domain/user"
	"github.com/tracklite/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token missing")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Time entry domain errors
	case errors.Is(err, timeentry.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in")
	case errors.Is(err, timeentry.ErrNotClockedIn):
		Conflict(w, "Not clocked in")
	case errors.Is(err, timeentry.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timeentry.ErrDeleteForbidden):
		Forbidden(w, "Not allowed to delete this entry")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
