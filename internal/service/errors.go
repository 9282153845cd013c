package service

import (
	"errors"

	apperrors "github.com/target/admin-panel/internal/errors"
)

// Auth failures. Each is wrapped in an AppError carrying the status class and
// user-facing message; match with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrSSODisabled        = errors.New("single sign-on is not enabled")
	ErrInvalidSSOState    = errors.New("invalid or expired sso state")
	ErrAccountInactive    = errors.New("account is inactive")
)

func invalidCredentials() error {
	return apperrors.Wrap(ErrInvalidCredentials, apperrors.ErrCodeUnauthorized, "Invalid credentials")
}

func unauthenticated(cause error) error {
	if cause == nil {
		cause = ErrUnauthenticated
	} else {
		cause = errors.Join(ErrUnauthenticated, cause)
	}
	return apperrors.Wrap(cause, apperrors.ErrCodeUnauthorized, "Authentication required")
}
