package data

import apperrors "github.com/target/admin-panel/internal/errors"

// Shared sentinel errors for data-layer repositories. They are AppErrors so
// callers outside this package can classify them by code; match them with errors.Is.
var (
	// User repository sentinels.
	ErrUserNotFound   = apperrors.NotFoundf("User not found")
	ErrUsernameExists = conflict("username", "Username already exists")
	ErrEmailExists    = conflict("email", "Email already exists")

	// Template repository sentinels.
	ErrTemplateNotFound = apperrors.NotFoundf("Template not found")
	ErrSlugExists       = conflict("slug", "Slug already exists")

	// Menu and form repository sentinels.
	ErrMenuNotFound = apperrors.NotFoundf("Menu not found")
	ErrFormNotFound = apperrors.NotFoundf("Form submission not found")
)

func conflict(field, msg string) *apperrors.AppError {
	e := apperrors.Conflictf(msg)
	e.Field = field
	return e
}
