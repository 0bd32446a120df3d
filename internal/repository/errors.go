package repository

import (
	"strings"

	apperrors "github.com/welldanyogia/recipe-app-api/internal/errors"
)

// Common repository errors
var (
	ErrNotFound       = apperrors.ErrNotFound
	ErrDuplicateEntry = apperrors.ErrDuplicateEntry
	ErrInvalidInput   = apperrors.ErrInvalidInput
)

// isDuplicateKeyError checks if the error is a duplicate key violation
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505") // PostgreSQL unique violation code
}
