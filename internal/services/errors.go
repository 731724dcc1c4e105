package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/proctoring-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Attempt specific errors
	ErrAttemptNotFound = errors.New("attempt not found")

	// Violation specific errors
	ErrViolationNotFound    = errors.New("violation not found")
	ErrInvalidViolationType = errors.New("invalid violation type")

	// Export specific errors
	ErrNothingToExport = errors.New("no violations to export")
)

// ===== SHARED ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single) || errors.Is(err, ErrValidationFailed)
}
