/*
errors.go - Centralized error types

PURPOSE:
  The earnings core never fails; these errors belong to the edges that feed
  it (settings parsing, validation, the HTTP adapter). Callers wrap them with
  context and test with errors.Is / errors.As.

ERROR CATEGORIES:
  Input errors only: malformed times, negative salary, bad settings documents.

SEE ALSO:
  - factory/settings.go: Produces SettingsError
  - api/handlers.go: Maps errors to HTTP status codes
*/
package generic

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidTimeOfDay is returned when a time is not HH:MM on a 24-hour clock.
	ErrInvalidTimeOfDay = errors.New("invalid time of day, use HH:MM (24-hour clock)")

	// ErrNegativeSalary is returned when a salary below zero is supplied.
	ErrNegativeSalary = errors.New("salary must not be negative")

	// ErrInvalidSettings is returned when a settings document cannot be used at all.
	ErrInvalidSettings = errors.New("invalid settings")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// SettingsError names the offending setting.
type SettingsError struct {
	Field string
	Value any
	Err   error
}

func (e *SettingsError) Error() string {
	return fmt.Sprintf("setting %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidTimeOfDay) ||
		errors.Is(err, ErrNegativeSalary) ||
		errors.Is(err, ErrInvalidSettings)
}
