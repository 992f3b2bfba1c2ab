/*
errors.go - Centralized error types for the engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  The HTTP layer maps these onto status codes via the helper predicates.

ERROR CATEGORIES:
  1. Precondition errors - incomplete settings (onboarding not finished)
  2. Parse errors - malformed clock strings at the input boundary
  3. Configuration errors - settings that make the accrual undefined

USAGE:
  if errors.Is(err, engine.ErrNotOnboarded) {
      // route to onboarding instead of showing numbers
  }

SEE ALSO:
  - settings.go: where Validate produces these
  - api/handlers.go: status-code mapping
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrNotOnboarded is returned when settings are missing or incomplete.
	// The engine refuses to compute with defaults; callers route the user
	// to the onboarding flow instead.
	ErrNotOnboarded = errors.New("settings incomplete: onboarding not finished")

	// ErrMalformedClock is the sentinel wrapped by *ParseError.
	ErrMalformedClock = errors.New("malformed clock string")

	// ErrNoWorkdays is returned when the configured weekday set yields
	// zero workdays in the current pay period. A reportable configuration
	// error, never a silent zero or NaN in displayed currency.
	ErrNoWorkdays = errors.New("no workdays in pay period")

	// ErrInvalidPayDay is returned for pay days outside 1-31.
	ErrInvalidPayDay = errors.New("pay day out of range (1-31)")
)

// =============================================================================
// STRUCTURED ERRORS - carry additional context
// =============================================================================

// ParseError reports a malformed "HH:MM" string.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrMalformedClock }

// NoWorkdaysError reports which period had no workdays.
type NoWorkdaysError struct {
	Period PayPeriod
}

func (e *NoWorkdaysError) Error() string {
	return fmt.Sprintf("no workdays in pay period %s", e.Period)
}

func (e *NoWorkdaysError) Unwrap() error { return ErrNoWorkdays }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// or configuration, as opposed to an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMalformedClock) ||
		errors.Is(err, ErrNoWorkdays) ||
		errors.Is(err, ErrInvalidPayDay)
}

// IsNotOnboarded reports whether the error is the onboarding precondition.
func IsNotOnboarded(err error) bool {
	return errors.Is(err, ErrNotOnboarded)
}
