/*
errors.go - Centralized error types for the holiday engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers match with errors.Is against the sentinels; the structured
  types carry the offending values for diagnostics.

ERROR CATEGORIES:
  1. Range errors - malformed or out-of-domain span bounds
  2. Equinox errors - estimation requested outside every formula regime

USAGE:
  if errors.Is(err, jholiday.ErrInvalidRange) { ... }

SEE ALSO:
  - jholiday.go: Returns RangeError from constructors
  - equinox.go:  Returns UnsupportedYearError
*/
package jholiday

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidRange is returned when a requested span is malformed or
	// begins before the Act's effective date (1948-07-23).
	ErrInvalidRange = errors.New("invalid date range")

	// ErrUnsupportedYear is returned when equinox estimation is requested
	// for a year outside every documented approximation regime. The
	// estimator does not extrapolate.
	ErrUnsupportedYear = errors.New("year outside supported equinox regimes")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RangeError reports an unacceptable span passed to a constructor.
type RangeError struct {
	Min    Date
	Max    Date
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid range [%s, %s]: %s", e.Min, e.Max, e.Reason)
}

func (e *RangeError) Unwrap() error { return ErrInvalidRange }

// UnsupportedYearError reports an equinox estimation request outside the
// documented formula regimes (1851-2150).
type UnsupportedYearError struct {
	Year   int
	Season Season
}

func (e *UnsupportedYearError) Error() string {
	return fmt.Sprintf("no %s equinox formula regime covers year %d", e.Season, e.Year)
}

func (e *UnsupportedYearError) Unwrap() error { return ErrUnsupportedYear }

// IsClientError returns true if the error is due to invalid caller input
// rather than an internal failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRange) || errors.Is(err, ErrUnsupportedYear)
}
