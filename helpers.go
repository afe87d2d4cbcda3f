package moviereviews

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ToPtr returns a pointer to the given value.
// This is useful for creating pointers to literals or converting values to pointers.
func ToPtr[T any](v T) *T {
	return &v
}

// ParseMovieID parses a movieId path parameter. Absent, non-numeric and
// non-positive values are all rejected as a missing parameter.
func ParseMovieID(raw string) (int, error) {
	if raw == "" {
		return 0, MissingParameter("movieId")
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, MissingParameter("movieId")
	}
	return id, nil
}

// ParseMinRating parses the optional minRating query parameter.
// Returns nil when the parameter is absent.
func ParseMinRating(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid minRating %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("invalid minRating %q: not a finite number", raw)
	}
	return &v, nil
}

// CalculateBackoff calculates the backoff delay for a retry attempt.
// It supports three strategies:
//   - EXPONENTIAL: baseDelay * 2^(attempt-1)
//   - LINEAR: baseDelay * attempt
//   - NONE: no backoff delay
//
// Returns 0 for attempt 0.
func CalculateBackoff(baseDelayMs int, attempt int, strategy BackoffStrategy) time.Duration {
	if attempt == 0 {
		return 0
	}

	baseDelay := time.Duration(baseDelayMs) * time.Millisecond

	switch strategy {
	case BackoffExponential:
		multiplier := 1 << (attempt - 1)
		return baseDelay * time.Duration(multiplier)
	case BackoffLinear:
		return baseDelay * time.Duration(attempt)
	case BackoffNone:
		return 0
	default:
		return baseDelay * time.Duration(attempt)
	}
}
