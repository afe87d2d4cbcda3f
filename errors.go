package moviereviews

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeMissingParameter = "MISSING_PARAMETER"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAmbiguousMatch   = "AMBIGUOUS_MATCH"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// Sentinel errors returned by ReviewStore implementations
var (
	ErrNotFound  = errors.New("review not found")
	ErrConflict  = errors.New("review already exists")
	ErrAmbiguous = errors.New("more than one review matches")
)

// ReviewError is a coded error surfaced to API callers
type ReviewError struct {
	Message string                 `json:"message"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *ReviewError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any
func (e *ReviewError) Unwrap() error {
	return e.cause
}

// NewReviewError creates a new coded error
func NewReviewError(code, message string) *ReviewError {
	return &ReviewError{
		Message: message,
		Code:    code,
	}
}

// WrapReviewError creates a coded error carrying an underlying cause
func WrapReviewError(code, message string, cause error) *ReviewError {
	return &ReviewError{
		Message: message,
		Code:    code,
		cause:   cause,
	}
}

// WithDetails adds details to the error
func (e *ReviewError) WithDetails(details map[string]interface{}) *ReviewError {
	e.Details = details
	return e
}

// HTTPStatus maps the error code to a response status
func (e *ReviewError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeMissingParameter, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeAmbiguousMatch, ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// MissingParameter reports an absent or malformed required parameter
func MissingParameter(name string) *ReviewError {
	return NewReviewError(ErrCodeMissingParameter, fmt.Sprintf("Missing %s parameter", name)).
		WithDetails(map[string]interface{}{"parameter": name})
}

// AsReviewError converts any error into a ReviewError. Store sentinels map to
// their codes; anything else becomes INTERNAL_ERROR with the original cause.
func AsReviewError(err error) *ReviewError {
	if err == nil {
		return nil
	}

	var re *ReviewError
	if errors.As(err, &re) {
		return re
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return WrapReviewError(ErrCodeNotFound, "Movie review not found", err)
	case errors.Is(err, ErrAmbiguous):
		return WrapReviewError(ErrCodeAmbiguousMatch, "More than one review matches the movie and reviewer", err)
	case errors.Is(err, ErrConflict):
		return WrapReviewError(ErrCodeConflict, "Movie review already exists", err)
	default:
		return WrapReviewError(ErrCodeInternalError, "Internal error", err)
	}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if re, ok := err.(*ReviewError); ok {
		return re.Code == ErrCodeNotFound
	}
	return errors.Is(err, ErrNotFound)
}
