package errors

import (
	"errors"
	"fmt"
)

// ValidationError input contract violation raised by the pure cores
// (weekly aggregation, receipt rendering). Callers map it to HTTP 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validasi gagal: " + e.Reason
	}
	return fmt.Sprintf("validasi gagal: %s %s", e.Field, e.Reason)
}

// NewValidation creates a ValidationError
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Validationf builds a ValidationError with a formatted reason.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
