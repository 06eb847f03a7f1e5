package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound signals a lookup or update referencing an unknown game id.
// It is an expected negative result, not a fault.
var ErrNotFound = errors.New("match not found")

// ValidationError rejects malformed input before any persistence attempt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
