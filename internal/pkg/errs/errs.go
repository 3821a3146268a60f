// Package errs carries the error kinds handlers translate into HTTP
// statuses, so services stay ignorant of the transport.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError rejects bad client input; handlers answer 400 with the
// message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation builds a ValidationError from a format string.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is client-input rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
