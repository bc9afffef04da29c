// Package validation carries the sentinel that marks input errors, so the
// HTTP layer can map them to 400 without knowing each service's messages.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid marks an input validation failure.
var ErrInvalid = errors.New("invalid input")

// Errorf builds a validation error. errors.Is(err, ErrInvalid) holds for the
// result.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}
