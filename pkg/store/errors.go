package store

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrPolaroidNotFound is returned when an operation targets an id that is not
// in the store
var ErrPolaroidNotFound = errors.New("polaroid not found")

// ValidationError is returned when a required field is missing
type ValidationError struct {
	Field string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// IsNotFound reports whether err, or the error it wraps, is ErrPolaroidNotFound
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrPolaroidNotFound
}

// IsValidation reports whether err, or the error it wraps, is a ValidationError
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(ValidationError)
	return ok
}
