package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidQuantity    = errors.New("quantity must be positive and have a unit")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidServingSize = errors.New("serving size must be positive")
	ErrInvalidStorage     = errors.New("unknown storage type")
	ErrAgeTooLow          = errors.New("user must be at least 13 years old")
)

// ValidationError reports which field broke which rule. It unwraps to one of the
// sentinel errors above so callers can match with errors.Is.
type ValidationError struct {
	Field string
	Err   error
}

func NewValidationError(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is a record validation failure.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
