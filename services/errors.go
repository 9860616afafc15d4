package services

import (
	"errors"
	"fmt"
)

// Not-found conditions, detected before any mutation.
var (
	ErrBuildingNotFound  = errors.New("building not found")
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrMeterNotFound     = errors.New("meter not found")
	ErrMeterInactive     = errors.New("meter is not active")
	ErrInvoiceNotFound   = errors.New("invoice not found")
)

// ErrReadingAlreadyBilled guards the billed-link: a reading can be
// turned into an invoice line exactly once.
var ErrReadingAlreadyBilled = errors.New("reading is already billed")

// ValidationError marks malformed caller input. Nothing is written when
// one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is caller-input validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
