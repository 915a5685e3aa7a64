// Package apperr holds the error kinds shared by the order, notification and
// sales packages. Callers branch on them with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("concurrent update conflict")
	ErrAlreadyNotified   = errors.New("order already notified")
)

// Validation wraps ErrValidation with a field-level message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func InvalidTransition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Conflict means a conditional write lost against a concurrent writer; the
// caller should re-read and retry.
func Conflict(id string) error {
	return fmt.Errorf("%w: order %s changed concurrently", ErrConflict, id)
}

func AlreadyNotified(id string) error {
	return fmt.Errorf("%w: %s", ErrAlreadyNotified, id)
}
