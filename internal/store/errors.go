package store

import (
	"errors"
	"fmt"

	"godo/internal/model"
)

// Sentinel errors for classifying failures at the CLI edge.
var (
	// ErrValidation marks structurally invalid input. No mutation occurred.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks an operation on an id absent from every bucket or
	// registry. No mutation occurred.
	ErrNotFound = errors.New("not found")

	// ErrTransition marks a status-changing operation invoked from an
	// invalid source state. No mutation occurred.
	ErrTransition = errors.New("invalid transition")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func transitionf(from model.Status, op string) error {
	return fmt.Errorf("%w: %s from %s", ErrTransition, op, from)
}
