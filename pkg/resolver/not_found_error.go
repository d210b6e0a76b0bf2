package resolver

import (
	"errors"
	"fmt"
)

// ErrNotFound matches every *NotFoundError.
var ErrNotFound = errors.New("class not found")

// ErrCancelled is returned when the user dismisses the disambiguation prompt.
var ErrCancelled = errors.New("selection cancelled")

// ErrAlreadyQualified is returned by Expand for a fully-qualified reference.
var ErrAlreadyQualified = errors.New("reference is already fully qualified")

// NotFoundError is returned when no candidate exists for a reference.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotFound, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
