package product

import "errors"

// ErrNotFound is returned when an update, delete or lookup targets an id
// that does not exist.
var ErrNotFound = errors.New("product not found")

// ValidationError marks a failure caused by the caller's input. Handlers
// translate it to a 400; everything else is a server fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(reason string) error { return &ValidationError{Reason: reason} }
