package assignment

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnsupportedPartySize  = errors.New("unsupported party size")
	ErrNoRoomAvailable       = errors.New("no room available")
	ErrNoArrangement         = errors.New("no arrangement found even after reorganization")
	ErrLockedRoomUnavailable = errors.New("locked room unavailable")
	ErrMoveRejected          = errors.New("move rejected")
)

// PreconditionError labels input that should have been rejected at the
// boundary. It unwraps to ErrInvalidInput.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition failed: %s: %s", e.Field, e.Message)
}

func (e *PreconditionError) Unwrap() error {
	return ErrInvalidInput
}

func precondition(field, format string, args ...any) error {
	return &PreconditionError{Field: field, Message: fmt.Sprintf(format, args...)}
}
