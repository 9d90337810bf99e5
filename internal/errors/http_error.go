package errors

import (
	stderrors "errors"
	"net/http"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/proposal"
	"roomdesk-backend/internal/repository"
)

// HTTPError represents an error with an associated HTTP status code.
type HTTPError struct {
	Code    int
	Message string
	// Reason is the engine's explanation when a room could not be found.
	Reason string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTPError with the given code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrBadRequest = func(msg string) *HTTPError { return NewHTTPError(http.StatusBadRequest, msg) }
	ErrNotFound   = func(msg string) *HTTPError { return NewHTTPError(http.StatusNotFound, msg) }
	ErrConflict   = func(msg string) *HTTPError { return NewHTTPError(http.StatusConflict, msg) }
)

// FromError maps a service error to its HTTP status.
func FromError(err error) *HTTPError {
	var httpErr *HTTPError
	if stderrors.As(err, &httpErr) {
		return httpErr
	}
	var outcome *assignment.OutcomeError
	reason := ""
	if stderrors.As(err, &outcome) {
		reason = outcome.Reason
	}
	switch {
	case stderrors.Is(err, assignment.ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case stderrors.Is(err, repository.ErrNotFound), stderrors.Is(err, proposal.ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case stderrors.Is(err, assignment.ErrUnsupportedPartySize):
		return &HTTPError{Code: http.StatusUnprocessableEntity, Message: err.Error(), Reason: reason}
	case stderrors.Is(err, assignment.ErrNoRoomAvailable),
		stderrors.Is(err, assignment.ErrNoArrangement),
		stderrors.Is(err, assignment.ErrLockedRoomUnavailable),
		stderrors.Is(err, assignment.ErrMoveRejected),
		stderrors.Is(err, repository.ErrConflict):
		return &HTTPError{Code: http.StatusConflict, Message: err.Error(), Reason: reason}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error")
}
