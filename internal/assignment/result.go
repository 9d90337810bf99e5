package assignment

import (
	"fmt"

	"roomdesk-backend/internal/domain"
)

// Outcome names the rule that produced a Result.
type Outcome string

const (
	OutcomeLocked               Outcome = "locked"
	OutcomeExactFit             Outcome = "exact_fit"
	OutcomeSurplusCapacity      Outcome = "surplus_capacity"
	OutcomeReorganized          Outcome = "reorganized"
	OutcomeUnsupportedPartySize Outcome = "unsupported_party_size"
	OutcomeNoRoomAvailable      Outcome = "no_room_available"
	OutcomeNoArrangement        Outcome = "no_arrangement"
	OutcomeLockedUnavailable    Outcome = "locked_room_unavailable"
)

// Result is the answer to one stay request. RoomID is nil when no room was
// found; Reason always explains which rule matched.
type Result struct {
	RoomID  *int32        `json:"room_id"`
	Outcome Outcome       `json:"outcome"`
	Reason  string        `json:"reason"`
	Moves   []domain.Move `json:"moves,omitempty"`
}

func (r Result) Found() bool {
	return r.RoomID != nil
}

// Err maps a no-solution outcome to its sentinel error carrying the reason,
// nil otherwise.
func (r Result) Err() error {
	var sentinel error
	switch r.Outcome {
	case OutcomeUnsupportedPartySize:
		sentinel = ErrUnsupportedPartySize
	case OutcomeNoRoomAvailable:
		sentinel = ErrNoRoomAvailable
	case OutcomeNoArrangement:
		sentinel = ErrNoArrangement
	case OutcomeLockedUnavailable:
		sentinel = ErrLockedRoomUnavailable
	default:
		return nil
	}
	return &OutcomeError{Outcome: r.Outcome, Reason: r.Reason, err: sentinel}
}

// OutcomeError is a no-solution Result seen as an error.
type OutcomeError struct {
	Outcome Outcome
	Reason  string
	err     error
}

func (e *OutcomeError) Error() string {
	return fmt.Sprintf("%s: %s", e.err, e.Reason)
}

func (e *OutcomeError) Unwrap() error {
	return e.err
}

func found(roomID int32, outcome Outcome, reason string, moves []domain.Move) Result {
	id := roomID
	return Result{RoomID: &id, Outcome: outcome, Reason: reason, Moves: moves}
}

func notFound(outcome Outcome, reason string) Result {
	return Result{Outcome: outcome, Reason: reason}
}
