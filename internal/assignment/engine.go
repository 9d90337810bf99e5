// Package assignment decides which room hosts a stay, detects conflicts with
// confirmed bookings and closures, and proposes relocations of bookings whose
// guests have not arrived yet. Every operation is a pure function of the
// snapshot, the policy and the clock.
package assignment

import (
	"time"

	"roomdesk-backend/internal/domain"
)

type Engine struct {
	policy Policy
	clock  Clock
}

func NewEngine(policy Policy, clock Clock) *Engine {
	return &Engine{policy: policy, clock: clock}
}

func (e *Engine) Policy() Policy {
	return e.policy
}

func (e *Engine) Clock() Clock {
	return e.clock
}

// Request is one room to find for a stay.
type Request struct {
	PartySize int32
	CheckIn   time.Time
	CheckOut  time.Time
	// LockedRoomID pins the room; no search is done.
	LockedRoomID *int32
	// AllowMoves lets the planner relocate movable bookings when no room is
	// directly available.
	AllowMoves bool
	// ExcludeBookingID ignores that booking's own rooms, used when it is
	// being edited.
	ExcludeBookingID string
}

func (r Request) span() Span {
	return Span{Start: r.CheckIn, End: r.CheckOut}
}

func (r Request) validate() error {
	if r.PartySize < 1 {
		return precondition("party_size", "must be at least 1, got %d", r.PartySize)
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() {
		return precondition("dates", "check-in and check-out are required")
	}
	if !r.CheckOut.After(r.CheckIn) {
		return precondition("check_out", "must be after check-in (%s / %s)",
			r.CheckIn.Format(domain.DateLayout), r.CheckOut.Format(domain.DateLayout))
	}
	return nil
}

// movable reports whether an allocation may be relocated: guests not arrived,
// room not pinned by staff, check-in strictly after today.
func (e *Engine) movable(a allocation, today time.Time) bool {
	return !a.arrived && !a.locked && a.span.Start.After(today)
}
