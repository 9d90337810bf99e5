package assignment

import (
	"fmt"
	"sort"
	"time"

	"roomdesk-backend/internal/domain"
)

// Plan runs the reorganisation search directly: it looks for a room that can
// host req once movable bookings in it are relocated. A room that is already
// free is returned with no moves.
func (e *Engine) Plan(req Request, snap *Snapshot) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	order, err := e.policy.PreferredRoomOrder(req.PartySize)
	if err != nil {
		return notFound(OutcomeUnsupportedPartySize, fmt.Sprintf("no room preference defined for %d guests", req.PartySize)), nil
	}
	st := newState(snap)
	st.skipBooking = req.ExcludeBookingID
	return e.plan(req, st, order), nil
}

// plan is a greedy single pass over candidate rooms in preference order. For
// each room it tries to relocate every movable booking in the way, simulating
// the moves planned so far for that room. There is no backtracking across
// rooms.
func (e *Engine) plan(req Request, st *state, order []int32) Result {
	span := req.span()
	today := Today(e.clock)

	for _, room := range planOrder(st.snap.rooms, order, req.PartySize) {
		if st.closed(room.ID, span) {
			continue
		}
		conflicts, held := st.occupants(room.ID, span)
		if held || !e.allMovable(conflicts, today) {
			continue
		}

		trial := st.fork()
		trial.hold(room.ID, span)
		var moves []domain.Move
		feasible := true
		for _, a := range conflicts {
			to, ok := e.alternative(trial, a, room.ID)
			if !ok {
				feasible = false
				break
			}
			trial.move(a.key, to)
			moves = append(moves, domain.Move{
				BookingID:  a.key.bookingID,
				FromRoomID: room.ID,
				ToRoomID:   to,
				Reason:     fmt.Sprintf("moved to free room %s for a new booking", room.Name),
			})
		}
		if !feasible {
			continue
		}

		st.adopt(trial)
		if len(moves) == 0 {
			return found(room.ID, OutcomeReorganized,
				fmt.Sprintf("room %s is available without moving other bookings", room.Name), nil)
		}
		return found(room.ID, OutcomeReorganized,
			fmt.Sprintf("room %s available after automatic reorganization (%d booking(s) moved)", room.Name, len(moves)), moves)
	}
	return notFound(OutcomeNoArrangement, "no arrangement found even after automatic reorganization")
}

func (e *Engine) allMovable(allocs []allocation, today time.Time) bool {
	for _, a := range allocs {
		if !e.movable(a, today) {
			return false
		}
	}
	return true
}

// alternative finds a room for a displaced allocation, walking its own
// preference order. The room being freed is never offered.
func (e *Engine) alternative(st *state, a allocation, freeing int32) (int32, bool) {
	order, err := e.policy.PreferredRoomOrder(a.guests)
	if err != nil {
		return 0, false
	}
	current := st.roomOf(a)
	for _, id := range order {
		if id == freeing || id == current {
			continue
		}
		room, ok := st.snap.Room(id)
		if !ok || !usable(room, a.guests) {
			continue
		}
		if st.free(id, a.span, &a.key) {
			return id, true
		}
	}
	return 0, false
}

// planOrder lists usable rooms: those in the preference order first, in that
// order, then the unlisted ones by wasted capacity and id.
func planOrder(rooms []domain.Room, order []int32, partySize int32) []domain.Room {
	var listed, unlisted []domain.Room
	seen := map[int32]bool{}
	byID := make(map[int32]domain.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	for _, id := range order {
		r, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		if usable(r, partySize) {
			listed = append(listed, r)
		}
	}
	for _, r := range rooms {
		if !seen[r.ID] && usable(r, partySize) {
			unlisted = append(unlisted, r)
		}
	}
	sort.SliceStable(unlisted, func(i, j int) bool {
		wi, wj := unlisted[i].Capacity-partySize, unlisted[j].Capacity-partySize
		if wi != wj {
			return wi < wj
		}
		return unlisted[i].ID < unlisted[j].ID
	})
	return append(listed, unlisted...)
}
