package assignment

import (
	"fmt"
	"sort"

	"roomdesk-backend/internal/domain"
)

// Assign returns the best room for req, or a not-found Result with the reason.
// The returned error is only set for precondition violations.
func (e *Engine) Assign(req Request, snap *Snapshot) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	st := newState(snap)
	st.skipBooking = req.ExcludeBookingID
	return e.assign(req, st), nil
}

// AssignAll resolves several rooms for the same stay in order. A room picked
// for an earlier request is held for the later ones, and moves planned for an
// earlier request are kept in the simulation.
func (e *Engine) AssignAll(reqs []Request, snap *Snapshot) ([]Result, error) {
	for _, r := range reqs {
		if err := r.validate(); err != nil {
			return nil, err
		}
	}
	st := newState(snap)
	if len(reqs) > 0 {
		st.skipBooking = reqs[0].ExcludeBookingID
	}
	results := make([]Result, 0, len(reqs))
	for _, r := range reqs {
		results = append(results, e.assign(r, st))
	}
	return results, nil
}

// assign runs the resolver on st. On success the chosen room is held in st
// and any planned moves are applied to it.
func (e *Engine) assign(req Request, st *state) Result {
	span := req.span()

	if req.LockedRoomID != nil {
		res := e.assignLocked(*req.LockedRoomID, req.PartySize, span, st)
		if res.Found() {
			st.hold(*res.RoomID, span)
		}
		return res
	}

	order, err := e.policy.PreferredRoomOrder(req.PartySize)
	if err != nil {
		return notFound(OutcomeUnsupportedPartySize, fmt.Sprintf("no room preference defined for %d guests", req.PartySize))
	}

	var candidates []domain.Room
	for _, room := range st.snap.rooms {
		if usable(room, req.PartySize) && st.free(room.ID, span, nil) {
			candidates = append(candidates, room)
		}
	}

	if len(candidates) == 0 {
		if req.AllowMoves {
			return e.plan(req, st, order)
		}
		return notFound(OutcomeNoRoomAvailable, "no room available for the selected dates")
	}

	room := rankRooms(candidates, order, req.PartySize)[0]
	st.hold(room.ID, span)
	if room.Capacity == req.PartySize {
		return found(room.ID, OutcomeExactFit,
			fmt.Sprintf("room %s assigned automatically (exact fit: %d beds)", room.Name, room.Capacity), nil)
	}
	return found(room.ID, OutcomeSurplusCapacity,
		fmt.Sprintf("room %s assigned automatically (%d beds, %d spare)", room.Name, room.Capacity, room.Capacity-req.PartySize), nil)
}

func (e *Engine) assignLocked(roomID, partySize int32, span Span, st *state) Result {
	room, ok := st.snap.Room(roomID)
	if !ok {
		return notFound(OutcomeLockedUnavailable, fmt.Sprintf("room %d does not exist", roomID))
	}
	if room.Capacity < partySize {
		return notFound(OutcomeLockedUnavailable,
			fmt.Sprintf("room %s holds at most %d guests", room.Name, room.Capacity))
	}
	if !st.free(roomID, span, nil) {
		return notFound(OutcomeLockedUnavailable,
			fmt.Sprintf("room %s is not available for the requested dates", room.Name))
	}
	return found(room.ID, OutcomeLocked, fmt.Sprintf("room %s assigned manually (locked)", room.Name), nil)
}

// rankRooms orders candidates the way the resolver picks them. Rooms listed in
// the preference order come first: exact fits in preference order, then
// larger rooms in preference order. Unlisted rooms follow, by wasted capacity
// and then id.
func rankRooms(rooms []domain.Room, order []int32, partySize int32) []domain.Room {
	pos := positions(order)
	out := append([]domain.Room(nil), rooms...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		pa, listedA := pos[a.ID]
		pb, listedB := pos[b.ID]
		if listedA != listedB {
			return listedA
		}
		if listedA {
			exactA, exactB := a.Capacity == partySize, b.Capacity == partySize
			if exactA != exactB {
				return exactA
			}
			if pa != pb {
				return pa < pb
			}
		}
		wa, wb := a.Capacity-partySize, b.Capacity-partySize
		if wa != wb {
			return wa < wb
		}
		return a.ID < b.ID
	})
	return out
}
