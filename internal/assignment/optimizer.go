package assignment

import (
	"fmt"

	"roomdesk-backend/internal/domain"
)

// OptimizeAll proposes moves that put future bookings in rooms their party
// size prefers. Bookings are scanned by check-in (then booking id). A booking
// walks its preference order and stops at its current room, so it only ever
// moves to a strictly more preferred room, and only if that room is free in
// the simulated state. Passes repeat until one produces no move; the result
// has one move per relocated room, from its stored room to its final one.
func (e *Engine) OptimizeAll(snap *Snapshot) []domain.Move {
	st := newState(snap)
	today := Today(e.clock)

	origin := map[allocKey]int32{}
	var sequence []allocation

	for {
		changed := false
		for _, a := range snap.allocs {
			if !e.movable(a, today) {
				continue
			}
			current := st.roomOf(a)
			if _, ok := snap.Room(current); !ok {
				continue
			}
			to, ok := e.betterRoom(st, a, current)
			if !ok {
				continue
			}
			if _, seen := origin[a.key]; !seen {
				origin[a.key] = current
				sequence = append(sequence, a)
			}
			st.move(a.key, to)
			changed = true
		}
		if !changed {
			break
		}
	}

	moves := make([]domain.Move, 0, len(sequence))
	for _, a := range sequence {
		moves = append(moves, domain.Move{
			BookingID:  a.key.bookingID,
			FromRoomID: origin[a.key],
			ToRoomID:   st.moved[a.key],
			Reason:     fmt.Sprintf("automatic optimisation: better suited room for %d guest(s)", a.guests),
		})
	}
	return moves
}

// betterRoom walks a's preference order up to its current room and returns
// the first usable room that is free in st.
func (e *Engine) betterRoom(st *state, a allocation, current int32) (int32, bool) {
	order, err := e.policy.PreferredRoomOrder(a.guests)
	if err != nil {
		return 0, false
	}
	for _, id := range order {
		if id == current {
			break
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
