package assignment

import (
	"fmt"
	"time"

	"roomdesk-backend/internal/domain"
)

// Hold is a room reserved for a booking that is being created together with
// a batch of moves.
type Hold struct {
	RoomID   int32
	CheckIn  time.Time
	CheckOut time.Time
}

// ValidateMoves re-checks a move list against a fresh snapshot before it is
// committed. Each move must name a movable booking still in its source room,
// and the destinations must be usable and conflict-free once every move and
// hold is applied.
func (e *Engine) ValidateMoves(moves []domain.Move, snap *Snapshot, holds ...Hold) error {
	st := newState(snap)
	today := Today(e.clock)

	moved := make([]allocation, 0, len(moves))
	for _, m := range moves {
		a, ok := snap.allocation(allocKey{bookingID: m.BookingID, roomID: m.FromRoomID})
		if !ok {
			return fmt.Errorf("%w: booking %s is not confirmed in room %d", ErrMoveRejected, m.BookingID, m.FromRoomID)
		}
		if _, dup := st.moved[a.key]; dup {
			return fmt.Errorf("%w: booking %s moved twice from room %d", ErrMoveRejected, m.BookingID, m.FromRoomID)
		}
		if !e.movable(a, today) {
			return fmt.Errorf("%w: booking %s can no longer be moved", ErrMoveRejected, m.BookingID)
		}
		room, ok := snap.Room(m.ToRoomID)
		if !ok {
			return fmt.Errorf("%w: room %d does not exist", ErrMoveRejected, m.ToRoomID)
		}
		if !usable(room, a.guests) {
			return fmt.Errorf("%w: room %s cannot host %d guest(s)", ErrMoveRejected, room.Name, a.guests)
		}
		st.move(a.key, m.ToRoomID)
		moved = append(moved, a)
	}

	for _, h := range holds {
		span := Span{Start: h.CheckIn, End: h.CheckOut}
		if !st.free(h.RoomID, span, nil) {
			return fmt.Errorf("%w: room %d is not free for the new booking", ErrMoveRejected, h.RoomID)
		}
		st.hold(h.RoomID, span)
	}

	for _, a := range moved {
		to := st.moved[a.key]
		if !st.free(to, a.span, &a.key) {
			return fmt.Errorf("%w: booking %s would overlap another stay in room %d", ErrMoveRejected, a.key.bookingID, to)
		}
	}
	return nil
}

// ApplyMoves returns copies of bookings with moves applied, in input order.
func ApplyMoves(bookings []domain.Booking, moves []domain.Move) []domain.Booking {
	out := make([]domain.Booking, len(bookings))
	index := make(map[string]int, len(bookings))
	for i, b := range bookings {
		b.Rooms = append([]domain.BookedRoom(nil), b.Rooms...)
		out[i] = b
		index[b.ID] = i
	}
	for _, m := range moves {
		i, ok := index[m.BookingID]
		if !ok {
			continue
		}
		for j := range out[i].Rooms {
			if out[i].Rooms[j].RoomID == m.FromRoomID {
				out[i].Rooms[j].RoomID = m.ToRoomID
				break
			}
		}
	}
	return out
}
