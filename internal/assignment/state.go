package assignment

import "roomdesk-backend/internal/domain"

// hold reserves a room for a request that is not a booking yet.
type hold struct {
	roomID int32
	span   Span
}

// state is a snapshot plus an overlay of simulated moves and holds. The
// effective room of an allocation is its overlay entry if present, else the
// stored room.
type state struct {
	snap        *Snapshot
	moved       map[allocKey]int32
	holds       []hold
	skipBooking string
}

func newState(snap *Snapshot) *state {
	return &state{snap: snap, moved: map[allocKey]int32{}}
}

func (st *state) fork() *state {
	moved := make(map[allocKey]int32, len(st.moved))
	for k, v := range st.moved {
		moved[k] = v
	}
	return &state{
		snap:        st.snap,
		moved:       moved,
		holds:       append([]hold(nil), st.holds...),
		skipBooking: st.skipBooking,
	}
}

// adopt replaces st's overlay with the one of a successful trial.
func (st *state) adopt(trial *state) {
	st.moved = trial.moved
	st.holds = trial.holds
}

func (st *state) roomOf(a allocation) int32 {
	if to, ok := st.moved[a.key]; ok {
		return to
	}
	return a.key.roomID
}

func (st *state) move(key allocKey, to int32) {
	st.moved[key] = to
}

func (st *state) hold(roomID int32, span Span) {
	st.holds = append(st.holds, hold{roomID: roomID, span: span})
}

func (st *state) closed(roomID int32, span Span) bool {
	for i := range st.snap.closures {
		c := &st.snap.closures[i]
		if c.Applies(roomID) && Overlaps(span.Start, span.End, c.StartDate, c.EndDate) {
			return true
		}
	}
	return false
}

// free reports whether roomID can host span, ignoring the allocation skip.
func (st *state) free(roomID int32, span Span, skip *allocKey) bool {
	if st.closed(roomID, span) {
		return false
	}
	for _, h := range st.holds {
		if h.roomID == roomID && h.span.Overlaps(span) {
			return false
		}
	}
	for _, a := range st.snap.allocs {
		if st.skipped(a, skip) {
			continue
		}
		if st.roomOf(a) == roomID && a.span.Overlaps(span) {
			return false
		}
	}
	return true
}

func (st *state) skipped(a allocation, skip *allocKey) bool {
	if st.skipBooking != "" && a.key.bookingID == st.skipBooking {
		return true
	}
	return skip != nil && a.key == *skip
}

// occupants lists allocations effectively in roomID overlapping span, and
// whether a hold overlaps it.
func (st *state) occupants(roomID int32, span Span) ([]allocation, bool) {
	held := false
	for _, h := range st.holds {
		if h.roomID == roomID && h.span.Overlaps(span) {
			held = true
		}
	}
	var out []allocation
	for _, a := range st.snap.allocs {
		if st.skipped(a, nil) {
			continue
		}
		if st.roomOf(a) == roomID && a.span.Overlaps(span) {
			out = append(out, a)
		}
	}
	return out, held
}

func usable(room domain.Room, guests int32) bool {
	return room.Status == domain.RoomStatusAvailable && room.Capacity >= guests
}
