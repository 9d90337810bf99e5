package assignment

import (
	"sort"

	"roomdesk-backend/internal/domain"
)

// allocKey identifies one booked room: the booking and the room it held when
// the snapshot was taken. A booking never holds the same room twice.
type allocKey struct {
	bookingID string
	roomID    int32
}

// allocation is one confirmed (booking, room) pair.
type allocation struct {
	key     allocKey
	guests  int32
	span    Span
	arrived bool
	locked  bool
}

// Snapshot is an immutable, consistent view of rooms, confirmed bookings and
// closures taken for the duration of one decision.
type Snapshot struct {
	rooms     []domain.Room
	roomIndex map[int32]int
	allocs    []allocation
	closures  []domain.Closure
}

// NewSnapshot copies its inputs. Pending and cancelled bookings are dropped.
// Allocations are ordered by check-in, then booking id, then room id.
func NewSnapshot(rooms []domain.Room, bookings []domain.Booking, closures []domain.Closure) *Snapshot {
	s := &Snapshot{
		rooms:     append([]domain.Room(nil), rooms...),
		roomIndex: make(map[int32]int, len(rooms)),
		closures:  append([]domain.Closure(nil), closures...),
	}
	sort.SliceStable(s.rooms, func(i, j int) bool { return s.rooms[i].ID < s.rooms[j].ID })
	for i, r := range s.rooms {
		s.roomIndex[r.ID] = i
	}

	for _, b := range bookings {
		if b.Status != domain.BookingStatusConfirmed {
			continue
		}
		for _, br := range b.Rooms {
			s.allocs = append(s.allocs, allocation{
				key:     allocKey{bookingID: b.ID, roomID: br.RoomID},
				guests:  br.Guests,
				span:    Span{Start: b.CheckIn, End: b.CheckOut},
				arrived: b.Arrived,
				locked:  b.RoomLocked,
			})
		}
	}
	sort.SliceStable(s.allocs, func(i, j int) bool {
		a, b := s.allocs[i], s.allocs[j]
		if !a.span.Start.Equal(b.span.Start) {
			return a.span.Start.Before(b.span.Start)
		}
		if a.key.bookingID != b.key.bookingID {
			return a.key.bookingID < b.key.bookingID
		}
		return a.key.roomID < b.key.roomID
	})
	return s
}

// Rooms returns the rooms ordered by id.
func (s *Snapshot) Rooms() []domain.Room {
	return s.rooms
}

func (s *Snapshot) Room(id int32) (domain.Room, bool) {
	i, ok := s.roomIndex[id]
	if !ok {
		return domain.Room{}, false
	}
	return s.rooms[i], true
}

func (s *Snapshot) allocation(key allocKey) (allocation, bool) {
	for _, a := range s.allocs {
		if a.key == key {
			return a, true
		}
	}
	return allocation{}, false
}
