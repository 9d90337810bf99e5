package assignment_test

import (
	"fmt"
	"testing"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func room(id, capacity int32) domain.Room {
	return domain.Room{ID: id, Name: fmt.Sprintf("Camera %d", id), Capacity: capacity, Status: domain.RoomStatusAvailable}
}

// houseRooms mirrors the six-room guest house the default policy is written for.
func houseRooms() []domain.Room {
	return []domain.Room{room(1, 2), room(2, 1), room(3, 4), room(4, 2), room(5, 3), room(6, 3)}
}

func booking(id string, roomID, guests int32, in, out time.Time) domain.Booking {
	return domain.Booking{
		ID:        id,
		GuestName: "Guest " + id,
		CheckIn:   in,
		CheckOut:  out,
		Rooms:     []domain.BookedRoom{{RoomID: roomID, Guests: guests}},
		Status:    domain.BookingStatusConfirmed,
		Source:    domain.BookingSourcePrivate,
	}
}

func newEngine(t *testing.T, policy assignment.Policy) *assignment.Engine {
	t.Helper()
	return assignment.NewEngine(policy, assignment.FixedClock(now))
}

func smallPolicy(t *testing.T) assignment.Policy {
	t.Helper()
	p, err := assignment.NewPolicy([]assignment.PreferenceClass{
		{Class: assignment.ClassSingle, MaxGuests: 1, Order: []int32{2, 1, 3}},
		{Class: assignment.ClassDouble, MaxGuests: 2, Order: []int32{1, 3}},
		{Class: assignment.ClassTriple, MaxGuests: 3, Order: []int32{3}},
	}, nil)
	require.NoError(t, err)
	return p
}

func roomID(t *testing.T, res assignment.Result) int32 {
	t.Helper()
	require.NotNil(t, res.RoomID, "expected a room, got %s: %s", res.Outcome, res.Reason)
	return *res.RoomID
}

// requireConsistent checks that no two confirmed bookings share a room on the
// same night and that no party exceeds its room's capacity.
func requireConsistent(t *testing.T, rooms []domain.Room, bookings []domain.Booking) {
	t.Helper()
	capacity := map[int32]int32{}
	for _, r := range rooms {
		capacity[r.ID] = r.Capacity
	}
	for i, a := range bookings {
		if a.Status != domain.BookingStatusConfirmed {
			continue
		}
		for _, ar := range a.Rooms {
			require.LessOrEqual(t, ar.Guests, capacity[ar.RoomID], "booking %s over capacity in room %d", a.ID, ar.RoomID)
		}
		for _, b := range bookings[i+1:] {
			if b.Status != domain.BookingStatusConfirmed {
				continue
			}
			for _, ar := range a.Rooms {
				if b.OccupiesRoom(ar.RoomID) {
					require.False(t, assignment.Overlaps(a.CheckIn, a.CheckOut, b.CheckIn, b.CheckOut),
						"bookings %s and %s overlap in room %d", a.ID, b.ID, ar.RoomID)
				}
			}
		}
	}
}
