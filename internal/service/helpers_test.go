package service_test

import (
	"fmt"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
)

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

var today = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 0, 0, 0, 0, time.UTC)
}

func room(id, capacity int32) domain.Room {
	return domain.Room{ID: id, Name: fmt.Sprintf("Camera %d", id), Capacity: capacity, Status: domain.RoomStatusAvailable}
}

func houseRooms() []domain.Room {
	return []domain.Room{room(1, 2), room(2, 1), room(3, 4), room(4, 2), room(5, 3), room(6, 3)}
}

func booking(id string, roomID, guests int32, in, out time.Time) domain.Booking {
	return domain.Booking{
		ID:         id,
		GuestName:  "Guest " + id,
		GuestEmail: id + "@example.com",
		CheckIn:    in,
		CheckOut:   out,
		Rooms:      []domain.BookedRoom{{RoomID: roomID, Guests: guests}},
		Status:     domain.BookingStatusConfirmed,
		Source:     domain.BookingSourcePrivate,
		Version:    1,
	}
}

func newEngine() *assignment.Engine {
	return assignment.NewEngine(assignment.DefaultPolicy(), assignment.FixedClock(now))
}

func int32Ptr(v int32) *int32 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

// snapshotFilter is what the services read before asking the engine.
var snapshotFilter = domain.BookingFilter{Status: domain.BookingStatusConfirmed, From: today}
