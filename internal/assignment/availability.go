package assignment

import (
	"time"

	"roomdesk-backend/internal/domain"
)

// IsAvailable reports whether room is free for [start, end): no closure on the
// room or the whole structure and no confirmed booking holding the room
// overlaps the range. Pending and cancelled bookings never block.
func IsAvailable(room domain.Room, start, end time.Time, bookings []domain.Booking, closures []domain.Closure) bool {
	for i := range closures {
		c := &closures[i]
		if c.Applies(room.ID) && Overlaps(start, end, c.StartDate, c.EndDate) {
			return false
		}
	}
	for i := range bookings {
		b := &bookings[i]
		if b.Status != domain.BookingStatusConfirmed || !b.OccupiesRoom(room.ID) {
			continue
		}
		if Overlaps(start, end, b.CheckIn, b.CheckOut) {
			return false
		}
	}
	return true
}
