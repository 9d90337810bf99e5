package domain

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusClosed      RoomStatus = "closed"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance, RoomStatusClosed:
		return true
	}
	return false
}

// RoomType is the room category. It is informational: the assignment engine works on
// capacity and the preference policy, never on the type.
type RoomType string

const (
	RoomTypeSingle    RoomType = "single"
	RoomTypeDouble    RoomType = "double"
	RoomTypeTriple    RoomType = "triple"
	RoomTypeQuadruple RoomType = "quadruple"
)

// Room is a bookable unit. Status is the manual operational flag set by staff;
// actual occupancy is derived from bookings.
type Room struct {
	ID       int32      `json:"id"`
	Name     string     `json:"name"`
	Type     RoomType   `json:"type"`
	Capacity int32      `json:"capacity"`
	Status   RoomStatus `json:"status"`
}

// RoomCard is the front desk view of a room on a given day.
type RoomCard struct {
	Room          Room       `json:"room"`
	DerivedStatus RoomStatus `json:"derived_status"`
	Current       *Booking   `json:"current_booking,omitempty"`
	Next          *Booking   `json:"next_booking,omitempty"`
}
