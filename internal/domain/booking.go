package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusPending, BookingStatusCancelled:
		return true
	}
	return false
}

type BookingSource string

const (
	BookingSourcePrivate    BookingSource = "private"
	BookingSourceBookingCom BookingSource = "booking.com"
)

// BookedRoom is one (room, party size) pair of a booking.
type BookedRoom struct {
	RoomID int32 `json:"room_id"`
	Guests int32 `json:"guests"`
}

type Booking struct {
	ID              string           `json:"id"`
	GuestName       string           `json:"guest_name"`
	GuestEmail      string           `json:"guest_email,omitempty"`
	GuestPhone      string           `json:"guest_phone"`
	CheckIn         time.Time        `json:"check_in"`
	CheckOut        time.Time        `json:"check_out"`
	Rooms           []BookedRoom     `json:"rooms"`
	Status          BookingStatus    `json:"status"`
	Source          BookingSource    `json:"source"`
	Notes           string           `json:"notes,omitempty"`
	TotalPriceCents int32            `json:"total_price_cents"`
	TouristTaxCents int32            `json:"tourist_tax_cents"`
	Exemptions      []GuestExemption `json:"exemptions,omitempty"`
	// Arrived locks the booking against relocation.
	Arrived bool `json:"arrived"`
	// RoomLocked marks a room choice pinned by staff.
	RoomLocked bool      `json:"room_locked"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int32     `json:"version"`
}

// TotalGuests sums the party size over all booked rooms.
func (b *Booking) TotalGuests() int32 {
	var n int32
	for _, r := range b.Rooms {
		n += r.Guests
	}
	return n
}

// Nights is the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return DaysBetween(b.CheckIn, b.CheckOut)
}

// OccupiesRoom reports whether the booking holds roomID.
func (b *Booking) OccupiesRoom(roomID int32) bool {
	for _, r := range b.Rooms {
		if r.RoomID == roomID {
			return true
		}
	}
	return false
}

// CoversDate reports whether the guest sleeps in the house the night of day.
func (b *Booking) CoversDate(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(b.CheckIn) && d.Before(b.CheckOut)
}

// BookingFilter narrows ListBookings. Zero values mean "no filter".
type BookingFilter struct {
	Status BookingStatus
	RoomID int32
	From   time.Time
	To     time.Time
}
