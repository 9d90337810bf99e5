package domain

import "time"

// Move is a proposed relocation of one booked room. It is not applied until
// the caller commits it.
type Move struct {
	BookingID  string `json:"booking_id"`
	FromRoomID int32  `json:"from_room_id"`
	ToRoomID   int32  `json:"to_room_id"`
	Reason     string `json:"reason"`
}

// Proposal is a stored batch of optimisation moves awaiting staff review.
type Proposal struct {
	ID        string    `json:"id"`
	Moves     []Move    `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
