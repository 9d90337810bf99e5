package domain

import "time"

// Closure is planned unavailability. A nil RoomID closes the whole structure.
type Closure struct {
	ID        string    `json:"id"`
	RoomID    *int32    `json:"room_id,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Applies reports whether the closure concerns roomID.
func (c *Closure) Applies(roomID int32) bool {
	return c.RoomID == nil || *c.RoomID == roomID
}

func (c *Closure) WholeStructure() bool {
	return c.RoomID == nil
}
