package http

import (
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/service"
)

type roomRequest struct {
	RoomID *int32 `json:"room_id" validate:"omitempty,min=1"`
	Guests int32  `json:"guests" validate:"required,min=1"`
}

type exemptionRequest struct {
	GuestIndex int32  `json:"guest_index" validate:"min=0"`
	Kind       string `json:"kind" validate:"required"`
}

type bookingRequest struct {
	GuestName       string             `json:"guest_name" validate:"required,max=200"`
	GuestEmail      string             `json:"guest_email" validate:"omitempty,email"`
	GuestPhone      string             `json:"guest_phone" validate:"max=50"`
	CheckIn         string             `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut        string             `json:"check_out" validate:"required,datetime=2006-01-02"`
	Rooms           []roomRequest      `json:"rooms" validate:"required,min=1,dive"`
	Status          string             `json:"status" validate:"omitempty,oneof=confirmed pending cancelled"`
	Source          string             `json:"source" validate:"omitempty,oneof=private booking.com"`
	Notes           string             `json:"notes" validate:"max=2000"`
	Exemptions      []exemptionRequest `json:"exemptions" validate:"dive"`
	AllowMoves      bool               `json:"allow_moves"`
	LockRooms       *bool              `json:"lock_rooms"`
	TotalPriceCents *int32             `json:"total_price_cents" validate:"omitempty,min=0"`
	// Version is required on update.
	Version int32 `json:"version"`
}

func (b bookingRequest) toInput() service.BookingInput {
	checkIn, _ := domain.ParseDate(b.CheckIn)
	checkOut, _ := domain.ParseDate(b.CheckOut)
	in := service.BookingInput{
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Status:             domain.BookingStatus(b.Status),
		Source:             domain.BookingSource(b.Source),
		Notes:              b.Notes,
		AllowMoves:         b.AllowMoves,
		LockRooms:          b.LockRooms,
		PriceOverrideCents: b.TotalPriceCents,
	}
	for _, r := range b.Rooms {
		in.Rooms = append(in.Rooms, service.RoomRequest{RoomID: r.RoomID, Guests: r.Guests})
	}
	for _, e := range b.Exemptions {
		in.Exemptions = append(in.Exemptions, domain.GuestExemption{GuestIndex: e.GuestIndex, Kind: domain.ExemptionKind(e.Kind)})
	}
	return in
}

type suggestRequest struct {
	Guests           int32  `json:"guests" validate:"required,min=1"`
	CheckIn          string `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut         string `json:"check_out" validate:"required,datetime=2006-01-02"`
	LockedRoomID     *int32 `json:"locked_room_id" validate:"omitempty,min=1"`
	AllowMoves       bool   `json:"allow_moves"`
	ExcludeBookingID string `json:"exclude_booking_id" validate:"omitempty,uuid"`
}

func (s suggestRequest) toInput() service.SuggestInput {
	checkIn, _ := domain.ParseDate(s.CheckIn)
	checkOut, _ := domain.ParseDate(s.CheckOut)
	return service.SuggestInput{
		Guests:           s.Guests,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		LockedRoomID:     s.LockedRoomID,
		AllowMoves:       s.AllowMoves,
		ExcludeBookingID: s.ExcludeBookingID,
	}
}

type closureRequest struct {
	RoomIDs        []int32 `json:"room_ids" validate:"dive,min=1"`
	WholeStructure bool    `json:"whole_structure"`
	StartDate      string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason         string  `json:"reason" validate:"max=500"`
}

type roomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance closed"`
}

type arriveRequest struct {
	Arrived *bool `json:"arrived"`
}

type roomsResponse struct {
	Date  time.Time         `json:"date"`
	Rooms []domain.RoomCard `json:"rooms"`
}
