package service

import (
	"context"
	"io"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/utils"
)

type BookingService interface {
	CreateBooking(ctx context.Context, in BookingInput) (*BookingResult, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id string, version int32, in BookingInput) (*BookingResult, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	DeleteBooking(ctx context.Context, id string) error
	MarkArrived(ctx context.Context, id string, arrived bool) (*domain.Booking, error)
	SuggestRoom(ctx context.Context, in SuggestInput) (*assignment.Result, error)
	QuoteStay(ctx context.Context, in QuoteInput) (*utils.StayQuote, error)
}

type RoomService interface {
	ListRooms(ctx context.Context) ([]domain.Room, error)
	GetRoom(ctx context.Context, id int32) (*domain.Room, error)
	UpdateRoomStatus(ctx context.Context, id int32, status domain.RoomStatus) (*domain.Room, error)
	RoomCards(ctx context.Context, day time.Time) ([]domain.RoomCard, error)
}

type ClosureService interface {
	ListClosures(ctx context.Context, from, to time.Time) ([]domain.Closure, error)
	CreateClosure(ctx context.Context, in ClosureInput) ([]domain.Closure, error)
	DeleteClosure(ctx context.Context, id string) error
}

type OccupancyService interface {
	View(ctx context.Context, kind ViewKind, day time.Time) (*OccupancyView, error)
}

type OptimizationService interface {
	Propose(ctx context.Context) (*domain.Proposal, error)
	GetProposal(ctx context.Context, id string) (*domain.Proposal, error)
	ApplyProposal(ctx context.Context, id string) (*domain.Proposal, error)
	OptimizeAndApply(ctx context.Context) ([]domain.Move, error)
}

type StatsService interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type ExportService interface {
	ExportPayTourist(ctx context.Context, w io.Writer, from, to time.Time) (int, error)
}

// RoomRequest asks for one room of a booking. A nil RoomID lets the engine
// choose.
type RoomRequest struct {
	RoomID *int32
	Guests int32
}

// BookingInput carries the editable fields of a booking.
type BookingInput struct {
	GuestName  string
	GuestEmail string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Rooms      []RoomRequest
	Status     domain.BookingStatus
	Source     domain.BookingSource
	Notes      string
	Exemptions []domain.GuestExemption
	// LockRooms pins the resulting rooms against automatic moves. Nil keeps
	// the stored flag on update.
	LockRooms *bool
	// AllowMoves lets the engine relocate future bookings to make room.
	AllowMoves bool
	// PriceOverrideCents replaces the computed stay price.
	PriceOverrideCents *int32
}

// BookingResult is a saved booking with the decision per requested room and
// the moves committed with it.
type BookingResult struct {
	Booking     *domain.Booking     `json:"booking"`
	Assignments []assignment.Result `json:"assignments"`
	Moves       []domain.Move       `json:"moves"`
}

type SuggestInput struct {
	Guests           int32
	CheckIn          time.Time
	CheckOut         time.Time
	LockedRoomID     *int32
	AllowMoves       bool
	ExcludeBookingID string
}

type QuoteInput struct {
	Guests int32
	// Children are counted as the last guests of the party, exempt as minors.
	Children   int32
	CheckIn    time.Time
	CheckOut   time.Time
	Source     domain.BookingSource
	Exemptions []domain.GuestExemption
}

type ClosureInput struct {
	// RoomIDs gets one closure per room; empty closes the whole structure.
	RoomIDs   []int32
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}
