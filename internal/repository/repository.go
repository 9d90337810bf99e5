package repository

import (
	"context"
	"errors"
	"time"

	"roomdesk-backend/internal/domain"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict means the row changed since it was read, or a write would
	// leave two confirmed stays in the same room on the same night.
	ErrConflict = errors.New("conflict")
)

type RoomRepository interface {
	List(ctx context.Context) ([]domain.Room, error)
	GetByID(ctx context.Context, id int32) (*domain.Room, error)
	UpdateStatus(ctx context.Context, id int32, status domain.RoomStatus) error
}

type BookingRepository interface {
	// Create inserts the booking and applies moves in one transaction. The
	// rooms involved are locked and the final state is checked for overlaps.
	Create(ctx context.Context, booking *domain.Booking, moves []domain.Move) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	// Update rewrites the booking if its version still matches, then bumps it.
	Update(ctx context.Context, booking *domain.Booking, moves []domain.Move) error
	Delete(ctx context.Context, id string) error
	ApplyMoves(ctx context.Context, moves []domain.Move) error
	SetArrived(ctx context.Context, id string, arrived bool) error

	// Maintenance
	MarkArrivedThrough(ctx context.Context, day time.Time) (int64, error)
	ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error)
}

type ClosureRepository interface {
	// List returns closures overlapping [from, to). Zero bounds are open.
	List(ctx context.Context, from, to time.Time) ([]domain.Closure, error)
	Create(ctx context.Context, closure *domain.Closure) error
	Delete(ctx context.Context, id string) error
}
