package service

import (
	"context"
	"fmt"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/repository"
)

// snapshotLoader reads the state one engine decision works on.
type snapshotLoader struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	closureRepo repository.ClosureRepository
}

// load returns rooms, confirmed bookings and closures still running on or
// after from.
func (l snapshotLoader) load(ctx context.Context, from time.Time) (*assignment.Snapshot, error) {
	rooms, err := l.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	bookings, err := l.bookingRepo.List(ctx, domain.BookingFilter{Status: domain.BookingStatusConfirmed, From: from})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	closures, err := l.closureRepo.List(ctx, from, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list closures: %w", err)
	}
	return assignment.NewSnapshot(rooms, bookings, closures), nil
}

func earliest(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func invalid(field, format string, args ...any) error {
	return &assignment.PreconditionError{Field: field, Message: fmt.Sprintf(format, args...)}
}
