package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/export"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"
)

type exportService struct {
	bookingRepo repository.BookingRepository
}

func NewExportService(bookingRepo repository.BookingRepository) ExportService {
	return &exportService{bookingRepo: bookingRepo}
}

// ExportPayTourist writes the confirmed stays checking in within [from, to)
// and returns how many rows were written.
func (s *exportService) ExportPayTourist(ctx context.Context, w io.Writer, from, to time.Time) (int, error) {
	logger.EnterMethod("exportService.ExportPayTourist", "from", from.Format(domain.DateLayout), "to", to.Format(domain.DateLayout))

	from, to = domain.DateOf(from), domain.DateOf(to)
	if !to.After(from) {
		err := invalid("to", "must be after from")
		logger.ExitMethodWithError("exportService.ExportPayTourist", err)
		return 0, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{Status: domain.BookingStatusConfirmed, From: from, To: to})
	if err != nil {
		logger.ExitMethodWithError("exportService.ExportPayTourist", err)
		return 0, fmt.Errorf("list bookings: %w", err)
	}
	var rows []domain.Booking
	for _, b := range bookings {
		if !b.CheckIn.Before(from) {
			rows = append(rows, b)
		}
	}

	if err := export.WritePayTourist(w, rows); err != nil {
		logger.ExitMethodWithError("exportService.ExportPayTourist", err)
		return 0, err
	}

	logger.ExitMethod("exportService.ExportPayTourist", "rows", len(rows))
	return len(rows), nil
}
