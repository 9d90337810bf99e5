package service

import (
	"context"
	"fmt"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"
)

type ViewKind string

const (
	ViewDay   ViewKind = "day"
	ViewWeek  ViewKind = "week"
	ViewMonth ViewKind = "month"
)

func ParseViewKind(s string) (ViewKind, error) {
	switch k := ViewKind(s); k {
	case ViewDay, ViewWeek, ViewMonth:
		return k, nil
	case "":
		return ViewWeek, nil
	}
	return "", invalid("view", "unknown view %q", s)
}

// OccupancyView is the calendar grid: one row per room, one cell per night in
// [From, To).
type OccupancyView struct {
	Kind ViewKind       `json:"kind"`
	From time.Time      `json:"from"`
	To   time.Time      `json:"to"`
	Days []time.Time    `json:"days"`
	Rows []OccupancyRow `json:"rows"`
}

type OccupancyRow struct {
	Room  domain.Room     `json:"room"`
	Cells []OccupancyCell `json:"cells"`
}

// OccupancyCell is a room on one night. A confirmed stay wins over a pending
// one in the same cell.
type OccupancyCell struct {
	Date      time.Time            `json:"date"`
	BookingID string               `json:"booking_id,omitempty"`
	GuestName string               `json:"guest_name,omitempty"`
	Guests    int32                `json:"guests,omitempty"`
	Status    domain.BookingStatus `json:"status,omitempty"`
	Arrived   bool                 `json:"arrived,omitempty"`
	Closed    bool                 `json:"closed"`
}

type occupancyService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	closureRepo repository.ClosureRepository
}

func NewOccupancyService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository, closureRepo repository.ClosureRepository) OccupancyService {
	return &occupancyService{roomRepo: roomRepo, bookingRepo: bookingRepo, closureRepo: closureRepo}
}

// ViewRange returns [from, to) for the view of kind around day. Weeks start on
// Monday; a month view spans the whole weeks covering the month.
func ViewRange(kind ViewKind, day time.Time) (time.Time, time.Time) {
	day = domain.DateOf(day)
	switch kind {
	case ViewDay:
		return day, day.AddDate(0, 0, 1)
	case ViewMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		next := first.AddDate(0, 1, 0)
		from := mondayOf(first)
		to := mondayOf(next.AddDate(0, 0, -1)).AddDate(0, 0, 7)
		return from, to
	default:
		from := mondayOf(day)
		return from, from.AddDate(0, 0, 7)
	}
}

func mondayOf(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func (s *occupancyService) View(ctx context.Context, kind ViewKind, day time.Time) (*OccupancyView, error) {
	logger.EnterMethod("occupancyService.View", "kind", kind, "day", day.Format(domain.DateLayout))

	from, to := ViewRange(kind, day)
	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("occupancyService.View", err)
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{From: from, To: to})
	if err != nil {
		logger.ExitMethodWithError("occupancyService.View", err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	closures, err := s.closureRepo.List(ctx, from, to)
	if err != nil {
		logger.ExitMethodWithError("occupancyService.View", err)
		return nil, fmt.Errorf("list closures: %w", err)
	}

	view := &OccupancyView{Kind: kind, From: from, To: to}
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		view.Days = append(view.Days, d)
	}
	for _, room := range rooms {
		row := OccupancyRow{Room: room, Cells: make([]OccupancyCell, 0, len(view.Days))}
		for _, d := range view.Days {
			row.Cells = append(row.Cells, buildCell(room.ID, d, bookings, closures))
		}
		view.Rows = append(view.Rows, row)
	}

	logger.ExitMethod("occupancyService.View", "rooms", len(view.Rows), "days", len(view.Days))
	return view, nil
}

func buildCell(roomID int32, day time.Time, bookings []domain.Booking, closures []domain.Closure) OccupancyCell {
	cell := OccupancyCell{Date: day}
	for i := range closures {
		c := &closures[i]
		if c.Applies(roomID) && assignment.Overlaps(day, day.AddDate(0, 0, 1), c.StartDate, c.EndDate) {
			cell.Closed = true
			break
		}
	}
	for i := range bookings {
		b := &bookings[i]
		if b.Status == domain.BookingStatusCancelled || !b.OccupiesRoom(roomID) || !b.CoversDate(day) {
			continue
		}
		if cell.BookingID != "" && (cell.Status == domain.BookingStatusConfirmed || b.Status != domain.BookingStatusConfirmed) {
			continue
		}
		cell.BookingID = b.ID
		cell.GuestName = b.GuestName
		cell.Status = b.Status
		cell.Arrived = b.Arrived
		for _, r := range b.Rooms {
			if r.RoomID == roomID {
				cell.Guests = r.Guests
			}
		}
	}
	return cell
}
