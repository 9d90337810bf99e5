package service

import (
	"context"
	"fmt"
	"sort"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"
)

// Stats are the dashboard numbers. Revenue is the stay price without the
// tourist tax, bucketed by check-in month.
type Stats struct {
	TotalRooms        int            `json:"total_rooms"`
	OccupiedRooms     int            `json:"occupied_rooms"`
	OccupancyRate     float64        `json:"occupancy_rate"`
	ConfirmedBookings int            `json:"confirmed_bookings"`
	PendingBookings   int            `json:"pending_bookings"`
	TotalGuests       int32          `json:"total_guests"`
	TotalRevenueCents int64          `json:"total_revenue_cents"`
	MonthlyRevenue    []MonthRevenue `json:"monthly_revenue"`
}

type MonthRevenue struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
	Bookings     int    `json:"bookings"`
}

type statsService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	clock       assignment.Clock
}

func NewStatsService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository, clock assignment.Clock) StatsService {
	return &statsService{roomRepo: roomRepo, bookingRepo: bookingRepo, clock: clock}
}

func (s *statsService) GetStats(ctx context.Context) (*Stats, error) {
	logger.EnterMethod("statsService.GetStats")

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("statsService.GetStats", err)
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{})
	if err != nil {
		logger.ExitMethodWithError("statsService.GetStats", err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	today := assignment.Today(s.clock)
	occupied := make(map[int32]bool)
	months := make(map[string]*MonthRevenue)
	stats := &Stats{TotalRooms: len(rooms)}
	for i := range bookings {
		b := &bookings[i]
		switch b.Status {
		case domain.BookingStatusPending:
			stats.PendingBookings++
			continue
		case domain.BookingStatusConfirmed:
		default:
			continue
		}
		stats.ConfirmedBookings++
		stats.TotalGuests += b.TotalGuests()
		stats.TotalRevenueCents += int64(b.TotalPriceCents)

		key := b.CheckIn.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthRevenue{Month: key}
			months[key] = m
		}
		m.RevenueCents += int64(b.TotalPriceCents)
		m.Bookings++

		if b.CoversDate(today) {
			for _, r := range b.Rooms {
				occupied[r.RoomID] = true
			}
		}
	}

	stats.OccupiedRooms = len(occupied)
	if stats.TotalRooms > 0 {
		stats.OccupancyRate = float64(stats.OccupiedRooms) / float64(stats.TotalRooms)
	}
	stats.MonthlyRevenue = make([]MonthRevenue, 0, len(months))
	for _, m := range months {
		stats.MonthlyRevenue = append(stats.MonthlyRevenue, *m)
	}
	sort.Slice(stats.MonthlyRevenue, func(i, j int) bool {
		return stats.MonthlyRevenue[i].Month < stats.MonthlyRevenue[j].Month
	})

	logger.ExitMethod("statsService.GetStats", "confirmed", stats.ConfirmedBookings, "occupied", stats.OccupiedRooms)
	return stats, nil
}
