package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"
)

type roomService struct {
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
}

func NewRoomService(roomRepo repository.RoomRepository, bookingRepo repository.BookingRepository) RoomService {
	return &roomService{roomRepo: roomRepo, bookingRepo: bookingRepo}
}

func (s *roomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	return s.roomRepo.List(ctx)
}

func (s *roomService) GetRoom(ctx context.Context, id int32) (*domain.Room, error) {
	return s.roomRepo.GetByID(ctx, id)
}

func (s *roomService) UpdateRoomStatus(ctx context.Context, id int32, status domain.RoomStatus) (*domain.Room, error) {
	logger.EnterMethod("roomService.UpdateRoomStatus", "roomID", id, "status", status)
	if !status.Valid() {
		err := invalid("status", "unknown room status %q", status)
		logger.ExitMethodWithError("roomService.UpdateRoomStatus", err, "roomID", id)
		return nil, err
	}
	if err := s.roomRepo.UpdateStatus(ctx, id, status); err != nil {
		logger.ExitMethodWithError("roomService.UpdateRoomStatus", err, "roomID", id)
		return nil, err
	}
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("roomService.UpdateRoomStatus", err, "roomID", id)
		return nil, err
	}
	logger.ExitMethod("roomService.UpdateRoomStatus", "roomID", id)
	return room, nil
}

// RoomCards shows every room on day: occupied when a confirmed stay covers
// the night of day, the manual status otherwise, with the current and the
// next confirmed booking.
func (s *roomService) RoomCards(ctx context.Context, day time.Time) ([]domain.RoomCard, error) {
	logger.EnterMethod("roomService.RoomCards", "day", day.Format(domain.DateLayout))
	day = domain.DateOf(day)

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		logger.ExitMethodWithError("roomService.RoomCards", err)
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	bookings, err := s.bookingRepo.List(ctx, domain.BookingFilter{Status: domain.BookingStatusConfirmed, From: day})
	if err != nil {
		logger.ExitMethodWithError("roomService.RoomCards", err)
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CheckIn.Before(bookings[j].CheckIn)
	})

	cards := make([]domain.RoomCard, 0, len(rooms))
	for _, room := range rooms {
		card := domain.RoomCard{Room: room, DerivedStatus: room.Status}
		for i := range bookings {
			b := &bookings[i]
			if !b.OccupiesRoom(room.ID) {
				continue
			}
			if b.CoversDate(day) {
				if card.Current == nil {
					card.Current = b
					card.DerivedStatus = domain.RoomStatusOccupied
				}
				continue
			}
			if b.CheckIn.After(day) && card.Next == nil {
				card.Next = b
			}
		}
		cards = append(cards, card)
	}

	logger.ExitMethod("roomService.RoomCards", "count", len(cards))
	return cards, nil
}
