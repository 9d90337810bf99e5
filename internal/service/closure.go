package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/repository"

	"github.com/google/uuid"
)

type closureService struct {
	closureRepo repository.ClosureRepository
	roomRepo    repository.RoomRepository
}

func NewClosureService(closureRepo repository.ClosureRepository, roomRepo repository.RoomRepository) ClosureService {
	return &closureService{closureRepo: closureRepo, roomRepo: roomRepo}
}

func (s *closureService) ListClosures(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	return s.closureRepo.List(ctx, from, to)
}

// CreateClosure stores one closure per listed room, or a single closure of
// the whole structure when no room is listed. Confirmed bookings already in
// the range are left untouched.
func (s *closureService) CreateClosure(ctx context.Context, in ClosureInput) ([]domain.Closure, error) {
	logger.EnterMethod("closureService.CreateClosure", "rooms", in.RoomIDs)

	start, end := domain.DateOf(in.StartDate), domain.DateOf(in.EndDate)
	if in.StartDate.IsZero() || in.EndDate.IsZero() || !end.After(start) {
		err := invalid("end_date", "must be after start date")
		logger.ExitMethodWithError("closureService.CreateClosure", err)
		return nil, err
	}

	var roomIDs []*int32
	if len(in.RoomIDs) == 0 {
		roomIDs = append(roomIDs, nil)
	}
	seen := make(map[int32]bool)
	for _, id := range in.RoomIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
			logger.ExitMethodWithError("closureService.CreateClosure", err, "roomID", id)
			return nil, err
		}
		roomID := id
		roomIDs = append(roomIDs, &roomID)
	}

	closures := make([]domain.Closure, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		c := domain.Closure{
			ID:        uuid.NewString(),
			RoomID:    roomID,
			StartDate: start,
			EndDate:   end,
			Reason:    strings.TrimSpace(in.Reason),
		}
		if err := s.closureRepo.Create(ctx, &c); err != nil {
			logger.ExitMethodWithError("closureService.CreateClosure", err)
			return nil, fmt.Errorf("create closure: %w", err)
		}
		closures = append(closures, c)
	}

	logger.ExitMethod("closureService.CreateClosure", "count", len(closures))
	return closures, nil
}

func (s *closureService) DeleteClosure(ctx context.Context, id string) error {
	logger.EnterMethod("closureService.DeleteClosure", "closureID", id)
	if err := s.closureRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("closureService.DeleteClosure", err, "closureID", id)
		return err
	}
	logger.ExitMethod("closureService.DeleteClosure", "closureID", id)
	return nil
}
