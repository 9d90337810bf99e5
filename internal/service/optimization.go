package service

import (
	"context"
	"fmt"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/notify"
	"roomdesk-backend/internal/proposal"
	"roomdesk-backend/internal/repository"

	"github.com/google/uuid"
)

const DefaultProposalTTL = 30 * time.Minute

type optimizationService struct {
	bookingRepo repository.BookingRepository
	loader      snapshotLoader
	proposals   proposal.Store
	engine      *assignment.Engine
	notifier    notify.Notifier
	ttl         time.Duration
}

func NewOptimizationService(
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	closureRepo repository.ClosureRepository,
	proposals proposal.Store,
	engine *assignment.Engine,
	notifier notify.Notifier,
	ttl time.Duration,
) OptimizationService {
	if ttl <= 0 {
		ttl = DefaultProposalTTL
	}
	return &optimizationService{
		bookingRepo: bookingRepo,
		loader:      snapshotLoader{roomRepo: roomRepo, bookingRepo: bookingRepo, closureRepo: closureRepo},
		proposals:   proposals,
		engine:      engine,
		notifier:    notifier,
		ttl:         ttl,
	}
}

// Propose computes the moves that put every movable booking in its most
// preferred free room and stores them for review.
func (s *optimizationService) Propose(ctx context.Context) (*domain.Proposal, error) {
	logger.EnterMethod("optimizationService.Propose")

	moves, err := s.optimize(ctx)
	if err != nil {
		logger.ExitMethodWithError("optimizationService.Propose", err)
		return nil, err
	}

	now := s.engine.Clock().Now()
	p := &domain.Proposal{
		ID:        uuid.NewString(),
		Moves:     moves,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if p.Moves == nil {
		p.Moves = []domain.Move{}
	}
	if err := s.proposals.Save(ctx, p); err != nil {
		logger.ExitMethodWithError("optimizationService.Propose", err)
		return nil, fmt.Errorf("save proposal: %w", err)
	}

	logger.ExitMethod("optimizationService.Propose", "proposalID", p.ID, "moves", len(p.Moves))
	return p, nil
}

func (s *optimizationService) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	return s.proposals.Get(ctx, id)
}

// ApplyProposal re-checks the stored moves against the current bookings and
// commits them together. A proposal that no longer fits is rejected whole.
func (s *optimizationService) ApplyProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	logger.EnterMethod("optimizationService.ApplyProposal", "proposalID", id)

	p, err := s.proposals.Get(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("optimizationService.ApplyProposal", err, "proposalID", id)
		return nil, err
	}
	if err := s.apply(ctx, p.Moves); err != nil {
		logger.ExitMethodWithError("optimizationService.ApplyProposal", err, "proposalID", id)
		return nil, err
	}
	if err := s.proposals.Delete(ctx, id); err != nil {
		logger.Warn("Failed to delete applied proposal", "proposalID", id, "error", err)
	}

	logger.ExitMethod("optimizationService.ApplyProposal", "proposalID", id, "moves", len(p.Moves))
	return p, nil
}

func (s *optimizationService) OptimizeAndApply(ctx context.Context) ([]domain.Move, error) {
	logger.EnterMethod("optimizationService.OptimizeAndApply")

	moves, err := s.optimize(ctx)
	if err != nil {
		logger.ExitMethodWithError("optimizationService.OptimizeAndApply", err)
		return nil, err
	}
	if err := s.apply(ctx, moves); err != nil {
		logger.ExitMethodWithError("optimizationService.OptimizeAndApply", err)
		return nil, err
	}

	logger.ExitMethod("optimizationService.OptimizeAndApply", "moves", len(moves))
	return moves, nil
}

func (s *optimizationService) optimize(ctx context.Context) ([]domain.Move, error) {
	snap, err := s.loader.load(ctx, assignment.Today(s.engine.Clock()))
	if err != nil {
		return nil, err
	}
	return s.engine.OptimizeAll(snap), nil
}

func (s *optimizationService) apply(ctx context.Context, moves []domain.Move) error {
	if len(moves) == 0 {
		return nil
	}
	snap, err := s.loader.load(ctx, assignment.Today(s.engine.Clock()))
	if err != nil {
		return err
	}
	if err := s.engine.ValidateMoves(moves, snap); err != nil {
		return err
	}
	if err := s.bookingRepo.ApplyMoves(ctx, moves); err != nil {
		return fmt.Errorf("apply moves: %w", err)
	}
	notifyMoves(ctx, s.notifier, s.bookingRepo, moves)
	return nil
}
