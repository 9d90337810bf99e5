package jobs_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/config"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/jobs"
	"roomdesk-backend/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking, moves []domain.Move) error {
	return m.Called(ctx, b, moves).Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) List(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking, moves []domain.Move) error {
	return m.Called(ctx, b, moves).Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockBookingRepo) ApplyMoves(ctx context.Context, moves []domain.Move) error {
	return m.Called(ctx, moves).Error(0)
}
func (m *MockBookingRepo) SetArrived(ctx context.Context, id string, arrived bool) error {
	return m.Called(ctx, id, arrived).Error(0)
}
func (m *MockBookingRepo) MarkArrivedThrough(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

type MockOptimizationService struct{ mock.Mock }

func (m *MockOptimizationService) Propose(ctx context.Context) (*domain.Proposal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockOptimizationService) GetProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockOptimizationService) ApplyProposal(ctx context.Context, id string) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockOptimizationService) OptimizeAndApply(ctx context.Context) ([]domain.Move, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Move), args.Error(1)
}

var now = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func newRunner(repo *MockBookingRepo, opt *MockOptimizationService, autoApply bool) *jobs.JobRunner {
	logger.InitializeWithWriter(io.Discard, "error", "text")
	cfg := &config.Config{}
	cfg.Property.PendingTTLHours = 48
	cfg.Property.AutoApplyOptimizations = autoApply
	return jobs.NewJobRunner(repo, opt, assignment.FixedClock(now), cfg)
}

func TestMarkArrivedBookings(t *testing.T) {
	repo := new(MockBookingRepo)
	jr := newRunner(repo, new(MockOptimizationService), false)

	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	repo.On("MarkArrivedThrough", mock.Anything, today).Return(int64(2), nil)

	jr.MarkArrivedBookings()

	repo.AssertExpectations(t)
}

func TestExpirePendingBookings(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockBookingRepo)
		jr := newRunner(repo, new(MockOptimizationService), false)

		repo.On("ExpirePending", mock.Anything, now.Add(-48*time.Hour)).Return(int64(1), nil)

		jr.ExpirePendingBookings()

		repo.AssertExpectations(t)
	})

	t.Run("ErrorIsSwallowed", func(t *testing.T) {
		repo := new(MockBookingRepo)
		jr := newRunner(repo, new(MockOptimizationService), false)

		repo.On("ExpirePending", mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))

		assert.NotPanics(t, jr.ExpirePendingBookings)
		repo.AssertExpectations(t)
	})
}

func TestOptimizeAssignments(t *testing.T) {
	t.Run("StoresProposal", func(t *testing.T) {
		opt := new(MockOptimizationService)
		jr := newRunner(new(MockBookingRepo), opt, false)

		opt.On("Propose", mock.Anything).Return(&domain.Proposal{ID: "p1", Moves: []domain.Move{}}, nil)

		jr.OptimizeAssignments()

		opt.AssertExpectations(t)
		opt.AssertNotCalled(t, "OptimizeAndApply", mock.Anything)
	})

	t.Run("AutoApply", func(t *testing.T) {
		opt := new(MockOptimizationService)
		jr := newRunner(new(MockBookingRepo), opt, true)

		opt.On("OptimizeAndApply", mock.Anything).Return([]domain.Move{{BookingID: "b1", FromRoomID: 5, ToRoomID: 2}}, nil)

		jr.OptimizeAssignments()

		opt.AssertExpectations(t)
		opt.AssertNotCalled(t, "Propose", mock.Anything)
	})
}

func TestRunWithRecovery(t *testing.T) {
	opt := new(MockOptimizationService)
	jr := newRunner(new(MockBookingRepo), opt, false)

	opt.On("Propose", mock.Anything).Run(func(mock.Arguments) { panic("boom") })

	assert.NotPanics(t, jr.OptimizeAssignments)
}

func TestRunAllNightlyJobs(t *testing.T) {
	repo := new(MockBookingRepo)
	opt := new(MockOptimizationService)
	jr := newRunner(repo, opt, false)

	repo.On("ExpirePending", mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("MarkArrivedThrough", mock.Anything, mock.Anything).Return(int64(0), nil)
	opt.On("Propose", mock.Anything).Return(&domain.Proposal{ID: "p1"}, nil)

	jr.RunAllNightlyJobs()

	repo.AssertExpectations(t)
	opt.AssertExpectations(t)
}
