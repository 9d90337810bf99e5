package service_test

import (
	"context"
	"time"

	"roomdesk-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) UpdateStatus(ctx context.Context, id int32, status domain.RoomStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking, moves []domain.Move) error {
	args := m.Called(ctx, booking, moves)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, booking *domain.Booking, moves []domain.Move) error {
	args := m.Called(ctx, booking, moves)
	return args.Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) ApplyMoves(ctx context.Context, moves []domain.Move) error {
	args := m.Called(ctx, moves)
	return args.Error(0)
}
func (m *MockBookingRepo) SetArrived(ctx context.Context, id string, arrived bool) error {
	args := m.Called(ctx, id, arrived)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkArrivedThrough(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ExpirePending(ctx context.Context, createdBefore time.Time) (int64, error) {
	args := m.Called(ctx, createdBefore)
	return args.Get(0).(int64), args.Error(1)
}

// MockClosureRepo
type MockClosureRepo struct {
	mock.Mock
}

func (m *MockClosureRepo) List(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Closure), args.Error(1)
}
func (m *MockClosureRepo) Create(ctx context.Context, closure *domain.Closure) error {
	args := m.Called(ctx, closure)
	return args.Error(0)
}
func (m *MockClosureRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProposalStore
type MockProposalStore struct {
	mock.Mock
}

func (m *MockProposalStore) Save(ctx context.Context, p *domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProposalStore) Get(ctx context.Context, id string) (*domain.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}
func (m *MockProposalStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingConfirmed(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockNotifier) BookingCancelled(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockNotifier) RoomChanged(ctx context.Context, b *domain.Booking, move domain.Move) error {
	args := m.Called(ctx, b, move)
	return args.Error(0)
}
