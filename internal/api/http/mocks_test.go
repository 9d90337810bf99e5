package http_test

import (
	"context"
	"io"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/service"
	"roomdesk-backend/internal/utils"

	"github.com/stretchr/testify/mock"
)

// MockBookingService
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, in service.BookingInput) (*service.BookingResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingResult), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) UpdateBooking(ctx context.Context, id string, version int32, in service.BookingInput) (*service.BookingResult, error) {
	args := m.Called(ctx, id, version, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingResult), args.Error(1)
}
func (m *MockBookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) DeleteBooking(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingService) MarkArrived(ctx context.Context, id string, arrived bool) (*domain.Booking, error) {
	args := m.Called(ctx, id, arrived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) SuggestRoom(ctx context.Context, in service.SuggestInput) (*assignment.Result, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assignment.Result), args.Error(1)
}
func (m *MockBookingService) QuoteStay(ctx context.Context, in service.QuoteInput) (*utils.StayQuote, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.StayQuote), args.Error(1)
}

// MockRoomService
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomService) GetRoom(ctx context.Context, id int32) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomService) UpdateRoomStatus(ctx context.Context, id int32, status domain.RoomStatus) (*domain.Room, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomService) RoomCards(ctx context.Context, day time.Time) ([]domain.RoomCard, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.RoomCard), args.Error(1)
}

// MockClosureService
type MockClosureService struct {
	mock.Mock
}

func (m *MockClosureService) ListClosures(ctx context.Context, from, to time.Time) ([]domain.Closure, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Closure), args.Error(1)
}
func (m *MockClosureService) CreateClosure(ctx context.Context, in service.ClosureInput) ([]domain.Closure, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Closure), args.Error(1)
}
func (m *MockClosureService) DeleteClosure(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockOccupancyService
type MockOccupancyService struct {
	mock.Mock
}

func (m *MockOccupancyService) View(ctx context.Context, kind service.ViewKind, day time.Time) (*service.OccupancyView, error) {
	args := m.Called(ctx, kind, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OccupancyView), args.Error(1)
}

// MockOptimizationService
type MockOptimizationService struct {
	mock.Mock
}

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
	return args.Get(0).([]domain.Move), args.Error(1)
}

// MockStatsService
type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) GetStats(ctx context.Context) (*service.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Stats), args.Error(1)
}

// MockExportService
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportPayTourist(ctx context.Context, w io.Writer, from, to time.Time) (int, error) {
	args := m.Called(ctx, w, from, to)
	return args.Int(0), args.Error(1)
}
