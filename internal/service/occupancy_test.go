package service_test

import (
	"context"
	"testing"
	"time"

	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewRange(t *testing.T) {
	// 2026-10-21 is a Wednesday.
	wed := day(10, 21)

	from, to := service.ViewRange(service.ViewDay, wed)
	assert.Equal(t, wed, from)
	assert.Equal(t, day(10, 22), to)

	from, to = service.ViewRange(service.ViewWeek, wed)
	assert.Equal(t, day(10, 19), from)
	assert.Equal(t, day(10, 26), to)

	from, to = service.ViewRange(service.ViewWeek, day(10, 25))
	assert.Equal(t, day(10, 19), from, "Sunday belongs to the week that started Monday")
	assert.Equal(t, day(10, 26), to)

	// October 2026 runs Thursday 1st to Saturday 31st.
	from, to = service.ViewRange(service.ViewMonth, wed)
	assert.Equal(t, day(9, 28), from)
	assert.Equal(t, day(11, 2), to)
	assert.Equal(t, time.Monday, from.Weekday())
	assert.Equal(t, time.Monday, to.Weekday())
}

func TestParseViewKind(t *testing.T) {
	k, err := service.ParseViewKind("month")
	require.NoError(t, err)
	assert.Equal(t, service.ViewMonth, k)

	k, err = service.ParseViewKind("")
	require.NoError(t, err)
	assert.Equal(t, service.ViewWeek, k)

	_, err = service.ParseViewKind("year")
	assert.Error(t, err)
}

func TestOccupancyService_View(t *testing.T) {
	ctx := context.Background()
	mockRoomRepo := new(MockRoomRepo)
	mockBookingRepo := new(MockBookingRepo)
	mockClosureRepo := new(MockClosureRepo)
	svc := service.NewOccupancyService(mockRoomRepo, mockBookingRepo, mockClosureRepo)

	from, to := day(10, 19), day(10, 26)
	confirmed := booking("a", 1, 2, day(10, 18), day(10, 21))
	pending := booking("p", 1, 1, day(10, 20), day(10, 22))
	pending.Status = domain.BookingStatusPending
	cancelled := booking("c", 2, 1, day(10, 19), day(10, 26))
	cancelled.Status = domain.BookingStatusCancelled
	roomOne := int32(1)

	mockRoomRepo.On("List", ctx).Return([]domain.Room{room(1, 2), room(2, 1)}, nil).Once()
	mockBookingRepo.On("List", ctx, domain.BookingFilter{From: from, To: to}).
		Return([]domain.Booking{confirmed, pending, cancelled}, nil).Once()
	mockClosureRepo.On("List", ctx, from, to).Return([]domain.Closure{
		{ID: "cl", RoomID: &roomOne, StartDate: day(10, 24), EndDate: day(10, 26)},
	}, nil).Once()

	view, err := svc.View(ctx, service.ViewWeek, day(10, 22))
	require.NoError(t, err)
	assert.Equal(t, from, view.From)
	assert.Equal(t, to, view.To)
	require.Len(t, view.Days, 7)
	require.Len(t, view.Rows, 2)

	cells := view.Rows[0].Cells
	assert.Equal(t, "a", cells[0].BookingID)
	assert.Equal(t, int32(2), cells[0].Guests)
	assert.Equal(t, "a", cells[1].BookingID, "confirmed stay wins over pending")
	assert.Equal(t, "p", cells[2].BookingID, "check-out day of a is free")
	assert.Equal(t, domain.BookingStatusPending, cells[2].Status)
	assert.Empty(t, cells[3].BookingID)
	assert.False(t, cells[4].Closed)
	assert.True(t, cells[5].Closed)
	assert.True(t, cells[6].Closed)

	for _, c := range view.Rows[1].Cells {
		assert.Empty(t, c.BookingID, "cancelled bookings are not shown")
	}
}

func TestOccupancyService_View_ClosureEndDayIsOpen(t *testing.T) {
	ctx := context.Background()
	closure := domain.Closure{ID: "all", StartDate: day(10, 19), EndDate: day(10, 21), Reason: "boiler"}

	for _, tc := range []struct {
		date   time.Time
		closed bool
	}{
		{day(10, 20), true},
		{day(10, 21), false},
	} {
		mockRoomRepo := new(MockRoomRepo)
		mockBookingRepo := new(MockBookingRepo)
		mockClosureRepo := new(MockClosureRepo)
		svc := service.NewOccupancyService(mockRoomRepo, mockBookingRepo, mockClosureRepo)

		from, to := tc.date, tc.date.AddDate(0, 0, 1)
		mockRoomRepo.On("List", ctx).Return([]domain.Room{room(3, 4)}, nil).Once()
		mockBookingRepo.On("List", ctx, domain.BookingFilter{From: from, To: to}).Return([]domain.Booking{}, nil).Once()
		mockClosureRepo.On("List", ctx, from, to).Return([]domain.Closure{closure}, nil).Once()

		view, err := svc.View(ctx, service.ViewDay, tc.date)
		require.NoError(t, err)
		require.Len(t, view.Rows, 1)
		require.Len(t, view.Rows[0].Cells, 1)
		assert.Equal(t, tc.closed, view.Rows[0].Cells[0].Closed, tc.date.Format("2006-01-02"))
	}
}
