package service

import (
	"context"
	"fmt"
	"strings"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	"roomdesk-backend/internal/logger"
	"roomdesk-backend/internal/notify"
	"roomdesk-backend/internal/repository"
	"roomdesk-backend/internal/utils"

	"github.com/google/uuid"
)

type bookingService struct {
	bookingRepo repository.BookingRepository
	loader      snapshotLoader
	engine      *assignment.Engine
	notifier    notify.Notifier
	pricing     utils.PricingSettings
	taxRates    utils.TouristTaxRates
}

func NewBookingService(
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	closureRepo repository.ClosureRepository,
	engine *assignment.Engine,
	notifier notify.Notifier,
	pricing utils.PricingSettings,
	taxRates utils.TouristTaxRates,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		loader:      snapshotLoader{roomRepo: roomRepo, bookingRepo: bookingRepo, closureRepo: closureRepo},
		engine:      engine,
		notifier:    notifier,
		pricing:     pricing,
		taxRates:    taxRates,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in BookingInput) (*BookingResult, error) {
	logger.EnterMethod("bookingService.CreateBooking", "guest", in.GuestName, "rooms", len(in.Rooms))

	if in.Status == "" {
		in.Status = domain.BookingStatusConfirmed
	}
	if err := normalizeBookingInput(&in); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err)
		return nil, err
	}

	booking := &domain.Booking{ID: uuid.NewString()}
	result, err := s.place(ctx, booking, in)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "guest", in.GuestName)
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, booking, result.Moves); err != nil {
		logger.ExitMethodWithError("bookingService.CreateBooking", err, "bookingID", booking.ID)
		return nil, fmt.Errorf("save booking: %w", err)
	}

	if booking.Status == domain.BookingStatusConfirmed {
		if err := s.notifier.BookingConfirmed(ctx, booking); err != nil {
			logger.Warn("Failed to send booking confirmation", "bookingID", booking.ID, "error", err)
		}
	}
	notifyMoves(ctx, s.notifier, s.bookingRepo, result.Moves)

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID, "moves", len(result.Moves))
	return result, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	logger.EnterMethod("bookingService.ListBookings", "status", filter.Status, "roomID", filter.RoomID)
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		logger.ExitMethodWithError("bookingService.ListBookings", err)
		return nil, err
	}
	logger.ExitMethod("bookingService.ListBookings", "count", len(bookings))
	return bookings, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id string, version int32, in BookingInput) (*BookingResult, error) {
	logger.EnterMethod("bookingService.UpdateBooking", "bookingID", id, "version", version)

	if err := normalizeBookingInput(&in); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}

	existing, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}
	if existing.Version != version {
		err := fmt.Errorf("booking %s is at version %d, not %d: %w", id, existing.Version, version, repository.ErrConflict)
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}

	if in.Status == "" {
		in.Status = existing.Status
	}
	// Guests already in house and staff-pinned rooms stay where they are
	// unless the caller names a room explicitly.
	if existing.Arrived || existing.RoomLocked {
		in.Rooms = append([]RoomRequest(nil), in.Rooms...)
		pinStoredRooms(in.Rooms, existing.Rooms)
	}

	booking := *existing
	result, err := s.place(ctx, &booking, in)
	if err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, &booking, result.Moves); err != nil {
		logger.ExitMethodWithError("bookingService.UpdateBooking", err, "bookingID", id)
		return nil, fmt.Errorf("update booking: %w", err)
	}

	if booking.Status == domain.BookingStatusConfirmed && existing.Status != domain.BookingStatusConfirmed {
		if err := s.notifier.BookingConfirmed(ctx, &booking); err != nil {
			logger.Warn("Failed to send booking confirmation", "bookingID", booking.ID, "error", err)
		}
	}
	notifyMoves(ctx, s.notifier, s.bookingRepo, result.Moves)

	logger.ExitMethod("bookingService.UpdateBooking", "bookingID", id, "version", booking.Version)
	return result, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CancelBooking", "bookingID", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err, "bookingID", id)
		return nil, err
	}
	if booking.Status == domain.BookingStatusCancelled {
		logger.ExitMethod("bookingService.CancelBooking", "bookingID", id, "alreadyCancelled", true)
		return booking, nil
	}

	booking.Status = domain.BookingStatusCancelled
	if err := s.bookingRepo.Update(ctx, booking, nil); err != nil {
		logger.ExitMethodWithError("bookingService.CancelBooking", err, "bookingID", id)
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if err := s.notifier.BookingCancelled(ctx, booking); err != nil {
		logger.Warn("Failed to send cancellation", "bookingID", id, "error", err)
	}

	logger.ExitMethod("bookingService.CancelBooking", "bookingID", id)
	return booking, nil
}

func (s *bookingService) DeleteBooking(ctx context.Context, id string) error {
	logger.EnterMethod("bookingService.DeleteBooking", "bookingID", id)
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("bookingService.DeleteBooking", err, "bookingID", id)
		return err
	}
	logger.ExitMethod("bookingService.DeleteBooking", "bookingID", id)
	return nil
}

func (s *bookingService) MarkArrived(ctx context.Context, id string, arrived bool) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.MarkArrived", "bookingID", id, "arrived", arrived)
	if err := s.bookingRepo.SetArrived(ctx, id, arrived); err != nil {
		logger.ExitMethodWithError("bookingService.MarkArrived", err, "bookingID", id)
		return nil, err
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("bookingService.MarkArrived", err, "bookingID", id)
		return nil, err
	}
	logger.ExitMethod("bookingService.MarkArrived", "bookingID", id)
	return booking, nil
}

// SuggestRoom is a dry run of the resolver. A request with no solution is not
// an error: the Result carries the outcome and the reason.
func (s *bookingService) SuggestRoom(ctx context.Context, in SuggestInput) (*assignment.Result, error) {
	logger.EnterMethod("bookingService.SuggestRoom", "guests", in.Guests, "allowMoves", in.AllowMoves)

	checkIn, checkOut := domain.DateOf(in.CheckIn), domain.DateOf(in.CheckOut)
	snap, err := s.loader.load(ctx, earliest(assignment.Today(s.engine.Clock()), checkIn))
	if err != nil {
		logger.ExitMethodWithError("bookingService.SuggestRoom", err)
		return nil, err
	}

	res, err := s.engine.Assign(assignment.Request{
		PartySize:        in.Guests,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		LockedRoomID:     in.LockedRoomID,
		AllowMoves:       in.AllowMoves,
		ExcludeBookingID: in.ExcludeBookingID,
	}, snap)
	if err != nil {
		logger.ExitMethodWithError("bookingService.SuggestRoom", err)
		return nil, err
	}

	logger.ExitMethod("bookingService.SuggestRoom", "outcome", res.Outcome, "moves", len(res.Moves))
	return &res, nil
}

func (s *bookingService) QuoteStay(ctx context.Context, in QuoteInput) (*utils.StayQuote, error) {
	if in.Guests < 1 {
		return nil, invalid("guests", "must be at least 1, got %d", in.Guests)
	}
	if in.Children < 0 || in.Children > in.Guests {
		return nil, invalid("children", "must be between 0 and %d, got %d", in.Guests, in.Children)
	}
	exemptions := append([]domain.GuestExemption(nil), in.Exemptions...)
	taken := domain.ExemptIndexes(exemptions)
	for i := in.Guests - in.Children; i < in.Guests; i++ {
		if !taken[i] {
			exemptions = append(exemptions, domain.GuestExemption{GuestIndex: i, Kind: domain.ExemptionMinor})
		}
	}
	source := in.Source
	if source == "" {
		source = domain.BookingSourcePrivate
	}
	quote, err := utils.QuoteStay(in.Guests, domain.DateOf(in.CheckIn), domain.DateOf(in.CheckOut), source,
		exemptions, s.pricing, s.taxRates)
	if err != nil {
		return nil, invalid("dates", "%v", err)
	}
	return &quote, nil
}

// place resolves the rooms for in and fills booking with the outcome. The
// booking keeps its id and version.
func (s *bookingService) place(ctx context.Context, booking *domain.Booking, in BookingInput) (*BookingResult, error) {
	snap, err := s.loader.load(ctx, earliest(assignment.Today(s.engine.Clock()), in.CheckIn))
	if err != nil {
		return nil, err
	}

	// Pending bookings do not block anyone, so they never displace anyone.
	allowMoves := in.AllowMoves && in.Status == domain.BookingStatusConfirmed
	reqs := make([]assignment.Request, len(in.Rooms))
	for i, r := range in.Rooms {
		reqs[i] = assignment.Request{
			PartySize:        r.Guests,
			CheckIn:          in.CheckIn,
			CheckOut:         in.CheckOut,
			LockedRoomID:     r.RoomID,
			AllowMoves:       allowMoves,
			ExcludeBookingID: booking.ID,
		}
	}
	results, err := s.engine.AssignAll(reqs, snap)
	if err != nil {
		return nil, err
	}

	rooms := make([]domain.BookedRoom, len(results))
	var moves []domain.Move
	for i, res := range results {
		if !res.Found() {
			return nil, fmt.Errorf("room %d of %d: %w", i+1, len(results), res.Err())
		}
		rooms[i] = domain.BookedRoom{RoomID: *res.RoomID, Guests: in.Rooms[i].Guests}
		moves = append(moves, res.Moves...)
	}

	booking.GuestName = in.GuestName
	booking.GuestEmail = in.GuestEmail
	booking.GuestPhone = in.GuestPhone
	booking.CheckIn = in.CheckIn
	booking.CheckOut = in.CheckOut
	booking.Rooms = rooms
	booking.Status = in.Status
	booking.Source = in.Source
	booking.Notes = in.Notes
	booking.Exemptions = in.Exemptions
	if in.LockRooms != nil {
		booking.RoomLocked = *in.LockRooms
	}

	quote, err := utils.QuoteStay(booking.TotalGuests(), in.CheckIn, in.CheckOut, in.Source, in.Exemptions, s.pricing, s.taxRates)
	if err != nil {
		return nil, invalid("dates", "%v", err)
	}
	booking.TotalPriceCents = quote.PriceCents
	if in.PriceOverrideCents != nil {
		booking.TotalPriceCents = *in.PriceOverrideCents
	}
	booking.TouristTaxCents = quote.TouristTaxCents

	return &BookingResult{Booking: booking, Assignments: results, Moves: moves}, nil
}

// pinStoredRooms fills requests without a room id with the booking's stored
// rooms, in order, skipping rooms the caller already named. Requests left over
// once the stored rooms run out are new rooms and go through the resolver.
func pinStoredRooms(reqs []RoomRequest, stored []domain.BookedRoom) {
	named := make(map[int32]bool, len(reqs))
	for _, r := range reqs {
		if r.RoomID != nil {
			named[*r.RoomID] = true
		}
	}
	free := make([]int32, 0, len(stored))
	for _, br := range stored {
		if !named[br.RoomID] {
			free = append(free, br.RoomID)
		}
	}
	for i := range reqs {
		if reqs[i].RoomID != nil || len(free) == 0 {
			continue
		}
		id := free[0]
		free = free[1:]
		reqs[i].RoomID = &id
	}
}

// normalizeBookingInput validates in and fills defaults. An empty status is
// left for the caller to decide.
func normalizeBookingInput(in *BookingInput) error {
	in.GuestName = strings.TrimSpace(in.GuestName)
	if in.GuestName == "" {
		return invalid("guest_name", "is required")
	}
	if in.CheckIn.IsZero() || in.CheckOut.IsZero() {
		return invalid("dates", "check-in and check-out are required")
	}
	in.CheckIn = domain.DateOf(in.CheckIn)
	in.CheckOut = domain.DateOf(in.CheckOut)
	if !in.CheckOut.After(in.CheckIn) {
		return invalid("check_out", "must be after check-in")
	}

	if len(in.Rooms) == 0 {
		return invalid("rooms", "at least one room is required")
	}
	var total int32
	seen := make(map[int32]bool)
	for _, r := range in.Rooms {
		if r.Guests < 1 {
			return invalid("guests", "must be at least 1, got %d", r.Guests)
		}
		total += r.Guests
		if r.RoomID == nil {
			continue
		}
		if seen[*r.RoomID] {
			return invalid("rooms", "room %d requested twice", *r.RoomID)
		}
		seen[*r.RoomID] = true
	}

	if in.Status != "" && !in.Status.Valid() {
		return invalid("status", "unknown status %q", in.Status)
	}
	if in.Source == "" {
		in.Source = domain.BookingSourcePrivate
	}
	if in.Source != domain.BookingSourcePrivate && in.Source != domain.BookingSourceBookingCom {
		return invalid("source", "unknown source %q", in.Source)
	}

	exempt := make(map[int32]bool)
	for _, e := range in.Exemptions {
		if !e.Kind.Valid() {
			return invalid("exemptions", "unknown exemption %q", e.Kind)
		}
		if e.GuestIndex < 0 || e.GuestIndex >= total {
			return invalid("exemptions", "guest index %d out of range for %d guests", e.GuestIndex, total)
		}
		if exempt[e.GuestIndex] {
			return invalid("exemptions", "guest %d has two exemptions", e.GuestIndex)
		}
		exempt[e.GuestIndex] = true
	}
	if in.PriceOverrideCents != nil && *in.PriceOverrideCents < 0 {
		return invalid("total_price_cents", "must not be negative")
	}
	return nil
}

// notifyMoves tells the guests of relocated bookings about their new room.
// Failures are logged; the moves are already committed.
func notifyMoves(ctx context.Context, notifier notify.Notifier, repo repository.BookingRepository, moves []domain.Move) {
	for _, m := range moves {
		b, err := repo.GetByID(ctx, m.BookingID)
		if err != nil {
			logger.Warn("Failed to load moved booking", "bookingID", m.BookingID, "error", err)
			continue
		}
		if err := notifier.RoomChanged(ctx, b, m); err != nil {
			logger.Warn("Failed to send room change", "bookingID", m.BookingID, "error", err)
		}
	}
}
