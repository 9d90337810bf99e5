package http

import (
	"net/http"
	"time"

	"roomdesk-backend/internal/domain"
	apperrors "roomdesk-backend/internal/errors"
	"roomdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter domain.BookingFilter
	var err error
	if status := q.Get("status"); status != "" {
		filter.Status = domain.BookingStatus(status)
		if !filter.Status.Valid() {
			writeError(w, r, apperrors.ErrBadRequest("unknown status "+status))
			return
		}
	}
	if filter.RoomID, err = parseInt32("room_id", q.Get("room_id")); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.From, err = parseDate("from", q.Get("from"), time.Time{}); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.To, err = parseDate("to", q.Get("to"), time.Time{}); err != nil {
		writeError(w, r, err)
		return
	}

	bookings, err := h.bookingSvc.ListBookings(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.bookingSvc.CreateBooking(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.GetBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Version < 1 {
		writeError(w, r, apperrors.ErrBadRequest("version is required"))
		return
	}
	result, err := h.bookingSvc.UpdateBooking(r.Context(), mux.Vars(r)["id"], req.Version, req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.bookingSvc.CancelBooking(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// MarkArrived sets the arrived flag; an empty body means arrived.
func (h *BookingHandler) MarkArrived(w http.ResponseWriter, r *http.Request) {
	arrived := true
	if r.ContentLength > 0 {
		var req arriveRequest
		if err := decode(r, &req); err != nil {
			writeError(w, r, err)
			return
		}
		if req.Arrived != nil {
			arrived = *req.Arrived
		}
	}
	booking, err := h.bookingSvc.MarkArrived(r.Context(), mux.Vars(r)["id"], arrived)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.bookingSvc.DeleteBooking(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SuggestRoom always answers 200 once the input is valid: a request with no
// solution comes back with its outcome and reason.
func (h *BookingHandler) SuggestRoom(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	result, err := h.bookingSvc.SuggestRoom(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *BookingHandler) QuoteStay(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	guests, err := parseInt32("guests", q.Get("guests"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	children, err := parseInt32("children", q.Get("children"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	checkIn, err := parseDate("check_in", q.Get("check_in"), time.Time{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	checkOut, err := parseDate("check_out", q.Get("check_out"), time.Time{})
	if err != nil {
		writeError(w, r, err)
		return
	}

	quote, err := h.bookingSvc.QuoteStay(r.Context(), service.QuoteInput{
		Guests:   guests,
		Children: children,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Source:   domain.BookingSource(q.Get("source")),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}
