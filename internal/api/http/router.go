package http

import (
	"context"
	"net/http"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services are the dependencies of the front desk API.
type Services struct {
	Bookings      service.BookingService
	Rooms         service.RoomService
	Closures      service.ClosureService
	Occupancy     service.OccupancyService
	Optimizations service.OptimizationService
	Stats         service.StatsService
	Exports       service.ExportService
	Clock         assignment.Clock
	// Ping reports whether the database is reachable. Nil skips the check.
	Ping func(ctx context.Context) error
}

// NewRouter registers every route under /api/v1 plus /healthz.
func NewRouter(s Services) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, s)
	return router
}

func RegisterRoutes(router *mux.Router, s Services) {
	rooms := NewRoomHandler(s.Rooms, s.Clock)
	closures := NewClosureHandler(s.Closures)
	bookings := NewBookingHandler(s.Bookings)
	reports := NewReportHandler(s.Occupancy, s.Stats, s.Exports, s.Clock)
	optimizations := NewOptimizationHandler(s.Optimizations)

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rooms", rooms.ListRooms).Methods("GET")
	api.HandleFunc("/rooms/{id}/status", rooms.UpdateStatus).Methods("PUT")

	api.HandleFunc("/closures", closures.ListClosures).Methods("GET")
	api.HandleFunc("/closures", closures.CreateClosure).Methods("POST")
	api.HandleFunc("/closures/{id}", closures.DeleteClosure).Methods("DELETE")

	api.HandleFunc("/assignments/suggest", bookings.SuggestRoom).Methods("POST")
	api.HandleFunc("/pricing/quote", bookings.QuoteStay).Methods("GET")

	api.HandleFunc("/bookings", bookings.ListBookings).Methods("GET")
	api.HandleFunc("/bookings", bookings.CreateBooking).Methods("POST")
	api.HandleFunc("/bookings/{id}", bookings.GetBooking).Methods("GET")
	api.HandleFunc("/bookings/{id}", bookings.UpdateBooking).Methods("PUT")
	api.HandleFunc("/bookings/{id}", bookings.DeleteBooking).Methods("DELETE")
	api.HandleFunc("/bookings/{id}/cancel", bookings.CancelBooking).Methods("POST")
	api.HandleFunc("/bookings/{id}/arrive", bookings.MarkArrived).Methods("POST")

	api.HandleFunc("/occupancy", reports.Occupancy).Methods("GET")
	api.HandleFunc("/stats", reports.Stats).Methods("GET")
	api.HandleFunc("/exports/paytourist", reports.PayTourist).Methods("GET")

	api.HandleFunc("/optimizations", optimizations.Propose).Methods("POST")
	api.HandleFunc("/optimizations/{id}", optimizations.GetProposal).Methods("GET")
	api.HandleFunc("/optimizations/{id}/apply", optimizations.ApplyProposal).Methods("POST")

	router.HandleFunc("/healthz", healthHandler(s.Ping)).Methods("GET")
}

func healthHandler(ping func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
