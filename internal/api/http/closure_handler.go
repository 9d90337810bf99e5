package http

import (
	"net/http"
	"time"

	"roomdesk-backend/internal/domain"
	apperrors "roomdesk-backend/internal/errors"
	"roomdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type ClosureHandler struct {
	closureSvc service.ClosureService
}

func NewClosureHandler(closureSvc service.ClosureService) *ClosureHandler {
	return &ClosureHandler{closureSvc: closureSvc}
}

func (h *ClosureHandler) ListClosures(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := parseDate("from", q.Get("from"), time.Time{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	to, err := parseDate("to", q.Get("to"), time.Time{})
	if err != nil {
		writeError(w, r, err)
		return
	}
	closures, err := h.closureSvc.ListClosures(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if closures == nil {
		closures = []domain.Closure{}
	}
	writeJSON(w, http.StatusOK, closures)
}

// CreateClosure needs either room_ids or whole_structure, never both.
func (h *ClosureHandler) CreateClosure(w http.ResponseWriter, r *http.Request) {
	var req closureRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.WholeStructure == (len(req.RoomIDs) > 0) {
		writeError(w, r, apperrors.ErrBadRequest("set either room_ids or whole_structure"))
		return
	}
	start, _ := domain.ParseDate(req.StartDate)
	end, _ := domain.ParseDate(req.EndDate)

	closures, err := h.closureSvc.CreateClosure(r.Context(), service.ClosureInput{
		RoomIDs:   req.RoomIDs,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, closures)
}

func (h *ClosureHandler) DeleteClosure(w http.ResponseWriter, r *http.Request) {
	if err := h.closureSvc.DeleteClosure(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
