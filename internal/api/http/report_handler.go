package http

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"roomdesk-backend/internal/assignment"
	"roomdesk-backend/internal/domain"
	apperrors "roomdesk-backend/internal/errors"
	"roomdesk-backend/internal/service"
)

type ReportHandler struct {
	occupancySvc service.OccupancyService
	statsSvc     service.StatsService
	exportSvc    service.ExportService
	clock        assignment.Clock
}

func NewReportHandler(occupancySvc service.OccupancyService, statsSvc service.StatsService, exportSvc service.ExportService, clock assignment.Clock) *ReportHandler {
	return &ReportHandler{occupancySvc: occupancySvc, statsSvc: statsSvc, exportSvc: exportSvc, clock: clock}
}

// Occupancy serves ?view=day|week|month&date=YYYY-MM-DD.
func (h *ReportHandler) Occupancy(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, err := service.ParseViewKind(q.Get("view"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	day, err := parseDate("date", q.Get("date"), assignment.Today(h.clock))
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := h.occupancySvc.View(r.Context(), kind, day)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsSvc.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// PayTourist streams the CSV for ?from=&to=. The file is built in memory so
// a failure still yields a JSON error.
func (h *ReportHandler) PayTourist(w http.ResponseWriter, r *http.Request) {
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
	if from.IsZero() || to.IsZero() {
		writeError(w, r, apperrors.ErrBadRequest("from and to are required"))
		return
	}

	var buf bytes.Buffer
	if _, err := h.exportSvc.ExportPayTourist(r.Context(), &buf, from, to); err != nil {
		writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("paytourist_%s_%s.csv", from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
