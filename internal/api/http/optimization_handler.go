package http

import (
	"net/http"

	"roomdesk-backend/internal/service"

	"github.com/gorilla/mux"
)

type OptimizationHandler struct {
	optimizationSvc service.OptimizationService
}

func NewOptimizationHandler(optimizationSvc service.OptimizationService) *OptimizationHandler {
	return &OptimizationHandler{optimizationSvc: optimizationSvc}
}

func (h *OptimizationHandler) Propose(w http.ResponseWriter, r *http.Request) {
	p, err := h.optimizationSvc.Propose(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *OptimizationHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	p, err := h.optimizationSvc.GetProposal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *OptimizationHandler) ApplyProposal(w http.ResponseWriter, r *http.Request) {
	p, err := h.optimizationSvc.ApplyProposal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
