package handlers

import (
	"net/http"

	"github.com/finmate/finmate-server/internal/services"
)

// BudgetHandler serves the aggregated budget view.
type BudgetHandler struct {
	service *services.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler instance.
func NewBudgetHandler(service *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{
		service: service,
	}
}

// GetSummary handles GET /budget/summary.
func (h *BudgetHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
