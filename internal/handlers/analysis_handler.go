package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/finmate/finmate-server/internal/services"
	"github.com/gorilla/mux"
)

// AnalysisHandler serves the AI analysis endpoints. The business analysis
// route is mounted behind the business-account role check; the goal plan
// route is open to every authenticated account.
type AnalysisHandler struct {
	service *services.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler instance.
func NewAnalysisHandler(service *services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
	}
}

// AnalyzeBusiness handles POST /analyze.
func (h *AnalysisHandler) AnalyzeBusiness(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		GoalType     string  `json:"goal_type"`
		GrowthTarget float64 `json:"growth_target"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	analysis, err := h.service.AnalyzeBusiness(r.Context(), userID, payload.GoalType, payload.GrowthTarget)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}

// AnalyzeGoal handles POST /goals/{id}/analyze.
func (h *AnalysisHandler) AnalyzeGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	analysis, err := h.service.AnalyzeGoal(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, analysis)
}
