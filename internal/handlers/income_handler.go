package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/finmate/finmate-server/internal/services"
	"github.com/gorilla/mux"
)

// IncomeHandler handles HTTP requests related to income sources.
type IncomeHandler struct {
	service *services.IncomeService
}

// NewIncomeHandler creates a new IncomeHandler instance.
func NewIncomeHandler(service *services.IncomeService) *IncomeHandler {
	return &IncomeHandler{
		service: service,
	}
}

// CreateIncome handles POST /income.
func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateIncomeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	income, err := h.service.CreateIncome(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, income)
}

// GetIncomes handles GET /income.
func (h *IncomeHandler) GetIncomes(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	incomes, err := h.service.GetIncomes(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, incomes)
}

// DeactivateIncome handles DELETE /income/{id}.
func (h *IncomeHandler) DeactivateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeactivateIncome(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Income source deactivated"})
}
