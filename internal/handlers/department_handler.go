package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/finmate/finmate-server/internal/services"
	"github.com/gorilla/mux"
)

// DepartmentHandler handles HTTP requests related to departments. The
// routes it serves are mounted behind the business-account role check.
type DepartmentHandler struct {
	service *services.DepartmentService
}

// NewDepartmentHandler creates a new DepartmentHandler instance.
func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{
		service: service,
	}
}

// CreateDepartment handles POST /departments.
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.DepartmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	dept, err := h.service.CreateDepartment(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, dept)
}

// GetDepartments handles GET /departments.
func (h *DepartmentHandler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	departments, err := h.service.GetDepartments(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, departments)
}

// UpdateDepartment handles PUT /departments/{id}.
func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.DepartmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.service.UpdateDepartment(r.Context(), userID, mux.Vars(r)["id"], input); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Department updated successfully"})
}

// DeleteDepartment handles DELETE /departments/{id}.
func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteDepartment(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Department deactivated"})
}
