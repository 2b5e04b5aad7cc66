package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finmate/finmate-server/internal/services"
	"github.com/finmate/finmate-server/pkg/logger"
	"github.com/finmate/finmate-server/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler handles HTTP requests related to savings goals.
type GoalHandler struct {
	service *services.GoalService
}

// NewGoalHandler creates a new GoalHandler instance.
func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{
		service: service,
	}
}

func callerID(r *http.Request) (primitive.ObjectID, bool) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// CreateGoal handles POST /goals.
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	goal, err := h.service.CreateGoal(r.Context(), userID, input)
	if err != nil {
		respondError(w, err)
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"goal_id": goal.ID.Hex(),
		"user_id": userID.Hex(),
	}).Info("Goal created via HTTP")
	respondJSON(w, http.StatusCreated, goal)
}

// GetGoals handles GET /goals.
func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goals, err := h.service.GetGoals(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goals)
}

// GetGoal handles GET /goals/{id}.
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	goal, err := h.service.GetGoal(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// UpdateGoal handles PUT /goals/{id}.
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var input services.CreateGoalInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	goal, err := h.service.UpdateGoal(r.Context(), userID, mux.Vars(r)["id"], input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal handles DELETE /goals/{id}.
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.service.DeleteGoal(r.Context(), userID, mux.Vars(r)["id"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}

// Contribute handles POST /goals/{id}/contribute.
func (h *GoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var payload struct {
		Amount float64 `json:"amount"`
		Note   string  `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.service.Contribute(r.Context(), userID, mux.Vars(r)["id"], payload.Amount, payload.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// GetContributions handles GET /goals/{id}/contributions?limit=N.
func (h *GoalHandler) GetContributions(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := int64(50)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			limit = n
		}
	}

	contributions, err := h.service.GetContributions(r.Context(), userID, mux.Vars(r)["id"], limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contributions)
}

// Preview handles POST /goals/preview, the stateless savings-rate check.
func (h *GoalHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var input services.PreviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	result, err := h.service.Preview(input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
