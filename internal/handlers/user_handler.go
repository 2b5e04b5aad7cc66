package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/finmate/finmate-server/internal/services"
	jwtutil "github.com/finmate/finmate-server/pkg/jwt"
	"github.com/finmate/finmate-server/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to accounts.
type UserHandler struct {
	service     *services.UserService
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(service *services.UserService, jwtSecret string, tokenExpiry time.Duration) *UserHandler {
	return &UserHandler{
		service:     service,
		jwtSecret:   jwtSecret,
		tokenExpiry: tokenExpiry,
	}
}

// RegisterUser handles POST /users/register.
func (h *UserHandler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.service.RegisterUser(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// LoginUser handles POST /users/login and issues a JWT.
func (h *UserHandler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.service.AuthenticateUser(r.Context(), creds.Email, creds.Password)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.jwtSecret, h.tokenExpiry)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// VerifyEmail handles GET /users/verify?token=...
func (h *UserHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if err := h.service.VerifyEmail(r.Context(), token); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// GetUser handles GET /users/{id}. Accounts can only read themselves.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUser handles PUT /users/{id}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id := mux.Vars(r)["id"]
	if id != claims.UserID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var payload struct {
		Name        string `json:"name"`
		CompanyName string `json:"company_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), user.ID, payload.Name, payload.CompanyName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
