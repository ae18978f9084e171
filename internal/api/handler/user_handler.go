package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/health-journal/internal/api/validation"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/service"
	"github.com/blaisecz/health-journal/pkg/problem"
)

// @title Health Journal API
// @version 1.0
// @description Daily health journal with analytics, cycle forecasts and insights
// @BasePath /v1

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Create handles POST /v1/users
// @Summary Create a new user
// @Description Create a new user with timezone preference
// @Tags users
// @Accept json
// @Produce json
// @Param request body domain.CreateUserRequest true "User creation request"
// @Success 201 {object} domain.UserResponse
// @Failure 400 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Render(w, r)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Render(w, r)
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to create user")
		return
	}

	writeJSON(w, http.StatusCreated, user.ToResponse())
}

// GetByID handles GET /v1/users/{userId}
// @Summary Get user by ID
// @Description Get a user's details and cycle profile by their UUID
// @Tags users
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Success 200 {object} domain.UserResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId} [get]
func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}

// UpdateProfile handles PUT /v1/users/{userId}/profile
// @Summary Update cycle profile
// @Description Set the average cycle length and continuous pill flag used by the cycle forecast.
// @Description Omitting average_cycle_length_days clears it; omitting is_on_continuous_pill keeps the current value.
// @Tags users
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param request body domain.UpdateProfileRequest true "Profile update"
// @Success 200 {object} domain.UserResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Render(w, r)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Render(w, r)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, user.ToResponse())
}
