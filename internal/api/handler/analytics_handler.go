package handler

import (
	"net/http"

	"github.com/blaisecz/health-journal/internal/api/validation"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/service"
	"github.com/blaisecz/health-journal/pkg/problem"
)

// AnalyticsHandler serves computed analytics and health scores.
type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(service service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// analyticsRequest reads and validates the shared window query parameters.
func analyticsRequest(w http.ResponseWriter, r *http.Request) (*domain.AnalyticsRequest, bool) {
	query := r.URL.Query()
	req := &domain.AnalyticsRequest{
		StartDate:   query.Get("start_date"),
		EndDate:     query.Get("end_date"),
		Granularity: query.Get("granularity"),
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.BadRequest("Invalid query parameters").WithErrors(fieldErrors).Render(w, r)
		return nil, false
	}
	return req, true
}

// GetAnalytics handles GET /v1/users/{userId}/analytics
// @Summary Compute analytics
// @Description Derived series, food and symptom correlations, cycle forecast and insights for an inclusive date window.
// @Description The cycle forecast always uses the full history.
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param start_date query string false "Inclusive start date" example(2024-01-01)
// @Param end_date query string false "Inclusive end date" example(2024-03-31)
// @Param granularity query string false "Series bucketing" Enums(daily, weekly, monthly) default(daily)
// @Success 200 {object} domain.AnalyticsResult
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/analytics [get]
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	req, ok := analyticsRequest(w, r)
	if !ok {
		return
	}

	result, err := h.service.ComputeAnalytics(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to compute analytics")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetHealthScore handles GET /v1/users/{userId}/health-score
// @Summary Get the health score for a day
// @Description Composite score of sleep, symptoms, activity and hydration. A day without data yields total 0 and an empty breakdown.
// @Tags analytics
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param date query string true "Calendar date" example(2024-01-15)
// @Success 200 {object} domain.HealthScore
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/health-score [get]
func (h *AnalyticsHandler) GetHealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		problem.BadRequest("date is required").Render(w, r)
		return
	}

	score, err := h.service.ComputeHealthScore(r.Context(), userID, date)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to compute health score")
		return
	}

	writeJSON(w, http.StatusOK, score)
}
