package handler

import (
	"encoding/json"
	"net/http"

	"github.com/blaisecz/health-journal/internal/api/validation"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/service"
	"github.com/blaisecz/health-journal/pkg/problem"
)

// InsightsHandler handles LLM narrative endpoints.
type InsightsHandler struct {
	narrativeService service.NarrativeService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(narrativeService service.NarrativeService) *InsightsHandler {
	return &InsightsHandler{narrativeService: narrativeService}
}

// GetNarrative handles GET /v1/users/{userId}/insights/narrative
// @Summary Get an LLM narrative over computed insights
// @Description Computes analytics for the window and asks the LLM to summarize the threshold insights.
// @Tags insights
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param start_date query string false "Inclusive start date" example(2024-01-01)
// @Param end_date query string false "Inclusive end date" example(2024-03-31)
// @Success 200 {object} domain.NarrativeResponse "Insights with LLM narrative"
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 404 {object} problem.Problem "User not found"
// @Failure 500 {object} problem.Problem "Server error"
// @Failure 502 {object} problem.Problem "LLM request failed"
// @Failure 503 {object} problem.Problem "LLM service unavailable"
// @Router /users/{userId}/insights/narrative [get]
func (h *InsightsHandler) GetNarrative(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}
	req, ok := analyticsRequest(w, r)
	if !ok {
		return
	}

	result, err := h.narrativeService.Generate(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to generate narrative")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PostFeedback handles POST /v1/users/{userId}/insights/feedback
// @Summary Submit feedback on a narrative
// @Description Submit a user rating and optional comment for a previous narrative response.
// @Tags insights
// @Accept json
// @Produce json
// @Param userId path string true "User UUID" format(uuid) example(550e8400-e29b-41d4-a716-446655440000)
// @Param body body domain.FeedbackRequest true "Feedback request"
// @Success 204 "Feedback submitted"
// @Failure 400 {object} problem.Problem "Invalid request"
// @Failure 422 {object} problem.Problem "Invalid fields"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /users/{userId}/insights/feedback [post]
func (h *InsightsHandler) PostFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid request body").Render(w, r)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Render(w, r)
		return
	}

	if err := h.narrativeService.SubmitFeedback(r.Context(), userID, &req); err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to submit feedback")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
