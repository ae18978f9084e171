package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/llm"
	"github.com/blaisecz/health-journal/pkg/problem"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseUserID reads the userId path parameter, writing a 400 when it is not a UUID.
func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		problem.BadRequest("Invalid user ID format").Render(w, r)
		return uuid.Nil, false
	}
	return userID, true
}

// writeServiceError maps service errors to problem responses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound(notFound).Render(w, r)
	case errors.Is(err, domain.ErrInvalidDateRange):
		problem.BadRequest("start_date must not be after end_date").Render(w, r)
	case errors.Is(err, domain.ErrInvalidInput):
		problem.BadRequest(err.Error()).Render(w, r)
	case errors.Is(err, llm.ErrOpenAIUnavailable):
		problem.ServiceUnavailable("OpenAI service is not configured").Render(w, r)
	case errors.Is(err, llm.ErrOpenAIRequest), errors.Is(err, llm.ErrOpenAIResponse):
		problem.BadGateway("Failed to generate narrative from LLM").Render(w, r)
	default:
		problem.InternalError(fallback).Render(w, r)
	}
}
