package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/blaisecz/health-journal/internal/api/validation"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/service"
	"github.com/blaisecz/health-journal/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type RecordHandler struct {
	service service.RecordService
}

func NewRecordHandler(service service.RecordService) *RecordHandler {
	return &RecordHandler{service: service}
}

// Upsert handles PUT /v1/users/{userId}/records/{date}
// @Summary Write a daily record
// @Description Create or replace the journal entry for a calendar date
// @Tags records
// @Accept json
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar date" example(2024-01-15)
// @Param request body domain.UpsertRecordRequest true "Daily record"
// @Success 200 {object} domain.RecordResponse "Record replaced"
// @Success 201 {object} domain.RecordResponse "Record created"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 422 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/records/{date} [put]
func (h *RecordHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req domain.UpsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Render(w, r)
		return
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Render(w, r)
		return
	}

	record, created, err := h.service.Upsert(r.Context(), userID, chi.URLParam(r, "date"), &req)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to save record")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, record.ToResponse())
}

// Get handles GET /v1/users/{userId}/records/{date}
// @Summary Get a daily record
// @Tags records
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar date" example(2024-01-15)
// @Success 200 {object} domain.RecordResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/records/{date} [get]
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	record, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, r, err, "Record not found", "Failed to get record")
		return
	}

	writeJSON(w, http.StatusOK, record.ToResponse())
}

// List handles GET /v1/users/{userId}/records
// @Summary List daily records
// @Description List records newest first with cursor pagination
// @Tags records
// @Produce json
// @Param userId path string true "User ID" format(uuid)
// @Param from query string false "Inclusive start date" example(2024-01-01)
// @Param to query string false "Inclusive end date" example(2024-01-31)
// @Param limit query int false "Page size (default 30, max 366)"
// @Param cursor query string false "Pagination cursor"
// @Success 200 {object} domain.RecordListResponse
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/records [get]
func (h *RecordHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := domain.RecordFilter{
		From:   query.Get("from"),
		To:     query.Get("to"),
		Cursor: query.Get("cursor"),
	}
	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			problem.BadRequest("Invalid limit parameter").Render(w, r)
			return
		}
		filter.Limit = limit
	}

	response, err := h.service.List(r.Context(), userID, filter)
	if err != nil {
		writeServiceError(w, r, err, "User not found", "Failed to list records")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// Delete handles DELETE /v1/users/{userId}/records/{date}
// @Summary Delete a daily record
// @Tags records
// @Param userId path string true "User ID" format(uuid)
// @Param date path string true "Calendar date" example(2024-01-15)
// @Success 204 "Record deleted"
// @Failure 400 {object} problem.Problem
// @Failure 404 {object} problem.Problem
// @Failure 500 {object} problem.Problem
// @Router /users/{userId}/records/{date} [delete]
func (h *RecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "date")); err != nil {
		writeServiceError(w, r, err, "Record not found", "Failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
