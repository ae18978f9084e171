package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/repository"
	"github.com/blaisecz/health-journal/pkg/pagination"
	"github.com/google/uuid"
)

type RecordService interface {
	// Upsert writes the record for date. The bool is true when a new record was created.
	Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertRecordRequest) (*domain.DailyRecord, bool, error)
	Get(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error)
	List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) (*domain.RecordListResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type recordService struct {
	repo     repository.RecordRepository
	userRepo repository.UserRepository
}

func NewRecordService(repo repository.RecordRepository, userRepo repository.UserRepository) RecordService {
	return &recordService{
		repo:     repo,
		userRepo: userRepo,
	}
}

func (s *recordService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertRecordRequest) (*domain.DailyRecord, bool, error) {
	if !analytics.ValidDate(date) {
		return nil, false, fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, false, err
	}

	record := &domain.DailyRecord{
		UserID:          userID,
		Date:            date,
		Sleep:           req.Sleep,
		Meals:           req.Meals,
		Activity:        cleanTags(req.Activity),
		ActivityMinutes: req.ActivityMinutes,
		Symptoms:        cleanTags(req.Symptoms),
		Period:          req.Period,
		Nutrition:       req.Nutrition,
		Hydration:       req.Hydration,
	}
	if record.Meals.IsEmpty() {
		record.Meals = nil
	}

	created, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, false, err
	}
	return record, created, nil
}

func (s *recordService) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error) {
	if !analytics.ValidDate(date) {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.GetByDate(ctx, userID, date)
}

func (s *recordService) List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) (*domain.RecordListResponse, error) {
	if err := validateRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}

	records, next := pagination.Page(records, filter.Limit, func(r domain.DailyRecord) pagination.Cursor {
		return pagination.Cursor{Date: r.Date, ID: r.ID}
	})

	response := &domain.RecordListResponse{
		Data: make([]domain.RecordResponse, len(records)),
		Pagination: domain.PaginationResponse{
			NextCursor: next,
			HasMore:    next != "",
		},
	}
	for i := range records {
		response.Data[i] = records[i].ToResponse()
	}

	return response, nil
}

func (s *recordService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if !analytics.ValidDate(date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", domain.ErrInvalidInput, date)
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, date)
}

func (s *recordService) ensureUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}

// validateRange checks optional inclusive bounds.
func validateRange(from, to string) error {
	if from != "" && !analytics.ValidDate(from) {
		return fmt.Errorf("%w: start date %q is not YYYY-MM-DD", domain.ErrInvalidInput, from)
	}
	if to != "" && !analytics.ValidDate(to) {
		return fmt.Errorf("%w: end date %q is not YYYY-MM-DD", domain.ErrInvalidInput, to)
	}
	if from != "" && to != "" && from > to {
		return domain.ErrInvalidDateRange
	}
	return nil
}

// cleanTags trims tags and drops blanks, keeping the original spelling.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
