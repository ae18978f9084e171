package handler

import (
	"context"
	"net/http"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	createFunc        func(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	updateProfileFunc func(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error)
}

func (m *MockUserService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return &domain.User{ID: uuid.New(), Timezone: req.Timezone}, nil
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error) {
	if m.updateProfileFunc != nil {
		return m.updateProfileFunc(ctx, id, req)
	}
	return &domain.User{ID: id, Timezone: "UTC", AverageCycleLengthDays: req.AverageCycleLengthDays}, nil
}

// MockRecordService is a mock implementation of RecordService
type MockRecordService struct {
	upsertFunc func(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertRecordRequest) (*domain.DailyRecord, bool, error)
	getFunc    func(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error)
	listFunc   func(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) (*domain.RecordListResponse, error)
	deleteFunc func(ctx context.Context, userID uuid.UUID, date string) error
}

func (m *MockRecordService) Upsert(ctx context.Context, userID uuid.UUID, date string, req *domain.UpsertRecordRequest) (*domain.DailyRecord, bool, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, userID, date, req)
	}
	return &domain.DailyRecord{ID: uuid.New(), UserID: userID, Date: date, Symptoms: req.Symptoms}, true, nil
}

func (m *MockRecordService) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID, date)
	}
	return nil, domain.ErrNotFound
}

func (m *MockRecordService) List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) (*domain.RecordListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, filter)
	}
	return &domain.RecordListResponse{
		Data:       []domain.RecordResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

func (m *MockRecordService) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, userID, date)
	}
	return nil
}

// MockAnalyticsService is a mock implementation of AnalyticsService
type MockAnalyticsService struct {
	computeFunc func(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.AnalyticsResult, error)
	scoreFunc   func(ctx context.Context, userID uuid.UUID, date string) (*domain.HealthScore, error)
}

func (m *MockAnalyticsService) ComputeAnalytics(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.AnalyticsResult, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID, req)
	}
	return &domain.AnalyticsResult{Granularity: domain.GranularityDaily, Insights: []domain.Insight{}}, nil
}

func (m *MockAnalyticsService) ComputeHealthScore(ctx context.Context, userID uuid.UUID, date string) (*domain.HealthScore, error) {
	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, userID, date)
	}
	return &domain.HealthScore{Date: date}, nil
}

// MockNarrativeService is a mock implementation of NarrativeService
type MockNarrativeService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.NarrativeResponse, error)
	feedbackFunc func(ctx context.Context, userID uuid.UUID, req *domain.FeedbackRequest) error
}

func (m *MockNarrativeService) Generate(ctx context.Context, userID uuid.UUID, req *domain.AnalyticsRequest) (*domain.NarrativeResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID, req)
	}
	return &domain.NarrativeResponse{Insights: []domain.Insight{}}, nil
}

func (m *MockNarrativeService) SubmitFeedback(ctx context.Context, userID uuid.UUID, req *domain.FeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, userID, req)
	}
	return nil
}

// withURLParams attaches chi URL params to the request.
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
