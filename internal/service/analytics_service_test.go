package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/health-journal/internal/analytics"
	"github.com/blaisecz/health-journal/internal/cache"
	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/metrics"
	"github.com/google/uuid"
)

var fixedToday = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func newAnalyticsFixture(t *testing.T, opts ...AnalyticsOption) (AnalyticsService, *MockRecordRepository, uuid.UUID) {
	t.Helper()
	users := NewMockUserRepository()
	userID := users.addUser()
	records := NewMockRecordRepository()

	opts = append([]AnalyticsOption{WithClock(func() time.Time { return fixedToday })}, opts...)
	svc := NewAnalyticsService(analytics.NewEngine(nil), records, users, opts...)
	return svc, records, userID
}

func TestAnalyticsService_ComputeAnalytics(t *testing.T) {
	svc, records, userID := newAnalyticsFixture(t)
	for _, r := range []domain.DailyRecord{
		{UserID: userID, Date: "2024-01-01", Period: &domain.PeriodEntry{Active: true}},
		{UserID: userID, Date: "2024-01-29", Period: &domain.PeriodEntry{Active: true}},
		{UserID: userID, Date: "2024-02-10", Symptoms: []string{"bloating"}, Meals: &domain.Meals{Evening: "pizza"}},
		{UserID: userID, Date: "2024-02-11", Symptoms: []string{"headache"}},
	} {
		records.put(r)
	}

	result, err := svc.ComputeAnalytics(context.Background(), userID, &domain.AnalyticsRequest{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-29",
	})
	if err != nil {
		t.Fatalf("ComputeAnalytics() error = %v", err)
	}

	if result.Granularity != domain.GranularityDaily {
		t.Errorf("granularity = %q, want daily", result.Granularity)
	}
	if len(result.SymptomsOverTime) != 2 {
		t.Errorf("window filter not applied: %+v", result.SymptomsOverTime)
	}
	// The forecast uses the full history, not the window.
	if result.CyclePrediction == nil || result.CyclePrediction.LastPeriodDate != "2024-01-29" {
		t.Fatalf("unexpected prediction %+v", result.CyclePrediction)
	}
	if result.CyclePrediction.NextPeriodDate != "2024-02-26" {
		t.Errorf("next period = %s, want 2024-02-26", result.CyclePrediction.NextPeriodDate)
	}
}

func TestAnalyticsService_EmptyHistoryAnchorsToday(t *testing.T) {
	svc, _, userID := newAnalyticsFixture(t)

	result, err := svc.ComputeAnalytics(context.Background(), userID, &domain.AnalyticsRequest{})
	if err != nil {
		t.Fatalf("ComputeAnalytics() error = %v", err)
	}
	if result.CyclePrediction.NextPeriodDate != "2024-03-29" || result.CyclePrediction.NextOvulationDate != "2024-03-15" {
		t.Errorf("unexpected prediction %+v", result.CyclePrediction)
	}
	if result.SymptomsData == nil || result.Insights == nil || result.CaloriesData == nil {
		t.Errorf("empty input must produce empty slices, got %+v", result)
	}
}

func TestAnalyticsService_Validation(t *testing.T) {
	svc, _, userID := newAnalyticsFixture(t)

	tests := []struct {
		name    string
		userID  uuid.UUID
		req     *domain.AnalyticsRequest
		wantErr error
	}{
		{"malformed start", userID, &domain.AnalyticsRequest{StartDate: "2024-1-1"}, domain.ErrInvalidInput},
		{"inverted range", userID, &domain.AnalyticsRequest{StartDate: "2024-03-01", EndDate: "2024-02-01"}, domain.ErrInvalidDateRange},
		{"bad granularity", userID, &domain.AnalyticsRequest{Granularity: "hourly"}, domain.ErrInvalidInput},
		{"unknown user", uuid.New(), &domain.AnalyticsRequest{}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ComputeAnalytics(context.Background(), tt.userID, tt.req); !errors.Is(err, tt.wantErr) {
				t.Fatalf("ComputeAnalytics() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalyticsService_ResultCache(t *testing.T) {
	recorder := NewMockRecorder()
	svc, records, userID := newAnalyticsFixture(t,
		WithResultCache(cache.NewMemoryCache(), time.Minute),
		WithRecorder(recorder),
	)
	records.put(domain.DailyRecord{UserID: userID, Date: "2024-02-10", Symptoms: []string{"gas"}})
	ctx := context.Background()
	req := &domain.AnalyticsRequest{Granularity: "weekly"}

	first, err := svc.ComputeAnalytics(ctx, userID, req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ComputeAnalytics(ctx, userID, req)
	if err != nil {
		t.Fatal(err)
	}
	if recorder.lookups[metrics.CacheMiss] != 1 || recorder.lookups[metrics.CacheHit] != 1 {
		t.Fatalf("unexpected cache lookups: %v", recorder.lookups)
	}
	if len(recorder.computes) != 1 {
		t.Fatalf("engine should run once, ran %d times", len(recorder.computes))
	}
	if len(first.SymptomsData) != len(second.SymptomsData) || second.SymptomsData[0].Name != "gas" {
		t.Errorf("cached result differs: %+v vs %+v", first.SymptomsData, second.SymptomsData)
	}

	// A changed record changes the fingerprint.
	records.put(domain.DailyRecord{UserID: userID, Date: "2024-02-11", Symptoms: []string{"bloating"}})
	third, err := svc.ComputeAnalytics(ctx, userID, req)
	if err != nil {
		t.Fatal(err)
	}
	if recorder.lookups[metrics.CacheMiss] != 2 || len(third.SymptomsData) != 2 {
		t.Fatalf("expected recompute after change, lookups=%v symptoms=%+v", recorder.lookups, third.SymptomsData)
	}
}

func TestAnalyticsService_RepositoryError(t *testing.T) {
	svc, records, userID := newAnalyticsFixture(t)
	records.err = errors.New("db down")

	if _, err := svc.ComputeAnalytics(context.Background(), userID, &domain.AnalyticsRequest{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestAnalyticsService_ComputeHealthScore(t *testing.T) {
	svc, records, userID := newAnalyticsFixture(t)
	records.put(domain.DailyRecord{
		UserID:    userID,
		Date:      "2024-02-10",
		Sleep:     &domain.SleepEntry{SleepDuration: 8},
		Activity:  []string{"walk", "yoga"},
		Hydration: &domain.HydrationEntry{Glasses: 8},
	})
	ctx := context.Background()

	score, err := svc.ComputeHealthScore(ctx, userID, "2024-02-10")
	if err != nil {
		t.Fatalf("ComputeHealthScore() error = %v", err)
	}
	if score.Total != 1 {
		t.Errorf("total = %v, want 1", score.Total)
	}

	empty, err := svc.ComputeHealthScore(ctx, userID, "2024-02-11")
	if err != nil {
		t.Fatalf("ComputeHealthScore() missing record error = %v", err)
	}
	if !empty.IsEmpty() || empty.Total != 0 || empty.Date != "2024-02-11" {
		t.Errorf("expected sentinel score, got %+v", empty)
	}

	if _, err := svc.ComputeHealthScore(ctx, userID, "not-a-date"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.ComputeHealthScore(ctx, uuid.New(), "2024-02-10"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
