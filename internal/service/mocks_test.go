package service

import (
	"context"
	"sort"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/langfuse"
	"github.com/google/uuid"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.CycleProfile, error) {
	user, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, averageCycleLengthDays *int, isOnContinuousPill bool) error {
	if m.err != nil {
		return m.err
	}
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	user.AverageCycleLengthDays = averageCycleLengthDays
	user.IsOnContinuousPill = isOnContinuousPill
	return nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// addUser registers a user and returns its ID.
func (m *MockUserRepository) addUser() uuid.UUID {
	id := uuid.New()
	m.users[id] = &domain.User{ID: id, Timezone: "UTC"}
	return id
}

// MockRecordRepository is a mock implementation of RecordRepository keyed by user and date.
type MockRecordRepository struct {
	records    map[string]*domain.DailyRecord
	listResult []domain.DailyRecord
	listCalls  int
	err        error
}

func NewMockRecordRepository() *MockRecordRepository {
	return &MockRecordRepository{
		records: make(map[string]*domain.DailyRecord),
	}
}

func recordKey(userID uuid.UUID, date string) string {
	return userID.String() + ":" + date
}

func (m *MockRecordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	key := recordKey(record.UserID, record.Date)
	existing, ok := m.records[key]
	if ok {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = uuid.New()
		record.CreatedAt = time.Now()
	}
	record.UpdatedAt = time.Now()
	stored := *record
	m.records[key] = &stored
	return !ok, nil
}

func (m *MockRecordRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	record, ok := m.records[recordKey(userID, date)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return record, nil
}

func (m *MockRecordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) ([]domain.DailyRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.listResult != nil {
		result := make([]domain.DailyRecord, len(m.listResult))
		copy(result, m.listResult)
		return result, nil
	}
	var result []domain.DailyRecord
	for _, r := range m.records {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date > result[j].Date })
	return result, nil
}

func (m *MockRecordRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.DailyRecord, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.DailyRecord
	for _, r := range m.records {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result, nil
}

func (m *MockRecordRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	if m.err != nil {
		return m.err
	}
	key := recordKey(userID, date)
	if _, ok := m.records[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.records, key)
	return nil
}

// put stores a record as-is, bypassing Upsert.
func (m *MockRecordRepository) put(record domain.DailyRecord) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.records[recordKey(record.UserID, record.Date)] = &record
}

// MockNarrativeLLM returns a canned narrative and captures the context it received.
type MockNarrativeLLM struct {
	output *domain.NarrativeOutput
	err    error
	got    *domain.NarrativeContext
}

func (m *MockNarrativeLLM) GenerateNarrative(ctx context.Context, narrativeCtx *domain.NarrativeContext) (*domain.NarrativeOutput, error) {
	m.got = narrativeCtx
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

// MockLangfuseClient records traces and scores in memory.
type MockLangfuseClient struct {
	enabled  bool
	traceErr error
	scoreErr error
	traces   []langfuse.TraceInput
	scores   []langfuse.ScoreInput
}

func (m *MockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	if !m.enabled {
		return "", nil
	}
	m.traces = append(m.traces, in)
	id := in.ID
	if id == "" {
		id = "trace-" + uuid.NewString()
	}
	return id, m.traceErr
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scores = append(m.scores, in)
	return m.scoreErr
}

// MockRecorder counts metric observations.
type MockRecorder struct {
	computes []string
	lookups  map[string]int
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{lookups: make(map[string]int)}
}

func (m *MockRecorder) ObserveCompute(operation string, d time.Duration, records int) {
	m.computes = append(m.computes, operation)
}

func (m *MockRecorder) CacheLookup(result string) {
	m.lookups[result]++
}
