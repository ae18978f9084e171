package domain

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO calendar date format used for record keys.
const DateLayout = "2006-01-02"

// SleepEntry describes one night of sleep.
// @Description Sleep details for a day.
type SleepEntry struct {
	// Bed time in local HH:MM
	BedTime string `json:"bed_time,omitempty" validate:"omitempty,clock" example:"23:15"`
	// Wake time in local HH:MM
	WakeTime string `json:"wake_time,omitempty" validate:"omitempty,clock" example:"07:05"`
	// Subjective quality from 1 (poor) to 10 (excellent)
	SleepQuality int `json:"sleep_quality,omitempty" validate:"omitempty,min=1,max=10" example:"7"`
	// Duration in hours; derived from bed/wake time when omitted
	SleepDuration float64 `json:"sleep_duration,omitempty" validate:"omitempty,min=0,max=24" example:"7.8"`
}

// Meals holds comma-joined free-text food names per meal slot.
// @Description Meals eaten during the day.
type Meals struct {
	Morning   string `json:"morning,omitempty" example:"oatmeal, banana, coffee"`
	Afternoon string `json:"afternoon,omitempty" example:"2 eggs, salad"`
	Evening   string `json:"evening,omitempty" example:"pizza"`
	Snack     string `json:"snack,omitempty" example:"apple"`
}

// Slots returns the meal slots in a fixed order.
func (m *Meals) Slots() []string {
	if m == nil {
		return nil
	}
	return []string{m.Morning, m.Afternoon, m.Evening, m.Snack}
}

// IsEmpty reports whether no meal slot has content.
func (m *Meals) IsEmpty() bool {
	if m == nil {
		return true
	}
	return m.Morning == "" && m.Afternoon == "" && m.Evening == "" && m.Snack == ""
}

type PeriodEntry struct {
	Active bool `json:"active" example:"true"`
}

type NutritionEntry struct {
	TotalCalories int `json:"total_calories" validate:"min=0,max=20000" example:"2150"`
}

type HydrationEntry struct {
	Glasses int `json:"glasses" validate:"min=0,max=50" example:"6"`
}

// DailyRecord is one journal entry for a user and calendar date.
type DailyRecord struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_daily_records_user_date" json:"user_id"`
	Date            string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_records_user_date" json:"date"`
	Sleep           *SleepEntry     `gorm:"serializer:json" json:"sleep,omitempty"`
	Meals           *Meals          `gorm:"serializer:json" json:"meals,omitempty"`
	Activity        []string        `gorm:"serializer:json" json:"activity,omitempty"`
	ActivityMinutes int             `gorm:"not null;default:0" json:"activity_minutes,omitempty"`
	Symptoms        []string        `gorm:"serializer:json" json:"symptoms,omitempty"`
	Period          *PeriodEntry    `gorm:"serializer:json" json:"period,omitempty"`
	Nutrition       *NutritionEntry `gorm:"serializer:json" json:"nutrition,omitempty"`
	Hydration       *HydrationEntry `gorm:"serializer:json" json:"hydration,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (DailyRecord) TableName() string {
	return "daily_records"
}

// IsPeriodActive reports whether the record marks a period day.
func (r *DailyRecord) IsPeriodActive() bool {
	return r.Period != nil && r.Period.Active
}

// HasData reports whether the record carries any logged metric.
func (r *DailyRecord) HasData() bool {
	return r.Sleep != nil ||
		!r.Meals.IsEmpty() ||
		len(r.Activity) > 0 ||
		r.ActivityMinutes > 0 ||
		len(r.Symptoms) > 0 ||
		r.Period != nil ||
		r.Nutrition != nil ||
		r.Hydration != nil
}

// UpsertRecordRequest is the request body for writing a daily record.
// @Description Daily journal entry. The date comes from the URL.
type UpsertRecordRequest struct {
	Sleep           *SleepEntry     `json:"sleep,omitempty" validate:"omitempty"`
	Meals           *Meals          `json:"meals,omitempty"`
	Activity        []string        `json:"activity,omitempty" validate:"omitempty,max=20,dive,required,max=80" example:"[\"walking\",\"yoga\"]"`
	ActivityMinutes int             `json:"activity_minutes,omitempty" validate:"min=0,max=1440" example:"45"`
	Symptoms        []string        `json:"symptoms,omitempty" validate:"omitempty,max=30,dive,required,max=80" example:"[\"bloating\",\"headache\"]"`
	Period          *PeriodEntry    `json:"period,omitempty"`
	Nutrition       *NutritionEntry `json:"nutrition,omitempty" validate:"omitempty"`
	Hydration       *HydrationEntry `json:"hydration,omitempty" validate:"omitempty"`
}

// RecordResponse is the response body for record endpoints.
type RecordResponse struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	Date            string          `json:"date" example:"2024-01-15"`
	Sleep           *SleepEntry     `json:"sleep,omitempty"`
	Meals           *Meals          `json:"meals,omitempty"`
	Activity        []string        `json:"activity"`
	ActivityMinutes int             `json:"activity_minutes"`
	Symptoms        []string        `json:"symptoms"`
	Period          *PeriodEntry    `json:"period,omitempty"`
	Nutrition       *NutritionEntry `json:"nutrition,omitempty"`
	Hydration       *HydrationEntry `json:"hydration,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (r *DailyRecord) ToResponse() RecordResponse {
	activity := r.Activity
	if activity == nil {
		activity = []string{}
	}
	symptoms := r.Symptoms
	if symptoms == nil {
		symptoms = []string{}
	}
	return RecordResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		Date:            r.Date,
		Sleep:           r.Sleep,
		Meals:           r.Meals,
		Activity:        activity,
		ActivityMinutes: r.ActivityMinutes,
		Symptoms:        symptoms,
		Period:          r.Period,
		Nutrition:       r.Nutrition,
		Hydration:       r.Hydration,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RecordListResponse is the response body for listing records.
// @Description Paginated list of daily records, newest first.
type RecordListResponse struct {
	Data       []RecordResponse   `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6IjU1MGU4NDAwLWUyOWItNDFkNC1hNzE2LTQ0NjY1NTQ0MDAwMCJ9"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// RecordFilter contains filter parameters for listing records.
// From and To are inclusive ISO dates.
type RecordFilter struct {
	From   string
	To     string
	Limit  int
	Cursor string
}
