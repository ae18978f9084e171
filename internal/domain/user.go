package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCycleLengthDays is used when a user has not configured a cycle profile.
const DefaultCycleLengthDays = 28

type User struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Timezone               string    `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	AverageCycleLengthDays *int      `gorm:"type:smallint" json:"average_cycle_length_days,omitempty"`
	IsOnContinuousPill     bool      `gorm:"not null;default:false" json:"is_on_continuous_pill"`
	CreatedAt              time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CycleProfile is the read-only cycle configuration consumed by the cycle predictor.
// @Description Menstrual cycle settings for a user.
type CycleProfile struct {
	// Average cycle length used as a fallback or, on continuous pill, as an override
	AverageCycleLengthDays int `json:"average_cycle_length_days" example:"28"`
	// User is on a hormonal regimen without natural cycling
	IsOnContinuousPill bool `json:"is_on_continuous_pill" example:"false"`
}

// Profile returns the user's cycle profile, or nil when none has been configured.
func (u *User) Profile() *CycleProfile {
	if u.AverageCycleLengthDays == nil && !u.IsOnContinuousPill {
		return nil
	}
	profile := &CycleProfile{IsOnContinuousPill: u.IsOnContinuousPill}
	if u.AverageCycleLengthDays != nil {
		profile.AverageCycleLengthDays = *u.AverageCycleLengthDays
	}
	return profile
}

// CreateUserRequest is the request body for creating a user
type CreateUserRequest struct {
	Timezone string `json:"timezone" validate:"required,timezone" example:"Europe/Prague"`
}

// UpdateProfileRequest is the request body for updating the cycle profile.
// @Description Cycle profile update payload.
type UpdateProfileRequest struct {
	// Average cycle length in days (pill regimens may use up to 120)
	AverageCycleLengthDays *int `json:"average_cycle_length_days" validate:"omitempty,min=15,max=120" example:"28"`
	// Whether the user takes a continuous hormonal pill
	IsOnContinuousPill *bool `json:"is_on_continuous_pill,omitempty" example:"false"`
}

// UserResponse is the response body for user endpoints
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Timezone  string        `json:"timezone"`
	Profile   *CycleProfile `json:"profile,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Timezone:  u.Timezone,
		Profile:   u.Profile(),
		CreatedAt: u.CreatedAt,
	}
}
