package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/google/uuid"
)

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name    string
		tz      string
		wantTZ  string
		wantErr error
	}{
		{"named zone", "Europe/Budapest", "Europe/Budapest", nil},
		{"utc", "UTC", "UTC", nil},
		{"empty means utc", "", "UTC", nil},
		{"unknown zone", "Mars/Olympus", "", domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockUserRepository()
			svc := NewUserService(repo)

			user, err := svc.Create(context.Background(), &domain.CreateUserRequest{Timezone: tt.tz})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(repo.users) != 0 {
					t.Error("rejected user should not be stored")
				}
				return
			}
			if user.Timezone != tt.wantTZ {
				t.Errorf("Create() timezone = %q, want %q", user.Timezone, tt.wantTZ)
			}
			if user.ID == uuid.Nil {
				t.Error("Create() user ID should not be nil")
			}
		})
	}
}

func TestUserService_GetByID(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo)

	// Create a user first
	req := &domain.CreateUserRequest{Timezone: "America/New_York"}
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	tests := []struct {
		name    string
		id      uuid.UUID
		wantErr error
	}{
		{
			name:    "existing user",
			id:      created.ID,
			wantErr: nil,
		},
		{
			name:    "non-existing user",
			id:      uuid.New(),
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := svc.GetByID(context.Background(), tt.id)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetByID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr == nil && user == nil {
				t.Error("GetByID() returned nil user for existing ID")
			}
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	repo := NewMockUserRepository()
	svc := NewUserService(repo)
	id := repo.addUser()

	length := 35
	pill := true
	user, err := svc.UpdateProfile(context.Background(), id, &domain.UpdateProfileRequest{
		AverageCycleLengthDays: &length,
		IsOnContinuousPill:     &pill,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	profile := user.Profile()
	if profile == nil || profile.AverageCycleLengthDays != 35 || !profile.IsOnContinuousPill {
		t.Fatalf("UpdateProfile() profile = %+v", profile)
	}

	// Omitting the pill flag keeps it; a nil length clears it.
	user, err = svc.UpdateProfile(context.Background(), id, &domain.UpdateProfileRequest{})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if user.AverageCycleLengthDays != nil || !user.IsOnContinuousPill {
		t.Fatalf("unexpected user after partial update: %+v", user)
	}
	if stored := repo.users[id]; stored.AverageCycleLengthDays != nil || !stored.IsOnContinuousPill {
		t.Fatalf("repository not updated: %+v", stored)
	}

	if _, err := svc.UpdateProfile(context.Background(), uuid.New(), &domain.UpdateProfileRequest{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
