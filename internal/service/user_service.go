package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type UserService interface {
	Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// UpdateProfile replaces the average cycle length (nil clears it) and, when
	// provided, the continuous pill flag.
	UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Create(ctx context.Context, req *domain.CreateUserRequest) (*domain.User, error) {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", domain.ErrInvalidInput, req.Timezone)
	}

	user := &domain.User{ID: uuid.New(), Timezone: loc.String()}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UpdateProfileRequest) (*domain.User, error) {
	ctx, span := otel.Tracer("health-journal-api/users").Start(ctx, "UserService.UpdateProfile",
		trace.WithAttributes(attribute.String("user.id", id.String())),
	)
	defer span.End()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.AverageCycleLengthDays = req.AverageCycleLengthDays
	if req.IsOnContinuousPill != nil {
		user.IsOnContinuousPill = *req.IsOnContinuousPill
	}
	span.SetAttributes(attribute.Bool("profile.continuous_pill", user.IsOnContinuousPill))

	if err := s.repo.UpdateProfile(ctx, id, user.AverageCycleLengthDays, user.IsOnContinuousPill); err != nil {
		return nil, err
	}
	return user, nil
}
