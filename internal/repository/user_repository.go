package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// GetProfile returns nil without error when the user has no cycle profile.
	GetProfile(ctx context.Context, id uuid.UUID) (*domain.CycleProfile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, averageCycleLengthDays *int, isOnContinuousPill bool) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var found []uuid.UUID
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Limit(1).Pluck("id", &found).Error
	return len(found) > 0, err
}

// GetProfile reads only the profile columns. It still distinguishes a
// missing user (ErrNotFound) from a user without a profile (nil).
func (r *userRepository) GetProfile(ctx context.Context, id uuid.UUID) (*domain.CycleProfile, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Select("id", "average_cycle_length_days", "is_on_continuous_pill").
		Take(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, averageCycleLengthDays *int, isOnContinuousPill bool) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(profileColumns(averageCycleLengthDays, isOnContinuousPill))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// profileColumns uses a map so a nil cycle length is written as NULL
// instead of being skipped like a zero struct field.
func profileColumns(averageCycleLengthDays *int, isOnContinuousPill bool) map[string]any {
	return map[string]any{
		"average_cycle_length_days": averageCycleLengthDays,
		"is_on_continuous_pill":     isOnContinuousPill,
	}
}
