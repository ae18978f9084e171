package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/blaisecz/health-journal/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRepository stores daily records, one per user and date.
type RecordRepository interface {
	// Upsert inserts the record or replaces the content of the existing one for
	// the same user and date. It reports whether a new row was created.
	Upsert(ctx context.Context, record *domain.DailyRecord) (bool, error)
	GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error)
	// List returns up to limit+1 records ordered by date descending.
	List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) ([]domain.DailyRecord, error)
	// ListAllByUser returns the full history ordered by date ascending.
	ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.DailyRecord, error)
	Delete(ctx context.Context, userID uuid.UUID, date string) error
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) Upsert(ctx context.Context, record *domain.DailyRecord) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.DailyRecord
		err := tx.Where("user_id = ? AND date = ?", record.UserID, record.Date).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if record.ID == uuid.Nil {
				record.ID = uuid.New()
			}
			created = true
			return tx.Omit(clause.Associations).Create(record).Error
		case err != nil:
			return err
		}

		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		return tx.Omit(clause.Associations).Save(record).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *recordRepository) GetByDate(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyRecord, error) {
	var record domain.DailyRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *recordRepository) List(ctx context.Context, userID uuid.UUID, filter domain.RecordFilter) ([]domain.DailyRecord, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Order("id DESC")

	// ISO dates compare correctly as strings
	if filter.From != "" {
		query = query.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		query = query.Where("date <= ?", filter.To)
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query = query.Where(
				"(date < ?) OR (date = ? AND id < ?)",
				cursor.Date, cursor.Date, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var records []domain.DailyRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) ListAllByUser(ctx context.Context, userID uuid.UUID) ([]domain.DailyRecord, error) {
	var records []domain.DailyRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *recordRepository) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Delete(&domain.DailyRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
