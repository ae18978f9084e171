package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.DailyRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRunAt_Idempotent(t *testing.T) {
	db := setupDB(t)
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	if err := RunAt(db, zerolog.Nop(), today, 42); err != nil {
		t.Fatalf("RunAt: %v", err)
	}

	var users, records int64
	db.Model(&domain.User{}).Count(&users)
	db.Model(&domain.DailyRecord{}).Count(&records)

	if users != int64(len(Users)) {
		t.Errorf("users = %d, want %d", users, len(Users))
	}
	if records == 0 || records > int64(len(Users)*seededDays) {
		t.Fatalf("records = %d, want within (0, %d]", records, len(Users)*seededDays)
	}

	if err := RunAt(db, zerolog.Nop(), today, 7); err != nil {
		t.Fatalf("second RunAt: %v", err)
	}
	var again int64
	db.Model(&domain.DailyRecord{}).Count(&again)
	if again < records {
		t.Errorf("second run lost records: %d < %d", again, records)
	}
	db.Model(&domain.User{}).Count(&users)
	if users != int64(len(Users)) {
		t.Errorf("second run duplicated users: %d", users)
	}
}

func TestRunAt_PillUserHasNoPeriods(t *testing.T) {
	db := setupDB(t)
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	if err := RunAt(db, zerolog.Nop(), today, 1); err != nil {
		t.Fatalf("RunAt: %v", err)
	}

	for _, u := range Users {
		var records []domain.DailyRecord
		if err := db.Where("user_id = ?", u.ID).Find(&records).Error; err != nil {
			t.Fatalf("find: %v", err)
		}
		periods := 0
		for _, r := range records {
			if r.IsPeriodActive() {
				periods++
			}
			if r.Date > "2024-03-31" || r.Date < "2024-01-02" {
				t.Errorf("record date %s outside seeded range", r.Date)
			}
		}
		if u.Pill && periods != 0 {
			t.Errorf("pill user %s has %d period days", u.ID, periods)
		}
		if !u.Pill && periods == 0 {
			t.Errorf("user %s has no period days", u.ID)
		}
	}
}

func TestRunAt_RerunKeepsExistingRecords(t *testing.T) {
	db := setupDB(t)
	today := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

	if err := RunAt(db, zerolog.Nop(), today, 42); err != nil {
		t.Fatalf("RunAt: %v", err)
	}
	var before []domain.DailyRecord
	db.Order("user_id, date").Find(&before)

	if err := RunAt(db, zerolog.Nop(), today, 42); err != nil {
		t.Fatalf("second RunAt with the same seed: %v", err)
	}
	var after []domain.DailyRecord
	db.Order("user_id, date").Find(&after)

	if len(after) != len(before) {
		t.Fatalf("records = %d after rerun, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i].ID != after[i].ID || before[i].Date != after[i].Date {
			t.Fatalf("record %d changed: %s/%s -> %s/%s", i, before[i].Date, before[i].ID, after[i].Date, after[i].ID)
		}
		if before[i].ID == uuid.Nil {
			t.Fatalf("record %s stored without an id", before[i].Date)
		}
	}
}
