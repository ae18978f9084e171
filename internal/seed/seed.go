// Package seed writes sample users with a few months of daily records.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const seededDays = 90

// User describes one seeded account.
type User struct {
	ID          uuid.UUID
	Timezone    string
	CycleLength int
	Pill        bool
}

// Users are the accounts written by Run. Their IDs are stable across runs.
var Users = []User{
	{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Timezone: "Europe/Prague", CycleLength: 28},
	{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), Timezone: "America/New_York", CycleLength: 31},
	{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Timezone: "Asia/Tokyo", CycleLength: 28, Pill: true},
}

var (
	breakfasts = []string{"oatmeal, banana, coffee", "2 eggs, toast", "yogurt, berries", "coffee"}
	lunches    = []string{"chicken, rice, salad", "pasta", "burger, fries", "soup, bread", "salmon, potatoes"}
	dinners    = []string{"pizza", "steak, broccoli", "curry, rice", "salad", "beans, tortilla", "milk, cereal"}
	activities = []string{"walking", "yoga", "running", "cycling", "gym"}
)

// Run seeds the database. It is safe to call more than once: existing users
// and records are left untouched.
func Run(db *gorm.DB, log zerolog.Logger) error {
	return RunAt(db, log, time.Now().UTC(), time.Now().UnixNano())
}

// RunAt seeds records ending at today using a deterministic random source.
func RunAt(db *gorm.DB, log zerolog.Logger, today time.Time, seed int64) error {
	rng := rand.New(rand.NewSource(seed))

	for _, u := range Users {
		length := u.CycleLength
		user := domain.User{
			ID:                     u.ID,
			Timezone:               u.Timezone,
			AverageCycleLengthDays: &length,
			IsOnContinuousPill:     u.Pill,
		}
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}

		created, err := seedRecordsForUser(db, u, today, rng)
		if err != nil {
			return err
		}
		log.Info().
			Str("user_id", u.ID.String()).
			Str("timezone", u.Timezone).
			Int("records", created).
			Msg("seeded user")
	}

	log.Info().Int("users", len(Users)).Int("days", seededDays).Msg("seed completed")
	return nil
}

func seedRecordsForUser(db *gorm.DB, u User, today time.Time, rng *rand.Rand) (int, error) {
	created := 0
	// Period starts drift by a day or two around the configured length.
	periodDay := rng.Intn(u.CycleLength)

	for i := seededDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(domain.DateLayout)

		// Skip roughly one day in ten to leave realistic gaps.
		if rng.Float32() < 0.1 {
			periodDay = (periodDay + 1) % u.CycleLength
			continue
		}

		record := buildRecord(u, date, periodDay, rng)
		periodDay = (periodDay + 1) % u.CycleLength

		// record.ID stays zero so the lookup is by (user_id, date) only; the
		// id is assigned through Attrs when the row is actually created.
		result := db.Where("user_id = ? AND date = ?", u.ID, date).
			Attrs(domain.DailyRecord{ID: uuid.New()}).
			Omit("User").
			FirstOrCreate(&record)
		if result.Error != nil {
			return created, fmt.Errorf("failed to create record %s for user %s: %w", date, u.ID, result.Error)
		}
		created += int(result.RowsAffected)
	}
	return created, nil
}

func buildRecord(u User, date string, periodDay int, rng *rand.Rand) domain.DailyRecord {
	dinner := dinners[rng.Intn(len(dinners))]
	record := domain.DailyRecord{
		UserID: u.ID,
		Date:   date,
		Meals: &domain.Meals{
			Morning:   breakfasts[rng.Intn(len(breakfasts))],
			Afternoon: lunches[rng.Intn(len(lunches))],
			Evening:   dinner,
		},
		Hydration: &domain.HydrationEntry{Glasses: 3 + rng.Intn(7)},
	}

	sleepHours := 5.5 + rng.Float64()*3.5
	record.Sleep = &domain.SleepEntry{
		SleepDuration: float64(int(sleepHours*10)) / 10,
		SleepQuality:  3 + rng.Intn(8),
	}

	if rng.Float32() < 0.6 {
		record.Activity = []string{activities[rng.Intn(len(activities))]}
		record.ActivityMinutes = 15 + rng.Intn(60)
	}

	// Roughly half the days carry an explicit calorie count.
	if rng.Float32() < 0.5 {
		record.Nutrition = &domain.NutritionEntry{TotalCalories: 1600 + rng.Intn(1000)}
	}

	var symptoms []string
	// Dairy and pizza dinners usually upset digestion.
	if (dinner == "pizza" || dinner == "milk, cereal") && rng.Float32() < 0.75 {
		symptoms = append(symptoms, "bloating")
	}
	if dinner == "beans, tortilla" && rng.Float32() < 0.5 {
		symptoms = append(symptoms, "gas")
	}
	if sleepHours < 6.5 && rng.Float32() < 0.5 {
		symptoms = append(symptoms, "headache", "fatigue")
	}

	if !u.Pill && periodDay < 5 {
		record.Period = &domain.PeriodEntry{Active: true}
		if rng.Float32() < 0.7 {
			symptoms = append(symptoms, "cramps")
		}
	}
	record.Symptoms = symptoms

	return record
}
