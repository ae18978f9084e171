package analytics

import (
	"strconv"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
)

// ScoreRecord converts one record into banded sub-scores and their mean.
// A record without any data yields the empty sentinel.
func ScoreRecord(r *domain.DailyRecord) domain.HealthScore {
	if r == nil {
		return domain.HealthScore{}
	}
	if !r.HasData() {
		return domain.HealthScore{Date: r.Date}
	}

	b := domain.ScoreBreakdown{
		Sleep:     sleepScore(SleepHours(r.Sleep)),
		Symptoms:  symptomScore(len(r.Symptoms)),
		Activity:  activityScore(len(r.Activity)),
		Hydration: hydrationScore(glasses(r.Hydration)),
	}
	total := (b.Sleep + b.Symptoms + b.Activity + b.Hydration) / 4

	return domain.HealthScore{
		Date:      r.Date,
		Total:     round2(total),
		Breakdown: b,
	}
}

func sleepScore(hours float64) float64 {
	switch {
	case hours >= 7 && hours <= 9:
		return 1.0
	case hours >= 6 && hours <= 10:
		return 0.7
	default:
		return 0.3
	}
}

func symptomScore(n int) float64 {
	switch {
	case n == 0:
		return 1.0
	case n <= 2:
		return 0.7
	case n <= 4:
		return 0.4
	default:
		return 0.2
	}
}

func activityScore(n int) float64 {
	switch {
	case n >= 2:
		return 1.0
	case n >= 1:
		return 0.7
	default:
		return 0.3
	}
}

func hydrationScore(n int) float64 {
	switch {
	case n >= 8:
		return 1.0
	case n >= 6:
		return 0.7
	case n >= 4:
		return 0.4
	default:
		return 0.2
	}
}

func glasses(h *domain.HydrationEntry) int {
	if h == nil {
		return 0
	}
	return h.Glasses
}

// SleepHours returns the logged duration, or derives it from bed and wake
// time. A wake time earlier than the bed time crosses midnight.
func SleepHours(s *domain.SleepEntry) float64 {
	if s == nil {
		return 0
	}
	if s.SleepDuration > 0 {
		return s.SleepDuration
	}
	bed, okBed := clockMinutes(s.BedTime)
	wake, okWake := clockMinutes(s.WakeTime)
	if !okBed || !okWake {
		return 0
	}
	minutes := wake - bed
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return round2(float64(minutes) / 60)
}

// clockMinutes parses HH:MM into minutes after midnight.
func clockMinutes(s string) (int, bool) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return 0, false
	}
	return h*60 + m, true
}
