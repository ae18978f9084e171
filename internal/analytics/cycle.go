package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
)

// runBreakDays is the number of period-free days that starts a new period
// when runs are collapsed.
const runBreakDays = 5

// CyclePredictor forecasts the next period and ovulation from the full history.
type CyclePredictor struct {
	defaultLength   int
	ovulationOffset int
	maxGap          int
	gapWindow       int
	collapseRuns    bool
}

func NewCyclePredictor(cfg *Config) *CyclePredictor {
	return &CyclePredictor{
		defaultLength:   cfg.Cycle.DefaultLengthDays,
		ovulationOffset: cfg.Cycle.OvulationOffsetDays,
		maxGap:          cfg.Cycle.MaxGapDays,
		gapWindow:       cfg.Cycle.GapWindow,
		collapseRuns:    cfg.Cycle.CollapsePeriodRuns,
	}
}

// Predict returns the forecast. A nil profile means defaults. With no period
// history the forecast is anchored at today.
//
// By default gaps are measured between consecutive period days, not period
// start dates, so a multi-day bleed contributes 1-day gaps; set
// cycle.collapse_period_runs to measure between starts instead.
func (p *CyclePredictor) Predict(records []domain.DailyRecord, profile *domain.CycleProfile, today time.Time) domain.CyclePrediction {
	days := periodDays(records)
	if p.collapseRuns {
		days = collapseRuns(days)
	}

	length := p.cycleLength(days, profile)

	anchor := dateOnly(today)
	var pred domain.CyclePrediction
	if n := len(days); n > 0 {
		anchor = days[n-1]
		pred.LastPeriodDate = formatDate(anchor)
		if n >= 2 {
			expected := days[n-2].AddDate(0, 0, length)
			lateness := daysBetween(expected, days[n-1])
			pred.LatenessDays = &lateness
		}
	}

	next := anchor.AddDate(0, 0, length)
	pred.NextPeriodDate = formatDate(next)
	pred.NextOvulationDate = formatDate(next.AddDate(0, 0, -p.ovulationOffset))
	pred.CycleLengthDays = length
	return pred
}

func (p *CyclePredictor) cycleLength(days []time.Time, profile *domain.CycleProfile) int {
	fallback := p.defaultLength
	if profile != nil && profile.AverageCycleLengthDays > 0 {
		fallback = profile.AverageCycleLengthDays
	}
	if profile != nil && profile.IsOnContinuousPill {
		return fallback
	}

	var gaps []int
	for i := 1; i < len(days); i++ {
		gap := daysBetween(days[i-1], days[i])
		if gap > 0 && gap <= p.maxGap {
			gaps = append(gaps, gap)
		}
	}
	if len(gaps) == 0 {
		return fallback
	}
	if len(gaps) > p.gapWindow {
		gaps = gaps[len(gaps)-p.gapWindow:]
	}

	sum := 0
	for _, g := range gaps {
		sum += g
	}
	return int(math.Round(float64(sum) / float64(len(gaps))))
}

// periodDays returns the distinct period-active dates ascending.
func periodDays(records []domain.DailyRecord) []time.Time {
	seen := make(map[string]bool)
	var days []time.Time
	for i := range records {
		r := &records[i]
		if !r.IsPeriodActive() || seen[r.Date] {
			continue
		}
		t, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		seen[r.Date] = true
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// collapseRuns keeps only the first day of each period.
func collapseRuns(days []time.Time) []time.Time {
	var starts []time.Time
	for i, day := range days {
		if i == 0 || daysBetween(days[i-1], day)-1 >= runBreakDays {
			starts = append(starts, day)
		}
	}
	return starts
}

// historyDays counts distinct well-formed dates.
func historyDays(records []domain.DailyRecord) int {
	seen := make(map[string]bool)
	for _, r := range records {
		if ValidDate(r.Date) {
			seen[r.Date] = true
		}
	}
	return len(seen)
}
