package analytics

import (
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
)

// ParseDate parses a strict YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil || t.Format(domain.DateLayout) != s {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate reports whether s is a well-formed calendar date.
func ValidDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// dateOnly drops the clock and zone so day arithmetic is exact.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(dateOnly(to).Sub(dateOnly(from)).Hours() / 24)
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Window is an inclusive date range. An empty bound is open.
type Window struct {
	Start string
	End   string
}

// Contains reports whether a well-formed date falls inside the window.
func (w Window) Contains(date string) bool {
	if !ValidDate(date) {
		return false
	}
	if w.Start != "" && date < w.Start {
		return false
	}
	if w.End != "" && date > w.End {
		return false
	}
	return true
}

// Filter returns the records whose date lies in the window. Malformed dates are dropped.
func (w Window) Filter(records []domain.DailyRecord) []domain.DailyRecord {
	out := make([]domain.DailyRecord, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}
