package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
)

// series is an ordered date -> value association rebuilt on every call.
type series struct {
	keys   []string
	values map[string]float64
}

func newSeries() *series {
	return &series{values: make(map[string]float64)}
}

// add accumulates v under key. Repeated keys sum.
func (s *series) add(key string, v float64) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] += v
}

// touch registers key with a zero value if it is not present yet.
func (s *series) touch(key string) {
	s.add(key, 0)
}

func (s *series) has(key string) bool {
	_, ok := s.values[key]
	return ok
}

func (s *series) get(key string) float64 {
	return s.values[key]
}

func (s *series) sortedKeys() []string {
	keys := append([]string(nil), s.keys...)
	sort.Strings(keys)
	return keys
}

// points returns the series ascending by key.
func (s *series) points() []domain.TimeSeriesPoint {
	out := make([]domain.TimeSeriesPoint, 0, len(s.keys))
	for _, k := range s.sortedKeys() {
		out = append(out, domain.TimeSeriesPoint{Date: k, Value: s.values[k]})
	}
	return out
}

// Group buckets daily points by the requested granularity. Each bucket
// value is the mean of its points rounded to one decimal.
func Group(points []domain.TimeSeriesPoint, g domain.Granularity) []domain.TimeSeriesPoint {
	var keyOf func(time.Time) string
	switch g {
	case domain.GranularityWeekly:
		keyOf = weekKey
	case domain.GranularityMonthly:
		keyOf = monthKey
	default:
		return append(make([]domain.TimeSeriesPoint, 0, len(points)), points...)
	}

	sums := newSeries()
	counts := make(map[string]int)
	for _, p := range points {
		t, ok := ParseDate(p.Date)
		if !ok {
			continue
		}
		key := keyOf(t)
		sums.add(key, p.Value)
		counts[key]++
	}

	out := make([]domain.TimeSeriesPoint, 0, len(sums.keys))
	for _, k := range sums.sortedKeys() {
		out = append(out, domain.TimeSeriesPoint{Date: k, Value: round1(sums.get(k) / float64(counts[k]))})
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
