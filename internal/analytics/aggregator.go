package analytics

import (
	"sort"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
)

// Aggregates are the daily series derived from a record set.
type Aggregates struct {
	SymptomsOverTime     []domain.TimeSeriesPoint
	DigestiveIssuesTrend []domain.TimeSeriesPoint
	PeriodSymptoms       domain.PeriodSymptomsSeries
	CaloriesPerDay       []domain.TimeSeriesPoint
	SymptomFrequency     []domain.NameCount
}

// Aggregator buckets records by date into numeric series.
type Aggregator struct {
	digestive KeywordMatcher
	calories  *CaloriesEstimator
}

func NewAggregator(digestive KeywordMatcher, calories *CaloriesEstimator) *Aggregator {
	return &Aggregator{digestive: digestive, calories: calories}
}

// Aggregate builds the daily series. Records with a malformed date are skipped
// and records sharing a date accumulate.
func (a *Aggregator) Aggregate(records []domain.DailyRecord) Aggregates {
	symptoms := newSeries()
	digestive := newSeries()
	withPeriod := newSeries()
	withoutPeriod := newSeries()
	calories := newSeries()
	freq := newCounter()

	for i := range records {
		r := &records[i]
		if !ValidDate(r.Date) {
			continue
		}

		n := float64(len(r.Symptoms))
		symptoms.add(r.Date, n)
		digestive.add(r.Date, float64(a.digestive.Count(r.Symptoms)))
		if r.IsPeriodActive() {
			withPeriod.add(r.Date, n)
		} else {
			withoutPeriod.add(r.Date, n)
		}

		if kcal, ok := a.dayCalories(r); ok {
			calories.add(r.Date, float64(kcal))
		}

		for _, s := range r.Symptoms {
			freq.inc(normalizeTag(s))
		}
	}

	return Aggregates{
		SymptomsOverTime:     symptoms.points(),
		DigestiveIssuesTrend: digestive.points(),
		PeriodSymptoms:       alignPeriodSeries(withPeriod, withoutPeriod),
		CaloriesPerDay:       calories.points(),
		SymptomFrequency:     freq.top(0),
	}
}

// dayCalories prefers logged nutrition over the meal estimate.
func (a *Aggregator) dayCalories(r *domain.DailyRecord) (int, bool) {
	if r.Nutrition != nil && r.Nutrition.TotalCalories > 0 {
		return r.Nutrition.TotalCalories, true
	}
	if r.Meals.IsEmpty() {
		return 0, false
	}
	return a.calories.EstimateMeals(r.Meals), true
}

// alignPeriodSeries projects both sides onto the sorted union of their dates.
func alignPeriodSeries(with, without *series) domain.PeriodSymptomsSeries {
	union := newSeries()
	for _, k := range with.keys {
		union.touch(k)
	}
	for _, k := range without.keys {
		union.touch(k)
	}

	keys := union.sortedKeys()
	out := domain.PeriodSymptomsSeries{
		WithPeriod:    make([]domain.TimeSeriesPoint, 0, len(keys)),
		WithoutPeriod: make([]domain.TimeSeriesPoint, 0, len(keys)),
	}
	for _, k := range keys {
		out.WithPeriod = append(out.WithPeriod, domain.TimeSeriesPoint{Date: k, Value: with.get(k)})
		out.WithoutPeriod = append(out.WithoutPeriod, domain.TimeSeriesPoint{Date: k, Value: without.get(k)})
	}
	return out
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// counter tallies names and remembers first-seen order for stable ranking.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) inc(name string) {
	if name == "" {
		return
	}
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// top returns names by descending count, ties in first-seen order.
// A limit of zero or less returns everything.
func (c *counter) top(limit int) []domain.NameCount {
	out := make([]domain.NameCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, domain.NameCount{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
