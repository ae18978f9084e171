package analytics

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
)

// foodDay is the set of foods and symptoms logged on one calendar date.
type foodDay struct {
	date      string
	foods     []string
	symptoms  []string
	digestive bool
}

func (d *foodDay) hasFood(food string) bool {
	return slices.Contains(d.foods, food)
}

// CorrelationEngine relates foods to the symptoms logged on the same day.
type CorrelationEngine struct {
	digestive          KeywordMatcher
	topFoods           int
	topSymptomsPerFood int
	matrixFoods        int
	matrixSymptoms     int
}

func NewCorrelationEngine(cfg *Config, digestive KeywordMatcher) *CorrelationEngine {
	return &CorrelationEngine{
		digestive:          digestive,
		topFoods:           cfg.Correlation.TopFoods,
		topSymptomsPerFood: cfg.Correlation.TopSymptomsPerFood,
		matrixFoods:        cfg.Correlation.MatrixFoods,
		matrixSymptoms:     cfg.Correlation.MatrixSymptoms,
	}
}

// days merges records by date and returns them ascending. Foods and symptoms
// are sets per day, kept in first-seen order.
func (c *CorrelationEngine) days(records []domain.DailyRecord) []*foodDay {
	byDate := make(map[string]*foodDay)
	for i := range records {
		r := &records[i]
		if !ValidDate(r.Date) {
			continue
		}
		day, ok := byDate[r.Date]
		if !ok {
			day = &foodDay{date: r.Date}
			byDate[r.Date] = day
		}
		for _, slot := range r.Meals.Slots() {
			for _, item := range ParseFoodItems(slot) {
				food := strings.ToLower(strings.TrimSpace(item.Name))
				if food == "" || food == fastingItem || day.hasFood(food) {
					continue
				}
				day.foods = append(day.foods, food)
			}
		}
		for _, s := range r.Symptoms {
			s = normalizeTag(s)
			if s == "" || slices.Contains(day.symptoms, s) {
				continue
			}
			day.symptoms = append(day.symptoms, s)
		}
	}

	out := make([]*foodDay, 0, len(byDate))
	for _, day := range byDate {
		day.digestive = c.digestive.Any(day.symptoms)
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date < out[j].date })
	return out
}

// foodCounts tallies occurrence days per food in first-appearance order.
func foodCounts(days []*foodDay) *counter {
	c := newCounter()
	for _, day := range days {
		for _, food := range day.foods {
			c.inc(food)
		}
	}
	return c
}

// Correlate returns, per food, the share of its days that logged a digestive
// symptom. Sorted descending, ties in first-appearance order.
func (c *CorrelationEngine) Correlate(records []domain.DailyRecord) []domain.FoodCorrelation {
	days := c.days(records)
	totals := foodCounts(days)
	withDigestive := make(map[string]int)
	for _, day := range days {
		if !day.digestive {
			continue
		}
		for _, food := range day.foods {
			withDigestive[food]++
		}
	}

	out := make([]domain.FoodCorrelation, 0, len(totals.order))
	for _, food := range totals.order {
		total := max(1, totals.counts[food])
		pct := int(math.Round(100 * float64(withDigestive[food]) / float64(total)))
		out = append(out, domain.FoodCorrelation{Name: food, CorrelationPct: pct})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CorrelationPct > out[j].CorrelationPct })
	if len(out) > c.topFoods {
		out = out[:c.topFoods]
	}
	return out
}

// Detail lists the symptoms most often logged on each food's days.
func (c *CorrelationEngine) Detail(records []domain.DailyRecord) map[string]domain.FoodSymptomDetail {
	days := c.days(records)
	perFood := make(map[string]*counter)
	for _, day := range days {
		for _, food := range day.foods {
			cnt, ok := perFood[food]
			if !ok {
				cnt = newCounter()
				perFood[food] = cnt
			}
			for _, s := range day.symptoms {
				cnt.inc(s)
			}
		}
	}

	out := make(map[string]domain.FoodSymptomDetail, len(perFood))
	for food, cnt := range perFood {
		out[food] = domain.FoodSymptomDetail{Food: food, Symptoms: cnt.top(c.topSymptomsPerFood)}
	}
	return out
}

// Matrix builds a co-occurrence grid of the most frequent foods against the
// first distinct symptoms seen. Cells count days.
func (c *CorrelationEngine) Matrix(records []domain.DailyRecord) domain.FoodSymptomMatrix {
	days := c.days(records)

	foods := make([]string, 0, c.matrixFoods)
	for _, nc := range foodCounts(days).top(c.matrixFoods) {
		foods = append(foods, nc.Name)
	}

	symptoms := make([]string, 0, c.matrixSymptoms)
	for _, day := range days {
		for _, s := range day.symptoms {
			if len(symptoms) == c.matrixSymptoms {
				break
			}
			if !slices.Contains(symptoms, s) {
				symptoms = append(symptoms, s)
			}
		}
	}

	counts := make([][]int, len(foods))
	for i, food := range foods {
		counts[i] = make([]int, len(symptoms))
		for _, day := range days {
			if !day.hasFood(food) {
				continue
			}
			for j, s := range symptoms {
				if slices.Contains(day.symptoms, s) {
					counts[i][j]++
				}
			}
		}
	}
	return domain.FoodSymptomMatrix{Foods: foods, Symptoms: symptoms, Counts: counts}
}

// FoodFrequency ranks foods by the number of days they were eaten.
func (c *CorrelationEngine) FoodFrequency(records []domain.DailyRecord) []domain.NameCount {
	return foodCounts(c.days(records)).top(c.topFoods)
}
