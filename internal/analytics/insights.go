package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
)

// InsightInput carries the aggregated outputs the insight rules read.
type InsightInput struct {
	Correlations   []domain.FoodCorrelation
	Calories       []domain.TimeSeriesPoint // grouped by Granularity
	Granularity    domain.Granularity
	DigestiveDaily []domain.TimeSeriesPoint
	PeriodSymptoms domain.PeriodSymptomsSeries
	Prediction     *domain.CyclePrediction
	HistoryDays    int
}

// InsightComposer turns aggregates into threshold-gated statements.
type InsightComposer struct {
	correlationPct     int
	minCorrelatedFoods int
	minSeriesPoints    int
	stableDelta        float64
	minPeriodSymptoms  int
	minCycleDays       int
}

func NewInsightComposer(cfg *Config) *InsightComposer {
	return &InsightComposer{
		correlationPct:     cfg.Insights.CorrelationPct,
		minCorrelatedFoods: cfg.Insights.MinCorrelatedFoods,
		minSeriesPoints:    cfg.Insights.MinSeriesPoints,
		stableDelta:        cfg.Insights.StableCalorieDelta,
		minPeriodSymptoms:  cfg.Insights.MinPeriodSymptoms,
		minCycleDays:       cfg.Insights.MinCycleDays,
	}
}

// Compose evaluates every rule in a fixed order. Each rule is gated independently.
func (c *InsightComposer) Compose(in InsightInput) []domain.Insight {
	rules := []func(InsightInput) (domain.Insight, bool){
		c.foodCorrelation,
		c.calorieTrend,
		c.digestiveFrequency,
		c.symptomsVsPeriod,
		c.cyclePrediction,
	}

	out := make([]domain.Insight, 0, len(rules))
	for _, rule := range rules {
		if insight, ok := rule(in); ok {
			out = append(out, insight)
		}
	}
	return out
}

func (c *InsightComposer) foodCorrelation(in InsightInput) (domain.Insight, bool) {
	var foods []string
	for _, fc := range in.Correlations {
		if fc.CorrelationPct >= c.correlationPct {
			foods = append(foods, fmt.Sprintf("%s (%d%%)", fc.Name, fc.CorrelationPct))
		}
	}
	if len(foods) < c.minCorrelatedFoods {
		return domain.Insight{}, false
	}
	return domain.Insight{
		Title: "Food and digestion",
		Text:  fmt.Sprintf("Digestive symptoms often show up on days you eat %s.", strings.Join(foods, ", ")),
	}, true
}

func (c *InsightComposer) calorieTrend(in InsightInput) (domain.Insight, bool) {
	n := len(in.Calories)
	if n < c.minSeriesPoints {
		return domain.Insight{}, false
	}

	delta := round1(in.Calories[n-1].Value - in.Calories[0].Value)
	span := fmt.Sprintf("%d %s", n, unitName(in.Granularity))
	insight := domain.Insight{Title: "Calorie trend"}
	switch {
	case math.Abs(delta) < c.stableDelta:
		insight.Text = fmt.Sprintf("Your calorie intake is stable over %s.", span)
	case delta > 0:
		insight.Text = fmt.Sprintf("Your calorie intake is trending up by +%s kcal over %s.", formatNumber(delta), span)
	default:
		insight.Text = fmt.Sprintf("Your calorie intake is trending down by %s kcal over %s.", formatNumber(delta), span)
	}
	return insight, true
}

func (c *InsightComposer) digestiveFrequency(in InsightInput) (domain.Insight, bool) {
	n := len(in.DigestiveDaily)
	if n < c.minSeriesPoints {
		return domain.Insight{}, false
	}
	mean := round1(sumPoints(in.DigestiveDaily) / float64(n))
	return domain.Insight{
		Title: "Digestive symptoms",
		Text:  fmt.Sprintf("You logged an average of %s digestive symptom(s) per day.", formatNumber(mean)),
	}, true
}

func (c *InsightComposer) symptomsVsPeriod(in InsightInput) (domain.Insight, bool) {
	with := sumPoints(in.PeriodSymptoms.WithPeriod)
	without := sumPoints(in.PeriodSymptoms.WithoutPeriod)
	if with+without < float64(c.minPeriodSymptoms) {
		return domain.Insight{}, false
	}

	insight := domain.Insight{Title: "Symptoms and your period"}
	switch {
	case with > without:
		insight.Text = fmt.Sprintf("You logged more symptoms on period days (%s) than on other days (%s).", formatNumber(with), formatNumber(without))
	case without > with:
		insight.Text = fmt.Sprintf("You logged more symptoms outside your period (%s) than on period days (%s).", formatNumber(without), formatNumber(with))
	default:
		insight.Text = fmt.Sprintf("Symptom counts are similar on period days and other days (%s each).", formatNumber(with))
	}
	return insight, true
}

func (c *InsightComposer) cyclePrediction(in InsightInput) (domain.Insight, bool) {
	if in.Prediction == nil || in.HistoryDays < c.minCycleDays {
		return domain.Insight{}, false
	}
	p := in.Prediction
	text := fmt.Sprintf("Your next period is expected around %s, with ovulation around %s (cycle length %d days).",
		p.NextPeriodDate, p.NextOvulationDate, p.CycleLengthDays)
	if p.LatenessDays != nil && *p.LatenessDays > 0 {
		text += fmt.Sprintf(" Your last period started %d day(s) later than expected.", *p.LatenessDays)
	}
	return domain.Insight{Title: "Cycle prediction", Text: text}, true
}

func sumPoints(points []domain.TimeSeriesPoint) float64 {
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return sum
}

func unitName(g domain.Granularity) string {
	switch g {
	case domain.GranularityWeekly:
		return "weeks"
	case domain.GranularityMonthly:
		return "months"
	default:
		return "days"
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
