// Package analytics turns a snapshot of daily journal records into derived
// series, food and symptom correlations, a cycle forecast, health scores and
// threshold-gated insights.
//
// Every function here is pure. Nothing is cached between calls and input
// records are never modified, so an Engine is safe for concurrent use.
package analytics

import (
	"time"

	"github.com/blaisecz/health-journal/internal/domain"
)

// Input is one analytics computation request.
type Input struct {
	// Window filters every output except the cycle forecast.
	Window Window
	// History is the user's full record set, unordered.
	History     []domain.DailyRecord
	Profile     *domain.CycleProfile
	Granularity domain.Granularity
	// Today anchors the forecast when there is no period history.
	Today time.Time
}

// Engine wires the analytics stages together.
type Engine struct {
	aggregator  *Aggregator
	correlation *CorrelationEngine
	cycle       *CyclePredictor
	insights    *InsightComposer
}

// NewEngine builds an engine. A nil config uses DefaultConfig.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	digestive := NewKeywordMatcher(cfg.DigestiveKeywords)
	return &Engine{
		aggregator:  NewAggregator(digestive, NewCaloriesEstimator(cfg)),
		correlation: NewCorrelationEngine(cfg, digestive),
		cycle:       NewCyclePredictor(cfg),
		insights:    NewInsightComposer(cfg),
	}
}

// Compute runs every stage over the input. Slices in the result are never nil.
func (e *Engine) Compute(in Input) domain.AnalyticsResult {
	granularity := in.Granularity
	if granularity == "" {
		granularity = domain.GranularityDaily
	}
	today := in.Today
	if today.IsZero() {
		today = time.Now().UTC()
	}

	records := in.Window.Filter(in.History)
	agg := e.aggregator.Aggregate(records)
	correlations := e.correlation.Correlate(records)
	prediction := e.cycle.Predict(in.History, in.Profile, today)
	calories := Group(agg.CaloriesPerDay, granularity)

	insights := e.insights.Compose(InsightInput{
		Correlations:   correlations,
		Calories:       calories,
		Granularity:    granularity,
		DigestiveDaily: agg.DigestiveIssuesTrend,
		PeriodSymptoms: agg.PeriodSymptoms,
		Prediction:     &prediction,
		HistoryDays:    historyDays(in.History),
	})

	return domain.AnalyticsResult{
		StartDate:                in.Window.Start,
		EndDate:                  in.Window.End,
		Granularity:              granularity,
		SymptomsData:             agg.SymptomFrequency,
		CaloriesData:             calories,
		FoodsData:                e.correlation.FoodFrequency(records),
		FoodSymptomMatrix:        e.correlation.Matrix(records),
		SymptomsOverTime:         Group(agg.SymptomsOverTime, granularity),
		DigestiveIssuesTrend:     Group(agg.DigestiveIssuesTrend, granularity),
		PeriodSymptomsSeries:     agg.PeriodSymptoms,
		CaloriesPerDay:           agg.CaloriesPerDay,
		CyclePrediction:          &prediction,
		FoodDigestiveCorrelation: correlations,
		FoodSymptomDetails:       e.correlation.Detail(records),
		Insights:                 insights,
	}
}

// Score returns the health score of the first record dated date, or the
// empty sentinel when there is none.
func (e *Engine) Score(records []domain.DailyRecord, date string) domain.HealthScore {
	for i := range records {
		if records[i].Date == date {
			return ScoreRecord(&records[i])
		}
	}
	return domain.HealthScore{Date: date}
}
