package domain

// Granularity controls how daily series are bucketed.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// TimeSeriesPoint is one value of a date-keyed series.
// @Description A single point of a time series. Date is a day, ISO week or month key.
type TimeSeriesPoint struct {
	Date  string  `json:"date" example:"2024-01-15"`
	Value float64 `json:"value" example:"3"`
}

// NameCount is a frequency entry.
type NameCount struct {
	Name  string `json:"name" example:"bloating"`
	Count int    `json:"count" example:"4"`
}

// PeriodSymptomsSeries splits daily symptom counts by period state.
// Both series share the same dates in the same order.
// @Description Symptom counts on period days vs other days, aligned by date.
type PeriodSymptomsSeries struct {
	WithPeriod    []TimeSeriesPoint `json:"with_period"`
	WithoutPeriod []TimeSeriesPoint `json:"without_period"`
}

// FoodCorrelation is the share of a food's days that had a digestive symptom.
// @Description Percentage (0-100) of days containing the food that also logged a digestive symptom.
type FoodCorrelation struct {
	Name           string `json:"name" example:"pizza"`
	CorrelationPct int    `json:"correlation_pct" example:"75"`
}

// FoodSymptomDetail lists the symptoms most often logged alongside a food.
type FoodSymptomDetail struct {
	Food     string      `json:"food" example:"pizza"`
	Symptoms []NameCount `json:"symptoms"`
}

// FoodSymptomMatrix is a co-occurrence grid of len(Foods) rows by len(Symptoms) columns.
type FoodSymptomMatrix struct {
	Foods    []string `json:"foods"`
	Symptoms []string `json:"symptoms"`
	Counts   [][]int  `json:"counts"`
}

// CyclePrediction is the menstrual cycle forecast.
// @Description Next period and ovulation forecast. lateness_days is omitted when fewer than two period days exist.
type CyclePrediction struct {
	LastPeriodDate    string `json:"last_period_date,omitempty" example:"2024-02-26"`
	NextPeriodDate    string `json:"next_period_date" example:"2024-03-25"`
	NextOvulationDate string `json:"next_ovulation_date" example:"2024-03-11"`
	CycleLengthDays   int    `json:"cycle_length_days" example:"28"`
	LatenessDays      *int   `json:"lateness_days,omitempty" example:"0"`
}

// ScoreBreakdown holds the banded sub-scores. Every sub-score is at least 0.2,
// so an empty breakdown serializes as {}.
type ScoreBreakdown struct {
	Sleep     float64 `json:"sleep,omitempty" example:"1"`
	Symptoms  float64 `json:"symptoms,omitempty" example:"0.7"`
	Activity  float64 `json:"activity,omitempty" example:"0.7"`
	Hydration float64 `json:"hydration,omitempty" example:"0.4"`
}

// HealthScore is the composite score for a single record.
// @Description Composite health score in [0,1]. A record without any data yields total 0 and an empty breakdown.
type HealthScore struct {
	Date      string         `json:"date,omitempty" example:"2024-01-15"`
	Total     float64        `json:"total" example:"0.7"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// IsEmpty reports whether the score is the empty-record sentinel.
func (s HealthScore) IsEmpty() bool {
	return s.Breakdown == ScoreBreakdown{}
}

// Insight is a natural-language statement backed by a significance threshold.
type Insight struct {
	Title string `json:"title" example:"Calorie trend"`
	Text  string `json:"text" example:"Your calorie intake is trending up by +240 kcal over 8 days."`
}

// AnalyticsResult is the full analytics payload for a user and date window.
// @Description Derived series, correlations, cycle forecast and insights for a date window.
type AnalyticsResult struct {
	StartDate                string                       `json:"start_date,omitempty" example:"2024-01-01"`
	EndDate                  string                       `json:"end_date,omitempty" example:"2024-03-31"`
	Granularity              Granularity                  `json:"granularity" example:"daily"`
	SymptomsData             []NameCount                  `json:"symptoms_data"`
	CaloriesData             []TimeSeriesPoint            `json:"calories_data"`
	FoodsData                []NameCount                  `json:"foods_data"`
	FoodSymptomMatrix        FoodSymptomMatrix            `json:"food_symptom_matrix"`
	SymptomsOverTime         []TimeSeriesPoint            `json:"symptoms_over_time"`
	DigestiveIssuesTrend     []TimeSeriesPoint            `json:"digestive_issues_trend"`
	PeriodSymptomsSeries     PeriodSymptomsSeries         `json:"period_symptoms_series"`
	CaloriesPerDay           []TimeSeriesPoint            `json:"calories_per_day"`
	CyclePrediction          *CyclePrediction             `json:"cycle_prediction"`
	FoodDigestiveCorrelation []FoodCorrelation            `json:"food_digestive_correlation"`
	FoodSymptomDetails       map[string]FoodSymptomDetail `json:"food_symptom_details"`
	Insights                 []Insight                    `json:"insights"`
}

// AnalyticsRequest contains query parameters for the analytics endpoint.
type AnalyticsRequest struct {
	StartDate   string `json:"start_date" validate:"omitempty,isodate"`
	EndDate     string `json:"end_date" validate:"omitempty,isodate"`
	Granularity string `json:"granularity" validate:"omitempty,oneof=daily weekly monthly"`
}
