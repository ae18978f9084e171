package domain

// NarrativeOutput contains the structured output from the LLM.
// @Description LLM-written summary of the computed health insights.
type NarrativeOutput struct {
	// Summary of the window (2-3 sentences)
	Summary string `json:"summary" example:"Your digestive symptoms cluster on days with pizza..."`
	// Observations grounded in the computed insights (2-5 items)
	Observations []string `json:"observations" example:"[\"Bloating appeared on 3 of 4 pizza days\"]"`
	// Non-medical suggestions (2-4 items)
	Guidance []string `json:"guidance" example:"[\"Try logging portion sizes for pizza meals\"]"`
}

// NarrativeContext is the context object sent to the LLM.
type NarrativeContext struct {
	StartDate                string            `json:"start_date,omitempty"`
	EndDate                  string            `json:"end_date,omitempty"`
	Insights                 []Insight         `json:"insights"`
	FoodDigestiveCorrelation []FoodCorrelation `json:"food_digestive_correlation"`
	SymptomsData             []NameCount       `json:"symptoms_data"`
	CyclePrediction          *CyclePrediction  `json:"cycle_prediction,omitempty"`
	HealthScore              *HealthScore      `json:"latest_health_score,omitempty"`
}

// NarrativeResponse is the response for the narrative insights endpoint.
// @Description Threshold insights plus an LLM narrative.
type NarrativeResponse struct {
	Insights  []Insight       `json:"insights"`
	Narrative NarrativeOutput `json:"narrative"`
	// Trace ID for feedback (optional, only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// FeedbackRequest is the request body for narrative feedback.
// @Description Rating for a previous narrative response.
type FeedbackRequest struct {
	// Trace ID from the narrative response
	TraceID string `json:"trace_id" validate:"required,max=128" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Rating score (1-5)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=2000" example:"The summary was helpful"`
}
