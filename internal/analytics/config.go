package analytics

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable policy of the analytics engine.
type Config struct {
	// DigestiveKeywords are matched case-insensitively as substrings of symptom tags.
	DigestiveKeywords []string `yaml:"digestive_keywords"`

	Calories struct {
		DefaultPerServing int               `yaml:"default_per_serving"`
		Table             map[string]int    `yaml:"table"`
		Synonyms          map[string]string `yaml:"synonyms"`
	} `yaml:"calories"`

	Cycle struct {
		DefaultLengthDays   int  `yaml:"default_length_days"`
		OvulationOffsetDays int  `yaml:"ovulation_offset_days"`
		MaxGapDays          int  `yaml:"max_gap_days"`
		GapWindow           int  `yaml:"gap_window"`
		CollapsePeriodRuns  bool `yaml:"collapse_period_runs"`
	} `yaml:"cycle"`

	Correlation struct {
		TopFoods           int `yaml:"top_foods"`
		TopSymptomsPerFood int `yaml:"top_symptoms_per_food"`
		MatrixFoods        int `yaml:"matrix_foods"`
		MatrixSymptoms     int `yaml:"matrix_symptoms"`
	} `yaml:"correlation"`

	Insights struct {
		CorrelationPct     int     `yaml:"correlation_pct"`
		MinCorrelatedFoods int     `yaml:"min_correlated_foods"`
		MinSeriesPoints    int     `yaml:"min_series_points"`
		StableCalorieDelta float64 `yaml:"stable_calorie_delta"`
		MinPeriodSymptoms  int     `yaml:"min_period_symptoms"`
		MinCycleDays       int     `yaml:"min_cycle_days"`
	} `yaml:"insights"`
}

// DefaultDigestiveKeywords is the built-in digestive symptom vocabulary.
var DefaultDigestiveKeywords = []string{
	"bloat", "gas", "stomach", "constipation", "diarrhea", "cramp", "reflux", "heartburn",
}

// DefaultConfig returns the built-in engine policy.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.DigestiveKeywords = append([]string(nil), DefaultDigestiveKeywords...)

	cfg.Calories.DefaultPerServing = 200
	cfg.Calories.Table = defaultCalorieTable()
	cfg.Calories.Synonyms = defaultSynonyms()

	cfg.Cycle.DefaultLengthDays = 28
	cfg.Cycle.OvulationOffsetDays = 14
	cfg.Cycle.MaxGapDays = 60
	cfg.Cycle.GapWindow = 3

	cfg.Correlation.TopFoods = 10
	cfg.Correlation.TopSymptomsPerFood = 5
	cfg.Correlation.MatrixFoods = 10
	cfg.Correlation.MatrixSymptoms = 12

	cfg.Insights.CorrelationPct = 40
	cfg.Insights.MinCorrelatedFoods = 2
	cfg.Insights.MinSeriesPoints = 5
	cfg.Insights.StableCalorieDelta = 20
	cfg.Insights.MinPeriodSymptoms = 3
	cfg.Insights.MinCycleDays = 3
	return cfg
}

// LoadConfig reads a YAML policy file on top of the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read analytics config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse analytics config: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate analytics config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the policy is usable.
func (c *Config) Validate() error {
	if len(c.DigestiveKeywords) == 0 {
		return errors.New("digestive_keywords cannot be empty")
	}
	for _, kw := range c.DigestiveKeywords {
		if strings.TrimSpace(kw) == "" {
			return errors.New("digestive_keywords cannot contain blank entries")
		}
	}
	if c.Calories.DefaultPerServing < 0 {
		return fmt.Errorf("calories.default_per_serving must be >= 0, got %d", c.Calories.DefaultPerServing)
	}
	for name, kcal := range c.Calories.Table {
		if kcal < 0 {
			return fmt.Errorf("calories.table[%q] must be >= 0, got %d", name, kcal)
		}
	}
	if c.Cycle.DefaultLengthDays <= 0 {
		return fmt.Errorf("cycle.default_length_days must be > 0, got %d", c.Cycle.DefaultLengthDays)
	}
	if c.Cycle.OvulationOffsetDays < 0 || c.Cycle.OvulationOffsetDays >= c.Cycle.DefaultLengthDays {
		return fmt.Errorf("cycle.ovulation_offset_days must be in [0, %d), got %d", c.Cycle.DefaultLengthDays, c.Cycle.OvulationOffsetDays)
	}
	if c.Cycle.MaxGapDays <= 0 || c.Cycle.GapWindow <= 0 {
		return errors.New("cycle.max_gap_days and cycle.gap_window must be > 0")
	}
	if c.Correlation.TopFoods <= 0 || c.Correlation.TopSymptomsPerFood <= 0 ||
		c.Correlation.MatrixFoods <= 0 || c.Correlation.MatrixSymptoms <= 0 {
		return errors.New("correlation limits must be > 0")
	}
	if c.Insights.CorrelationPct < 0 || c.Insights.CorrelationPct > 100 {
		return fmt.Errorf("insights.correlation_pct must be in [0, 100], got %d", c.Insights.CorrelationPct)
	}
	return nil
}

// normalize lowercases user-provided vocabulary so lookups stay case-insensitive.
func (c *Config) normalize() {
	keywords := make([]string, 0, len(c.DigestiveKeywords))
	for _, kw := range c.DigestiveKeywords {
		keywords = append(keywords, strings.ToLower(strings.TrimSpace(kw)))
	}
	c.DigestiveKeywords = keywords

	table := make(map[string]int, len(c.Calories.Table))
	for name, kcal := range c.Calories.Table {
		table[strings.ToLower(strings.TrimSpace(name))] = kcal
	}
	c.Calories.Table = table

	synonyms := make(map[string]string, len(c.Calories.Synonyms))
	for from, to := range c.Calories.Synonyms {
		synonyms[strings.ToLower(strings.TrimSpace(from))] = strings.ToLower(strings.TrimSpace(to))
	}
	c.Calories.Synonyms = synonyms
}
