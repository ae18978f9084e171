package analytics

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analytics.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Calories.DefaultPerServing != 200 {
		t.Errorf("DefaultPerServing = %d, want 200", cfg.Calories.DefaultPerServing)
	}
	if cfg.Cycle.DefaultLengthDays != 28 || cfg.Cycle.OvulationOffsetDays != 14 {
		t.Errorf("unexpected cycle defaults: %+v", cfg.Cycle)
	}
	if len(cfg.DigestiveKeywords) != len(DefaultDigestiveKeywords) {
		t.Errorf("DigestiveKeywords = %v", cfg.DigestiveKeywords)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
digestive_keywords: [Nausea, BLOAT]
calories:
  default_per_serving: 150
  table:
    Kimchi: 20
cycle:
  collapse_period_runs: true
insights:
  correlation_pct: 60
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.DigestiveKeywords) != 2 || cfg.DigestiveKeywords[0] != "nausea" || cfg.DigestiveKeywords[1] != "bloat" {
		t.Errorf("DigestiveKeywords = %v, want lowercased override", cfg.DigestiveKeywords)
	}
	if cfg.Calories.DefaultPerServing != 150 {
		t.Errorf("DefaultPerServing = %d, want 150", cfg.Calories.DefaultPerServing)
	}
	if cfg.Calories.Table["kimchi"] != 20 {
		t.Errorf("table lookup failed: %v", cfg.Calories.Table)
	}
	// yaml merges maps, so built-in entries survive
	if cfg.Calories.Table["apple"] != 95 {
		t.Errorf("expected built-in apple entry to survive, got %v", cfg.Calories.Table["apple"])
	}
	if !cfg.Cycle.CollapsePeriodRuns {
		t.Error("CollapsePeriodRuns should be true")
	}
	if cfg.Cycle.DefaultLengthDays != 28 {
		t.Errorf("unset fields keep defaults, got DefaultLengthDays=%d", cfg.Cycle.DefaultLengthDays)
	}
	if cfg.Insights.CorrelationPct != 60 {
		t.Errorf("CorrelationPct = %d, want 60", cfg.Insights.CorrelationPct)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty keywords", "digestive_keywords: []\n"},
		{"negative calories", "calories:\n  default_per_serving: -1\n"},
		{"zero cycle length", "cycle:\n  default_length_days: 0\n"},
		{"ovulation offset past cycle", "cycle:\n  ovulation_offset_days: 40\n"},
		{"pct above 100", "insights:\n  correlation_pct: 101\n"},
		{"malformed yaml", "cycle: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestKeywordMatcher(t *testing.T) {
	m := NewKeywordMatcher(DefaultDigestiveKeywords)

	tests := []struct {
		symptom string
		want    bool
	}{
		{"Bloating", true},
		{"stomach ache", true},
		{"Acid REFLUX", true},
		{"period cramps", true},
		{"headache", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := m.Matches(tt.symptom); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.symptom, got, tt.want)
		}
	}

	if got := m.Count([]string{"gas", "bloated", "tired"}); got != 2 {
		t.Errorf("Count() = %d, want 2", got)
	}
	if m.Any([]string{"tired", "headache"}) {
		t.Error("Any() = true, want false")
	}
}

func TestLoadConfig_SampleFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "config", "analytics.yaml"))
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if cfg.Calories.Table["kombucha"] != 50 {
		t.Errorf("kombucha = %d, want 50", cfg.Calories.Table["kombucha"])
	}
	if cfg.Calories.Synonyms["flat white"] != "coffee" {
		t.Errorf("synonym missing: %v", cfg.Calories.Synonyms)
	}
	if !NewKeywordMatcher(cfg.DigestiveKeywords).Matches("Nausea") {
		t.Error("nausea should be a digestive keyword")
	}
}
