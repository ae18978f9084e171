package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blaisecz/health-journal/internal/domain"
)

const journalYAML = `profile:
  average_cycle_length_days: 30
  is_on_continuous_pill: false
records:
  - date: "2024-01-01"
    meals:
      evening: pizza
    symptoms: [bloating]
    period:
      active: true
    sleep:
      sleep_duration: 8
      sleep_quality: 8
  - date: "2024-01-02"
    meals:
      evening: pizza
    symptoms: [bloating, headache]
  - date: "2024-01-03"
    meals:
      morning: oatmeal, banana
    hydration:
      glasses: 8
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyze_YAML(t *testing.T) {
	path := writeFile(t, "journal.yaml", journalYAML)

	out, err := execute(t, "analyze", "--records", path, "--today", "2024-01-10")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var result domain.AnalyticsResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if result.Granularity != domain.GranularityDaily {
		t.Errorf("granularity = %q, want daily", result.Granularity)
	}
	if len(result.SymptomsData) == 0 || result.SymptomsData[0].Name != "bloating" {
		t.Errorf("symptoms_data = %+v, want bloating first", result.SymptomsData)
	}
	if result.CyclePrediction == nil {
		t.Fatal("expected a cycle prediction")
	}
	// A single period day leaves no gaps, so the profile average applies.
	if result.CyclePrediction.CycleLengthDays != 30 {
		t.Errorf("cycle length = %d, want 30 from profile", result.CyclePrediction.CycleLengthDays)
	}
}

func TestAnalyze_JSONListAndWindow(t *testing.T) {
	path := writeFile(t, "records.json", `[
		{"date": "2024-01-01", "symptoms": ["bloating"]},
		{"date": "2024-01-05", "symptoms": ["cramps"]}
	]`)

	out, err := execute(t, "analyze", "--records", path, "--from", "2024-01-02", "--to", "2024-01-31", "--granularity", "weekly", "--today", "2024-02-01")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	var result domain.AnalyticsResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result.Granularity != domain.GranularityWeekly {
		t.Errorf("granularity = %q, want weekly", result.Granularity)
	}
	if len(result.SymptomsData) != 1 || result.SymptomsData[0].Name != "cramps" {
		t.Errorf("window not applied: %+v", result.SymptomsData)
	}
}

func TestAnalyze_ProfileOverride(t *testing.T) {
	records := writeFile(t, "journal.yaml", journalYAML)
	profile := writeFile(t, "profile.yaml", "average_cycle_length_days: 35\n")

	out, err := execute(t, "analyze", "--records", records, "--profile", profile, "--today", "2024-01-10")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var result domain.AnalyticsResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if result.CyclePrediction == nil || result.CyclePrediction.CycleLengthDays != 35 {
		t.Errorf("cycle prediction = %+v, want length 35", result.CyclePrediction)
	}
}

func TestAnalyze_InvalidFlags(t *testing.T) {
	path := writeFile(t, "journal.yaml", journalYAML)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing records", []string{"analyze"}, "records"},
		{"bad from", []string{"analyze", "--records", path, "--from", "2024-13-01"}, "--from"},
		{"inverted window", []string{"analyze", "--records", path, "--from", "2024-02-01", "--to", "2024-01-01"}, "after"},
		{"bad granularity", []string{"analyze", "--records", path, "--granularity", "hourly"}, "granularity"},
		{"bad today", []string{"analyze", "--records", path, "--today", "soon"}, "--today"},
		{"missing file", []string{"analyze", "--records", filepath.Join(t.TempDir(), "nope.yaml")}, "read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestScore(t *testing.T) {
	path := writeFile(t, "journal.yaml", journalYAML)

	out, err := execute(t, "score", "--records", path, "--date", "2024-01-01")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	var score domain.HealthScore
	if err := json.Unmarshal([]byte(out), &score); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if score.Total <= 0 || score.Total > 1 {
		t.Errorf("total = %v, want within (0, 1]", score.Total)
	}

	out, err = execute(t, "score", "--records", path, "--date", "2024-06-01")
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !strings.Contains(out, `"total": 0`) || !strings.Contains(out, `"breakdown": {}`) {
		t.Errorf("expected empty sentinel, got %s", out)
	}

	if _, err := execute(t, "score", "--records", path, "--date", "yesterday"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestMaskKey(t *testing.T) {
	tests := map[string]string{
		"":                 "(empty)",
		"pk":               "***",
		"pk-lf-1234567890": "pk-lf-12...",
	}
	for in, want := range tests {
		if got := maskKey(in); got != want {
			t.Errorf("maskKey(%q) = %q, want %q", in, got, want)
		}
	}
}
