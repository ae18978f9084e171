package analytics

import (
	"reflect"
	"testing"

	"github.com/blaisecz/health-journal/internal/domain"
)

func newTestCorrelationEngine() *CorrelationEngine {
	cfg := DefaultConfig()
	return NewCorrelationEngine(cfg, NewKeywordMatcher(cfg.DigestiveKeywords))
}

// pizza on four days, three of them with bloating; salad on two days.
func pizzaRecords() []domain.DailyRecord {
	return []domain.DailyRecord{
		{Date: "2024-01-03", Meals: &domain.Meals{Evening: "2 pizza"}, Symptoms: []string{"bloating"}},
		{Date: "2024-01-01", Meals: &domain.Meals{Morning: "pizza, salad"}, Symptoms: []string{"bloating"}},
		{Date: "2024-01-02", Meals: &domain.Meals{Evening: "Pizza"}, Symptoms: []string{"Bloating", "headache"}},
		{Date: "2024-01-04", Meals: &domain.Meals{Evening: "pizza, fasting"}},
		{Date: "2024-01-05", Meals: &domain.Meals{Morning: "salad"}, Symptoms: []string{"headache"}},
	}
}

func TestCorrelationEngine_Correlate(t *testing.T) {
	got := newTestCorrelationEngine().Correlate(pizzaRecords())
	want := []domain.FoodCorrelation{
		{Name: "pizza", CorrelationPct: 75},
		{Name: "salad", CorrelationPct: 50},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Correlate() = %v, want %v", got, want)
	}
}

func TestCorrelationEngine_Correlate_SetSemanticsPerDay(t *testing.T) {
	records := []domain.DailyRecord{
		{Date: "2024-01-01", Meals: &domain.Meals{Morning: "toast, toast", Evening: "toast"}, Symptoms: []string{"gas"}},
		// second record on the same date merges into the same day
		{Date: "2024-01-01", Meals: &domain.Meals{Snack: "toast"}},
		{Date: "2024-01-02", Meals: &domain.Meals{Morning: "toast"}},
	}

	got := newTestCorrelationEngine().Correlate(records)
	want := []domain.FoodCorrelation{{Name: "toast", CorrelationPct: 50}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Correlate() = %v, want %v", got, want)
	}
}

func TestCorrelationEngine_Correlate_StableTiesAndTopTen(t *testing.T) {
	foods := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	var records []domain.DailyRecord
	for i, food := range foods {
		records = append(records, domain.DailyRecord{
			Date:  "2024-03-" + twoDigits(i+1),
			Meals: &domain.Meals{Morning: food},
		})
	}
	// only "l" co-occurs with a digestive symptom
	records[len(records)-1].Symptoms = []string{"reflux"}

	got := newTestCorrelationEngine().Correlate(records)
	if len(got) != 10 {
		t.Fatalf("expected top 10, got %d", len(got))
	}
	if got[0] != (domain.FoodCorrelation{Name: "l", CorrelationPct: 100}) {
		t.Errorf("first = %+v, want l at 100", got[0])
	}
	for i, fc := range got[1:] {
		if fc.Name != foods[i] || fc.CorrelationPct != 0 {
			t.Errorf("position %d = %+v, want %s at 0", i+1, fc, foods[i])
		}
	}
}

func TestCorrelationEngine_Detail(t *testing.T) {
	got := newTestCorrelationEngine().Detail(pizzaRecords())

	want := map[string]domain.FoodSymptomDetail{
		"pizza": {Food: "pizza", Symptoms: []domain.NameCount{{Name: "bloating", Count: 3}, {Name: "headache", Count: 1}}},
		"salad": {Food: "salad", Symptoms: []domain.NameCount{{Name: "bloating", Count: 1}, {Name: "headache", Count: 1}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detail() = %v, want %v", got, want)
	}
}

func TestCorrelationEngine_Detail_TopFive(t *testing.T) {
	records := []domain.DailyRecord{
		{Date: "2024-01-01", Meals: &domain.Meals{Morning: "beans"}, Symptoms: []string{"s1", "s2", "s3", "s4", "s5", "s6"}},
		{Date: "2024-01-02", Meals: &domain.Meals{Morning: "beans"}, Symptoms: []string{"s6"}},
	}

	got := newTestCorrelationEngine().Detail(records)["beans"].Symptoms
	want := []domain.NameCount{
		{Name: "s6", Count: 2},
		{Name: "s1", Count: 1},
		{Name: "s2", Count: 1},
		{Name: "s3", Count: 1},
		{Name: "s4", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Detail()[beans] = %v, want %v", got, want)
	}
}

func TestCorrelationEngine_Matrix(t *testing.T) {
	got := newTestCorrelationEngine().Matrix(pizzaRecords())

	want := domain.FoodSymptomMatrix{
		Foods:    []string{"pizza", "salad"},
		Symptoms: []string{"bloating", "headache"},
		Counts:   [][]int{{3, 1}, {1, 1}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Matrix() = %+v, want %+v", got, want)
	}
}

func TestCorrelationEngine_Matrix_Limits(t *testing.T) {
	var symptoms []string
	for i := 1; i <= 15; i++ {
		symptoms = append(symptoms, "symptom "+twoDigits(i))
	}
	records := []domain.DailyRecord{
		{Date: "2024-01-01", Meals: &domain.Meals{Morning: "oatmeal"}, Symptoms: symptoms},
	}

	got := newTestCorrelationEngine().Matrix(records)
	if len(got.Symptoms) != 12 {
		t.Errorf("expected 12 symptoms, got %d", len(got.Symptoms))
	}
	if len(got.Counts) != 1 || len(got.Counts[0]) != 12 {
		t.Errorf("expected 1x12 grid, got %v", got.Counts)
	}
}

func TestCorrelationEngine_FoodFrequency(t *testing.T) {
	got := newTestCorrelationEngine().FoodFrequency(pizzaRecords())
	want := []domain.NameCount{{Name: "pizza", Count: 4}, {Name: "salad", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FoodFrequency() = %v, want %v", got, want)
	}
}

func TestCorrelationEngine_Empty(t *testing.T) {
	c := newTestCorrelationEngine()

	if got := c.Correlate(nil); got == nil || len(got) != 0 {
		t.Errorf("Correlate(nil) = %v, want empty non-nil", got)
	}
	if got := c.Detail(nil); got == nil || len(got) != 0 {
		t.Errorf("Detail(nil) = %v, want empty non-nil", got)
	}
	m := c.Matrix(nil)
	if m.Foods == nil || m.Symptoms == nil || m.Counts == nil {
		t.Errorf("Matrix(nil) = %+v, want empty non-nil slices", m)
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
