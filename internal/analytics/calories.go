package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/blaisecz/health-journal/internal/domain"
)

// fastingItem marks a meal slot that was intentionally skipped.
const fastingItem = "fasting"

// FoodItem is a food name with a serving multiplier.
type FoodItem struct {
	Name     string  `json:"name" yaml:"name"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// CaloriesEstimator maps free-text food names to an approximate calorie value.
type CaloriesEstimator struct {
	table          map[string]int
	synonyms       map[string]string
	defaultServing int
}

// NewCaloriesEstimator builds an estimator from the engine policy.
func NewCaloriesEstimator(cfg *Config) *CaloriesEstimator {
	return &CaloriesEstimator{
		table:          cfg.Calories.Table,
		synonyms:       cfg.Calories.Synonyms,
		defaultServing: cfg.Calories.DefaultPerServing,
	}
}

// Estimate returns the rounded kcal total for the items.
func (e *CaloriesEstimator) Estimate(items []FoodItem) int {
	total := 0.0
	for _, item := range items {
		name := e.Normalize(item.Name)
		if name == "" || name == fastingItem {
			continue
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += qty * float64(e.perServing(name))
	}
	return int(math.Round(total))
}

// EstimateMeals sums every meal slot. A slot mentioning Fasting contributes nothing.
func (e *CaloriesEstimator) EstimateMeals(meals *domain.Meals) int {
	total := 0
	for _, slot := range meals.Slots() {
		items := ParseFoodItems(slot)
		if e.containsFasting(items) {
			continue
		}
		total += e.Estimate(items)
	}
	return total
}

// Normalize lowercases, trims and maps plural forms to the table key.
func (e *CaloriesEstimator) Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if singular, ok := e.synonyms[n]; ok {
		return singular
	}
	return n
}

func (e *CaloriesEstimator) perServing(name string) int {
	if kcal, ok := e.table[name]; ok {
		return kcal
	}
	return e.defaultServing
}

func (e *CaloriesEstimator) containsFasting(items []FoodItem) bool {
	for _, item := range items {
		if e.Normalize(item.Name) == fastingItem {
			return true
		}
	}
	return false
}

// ParseFoodItems splits a comma-joined meal slot into items.
// A leading number is read as the quantity: "2 eggs" -> {eggs, 2}.
func ParseFoodItems(slot string) []FoodItem {
	var items []FoodItem
	for _, part := range strings.Split(slot, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, parseFoodItem(part))
	}
	return items
}

func parseFoodItem(s string) FoodItem {
	fields := strings.Fields(s)
	if len(fields) > 1 {
		qty, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], "x"), 64)
		if err == nil && qty > 0 && !math.IsInf(qty, 0) {
			return FoodItem{Name: strings.Join(fields[1:], " "), Quantity: qty}
		}
	}
	return FoodItem{Name: s, Quantity: 1}
}

func defaultCalorieTable() map[string]int {
	return map[string]int{
		"apple":      95,
		"avocado":    240,
		"bagel":      280,
		"banana":     105,
		"beans":      230,
		"beer":       150,
		"bread":      80,
		"broccoli":   55,
		"burger":     550,
		"burrito":    450,
		"cake":       350,
		"cereal":     150,
		"cheese":     110,
		"chicken":    240,
		"chips":      160,
		"chocolate":  230,
		"coffee":     5,
		"cookie":     80,
		"croissant":  230,
		"curry":      450,
		"egg":        78,
		"fish":       200,
		"fries":      365,
		"granola":    200,
		"ice cream":  270,
		"juice":      110,
		"milk":       120,
		"nuts":       170,
		"oatmeal":    150,
		"orange":     62,
		"pancake":    90,
		"pasta":      400,
		"pizza":      285,
		"rice":       205,
		"salad":      150,
		"salmon":     280,
		"sandwich":   350,
		"smoothie":   220,
		"soda":       140,
		"soup":       180,
		"steak":      450,
		"sushi":      300,
		"taco":       170,
		"tea":        2,
		"toast":      90,
		"tofu":       180,
		"vegetables": 80,
		"wine":       125,
		"yogurt":     150,
	}
}

func defaultSynonyms() map[string]string {
	return map[string]string{
		"apples":     "apple",
		"avocados":   "avocado",
		"bagels":     "bagel",
		"bananas":    "banana",
		"burgers":    "burger",
		"burritos":   "burrito",
		"cookies":    "cookie",
		"croissants": "croissant",
		"eggs":       "egg",
		"oranges":    "orange",
		"pancakes":   "pancake",
		"pizzas":     "pizza",
		"salads":     "salad",
		"sandwiches": "sandwich",
		"tacos":      "taco",
		"toasts":     "toast",
		"veggies":    "vegetables",
		"yoghurt":    "yogurt",
	}
}
