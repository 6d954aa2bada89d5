package nutrition

import (
	"fmt"
	"math"
)

// AnalysisKeys are the nutrients summarized for the health analysis, in
// prompt order.
var AnalysisKeys = []string{
	KeyCalories, KeyProtein, KeyCarbohydrates, KeyFat, KeyFiber, KeySugar, KeySodium,
	KeyVitaminA, KeyVitaminC, KeyVitaminD, KeyCalcium, KeyIron, KeyPotassium, KeyZinc,
}

// WindowSummary aggregates a multi-day window of entries for the analysis prompt.
type WindowSummary struct {
	Period        string             `json:"period"`
	Days          int                `json:"days"`
	TotalEntries  int                `json:"totalEntries"`
	UniqueFoods   int                `json:"uniqueFoods"`
	FoodList      []string           `json:"foodList"`
	Totals        map[string]float64 `json:"totals"`
	DailyAverages map[string]float64 `json:"dailyAverages"`
}

// SummarizeWindow totals the analysis nutrients over entries and averages
// them across days. Food names keep first-seen order.
func SummarizeWindow(entries []Entry, days int) (WindowSummary, error) {
	if len(entries) == 0 {
		return WindowSummary{}, fmt.Errorf("%w: no entries to summarize", ErrInvalidInput)
	}
	if days <= 0 {
		return WindowSummary{}, fmt.Errorf("%w: days must be positive, got %d", ErrInvalidInput, days)
	}

	totals := make(map[string]float64, len(AnalysisKeys))
	for _, key := range AnalysisKeys {
		totals[key] = 0
	}
	seen := make(map[string]bool)
	var foods []string
	for _, e := range entries {
		for _, key := range AnalysisKeys {
			totals[key] += e.Get(key)
		}
		if !seen[e.IngredientName] {
			seen[e.IngredientName] = true
			foods = append(foods, e.IngredientName)
		}
	}

	averages := make(map[string]float64, len(AnalysisKeys))
	for _, key := range AnalysisKeys {
		averages[key] = round2(totals[key] / float64(days))
	}

	return WindowSummary{
		Period:        fmt.Sprintf("%d days", days),
		Days:          days,
		TotalEntries:  len(entries),
		UniqueFoods:   len(foods),
		FoodList:      foods,
		Totals:        totals,
		DailyAverages: averages,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
