package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeWindow(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		entry("Spinach", now, Nutrients{Calories: 23, ProteinG: 2.9, VitaminA: 469, Iron: 2.7, Potassium: 558}),
		entry("Salmon", now, Nutrients{Calories: 208, ProteinG: 20, FatG: 13, VitaminD: 11}),
		entry("Spinach", now, Nutrients{Calories: 23, ProteinG: 2.9, VitaminA: 469, Iron: 2.7}),
	}

	summary, err := SummarizeWindow(entries, 3)
	require.NoError(t, err)

	assert.Equal(t, "3 days", summary.Period)
	assert.Equal(t, 3, summary.TotalEntries)
	assert.Equal(t, 2, summary.UniqueFoods)
	assert.Equal(t, []string{"Spinach", "Salmon"}, summary.FoodList)
	assert.Len(t, summary.Totals, len(AnalysisKeys))
	assert.InDelta(t, 254, summary.Totals[KeyCalories], 1e-9)
	assert.InDelta(t, 938, summary.Totals[KeyVitaminA], 1e-9)
	assert.Equal(t, 84.67, summary.DailyAverages[KeyCalories])
	assert.Equal(t, 8.6, summary.DailyAverages[KeyProtein])
	assert.Equal(t, 1.8, summary.DailyAverages[KeyIron])
	assert.Equal(t, 0.0, summary.DailyAverages[KeyZinc])
}

func TestSummarizeWindowAveragesAcrossRequestedDays(t *testing.T) {
	// one entry over seven days still divides by seven
	summary, err := SummarizeWindow([]Entry{entry("Apple", time.Now(), Nutrients{Calories: 95})}, 7)
	require.NoError(t, err)
	assert.Equal(t, 13.57, summary.DailyAverages[KeyCalories])
}

func TestSummarizeWindowInvalidInput(t *testing.T) {
	_, err := SummarizeWindow(nil, 7)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = SummarizeWindow([]Entry{entry("Apple", time.Now(), Nutrients{})}, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
