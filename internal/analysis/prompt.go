package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nutrilens/backend/internal/nutrition"
)

// averageLines are the DAILY AVERAGES rows: label, key, unit.
var averageLines = []struct {
	label, key, unit string
}{
	{"Calories", nutrition.KeyCalories, " kcal"},
	{"Protein", nutrition.KeyProtein, "g"},
	{"Carbohydrates", nutrition.KeyCarbohydrates, "g"},
	{"Fat", nutrition.KeyFat, "g"},
	{"Fiber", nutrition.KeyFiber, "g"},
	{"Sugar", nutrition.KeySugar, "g"},
	{"Sodium", nutrition.KeySodium, "mg"},
	{"Vitamin A", nutrition.KeyVitaminA, "mcg"},
	{"Vitamin C", nutrition.KeyVitaminC, "mg"},
	{"Vitamin D", nutrition.KeyVitaminD, "mcg"},
	{"Calcium", nutrition.KeyCalcium, "mg"},
	{"Iron", nutrition.KeyIron, "mg"},
	{"Potassium", nutrition.KeyPotassium, "mg"},
	{"Zinc", nutrition.KeyZinc, "mg"},
}

const responseContract = `Provide a comprehensive nutrition analysis in EXACT JSON format:

{
  "overallScore": {
    "rating": "excellent|good|fair|poor",
    "score": 85,
    "summary": "Brief overall assessment"
  },
  "macronutrientAnalysis": {
    "calorieStatus": "appropriate|low|high",
    "proteinStatus": "adequate|low|high", 
    "carbStatus": "balanced|low|high",
    "fatStatus": "balanced|low|high",
    "fiberStatus": "adequate|low|high"
  },
  "micronutrientAnalysis": {
    "vitaminDeficiencies": ["vitamin_d", "vitamin_b12"],
    "mineralDeficiencies": ["iron", "calcium"],
    "adequateNutrients": ["vitamin_c", "potassium"]
  },
  "healthConcerns": [
    {
      "concern": "High sodium intake",
      "severity": "moderate",
      "explanation": "Detailed explanation"
    }
  ],
  "recommendations": [
    {
      "category": "macronutrients",
      "priority": "high",
      "suggestion": "Specific actionable advice",
      "reason": "Why this recommendation is important"
    }
  ],
  "suggestedFoods": [
    {
      "food": "Spinach",
      "benefit": "High in iron and folate",
      "nutrient": "iron"
    }
  ],
  "dietaryPatterns": {
    "variety": "good",
    "balance": "balanced", 
    "processingLevel": "mixed",
    "observations": "Key patterns noticed"
  }
}

Return ONLY valid JSON.`

// BuildPrompt renders the nutritionist prompt for a window summary.
func BuildPrompt(summary nutrition.WindowSummary, days int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a certified nutritionist analyzing %d days of food consumption data. \n\n", days)

	b.WriteString("NUTRITION DATA SUMMARY:\n")
	fmt.Fprintf(&b, "- Period: %s\n", summary.Period)
	fmt.Fprintf(&b, "- Total food entries: %d\n", summary.TotalEntries)
	fmt.Fprintf(&b, "- Unique foods consumed: %d\n", summary.UniqueFoods)
	fmt.Fprintf(&b, "- Foods: %s\n\n", strings.Join(summary.FoodList, ", "))

	b.WriteString("DAILY AVERAGES:\n")
	for _, line := range averageLines {
		fmt.Fprintf(&b, "• %s: %s%s\n", line.label, formatAmount(summary.DailyAverages[line.key]), line.unit)
	}
	b.WriteString("\n")

	b.WriteString(responseContract)
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
