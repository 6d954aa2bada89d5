package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Outcome tags a parse result.
type Outcome int

const (
	Parsed Outcome = iota
	Malformed
)

func (o Outcome) String() string {
	if o == Parsed {
		return "parsed"
	}
	return "malformed"
}

// Result is the outcome of parsing a model reply. Analysis is set only when
// Outcome is Parsed; Reason only when it is Malformed.
type Result struct {
	Outcome  Outcome
	Analysis *NutritionAnalysis
	Reason   string
}

func malformed(format string, args ...any) Result {
	return Result{Outcome: Malformed, Reason: fmt.Sprintf(format, args...)}
}

// ExtractJSON returns the text from the first '{' to the last '}'.
func ExtractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// Parse extracts the JSON report in a model reply. It never fails; a reply
// without a JSON object, with invalid JSON, or whose overallScore or
// recommendations field is missing or empty comes back tagged Malformed.
// Nested fields are not validated.
func Parse(text string) Result {
	raw, ok := ExtractJSON(text)
	if !ok {
		return malformed("no JSON object in response")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return malformed("invalid JSON: %v", err)
	}
	for _, required := range []string{"overallScore", "recommendations"} {
		if !present(fields[required]) {
			return malformed("missing %s", required)
		}
	}

	report := &NutritionAnalysis{raw: json.RawMessage(raw)}
	report.decodeSections(fields)
	return Result{Outcome: Parsed, Analysis: report}
}

// present reports whether v is set to something other than null, false, 0
// or an empty string.
func present(v json.RawMessage) bool {
	if len(v) == 0 {
		return false
	}
	var value any
	if err := json.Unmarshal(v, &value); err != nil {
		return false
	}
	switch x := value.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	}
	return true
}

// Fallback is the fixed report used when the model reply cannot be parsed.
func Fallback() *NutritionAnalysis {
	return &NutritionAnalysis{
		OverallScore: &OverallScore{
			Rating:  "fair",
			Score:   50,
			Summary: "Analysis completed but detailed parsing failed",
		},
		MacronutrientAnalysis: &MacronutrientAnalysis{
			CalorieStatus: "unknown",
			ProteinStatus: "unknown",
			CarbStatus:    "unknown",
			FatStatus:     "unknown",
			FiberStatus:   "unknown",
		},
		MicronutrientAnalysis: &MicronutrientAnalysis{
			VitaminDeficiencies: []string{},
			MineralDeficiencies: []string{},
			AdequateNutrients:   []string{},
		},
		HealthConcerns: []HealthConcern{},
		Recommendations: []Recommendation{{
			Category:   "general",
			Priority:   "medium",
			Suggestion: "Consult with a registered dietitian for personalized advice",
			Reason:     "Professional guidance is recommended for optimal nutrition planning",
		}},
		SuggestedFoods: []SuggestedFood{},
		DietaryPatterns: &DietaryPatterns{
			Variety:         "unknown",
			Balance:         "unknown",
			ProcessingLevel: "unknown",
			Observations:    "Data analysis was incomplete",
		},
		Error: "Partial analysis - detailed parsing failed",
	}
}
