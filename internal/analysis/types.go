// Package analysis builds the health analysis prompt and turns model replies
// into structured reports.
package analysis

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Score accepts a JSON number or a string that starts with one, such as
// "78" or "85/100". Anything else decodes as 0.
type Score float64

func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Score(f)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = 0
		return nil
	}
	*s = Score(leadingNumber(strings.TrimSpace(str)))
	return nil
}

func leadingNumber(s string) float64 {
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || s[end] == '.' || end == 0 && s[end] == '-') {
		end++
	}
	for end > 0 {
		if f, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return f
		}
		end--
	}
	return 0
}

type OverallScore struct {
	Rating  string `json:"rating"`
	Score   Score  `json:"score"`
	Summary string `json:"summary"`
}

type MacronutrientAnalysis struct {
	CalorieStatus string `json:"calorieStatus"`
	ProteinStatus string `json:"proteinStatus"`
	CarbStatus    string `json:"carbStatus"`
	FatStatus     string `json:"fatStatus"`
	FiberStatus   string `json:"fiberStatus"`
}

type MicronutrientAnalysis struct {
	VitaminDeficiencies []string `json:"vitaminDeficiencies"`
	MineralDeficiencies []string `json:"mineralDeficiencies"`
	AdequateNutrients   []string `json:"adequateNutrients"`
}

type HealthConcern struct {
	Concern     string `json:"concern"`
	Severity    string `json:"severity"`
	Explanation string `json:"explanation"`
}

type Recommendation struct {
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
}

type SuggestedFood struct {
	Food     string `json:"food"`
	Benefit  string `json:"benefit"`
	Nutrient string `json:"nutrient"`
}

type DietaryPatterns struct {
	Variety         string `json:"variety"`
	Balance         string `json:"balance"`
	ProcessingLevel string `json:"processingLevel"`
	Observations    string `json:"observations"`
}

// NutritionAnalysis is a health report. A report parsed from a model reply is
// served exactly as the model wrote it; the typed sections are a best-effort
// view of that reply and stay zero wherever the model used another shape.
type NutritionAnalysis struct {
	OverallScore          *OverallScore          `json:"overallScore"`
	MacronutrientAnalysis *MacronutrientAnalysis `json:"macronutrientAnalysis"`
	MicronutrientAnalysis *MicronutrientAnalysis `json:"micronutrientAnalysis"`
	HealthConcerns        []HealthConcern        `json:"healthConcerns"`
	Recommendations       []Recommendation       `json:"recommendations"`
	SuggestedFoods        []SuggestedFood        `json:"suggestedFoods"`
	DietaryPatterns       *DietaryPatterns       `json:"dietaryPatterns"`

	// Error marks a fallback report.
	Error string `json:"error,omitempty"`

	raw json.RawMessage
}

// Raw returns the model's JSON object, or nil for reports built in code.
func (a *NutritionAnalysis) Raw() json.RawMessage {
	return a.raw
}

// MarshalJSON writes the model's object unchanged when there is one.
func (a *NutritionAnalysis) MarshalJSON() ([]byte, error) {
	if len(a.raw) > 0 {
		return a.raw, nil
	}
	type plain NutritionAnalysis
	return json.Marshal((*plain)(a))
}

// decodeSections fills the typed view from the reply's top-level fields.
// A section with an unexpected shape keeps whatever decoded cleanly.
func (a *NutritionAnalysis) decodeSections(fields map[string]json.RawMessage) {
	targets := map[string]any{
		"overallScore":          &a.OverallScore,
		"macronutrientAnalysis": &a.MacronutrientAnalysis,
		"micronutrientAnalysis": &a.MicronutrientAnalysis,
		"healthConcerns":        &a.HealthConcerns,
		"recommendations":       &a.Recommendations,
		"suggestedFoods":        &a.SuggestedFoods,
		"dietaryPatterns":       &a.DietaryPatterns,
	}
	for key, target := range targets {
		if v, ok := fields[key]; ok {
			_ = json.Unmarshal(v, target)
		}
	}
}
