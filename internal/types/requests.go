package types

import (
	"time"

	"github.com/nutrilens/backend/internal/nutrition"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FoodEntryInput is the body of a food entry create or replace. Required
// nutrients are pointers so a missing field can be told apart from zero; the
// pointer fields shadow the embedded keys of the same name.
type FoodEntryInput struct {
	IngredientName string     `json:"ingredientName"`
	ImageURL       string     `json:"imageUrl"`
	ConsumedAt     *time.Time `json:"consumedAt"`

	PortionSizeG   *float64 `json:"portionSize_g"`
	Calories       *float64 `json:"calories"`
	ProteinG       *float64 `json:"protein_g"`
	CarbohydratesG *float64 `json:"carbohydrates_g"`
	FatG           *float64 `json:"fat_g"`

	nutrition.Nutrients
}

// Missing lists the required fields absent from the input.
func (in FoodEntryInput) Missing() []string {
	var missing []string
	if in.IngredientName == "" {
		missing = append(missing, "ingredientName")
	}
	required := map[string]*float64{
		nutrition.KeyPortionSize:   in.PortionSizeG,
		nutrition.KeyCalories:      in.Calories,
		nutrition.KeyProtein:       in.ProteinG,
		nutrition.KeyCarbohydrates: in.CarbohydratesG,
		nutrition.KeyFat:           in.FatG,
	}
	for _, key := range nutrition.RequiredKeys {
		if required[key] == nil {
			missing = append(missing, key)
		}
	}
	return missing
}

// ToNutrients merges the required values into the optional ones.
func (in FoodEntryInput) ToNutrients() nutrition.Nutrients {
	n := in.Nutrients
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&n.PortionSizeG, in.PortionSizeG)
	set(&n.Calories, in.Calories)
	set(&n.ProteinG, in.ProteinG)
	set(&n.CarbohydratesG, in.CarbohydratesG)
	set(&n.FatG, in.FatG)
	return n
}

type ExerciseRequest struct {
	ExerciseType string   `json:"exercise_type"`
	Frequency    *int     `json:"frequency"`
	Hours        *float64 `json:"hours"`
}

// NutritionRecordRequest carries every field of a nutrition record. All are
// required on create and update.
type NutritionRecordRequest struct {
	Carbohydrates *float64 `json:"carbohydrates"`
	Fibers        *float64 `json:"fibers"`
	Sugar         *float64 `json:"sugar"`
	Fat           *float64 `json:"fat"`
	SaturatedFat  *float64 `json:"saturated_fat"`
	Cholesterol   *float64 `json:"cholesterol"`
	Sodium        *float64 `json:"sodium"`
}
