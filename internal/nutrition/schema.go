// Package nutrition holds the canonical nutrient schema and the pure
// aggregation functions computed over food entries.
package nutrition

import (
	"errors"
	"time"
)

// ErrInvalidInput is returned when an aggregation precondition does not hold.
var ErrInvalidInput = errors.New("invalid input")

// Canonical nutrient keys. They are also the JSON field names.
const (
	KeyPortionSize   = "portionSize_g"
	KeyCalories      = "calories"
	KeyProtein       = "protein_g"
	KeyCarbohydrates = "carbohydrates_g"
	KeyFat           = "fat_g"
	KeyFiber         = "fiber_g"
	KeySugar         = "sugar_g"
	KeySodium        = "sodium_mg"
	KeyVitaminA      = "vitamin_A"
	KeyVitaminC      = "vitamin_C"
	KeyVitaminD      = "vitamin_D"
	KeyVitaminE      = "vitamin_E"
	KeyVitaminK      = "vitamin_K"
	KeyVitaminB1     = "vitamin_B1"
	KeyVitaminB2     = "vitamin_B2"
	KeyVitaminB3     = "vitamin_B3"
	KeyVitaminB6     = "vitamin_B6"
	KeyVitaminB12    = "vitamin_B12"
	KeyFolate        = "folate"
	KeyCalcium       = "calcium"
	KeyIron          = "iron"
	KeyMagnesium     = "magnesium"
	KeyPhosphorus    = "phosphorus"
	KeyPotassium     = "potassium"
	KeyZinc          = "zinc"
	KeySelenium      = "selenium"
)

// AllKeys lists every nutrient field in schema order.
var AllKeys = []string{
	KeyPortionSize, KeyCalories, KeyProtein, KeyCarbohydrates, KeyFat,
	KeyFiber, KeySugar, KeySodium,
	KeyVitaminA, KeyVitaminC, KeyVitaminD, KeyVitaminE, KeyVitaminK,
	KeyVitaminB1, KeyVitaminB2, KeyVitaminB3, KeyVitaminB6, KeyVitaminB12, KeyFolate,
	KeyCalcium, KeyIron, KeyMagnesium, KeyPhosphorus, KeyPotassium, KeyZinc, KeySelenium,
}

// RequiredKeys must be present on every stored entry.
var RequiredKeys = []string{KeyPortionSize, KeyCalories, KeyProtein, KeyCarbohydrates, KeyFat}

// Nutrients is the per-entry amount of every tracked nutrient.
// Absent values are zero.
type Nutrients struct {
	PortionSizeG   float64 `json:"portionSize_g" gorm:"not null"`
	Calories       float64 `json:"calories" gorm:"not null"`
	ProteinG       float64 `json:"protein_g" gorm:"not null"`
	CarbohydratesG float64 `json:"carbohydrates_g" gorm:"not null"`
	FatG           float64 `json:"fat_g" gorm:"not null"`
	FiberG         float64 `json:"fiber_g"`
	SugarG         float64 `json:"sugar_g"`
	SodiumMg       float64 `json:"sodium_mg"`

	VitaminA   float64 `json:"vitamin_A"`
	VitaminC   float64 `json:"vitamin_C"`
	VitaminD   float64 `json:"vitamin_D"`
	VitaminE   float64 `json:"vitamin_E"`
	VitaminK   float64 `json:"vitamin_K"`
	VitaminB1  float64 `json:"vitamin_B1" gorm:"column:vitamin_b1"`
	VitaminB2  float64 `json:"vitamin_B2" gorm:"column:vitamin_b2"`
	VitaminB3  float64 `json:"vitamin_B3" gorm:"column:vitamin_b3"`
	VitaminB6  float64 `json:"vitamin_B6" gorm:"column:vitamin_b6"`
	VitaminB12 float64 `json:"vitamin_B12" gorm:"column:vitamin_b12"`
	Folate     float64 `json:"folate"`

	Calcium    float64 `json:"calcium"`
	Iron       float64 `json:"iron"`
	Magnesium  float64 `json:"magnesium"`
	Phosphorus float64 `json:"phosphorus"`
	Potassium  float64 `json:"potassium"`
	Zinc       float64 `json:"zinc"`
	Selenium   float64 `json:"selenium"`
}

// Field returns a pointer to the value stored under a canonical key, or nil
// for an unknown key.
func (n *Nutrients) Field(key string) *float64 {
	switch key {
	case KeyPortionSize:
		return &n.PortionSizeG
	case KeyCalories:
		return &n.Calories
	case KeyProtein:
		return &n.ProteinG
	case KeyCarbohydrates:
		return &n.CarbohydratesG
	case KeyFat:
		return &n.FatG
	case KeyFiber:
		return &n.FiberG
	case KeySugar:
		return &n.SugarG
	case KeySodium:
		return &n.SodiumMg
	case KeyVitaminA:
		return &n.VitaminA
	case KeyVitaminC:
		return &n.VitaminC
	case KeyVitaminD:
		return &n.VitaminD
	case KeyVitaminE:
		return &n.VitaminE
	case KeyVitaminK:
		return &n.VitaminK
	case KeyVitaminB1:
		return &n.VitaminB1
	case KeyVitaminB2:
		return &n.VitaminB2
	case KeyVitaminB3:
		return &n.VitaminB3
	case KeyVitaminB6:
		return &n.VitaminB6
	case KeyVitaminB12:
		return &n.VitaminB12
	case KeyFolate:
		return &n.Folate
	case KeyCalcium:
		return &n.Calcium
	case KeyIron:
		return &n.Iron
	case KeyMagnesium:
		return &n.Magnesium
	case KeyPhosphorus:
		return &n.Phosphorus
	case KeyPotassium:
		return &n.Potassium
	case KeyZinc:
		return &n.Zinc
	case KeySelenium:
		return &n.Selenium
	}
	return nil
}

// Get returns the value under key, or 0 for an unknown key.
func (n Nutrients) Get(key string) float64 {
	if p := n.Field(key); p != nil {
		return *p
	}
	return 0
}

// Entry is the view of a stored food entry the aggregator works on.
type Entry struct {
	IngredientName string
	ConsumedAt     time.Time
	Nutrients
}
