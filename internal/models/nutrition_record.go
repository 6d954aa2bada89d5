package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NutritionRecord is a user's reported intake of the nutrients tracked
// outside the per-entry schema. Grams unless noted.
type NutritionRecord struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Carbohydrates float64   `gorm:"not null" json:"carbohydrates"`
	Fibers        float64   `gorm:"not null" json:"fibers"`
	Sugar         float64   `gorm:"not null" json:"sugar"`
	Fat           float64   `gorm:"not null" json:"fat"`
	SaturatedFat  float64   `gorm:"not null" json:"saturated_fat"`
	CholesterolMg float64   `gorm:"column:cholesterol;not null" json:"cholesterol"`
	SodiumMg      float64   `gorm:"column:sodium;not null" json:"sodium"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *NutritionRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
