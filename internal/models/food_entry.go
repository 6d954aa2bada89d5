package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/nutrition"
)

// FoodEntry is one ingredient a user consumed at a point in time.
type FoodEntry struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index:idx_food_entries_user_consumed,priority:1" json:"userId"`
	IngredientName string    `gorm:"not null" json:"ingredientName"`
	ImageURL       string    `gorm:"default:''" json:"imageUrl"`
	ConsumedAt     time.Time `gorm:"not null;index:idx_food_entries_user_consumed,priority:2,sort:desc" json:"consumedAt"`

	nutrition.Nutrients `gorm:"embedded"`

	// Embedding of the ingredient name used to rank ingredient searches.
	Embedding *pgvector.Vector `gorm:"type:vector(32)" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.ConsumedAt.IsZero() {
		e.ConsumedAt = time.Now().UTC()
	}
	return nil
}

// BeforeSave stores consumption times in UTC so range queries compare
// consistently on every driver.
func (e *FoodEntry) BeforeSave(tx *gorm.DB) error {
	e.ConsumedAt = e.ConsumedAt.UTC()
	return nil
}

// Entry returns the aggregator view of the record.
func (e FoodEntry) Entry() nutrition.Entry {
	return nutrition.Entry{
		IngredientName: e.IngredientName,
		ConsumedAt:     e.ConsumedAt,
		Nutrients:      e.Nutrients,
	}
}

// Entries converts stored records for aggregation, preserving order.
func Entries(records []FoodEntry) []nutrition.Entry {
	out := make([]nutrition.Entry, len(records))
	for i, r := range records {
		out[i] = r.Entry()
	}
	return out
}
