package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exercise records a user's regular physical activity.
type Exercise struct {
	ID           uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ExerciseType string    `gorm:"not null" json:"exercise_type"`
	Frequency    int       `gorm:"not null" json:"frequency"`
	Hours        float64   `gorm:"not null" json:"hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
