package testhelpers

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/nutrition"
)

const TestPassword = "password123"

// CreateTestUser inserts a user whose password is TestPassword.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        "user-" + uuid.NewString()[:8] + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateFoodEntry inserts an entry with the given macros at consumedAt.
func CreateFoodEntry(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, consumedAt time.Time, calories, protein, carbs, fat float64) *models.FoodEntry {
	t.Helper()

	entry := &models.FoodEntry{
		UserID:         userID,
		IngredientName: name,
		ConsumedAt:     consumedAt,
		Nutrients: nutrition.Nutrients{
			PortionSizeG:   100,
			Calories:       calories,
			ProteinG:       protein,
			CarbohydratesG: carbs,
			FatG:           fat,
		},
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create food entry: %v", err)
	}
	return entry
}
