package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/types"
)

// NutritionRecordService stores the coarse per-user nutrition records kept
// alongside food entries.
type NutritionRecordService struct {
	db *gorm.DB
}

func NewNutritionRecordService(db *gorm.DB) *NutritionRecordService {
	return &NutritionRecordService{db: db}
}

// recordValues validates req and returns its values in column order.
func recordValues(req types.NutritionRecordRequest) ([]float64, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"carbohydrates", req.Carbohydrates},
		{"fibers", req.Fibers},
		{"sugar", req.Sugar},
		{"fat", req.Fat},
		{"saturated_fat", req.SaturatedFat},
		{"cholesterol", req.Cholesterol},
		{"sodium", req.Sodium},
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		if f.value == nil {
			return nil, &ValidationError{Field: f.name, Message: "is required"}
		}
		if *f.value < 0 {
			return nil, &ValidationError{Field: f.name, Message: "must be a non-negative number"}
		}
		values[i] = *f.value
	}
	return values, nil
}

func applyRecord(record *models.NutritionRecord, values []float64) {
	record.Carbohydrates = values[0]
	record.Fibers = values[1]
	record.Sugar = values[2]
	record.Fat = values[3]
	record.SaturatedFat = values[4]
	record.CholesterolMg = values[5]
	record.SodiumMg = values[6]
}

func (s *NutritionRecordService) List(ctx context.Context, userID uuid.UUID) ([]models.NutritionRecord, error) {
	var records []models.NutritionRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list nutrition records: %w", err)
	}
	return records, nil
}

func (s *NutritionRecordService) Create(ctx context.Context, userID uuid.UUID, req types.NutritionRecordRequest) (*models.NutritionRecord, error) {
	values, err := recordValues(req)
	if err != nil {
		return nil, err
	}
	record := models.NutritionRecord{UserID: userID}
	applyRecord(&record, values)
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create nutrition record: %w", err)
	}
	return &record, nil
}

func (s *NutritionRecordService) get(ctx context.Context, userID, id uuid.UUID) (*models.NutritionRecord, error) {
	var record models.NutritionRecord
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get nutrition record: %w", err)
	}
	return &record, nil
}

// Update replaces every value of one of the user's records.
func (s *NutritionRecordService) Update(ctx context.Context, userID, id uuid.UUID, req types.NutritionRecordRequest) (*models.NutritionRecord, error) {
	values, err := recordValues(req)
	if err != nil {
		return nil, err
	}
	record, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	applyRecord(record, values)
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to update nutrition record: %w", err)
	}
	return record, nil
}

func (s *NutritionRecordService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	record, err := s.get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to delete nutrition record: %w", err)
	}
	return nil
}
