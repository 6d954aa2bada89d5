package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/types"
)

type ExerciseService struct {
	db *gorm.DB
}

func NewExerciseService(db *gorm.DB) *ExerciseService {
	return &ExerciseService{db: db}
}

func validateExercise(req types.ExerciseRequest) error {
	switch {
	case strings.TrimSpace(req.ExerciseType) == "":
		return &ValidationError{Field: "exercise_type", Message: "is required"}
	case req.Frequency == nil || *req.Frequency < 0:
		return &ValidationError{Field: "frequency", Message: "must be a non-negative number"}
	case req.Hours == nil || *req.Hours < 0:
		return &ValidationError{Field: "hours", Message: "must be a non-negative number"}
	}
	return nil
}

func (s *ExerciseService) List(ctx context.Context, userID uuid.UUID) ([]models.Exercise, error) {
	var records []models.Exercise
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list exercise records: %w", err)
	}
	return records, nil
}

func (s *ExerciseService) Create(ctx context.Context, userID uuid.UUID, req types.ExerciseRequest) (*models.Exercise, error) {
	if err := validateExercise(req); err != nil {
		return nil, err
	}
	record := models.Exercise{
		UserID:       userID,
		ExerciseType: strings.TrimSpace(req.ExerciseType),
		Frequency:    *req.Frequency,
		Hours:        *req.Hours,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to create exercise record: %w", err)
	}
	return &record, nil
}

func (s *ExerciseService) get(ctx context.Context, userID, id uuid.UUID) (*models.Exercise, error) {
	var record models.Exercise
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get exercise record: %w", err)
	}
	return &record, nil
}

func (s *ExerciseService) Update(ctx context.Context, userID, id uuid.UUID, req types.ExerciseRequest) (*models.Exercise, error) {
	if err := validateExercise(req); err != nil {
		return nil, err
	}
	record, err := s.get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	record.ExerciseType = strings.TrimSpace(req.ExerciseType)
	record.Frequency = *req.Frequency
	record.Hours = *req.Hours
	if err := s.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, fmt.Errorf("failed to update exercise record: %w", err)
	}
	return record, nil
}

func (s *ExerciseService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	record, err := s.get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(record).Error; err != nil {
		return fmt.Errorf("failed to delete exercise record: %w", err)
	}
	return nil
}
