package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/nutrition"
	"github.com/nutrilens/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req types.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GenerateToken(userID uuid.UUID) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IFoodEntryService defines the interface for food log operations
type IFoodEntryService interface {
	Location() *time.Location
	Create(ctx context.Context, userID uuid.UUID, inputs []types.FoodEntryInput) ([]models.FoodEntry, error)
	List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.FoodEntry, Pagination, error)
	Similar(ctx context.Context, userID uuid.UUID, name string, limit int) ([]models.FoodEntry, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error)
	Update(ctx context.Context, userID, id uuid.UUID, patch map[string]any) (*models.FoodEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error)
	Since(ctx context.Context, userID uuid.UUID, days int) ([]models.FoodEntry, error)
	DailyStats(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyReport, error)
	MonthlyStats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (nutrition.MonthlyStats, error)
}

// IAnalysisService defines the interface for model-backed health analysis
type IAnalysisService interface {
	RequestHealthAnalysis(ctx context.Context, entries []nutrition.Entry, days int) (*Report, error)
}

// IVisionService defines the interface for photo classification
type IVisionService interface {
	Classify(ctx context.Context, mimeType string, data []byte) ([]nutrition.ClassifiedItem, error)
}

// IDraftService defines the interface for upload draft storage
type IDraftService interface {
	SaveDraft(ctx context.Context, draft *UploadDraft) error
	GetDraft(ctx context.Context, userID uuid.UUID, id string) (*UploadDraft, error)
	DeleteDraft(ctx context.Context, userID uuid.UUID, id string) error
}

// IExerciseService defines the interface for exercise record operations
type IExerciseService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.Exercise, error)
	Create(ctx context.Context, userID uuid.UUID, req types.ExerciseRequest) (*models.Exercise, error)
	Update(ctx context.Context, userID, id uuid.UUID, req types.ExerciseRequest) (*models.Exercise, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type INutritionRecordService interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.NutritionRecord, error)
	Create(ctx context.Context, userID uuid.UUID, req types.NutritionRecordRequest) (*models.NutritionRecord, error)
	Update(ctx context.Context, userID, id uuid.UUID, req types.NutritionRecordRequest) (*models.NutritionRecord, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

var (
	_ IAuthService            = (*AuthService)(nil)
	_ IFoodEntryService       = (*FoodEntryService)(nil)
	_ IAnalysisService        = (*AnalysisService)(nil)
	_ IVisionService          = (*VisionService)(nil)
	_ IDraftService           = (*DraftService)(nil)
	_ IExerciseService        = (*ExerciseService)(nil)
	_ INutritionRecordService = (*NutritionRecordService)(nil)
	_ PhotoStore              = (*S3PhotoStore)(nil)
	_ TextModel               = (*GeminiClient)(nil)
	_ ImageModel              = (*GeminiClient)(nil)
)
