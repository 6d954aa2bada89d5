package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/nutrition"
	"github.com/nutrilens/backend/internal/types"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListFilter narrows a food entry listing. Days takes precedence over Start/End.
type ListFilter struct {
	Page       int
	Limit      int
	Days       int
	Start      *time.Time
	End        *time.Time
	Ingredient string
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// DaySummary brackets the entries of one day.
type DaySummary struct {
	TotalEntries int        `json:"totalEntries"`
	FirstEntry   *time.Time `json:"firstEntry"`
	LastEntry    *time.Time `json:"lastEntry"`
}

// DailyReport is the per-day view: totals plus the itemized entries.
type DailyReport struct {
	Date    string                `json:"date"`
	Totals  nutrition.DailyTotals `json:"totals"`
	Entries []models.FoodEntry    `json:"entries"`
	Summary DaySummary            `json:"summary"`
}

// FoodEntryService stores food entries and answers range queries over them.
type FoodEntryService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewFoodEntryService(db *gorm.DB, loc *time.Location) *FoodEntryService {
	if loc == nil {
		loc = time.Local
	}
	return &FoodEntryService{db: db, loc: loc}
}

// Location is the timezone used for day and month boundaries.
func (s *FoodEntryService) Location() *time.Location {
	return s.loc
}

// Create validates every input, then inserts them all in one batch.
func (s *FoodEntryService) Create(ctx context.Context, userID uuid.UUID, inputs []types.FoodEntryInput) ([]models.FoodEntry, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Message: "Request body cannot be empty"}
	}

	entries := make([]models.FoodEntry, 0, len(inputs))
	for _, in := range inputs {
		if missing := in.Missing(); len(missing) > 0 {
			name := in.IngredientName
			if name == "" {
				name = "Unnamed entry"
			}
			return nil, &ValidationError{
				Field:   strings.Join(missing, ", "),
				Message: "Missing required fields in entry: " + name,
			}
		}

		entry := models.FoodEntry{
			UserID:         userID,
			IngredientName: strings.TrimSpace(in.IngredientName),
			ImageURL:       in.ImageURL,
			Nutrients:      in.ToNutrients(),
		}
		if in.ConsumedAt != nil {
			entry.ConsumedAt = *in.ConsumedAt
		}
		vec := IngredientEmbedding(entry.IngredientName)
		entry.Embedding = &vec
		entries = append(entries, entry)
	}

	if err := s.db.WithContext(ctx).Create(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to save food entries: %w", err)
	}

	logger.Debug("food entries saved", zap.String("user_id", userID.String()), zap.Int("count", len(entries)))
	return entries, nil
}

// List returns one page of a user's entries, newest first, with the total match count.
func (s *FoodEntryService) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.FoodEntry, Pagination, error) {
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}

	query := s.db.WithContext(ctx).Model(&models.FoodEntry{}).Where("user_id = ?", userID)
	switch {
	case f.Days > 0:
		query = query.Where("consumed_at >= ?", time.Now().Add(-time.Duration(f.Days)*24*time.Hour).UTC())
	default:
		if f.Start != nil {
			query = query.Where("consumed_at >= ?", f.Start.UTC())
		}
		if f.End != nil {
			query = query.Where("consumed_at <= ?", f.End.UTC())
		}
	}
	if f.Ingredient != "" {
		query = query.Where("LOWER(ingredient_name) LIKE ?", "%"+strings.ToLower(f.Ingredient)+"%")
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to count food entries: %w", err)
	}

	var entries []models.FoodEntry
	err := query.Order("consumed_at DESC").
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&entries).Error
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("failed to list food entries: %w", err)
	}

	return entries, Pagination{
		Page:  f.Page,
		Limit: f.Limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(f.Limit))),
	}, nil
}

// Similar returns a user's entries whose ingredient name contains name,
// case-insensitively. PostgreSQL ranks the matches by cosine distance between
// name embeddings; other drivers return the most recent first.
func (s *FoodEntryService) Similar(ctx context.Context, userID uuid.UUID, name string, limit int) ([]models.FoodEntry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "ingredient", Message: "is required"}
	}
	if limit < 1 {
		limit = defaultLimit
	}

	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(ingredient_name) LIKE ?", "%"+strings.ToLower(name)+"%").
		Limit(limit)
	if s.db.Dialector.Name() == "postgres" {
		vec := IngredientEmbedding(name)
		query = query.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "embedding <=> ? NULLS LAST, consumed_at DESC",
			Vars:               []interface{}{vec},
			WithoutParentheses: true,
		}})
	} else {
		query = query.Order("consumed_at DESC")
	}

	var entries []models.FoodEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to search food entries: %w", err)
	}
	return entries, nil
}

// Get loads one of the user's entries.
func (s *FoodEntryService) Get(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get food entry: %w", err)
	}
	return &entry, nil
}

// Update applies a partial patch keyed by JSON field names. The owner cannot
// change and required fields cannot be cleared. Concurrent edits resolve last
// write wins.
func (s *FoodEntryService) Update(ctx context.Context, userID, id uuid.UUID, patch map[string]any) (*models.FoodEntry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	oldName := entry.IngredientName
	if err := applyPatch(entry, patch); err != nil {
		return nil, err
	}
	if entry.IngredientName != oldName || entry.Embedding == nil {
		vec := IngredientEmbedding(entry.IngredientName)
		entry.Embedding = &vec
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to update food entry: %w", err)
	}
	return entry, nil
}

// Delete removes one of the user's entries and returns it.
func (s *FoodEntryService) Delete(ctx context.Context, userID, id uuid.UUID) (*models.FoodEntry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to delete food entry: %w", err)
	}
	return entry, nil
}

func (s *FoodEntryService) between(ctx context.Context, userID uuid.UUID, start, end time.Time, order string) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start.UTC(), end.UTC()).
		Order(order).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query food entries: %w", err)
	}
	return entries, nil
}

// ForDay returns the entries of one calendar day, oldest first.
func (s *FoodEntryService) ForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.FoodEntry, error) {
	start, end := nutrition.DayBounds(day, s.loc)
	return s.between(ctx, userID, start, end, "consumed_at ASC")
}

// ForMonth returns the entries of one calendar month, oldest first.
func (s *FoodEntryService) ForMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]models.FoodEntry, error) {
	start, end := nutrition.MonthBounds(year, month, s.loc)
	return s.between(ctx, userID, start, end, "consumed_at ASC")
}

// Since returns the entries of the last days, newest first.
func (s *FoodEntryService) Since(ctx context.Context, userID uuid.UUID, days int) ([]models.FoodEntry, error) {
	if days <= 0 {
		return nil, &ValidationError{Field: "days", Message: "must be a positive integer"}
	}
	now := time.Now()
	return s.between(ctx, userID, now.Add(-time.Duration(days)*24*time.Hour), now.Add(time.Second), "consumed_at DESC")
}

// DailyStats totals one calendar day.
func (s *FoodEntryService) DailyStats(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyReport, error) {
	entries, err := s.ForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{
		Date:    nutrition.DateKey(day, s.loc),
		Totals:  nutrition.ComputeDailyTotals(models.Entries(entries)),
		Entries: entries,
		Summary: DaySummary{TotalEntries: len(entries)},
	}
	if len(entries) > 0 {
		first, last := entries[0].ConsumedAt, entries[len(entries)-1].ConsumedAt
		report.Summary.FirstEntry = &first
		report.Summary.LastEntry = &last
	}
	return report, nil
}

// MonthlyStats breaks one calendar month down by day.
func (s *FoodEntryService) MonthlyStats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (nutrition.MonthlyStats, error) {
	if month < time.January || month > time.December {
		return nutrition.MonthlyStats{}, &ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	entries, err := s.ForMonth(ctx, userID, year, month)
	if err != nil {
		return nutrition.MonthlyStats{}, err
	}
	return nutrition.ComputeMonthlyStats(models.Entries(entries), year, month, s.loc), nil
}

var immutableFields = map[string]bool{
	"id": true, "_id": true, "userId": true, "user_id": true, "createdAt": true, "updatedAt": true,
}

func applyPatch(entry *models.FoodEntry, patch map[string]any) error {
	for key, value := range patch {
		if immutableFields[key] {
			continue
		}
		switch key {
		case "ingredientName":
			name, ok := value.(string)
			if !ok || strings.TrimSpace(name) == "" {
				return &ValidationError{Field: key, Message: "must be a non-empty string"}
			}
			entry.IngredientName = strings.TrimSpace(name)
		case "imageUrl":
			url, ok := value.(string)
			if !ok && value != nil {
				return &ValidationError{Field: key, Message: "must be a string"}
			}
			entry.ImageURL = url
		case "consumedAt":
			str, ok := value.(string)
			if !ok {
				return &ValidationError{Field: key, Message: "must be an RFC 3339 timestamp"}
			}
			at, err := time.Parse(time.RFC3339, str)
			if err != nil {
				return &ValidationError{Field: key, Message: "must be an RFC 3339 timestamp"}
			}
			entry.ConsumedAt = at
		default:
			field := entry.Nutrients.Field(key)
			if field == nil {
				continue
			}
			switch v := value.(type) {
			case float64:
				*field = v
			case nil:
				if slices.Contains(nutrition.RequiredKeys, key) {
					return &ValidationError{Field: key, Message: "is required"}
				}
				*field = 0
			default:
				return &ValidationError{Field: key, Message: "must be a number"}
			}
		}
	}
	return nil
}
