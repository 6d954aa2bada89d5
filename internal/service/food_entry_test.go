package service_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/nutrition"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/testhelpers"
	"github.com/nutrilens/backend/internal/types"
)

func ptr[T any](v T) *T { return &v }

func validInput(name string, calories float64) types.FoodEntryInput {
	return types.FoodEntryInput{
		IngredientName: name,
		PortionSizeG:   ptr(100.0),
		Calories:       ptr(calories),
		ProteinG:       ptr(10.0),
		CarbohydratesG: ptr(20.0),
		FatG:           ptr(5.0),
	}
}

func setupFoodEntries(t *testing.T) (*service.FoodEntryService, *gorm.DB, *models.User) {
	db := testhelpers.SetupSQLite(t)
	user := testhelpers.CreateTestUser(t, db)
	return service.NewFoodEntryService(db, time.UTC), db, user
}

func TestCreateFoodEntries(t *testing.T) {
	svc, _, user := setupFoodEntries(t)
	ctx := context.Background()

	in := validInput("Oats", 389)
	in.FiberG = 10.6
	entries, err := svc.Create(ctx, user.ID, []types.FoodEntryInput{in, validInput("Milk", 42)})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, user.ID, entries[0].UserID)
	assert.Equal(t, 389.0, entries[0].Calories)
	assert.Equal(t, 10.6, entries[0].FiberG)
	assert.False(t, entries[0].ConsumedAt.IsZero())
	require.NotNil(t, entries[0].Embedding)
	assert.Equal(t, service.IngredientEmbedding("Oats").Slice(), entries[0].Embedding.Slice())
}

func TestCreateWithRequiredFieldsOnlyReadsBackZeroOptionals(t *testing.T) {
	svc, _, user := setupFoodEntries(t)
	ctx := context.Background()

	saved, err := svc.Create(ctx, user.ID, []types.FoodEntryInput{validInput("Plain yogurt", 61)})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, user.ID, saved[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Plain yogurt", loaded.IngredientName)
	assert.Empty(t, loaded.ImageURL)
	assert.Equal(t, nutrition.Nutrients{
		PortionSizeG:   100,
		Calories:       61,
		ProteinG:       10,
		CarbohydratesG: 20,
		FatG:           5,
	}, loaded.Nutrients)

	for _, key := range nutrition.AllKeys {
		if slices.Contains(nutrition.RequiredKeys, key) {
			continue
		}
		assert.Zero(t, *loaded.Nutrients.Field(key), key)
	}
}

func TestCreateRejectsWholeBatchOnMissingField(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	bad := validInput("Bread", 265)
	bad.FatG = nil

	_, err := svc.Create(context.Background(), user.ID, []types.FoodEntryInput{validInput("Egg", 155), bad})
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "Missing required fields in entry: Bread")

	var count int64
	require.NoError(t, db.Model(&models.FoodEntry{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateNamesUnnamedEntry(t *testing.T) {
	svc, _, user := setupFoodEntries(t)
	_, err := svc.Create(context.Background(), user.ID, []types.FoodEntryInput{{}})
	require.ErrorIs(t, err, service.ErrValidation)
	assert.Contains(t, err.Error(), "Unnamed entry")

	_, err = svc.Create(context.Background(), user.ID, nil)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	base := time.Now().Add(-48 * time.Hour)
	for i, name := range []string{"Apple", "Banana", "Apple pie", "Cherry"} {
		testhelpers.CreateFoodEntry(t, db, user.ID, name, base.Add(time.Duration(i)*time.Hour), 100, 1, 1, 1)
	}
	other := testhelpers.CreateTestUser(t, db)
	testhelpers.CreateFoodEntry(t, db, other.ID, "Apple", base, 100, 1, 1, 1)

	entries, page, err := svc.List(context.Background(), user.ID, service.ListFilter{Page: 1, Limit: 3})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Cherry", entries[0].IngredientName)
	assert.Equal(t, service.Pagination{Page: 1, Limit: 3, Total: 4, Pages: 2}, page)

	entries, page, err = svc.List(context.Background(), user.ID, service.ListFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Apple", entries[0].IngredientName)
	assert.Equal(t, 2, page.Page)

	entries, page, err = svc.List(context.Background(), user.ID, service.ListFilter{Ingredient: "APPLE"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, int64(2), page.Total)
}

func TestListFiltersByDays(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Old", time.Now().Add(-10*24*time.Hour), 100, 1, 1, 1)
	testhelpers.CreateFoodEntry(t, db, user.ID, "New", time.Now().Add(-time.Hour), 100, 1, 1, 1)

	entries, _, err := svc.List(context.Background(), user.ID, service.ListFilter{Days: 7})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "New", entries[0].IngredientName)
}

func TestGetUpdateDeleteAreOwnerScoped(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	ctx := context.Background()
	entry := testhelpers.CreateFoodEntry(t, db, user.ID, "Rice", time.Now(), 130, 2.7, 28, 0.3)
	stranger := uuid.New()

	_, err := svc.Get(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Update(ctx, stranger, entry.ID, map[string]any{"calories": 1.0})
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.Delete(ctx, stranger, entry.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	updated, err := svc.Update(ctx, user.ID, entry.ID, map[string]any{
		"ingredientName": "Brown rice",
		"calories":       111.0,
		"userId":         stranger.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Brown rice", updated.IngredientName)
	assert.Equal(t, 111.0, updated.Calories)
	assert.Equal(t, user.ID, updated.UserID)
	require.NotNil(t, updated.Embedding)
	assert.Equal(t, service.IngredientEmbedding("Brown rice").Slice(), updated.Embedding.Slice())

	deleted, err := svc.Delete(ctx, user.ID, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, deleted.ID)
	_, err = svc.Get(ctx, user.ID, entry.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestUpdateRejectsClearingRequiredField(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	entry := testhelpers.CreateFoodEntry(t, db, user.ID, "Rice", time.Now(), 130, 2.7, 28, 0.3)

	_, err := svc.Update(context.Background(), user.ID, entry.ID, map[string]any{"calories": nil})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestDailyStats(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Lunch", day.Add(12*time.Hour), 600, 30, 70, 20)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Breakfast", day.Add(8*time.Hour), 400, 20, 50, 10)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Midnight snack", day.Add(24*time.Hour), 999, 9, 9, 9)

	report, err := svc.DailyStats(context.Background(), user.ID, day)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", report.Date)
	assert.Equal(t, nutrition.DailyTotals{Calories: 1000, ProteinG: 50, CarbohydratesG: 120, FatG: 30, EntriesCount: 2}, report.Totals)
	require.Len(t, report.Entries, 2)
	assert.Equal(t, "Breakfast", report.Entries[0].IngredientName)
	assert.Equal(t, 2, report.Summary.TotalEntries)
	require.NotNil(t, report.Summary.FirstEntry)
	assert.True(t, report.Summary.FirstEntry.Equal(day.Add(8*time.Hour)))
	assert.True(t, report.Summary.LastEntry.Equal(day.Add(12*time.Hour)))
}

func TestDailyStatsEmptyDay(t *testing.T) {
	svc, _, user := setupFoodEntries(t)
	report, err := svc.DailyStats(context.Background(), user.ID, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, report.Entries)
	assert.Zero(t, report.Totals.EntriesCount)
	assert.Nil(t, report.Summary.FirstEntry)
}

func TestMonthlyStats(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	testhelpers.CreateFoodEntry(t, db, user.ID, "A", time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC), 1000, 50, 100, 30)
	testhelpers.CreateFoodEntry(t, db, user.ID, "B", time.Date(2025, 2, 3, 19, 0, 0, 0, time.UTC), 500, 10, 50, 20)
	testhelpers.CreateFoodEntry(t, db, user.ID, "C", time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC), 1500, 40, 150, 50)
	testhelpers.CreateFoodEntry(t, db, user.ID, "March", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 9999, 1, 1, 1)

	stats, err := svc.MonthlyStats(context.Background(), user.ID, 2025, time.February)
	require.NoError(t, err)
	assert.Equal(t, "February 2025", stats.MonthName)
	require.Len(t, stats.DailyStats, 2)
	assert.Equal(t, "2025-02-03", stats.DailyStats[0].Date)
	assert.Equal(t, 1500.0, stats.DailyStats[0].Calories)
	assert.Equal(t, 2, stats.MonthlyTotals.ActiveDays)
	assert.Equal(t, 3000.0, stats.MonthlyTotals.Calories)
	assert.Equal(t, 1500.0, stats.Averages.CaloriesPerDay)

	_, err = svc.MonthlyStats(context.Background(), user.ID, 2025, 13)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSince(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Recent", time.Now().Add(-2*time.Hour), 100, 1, 1, 1)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Latest", time.Now().Add(-time.Minute), 100, 1, 1, 1)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Stale", time.Now().Add(-8*24*time.Hour), 100, 1, 1, 1)

	entries, err := svc.Since(context.Background(), user.ID, 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Latest", entries[0].IngredientName)

	_, err = svc.Since(context.Background(), user.ID, 0)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestSimilarMatchesSubstring(t *testing.T) {
	svc, db, user := setupFoodEntries(t)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Green apple", time.Now().Add(-time.Hour), 52, 0.3, 14, 0.2)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Apple pie", time.Now(), 237, 2, 34, 11)
	testhelpers.CreateFoodEntry(t, db, user.ID, "Salmon", time.Now(), 208, 20, 0, 13)

	entries, err := svc.Similar(context.Background(), user.ID, "APPLE", 5)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Apple pie", entries[0].IngredientName)
	assert.Equal(t, "Green apple", entries[1].IngredientName)

	_, err = svc.Similar(context.Background(), user.ID, " ", 5)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func similarNames(t *testing.T, db *gorm.DB, query string) []string {
	t.Helper()
	user := testhelpers.CreateTestUser(t, db)
	other := testhelpers.CreateTestUser(t, db)
	svc := service.NewFoodEntryService(db, time.UTC)
	ctx := context.Background()

	_, err := svc.Create(ctx, user.ID, []types.FoodEntryInput{
		validInput("Pear", 57),
		validInput("Pearl barley", 352),
		validInput("Chickpea", 364),
		validInput("Milk", 42),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID, []types.FoodEntryInput{validInput("Pear", 57)})
	require.NoError(t, err)

	entries, err := svc.Similar(ctx, user.ID, query, 10)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.IngredientName
	}
	return names
}

func TestSimilarReturnsSameEntriesOnEveryDriver(t *testing.T) {
	lite := similarNames(t, testhelpers.SetupSQLite(t), "pear")
	assert.ElementsMatch(t, []string{"Pear", "Pearl barley"}, lite)

	pg := similarNames(t, testhelpers.SetupPostgres(t), "pear")
	assert.ElementsMatch(t, lite, pg)
}

func TestSimilarOrdersByEmbeddingDistance(t *testing.T) {
	db := testhelpers.SetupPostgres(t)

	names := similarNames(t, db, "PEAR")
	assert.Equal(t, []string{"Pear", "Pearl barley"}, names)

	user := testhelpers.CreateTestUser(t, db)
	svc := service.NewFoodEntryService(db, time.UTC)
	_, err := svc.Create(context.Background(), user.ID, []types.FoodEntryInput{
		validInput("Pineapple", 50),
		validInput("Green apple", 52),
		validInput("Apple pie", 237),
	})
	require.NoError(t, err)

	entries, err := svc.Similar(context.Background(), user.ID, "apple", 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Apple pie", entries[0].IngredientName)
	assert.Equal(t, "Green apple", entries[1].IngredientName)
}
