package database_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/database"
	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/testhelpers"
)

func TestNewSQLiteAndMigrate(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.New(cfg)
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db, "unused"))

	assert.True(t, db.Migrator().HasTable(&models.FoodEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.NutritionRecord{}))
	assert.True(t, db.Migrator().HasIndex(&models.FoodEntry{}, "idx_food_entries_user_consumed"))
	assert.NoError(t, database.HealthCheck(t.Context(), db))
}

func TestMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.sql", "001_a.sql", "001_a_rollback.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o644))
	}

	files, err := database.MigrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_a.sql", "002_b.sql"}, files)

	_, err = database.MigrationFiles(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRunMigrationsPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	require.NoError(t, db.Migrator().DropTable(models.All()...))

	require.NoError(t, database.RunMigrations(db, "../../migrations"))
	require.NoError(t, database.RunMigrations(db, "../../migrations"))

	assert.True(t, db.Migrator().HasTable("food_entries"))
	assert.True(t, db.Migrator().HasColumn(&models.FoodEntry{}, "embedding"))
	assert.True(t, db.Migrator().HasColumn(&models.NutritionRecord{}, "saturated_fat"))

	user := testhelpers.CreateTestUser(t, db)
	assert.NotEmpty(t, user.ID)
}
