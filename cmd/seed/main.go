package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/database"
	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/models"
	"github.com/nutrilens/backend/internal/service"
	"github.com/nutrilens/backend/internal/types"
)

const demoPassword = "testpassword123"

type demoUser struct {
	email     string
	firstName string
	lastName  string
}

var demoUsers = []demoUser{
	{email: "john.doe@example.com", firstName: "John", lastName: "Doe"},
	{email: "jane.smith@example.com", firstName: "Jane", lastName: "Smith"},
}

// demoMeals is one day of food, logged at the given hour.
var demoMeals = []struct {
	hour  int
	entry types.FoodEntryInput
}{
	{8, meal("Oatmeal", 240, 150, 5, 27, 3, 4)},
	{8, meal("Banana", 118, 105, 1.3, 27, 0.4, 3.1)},
	{13, meal("Chicken breast", 150, 248, 46, 0, 5.4, 0)},
	{13, meal("Brown rice", 195, 216, 5, 45, 1.8, 3.5)},
	{19, meal("Salmon", 140, 290, 31, 0, 18, 0)},
	{19, meal("Broccoli", 91, 31, 2.5, 6, 0.3, 2.4)},
}

func meal(name string, portion, calories, protein, carbs, fat, fiber float64) types.FoodEntryInput {
	in := types.FoodEntryInput{
		IngredientName: name,
		PortionSizeG:   &portion,
		Calories:       &calories,
		ProteinG:       &protein,
		CarbohydratesG: &carbs,
		FatG:           &fat,
	}
	in.FiberG = fiber
	return in
}

func main() {
	days := flag.Int("days", 7, "days of meals to log for each demo user")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, "migrations"); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	entries := service.NewFoodEntryService(db, cfg.Timezone)
	exercises := service.NewExerciseService(db)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	for _, u := range demoUsers {
		var existing models.User
		err := db.Where("email = ?", u.email).First(&existing).Error
		if err == nil {
			logger.Info("user already exists, skipping", zap.String("email", u.email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Fatal("failed to look up user", zap.String("email", u.email), zap.Error(err))
		}

		user := models.User{
			Email:        u.email,
			FirstName:    u.firstName,
			LastName:     u.lastName,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			logger.Fatal("failed to create user", zap.String("email", u.email), zap.Error(err))
		}

		logged, err := seedMeals(ctx, entries, user, *days, cfg.Timezone)
		if err != nil {
			logger.Fatal("failed to log meals", zap.String("email", u.email), zap.Error(err))
		}

		frequency, hours := 3, 1.0
		if _, err := exercises.Create(ctx, user.ID, types.ExerciseRequest{
			ExerciseType: "Running",
			Frequency:    &frequency,
			Hours:        &hours,
		}); err != nil {
			logger.Fatal("failed to create exercise record", zap.String("email", u.email), zap.Error(err))
		}

		logger.Info("seeded demo user", zap.String("email", u.email), zap.Int("entries", logged))
	}

	logger.Info("seeding complete", zap.String("password", demoPassword))
}

func seedMeals(ctx context.Context, entries *service.FoodEntryService, user models.User, days int, loc *time.Location) (int, error) {
	today := time.Now().In(loc)
	var inputs []types.FoodEntryInput
	for d := 0; d < days; d++ {
		day := today.AddDate(0, 0, -d)
		for _, m := range demoMeals {
			at := time.Date(day.Year(), day.Month(), day.Day(), m.hour, 0, 0, 0, loc)
			if at.After(today) {
				continue
			}
			in := m.entry
			in.ConsumedAt = &at
			inputs = append(inputs, in)
		}
	}
	if len(inputs) == 0 {
		return 0, nil
	}
	saved, err := entries.Create(ctx, user.ID, inputs)
	return len(saved), err
}
