package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nutrilens/backend/config"
	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/database"
	"github.com/nutrilens/backend/internal/logger"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/router"
	"github.com/nutrilens/backend/internal/server"
	"github.com/nutrilens/backend/internal/service"
)

func main() {
	env := config.GetEnvironment()
	// Missing .env files are fine; the environment may already be set.
	_ = godotenv.Load(env.EnvFiles()...)

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if env == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db, getMigrationsDir()); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis backs upload drafts and rate limiting; both are skipped without it.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		if env == config.Production {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		logger.Warn("Redis unavailable, drafts and rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	ctx := context.Background()
	var (
		textModel  service.TextModel
		imageModel service.ImageModel
	)
	gemini, err := service.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.VisionModel)
	if err != nil {
		logger.Warn("Gemini unavailable, analysis and photo classification disabled", zap.Error(err))
	} else {
		defer gemini.Close()
		textModel, imageModel = gemini, gemini
	}

	var photos service.PhotoStore
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Warn("S3 unavailable, photos will not be stored", zap.Error(err))
		} else {
			photos = service.NewS3PhotoStore(s3Config)
		}
	}

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.JWTTTL)
	entryService := service.NewFoodEntryService(db, cfg.Timezone)
	analysisService := service.NewAnalysisService(textModel, cfg.AnalysisTimeout)
	visionService := service.NewVisionService(imageModel)
	exerciseService := service.NewExerciseService(db)
	recordService := service.NewNutritionRecordService(db)

	var (
		drafts  service.IDraftService
		limiter *middleware.RateLimiter
	)
	if redisClient != nil {
		defer redisClient.Close()
		drafts = service.NewDraftService(redisClient)
		limiter = middleware.NewAnalysisRateLimiter(redisClient, cfg.AnalysisRateLimit)
	}

	engine := router.SetupRouter(cfg.CORSOrigins,
		api.NewHealthHandler(db, redisClient),
		api.NewAuthHandler(authService),
		api.NewAnalysisHandler(entryService, analysisService, authService, limiter),
		api.NewFoodEntryHandler(entryService, authService),
		api.NewUploadHandler(visionService, drafts, photos, authService),
		api.NewExerciseHandler(exerciseService, authService),
		api.NewNutritionRecordHandler(recordService, authService),
	)

	if err := server.New(cfg, engine).Start(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func getMigrationsDir() string {
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	return "migrations"
}
