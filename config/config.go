package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string
	// Timezone used for day and month boundaries in nutrition statistics
	Timezone *time.Location

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	JWTTTL    time.Duration

	// Gemini configuration
	GeminiAPIKey    string
	GeminiModel     string
	VisionModel     string
	AnalysisTimeout time.Duration

	// Photo storage; uploads skip S3 when the bucket is empty
	S3Bucket  string
	AWSRegion string

	// Health analysis requests allowed per user per hour
	AnalysisRateLimit int

	// Browser origins allowed by CORS
	CORSOrigins []string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultGeminiModel     = "gemini-2.5-flash"
	defaultCORSOrigins     = "http://localhost:5173,http://frontend:5173"
	defaultAnalysisTimeout = 60 * time.Second
	defaultJWTTTL          = 24 * time.Hour
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := loadCommon(cfg); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything from the environment; secrets are injected as variables by the runner
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	if cfg.DBPassword == "" {
		return fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
	}
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	return nil
}

// loadDevConfig prefers environment variables and falls back to Docker secrets for credentials
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "localhost")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nutrilens.db")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBName = getEnv("DB_NAME", "nutrilens")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.DBUser = envOrSecret("DB_USER", "db_user", "postgres")
	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password", "postgres")
	cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret", "dev-jwt-secret")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password", "")
	cfg.GeminiAPIKey = envOrSecret("GEMINI_API_KEY", "gemini_api_key", "")
}

// loadProdConfig loads credentials only from Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", readSecret("server_port"))
	cfg.ServerHost = getEnv("SERVER_HOST", readSecret("server_host"))
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = getEnv("DB_HOST", readSecret("db_host"))
	cfg.DBPort = getEnv("DB_PORT", readSecret("db_port"))
	cfg.DBName = getEnv("DB_NAME", readSecret("db_name"))
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", readSecret("db_ssl_mode"))
	cfg.RedisHost = getEnv("REDIS_HOST", readSecret("redis_host"))
	cfg.RedisPort = getEnv("REDIS_PORT", readSecret("redis_port"))
	cfg.RedisURL = readSecret("redis_url")

	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.GeminiAPIKey = readSecret("gemini_api_key")
}

// loadCommon fills the settings that are read the same way in every environment
func loadCommon(cfg *Config) error {
	cfg.RedisDB = 0
	cfg.GeminiModel = getEnv("GEMINI_MODEL", defaultGeminiModel)
	cfg.VisionModel = getEnv("GEMINI_VISION_MODEL", cfg.GeminiModel)
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")

	var err error
	if cfg.AnalysisTimeout, err = getDuration("ANALYSIS_TIMEOUT", defaultAnalysisTimeout); err != nil {
		return err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return err
	}

	cfg.AnalysisRateLimit = 10
	if v := os.Getenv("ANALYSIS_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: "ANALYSIS_RATE_LIMIT", Message: "must be an integer"}
		}
		cfg.AnalysisRateLimit = n
	}

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", defaultCORSOrigins), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	tz := getEnv("TZ_NAME", "Local")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return ValidationError{Field: "TZ_NAME", Message: fmt.Sprintf("unknown timezone %q", tz)}
	}
	cfg.Timezone = loc

	return nil
}

// PostgresDSN builds the connection string for the PostgreSQL driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be a duration such as 60s"}
	}
	return d, nil
}

func envOrSecret(key, secret, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(secret); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
