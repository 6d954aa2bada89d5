package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requiredFields lists the settings that must be non-empty per environment
var requiredFields = map[Environment][]string{
	Development: {"SERVER_PORT", "JWT_SECRET"},
	Test:        {"SERVER_PORT", "JWT_SECRET"},
	CI:          {"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET"},
	Production: {
		"SERVER_PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_HOST", "REDIS_PORT", "JWT_SECRET", "GEMINI_API_KEY",
	},
}

func fieldValue(cfg *Config, name string) string {
	switch name {
	case "SERVER_PORT":
		return cfg.ServerPort
	case "DB_HOST":
		return cfg.DBHost
	case "DB_PORT":
		return cfg.DBPort
	case "DB_USER":
		return cfg.DBUser
	case "DB_PASSWORD":
		return cfg.DBPassword
	case "DB_NAME":
		return cfg.DBName
	case "REDIS_HOST":
		return cfg.RedisHost
	case "REDIS_PORT":
		return cfg.RedisPort
	case "JWT_SECRET":
		return cfg.JWTSecret
	case "GEMINI_API_KEY":
		return cfg.GeminiAPIKey
	}
	return ""
}

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errors []string
	for _, name := range requiredFields[env] {
		if fieldValue(cfg, name) == "" {
			errors = append(errors, ValidationError{Field: name, Message: "is required"}.Error())
		}
	}

	if cfg.DBDriver != DriverPostgres && cfg.DBDriver != DriverSQLite {
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: "must be postgres or sqlite"}.Error())
	}
	if cfg.DBDriver == DriverSQLite && env == Production {
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"}.Error())
	}
	if cfg.AnalysisTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "ANALYSIS_TIMEOUT", Message: "must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
