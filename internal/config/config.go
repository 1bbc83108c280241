// Package config loads application settings from the environment, with
// an optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Server configuration
	Port         int
	MaxWorkers   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string

	// Vision model configuration
	OpenAIAPIKey  string
	OpenAIModelID string
	OpenAITimeout time.Duration

	// History persistence. Backend is "file" or "postgres".
	HistoryBackend string
	HistoryDir     string
	PostgresDBURL  string

	// Receipt image archive (optional)
	ArchiveImages   bool
	S3Endpoint      string
	S3AccessKeyID   string
	S3AccessSecret  string
	S3Bucket        string
	S3Region        string

	// Logging
	LogFormat string
	LogLevel  string
}

// LoadConfig loads the application configuration from environment
// variables.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	config := &Config{
		Port:         getEnvInt("PORT", 8080),
		MaxWorkers:   getEnvInt("MAX_WORKERS", 5),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 30)) * time.Second,
		CORSOrigins:  getEnvStringSlice("CORS_ORIGINS", []string{"*"}),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModelID: getEnvString("OPENAI_MODEL_ID", "gpt-4o-mini"),
		OpenAITimeout: time.Duration(getEnvInt("OPENAI_TIMEOUT", 10)) * time.Second,

		HistoryBackend: getEnvString("HISTORY_BACKEND", "file"),
		HistoryDir:     getEnvString("HISTORY_DIR", "data"),
		PostgresDBURL:  os.Getenv("POSTGRES_DB_URL"),

		ArchiveImages:  getEnvBool("ARCHIVE_IMAGES", false),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:  os.Getenv("S3_ACCESS_KEY_ID"),
		S3AccessSecret: os.Getenv("S3_ACCESS_KEY_SECRET"),
		S3Bucket:       getEnvString("S3_BUCKET", "receipts"),
		S3Region:       getEnvString("S3_REGION", "us-east-1"),

		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
	}

	validateConfig(config)

	return config, nil
}

// validateConfig logs warnings for missing values that will break
// features at runtime.
func validateConfig(config *Config) {
	if config.OpenAIAPIKey == "" {
		slog.Warn("no OpenAI API key provided, receipt scans will fail")
	}

	if config.HistoryBackend == "postgres" && config.PostgresDBURL == "" {
		slog.Warn("history backend is postgres but POSTGRES_DB_URL is not set, falling back to file storage")
		config.HistoryBackend = "file"
	}

	if config.ArchiveImages && (config.S3Endpoint == "" || config.S3AccessKeyID == "") {
		slog.Warn("image archival enabled but S3 settings are incomplete, disabling archival")
		config.ArchiveImages = false
	}
}

// getEnvInt gets an integer from an environment variable with a default
// value.
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer environment value, using default",
			"key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}

	return value
}

// getEnvBool gets a boolean from an environment variable with a default
// value.
func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	valueStr = strings.ToLower(valueStr)
	return valueStr == "true" || valueStr == "1" || valueStr == "yes"
}

// getEnvString gets a string from an environment variable with a
// default value.
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvStringSlice gets a string slice from a comma-separated
// environment variable.
func getEnvStringSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	return strings.Split(valueStr, ",")
}
