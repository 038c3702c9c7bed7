package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Snapshot backends selectable via SNAPSHOT_BACKEND
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Palette holds the chart colors handed to the dashboard UI. It is fixed
// at startup and never changes at runtime.
type Palette struct {
	LineColor string `json:"lineColor"`
	BarColor  string `json:"barColor"`
}

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Store configuration
	DataDir         string
	SnapshotKey     string
	SnapshotBackend string

	// Aggregation configuration
	TopProductLimit int

	// Presentation configuration
	Palette Palette

	// Logging configuration
	LogFormat string
	LogLevel  string
}

// LoadConfig loads the application configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file. Using environment variables.")
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	// Create and populate config
	config := &Config{
		// Server configuration
		Port:         getEnvInt("PORT", 8080),
		ReadTimeout:  time.Duration(getEnvInt("READ_TIMEOUT", 15)) * time.Second,
		WriteTimeout: time.Duration(getEnvInt("WRITE_TIMEOUT", 15)) * time.Second,

		// Store configuration
		DataDir:         getEnvString("DATA_DIR", "data"),
		SnapshotKey:     getEnvString("SNAPSHOT_KEY", "sales-dashboard-data"),
		SnapshotBackend: strings.ToLower(getEnvString("SNAPSHOT_BACKEND", BackendFile)),

		// Aggregation configuration
		TopProductLimit: getEnvInt("TOP_PRODUCT_LIMIT", 10),

		// Presentation configuration
		Palette: Palette{
			LineColor: getEnvString("CHART_LINE_COLOR", "#1f77b4"),
			BarColor:  getEnvString("CHART_BAR_COLOR", "#ff7f0e"),
		},

		// Logging configuration
		LogFormat: getEnvString("LOG_FORMAT", "json"),
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
	}

	// Validate configuration
	validateConfig(config)

	return config, nil
}

// validateConfig checks configuration values and falls back to safe defaults
func validateConfig(config *Config) {
	if config.SnapshotBackend != BackendFile && config.SnapshotBackend != BackendSQLite {
		log.Printf("Warning: unknown snapshot backend %q, using %q", config.SnapshotBackend, BackendFile)
		config.SnapshotBackend = BackendFile
	}

	if config.TopProductLimit < 1 {
		log.Printf("Warning: invalid top product limit %d, using 10", config.TopProductLimit)
		config.TopProductLimit = 10
	}
}

// getEnvInt gets an integer from an environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvString gets a string from an environment variable with a default value
func getEnvString(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
