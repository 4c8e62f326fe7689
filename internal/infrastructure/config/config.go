package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Record store
	RecordsFile  string
	AtomicWrites bool

	// Reference data (countries/cities CSV files)
	RefDataDir string

	// Metrics
	MetricsNamespace string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		RecordsFile:  getEnv("RECORDS_FILE", "data/records.jsonl"),
		AtomicWrites: getEnvAsBool("RECORDS_ATOMIC_WRITES", false),

		RefDataDir: getEnv("REFDATA_DIR", "data"),

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "travelrecords"),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
