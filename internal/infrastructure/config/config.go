// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable via STORE_BACKEND
const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Persistent store
	StoreBackend string
	MongoURI     string
	MongoDB      string
	PostgresURI  string

	// Live updates; an empty URL disables the broker transport
	LiveUpdateURL   string
	LiveUpdateQueue string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		StoreBackend: getEnv("STORE_BACKEND", StoreMemory),
		MongoURI:     getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:      getEnv("MONGO_DB", "logisticshub"),
		PostgresURI:  getEnv("POSTGRES_DSN", ""),

		LiveUpdateURL:   getEnv("LIVE_UPDATE_URL", ""),
		LiveUpdateQueue: getEnv("LIVE_UPDATE_QUEUE", "shipment-updates"),
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

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
