// Package config loads the service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the API binary needs to start.
type Config struct {
	Addr string

	StorageDriver string
	SQLitePath    string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	PremiumPrice    float64
	DeliveryWorkers int
	DeliveryQueue   int
}

// Load reads the environment, falling back to sensible defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr: getEnvWithDefault("ADDR", ":8080"),

		StorageDriver: getEnvWithDefault("STORAGE_DRIVER", "sqlite"),
		SQLitePath:    getEnvWithDefault("SQLITE_PATH", "cadenza.db"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnvAsIntWithDefault("DB_PORT", 5432),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),

		PremiumPrice:    getEnvAsFloatWithDefault("PREMIUM_PRICE", 1_000_000),
		DeliveryWorkers: getEnvAsIntWithDefault("DELIVERY_WORKERS", 2),
		DeliveryQueue:   getEnvAsIntWithDefault("DELIVERY_QUEUE", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the binary cannot run with.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite driver")
		}
	case "postgres":
		if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
			return errors.New("DB_HOST, DB_USER and DB_NAME are required for the postgres driver")
		}
	default:
		return errors.New("STORAGE_DRIVER must be sqlite or postgres")
	}

	if c.PremiumPrice <= 0 {
		return errors.New("PREMIUM_PRICE must be positive")
	}
	if c.DeliveryWorkers < 1 {
		return errors.New("DELIVERY_WORKERS must be at least 1")
	}
	if c.DeliveryQueue < 1 {
		return errors.New("DELIVERY_QUEUE must be at least 1")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloatWithDefault(key string, defaultValue float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
