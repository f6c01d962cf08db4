// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings.
type Config struct {
	Port               string
	AllowedOrigin      string
	DatabasePath       string
	MigrationsPath     string
	CheckpointInterval time.Duration
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Could not load .env file: %v", err)
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		AllowedOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		DatabasePath:       getEnv("DB_PATH", "./social_network.db"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "pkg/db/migrations/sqlite"),
		CheckpointInterval: getEnvAsDuration("CHECKPOINT_INTERVAL", 30*time.Second),
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration or returns
// a default value. Plain integers are read as seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
