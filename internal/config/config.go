package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config carries all runtime settings. It is built once in main and passed
// down explicitly; nothing reads the environment after startup.
type Config struct {
	HTTPPort          string
	DatabaseURL       string
	SessionSecret     string
	SessionTTL        time.Duration
	RememberTTL       time.Duration
	AssetThesisUnique bool
}

// Load reads configuration from the environment, loading .env first if one
// is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		DatabaseURL:       getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=assetboard port=5432 sslmode=disable"),
		SessionSecret:     getEnv("SESSION_SECRET", "dev-secret-change-me"),
		SessionTTL:        getDuration("SESSION_TTL", time.Hour),
		RememberTTL:       getDuration("SESSION_REMEMBER_TTL", 30*24*time.Hour),
		AssetThesisUnique: getBool("ASSET_THESIS_UNIQUE", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %s", key, value, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using %v", key, value, fallback)
		return fallback
	}
	return b
}
