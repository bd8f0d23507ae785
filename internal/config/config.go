package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	LogLevel    string
	Store       StoreConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
}

// StoreConfig selects and parameterizes the item-store adapter
type StoreConfig struct {
	Type         string // "dynamodb", "sqlite" or "memory"
	Region       string
	Endpoint     string // non-empty to target DynamoDB Local
	SQLitePath   string
	KeyAttribute string
}

// AuthConfig holds the optional bearer-token guard for the dev server
type AuthConfig struct {
	Enabled   bool
	JWTSecret string
}

// RateLimitConfig holds rate limiting for the dev server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_TYPE", "sqlite")
	viper.SetDefault("STORE_SQLITE_PATH", "./data/items.db")
	viper.SetDefault("STORE_KEY_ATTRIBUTE", "id")
	viper.SetDefault("AUTH_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		LogLevel:    viper.GetString("LOG_LEVEL"),
		Store: StoreConfig{
			Type:         viper.GetString("STORE_TYPE"),
			Region:       viper.GetString("AWS_REGION"),
			Endpoint:     viper.GetString("STORE_ENDPOINT"),
			SQLitePath:   viper.GetString("STORE_SQLITE_PATH"),
			KeyAttribute: viper.GetString("STORE_KEY_ATTRIBUTE"),
		},
		Auth: AuthConfig{
			Enabled:   viper.GetBool("AUTH_ENABLED"),
			JWTSecret: viper.GetString("JWT_SECRET"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
