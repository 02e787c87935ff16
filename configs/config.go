package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port                  string
	Environment           string
	LogLevel              string
	APIKey                string
	AdminUsername         string
	AdminPassword         string
	HistoricalDataPath    string
	StaffingProfilesPath  string
	DefaultProfile        string
	FallbackCallsPerShift float64
	MaxCallsPerAgent      int // 0 の場合はプロファイルの値を使う
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		APIKey:                getEnv("API_KEY", ""),
		AdminUsername:         getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:         getEnv("ADMIN_PASSWORD", ""),
		HistoricalDataPath:    getEnv("HISTORICAL_DATA_PATH", "data/historical_data.csv"),
		StaffingProfilesPath:  getEnv("STAFFING_PROFILES_PATH", "configs/staffing_profiles.yaml"),
		DefaultProfile:        getEnv("DEFAULT_PROFILE", "standard"),
		FallbackCallsPerShift: getEnvFloat("FALLBACK_CALLS_PER_SHIFT", 100),
		MaxCallsPerAgent:      getEnvInt("MAX_CALLS_PER_AGENT", 0),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}
