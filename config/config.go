package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port         string
	JWTSecret    string
	TokenTTL     int // in seconds
	DataDir      string
	LogLevel     string
	AuthRequired bool
}

func Load() Config {
	port := getEnv("PORT", "5000")
	secret := getEnv("JWT_SECRET", "dev-super-secret-change-me")
	tokenTTL := getEnvAsInt("TOKEN_TTL_SECONDS", 3600)
	dataDir := getEnv("DATA_DIR", "data")
	logLevel := getEnv("LOG_LEVEL", "info")
	authRequired := getEnvAsBool("AUTH_REQUIRED", true)

	return Config{
		Port:         port,
		JWTSecret:    secret,
		TokenTTL:     tokenTTL,
		DataDir:      dataDir,
		LogLevel:     logLevel,
		AuthRequired: authRequired,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
