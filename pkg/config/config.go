package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	FirebaseProject    string
	FirebaseApiKey     string
	Environment        string
	RedisAddr          string
	TrendCacheTTLSecs  int64
	TrendFallbackOnErr bool
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:     getEnv("FIREBASE_API_KEY", ""),
		Environment:        getEnv("ENVIRONMENT", "development"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		TrendCacheTTLSecs:  getEnvAsInt64("TREND_CACHE_TTL_SECONDS", 300),
		TrendFallbackOnErr: getEnv("TREND_FALLBACK_ON_ERROR", "true") == "true",
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}
