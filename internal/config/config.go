package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	APIBaseURL     string
	AppURL         string
	StorageBackend string // "file", "redis" or "memory"
	StorageDir     string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		AppURL:         getEnv("APP_URL", "http://localhost:8100"),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		StorageDir:     getEnv("STORAGE_DIR", ".yams"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisPass:      os.Getenv("REDIS_PASSWORD"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
