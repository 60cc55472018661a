package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDriver        string
	DBSource        string
	Port            string
	GinMode         string
	MonitorInterval time.Duration
	SnapshotLimit   int
}

// Load reads the environment with development fallbacks. godotenv has
// already populated the environment from .env by the time this runs.
func Load() *Config {
	return &Config{
		DBDriver:        getEnv("DB_DRIVER", "sqlite"),
		DBSource:        getEnv("DB_SOURCE", "pos.db"),
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		MonitorInterval: time.Duration(getEnvInt("MONITOR_INTERVAL_MS", 1000)) * time.Millisecond,
		SnapshotLimit:   getEnvInt("ORDER_SNAPSHOT_LIMIT", 50),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
