// Package config loads runtime configuration from the environment, with a
// best-effort .env file for local development.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	BackendURL      string
	HTTPPort        string
	RedisAddr       string
	PostgresURL     string
	CatalogCacheTTL time.Duration
}

func Load() Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return Config{
		BackendURL:      must("BACKEND_URL"),
		HTTPPort:        getOrDefault("HTTP_PORT", "8080"),
		RedisAddr:       getOrDefault("REDIS_ADDR", "localhost:6379"),
		PostgresURL:     must("POSTGRES_URL"),
		CatalogCacheTTL: durationOrDefault("CATALOG_CACHE_TTL", 30*time.Second),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		logrus.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
