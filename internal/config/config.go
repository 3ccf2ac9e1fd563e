package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Cart persistence backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Port string

	CatalogURL     string
	CatalogTimeout time.Duration

	// CartBackend selects where cart slots live: a local directory (file)
	// or a shared Redis (redis).
	CartBackend string
	RedisAddr   string
	CartDir     string

	PageSize int
}

func Load() Config {
	return Config{
		Port: getenv("PORT", "8080"),

		CatalogURL:     getenv("CATALOG_URL", "https://api.insany.co"),
		CatalogTimeout: parseDuration(getenv("CATALOG_TIMEOUT", "10s"), 10*time.Second),

		CartBackend: getenv("CART_BACKEND", BackendFile),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		CartDir:     getenv("CART_DIR", "data"),

		PageSize: parseInt(getenv("PAGE_SIZE", "6"), 6),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func parseInt(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}
