package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/dsamastery/internal/logger"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	CatalogDir          string
	ContentBaseURL      string
	ContentPrefetch     bool
	PrefetchWorkerCount int
	PrefetchQueueSize   int
	Timezone            string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:dsamastery.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		CatalogDir:          envOr("CATALOG_DIR", "data"),
		ContentBaseURL:      envOr("CONTENT_BASE_URL", ""),
		ContentPrefetch:     envBoolOr("CONTENT_PREFETCH", false),
		PrefetchWorkerCount: envIntOr("PREFETCH_WORKER_COUNT", 2),
		PrefetchQueueSize:   envIntOr("PREFETCH_QUEUE_SIZE", 32),
		Timezone:            envOr("TIMEZONE", "Local"),
	}
}

// Validate reports every invalid setting in a single error.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.PrefetchWorkerCount <= 0 {
		problems = append(problems, fmt.Sprintf("PREFETCH_WORKER_COUNT must be positive (got %d)", c.PrefetchWorkerCount))
	}
	if c.PrefetchQueueSize <= 0 {
		problems = append(problems, fmt.Sprintf("PREFETCH_QUEUE_SIZE must be positive (got %d)", c.PrefetchQueueSize))
	}
	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE is invalid: %v", err))
	}
	if c.ContentBaseURL != "" {
		u, err := url.Parse(c.ContentBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			problems = append(problems, fmt.Sprintf("CONTENT_BASE_URL must be an absolute http(s) URL (got %q)", c.ContentBaseURL))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Location resolves Timezone; empty and "Local" mean the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
