package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	LogLevel             string
	Timezone             string
	DailyGoalTarget      int
	DailyGoalBonusXP     int
	FlashcardSessionSize int
	CatalogPath          string
	ContentPath          string
	PersistWorkerCount   int
	PersistQueueSize     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:theoryflash.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		Timezone:             envOr("TIMEZONE", "Local"),
		DailyGoalTarget:      envIntOr("DAILY_GOAL_TARGET", 20),
		DailyGoalBonusXP:     envIntOr("DAILY_GOAL_BONUS_XP", 50),
		FlashcardSessionSize: envIntOr("FLASHCARD_SESSION_SIZE", 20),
		CatalogPath:          os.Getenv("CATALOG_PATH"),
		ContentPath:          os.Getenv("CONTENT_PATH"),
		PersistWorkerCount:   envIntOr("PERSIST_WORKER_COUNT", 2),
		PersistQueueSize:     envIntOr("PERSIST_QUEUE_SIZE", 128),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE %q is invalid: %w", c.Timezone, err)
	}
	if c.DailyGoalTarget < 1 {
		return fmt.Errorf("DAILY_GOAL_TARGET must be at least 1, got %d", c.DailyGoalTarget)
	}
	if c.DailyGoalBonusXP < 0 {
		return fmt.Errorf("DAILY_GOAL_BONUS_XP cannot be negative, got %d", c.DailyGoalBonusXP)
	}
	if c.FlashcardSessionSize < 1 || c.FlashcardSessionSize > 100 {
		return fmt.Errorf("FLASHCARD_SESSION_SIZE must be between 1 and 100, got %d", c.FlashcardSessionSize)
	}
	if c.PersistWorkerCount < 1 {
		return fmt.Errorf("PERSIST_WORKER_COUNT must be at least 1, got %d", c.PersistWorkerCount)
	}
	if c.PersistQueueSize < 1 {
		return fmt.Errorf("PERSIST_QUEUE_SIZE must be at least 1, got %d", c.PersistQueueSize)
	}
	return nil
}

// Location resolves Timezone. An empty value or "Local" means the host zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
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
