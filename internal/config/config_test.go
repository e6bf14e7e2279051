package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/theoryflash/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                 ":8080",
		DBPath:               "test.db",
		LogLevel:             "INFO",
		Timezone:             "UTC",
		DailyGoalTarget:      20,
		DailyGoalBonusXP:     50,
		FlashcardSessionSize: 20,
		PersistWorkerCount:   2,
		PersistQueueSize:     128,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		message string
	}{
		{
			name:    "empty addr",
			mutate:  func(c *config.Config) { c.Addr = "" },
			message: "ADDR cannot be empty",
		},
		{
			name:    "empty db path",
			mutate:  func(c *config.Config) { c.DBPath = "  " },
			message: "DB_PATH cannot be empty",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *config.Config) { c.Timezone = "Mars/Olympus_Mons" },
			message: "TIMEZONE",
		},
		{
			name:    "zero goal target",
			mutate:  func(c *config.Config) { c.DailyGoalTarget = 0 },
			message: "DAILY_GOAL_TARGET",
		},
		{
			name:    "negative bonus",
			mutate:  func(c *config.Config) { c.DailyGoalBonusXP = -1 },
			message: "DAILY_GOAL_BONUS_XP",
		},
		{
			name:    "session too large",
			mutate:  func(c *config.Config) { c.FlashcardSessionSize = 101 },
			message: "FLASHCARD_SESSION_SIZE",
		},
		{
			name:    "session zero",
			mutate:  func(c *config.Config) { c.FlashcardSessionSize = 0 },
			message: "FLASHCARD_SESSION_SIZE",
		},
		{
			name:    "no workers",
			mutate:  func(c *config.Config) { c.PersistWorkerCount = 0 },
			message: "PERSIST_WORKER_COUNT",
		},
		{
			name:    "no queue",
			mutate:  func(c *config.Config) { c.PersistQueueSize = 0 },
			message: "PERSIST_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()

	cfg.Timezone = "Local"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = ""
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Europe/Berlin"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "TIMEZONE", "DAILY_GOAL_TARGET",
		"DAILY_GOAL_BONUS_XP", "FLASHCARD_SESSION_SIZE", "CATALOG_PATH", "CONTENT_PATH",
		"PERSIST_WORKER_COUNT", "PERSIST_QUEUE_SIZE"} {
		t.Setenv(key, "")
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:theoryflash.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 20, cfg.DailyGoalTarget)
	assert.Equal(t, 50, cfg.DailyGoalBonusXP)
	assert.Equal(t, 20, cfg.FlashcardSessionSize)
	assert.Equal(t, 2, cfg.PersistWorkerCount)
	assert.Equal(t, 128, cfg.PersistQueueSize)
	assert.Empty(t, cfg.CatalogPath)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DAILY_GOAL_TARGET", "35")
	t.Setenv("PERSIST_QUEUE_SIZE", "not-a-number")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 35, cfg.DailyGoalTarget)
	assert.Equal(t, 128, cfg.PersistQueueSize, "invalid ints fall back to the default")
}
