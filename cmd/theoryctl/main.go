package main

import (
	"os"

	"github.com/vytor/theoryflash/internal/app"
	"github.com/vytor/theoryflash/internal/cli"
	"github.com/vytor/theoryflash/internal/config"
	"github.com/vytor/theoryflash/internal/logger"
)

func main() {
	cfg := config.Load()

	// Keep table output clean unless a level is asked for explicitly.
	level := logger.WARN
	if os.Getenv("LOG_LEVEL") != "" {
		level = logger.ParseLevel(cfg.LogLevel)
	}
	logger.SetDefault(logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(level),
		logger.WithColors(false),
	))

	if err := cli.NewRootCommand(cfg, app.New).Execute(); err != nil {
		os.Exit(1)
	}
}
