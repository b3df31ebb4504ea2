package main

import (
	"github.com/osse101/satchel/internal/config"
	"github.com/osse101/satchel/internal/logger"
)

// newLoggerConfig derives the logger settings from the app configuration
func newLoggerConfig(cfg *config.Config) logger.Config {
	// Source locations only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	return logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		cfg.ServiceName,
		cfg.Version,
		cfg.Environment,
		addSource,
	)
}
