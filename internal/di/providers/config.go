// Package providers contains dependency injection providers for the report pipeline.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting playback report pipeline",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"site", cfg.Report.SiteName,
		"policy", cfg.Report.ClassificationPolicy,
	)

	return log, nil
}
