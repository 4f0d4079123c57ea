// Package main generates and delivers the annual playback report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/di"
	"github.com/zzstar101/jellyfin-playback-report/internal/di/providers"
	"github.com/zzstar101/jellyfin-playback-report/internal/id"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/poster"
	"github.com/zzstar101/jellyfin-playback-report/internal/report"
)

func main() {
	// Parsed together with the config flags inside LoadConfig.
	yearFlag := flag.Int("year", 0, "Report year (defaults to the current year)")

	injector := di.NewContainer()

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, injector, log, *yearFlag)

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	if runErr != nil {
		log.Error("Annual report failed", "error", runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, injector do.Injector, log *logger.Logger, year int) error {
	runID := id.MustGenerate("run")
	cfg := do.MustInvoke[*config.Config](injector)

	if year == 0 {
		year = time.Now().In(cfg.Report.Location()).Year()
	}
	log.Info("Building annual report", "run_id", runID, "year", year)

	builder := do.MustInvoke[*report.AnnualBuilder](injector)
	rep, err := builder.Build(ctx, year)
	if err != nil {
		return err
	}

	renderer := do.MustInvoke[*poster.Renderer](injector)
	path, err := renderer.RenderAnnual(ctx, rep)
	if err != nil {
		return err
	}

	handle := do.MustInvoke[*providers.DeliveryHandle](injector)
	if !handle.Enabled() {
		log.Info("Annual report rendered", "run_id", runID, "poster", path)
		return nil
	}

	res, err := handle.Service.DeliverAnnual(ctx, path, year)
	if err != nil {
		log.Error("Delivery failed, poster kept locally", "run_id", runID, "poster", path, "error", err)
		return nil
	}
	log.Info("Annual report delivered",
		"run_id", runID,
		"poster", path,
		"image_url", res.ImageURL,
		"preview", res.Preview,
	)
	return nil
}
