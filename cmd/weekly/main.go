// Package main generates and delivers the weekly playback report.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/calendar"
	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/di"
	"github.com/zzstar101/jellyfin-playback-report/internal/di/providers"
	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/id"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/poster"
	"github.com/zzstar101/jellyfin-playback-report/internal/report"
)

func main() {
	injector := di.NewContainer()

	log, err := do.Invoke[*logger.Logger](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, injector, log)

	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}
	if runErr != nil {
		log.Error("Weekly report failed", "error", runErr)
		os.Exit(1)
	}
}

func run(ctx context.Context, injector do.Injector, log *logger.Logger) error {
	runID := id.MustGenerate("run")
	cfg := do.MustInvoke[*config.Config](injector)

	now := time.Now().In(cfg.Report.Location())
	window := domain.PreviousWeek(now)
	log.Info("Building weekly report",
		"run_id", runID,
		"window_start", window.StartDate(),
		"window_end", window.EndDate(),
	)

	aggregator := do.MustInvoke[*report.Aggregator](injector)
	rep, err := aggregator.Aggregate(ctx, window)
	if err != nil {
		return err
	}

	days := do.MustInvoke[*calendar.Builder](injector).Build(ctx, window)

	renderer := do.MustInvoke[*poster.Renderer](injector)
	path, err := renderer.RenderWeekly(ctx, rep, days)
	if err != nil {
		return err
	}

	digest := report.BuildText(cfg.Report.SiteName, rep, days, cfg.Report.TopN, now)

	handle := do.MustInvoke[*providers.DeliveryHandle](injector)
	if !handle.Enabled() {
		log.Info("Weekly report rendered", "run_id", runID, "poster", path)
		fmt.Println(digest)
		return nil
	}

	res, err := handle.Service.DeliverWeekly(ctx, path, digest)
	if err != nil {
		log.Error("Delivery failed, poster kept locally", "run_id", runID, "poster", path, "error", err)
		fmt.Println(digest)
		return nil
	}
	log.Info("Weekly report delivered",
		"run_id", runID,
		"poster", path,
		"image_url", res.ImageURL,
		"preview", res.Preview,
	)
	return nil
}
