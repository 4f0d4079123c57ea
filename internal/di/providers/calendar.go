package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/calendar"
	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/moviepilot"
)

// ProvideCalendarSource selects the airing schedule source. A configured
// subscriptions file wins over the MoviePilot API.
func ProvideCalendarSource(i do.Injector) (calendar.Source, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if path := cfg.Report.SubscriptionsFile; path != "" {
		log.Info("Using subscriptions file for airing calendar", "path", path)
		return calendar.NewFileSource(path), nil
	}

	mp := do.MustInvoke[*moviepilot.Client](i)
	return calendar.NewMoviePilotSource(mp, log.Logger), nil
}

// ProvideCalendarBuilder provides the weekly airing calendar builder.
func ProvideCalendarBuilder(i do.Injector) (*calendar.Builder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	source := do.MustInvoke[calendar.Source](i)

	return calendar.NewBuilder(source, cfg.Report.Location(), log.Logger), nil
}
