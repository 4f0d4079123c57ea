package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/moviepilot"
)

// ProvideJellyfinClient provides the media server catalog client.
func ProvideJellyfinClient(i do.Injector) (*jellyfin.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return jellyfin.New(cfg.Jellyfin, log.Logger), nil
}

// ProvideMoviePilotClient provides the subscription tracker client.
func ProvideMoviePilotClient(i do.Injector) (*moviepilot.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return moviepilot.New(cfg.MoviePilot, log.Logger), nil
}
