package providers

import (
	"github.com/samber/do/v2"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/logger"
	"github.com/zzstar101/jellyfin-playback-report/internal/media/artwork"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/moviepilot"
	"github.com/zzstar101/jellyfin-playback-report/internal/poster"
)

// ProvideFonts provides the poster typefaces.
func ProvideFonts(i do.Injector) (*poster.Fonts, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return poster.LoadFonts(cfg.Report.FontPath, cfg.Report.BoldFont, log.Logger), nil
}

// ProvideArtworkFetcher provides the poster artwork fetcher.
func ProvideArtworkFetcher(i do.Injector) (*artwork.Fetcher, error) {
	log := do.MustInvoke[*logger.Logger](i)
	jf := do.MustInvoke[*jellyfin.Client](i)
	mp := do.MustInvoke[*moviepilot.Client](i)

	return artwork.NewFetcher(jf, mp, log.Logger), nil
}

// ProvideRenderer provides the poster renderer.
func ProvideRenderer(i do.Injector) (*poster.Renderer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	fetcher := do.MustInvoke[*artwork.Fetcher](i)
	fonts := do.MustInvoke[*poster.Fonts](i)

	return poster.NewRenderer(fetcher, fonts, cfg.Report.SiteName, cfg.Report.OutputDir, log.Logger), nil
}
