// Package artwork resolves and decodes poster images for report rendering.
package artwork

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log/slog"

	_ "golang.org/x/image/webp" // Register WebP decoder

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
)

// Catalog looks up items and their primary images on the media server.
type Catalog interface {
	SearchItem(ctx context.Context, name, kind string) (*jellyfin.SearchResult, error)
	PrimaryImage(ctx context.Context, itemID string) ([]byte, error)
}

// Subscriptions fetches poster images referenced by the airing calendar.
type Subscriptions interface {
	PosterImage(ctx context.Context, posterPath string) ([]byte, error)
}

// Fetcher turns ranked entries and calendar entries into decoded images.
// Every lookup is best effort: a miss or decode failure yields nil and
// the caller renders a placeholder instead.
type Fetcher struct {
	catalog Catalog
	subs    Subscriptions
	logger  *slog.Logger
}

func NewFetcher(catalog Catalog, subs Subscriptions, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		catalog: catalog,
		subs:    subs,
		logger:  logger,
	}
}

// RankedPoster returns artwork for a ranked entry. Entries already
// resolved to a series ID skip the search round trip.
func (f *Fetcher) RankedPoster(ctx context.Context, entry domain.RankedEntry, category domain.Category) image.Image {
	itemID := entry.SeriesID
	if itemID == "" {
		kind := jellyfin.KindSeries
		if category == domain.CategoryMovie {
			kind = jellyfin.KindMovie
		}
		res, err := f.catalog.SearchItem(ctx, entry.Name, kind)
		if err != nil {
			f.logger.Debug("poster lookup missed", "name", entry.Name, "error", err)
			return nil
		}
		itemID = res.ID
	}
	return f.primary(ctx, itemID, entry.Name)
}

// ShowPoster returns artwork for a show named in the annual report.
func (f *Fetcher) ShowPoster(ctx context.Context, name string, itemType domain.ItemType) image.Image {
	kind := jellyfin.KindSeries
	if itemType == domain.ItemTypeMovie {
		kind = jellyfin.KindMovie
	}
	res, err := f.catalog.SearchItem(ctx, name, kind)
	if err != nil {
		f.logger.Debug("poster lookup missed", "name", name, "error", err)
		return nil
	}
	return f.primary(ctx, res.ID, name)
}

// CalendarPoster returns artwork for an airing calendar entry.
func (f *Fetcher) CalendarPoster(ctx context.Context, posterPath string) image.Image {
	if posterPath == "" {
		return nil
	}
	data, err := f.subs.PosterImage(ctx, posterPath)
	if err != nil {
		f.logger.Debug("calendar poster fetch failed", "path", posterPath, "error", err)
		return nil
	}
	return f.decode(data, posterPath)
}

func (f *Fetcher) primary(ctx context.Context, itemID, name string) image.Image {
	data, err := f.catalog.PrimaryImage(ctx, itemID)
	if err != nil {
		f.logger.Debug("primary image fetch failed", "item_id", itemID, "name", name, "error", err)
		return nil
	}
	return f.decode(data, name)
}

func (f *Fetcher) decode(data []byte, ref string) image.Image {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		f.logger.Warn("undecodable poster image", "ref", ref, "bytes", len(data), "error", err)
		return nil
	}
	f.logger.Debug("decoded poster", "ref", ref, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img
}
