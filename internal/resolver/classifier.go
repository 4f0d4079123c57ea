package resolver

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
)

// Status describes how a catalog lookup went.
type Status int

// Lookup outcomes.
const (
	StatusFound Status = iota
	StatusNotFound
	StatusTransient
)

// Outcome is the result of classifying one series. Lookups that miss or
// fail still carry a usable fallback category; classification never aborts
// a report.
type Outcome struct {
	Status   Status
	SeriesID string
	Category domain.Category
}

// Classifier assigns a category to a series by name.
type Classifier interface {
	Classify(ctx context.Context, seriesName string) Outcome
}

// Catalog is the subset of the Jellyfin client classification needs.
type Catalog interface {
	SearchItem(ctx context.Context, name, kind string) (*jellyfin.SearchResult, error)
	ItemDetails(ctx context.Context, itemID string) (*jellyfin.ItemDetails, error)
}

// LibraryPolicy classifies a series by the library folder that contains
// it. Series outside the anime library, and series the catalog cannot
// find, count as tv.
type LibraryPolicy struct {
	catalog        Catalog
	animeLibraryID string
	tvLibraryID    string
	logger         *slog.Logger
}

// NewLibraryPolicy creates the library-folder classifier.
func NewLibraryPolicy(catalog Catalog, animeLibraryID, tvLibraryID string, logger *slog.Logger) *LibraryPolicy {
	return &LibraryPolicy{
		catalog:        catalog,
		animeLibraryID: animeLibraryID,
		tvLibraryID:    tvLibraryID,
		logger:         logger,
	}
}

// Classify implements Classifier.
func (p *LibraryPolicy) Classify(ctx context.Context, seriesName string) Outcome {
	result, err := p.catalog.SearchItem(ctx, seriesName, jellyfin.KindSeries)
	if err != nil {
		if errors.Is(err, jellyfin.ErrNotFound) {
			return Outcome{Status: StatusNotFound, Category: domain.CategoryTV}
		}
		p.logger.Warn("series lookup failed, defaulting to tv",
			"series", seriesName, "error", err)
		return Outcome{Status: StatusTransient, Category: domain.CategoryTV}
	}

	category := domain.CategoryTV
	switch {
	case p.animeLibraryID != "" && result.ParentID == p.animeLibraryID:
		category = domain.CategoryAnime
	case p.tvLibraryID != "" && result.ParentID == p.tvLibraryID:
		// Already the default.
	default:
		p.logger.Debug("series in unrecognized library, defaulting to tv",
			"series", seriesName, "parent", result.ParentID)
	}
	return Outcome{Status: StatusFound, SeriesID: result.ID, Category: category}
}

// animeMarkers are the genre and tag values that mark a series as anime.
var animeMarkers = []string{"Animation", "Anime", "动画", "番剧"}

// GenrePolicy classifies a series by its genres and tags. It assumes most
// unmatched series on the server are anime: series the catalog cannot find
// or describe count as anime rather than tv.
type GenrePolicy struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewGenrePolicy creates the genre-marker classifier.
func NewGenrePolicy(catalog Catalog, logger *slog.Logger) *GenrePolicy {
	return &GenrePolicy{catalog: catalog, logger: logger}
}

// Classify implements Classifier.
func (p *GenrePolicy) Classify(ctx context.Context, seriesName string) Outcome {
	result, err := p.catalog.SearchItem(ctx, seriesName, jellyfin.KindSeries)
	if err != nil {
		if errors.Is(err, jellyfin.ErrNotFound) {
			return Outcome{Status: StatusNotFound, Category: domain.CategoryAnime}
		}
		p.logger.Warn("series lookup failed, defaulting to anime",
			"series", seriesName, "error", err)
		return Outcome{Status: StatusTransient, Category: domain.CategoryAnime}
	}

	details, err := p.catalog.ItemDetails(ctx, result.ID)
	if err != nil {
		p.logger.Warn("series details failed, defaulting to anime",
			"series", seriesName, "error", err)
		return Outcome{Status: StatusTransient, SeriesID: result.ID, Category: domain.CategoryAnime}
	}

	category := domain.CategoryTV
	if hasAnimeMarker(details.Genres) || hasAnimeMarker(details.Tags) {
		category = domain.CategoryAnime
	}
	return Outcome{Status: StatusFound, SeriesID: result.ID, Category: category}
}

func hasAnimeMarker(values []string) bool {
	for _, v := range values {
		for _, marker := range animeMarkers {
			if v == marker {
				return true
			}
		}
	}
	return false
}
