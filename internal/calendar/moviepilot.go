package calendar

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/moviepilot"
)

// SubscriptionAPI is the slice of the MoviePilot client the calendar uses.
type SubscriptionAPI interface {
	Login(ctx context.Context) error
	Subscriptions(ctx context.Context) ([]moviepilot.Subscription, error)
	Episodes(ctx context.Context, tmdbID, season int) ([]moviepilot.Episode, error)
	MovieInfo(ctx context.Context, tmdbID int) (*moviepilot.MovieInfo, error)
}

// MoviePilotSource derives calendar entries from the MoviePilot
// subscription list. Subscriptions with a season are series and expand to
// their episode air dates; the rest are movies with one release date.
type MoviePilotSource struct {
	api    SubscriptionAPI
	logger *slog.Logger
}

// NewMoviePilotSource creates the subscription-backed calendar source.
func NewMoviePilotSource(api SubscriptionAPI, logger *slog.Logger) *MoviePilotSource {
	return &MoviePilotSource{api: api, logger: logger}
}

// Entries implements Source. Individual subscription lookups that fail are
// skipped; only a failed login or subscription list aborts.
func (s *MoviePilotSource) Entries(ctx context.Context, _ domain.Window) ([]DatedEntry, error) {
	if err := s.api.Login(ctx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	subs, err := s.api.Subscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscriptions: %w", err)
	}
	s.logger.Debug("loaded subscriptions", "count", len(subs))

	var entries []DatedEntry
	for _, sub := range subs {
		if sub.Season > 0 {
			entries = append(entries, s.seriesEntries(ctx, sub)...)
		} else if e, ok := s.movieEntry(ctx, sub); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (s *MoviePilotSource) seriesEntries(ctx context.Context, sub moviepilot.Subscription) []DatedEntry {
	eps, err := s.api.Episodes(ctx, sub.TMDBID, sub.Season)
	if err != nil {
		s.logger.Warn("episode lookup failed, skipping subscription",
			"name", sub.Name, "error", err)
		return nil
	}

	var entries []DatedEntry
	for _, ep := range eps {
		if !isISODate(ep.AirDate) {
			continue
		}
		entries = append(entries, DatedEntry{
			Date: ep.AirDate,
			Entry: domain.CalendarEntry{
				Name:       sub.Name,
				Title:      ep.Name,
				Season:     sub.Season,
				Episode:    ep.EpisodeNumber,
				PosterPath: sub.Poster,
			},
		})
	}
	return entries
}

func (s *MoviePilotSource) movieEntry(ctx context.Context, sub moviepilot.Subscription) (DatedEntry, bool) {
	info, err := s.api.MovieInfo(ctx, sub.TMDBID)
	if err != nil {
		s.logger.Warn("movie lookup failed, skipping subscription",
			"name", sub.Name, "error", err)
		return DatedEntry{}, false
	}
	if !isISODate(info.ReleaseDate) {
		return DatedEntry{}, false
	}

	title := info.Title
	if title == "" {
		title = sub.Name
	}
	return DatedEntry{
		Date: info.ReleaseDate,
		Entry: domain.CalendarEntry{
			Name:       sub.Name,
			Title:      title,
			PosterPath: sub.Poster,
			Movie:      true,
		},
	}, true
}
