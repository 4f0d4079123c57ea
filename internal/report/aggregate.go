// Package report builds the weekly and annual playback reports from the
// activity snapshot, the catalog and the series resolver.
package report

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/resolver"
)

// Store is the weekly slice of the activity snapshot.
type Store interface {
	MovieAggregates(ctx context.Context, w domain.Window) ([]domain.SeriesAggregate, error)
	EpisodeAggregates(ctx context.Context, w domain.Window) ([]domain.SeriesAggregate, error)
	TopUser(ctx context.Context, w domain.Window) (*domain.TopUser, error)
}

// Users resolves user ids to display names.
type Users interface {
	UserName(ctx context.Context, userID string) (string, error)
}

// unknownUser is the display name used when the server cannot resolve one.
const unknownUser = "Unknown"

// Aggregator turns a window of playback activity into ranked categories.
type Aggregator struct {
	store    Store
	users    Users
	resolver *resolver.Resolver
	topN     int
	logger   *slog.Logger
}

// NewAggregator creates a weekly report aggregator keeping the top topN
// entries per category.
func NewAggregator(store Store, users Users, res *resolver.Resolver, topN int, logger *slog.Logger) *Aggregator {
	if topN < 1 {
		topN = 1
	}
	return &Aggregator{
		store:    store,
		users:    users,
		resolver: res,
		topN:     topN,
		logger:   logger,
	}
}

// Aggregate builds the weekly report for the window. Categories with no
// activity come back as empty slices; only snapshot read errors abort.
func (a *Aggregator) Aggregate(ctx context.Context, w domain.Window) (*domain.WeeklyReport, error) {
	movies, err := a.store.MovieAggregates(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("movie aggregates: %w", err)
	}
	for i := range movies {
		movies[i].Category = domain.CategoryMovie
	}

	episodes, err := a.store.EpisodeAggregates(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("episode aggregates: %w", err)
	}

	series := FoldEpisodes(episodes)
	a.logger.Info("aggregated window activity",
		"window", w.StartDate()+".."+w.EndDate(),
		"movies", len(movies), "series", len(series))

	resolved := a.resolver.ResolveAll(ctx, series)

	var tv, anime []domain.SeriesAggregate
	for _, agg := range resolved {
		if agg.Category == domain.CategoryAnime {
			anime = append(anime, agg)
		} else {
			tv = append(tv, agg)
		}
	}

	report := &domain.WeeklyReport{
		Window: w,
		Movies: Rank(movies, a.topN),
		TV:     Rank(tv, a.topN),
		Anime:  Rank(anime, a.topN),
	}

	report.TopUser, err = a.topUser(ctx, w)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// topUser loads the heaviest viewer and resolves their display name. A
// failed name lookup degrades to a placeholder instead of failing the run.
func (a *Aggregator) topUser(ctx context.Context, w domain.Window) (*domain.TopUser, error) {
	top, err := a.store.TopUser(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("top user: %w", err)
	}
	if top == nil {
		return nil, nil
	}

	name, err := a.users.UserName(ctx, top.UserID)
	if err != nil || name == "" {
		a.logger.Warn("user name lookup failed", "user", top.UserID, "error", err)
		name = unknownUser
	}
	top.Name = name
	return top, nil
}

// FoldEpisodes merges per-episode aggregates into per-series aggregates.
// The first episode seen for a series donates its item id, and series keep
// the order of their first appearance.
func FoldEpisodes(episodes []domain.SeriesAggregate) []domain.SeriesAggregate {
	index := make(map[string]int)
	var series []domain.SeriesAggregate

	for _, ep := range episodes {
		name := resolver.ExtractSeriesName(ep.Name)
		i, seen := index[name]
		if !seen {
			index[name] = len(series)
			series = append(series, domain.SeriesAggregate{
				Name:   name,
				ItemID: ep.ItemID,
			})
			i = len(series) - 1
		}
		series[i].TotalDuration += ep.TotalDuration
		series[i].PlayCount += ep.PlayCount
	}
	return series
}

// Rank orders aggregates by duration, then play count, then name, and
// returns the leading topN as ranked entries.
func Rank(aggs []domain.SeriesAggregate, topN int) []domain.RankedEntry {
	sorted := slices.Clone(aggs)
	slices.SortStableFunc(sorted, func(a, b domain.SeriesAggregate) int {
		if c := cmp.Compare(b.TotalDuration, a.TotalDuration); c != 0 {
			return c
		}
		if c := cmp.Compare(b.PlayCount, a.PlayCount); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(sorted) > topN {
		sorted = sorted[:topN]
	}

	entries := make([]domain.RankedEntry, len(sorted))
	for i, agg := range sorted {
		entries[i] = domain.RankedEntry{
			Rank:          i + 1,
			Name:          agg.Name,
			TotalDuration: agg.TotalDuration,
			PlayCount:     agg.PlayCount,
			ItemID:        agg.ItemID,
			SeriesID:      agg.SeriesID,
		}
	}
	return entries
}
