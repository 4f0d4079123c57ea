package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/resolver"
)

type fakeStore struct {
	movies   []domain.SeriesAggregate
	episodes []domain.SeriesAggregate
	topUser  *domain.TopUser
	err      error
}

func (f *fakeStore) MovieAggregates(context.Context, domain.Window) ([]domain.SeriesAggregate, error) {
	return f.movies, f.err
}

func (f *fakeStore) EpisodeAggregates(context.Context, domain.Window) ([]domain.SeriesAggregate, error) {
	return f.episodes, f.err
}

func (f *fakeStore) TopUser(context.Context, domain.Window) (*domain.TopUser, error) {
	return f.topUser, f.err
}

type fakeUsers struct {
	names map[string]string
	err   error
}

func (f *fakeUsers) UserName(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.names[userID], nil
}

// tableClassifier classifies from a fixed name-to-category table; unknown
// names miss and fall back to tv.
type tableClassifier struct {
	categories map[string]domain.Category
}

func (c *tableClassifier) Classify(_ context.Context, seriesName string) resolver.Outcome {
	if cat, ok := c.categories[seriesName]; ok {
		return resolver.Outcome{Status: resolver.StatusFound, SeriesID: "id-" + seriesName, Category: cat}
	}
	return resolver.Outcome{Status: resolver.StatusNotFound, Category: domain.CategoryTV}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAggregator(store *fakeStore, users *fakeUsers, classifier resolver.Classifier) *Aggregator {
	res := resolver.New(classifier, 4, discardLogger())
	return NewAggregator(store, users, res, 3, discardLogger())
}

func testWindow() domain.Window {
	loc := time.FixedZone("UTC+8", 8*3600)
	return domain.PreviousWeek(time.Date(2025, 6, 16, 9, 0, 0, 0, loc))
}

func TestAggregate_MoviesRankedByDuration(t *testing.T) {
	store := &fakeStore{
		movies: []domain.SeriesAggregate{
			{Name: "Movie A", ItemID: "m1", TotalDuration: 7200, PlayCount: 2},
			{Name: "Movie B", ItemID: "m2", TotalDuration: 5400, PlayCount: 1},
			{Name: "Movie C", ItemID: "m3", TotalDuration: 1800, PlayCount: 1},
		},
	}
	agg := newAggregator(store, &fakeUsers{}, &tableClassifier{})

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.Len(t, rep.Movies, 3)
	assert.Equal(t, []string{"Movie A", "Movie B", "Movie C"},
		[]string{rep.Movies[0].Name, rep.Movies[1].Name, rep.Movies[2].Name})
	assert.Equal(t, 1, rep.Movies[0].Rank)
	assert.Equal(t, 3, rep.Movies[2].Rank)
	assert.Empty(t, rep.TV)
	assert.Empty(t, rep.Anime)
	assert.Nil(t, rep.TopUser)
}

func TestAggregate_FoldsEpisodesIntoSeries(t *testing.T) {
	store := &fakeStore{
		episodes: []domain.SeriesAggregate{
			{Name: "Show A - Ep1", ItemID: "e1", TotalDuration: 1800, PlayCount: 1},
			{Name: "Show A - Ep2", ItemID: "e2", TotalDuration: 1200, PlayCount: 1},
		},
	}
	classifier := &tableClassifier{categories: map[string]domain.Category{
		"Show A": domain.CategoryTV,
	}}
	agg := newAggregator(store, &fakeUsers{}, classifier)

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.Len(t, rep.TV, 1)
	assert.Equal(t, "Show A", rep.TV[0].Name)
	assert.Equal(t, int64(3000), rep.TV[0].TotalDuration)
	assert.Equal(t, 2, rep.TV[0].PlayCount)
	assert.Equal(t, "e1", rep.TV[0].ItemID)
	assert.Equal(t, "id-Show A", rep.TV[0].SeriesID)
}

func TestAggregate_SplitsTVAndAnime(t *testing.T) {
	store := &fakeStore{
		episodes: []domain.SeriesAggregate{
			{Name: "Frieren - S01E01", TotalDuration: 1500, PlayCount: 1},
			{Name: "The Bear - S02E03", TotalDuration: 2500, PlayCount: 1},
		},
	}
	classifier := &tableClassifier{categories: map[string]domain.Category{
		"Frieren":  domain.CategoryAnime,
		"The Bear": domain.CategoryTV,
	}}
	agg := newAggregator(store, &fakeUsers{}, classifier)

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.Len(t, rep.Anime, 1)
	require.Len(t, rep.TV, 1)
	assert.Equal(t, "Frieren", rep.Anime[0].Name)
	assert.Equal(t, "The Bear", rep.TV[0].Name)
}

func TestAggregate_LookupMissFallsBackToTV(t *testing.T) {
	store := &fakeStore{
		episodes: []domain.SeriesAggregate{
			{Name: "Obscure Show - E01", TotalDuration: 900, PlayCount: 1},
		},
	}
	agg := newAggregator(store, &fakeUsers{}, &tableClassifier{})

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.Len(t, rep.TV, 1)
	assert.Equal(t, "Obscure Show", rep.TV[0].Name)
	assert.Empty(t, rep.TV[0].SeriesID)
	assert.Empty(t, rep.Anime)
}

func TestAggregate_TopUserNameResolved(t *testing.T) {
	store := &fakeStore{
		topUser: &domain.TopUser{UserID: "u1", TotalDuration: 9000},
	}
	users := &fakeUsers{names: map[string]string{"u1": "simon"}}
	agg := newAggregator(store, users, &tableClassifier{})

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.NotNil(t, rep.TopUser)
	assert.Equal(t, "simon", rep.TopUser.Name)
	assert.Equal(t, int64(9000), rep.TopUser.TotalDuration)
}

func TestAggregate_TopUserNameLookupFails(t *testing.T) {
	store := &fakeStore{
		topUser: &domain.TopUser{UserID: "u1", TotalDuration: 9000},
	}
	users := &fakeUsers{err: errors.New("server down")}
	agg := newAggregator(store, users, &tableClassifier{})

	rep, err := agg.Aggregate(context.Background(), testWindow())
	require.NoError(t, err)

	require.NotNil(t, rep.TopUser)
	assert.Equal(t, "Unknown", rep.TopUser.Name)
}

func TestRank_Ordering(t *testing.T) {
	aggs := []domain.SeriesAggregate{
		{Name: "B", TotalDuration: 100, PlayCount: 2},
		{Name: "A", TotalDuration: 100, PlayCount: 2},
		{Name: "C", TotalDuration: 100, PlayCount: 5},
		{Name: "D", TotalDuration: 500, PlayCount: 1},
	}

	got := Rank(aggs, 3)

	require.Len(t, got, 3)
	// Duration first, then play count, then name.
	assert.Equal(t, "D", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
	assert.Equal(t, "A", got[2].Name)
}

func TestFoldEpisodes_KeepsFirstItemID(t *testing.T) {
	got := FoldEpisodes([]domain.SeriesAggregate{
		{Name: "Show A - Ep2", ItemID: "e2", TotalDuration: 10, PlayCount: 1},
		{Name: "Show B - Ep1", ItemID: "e9", TotalDuration: 20, PlayCount: 1},
		{Name: "Show A - Ep3", ItemID: "e3", TotalDuration: 30, PlayCount: 2},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Show A", got[0].Name)
	assert.Equal(t, "e2", got[0].ItemID)
	assert.Equal(t, int64(40), got[0].TotalDuration)
	assert.Equal(t, 3, got[0].PlayCount)
	assert.Equal(t, "Show B", got[1].Name)
}
