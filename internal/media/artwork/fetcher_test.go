package artwork

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/jellyfin"
)

type fakeCatalog struct {
	searchKinds []string
	searchErr   error
	imageData   []byte
	imageErr    error
	imageIDs    []string
}

func (f *fakeCatalog) SearchItem(_ context.Context, name, kind string) (*jellyfin.SearchResult, error) {
	f.searchKinds = append(f.searchKinds, kind)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return &jellyfin.SearchResult{ID: "item-" + name}, nil
}

func (f *fakeCatalog) PrimaryImage(_ context.Context, itemID string) ([]byte, error) {
	f.imageIDs = append(f.imageIDs, itemID)
	return f.imageData, f.imageErr
}

type fakeSubs struct {
	data  []byte
	err   error
	paths []string
}

func (f *fakeSubs) PosterImage(_ context.Context, posterPath string) ([]byte, error) {
	f.paths = append(f.paths, posterPath)
	return f.data, f.err
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.SetRGBA(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newFetcher(catalog Catalog, subs Subscriptions) *Fetcher {
	return NewFetcher(catalog, subs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRankedPoster_UsesResolvedSeriesID(t *testing.T) {
	catalog := &fakeCatalog{imageData: pngBytes(t)}
	f := newFetcher(catalog, &fakeSubs{})

	entry := domain.RankedEntry{Name: "Show A", SeriesID: "series-1"}
	img := f.RankedPoster(context.Background(), entry, domain.CategoryAnime)

	require.NotNil(t, img)
	assert.Empty(t, catalog.searchKinds, "resolved entries skip the search")
	assert.Equal(t, []string{"series-1"}, catalog.imageIDs)
}

func TestRankedPoster_SearchesMoviesByKind(t *testing.T) {
	catalog := &fakeCatalog{imageData: pngBytes(t)}
	f := newFetcher(catalog, &fakeSubs{})

	entry := domain.RankedEntry{Name: "Dune"}
	img := f.RankedPoster(context.Background(), entry, domain.CategoryMovie)

	require.NotNil(t, img)
	assert.Equal(t, []string{jellyfin.KindMovie}, catalog.searchKinds)
	assert.Equal(t, []string{"item-Dune"}, catalog.imageIDs)
}

func TestRankedPoster_SearchMissYieldsNil(t *testing.T) {
	catalog := &fakeCatalog{searchErr: jellyfin.ErrNotFound}
	f := newFetcher(catalog, &fakeSubs{})

	img := f.RankedPoster(context.Background(), domain.RankedEntry{Name: "Gone"}, domain.CategoryTV)
	assert.Nil(t, img)
	assert.Empty(t, catalog.imageIDs)
}

func TestRankedPoster_UndecodableBytesYieldNil(t *testing.T) {
	catalog := &fakeCatalog{imageData: []byte("not an image")}
	f := newFetcher(catalog, &fakeSubs{})

	img := f.RankedPoster(context.Background(), domain.RankedEntry{Name: "X", SeriesID: "s1"}, domain.CategoryTV)
	assert.Nil(t, img)
}

func TestShowPoster_KindFollowsItemType(t *testing.T) {
	catalog := &fakeCatalog{imageData: pngBytes(t)}
	f := newFetcher(catalog, &fakeSubs{})

	require.NotNil(t, f.ShowPoster(context.Background(), "Show A", domain.ItemTypeEpisode))
	require.NotNil(t, f.ShowPoster(context.Background(), "Dune", domain.ItemTypeMovie))
	assert.Equal(t, []string{jellyfin.KindSeries, jellyfin.KindMovie}, catalog.searchKinds)
}

func TestCalendarPoster(t *testing.T) {
	subs := &fakeSubs{data: pngBytes(t)}
	f := newFetcher(&fakeCatalog{}, subs)

	img := f.CalendarPoster(context.Background(), "/abc.jpg")
	require.NotNil(t, img)
	assert.Equal(t, []string{"/abc.jpg"}, subs.paths)
}

func TestCalendarPoster_EmptyPathSkipsFetch(t *testing.T) {
	subs := &fakeSubs{}
	f := newFetcher(&fakeCatalog{}, subs)

	assert.Nil(t, f.CalendarPoster(context.Background(), ""))
	assert.Empty(t, subs.paths)
}
