package calendar

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
	"github.com/zzstar101/jellyfin-playback-report/internal/metadata/moviepilot"
)

type fakeAPI struct {
	loginErr error
	subs     []moviepilot.Subscription
	subsErr  error
	episodes map[int][]moviepilot.Episode
	epErr    error
	movies   map[int]*moviepilot.MovieInfo
}

func (f *fakeAPI) Login(context.Context) error { return f.loginErr }

func (f *fakeAPI) Subscriptions(context.Context) ([]moviepilot.Subscription, error) {
	return f.subs, f.subsErr
}

func (f *fakeAPI) Episodes(_ context.Context, tmdbID, _ int) ([]moviepilot.Episode, error) {
	if f.epErr != nil {
		return nil, f.epErr
	}
	return f.episodes[tmdbID], nil
}

func (f *fakeAPI) MovieInfo(_ context.Context, tmdbID int) (*moviepilot.MovieInfo, error) {
	if info, ok := f.movies[tmdbID]; ok {
		return info, nil
	}
	return nil, moviepilot.ErrNotFound
}

func TestMoviePilotSource_Entries(t *testing.T) {
	api := &fakeAPI{
		subs: []moviepilot.Subscription{
			{TMDBID: 100, Name: "Show A", Season: 2, Poster: "/pa.jpg"},
			{TMDBID: 200, Name: "Movie B", Poster: "/pb.jpg"},
		},
		episodes: map[int][]moviepilot.Episode{
			100: {
				{AirDate: "2025-06-11", EpisodeNumber: 3, Name: "Third"},
				{AirDate: "", EpisodeNumber: 4, Name: "Unscheduled"},
			},
		},
		movies: map[int]*moviepilot.MovieInfo{
			200: {Title: "Movie B: The Movie", ReleaseDate: "2025-06-13"},
		},
	}
	source := NewMoviePilotSource(api, discardLogger())

	entries, err := source.Entries(context.Background(), domain.Window{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "2025-06-11", entries[0].Date)
	assert.Equal(t, "Show A", entries[0].Entry.Name)
	assert.Equal(t, 2, entries[0].Entry.Season)
	assert.Equal(t, 3, entries[0].Entry.Episode)
	assert.False(t, entries[0].Entry.Movie)

	assert.Equal(t, "2025-06-13", entries[1].Date)
	assert.Equal(t, "Movie B: The Movie", entries[1].Entry.Title)
	assert.True(t, entries[1].Entry.Movie)
}

func TestMoviePilotSource_LoginFailure(t *testing.T) {
	source := NewMoviePilotSource(&fakeAPI{loginErr: errors.New("bad credentials")}, discardLogger())

	_, err := source.Entries(context.Background(), domain.Window{})
	assert.Error(t, err)
}

func TestMoviePilotSource_EpisodeLookupFailureSkipsSubscription(t *testing.T) {
	api := &fakeAPI{
		subs: []moviepilot.Subscription{
			{TMDBID: 100, Name: "Show A", Season: 1},
		},
		epErr: errors.New("timeout"),
	}
	source := NewMoviePilotSource(api, discardLogger())

	entries, err := source.Entries(context.Background(), domain.Window{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMoviePilotSource_MovieWithoutReleaseDate(t *testing.T) {
	api := &fakeAPI{
		subs: []moviepilot.Subscription{
			{TMDBID: 300, Name: "Unreleased"},
		},
		movies: map[int]*moviepilot.MovieInfo{
			300: {Title: "Unreleased"},
		},
	}
	source := NewMoviePilotSource(api, discardLogger())

	entries, err := source.Entries(context.Background(), domain.Window{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
