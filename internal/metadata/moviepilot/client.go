// Package moviepilot is a client for the MoviePilot subscription manager.
// It supplies the weekly airing calendar: subscription list, per-season
// episode air dates and movie release dates.
package moviepilot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/ratelimit"
)

const (
	// Rate limit: 2 requests per second, burst of 4. Episode lookups run
	// once per subscribed season, so bursts stay small.
	defaultRPS   = 2.0
	defaultBurst = 4

	defaultTimeout = 30 * time.Second

	maxResponseSize = 4 * 1024 * 1024
)

// Client is a rate-limited MoviePilot API client. Call Login before any
// of the authenticated lookups.
type Client struct {
	http     *http.Client
	limiter  *ratelimit.Limiter
	baseURL  string
	apiToken string
	username string
	password string
	logger   *slog.Logger

	accessToken string
}

// New creates a new MoviePilot client from the service configuration.
func New(cfg config.MoviePilotConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		limiter:  ratelimit.New(defaultRPS, defaultBurst),
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		username: cfg.Username,
		password: cfg.Password,
		logger:   logger,
	}
}

// Login exchanges the configured credentials for an access token. The
// token authenticates the episode and movie lookups.
func (c *Client) Login(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return wrapError("login", fmt.Errorf("rate limit wait: %w", err))
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/login/access-token", strings.NewReader(form.Encode()))
	if err != nil {
		return wrapError("login", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError("login", fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wrapError("login", fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return wrapError("login", fmt.Errorf("read response: %w", err))
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil {
		return wrapError("login", fmt.Errorf("parse response: %w", err))
	}
	if token.AccessToken == "" {
		return wrapError("login", ErrUnauthorized)
	}

	c.accessToken = token.AccessToken
	c.logger.Debug("moviepilot login ok")
	return nil
}

// doGet executes a rate-limited GET. When auth is set the bearer token is
// attached; Login must have succeeded first.
func (c *Client) doGet(ctx context.Context, op, path string, query url.Values, auth bool) ([]byte, error) {
	if auth && c.accessToken == "" {
		return nil, wrapError(op, ErrNotLoggedIn)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, wrapError(op, fmt.Errorf("rate limit wait: %w", err))
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, wrapError(op, fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	c.logger.Debug("moviepilot request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(op, fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, wrapError(op, fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, wrapError(op, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, wrapError(op, ErrUnauthorized)
	case resp.StatusCode >= 500:
		return nil, wrapError(op, ErrServer)
	default:
		return nil, wrapError(op, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
}

// Subscription is one entry of the subscription list. Entries with a
// season are series; entries without are movies.
type Subscription struct {
	TMDBID int    `json:"tmdbid"`
	Name   string `json:"name"`
	Poster string `json:"poster"`
	Season int    `json:"season"`
}

// Episode is one episode of a subscribed season.
type Episode struct {
	AirDate       string `json:"air_date"` // ISO date, may be empty
	EpisodeNumber int    `json:"episode_number"`
	Name          string `json:"name"`
}

// MovieInfo holds the release details of a subscribed movie.
type MovieInfo struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"` // ISO date, may be empty
}

// Subscriptions fetches the full subscription list. This endpoint uses the
// static API token rather than the login session.
func (c *Client) Subscriptions(ctx context.Context) ([]Subscription, error) {
	query := url.Values{}
	query.Set("token", c.apiToken)

	body, err := c.doGet(ctx, "subscriptions", "/api/v1/subscribe/list", query, false)
	if err != nil {
		return nil, err
	}

	var subs []Subscription
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, wrapError("subscriptions", fmt.Errorf("parse response: %w", err))
	}
	return subs, nil
}

// Episodes fetches the episode list of one season of a series.
func (c *Client) Episodes(ctx context.Context, tmdbID, season int) ([]Episode, error) {
	path := "/api/v1/tmdb/" + strconv.Itoa(tmdbID) + "/" + strconv.Itoa(season)
	body, err := c.doGet(ctx, "episodes", path, nil, true)
	if err != nil {
		return nil, err
	}

	var eps []Episode
	if err := json.Unmarshal(body, &eps); err != nil {
		return nil, wrapError("episodes", fmt.Errorf("parse response: %w", err))
	}
	return eps, nil
}

// MovieInfo fetches the release details of a movie by TMDB id.
func (c *Client) MovieInfo(ctx context.Context, tmdbID int) (*MovieInfo, error) {
	query := url.Values{}
	query.Set("type_name", "电影")

	path := "/api/v1/media/tmdb:" + strconv.Itoa(tmdbID)
	body, err := c.doGet(ctx, "movieInfo", path, query, true)
	if err != nil {
		return nil, err
	}

	var info MovieInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, wrapError("movieInfo", fmt.Errorf("parse response: %w", err))
	}
	return &info, nil
}

// tmdbImageBase is the TMDB image CDN, width 200 variant. Calendar cards
// are small so the thumbnail size is enough.
const tmdbImageBase = "https://image.tmdb.org/t/p/w200"

// PosterImage downloads a subscription poster. Poster paths are
// TMDB-relative unless they already carry a scheme.
func (c *Client) PosterImage(ctx context.Context, posterPath string) ([]byte, error) {
	if posterPath == "" {
		return nil, wrapError("posterImage", ErrNotFound)
	}

	u := posterPath
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = tmdbImageBase + u
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, wrapError("posterImage", fmt.Errorf("rate limit wait: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, wrapError("posterImage", fmt.Errorf("create request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError("posterImage", fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, wrapError("posterImage", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}
