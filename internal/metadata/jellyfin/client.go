// Package jellyfin is a read-only client for the parts of the Jellyfin API
// the reports need: item search, item details, primary images and user
// display names.
package jellyfin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
	"github.com/zzstar101/jellyfin-playback-report/internal/ratelimit"
)

const (
	// Rate limit: 5 requests per second, burst of 10. The server is on the
	// same LAN but classification can fan out dozens of lookups at once.
	defaultRPS   = 5.0
	defaultBurst = 10

	defaultTimeout = 10 * time.Second

	// maxImageSize limits poster downloads to prevent memory exhaustion.
	maxImageSize = 10 * 1024 * 1024
)

// Client is a rate-limited Jellyfin API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.Limiter
	baseURL string
	token   string
	logger  *slog.Logger
}

// New creates a new Jellyfin client from the server configuration.
func New(cfg config.JellyfinConfig, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.APIKey,
		logger:  logger,
	}
}

// doRequest executes a rate-limited GET against the Jellyfin API and
// returns the response body.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Emby-Token", c.token)

	c.logger.Debug("jellyfin request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 500:
		return nil, ErrServer
	default:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
}
