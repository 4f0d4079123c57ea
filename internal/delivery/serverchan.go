package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const serverChanBase = "https://sctapi.ftqq.com"

// Notifier pushes rendered report digests through ServerChan.
type Notifier struct {
	http    *http.Client
	baseURL string
	key     string
	logger  *slog.Logger
}

func NewNotifier(key string, logger *slog.Logger) *Notifier {
	return &Notifier{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: serverChanBase,
		key:     key,
		logger:  logger,
	}
}

type pushResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Notify sends a markdown message with the given title.
func (n *Notifier) Notify(ctx context.Context, title, body string) error {
	form := url.Values{}
	form.Set("title", title)
	form.Set("desp", body)

	endpoint := n.baseURL + "/" + n.key + ".send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return wrapError("notify", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.http.Do(req)
	if err != nil {
		return wrapError("notify", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return wrapError("notify", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return wrapError("notify", ErrUnauthorized)
	case resp.StatusCode >= 500:
		return wrapError("notify", fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return wrapError("notify", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
	}

	var parsed pushResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return wrapError("notify", fmt.Errorf("%w: %v", ErrServer, err))
	}
	if parsed.Code != 0 {
		return wrapError("notify", fmt.Errorf("%w: code %d %s", ErrRejected, parsed.Code, parsed.Message))
	}

	n.logger.Info("notification pushed", "title", title)
	return nil
}
