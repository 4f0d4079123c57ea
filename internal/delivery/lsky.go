package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	uploadTimeout   = 60 * time.Second
	maxResponseSize = 1 * 1024 * 1024
)

// Uploader publishes rendered posters to a Lsky Pro image host.
type Uploader struct {
	http    *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

func NewUploader(baseURL, token string, logger *slog.Logger) *Uploader {
	return &Uploader{
		http:    &http.Client{Timeout: uploadTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
	}
}

type uploadResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Links struct {
			URL string `json:"url"`
		} `json:"links"`
	} `json:"data"`
}

// Upload posts the poster file and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", wrapError("upload", err)
	}
	defer f.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", wrapError("upload", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", wrapError("upload", err)
	}
	if err := form.Close(); err != nil {
		return "", wrapError("upload", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/api/v1/upload", &body)
	if err != nil {
		return "", wrapError("upload", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+u.token)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", wrapError("upload", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", wrapError("upload", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", wrapError("upload", ErrUnauthorized)
	case resp.StatusCode >= 500:
		return "", wrapError("upload", fmt.Errorf("%w: status %d", ErrServer, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return "", wrapError("upload", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode))
	}

	var parsed uploadResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", wrapError("upload", fmt.Errorf("%w: %v", ErrServer, err))
	}
	if !parsed.Status {
		return "", wrapError("upload", fmt.Errorf("%w: %s", ErrRejected, parsed.Message))
	}
	if parsed.Data.Links.URL == "" {
		return "", wrapError("upload", fmt.Errorf("%w: response missing image link", ErrServer))
	}

	u.logger.Info("poster uploaded", "url", parsed.Data.Links.URL)
	return parsed.Data.Links.URL, nil
}
