// Package delivery publishes rendered posters and pushes report digests.
package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zzstar101/jellyfin-playback-report/internal/media/artwork"
)

// ImageHost publishes a local image file and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Pusher sends a titled markdown message to the operator.
type Pusher interface {
	Notify(ctx context.Context, title, body string) error
}

// Result describes a completed delivery.
type Result struct {
	// ImageURL is empty when the upload failed and the push fell back
	// to the text digest.
	ImageURL string
	// Preview is a BlurHash placeholder of the published poster, empty
	// when preview generation failed.
	Preview string
}

// Service uploads a poster, derives its preview hash, and pushes the
// digest referencing the hosted image.
type Service struct {
	host    ImageHost
	pusher  Pusher
	preview func(path string) (string, error)
	site    string
	logger  *slog.Logger
}

func NewService(host ImageHost, pusher Pusher, site string, logger *slog.Logger) *Service {
	return &Service{
		host:    host,
		pusher:  pusher,
		preview: artwork.PosterPreview,
		site:    site,
		logger:  logger,
	}
}

// DeliverWeekly publishes the weekly poster and pushes the text digest.
func (s *Service) DeliverWeekly(ctx context.Context, posterPath, digest string) (*Result, error) {
	title := s.site + " Jellyfin 播放周榜"
	return s.deliver(ctx, posterPath, title, "周榜", digest)
}

// DeliverAnnual publishes the annual report poster.
func (s *Service) DeliverAnnual(ctx context.Context, posterPath string, year int) (*Result, error) {
	title := fmt.Sprintf("%s Jellyfin %d 年度观影报告", s.site, year)
	return s.deliver(ctx, posterPath, title, "年度报告", "")
}

func (s *Service) deliver(ctx context.Context, posterPath, title, alt, digest string) (*Result, error) {
	res := &Result{}
	imageURL, err := s.host.Upload(ctx, posterPath)
	if err != nil {
		s.logger.Warn("poster upload failed, falling back to text", "path", posterPath, "error", err)
	} else {
		res.ImageURL = imageURL
		if hash, err := s.preview(posterPath); err != nil {
			s.logger.Warn("preview hash generation failed", "path", posterPath, "error", err)
		} else {
			res.Preview = hash
		}
	}

	body := digest
	if res.ImageURL != "" {
		body = fmt.Sprintf("![%s](%s)", alt, res.ImageURL)
		if digest != "" {
			body += "\n\n" + digest
		}
	}
	if body == "" {
		return res, fmt.Errorf("deliver %q: no hosted image and no digest to push", title)
	}
	if err := s.pusher.Notify(ctx, title, body); err != nil {
		return res, err
	}

	s.logger.Info("report delivered", "title", title, "image_url", res.ImageURL)
	return res, nil
}
