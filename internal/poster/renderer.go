package poster

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// Renderer produces report posters as PNG files.
type Renderer struct {
	images ImageSource
	fonts  *Fonts
	site   string
	outDir string
	logger *slog.Logger
}

func NewRenderer(images ImageSource, fonts *Fonts, site, outDir string, logger *slog.Logger) *Renderer {
	return &Renderer{
		images: images,
		fonts:  fonts,
		site:   site,
		outDir: outDir,
		logger: logger,
	}
}

// RenderWeekly draws the weekly poster and writes it to the output
// directory, returning the file path.
func (r *Renderer) RenderWeekly(ctx context.Context, rep *domain.WeeklyReport, days []domain.CalendarDay) (string, error) {
	l := NewLayout(len(days))
	r.logger.Info("rendering weekly poster",
		"width", l.Width, "height", l.Height, "calendar_rows", len(days))

	canvas := composeWeekly(ctx, l, rep, days, r.images, r.fonts, r.site)
	name := fmt.Sprintf("weekly-poster-%s.png", rep.Window.EndDate())
	return r.save(canvas, name)
}

// RenderAnnual draws the annual report poster and writes it to the
// output directory, returning the file path.
func (r *Renderer) RenderAnnual(ctx context.Context, rep *domain.AnnualReport) (string, error) {
	l := NewAnnualLayout(len(rep.ExtraFacts))
	r.logger.Info("rendering annual report",
		"width", l.Width, "height", l.Height, "year", rep.Year)

	canvas := composeAnnual(ctx, l, rep, r.images, r.fonts, r.site)
	name := fmt.Sprintf("annual_report_%d.png", rep.Year)
	return r.save(canvas, name)
}

func (r *Renderer) save(img image.Image, name string) (string, error) {
	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(r.outDir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating poster file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding poster: %w", err)
	}
	r.logger.Info("poster written", "path", path)
	return path, nil
}
