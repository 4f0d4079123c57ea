// Package calendar assembles the weekly airing calendar from subscription
// sources. The calendar is decoration on the report; any failure here
// degrades to an empty calendar, never a failed run.
package calendar

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// DatedEntry is a calendar entry paired with its ISO air date.
type DatedEntry struct {
	Date  string // ISO date, e.g. "2025-06-11"
	Entry domain.CalendarEntry
}

// Source yields dated entries that may fall inside the report window.
type Source interface {
	Entries(ctx context.Context, w domain.Window) ([]DatedEntry, error)
}

// Builder filters and groups source entries into the per-day calendar.
type Builder struct {
	source Source
	loc    *time.Location
	logger *slog.Logger
}

// NewBuilder creates a calendar builder. Dates resolve in loc, the report
// timezone.
func NewBuilder(source Source, loc *time.Location, logger *slog.Logger) *Builder {
	return &Builder{source: source, loc: loc, logger: logger}
}

// Build returns the days of the window that have at least one airing
// entry, in date order. Source failures and malformed dates are logged
// and skipped.
func (b *Builder) Build(ctx context.Context, w domain.Window) []domain.CalendarDay {
	entries, err := b.source.Entries(ctx, w)
	if err != nil {
		b.logger.Warn("calendar source failed, skipping calendar", "error", err)
		return nil
	}

	byDate := make(map[string][]domain.CalendarEntry)
	for _, e := range entries {
		t, err := time.ParseInLocation("2006-01-02", e.Date, b.loc)
		if err != nil {
			b.logger.Debug("skipping entry with malformed air date",
				"date", e.Date, "name", e.Entry.Name)
			continue
		}
		if !w.ContainsDate(t) {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], e.Entry)
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	days := make([]domain.CalendarDay, 0, len(dates))
	for _, date := range dates {
		t, _ := time.ParseInLocation("2006-01-02", date, b.loc)
		days = append(days, domain.CalendarDay{
			Date:    t,
			Weekday: domain.WeekdayLabel(t),
			Entries: byDate[date],
		})
	}

	total := 0
	for _, d := range days {
		total += len(d.Entries)
	}
	b.logger.Info("built airing calendar", "days", len(days), "entries", total)
	return days
}

// isISODate reports whether s looks like YYYY-MM-DD. Sources use it to
// drop garbage before it reaches the builder.
func isISODate(s string) bool {
	if len(s) != 10 || strings.Count(s, "-") != 2 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
