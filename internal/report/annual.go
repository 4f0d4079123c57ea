package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// AnnualStore is the year slice of the activity snapshot.
type AnnualStore interface {
	ActivityDateRange(ctx context.Context, w domain.Window) (first, last string, err error)
	MonthlyTopShows(ctx context.Context, w domain.Window, limit int) ([]domain.ShowAggregate, error)
	TotalDuration(ctx context.Context, w domain.Window) (int64, error)
	DistinctItemCount(ctx context.Context, w domain.Window) (int, error)
	TopShow(ctx context.Context, w domain.Window) (*domain.ShowStat, error)
	TopClient(ctx context.Context, w domain.Window) (*domain.ClientStat, error)
	NightRatio(ctx context.Context, w domain.Window) (night, total int64, err error)
	BusiestDay(ctx context.Context, w domain.Window) (day string, duration int64, err error)
	EventCount(ctx context.Context, w domain.Window) (int, error)
	TopUser(ctx context.Context, w domain.Window) (*domain.TopUser, error)
}

// Placeholder names for rows the snapshot recorded without one.
const (
	unknownClient     = "未知"
	unknownAnnualUser = "未知用户"
)

// AnnualBuilder assembles the year-in-review report. Unlike the weekly
// report it does not split by category; everything ranks on watch time.
type AnnualBuilder struct {
	store  AnnualStore
	users  Users
	topN   int
	loc    *time.Location
	logger *slog.Logger
}

// NewAnnualBuilder creates an annual report builder keeping topN shows
// per month.
func NewAnnualBuilder(store AnnualStore, users Users, topN int, loc *time.Location, logger *slog.Logger) *AnnualBuilder {
	if topN < 1 {
		topN = 1
	}
	return &AnnualBuilder{
		store:  store,
		users:  users,
		topN:   topN,
		loc:    loc,
		logger: logger,
	}
}

// Build aggregates a full calendar year.
func (b *AnnualBuilder) Build(ctx context.Context, year int) (*domain.AnnualReport, error) {
	window := domain.YearWindow(year, b.loc)

	report := &domain.AnnualReport{Year: year}

	first, last, err := b.store.ActivityDateRange(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("activity date range: %w", err)
	}
	if first == "" {
		first, last = window.StartDate(), window.EndDate()
	}
	report.Summary.StatsPeriod = first + " 至 " + last

	for month := time.January; month <= time.December; month++ {
		mw := domain.MonthWindow(year, month, b.loc)
		shows, err := b.store.MonthlyTopShows(ctx, mw, b.topN)
		if err != nil {
			return nil, fmt.Errorf("monthly top shows %d-%02d: %w", year, month, err)
		}
		report.Monthly[month-1] = domain.MonthlyTop{
			Month:   int(month),
			Entries: shows,
		}
	}

	if err := b.buildSummary(ctx, window, &report.Summary); err != nil {
		return nil, err
	}

	report.ExtraFacts, err = b.buildExtraFacts(ctx, window)
	if err != nil {
		return nil, err
	}

	b.logger.Info("built annual report",
		"year", year, "period", report.Summary.StatsPeriod,
		"total_duration", report.Summary.TotalDuration)
	return report, nil
}

func (b *AnnualBuilder) buildSummary(ctx context.Context, w domain.Window, s *domain.AnnualSummary) error {
	var err error
	if s.TotalDuration, err = b.store.TotalDuration(ctx, w); err != nil {
		return fmt.Errorf("total duration: %w", err)
	}
	if s.TotalItems, err = b.store.DistinctItemCount(ctx, w); err != nil {
		return fmt.Errorf("distinct items: %w", err)
	}
	if s.TopShow, err = b.store.TopShow(ctx, w); err != nil {
		return fmt.Errorf("top show: %w", err)
	}

	if s.TopClient, err = b.store.TopClient(ctx, w); err != nil {
		return fmt.Errorf("top client: %w", err)
	}
	if s.TopClient != nil && s.TopClient.Name == "" {
		s.TopClient.Name = unknownClient
	}

	top, err := b.store.TopUser(ctx, w)
	if err != nil {
		return fmt.Errorf("top user: %w", err)
	}
	if top != nil {
		name, err := b.users.UserName(ctx, top.UserID)
		if err != nil || name == "" {
			b.logger.Warn("user name lookup failed", "user", top.UserID, "error", err)
			name = unknownAnnualUser
		}
		top.Name = name
	}
	s.TopUser = top
	return nil
}

// buildExtraFacts collects the footnote statistics. Facts without data are
// simply omitted.
func (b *AnnualBuilder) buildExtraFacts(ctx context.Context, w domain.Window) ([]string, error) {
	var facts []string

	night, total, err := b.store.NightRatio(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("night ratio: %w", err)
	}
	if total > 0 {
		if percent := int(night * 100 / total); percent > 0 {
			facts = append(facts, fmt.Sprintf("22:00–04:00 时段播放占比：%d%%", percent))
		}
	}

	day, dur, err := b.store.BusiestDay(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("busiest day: %w", err)
	}
	if day != "" {
		facts = append(facts, fmt.Sprintf("单日最长播放记录：%s（%s）", day, domain.FormatDurationHM(dur)))
	}

	count, err := b.store.EventCount(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("event count: %w", err)
	}
	facts = append(facts, fmt.Sprintf("年度播放记录总数：%d 条", count))

	return facts, nil
}
