package domain

import "fmt"

// SeriesAggregate folds all playback events sharing a series identity within
// a window. Built once per report run and discarded after rendering.
type SeriesAggregate struct {
	Name          string
	TotalDuration int64 // seconds
	PlayCount     int
	ItemID        string   // representative playback item
	SeriesID      string   // resolved catalog id; empty when the lookup missed
	Category      Category // attached after resolution, not intrinsic to events
}

// ShowAggregate is a series-folded aggregate that keeps the item type which
// produced it, so callers know whether to search the catalog for a movie or
// a series.
type ShowAggregate struct {
	Name          string
	ItemType      ItemType
	TotalDuration int64 // seconds
	PlayCount     int
}

// RankedEntry is one row of a category's Top-N list.
type RankedEntry struct {
	Rank          int
	Name          string
	TotalDuration int64 // seconds
	PlayCount     int
	ItemID        string
	SeriesID      string
}

// TopUser is the heaviest viewer of a window.
type TopUser struct {
	UserID        string
	Name          string
	TotalDuration int64 // seconds
}

// WeeklyReport holds the aggregated results for one weekly window.
// Empty category slices are a valid state, not an error.
type WeeklyReport struct {
	Window  Window
	Movies  []RankedEntry
	TV      []RankedEntry
	Anime   []RankedEntry
	TopUser *TopUser // nil when the window has no activity
}

// ShowStat is a single named statistic with a duration.
type ShowStat struct {
	Name          string
	TotalDuration int64 // seconds
}

// ClientStat is the most used playback client.
type ClientStat struct {
	Name      string
	PlayCount int
}

// AnnualSummary holds the year-level headline statistics. Optional fields are
// nil when the year has no qualifying data; their summary cards are omitted.
type AnnualSummary struct {
	StatsPeriod   string // actual first..last activity dates
	TotalDuration int64  // seconds
	TotalItems    int    // distinct works watched
	TopShow       *ShowStat
	TopUser       *TopUser
	TopClient     *ClientStat
}

// MonthlyTop is one month's Top-N row of the annual report.
type MonthlyTop struct {
	Month   int // 1..12
	Entries []ShowAggregate
}

// AnnualReport holds twelve months of rankings plus the year summary.
type AnnualReport struct {
	Year       int
	Monthly    [12]MonthlyTop
	Summary    AnnualSummary
	ExtraFacts []string
}

// FormatDuration renders seconds as "2h 3m 4s", dropping leading zero units.
func FormatDuration(sec int64) string {
	h := sec / 3600
	m := sec % 3600 / 60
	s := sec % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatDurationHM renders seconds as "2h 3m" with a "< 1m" floor, the
// compact form used on summary cards.
func FormatDurationHM(sec int64) string {
	if sec < 60 {
		return "< 1m"
	}
	h := sec / 3600
	m := sec % 3600 / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
