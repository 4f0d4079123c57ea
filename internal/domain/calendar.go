package domain

import "time"

// CalendarEntry is one upcoming episode or movie release on the calendar.
type CalendarEntry struct {
	Name       string
	Title      string // episode or movie title, may be empty
	Season     int    // 0 for movies
	Episode    int    // 0 for movies
	PosterPath string // catalog-relative poster path
	Movie      bool
}

// CalendarDay groups calendar entries airing on the same date. Days without
// entries are never emitted, so the rendered calendar is sparse.
type CalendarDay struct {
	Date    time.Time // midnight in the report timezone
	Weekday string    // localized weekday label
	Entries []CalendarEntry
}

var weekdayLabels = [7]string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// WeekdayLabel returns the localized label for a date's weekday, Monday first.
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[(int(t.Weekday())+6)%7]
}
