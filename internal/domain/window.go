package domain

import "time"

// Window is the inclusive time range a report covers.
type Window struct {
	Start time.Time
	End   time.Time
}

// PreviousWeek returns the window for the last complete Monday to Sunday week
// relative to now, in now's location. Running on a Monday morning yields the
// week that just ended.
func PreviousWeek(now time.Time) Window {
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(now.Weekday()) + 6) % 7
	thisMonday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -offset)

	start := thisMonday.AddDate(0, 0, -7)
	end := start.AddDate(0, 0, 6).
		Add(23*time.Hour + 59*time.Minute + 59*time.Second + 999999*time.Microsecond)

	return Window{Start: start, End: end}
}

// YearWindow returns the window covering an entire calendar year.
func YearWindow(year int, loc *time.Location) Window {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, loc)
	return Window{Start: start, End: end}
}

// MonthWindow returns the window covering a single month of a year.
func MonthWindow(year int, month time.Month, loc *time.Location) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return Window{Start: start, End: end}
}

// ContainsDate reports whether t falls within the window at calendar-day
// granularity (inclusive on both ends).
func (w Window) ContainsDate(t time.Time) bool {
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	d := day(t)
	return !d.Before(day(w.Start)) && !d.After(day(w.End))
}

// StartDate returns the window start as an ISO date string.
func (w Window) StartDate() string {
	return w.Start.Format("2006-01-02")
}

// EndDate returns the window end as an ISO date string.
func (w Window) EndDate() string {
	return w.End.Format("2006-01-02")
}
