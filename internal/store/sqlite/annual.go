package sqlite

import (
	"context"
	"database/sql"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// showNameExpr folds episode names back to their series in SQL. Episode
// rows look like "Series Name - S01E02 - Episode Title"; the expression
// takes everything before the first " - " separator. Appending the
// separator keeps names without one intact.
const showNameExpr = `CASE
		WHEN ItemType = 'Episode' THEN
			SUBSTR(ItemName, 1, INSTR(ItemName || ' - ', ' - ') - 1)
		ELSE ItemName
	END`

// ActivityDateRange returns the first and last activity dates inside the
// window as ISO dates. Both are empty when the window has no activity.
func (s *Store) ActivityDateRange(ctx context.Context, w domain.Window) (first, last string, err error) {
	var minDate, maxDate sql.NullString
	err = s.db.QueryRowContext(ctx, `
		SELECT MIN(DateCreated), MAX(DateCreated)
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?`,
		formatTime(w.Start), formatTime(w.End)).Scan(&minDate, &maxDate)
	if err != nil {
		return "", "", err
	}
	if !minDate.Valid || len(minDate.String) < 10 {
		return "", "", nil
	}
	return minDate.String[:10], maxDate.String[:10], nil
}

// MonthlyTopShows returns the heaviest shows of the window, episodes folded
// into their series.
func (s *Store) MonthlyTopShows(ctx context.Context, w domain.Window, limit int) ([]domain.ShowAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+showNameExpr+` AS ShowName,
			ItemType,
			SUM(PlayDuration) AS dur,
			COUNT(*) AS cnt
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?
		GROUP BY ShowName
		ORDER BY dur DESC, cnt DESC, ShowName ASC
		LIMIT ?`,
		formatTime(w.Start), formatTime(w.End), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ShowAggregate
	for rows.Next() {
		var agg domain.ShowAggregate
		var name, itemType sql.NullString
		var dur sql.NullInt64

		if err := rows.Scan(&name, &itemType, &dur, &agg.PlayCount); err != nil {
			return nil, err
		}
		agg.Name = name.String
		agg.ItemType = domain.ItemType(itemType.String)
		agg.TotalDuration = dur.Int64
		results = append(results, agg)
	}
	return results, rows.Err()
}

// TotalDuration returns the summed playback seconds within the window.
func (s *Store) TotalDuration(ctx context.Context, w domain.Window) (int64, error) {
	var total sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT SUM(PlayDuration) FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?`,
		formatTime(w.Start), formatTime(w.End)).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

// DistinctItemCount returns the number of distinct works watched within the
// window, episodes counted once per series.
func (s *Store) DistinctItemCount(ctx context.Context, w domain.Window) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT `+showNameExpr+`)
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?`,
		formatTime(w.Start), formatTime(w.End)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// TopShow returns the single most watched show of the window, or nil when
// the window has no activity.
func (s *Store) TopShow(ctx context.Context, w domain.Window) (*domain.ShowStat, error) {
	var stat domain.ShowStat
	var name sql.NullString
	var dur sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT `+showNameExpr+` AS ShowName, SUM(PlayDuration) AS dur
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?
		GROUP BY ShowName
		ORDER BY dur DESC
		LIMIT 1`,
		formatTime(w.Start), formatTime(w.End)).Scan(&name, &dur)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stat.Name = name.String
	stat.TotalDuration = dur.Int64
	return &stat, nil
}

// TopClient returns the most used playback client of the window, or nil
// when the window has no activity. The name may be empty for rows the
// plugin recorded without a client.
func (s *Store) TopClient(ctx context.Context, w domain.Window) (*domain.ClientStat, error) {
	var stat domain.ClientStat
	var name sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT ClientName, COUNT(*) AS cnt
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?
		GROUP BY ClientName
		ORDER BY cnt DESC
		LIMIT 1`,
		formatTime(w.Start), formatTime(w.End)).Scan(&name, &stat.PlayCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	stat.Name = name.String
	return &stat, nil
}

// NightRatio returns the playback seconds that fell between 22:00 and
// 04:00 alongside the window total.
func (s *Store) NightRatio(ctx context.Context, w domain.Window) (night, total int64, err error) {
	var nightDur, totalDur sql.NullInt64
	err = s.db.QueryRowContext(ctx, `
		SELECT
			SUM(CASE WHEN CAST(strftime('%H', DateCreated) AS INTEGER) >= 22
				  OR CAST(strftime('%H', DateCreated) AS INTEGER) < 4
				THEN PlayDuration ELSE 0 END),
			SUM(PlayDuration)
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?`,
		formatTime(w.Start), formatTime(w.End)).Scan(&nightDur, &totalDur)
	if err != nil {
		return 0, 0, err
	}
	return nightDur.Int64, totalDur.Int64, nil
}

// BusiestDay returns the calendar day with the most playback seconds. The
// day is empty when the window has no activity.
func (s *Store) BusiestDay(ctx context.Context, w domain.Window) (day string, duration int64, err error) {
	var d sql.NullString
	var dur sql.NullInt64

	err = s.db.QueryRowContext(ctx, `
		SELECT DATE(DateCreated) AS Day, SUM(PlayDuration) AS DayTotal
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?
		GROUP BY Day
		ORDER BY DayTotal DESC, Day ASC
		LIMIT 1`,
		formatTime(w.Start), formatTime(w.End)).Scan(&d, &dur)
	if err == sql.ErrNoRows {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	return d.String, dur.Int64, nil
}

// EventCount returns the number of playback records within the window.
func (s *Store) EventCount(ctx context.Context, w domain.Window) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?`,
		formatTime(w.Start), formatTime(w.End)).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
