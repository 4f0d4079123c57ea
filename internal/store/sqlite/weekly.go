package sqlite

import (
	"context"
	"database/sql"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

// MovieAggregates returns per-title movie playback totals within the window,
// heaviest first. Ties on duration break on play count.
func (s *Store) MovieAggregates(ctx context.Context, w domain.Window) ([]domain.SeriesAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ItemName, ItemId, COUNT(*) AS cnt, SUM(PlayDuration) AS dur
		FROM PlaybackActivity
		WHERE ItemType = 'Movie'
		  AND DateCreated >= ? AND DateCreated <= ?
		GROUP BY ItemName
		ORDER BY dur DESC, cnt DESC, ItemName ASC`,
		formatTime(w.Start), formatTime(w.End))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SeriesAggregate
	for rows.Next() {
		var agg domain.SeriesAggregate
		var itemID sql.NullString
		var dur sql.NullInt64

		if err := rows.Scan(&agg.Name, &itemID, &agg.PlayCount, &dur); err != nil {
			return nil, err
		}
		agg.ItemID = itemID.String
		agg.TotalDuration = dur.Int64
		results = append(results, agg)
	}
	return results, rows.Err()
}

// EpisodeAggregates returns per-episode playback totals within the window.
// Episodes keep their raw item names; callers fold them into series.
func (s *Store) EpisodeAggregates(ctx context.Context, w domain.Window) ([]domain.SeriesAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ItemName, ItemId, COUNT(*) AS cnt, SUM(PlayDuration) AS dur
		FROM PlaybackActivity
		WHERE ItemType = 'Episode'
		  AND DateCreated >= ? AND DateCreated <= ?
		GROUP BY ItemName
		ORDER BY ItemName ASC`,
		formatTime(w.Start), formatTime(w.End))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SeriesAggregate
	for rows.Next() {
		var agg domain.SeriesAggregate
		var itemID sql.NullString
		var dur sql.NullInt64

		if err := rows.Scan(&agg.Name, &itemID, &agg.PlayCount, &dur); err != nil {
			return nil, err
		}
		agg.ItemID = itemID.String
		agg.TotalDuration = dur.Int64
		results = append(results, agg)
	}
	return results, rows.Err()
}

// TopUser returns the user with the most playback time in the window, or
// nil when the window holds no activity. The display name is resolved
// elsewhere; only the user id and totals come from the snapshot.
func (s *Store) TopUser(ctx context.Context, w domain.Window) (*domain.TopUser, error) {
	var user domain.TopUser
	var userID sql.NullString
	var dur sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT UserId, SUM(PlayDuration) AS dur
		FROM PlaybackActivity
		WHERE DateCreated >= ? AND DateCreated <= ?
		GROUP BY UserId
		ORDER BY dur DESC
		LIMIT 1`,
		formatTime(w.Start), formatTime(w.End)).Scan(&userID, &dur)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.UserID = userID.String
	user.TotalDuration = dur.Int64
	return &user, nil
}
