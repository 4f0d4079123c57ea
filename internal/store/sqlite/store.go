// Package sqlite reads the Playback Reporting plugin's activity database.
// The database is a snapshot fetched from the media server; this package
// never writes to it.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"
)

// ErrSnapshotMissing is returned when no activity database exists at the
// configured path. Every report depends on the snapshot, so callers treat
// this as fatal.
var ErrSnapshotMissing = errors.New("playback activity database not found")

// Store provides read-only access to a playback activity snapshot.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens an existing activity database in read-only mode and verifies
// the PlaybackActivity table is present. The file must already exist.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotMissing, path)
		}
		return nil, fmt.Errorf("stat snapshot: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec pragma: %w", err)
	}

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'PlaybackActivity'`).Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("inspect snapshot: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("snapshot %s has no PlaybackActivity table", path)
	}

	if logger != nil {
		logger.Info("Opened playback activity snapshot", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// formatTime renders a window bound the way the Playback Reporting plugin
// stores DateCreated, a second-precision local timestamp.
func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
