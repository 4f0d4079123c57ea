package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zzstar101/jellyfin-playback-report/internal/domain"
)

const testSchema = `
CREATE TABLE PlaybackActivity (
	DateCreated TEXT,
	UserId TEXT,
	ItemId TEXT,
	ItemType TEXT,
	ItemName TEXT,
	PlaybackMethod TEXT,
	ClientName TEXT,
	DeviceName TEXT,
	PlayDuration INTEGER
)`

type testEvent struct {
	date     string
	userID   string
	itemID   string
	itemType string
	itemName string
	client   string
	duration int64
}

func newTestStore(t *testing.T, events []testEvent) *Store {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "playback_reporting.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, e := range events {
		_, err := db.Exec(`
			INSERT INTO PlaybackActivity
				(DateCreated, UserId, ItemId, ItemType, ItemName, ClientName, PlayDuration)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.date, e.userID, e.itemID, e.itemType, e.itemName, e.client, e.duration)
		if err != nil {
			t.Fatalf("insert event: %v", err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close seed db: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	s, err := Open(dbPath, logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testWindow(start, end string) domain.Window {
	s, _ := time.Parse("2006-01-02 15:04:05", start)
	e, _ := time.Parse("2006-01-02 15:04:05", end)
	return domain.Window{Start: s, End: e}
}

func TestOpen_MissingSnapshot(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.db"), nil)
	if !errors.Is(err, ErrSnapshotMissing) {
		t.Fatalf("expected ErrSnapshotMissing, got %v", err)
	}
}

func TestOpen_MissingTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open seed db: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE other (x INTEGER)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	db.Close()

	if _, err := Open(dbPath, nil); err == nil {
		t.Fatal("expected error for snapshot without PlaybackActivity")
	}
}

func TestMovieAggregates(t *testing.T) {
	s := newTestStore(t, []testEvent{
		{"2025-06-10 20:00:00", "u1", "m1", "Movie", "Inception", "Web", 3600},
		{"2025-06-11 20:00:00", "u2", "m1", "Movie", "Inception", "Web", 3600},
		{"2025-06-11 21:00:00", "u1", "m2", "Movie", "Dune", "Web", 5400},
		// Episode rows must not appear in the movie list.
		{"2025-06-11 22:00:00", "u1", "e1", "Episode", "Show A - S01E01", "Web", 1000},
		// Outside the window.
		{"2025-06-20 20:00:00", "u1", "m3", "Movie", "Heat", "Web", 9000},
	})

	w := testWindow("2025-06-09 00:00:00", "2025-06-15 23:59:59")
	got, err := s.MovieAggregates(context.Background(), w)
	if err != nil {
		t.Fatalf("MovieAggregates: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(got))
	}
	if got[0].Name != "Inception" || got[0].TotalDuration != 7200 || got[0].PlayCount != 2 {
		t.Errorf("first movie: got %+v", got[0])
	}
	if got[1].Name != "Dune" || got[1].TotalDuration != 5400 || got[1].PlayCount != 1 {
		t.Errorf("second movie: got %+v", got[1])
	}
}

func TestEpisodeAggregates(t *testing.T) {
	s := newTestStore(t, []testEvent{
		{"2025-06-10 20:00:00", "u1", "e1", "Episode", "Show A - S01E01", "Web", 1500},
		{"2025-06-11 20:00:00", "u1", "e1", "Episode", "Show A - S01E01", "Web", 500},
		{"2025-06-11 21:00:00", "u1", "e2", "Episode", "Show A - S01E02", "Web", 1000},
	})

	w := testWindow("2025-06-09 00:00:00", "2025-06-15 23:59:59")
	got, err := s.EpisodeAggregates(context.Background(), w)
	if err != nil {
		t.Fatalf("EpisodeAggregates: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 episode rows, got %d", len(got))
	}
	if got[0].Name != "Show A - S01E01" || got[0].TotalDuration != 2000 || got[0].PlayCount != 2 {
		t.Errorf("first episode: got %+v", got[0])
	}
	if got[1].Name != "Show A - S01E02" || got[1].TotalDuration != 1000 {
		t.Errorf("second episode: got %+v", got[1])
	}
}

func TestTopUser(t *testing.T) {
	s := newTestStore(t, []testEvent{
		{"2025-06-10 20:00:00", "u1", "m1", "Movie", "Inception", "Web", 3600},
		{"2025-06-11 20:00:00", "u2", "e1", "Episode", "Show A - S01E01", "Web", 7200},
	})

	w := testWindow("2025-06-09 00:00:00", "2025-06-15 23:59:59")
	got, err := s.TopUser(context.Background(), w)
	if err != nil {
		t.Fatalf("TopUser: %v", err)
	}
	if got == nil {
		t.Fatal("expected a top user")
	}
	if got.UserID != "u2" || got.TotalDuration != 7200 {
		t.Errorf("top user: got %+v", got)
	}
}

func TestTopUser_EmptyWindow(t *testing.T) {
	s := newTestStore(t, nil)

	w := testWindow("2025-06-09 00:00:00", "2025-06-15 23:59:59")
	got, err := s.TopUser(context.Background(), w)
	if err != nil {
		t.Fatalf("TopUser: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil top user, got %+v", got)
	}
}
