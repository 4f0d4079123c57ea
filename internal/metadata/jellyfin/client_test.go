package jellyfin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zzstar101/jellyfin-playback-report/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(config.JellyfinConfig{
		BaseURL: server.URL,
		APIKey:  "test-token",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearchItem(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Items" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Emby-Token"); got != "test-token" {
			t.Errorf("token header: got %q", got)
		}
		q := r.URL.Query()
		if q.Get("searchTerm") != "Show A" || q.Get("IncludeItemTypes") != "Series" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("Limit") != "1" || q.Get("Fields") != "ParentId" {
			t.Errorf("unexpected query %v", q)
		}
		w.Write([]byte(`{"Items":[{"Id":"abc123","ParentId":"lib-anime"}]}`))
	})

	got, err := client.SearchItem(context.Background(), "Show A", KindSeries)
	if err != nil {
		t.Fatalf("SearchItem: %v", err)
	}
	if got.ID != "abc123" || got.ParentID != "lib-anime" {
		t.Errorf("result: got %+v", got)
	}
}

func TestSearchItem_NoMatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Items":[]}`))
	})

	_, err := client.SearchItem(context.Background(), "Unknown Show", KindSeries)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchItem_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.SearchItem(context.Background(), "Show A", KindSeries)
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatal("expected wrapped *Error")
	}
	if apiErr.Op != "searchItem" {
		t.Errorf("op: got %q", apiErr.Op)
	}
}

func TestItemDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Items/abc123" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"Id":"abc123","Name":"Show A","Genres":["Animation","Comedy"],"Tags":["番剧"]}`))
	})

	got, err := client.ItemDetails(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ItemDetails: %v", err)
	}
	if got.Name != "Show A" || len(got.Genres) != 2 || len(got.Tags) != 1 {
		t.Errorf("details: got %+v", got)
	}
}

func TestPrimaryImage(t *testing.T) {
	poster := []byte{0xFF, 0xD8, 0xFF, 0xE0} // JPEG magic
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Items/abc123/Images/Primary" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write(poster)
	})

	got, err := client.PrimaryImage(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("PrimaryImage: %v", err)
	}
	if string(got) != string(poster) {
		t.Errorf("image bytes: got %v", got)
	}
}

func TestPrimaryImage_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.PrimaryImage(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserName(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Users/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"Id":"u1","Name":"simon"}`))
	})

	got, err := client.UserName(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserName: %v", err)
	}
	if got != "simon" {
		t.Errorf("name: got %q", got)
	}
}
