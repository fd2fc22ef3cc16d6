package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	_ "github.com/vovakirdan/flappy-homage/internal/games/flappy"
	"github.com/vovakirdan/flappy-homage/internal/storage"
)

func newTestServer(t *testing.T, withStore bool) (*httptest.Server, *storage.Store) {
	t.Helper()

	var store *storage.Store
	if withStore {
		var err error
		store, err = storage.Open(filepath.Join(t.TempDir(), "scores.db"))
		if err != nil {
			t.Fatalf("storage.Open() failed: %v", err)
		}
		t.Cleanup(func() { store.Close() })
	}

	srv := httptest.NewServer(New(store, log.New(io.Discard)).Handler())
	t.Cleanup(srv.Close)
	return srv, store
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("GET %s content type = %q", path, ct)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("GET %s: cannot decode body: %v", path, err)
		}
	}
	return resp.StatusCode
}

func TestHealthAndGames(t *testing.T) {
	srv, _ := newTestServer(t, true)

	if code := get(t, srv, "/health", nil); code != http.StatusOK {
		t.Errorf("/health = %d", code)
	}

	var games []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	if code := get(t, srv, "/games", &games); code != http.StatusOK {
		t.Fatalf("/games = %d", code)
	}
	found := false
	for _, g := range games {
		if g.ID == "flappy" {
			found = true
		}
	}
	if !found {
		t.Errorf("flappy missing from %+v", games)
	}
}

func TestScores(t *testing.T) {
	srv, store := newTestServer(t, true)

	for i, s := range []int{3, 9, 5} {
		if _, err := store.SaveScore("flappy", "p"+string(rune('a'+i)), s, s*20); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var rows []scoreJSON
	if code := get(t, srv, "/games/flappy/scores?limit=2", &rows); code != http.StatusOK {
		t.Fatalf("scores = %d", code)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Rank != 1 || rows[0].Player != "pb" || rows[0].Score != 9 || rows[0].Ticks != 180 {
		t.Errorf("first row = %+v", rows[0])
	}
	if rows[1].Score != 5 {
		t.Errorf("second row = %+v", rows[1])
	}

	var recent []scoreJSON
	if code := get(t, srv, "/games/flappy/recent?limit=1", &recent); code != http.StatusOK {
		t.Fatalf("recent = %d", code)
	}
	if len(recent) != 1 || recent[0].Player != "pc" || recent[0].Score != 5 {
		t.Errorf("recent = %+v", recent)
	}

	var stats statsJSON
	if code := get(t, srv, "/games/flappy/stats", &stats); code != http.StatusOK {
		t.Fatalf("stats = %d", code)
	}
	if stats.Runs != 3 || stats.HighScore != 9 || stats.LastPlayed == nil {
		t.Errorf("stats = %+v", stats)
	}
}

func TestErrors(t *testing.T) {
	srv, _ := newTestServer(t, true)

	tests := []struct {
		path string
		code int
	}{
		{"/games/flappy/scores?limit=abc", http.StatusBadRequest},
		{"/games/flappy/scores?limit=0", http.StatusBadRequest},
		{"/games/tetris/scores", http.StatusNotFound},
		{"/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		var body map[string]string
		if code := get(t, srv, tc.path, &body); code != tc.code {
			t.Errorf("GET %s = %d, expected %d", tc.path, code, tc.code)
		}
		if body["error"] == "" {
			t.Errorf("GET %s should carry an error message", tc.path)
		}
	}
}

func TestNoStore(t *testing.T) {
	srv, _ := newTestServer(t, false)

	if code := get(t, srv, "/games/flappy/scores", nil); code != http.StatusServiceUnavailable {
		t.Errorf("scores without a store = %d, expected 503", code)
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"", defaultLimit, true},
		{"5", 5, true},
		{"1000", maxLimit, true},
		{"-1", 0, false},
		{"x", 0, false},
	}
	for _, tc := range tests {
		got, err := parseLimit(tc.raw)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("parseLimit(%q) = %d, %v", tc.raw, got, err)
		}
	}
}
