// Package storage keeps finished runs in a SQLite file through the pure-Go
// modernc.org/sqlite driver, so the binary builds without cgo.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTime is the text layout of CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// migrations are applied in order; PRAGMA user_version tracks how many ran.
// The column steps upgrade score files written by the older arcade schema,
// which shares the table name but has no player or ticks.
var migrations = []migration{
	execSQL(`CREATE TABLE IF NOT EXISTS scores (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		game_id    TEXT    NOT NULL,
		player     TEXT    NOT NULL DEFAULT '',
		score      INTEGER NOT NULL,
		ticks      INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`),
	addColumn("scores", "player", "TEXT NOT NULL DEFAULT ''"),
	addColumn("scores", "ticks", "INTEGER NOT NULL DEFAULT 0"),
	execSQL(`CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(game_id, score DESC, id)`),
	execSQL(`CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(game_id, player)`),
}

type migration func(db *sql.DB) error

func execSQL(query string) migration {
	return func(db *sql.DB) error {
		_, err := db.Exec(query)
		return err
	}
}

// addColumn adds column to table unless it is already there.
func addColumn(table, column, decl string) migration {
	return func(db *sql.DB) error {
		ok, err := hasColumn(db, table, column)
		if err != nil || ok {
			return err
		}
		_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, decl))
		return err
	}
}

func hasColumn(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid, notNull, pk int
			name, typ        string
			dflt             sql.NullString
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

const entryColumns = "id, game_id, player, score, ticks, created_at"

// Store is a handle on the score database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one recorded run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	Ticks     int
	CreatedAt time.Time
}

// GameStats summarises every run of one game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open opens the database at path, creating the file, its parent
// directories and the schema when missing. A leading ~ is the home directory.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: expand ~: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if err := migrations[i](s.db); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	if version >= len(migrations) {
		return nil
	}
	// PRAGMA does not take bound parameters.
	_, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", len(migrations)))
	return err
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveScore inserts a run and returns its row id.
func (s *Store) SaveScore(gameID, player string, score, ticks int) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score, ticks) VALUES (?, ?, ?, ?)",
		gameID, player, score, ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: insert score: %w", err)
	}
	return id, nil
}

// TopScores returns up to limit runs of gameID, best first, earliest first on
// ties. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.entries(
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?",
		gameID, limit,
	)
}

// RecentScores returns up to limit runs of gameID, newest first.
func (s *Store) RecentScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.entries(
		"SELECT "+entryColumns+" FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT ?",
		gameID, limit,
	)
}

func (s *Store) entries(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e  ScoreEntry
			at any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &e.Ticks, &at); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(at)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read scores: %w", err)
	}
	return out, nil
}

// HighScore returns the best score of gameID, 0 when nothing was recorded.
func (s *Store) HighScore(gameID string) (int, error) {
	return s.maxScore("SELECT MAX(score) FROM scores WHERE game_id = ?", gameID)
}

// PlayerBest returns player's best score of gameID, 0 when they have none.
func (s *Store) PlayerBest(gameID, player string) (int, error) {
	return s.maxScore("SELECT MAX(score) FROM scores WHERE game_id = ? AND player = ?", gameID, player)
}

func (s *Store) maxScore(query string, args ...any) (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow(query, args...).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: query best score: %w", err)
	}
	return int(best.Int64), nil
}

// ClearScores removes every run of gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}

// GameStats aggregates the runs of gameID. A game with no runs yields zero
// counts and a zero LastPlayed.
func (s *Store) GameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}

	row := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0)
		   FROM scores WHERE game_id = ?`,
		gameID,
	)
	if err := row.Scan(&st.GamesCount, &st.HighScore, &st.AvgScore); err != nil {
		return nil, fmt.Errorf("storage: aggregate scores: %w", err)
	}

	var at any
	err := s.db.QueryRow(
		"SELECT created_at FROM scores WHERE game_id = ? ORDER BY id DESC LIMIT 1",
		gameID,
	).Scan(&at)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: last played: %w", err)
	}
	st.LastPlayed = parseTime(at)

	return st, nil
}

// parseTime accepts what the driver hands back for a DATETIME column.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
