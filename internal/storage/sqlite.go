// Package storage provides SQLite-based persistence for the best time and
// the history of completed games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry is one completed game.
type ResultEntry struct {
	ID         int64
	GameID     string
	TotalCards int
	Moves      int
	Seconds    int
	NewBest    bool
	CreatedAt  time.Time
}

// Stats contains aggregated statistics over all completed games.
type Stats struct {
	GamesCount  int
	BestTime    int
	AvgTime     float64
	FewestMoves int
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Concurrent SSH sessions write to one file; wait for locks instead of failing.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL UNIQUE,
			total_cards INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			seconds INTEGER NOT NULL,
			new_best INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_fastest ON results(seconds ASC, moves ASC);
		CREATE INDEX IF NOT EXISTS idx_results_created ON results(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get implements memory.KeyValue.
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements memory.KeyValue.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	return nil
}

// SetIfLower implements memory.LowerSetter. The compare and write are one
// statement, so concurrent callers can only lower the stored value.
// Missing values and values that are not a non-negative integer are replaced.
func (s *Store) SetIfLower(key string, value int) (bool, string, error) {
	res, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		 WHERE trim(kv.value) = ''
		    OR trim(kv.value) GLOB '*[^0-9]*'
		    OR CAST(trim(kv.value) AS INTEGER) > CAST(excluded.value AS INTEGER)`,
		key, strconv.Itoa(value),
	)
	if err != nil {
		return false, "", fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, "", fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	if n > 0 {
		return true, strconv.Itoa(value), nil
	}

	current, _, err := s.Get(key)
	if err != nil {
		return false, "", err
	}
	return false, current, nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete key %s: %w", key, err)
	}
	return nil
}

// BestStore returns the best-time store backed by this database.
func (s *Store) BestStore() *memory.KVBestStore {
	return memory.NewKVBestStore(s)
}

// SaveResult records a completed game.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(e ResultEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO results (game_id, total_cards, moves, seconds, new_best) VALUES (?, ?, ?, ?, ?)",
		e.GameID, e.TotalCards, e.Moves, e.Seconds, e.NewBest,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordResult implements memory.ResultRecorder.
func (s *Store) RecordResult(r memory.Result) error {
	_, err := s.SaveResult(ResultEntry{
		GameID:     r.GameID,
		TotalCards: r.TotalCards,
		Moves:      r.Moves,
		Seconds:    r.Seconds,
		NewBest:    r.IsNewBest,
	})
	return err
}

// Ensure Store plugs into the game session.
var (
	_ memory.KeyValue       = (*Store)(nil)
	_ memory.LowerSetter    = (*Store)(nil)
	_ memory.ResultRecorder = (*Store)(nil)
)

// TopResults retrieves the fastest N games.
// Ties on time are broken by fewer moves.
func (s *Store) TopResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryResults(
		`SELECT id, game_id, total_cards, moves, seconds, new_best, created_at
		 FROM results
		 ORDER BY seconds ASC, moves ASC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentResults retrieves the most recently completed games.
func (s *Store) RecentResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryResults(
		`SELECT id, game_id, total_cards, moves, seconds, new_best, created_at
		 FROM results
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryResults(query string, args ...any) ([]ResultEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.TotalCards, &e.Moves, &e.Seconds, &e.NewBest, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearResults deletes the game history and the stored best time.
func (s *Store) ClearResults() error {
	if _, err := s.db.Exec("DELETE FROM results"); err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return s.Delete(memory.BestTimeKey)
}

// GetStats retrieves aggregated statistics over all completed games.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(seconds), 0), COALESCE(AVG(seconds), 0), COALESCE(MIN(moves), 0), MAX(created_at)
		 FROM results`,
	).Scan(&stats.GamesCount, &stats.BestTime, &stats.AvgTime, &stats.FewestMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
