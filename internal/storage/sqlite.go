// Package storage provides SQLite-based persistence for level
// completions. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Completion is one recorded level clear.
type Completion struct {
	ID          int64
	LevelID     string
	ElapsedSecs float64
	Moves       int
	CreatedAt   time.Time
}

// LevelStats aggregates every clear of one level.
type LevelStats struct {
	LevelID    string
	Clears     int
	BestSecs   float64
	FewestMove int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path. It creates
// the parent directories if needed and runs migrations.
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

	db, err := sql.Open("sqlite", dbPath)
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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			elapsed_secs REAL NOT NULL,
			moves INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level_id ON completions(level_id);
		CREATE INDEX IF NOT EXISTS idx_completions_best ON completions(level_id, elapsed_secs ASC);
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

// RecordCompletion saves one level clear. Satisfies the session's store
// interface.
func (s *Store) RecordCompletion(levelID string, elapsedSecs float64, moves int) error {
	_, err := s.db.Exec(
		"INSERT INTO completions (level_id, elapsed_secs, moves) VALUES (?, ?, ?)",
		levelID, elapsedSecs, moves,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save completion: %w", err)
	}
	return nil
}

// Best returns the fastest clear of the given level, or nil when the
// level has never been completed.
func (s *Store) Best(levelID string) (*Completion, error) {
	var c Completion
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, level_id, elapsed_secs, moves, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY elapsed_secs ASC, moves ASC
		 LIMIT 1`,
		levelID,
	).Scan(&c.ID, &c.LevelID, &c.ElapsedSecs, &c.Moves, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best completion: %w", err)
	}

	c.CreatedAt = parseCreatedAt(createdAt)
	return &c, nil
}

// Completions retrieves up to limit clears of the given level, fastest
// first.
func (s *Store) Completions(levelID string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, elapsed_secs, moves, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY elapsed_secs ASC, moves ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var createdAt any
		if err := rows.Scan(&c.ID, &c.LevelID, &c.ElapsedSecs, &c.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// IsCompleted reports whether the given level has ever been cleared.
func (s *Store) IsCompleted(levelID string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM completions WHERE level_id = ?",
		levelID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query completion count: %w", err)
	}
	return count > 0, nil
}

// CompletedLevels returns the set of level ids with at least one clear.
func (s *Store) CompletedLevels() (map[string]bool, error) {
	rows, err := s.db.Query("SELECT DISTINCT level_id FROM completions")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return done, nil
}

// ClearLevel deletes every recorded clear of the given level.
func (s *Store) ClearLevel(levelID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(elapsed_secs), 0), COALESCE(MIN(moves), 0)
		 FROM completions WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Clears, &stats.BestSecs, &stats.FewestMove)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM completions WHERE level_id = ? ORDER BY created_at DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseCreatedAt(lastPlayed)
	}

	return stats, nil
}

// parseCreatedAt handles both time.Time and string datetimes, which the
// driver returns depending on how the column was written.
func parseCreatedAt(v any) time.Time {
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
