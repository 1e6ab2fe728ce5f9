// Package storage provides SQLite-based persistence for finished-game
// results and named saved-game slots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNoSave is returned when a named save slot does not exist.
var ErrNoSave = errors.New("storage: no such save")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ResultEntry is one finished game.
type ResultEntry struct {
	ID           int64
	Tier         string
	Score        int
	DurationSecs int
	Equations    int
	HintsUsed    int
	CreatedAt    time.Time
}

// SaveSlot describes a named saved game without its state payload.
type SaveSlot struct {
	Name      string
	Tier      string
	Score     int
	UpdatedAt time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tier TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			equations INTEGER NOT NULL DEFAULT 0,
			hints_used INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_tier ON results(tier);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(tier, score DESC);

		CREATE TABLE IF NOT EXISTS saves (
			name TEXT PRIMARY KEY,
			tier TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			state TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// SaveResult records a finished game. Returns the ID of the inserted row.
func (s *Store) SaveResult(r ResultEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO results (tier, score, duration_secs, equations, hints_used)
		 VALUES (?, ?, ?, ?, ?)`,
		r.Tier, r.Score, r.DurationSecs, r.Equations, r.HintsUsed,
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

// TopResults retrieves the top N results for a tier, ordered by score
// descending.
func (s *Store) TopResults(tier string, limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, tier, score, duration_secs, equations, hints_used, created_at
		 FROM results
		 WHERE tier = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		tier, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Tier, &e.Score, &e.DurationSecs, &e.Equations, &e.HintsUsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTimestamp(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the highest score recorded for a tier, or 0.
func (s *Store) BestScore(tier string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM results WHERE tier = ?",
		tier,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// SaveGame writes a serialized game state into a named slot, replacing any
// previous content.
func (s *Store) SaveGame(name, tier string, score int, state []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (name, tier, score, state, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
		   tier = excluded.tier,
		   score = excluded.score,
		   state = excluded.state,
		   updated_at = CURRENT_TIMESTAMP`,
		name, tier, score, string(state),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save game %q: %w", name, err)
	}
	return nil
}

// LoadGame retrieves the serialized state of a named slot.
func (s *Store) LoadGame(name string) ([]byte, error) {
	var state string
	err := s.db.QueryRow("SELECT state FROM saves WHERE name = ?", name).Scan(&state)
	if err == sql.ErrNoRows {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load game %q: %w", name, err)
	}
	return []byte(state), nil
}

// ListSaves returns all save slots, most recently updated first.
func (s *Store) ListSaves() ([]SaveSlot, error) {
	rows, err := s.db.Query(
		`SELECT name, tier, score, updated_at
		 FROM saves
		 ORDER BY updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var slot SaveSlot
		var updatedAt any
		if err := rows.Scan(&slot.Name, &slot.Tier, &slot.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		slot.UpdatedAt = parseTimestamp(updatedAt)
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return slots, nil
}

// DeleteSave removes a named save slot. Deleting a missing slot is not an
// error.
func (s *Store) DeleteSave(name string) error {
	_, err := s.db.Exec("DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("storage: cannot delete save %q: %w", name, err)
	}
	return nil
}

// parseTimestamp handles the driver returning either time.Time or string.
func parseTimestamp(v any) time.Time {
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
