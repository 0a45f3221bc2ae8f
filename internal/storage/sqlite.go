// Package storage provides SQLite-based persistence for fired shots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout of CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for the shot log.
type Store struct {
	db *sql.DB
}

// Shot is one ball fired at a level.
type Shot struct {
	ID        string
	LevelID   string
	Won       bool
	Reason    string // why the ball was lost; empty for a win
	Steps     int
	CreatedAt time.Time
}

// LevelStats summarizes the shots fired at one level.
type LevelStats struct {
	LevelID    string
	Attempts   int
	Wins       int
	BestSteps  int // fewest steps of a winning shot, 0 if never won
	LastPlayed time.Time
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
		CREATE TABLE IF NOT EXISTS shots (
			id TEXT PRIMARY KEY,
			level_id TEXT NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_shots_level_id ON shots(level_id);
		CREATE INDEX IF NOT EXISTS idx_shots_best ON shots(level_id, won, steps);
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

// SaveShot records a finished shot. An empty shotID gets a fresh UUID.
func (s *Store) SaveShot(levelID, shotID string, won bool, reason string, steps int) error {
	if shotID == "" {
		shotID = uuid.NewString()
	}
	if won {
		reason = ""
	}

	_, err := s.db.Exec(
		"INSERT INTO shots (id, level_id, won, reason, steps) VALUES (?, ?, ?, ?, ?)",
		shotID, levelID, won, reason, steps,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save shot: %w", err)
	}
	return nil
}

// RecentShots returns the latest shots, newest first. An empty levelID
// returns shots from every level.
func (s *Store) RecentShots(levelID string, limit int) ([]Shot, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, won, reason, steps, created_at
		 FROM shots
		 WHERE ? = '' OR level_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		levelID, levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query shots: %w", err)
	}
	defer rows.Close()

	var shots []Shot
	for rows.Next() {
		var sh Shot
		var createdAt any
		if err := rows.Scan(&sh.ID, &sh.LevelID, &sh.Won, &sh.Reason, &sh.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sh.CreatedAt = parseTime(createdAt)
		shots = append(shots, sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return shots, nil
}

const statsQuery = `
	SELECT level_id, COUNT(*), COALESCE(SUM(won), 0),
	       MIN(CASE WHEN won = 1 THEN steps END), MAX(created_at)
	FROM shots`

// LevelStats summarizes the shots fired at levelID. A level without shots
// yields zero counts.
func (s *Store) LevelStats(levelID string) (LevelStats, error) {
	row := s.db.QueryRow(statsQuery+" WHERE level_id = ? GROUP BY level_id", levelID)

	st, err := scanStats(row)
	if errors.Is(err, sql.ErrNoRows) {
		return LevelStats{LevelID: levelID}, nil
	}
	if err != nil {
		return LevelStats{}, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	return st, nil
}

// AllLevelStats summarizes every level that has been played, ordered by ID.
func (s *Store) AllLevelStats() ([]LevelStats, error) {
	rows, err := s.db.Query(statsQuery + " GROUP BY level_id ORDER BY level_id")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level stats: %w", err)
	}
	defer rows.Close()

	var all []LevelStats
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		all = append(all, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return all, nil
}

// ClearShots deletes the shots of levelID, or every shot when it is empty.
func (s *Store) ClearShots(levelID string) error {
	_, err := s.db.Exec("DELETE FROM shots WHERE ? = '' OR level_id = ?", levelID, levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear shots: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(sc scanner) (LevelStats, error) {
	var st LevelStats
	var best sql.NullInt64
	var last any
	if err := sc.Scan(&st.LevelID, &st.Attempts, &st.Wins, &best, &last); err != nil {
		return LevelStats{}, err
	}
	if best.Valid {
		st.BestSteps = int(best.Int64)
	}
	st.LastPlayed = parseTime(last)
	return st, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(sqliteTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
