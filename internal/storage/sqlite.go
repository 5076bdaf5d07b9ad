// Package storage provides SQLite-based persistence for solver runs and
// finished plays. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-bloxorz/internal/config"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one recorded solver invocation.
type Run struct {
	ID        int64
	LevelID   string
	Method    string
	Solved    bool
	Moves     int      // path length in actions, 0 for exhaustive runs
	Actions   []string // move names along the path
	Visited   int
	Expanded  int
	Duration  time.Duration
	CreatedAt time.Time
}

// Play is a finished interactive session.
type Play struct {
	ID        int64
	LevelID   string
	Moves     int
	Source    string // "local" or the SSH user
	CreatedAt time.Time
}

// LevelStats aggregates the history of one level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Plays      int
	BestMoves  int // fewest moves over solved path runs and plays, 0 if none
	LastActive time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			method TEXT NOT NULL,
			solved INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			actions TEXT NOT NULL DEFAULT '',
			visited INTEGER NOT NULL DEFAULT 0,
			expanded INTEGER NOT NULL DEFAULT 0,
			duration_us INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);

		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			moves INTEGER NOT NULL,
			source TEXT NOT NULL DEFAULT 'local',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_plays_best ON plays(level_id, moves ASC);
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

// SaveRun records a solver run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, method, solved, moves, actions, visited, expanded, duration_us)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Method, r.Solved, r.Moves, strings.Join(r.Actions, " "),
		r.Visited, r.Expanded, r.Duration.Microseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, level_id, method, solved, moves, actions, visited, expanded, duration_us, created_at`

// RecentRuns retrieves the most recent runs, newest first.
// An empty levelID returns runs for every level.
func (s *Store) RecentRuns(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	var err error
	if levelID == "" {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = s.db.Query(
			`SELECT `+runColumns+` FROM runs WHERE level_id = ? ORDER BY id DESC LIMIT ?`, levelID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the solved path run with the fewest moves for a level,
// or nil if there is none.
func (s *Store) BestRun(levelID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level_id = ? AND solved = 1 AND moves > 0
		 ORDER BY moves ASC, id ASC
		 LIMIT 1`,
		levelID,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var actions string
	var durationUS int64
	var createdAt any
	err := sc.Scan(&r.ID, &r.LevelID, &r.Method, &r.Solved, &r.Moves, &actions,
		&r.Visited, &r.Expanded, &durationUS, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	r.Actions = strings.Fields(actions)
	r.Duration = time.Duration(durationUS) * time.Microsecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// SavePlay records a finished interactive session.
func (s *Store) SavePlay(levelID string, moves int, source string) (int64, error) {
	if source == "" {
		source = "local"
	}
	result, err := s.db.Exec(
		"INSERT INTO plays (level_id, moves, source) VALUES (?, ?, ?)",
		levelID, moves, source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestPlays retrieves the plays with the fewest moves for a level.
func (s *Store) BestPlays(levelID string, limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, moves, source, created_at
		 FROM plays
		 WHERE level_id = ?
		 ORDER BY moves ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var createdAt any
		if err := rows.Scan(&p.ID, &p.LevelID, &p.Moves, &p.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return plays, nil
}

// ClearLevel deletes all runs and plays for the given level.
func (s *Store) ClearLevel(levelID string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM plays WHERE level_id = ?", levelID); err != nil {
		return fmt.Errorf("storage: cannot clear plays: %w", err)
	}
	return nil
}

// AllLevelStats retrieves statistics for every level with history.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, SUM(is_run), SUM(1 - is_run), COALESCE(MIN(best), 0), MAX(created_at)
		 FROM (
			SELECT level_id, 1 AS is_run,
			       CASE WHEN solved = 1 AND moves > 0 THEN moves END AS best,
			       created_at
			FROM runs
			UNION ALL
			SELECT level_id, 0 AS is_run, moves AS best, created_at FROM plays
		 )
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastActive any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.Plays, &st.BestMoves, &lastActive); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastActive = parseTime(lastActive)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

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
