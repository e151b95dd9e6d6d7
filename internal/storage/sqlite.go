// Package storage provides SQLite-based persistence for maze generation
// statistics. Only counters are stored, never cell or wall data.
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

	"github.com/vovakirdan/tui-mazegen/internal/core"
)

// Store manages the SQLite database connection for run statistics.
type Store struct {
	db *sql.DB
}

// RunRecord represents one completed maze generation.
type RunRecord struct {
	ID             int64
	RunID          string
	SceneID        string
	Generation     int
	Dimension      int
	CarveSteps     int
	BacktrackSteps int
	MaxStackDepth  int
	Seed           int64
	Ticks          uint64
	CreatedAt      time.Time
}

// RunFromCompletion converts a scene completion into a record with a fresh run ID.
func RunFromCompletion(c core.Completion) RunRecord {
	return RunRecord{
		RunID:          uuid.NewString(),
		SceneID:        c.SceneID,
		Generation:     c.Generation,
		Dimension:      c.Dimension,
		CarveSteps:     c.CarveSteps,
		BacktrackSteps: c.BacktrackSteps,
		MaxStackDepth:  c.MaxStackDepth,
		Seed:           c.Seed,
		Ticks:          c.Ticks,
	}
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			scene_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			dimension INTEGER NOT NULL,
			carve_steps INTEGER NOT NULL,
			backtrack_steps INTEGER NOT NULL,
			max_stack_depth INTEGER NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scene_id ON runs(scene_id);
		CREATE INDEX IF NOT EXISTS idx_runs_recent ON runs(scene_id, created_at DESC);
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

// SaveRun records a completed generation.
// A run ID is generated when the record has none.
// Returns the row ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, scene_id, generation, dimension, carve_steps, backtrack_steps, max_stack_depth, seed, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.SceneID, r.Generation, r.Dimension,
		r.CarveSteps, r.BacktrackSteps, r.MaxStackDepth,
		r.Seed, int64(r.Ticks),
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

// SaveCompletion records a scene completion.
func (s *Store) SaveCompletion(c core.Completion) (int64, error) {
	return s.SaveRun(RunFromCompletion(c))
}

// RecentRuns retrieves the most recent runs for a scene, newest first.
// An empty sceneID matches every scene.
func (s *Store) RecentRuns(sceneID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, scene_id, generation, dimension, carve_steps, backtrack_steps,
		        max_stack_depth, seed, ticks, created_at
		 FROM runs
		 WHERE ? = '' OR scene_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		sceneID, sceneID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var ticks int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.SceneID, &r.Generation, &r.Dimension,
			&r.CarveSteps, &r.BacktrackSteps, &r.MaxStackDepth,
			&r.Seed, &ticks, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RunByID retrieves a run by its run ID. Returns nil if not found.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	var r RunRecord
	var ticks int64
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, run_id, scene_id, generation, dimension, carve_steps, backtrack_steps,
		        max_stack_depth, seed, ticks, created_at
		 FROM runs
		 WHERE run_id = ?`,
		runID,
	).Scan(
		&r.ID, &r.RunID, &r.SceneID, &r.Generation, &r.Dimension,
		&r.CarveSteps, &r.BacktrackSteps, &r.MaxStackDepth,
		&r.Seed, &ticks, &createdAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	r.Ticks = uint64(ticks)
	r.CreatedAt = parseTime(createdAt)
	return &r, nil
}

// ClearRuns deletes all runs for the given scene.
func (s *Store) ClearRuns(sceneID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scene_id = ?", sceneID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for one scene.
type RunStats struct {
	SceneID          string
	Runs             int
	LargestDimension int
	AvgBacktracks    float64
	AvgStackDepth    float64
	MaxStackDepth    int
	LastRun          time.Time
}

// GetRunStats retrieves aggregated statistics for a specific scene.
func (s *Store) GetRunStats(sceneID string) (*RunStats, error) {
	stats := &RunStats{SceneID: sceneID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(dimension), 0), COALESCE(AVG(backtrack_steps), 0),
		        COALESCE(AVG(max_stack_depth), 0), COALESCE(MAX(max_stack_depth), 0)
		 FROM runs WHERE scene_id = ?`,
		sceneID,
	).Scan(&stats.Runs, &stats.LargestDimension, &stats.AvgBacktracks, &stats.AvgStackDepth, &stats.MaxStackDepth)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scene_id = ? ORDER BY created_at DESC LIMIT 1`,
		sceneID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTime(lastRun)
	}

	return stats, nil
}

// GetAllRunStats retrieves statistics for every scene that has runs.
func (s *Store) GetAllRunStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT scene_id, COUNT(*), MAX(dimension), AVG(backtrack_steps),
		        AVG(max_stack_depth), MAX(max_stack_depth), MAX(created_at)
		 FROM runs
		 GROUP BY scene_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all run stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastRun any
		if err := rows.Scan(&st.SceneID, &st.Runs, &st.LargestDimension, &st.AvgBacktracks,
			&st.AvgStackDepth, &st.MaxStackDepth, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SceneID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from SQLite.
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
