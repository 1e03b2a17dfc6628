// Package storage provides SQLite-based persistence for recorded runs.
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

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is one recorded session: enough to re-simulate it from the top.
type Run struct {
	ID         string
	GameID     string
	User       string // Empty for local play, SSH user otherwise
	Seed       int64
	TickRate   int
	ConfigYAML string // Game configuration in effect
	Frames     uint64 // Frames stepped before the recording ended
	FinalScore int    // Displayed score when the recording ended
	Checksum   string // Game state hash when the recording ended; may be empty
	CreatedAt  time.Time
}

// Input is one queued action, applied at the start of Frame.
// Seq orders actions that share a frame.
type Input struct {
	Frame  uint64
	Seq    int
	Action string
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			final_score INTEGER NOT NULL DEFAULT 0,
			checksum TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS run_inputs (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			frame INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			action TEXT NOT NULL,
			PRIMARY KEY (run_id, frame, seq)
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

// SaveRun records a run and its input log in one transaction.
// A run without an ID gets a fresh UUID. Returns the run ID.
func (s *Store) SaveRun(run Run, inputs []Input) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, game_id, player, seed, tick_rate, config_yaml, frames, final_score, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.GameID, run.User, run.Seed, run.TickRate, run.ConfigYAML,
		int64(run.Frames), run.FinalScore, run.Checksum,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_inputs (run_id, frame, seq, action) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for _, in := range inputs {
		if _, err := stmt.Exec(run.ID, int64(in.Frame), in.Seq, in.Action); err != nil {
			return "", fmt.Errorf("storage: cannot save input at frame %d: %w", in.Frame, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return run.ID, nil
}

// Run retrieves a run and its input log, ordered by frame then seq.
// An ID prefix is accepted when it matches exactly one run.
func (s *Store) Run(id string) (*Run, []Input, error) {
	if id == "" {
		return nil, nil, errors.New("storage: run id must not be empty")
	}

	// Literal prefix match: % and _ are not wildcards.
	rows, err := s.db.Query(
		`SELECT id, game_id, player, seed, tick_rate, config_yaml, frames, final_score, checksum, created_at
		 FROM runs
		 WHERE substr(id, 1, length(?)) = ?
		 ORDER BY id = ? DESC
		 LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("storage: cannot query run: %w", err)
	}

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, nil, err
		}
		runs = append(runs, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch {
	case len(runs) == 0:
		return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(runs) > 1 && runs[0].ID != id:
		return nil, nil, fmt.Errorf("storage: run id %q is ambiguous", id)
	}
	run := runs[0]

	inputs, err := s.inputs(run.ID)
	if err != nil {
		return nil, nil, err
	}
	return &run, inputs, nil
}

func (s *Store) inputs(runID string) ([]Input, error) {
	rows, err := s.db.Query(
		`SELECT frame, seq, action
		 FROM run_inputs
		 WHERE run_id = ?
		 ORDER BY frame, seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []Input
	for rows.Next() {
		var in Input
		var frame int64
		if err := rows.Scan(&frame, &in.Seq, &in.Action); err != nil {
			return nil, fmt.Errorf("storage: cannot scan input: %w", err)
		}
		in.Frame = uint64(frame)
		inputs = append(inputs, in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, seed, tick_rate, config_yaml, frames, final_score, checksum, created_at
		 FROM runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
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

// DeleteRun removes a run and its inputs.
func (s *Store) DeleteRun(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_inputs WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return tx.Commit()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var frames int64
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.User, &r.Seed, &r.TickRate,
		&r.ConfigYAML, &frames, &r.FinalScore, &r.Checksum, &createdAt); err != nil {
		return Run{}, fmt.Errorf("storage: cannot scan run: %w", err)
	}
	r.Frames = uint64(frames)

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		r.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			r.CreatedAt = parsed
		}
	}
	return r, nil
}
