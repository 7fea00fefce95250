// Package telemetry provides SQLite-based trace recording for agent runs.
package telemetry

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/mimic/internal/action"
)

// Tick is one recorded decision: the active state, the buttons pressed, and
// the emotional readings that shaped them.
type Tick struct {
	Tick            int     `db:"tick"`
	State           string  `db:"state"`
	Buttons         string  `db:"buttons"`
	Confidence      float64 `db:"confidence"`
	Caution         float64 `db:"caution"`
	PanicTicks      int     `db:"panic_ticks"`
	HesitationTicks int     `db:"hesitation_ticks"`
}

// Transition is one state change.
type Transition struct {
	Tick int    `db:"tick"`
	From string `db:"from_state"`
	To   string `db:"to_state"`
}

// Recorder buffers per-tick traces and flushes them to SQLite in batches.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	conn  *sqlx.DB
	runID string

	ticks       []Tick
	transitions []Transition
}

// Open opens or creates a trace database at the given path.
func Open(path string) (*Recorder, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open trace db: %w", err)
	}

	rec := &Recorder{conn: conn}
	if err := rec.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return rec, nil
}

// Close flushes any buffered rows and closes the database.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	if err := r.Flush(); err != nil {
		r.conn.Close()
		return err
	}
	return r.conn.Close()
}

func (r *Recorder) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS decisions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		state TEXT NOT NULL,
		buttons TEXT NOT NULL,
		confidence REAL NOT NULL,
		caution REAL NOT NULL,
		panic_ticks INTEGER NOT NULL,
		hesitation_ticks INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		from_state TEXT NOT NULL,
		to_state TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_run ON decisions(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_transitions_run ON transitions(run_id, tick);
	`
	_, err := r.conn.Exec(schema)
	return err
}

// BeginRun registers a new run and directs subsequent records to it.
func (r *Recorder) BeginRun(seed int64) (string, error) {
	if r == nil {
		return "", nil
	}
	id := uuid.NewString()
	_, err := r.conn.Exec("INSERT INTO runs (id, seed) VALUES (?, ?)", id, seed)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	r.runID = id
	return id, nil
}

// RecordTick buffers one decision row.
func (r *Recorder) RecordTick(tick int, state string, set action.Set, confidence, caution float64, panicTicks, hesitationTicks int) {
	if r == nil {
		return
	}
	r.ticks = append(r.ticks, Tick{
		Tick:            tick,
		State:           state,
		Buttons:         set.String(),
		Confidence:      confidence,
		Caution:         caution,
		PanicTicks:      panicTicks,
		HesitationTicks: hesitationTicks,
	})
}

// RecordTransition buffers one state change row.
func (r *Recorder) RecordTransition(tick int, from, to string) {
	if r == nil {
		return
	}
	r.transitions = append(r.transitions, Transition{Tick: tick, From: from, To: to})
}

// Flush writes all buffered rows in a single transaction.
func (r *Recorder) Flush() error {
	if r == nil || (len(r.ticks) == 0 && len(r.transitions) == 0) {
		return nil
	}

	tx, err := r.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO decisions
		(run_id, tick, state, buttons, confidence, caution, panic_ticks, hesitation_ticks)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range r.ticks {
		if _, err := stmt.Exec(r.runID, t.Tick, t.State, t.Buttons,
			t.Confidence, t.Caution, t.PanicTicks, t.HesitationTicks); err != nil {
			return fmt.Errorf("insert decision tick %d: %w", t.Tick, err)
		}
	}

	for _, tr := range r.transitions {
		if _, err := tx.Exec(
			"INSERT INTO transitions (run_id, tick, from_state, to_state) VALUES (?, ?, ?, ?)",
			r.runID, tr.Tick, tr.From, tr.To); err != nil {
			return fmt.Errorf("insert transition tick %d: %w", tr.Tick, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	r.ticks = r.ticks[:0]
	r.transitions = r.transitions[:0]
	return nil
}

// Transitions returns the recorded transitions for a run, ordered by tick.
func (r *Recorder) Transitions(runID string) ([]Transition, error) {
	if r == nil {
		return nil, nil
	}
	var out []Transition
	err := r.conn.Select(&out,
		"SELECT tick, from_state, to_state FROM transitions WHERE run_id = ? ORDER BY tick",
		runID)
	return out, err
}
