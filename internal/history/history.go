package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"

	"github.com/denizydmr07/stubrun/internal/pipeline"
)

// Run statuses stored in the runs table.
const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// maxStderrTail bounds how much captured stderr is kept per step record.
const maxStderrTail = 4096

// Run is one recorded pipeline execution.
type Run struct {
	ID         string
	StartedAt  string
	FinishedAt string
	Status     string
	ExitCode   int
	Steps      []StepRecord
}

// StepRecord is the persisted outcome of one executed step.
type StepRecord struct {
	RunID      string
	Position   int
	Name       string
	Dir        string
	Command    string
	ExitCode   int
	StderrTail sql.NullString
	DurationMS int64
}

// Repository provides access to recorded runs.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// RecordRun stores a completed pipeline execution together with the results
// of every step that actually ran. It returns the generated run ID.
func (r *Repository) RecordRun(startedAt time.Time, results []pipeline.StepResult, runErr error) (string, error) {
	id := uuid.NewString()
	status := StatusSucceeded
	exitCode := 0
	if runErr != nil {
		status = StatusFailed
		exitCode = 1
	}

	trx, err := r.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = trx.Rollback() }()

	_, err = trx.Exec(`INSERT INTO runs (id, started_at, finished_at, status, exit_code) VALUES (?, ?, ?, ?, ?)`,
		id,
		startedAt.UTC().Format(time.RFC3339),
		time.Now().UTC().Format(time.RFC3339),
		status,
		exitCode,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, res := range results {
		tail := res.Stderr
		if len(tail) > maxStderrTail {
			tail = tail[len(tail)-maxStderrTail:]
		}
		var stderrTail interface{}
		if tail != "" {
			stderrTail = tail
		}
		_, err = trx.Exec(`INSERT INTO step_results (run_id, position, name, dir, command, exit_code, stderr_tail, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id,
			i+1,
			res.Step.Name,
			res.Step.Dir,
			shellquote.Join(res.Step.Argv()...),
			res.ExitCode,
			stderrTail,
			res.Duration.Milliseconds(),
		)
		if err != nil {
			return "", fmt.Errorf("insert step result: %w", err)
		}
	}

	if err := trx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first, including their step
// records. limit <= 0 means no limit.
func (r *Repository) ListRuns(limit int) ([]Run, error) {
	q := "SELECT id, started_at, finished_at, status, exit_code FROM runs ORDER BY started_at DESC, id DESC"
	var args []interface{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Status, &run.ExitCode); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		steps, err := r.listSteps(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Steps = steps
	}
	return runs, nil
}

func (r *Repository) listSteps(runID string) ([]StepRecord, error) {
	rows, err := r.db.Query(`SELECT run_id, position, name, dir, command, exit_code, stderr_tail, duration_ms
		FROM step_results WHERE run_id = ? ORDER BY position ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var steps []StepRecord
	for rows.Next() {
		var s StepRecord
		if err := rows.Scan(&s.RunID, &s.Position, &s.Name, &s.Dir, &s.Command, &s.ExitCode, &s.StderrTail, &s.DurationMS); err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
