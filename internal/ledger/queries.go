package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// ErrNotFound is returned when a lookup or update targets a missing run.
var ErrNotFound = errors.New("ledger: run not found")

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullableToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// StartRun inserts a new running run for projectRoot and returns it.
func (l *Ledger) StartRun(ctx context.Context, projectRoot string, startedAt time.Time) (*Run, error) {
	id := uuid.NewString()
	ts := formatTime(startedAt)
	if _, err := l.conn.ExecContext(ctx,
		`INSERT INTO runs (id, project_root, started_at, status) VALUES (?, ?, ?, ?)`,
		id, projectRoot, ts, StatusRunning,
	); err != nil {
		return nil, fmt.Errorf("ledger: start run: %w", err)
	}

	started, err := parseTime(ts)
	if err != nil {
		return nil, fmt.Errorf("ledger: start run: parse time: %w", err)
	}
	return &Run{ID: id, ProjectRoot: projectRoot, StartedAt: started, Status: StatusRunning}, nil
}

// RecordOutcome stores one role outcome for runID.
func (l *Ledger) RecordOutcome(ctx context.Context, o RoleOutcome) error {
	var errText sql.NullString
	if o.Error != nil {
		errText = nullString(*o.Error)
	}
	if _, err := l.conn.ExecContext(ctx,
		`INSERT INTO role_outcomes (run_id, position, role, status, branch, path, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.RunID, o.Position, o.Role, o.Status, o.Branch, o.Path, errText,
	); err != nil {
		return fmt.Errorf("ledger: record outcome %s: %w", o.Role, err)
	}
	return nil
}

// FinishRun marks runID finished with status and the script path written,
// which may be empty.
func (l *Ledger) FinishRun(ctx context.Context, runID, status, scriptPath string, finishedAt time.Time) error {
	res, err := l.conn.ExecContext(ctx,
		`UPDATE runs SET status = ?, finished_at = ?, script_path = ? WHERE id = ?`,
		status, formatTime(finishedAt), nullString(scriptPath), runID,
	)
	if err != nil {
		return fmt.Errorf("ledger: finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ledger: finish run: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetRun returns the run with the given ID.
func (l *Ledger) GetRun(ctx context.Context, id string) (*Run, error) {
	row := l.conn.QueryRowContext(ctx,
		`SELECT id, project_root, started_at, finished_at, status, script_path FROM runs WHERE id = ?`, id,
	)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// ListRuns returns up to limit runs for projectRoot, most recent first.
func (l *Ledger) ListRuns(ctx context.Context, projectRoot string, limit int) ([]Run, error) {
	rows, err := l.conn.QueryContext(ctx,
		`SELECT id, project_root, started_at, finished_at, status, script_path
		 FROM runs WHERE project_root = ? ORDER BY started_at DESC LIMIT ?`,
		projectRoot, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list runs: %w", err)
	}
	return runs, nil
}

// ListOutcomes returns the role outcomes of runID in registry order.
func (l *Ledger) ListOutcomes(ctx context.Context, runID string) ([]RoleOutcome, error) {
	rows, err := l.conn.QueryContext(ctx,
		`SELECT run_id, position, role, status, branch, path, error
		 FROM role_outcomes WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("ledger: list outcomes: %w", err)
	}
	defer rows.Close()

	var out []RoleOutcome
	for rows.Next() {
		var o RoleOutcome
		var errText sql.NullString
		if err := rows.Scan(&o.RunID, &o.Position, &o.Role, &o.Status, &o.Branch, &o.Path, &errText); err != nil {
			return nil, fmt.Errorf("ledger: scan outcome: %w", err)
		}
		o.Error = nullableToPtr(errText)
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: list outcomes: %w", err)
	}
	return out, nil
}

func scanRun(s scanner) (*Run, error) {
	var r Run
	var started string
	var finished, script sql.NullString
	if err := s.Scan(&r.ID, &r.ProjectRoot, &started, &finished, &r.Status, &script); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("ledger: scan run: %w", err)
	}

	t, err := parseTime(started)
	if err != nil {
		return nil, fmt.Errorf("ledger: parse started_at: %w", err)
	}
	r.StartedAt = t

	if finished.Valid {
		ft, err := parseTime(finished.String)
		if err != nil {
			return nil, fmt.Errorf("ledger: parse finished_at: %w", err)
		}
		r.FinishedAt = &ft
	}
	r.ScriptPath = nullableToPtr(script)
	return &r, nil
}
