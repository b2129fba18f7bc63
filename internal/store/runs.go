package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"leadgen-engine/internal/domain"
)

const (
	RunStatusRunning = "running"
	RunStatusDone    = "done"
	RunStatusFailed  = "failed"
)

type Run struct {
	ID          string                `json:"id"`
	Status      string                `json:"status"`
	Criteria    domain.SearchCriteria `json:"criteria"`
	QueriesUsed []string              `json:"queriesUsed"`
	LeadCount   int                   `json:"leadCount"`
	Error       string                `json:"error,omitempty"`
	StartedAt   string                `json:"startedAt"`
	FinishedAt  string                `json:"finishedAt,omitempty"`
}

func NewRunID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return "run_" + hex.EncodeToString(b[:])
}

func InsertRun(ctx context.Context, db *sql.DB, id string, criteria domain.SearchCriteria) error {
	critJSON, err := json.Marshal(criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}
	_, err = db.ExecContext(ctx, `
INSERT INTO runs(id, status, criteria, started_at)
VALUES(?,?,?,?);`,
		id, RunStatusRunning, string(critJSON), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the terminal state of a run. errMsg is empty on success.
func FinishRun(ctx context.Context, db *sql.DB, id string, queriesUsed []string, leadCount int, errMsg string) error {
	status := RunStatusDone
	if errMsg != "" {
		status = RunStatusFailed
	}
	qJSON, _ := json.Marshal(queriesUsed)
	if queriesUsed == nil {
		qJSON = []byte("[]")
	}
	_, err := db.ExecContext(ctx, `
UPDATE runs
SET status = ?, queries = ?, lead_count = ?, error = ?, finished_at = ?
WHERE id = ?;`,
		status, string(qJSON), leadCount, errMsg, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

func GetRun(ctx context.Context, db *sql.DB, id string) (Run, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, status, criteria, queries, lead_count, error, started_at, finished_at
FROM runs
WHERE id = ?;`, id)
	return scanRun(row)
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, status, criteria, queries, lead_count, error, started_at, finished_at
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its leads.
func DeleteRun(ctx context.Context, db *sql.DB, id string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads WHERE run_id = ?;`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?;`, id); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var critJSON, qJSON string
	if err := row.Scan(
		&r.ID,
		&r.Status,
		&critJSON,
		&qJSON,
		&r.LeadCount,
		&r.Error,
		&r.StartedAt,
		&r.FinishedAt,
	); err != nil {
		return Run{}, err
	}
	_ = json.Unmarshal([]byte(critJSON), &r.Criteria)
	_ = json.Unmarshal([]byte(qJSON), &r.QueriesUsed)
	return r, nil
}
