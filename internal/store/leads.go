package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"leadgen-engine/internal/domain"
)

type ListLeadsOpts struct {
	RunID    string
	Platform string
	MinScore int
	Sort     string // score | date | name | company
	Window   string // 24h | 7d | all
	Limit    int
}

func InsertLeads(ctx context.Context, db *sql.DB, runID string, leads []domain.CandidateLead) error {
	if len(leads) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, l := range leads {
		if _, err := tx.ExecContext(ctx, `
INSERT OR REPLACE INTO leads
  (id, run_id, name, company, job_title, email, phone, location, industry,
   linkedin_url, company_size, score, source_platform, source_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
			l.ID, runID, l.Name, l.Company, l.JobTitle, l.Email, l.Phone,
			l.Location, l.Industry, l.LinkedInURL, l.CompanySizeBand,
			l.Score, l.SourcePlatform, l.SourceURL, now,
		); err != nil {
			return fmt.Errorf("insert lead %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

func ListLeads(ctx context.Context, db *sql.DB, opts ListLeadsOpts) ([]domain.CandidateLead, error) {
	if opts.Sort == "" {
		opts.Sort = "score"
	}
	if opts.Window == "" {
		opts.Window = "all"
	}
	if opts.Limit <= 0 || opts.Limit > 2000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	sortCol := map[string]string{
		"score":   "score",
		"date":    "created_at",
		"name":    "name",
		"company": "company",
	}[opts.Sort]
	if sortCol == "" {
		sortCol = "score"
	}
	order := "DESC"
	if sortCol == "name" || sortCol == "company" {
		order = "ASC"
	}

	where := "WHERE 1=1"
	var args []any
	if opts.RunID != "" {
		where += " AND run_id = ?"
		args = append(args, opts.RunID)
	}
	if opts.Platform != "" {
		where += " AND source_platform = ?"
		args = append(args, opts.Platform)
	}
	if opts.MinScore > 0 {
		where += " AND score >= ?"
		args = append(args, opts.MinScore)
	}
	switch opts.Window {
	case "24h":
		where += " AND created_at >= datetime('now','-24 hours')"
	case "7d":
		where += " AND created_at >= datetime('now','-7 days')"
	case "all":
		// no filter
	}

	query := fmt.Sprintf(`
SELECT id, run_id, name, company, job_title, email, phone, location, industry,
       linkedin_url, company_size, score, source_platform, source_url
FROM leads
%s
ORDER BY %s %s
LIMIT ?;`, where, sortCol, order)
	args = append(args, opts.Limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CandidateLead
	for rows.Next() {
		var l domain.CandidateLead
		var runID string
		if err := rows.Scan(
			&l.ID,
			&runID,
			&l.Name,
			&l.Company,
			&l.JobTitle,
			&l.Email,
			&l.Phone,
			&l.Location,
			&l.Industry,
			&l.LinkedInURL,
			&l.CompanySizeBand,
			&l.Score,
			&l.SourcePlatform,
			&l.SourceURL,
		); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func DeleteLead(ctx context.Context, db *sql.DB, id string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?;`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func CleanupOldLeads(db *sql.DB) (deleted int64, err error) {
	res, err := db.Exec(`
DELETE FROM leads
WHERE created_at < datetime('now', '-3 months');
`)
	if err != nil {
		return 0, fmt.Errorf("cleanup old leads: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
