// Package audit keeps a history of reconciliation runs per deal in
// PostgreSQL: the full report plus issue counts by category.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/leasematch/internal/debug"
	"github.com/leasematch/internal/report"
)

// ErrRunNotFound is returned when no run has the requested id
var ErrRunNotFound = errors.New("run not found")

// Schema creates the run history tables when they do not exist
const Schema = `
CREATE TABLE IF NOT EXISTS reconciliation_run (
	run_id      TEXT PRIMARY KEY,
	deal_id     TEXT NOT NULL,
	recorded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	elapsed_ms  BIGINT NOT NULL,
	issue_count INTEGER NOT NULL,
	report      JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reconciliation_run_deal ON reconciliation_run (deal_id, recorded_at DESC);
CREATE TABLE IF NOT EXISTS reconciliation_issue (
	run_id      TEXT NOT NULL REFERENCES reconciliation_run(run_id) ON DELETE CASCADE,
	category    TEXT NOT NULL,
	issue_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, category)
);
`

// Tracker records reconciliation runs
type Tracker struct {
	db    *sql.DB
	Debug bool
}

// NewTracker creates a new run tracker
func NewTracker(db *sql.DB) *Tracker {
	return &Tracker{db: db}
}

// RunSummary is one recorded run without its report body
type RunSummary struct {
	RunID      string         `json:"run_id"`
	DealID     string         `json:"deal_id"`
	RecordedAt time.Time      `json:"recorded_at"`
	Elapsed    time.Duration  `json:"-"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	IssueCount int            `json:"issue_count"`
	Categories map[string]int `json:"categories"`
}

// EnsureSchema creates the run history tables
func (t *Tracker) EnsureSchema(ctx context.Context) error {
	if _, err := t.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create audit schema: %w", err)
	}
	return nil
}

// RecordRun saves the report of one run and its per-category issue counts
func (t *Tracker) RecordRun(ctx context.Context, dealID string, r *report.Report, elapsed time.Duration) error {
	debug.Output(t.Debug, "Recording run %s for deal %s", r.RunID, dealID)

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reconciliation_run (run_id, deal_id, elapsed_ms, issue_count, report)
		VALUES ($1, $2, $3, $4, $5)
	`, r.RunID, dealID, elapsed.Milliseconds(), r.IssueCount(), body)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	counts := r.IssuesByCategory()
	categories := make([]string, 0, len(counts))
	for category := range counts {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO reconciliation_issue (run_id, category, issue_count)
			VALUES ($1, $2, $3)
		`, r.RunID, category, counts[category])
		if err != nil {
			return fmt.Errorf("failed to insert %s issue count: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	debug.Output(t.Debug, "Recorded run %s with %d issues", r.RunID, r.IssueCount())
	return nil
}

// History lists the most recent runs of a deal, newest first
func (t *Tracker) History(ctx context.Context, dealID string, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := t.db.QueryContext(ctx, `
		SELECT r.run_id, r.recorded_at, r.elapsed_ms, r.issue_count,
		       COALESCE(i.category, ''), COALESCE(i.issue_count, 0)
		FROM (
			SELECT run_id, recorded_at, elapsed_ms, issue_count
			FROM reconciliation_run
			WHERE deal_id = $1
			ORDER BY recorded_at DESC
			LIMIT $2
		) r
		LEFT JOIN reconciliation_issue i ON i.run_id = r.run_id
		ORDER BY r.recorded_at DESC, r.run_id, i.category
	`, dealID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var s RunSummary
		var category string
		var count int
		if err := rows.Scan(&s.RunID, &s.RecordedAt, &s.ElapsedMS, &s.IssueCount, &category, &count); err != nil {
			return nil, err
		}

		if n := len(runs); n == 0 || runs[n-1].RunID != s.RunID {
			s.DealID = dealID
			s.Elapsed = time.Duration(s.ElapsedMS) * time.Millisecond
			s.Categories = map[string]int{}
			runs = append(runs, s)
		}
		if category != "" {
			runs[len(runs)-1].Categories[category] = count
		}
	}
	return runs, rows.Err()
}

// Report returns the stored report JSON of a run
func (t *Tracker) Report(ctx context.Context, runID string) (json.RawMessage, error) {
	var body []byte
	err := t.db.QueryRowContext(ctx, `SELECT report FROM reconciliation_run WHERE run_id = $1`, runID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	return json.RawMessage(body), nil
}
