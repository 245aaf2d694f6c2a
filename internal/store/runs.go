package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.RunRepository = (*RunRepo)(nil)

// RunRepo persists analysis run records. Deleting a run cascades to its
// picks through the schema's foreign key.
type RunRepo struct {
	db *pgxpool.Pool
}

func NewRunRepo(db *pgxpool.Pool) *RunRepo {
	return &RunRepo{db: db}
}

const runColumns = `id, run_date, status, started_at, completed_at,
	stocks_analyzed, stocks_passed, execution_time_seconds, error_message`

func scanRun(row pgx.Row) (*contracts.AnalysisRun, error) {
	var run contracts.AnalysisRun
	err := row.Scan(&run.ID, &run.RunDate, &run.Status, &run.StartedAt, &run.CompletedAt,
		&run.StocksAnalyzed, &run.StocksPassed, &run.ExecutionTimeSeconds, &run.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// Create inserts the run and fills in its generated ID.
func (r *RunRepo) Create(ctx context.Context, run *contracts.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (run_date, status, started_at, stocks_analyzed, stocks_passed, execution_time_seconds, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		run.RunDate, run.Status, run.StartedAt,
		run.StocksAnalyzed, run.StocksPassed, run.ExecutionTimeSeconds, run.ErrorMessage,
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Update rewrites the mutable run fields.
func (r *RunRepo) Update(ctx context.Context, run *contracts.AnalysisRun) error {
	query := `
		UPDATE analysis_runs SET
			status = $2,
			completed_at = $3,
			stocks_analyzed = $4,
			stocks_passed = $5,
			execution_time_seconds = $6,
			error_message = $7
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		run.ID, run.Status, run.CompletedAt,
		run.StocksAnalyzed, run.StocksPassed, run.ExecutionTimeSeconds, run.ErrorMessage)
	if err != nil {
		return fmt.Errorf("update run %d: %w", run.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return contracts.ErrRunNotFound
	}
	return nil
}

// GetCompletedByDate returns the completed run for the date.
func (r *RunRepo) GetCompletedByDate(ctx context.Context, date time.Time) (*contracts.AnalysisRun, error) {
	query := `
		SELECT ` + runColumns + `
		FROM analysis_runs
		WHERE run_date = $1 AND status = $2
		ORDER BY id DESC
		LIMIT 1
	`
	run, err := scanRun(r.db.QueryRow(ctx, query, date, contracts.RunStatusCompleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query run for %s: %w", date.Format("2006-01-02"), err)
	}
	return run, nil
}

// DeleteByDate removes every run for the date; picks cascade.
func (r *RunRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	_, err := r.db.Exec(ctx, `DELETE FROM analysis_runs WHERE run_date = $1`, date)
	if err != nil {
		return fmt.Errorf("delete runs for %s: %w", date.Format("2006-01-02"), err)
	}
	return nil
}

// GetLatestCompleted returns the most recent completed run.
func (r *RunRepo) GetLatestCompleted(ctx context.Context) (*contracts.AnalysisRun, error) {
	query := `
		SELECT ` + runColumns + `
		FROM analysis_runs
		WHERE status = $1
		ORDER BY run_date DESC, id DESC
		LIMIT 1
	`
	run, err := scanRun(r.db.QueryRow(ctx, query, contracts.RunStatusCompleted))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	return run, nil
}

// ListCompletedSince returns completed runs on or after the date, newest
// first.
func (r *RunRepo) ListCompletedSince(ctx context.Context, since time.Time) ([]*contracts.AnalysisRun, error) {
	query := `
		SELECT ` + runColumns + `
		FROM analysis_runs
		WHERE status = $1 AND run_date >= $2
		ORDER BY run_date DESC
	`
	rows, err := r.db.Query(ctx, query, contracts.RunStatusCompleted, since)
	if err != nil {
		return nil, fmt.Errorf("query runs since %s: %w", since.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var runs []*contracts.AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
