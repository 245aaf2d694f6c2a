package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.PickRepository = (*PickRepo)(nil)

// PickRepo persists per-run screen picks.
type PickRepo struct {
	db *pgxpool.Pool
}

func NewPickRepo(db *pgxpool.Pool) *PickRepo {
	return &PickRepo{db: db}
}

// SaveBatch inserts all picks and fills in their generated IDs.
func (r *PickRepo) SaveBatch(ctx context.Context, picks []*contracts.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	query := `
		INSERT INTO daily_picks (run_id, ticker, screen_name, rank, metrics, rationale, earnings_date, earnings_proximity, eps_estimated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	batch := &pgx.Batch{}
	for _, p := range picks {
		metricsJSON, err := json.Marshal(p.Metrics)
		if err != nil {
			return fmt.Errorf("marshal metrics for %s: %w", p.Ticker, err)
		}
		batch.Queue(query,
			p.RunID, p.Ticker, p.ScreenName, p.Rank, metricsJSON,
			p.Rationale, p.EarningsDate, p.EarningsProximity, p.EPSEstimated)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, p := range picks {
		if err := results.QueryRow().Scan(&p.ID); err != nil {
			return fmt.Errorf("insert pick %s: %w", p.Ticker, err)
		}
	}
	return nil
}

// Update rewrites a pick's annotation fields.
func (r *PickRepo) Update(ctx context.Context, p *contracts.Pick) error {
	query := `
		UPDATE daily_picks SET
			rationale = $2,
			earnings_date = $3,
			earnings_proximity = $4,
			eps_estimated = $5
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Rationale, p.EarningsDate, p.EarningsProximity, p.EPSEstimated)
	if err != nil {
		return fmt.Errorf("update pick %d: %w", p.ID, err)
	}
	return nil
}

const pickColumns = `id, run_id, ticker, screen_name, rank, metrics, rationale,
	earnings_date, earnings_proximity, eps_estimated`

func scanPick(row pgx.Row) (*contracts.Pick, error) {
	var p contracts.Pick
	var metricsJSON []byte
	err := row.Scan(&p.ID, &p.RunID, &p.Ticker, &p.ScreenName, &p.Rank, &metricsJSON,
		&p.Rationale, &p.EarningsDate, &p.EarningsProximity, &p.EPSEstimated)
	if err != nil {
		return nil, err
	}
	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &p.Metrics); err != nil {
			return nil, fmt.Errorf("unmarshal metrics: %w", err)
		}
	}
	return &p, nil
}

// GetByRun returns all picks of a run in screen order then rank.
func (r *PickRepo) GetByRun(ctx context.Context, runID int64) ([]*contracts.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM daily_picks WHERE run_id = $1 ORDER BY screen_name, rank, ticker`
	return r.queryPicks(ctx, query, runID)
}

// GetByRunAndScreen returns one screen's picks in rank order.
func (r *PickRepo) GetByRunAndScreen(ctx context.Context, runID int64, screen string) ([]*contracts.Pick, error) {
	query := `SELECT ` + pickColumns + ` FROM daily_picks WHERE run_id = $1 AND screen_name = $2 ORDER BY rank, ticker`
	return r.queryPicks(ctx, query, runID, screen)
}

func (r *PickRepo) queryPicks(ctx context.Context, query string, args ...interface{}) ([]*contracts.Pick, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query picks: %w", err)
	}
	defer rows.Close()

	var picks []*contracts.Pick
	for rows.Next() {
		p, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pick: %w", err)
		}
		picks = append(picks, p)
	}
	return picks, rows.Err()
}
