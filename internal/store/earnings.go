package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.EarningsRepository = (*EarningsRepo)(nil)

// EarningsRepo persists earnings calendar events keyed by (ticker, date).
type EarningsRepo struct {
	db *pgxpool.Pool
}

func NewEarningsRepo(db *pgxpool.Pool) *EarningsRepo {
	return &EarningsRepo{db: db}
}

// UpsertBatch writes all events, refreshing estimates on conflict.
func (r *EarningsRepo) UpsertBatch(ctx context.Context, events []*contracts.EarningsEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO earnings_events (ticker, event_date, eps_estimated, eps_actual)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticker, event_date) DO UPDATE SET
			eps_estimated = EXCLUDED.eps_estimated,
			eps_actual = EXCLUDED.eps_actual
	`

	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(query, e.Ticker, e.Date, e.EPSEstimated, e.EPSActual)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert earnings events: %w", err)
		}
	}
	return nil
}

// GetByTickers returns events for the tickers inside the date range.
func (r *EarningsRepo) GetByTickers(ctx context.Context, tickers []string, from, to time.Time) ([]*contracts.EarningsEvent, error) {
	query := `
		SELECT id, ticker, event_date, eps_estimated, eps_actual
		FROM earnings_events
		WHERE ticker = ANY($1) AND event_date BETWEEN $2 AND $3
		ORDER BY event_date, ticker
	`
	rows, err := r.db.Query(ctx, query, tickers, from, to)
	if err != nil {
		return nil, fmt.Errorf("query earnings events: %w", err)
	}
	defer rows.Close()

	var events []*contracts.EarningsEvent
	for rows.Next() {
		var e contracts.EarningsEvent
		if err := rows.Scan(&e.ID, &e.Ticker, &e.Date, &e.EPSEstimated, &e.EPSActual); err != nil {
			return nil, fmt.Errorf("scan earnings event: %w", err)
		}
		events = append(events, &e)
	}
	return events, rows.Err()
}
