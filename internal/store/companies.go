// Package store implements the contracts repository interfaces on
// PostgreSQL. Schema lives in schema.sql.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo persists the company directory.
type CompanyRepo struct {
	db *pgxpool.Pool
}

func NewCompanyRepo(db *pgxpool.Pool) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `ticker, name, exchange, sector, industry, market_cap, is_etf, is_active, updated_at`

func scanCompany(row pgx.Row) (*contracts.Company, error) {
	var c contracts.Company
	err := row.Scan(&c.Ticker, &c.Name, &c.Exchange, &c.Sector, &c.Industry,
		&c.MarketCap, &c.IsETF, &c.IsActive, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetActive returns all active companies ordered by ticker.
func (r *CompanyRepo) GetActive(ctx context.Context) ([]*contracts.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE is_active ORDER BY ticker`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query active companies: %w", err)
	}
	defer rows.Close()

	var companies []*contracts.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// GetByTicker looks one company up.
func (r *CompanyRepo) GetByTicker(ctx context.Context, ticker string) (*contracts.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE ticker = $1`

	c, err := scanCompany(r.db.QueryRow(ctx, query, ticker))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("company %s: %w", ticker, contracts.ErrDataUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("query company %s: %w", ticker, err)
	}
	return c, nil
}

const upsertCompanySQL = `
	INSERT INTO companies (ticker, name, exchange, sector, industry, market_cap, is_etf, is_active, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	ON CONFLICT (ticker) DO UPDATE SET
		name = EXCLUDED.name,
		exchange = EXCLUDED.exchange,
		sector = EXCLUDED.sector,
		industry = EXCLUDED.industry,
		market_cap = EXCLUDED.market_cap,
		is_etf = EXCLUDED.is_etf,
		is_active = EXCLUDED.is_active,
		updated_at = NOW()
`

// Upsert inserts or refreshes one company.
func (r *CompanyRepo) Upsert(ctx context.Context, c *contracts.Company) error {
	_, err := r.db.Exec(ctx, upsertCompanySQL,
		c.Ticker, c.Name, c.Exchange, c.Sector, c.Industry, c.MarketCap, c.IsETF, c.IsActive)
	if err != nil {
		return fmt.Errorf("upsert company %s: %w", c.Ticker, err)
	}
	return nil
}

// UpsertBatch writes all companies in one round trip.
func (r *CompanyRepo) UpsertBatch(ctx context.Context, companies []*contracts.Company) error {
	if len(companies) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, c := range companies {
		batch.Queue(upsertCompanySQL,
			c.Ticker, c.Name, c.Exchange, c.Sector, c.Industry, c.MarketCap, c.IsETF, c.IsActive)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range companies {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert companies batch: %w", err)
		}
	}
	return nil
}
