package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.MarketRiskRepository = (*MarketRiskRepo)(nil)

// MarketRiskRepo persists one risk snapshot per calendar date.
type MarketRiskRepo struct {
	db *pgxpool.Pool
}

func NewMarketRiskRepo(db *pgxpool.Pool) *MarketRiskRepo {
	return &MarketRiskRepo{db: db}
}

// Upsert writes the snapshot, replacing the day's previous one.
func (r *MarketRiskRepo) Upsert(ctx context.Context, s *contracts.MarketRiskSnapshot) error {
	sectorJSON, err := json.Marshal(s.SectorData)
	if err != nil {
		return fmt.Errorf("marshal sector data: %w", err)
	}
	var breadthJSON []byte
	if s.Breadth != nil {
		if breadthJSON, err = json.Marshal(s.Breadth); err != nil {
			return fmt.Errorf("marshal breadth: %w", err)
		}
	}

	query := `
		INSERT INTO market_risk_snapshots (snapshot_date, risk_score, risk_label, vix_level, sp500_price, sp500_change_pct, sector_data, breadth, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (snapshot_date) DO UPDATE SET
			risk_score = EXCLUDED.risk_score,
			risk_label = EXCLUDED.risk_label,
			vix_level = EXCLUDED.vix_level,
			sp500_price = EXCLUDED.sp500_price,
			sp500_change_pct = EXCLUDED.sp500_change_pct,
			sector_data = EXCLUDED.sector_data,
			breadth = EXCLUDED.breadth,
			summary = EXCLUDED.summary
		RETURNING id
	`
	err = r.db.QueryRow(ctx, query,
		s.SnapshotDate, s.RiskScore, s.RiskLabel,
		s.VIXLevel, s.SP500Price, s.SP500Change,
		sectorJSON, breadthJSON, s.Summary,
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("upsert market risk snapshot: %w", err)
	}
	return nil
}

// GetLatest returns the most recent snapshot.
func (r *MarketRiskRepo) GetLatest(ctx context.Context) (*contracts.MarketRiskSnapshot, error) {
	query := `
		SELECT id, snapshot_date, risk_score, risk_label, vix_level, sp500_price, sp500_change_pct, sector_data, breadth, summary
		FROM market_risk_snapshots
		ORDER BY snapshot_date DESC
		LIMIT 1
	`

	var s contracts.MarketRiskSnapshot
	var sectorJSON, breadthJSON []byte
	err := r.db.QueryRow(ctx, query).Scan(&s.ID, &s.SnapshotDate, &s.RiskScore, &s.RiskLabel,
		&s.VIXLevel, &s.SP500Price, &s.SP500Change, &sectorJSON, &breadthJSON, &s.Summary)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.ErrDataUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("query latest market risk: %w", err)
	}

	if len(sectorJSON) > 0 {
		if err := json.Unmarshal(sectorJSON, &s.SectorData); err != nil {
			return nil, fmt.Errorf("unmarshal sector data: %w", err)
		}
	}
	if len(breadthJSON) > 0 {
		s.Breadth = &contracts.MarketBreadth{}
		if err := json.Unmarshal(breadthJSON, s.Breadth); err != nil {
			return nil, fmt.Errorf("unmarshal breadth: %w", err)
		}
	}
	return &s, nil
}
