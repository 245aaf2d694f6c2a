package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincentral/backend/internal/contracts"
)

var _ contracts.StrategyRepository = (*StrategyRepo)(nil)

// StrategyRepo persists trade plans. Plans are replaced per date, never
// merged, so the unique (ticker, date, timeframe) key upserts.
type StrategyRepo struct {
	db *pgxpool.Pool
}

func NewStrategyRepo(db *pgxpool.Pool) *StrategyRepo {
	return &StrategyRepo{db: db}
}

// SaveBatch writes all plans in one round trip.
func (r *StrategyRepo) SaveBatch(ctx context.Context, plans []*contracts.TradePlan) error {
	if len(plans) == 0 {
		return nil
	}

	query := `
		INSERT INTO trade_plans (ticker, analysis_date, timeframe, entry_price, stop_loss, take_profit, risk_reward, confidence, rationale, signals)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (ticker, analysis_date, timeframe) DO UPDATE SET
			entry_price = EXCLUDED.entry_price,
			stop_loss = EXCLUDED.stop_loss,
			take_profit = EXCLUDED.take_profit,
			risk_reward = EXCLUDED.risk_reward,
			confidence = EXCLUDED.confidence,
			rationale = EXCLUDED.rationale,
			signals = EXCLUDED.signals
	`

	batch := &pgx.Batch{}
	for _, p := range plans {
		signalsJSON, err := json.Marshal(p.Signals)
		if err != nil {
			return fmt.Errorf("marshal signals for %s: %w", p.Ticker, err)
		}
		batch.Queue(query,
			p.Ticker, p.AnalysisDate, p.Timeframe,
			p.EntryPrice, p.StopLoss, p.TakeProfit, p.RiskReward,
			p.Confidence, p.Rationale, signalsJSON)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range plans {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save trade plans: %w", err)
		}
	}
	return nil
}

// DeleteByDate removes every plan for the date.
func (r *StrategyRepo) DeleteByDate(ctx context.Context, date time.Time) error {
	_, err := r.db.Exec(ctx, `DELETE FROM trade_plans WHERE analysis_date = $1`, date)
	if err != nil {
		return fmt.Errorf("delete trade plans for %s: %w", date.Format("2006-01-02"), err)
	}
	return nil
}

// GetByTickersAndDate returns plans for the tickers on the date, ordered
// by ticker then timeframe.
func (r *StrategyRepo) GetByTickersAndDate(ctx context.Context, tickers []string, date time.Time) ([]*contracts.TradePlan, error) {
	query := `
		SELECT id, ticker, analysis_date, timeframe, entry_price, stop_loss, take_profit, risk_reward, confidence, rationale, signals
		FROM trade_plans
		WHERE analysis_date = $1 AND ticker = ANY($2)
		ORDER BY ticker, timeframe
	`
	rows, err := r.db.Query(ctx, query, date, tickers)
	if err != nil {
		return nil, fmt.Errorf("query trade plans: %w", err)
	}
	defer rows.Close()

	var plans []*contracts.TradePlan
	for rows.Next() {
		var p contracts.TradePlan
		var signalsJSON []byte
		err := rows.Scan(&p.ID, &p.Ticker, &p.AnalysisDate, &p.Timeframe,
			&p.EntryPrice, &p.StopLoss, &p.TakeProfit, &p.RiskReward,
			&p.Confidence, &p.Rationale, &signalsJSON)
		if err != nil {
			return nil, fmt.Errorf("scan trade plan: %w", err)
		}
		if len(signalsJSON) > 0 {
			if err := json.Unmarshal(signalsJSON, &p.Signals); err != nil {
				return nil, fmt.Errorf("unmarshal signals: %w", err)
			}
		}
		plans = append(plans, &p)
	}
	return plans, rows.Err()
}
