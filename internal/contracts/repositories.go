package contracts

import (
	"context"
	"time"
)

// Repository interfaces are defined here and implemented by internal/store.

// CompanyRepository manages the company directory
type CompanyRepository interface {
	GetActive(ctx context.Context) ([]*Company, error)
	GetByTicker(ctx context.Context, ticker string) (*Company, error)
	Upsert(ctx context.Context, company *Company) error
	UpsertBatch(ctx context.Context, companies []*Company) error
}

// RunRepository manages analysis run records and cascading children
type RunRepository interface {
	Create(ctx context.Context, run *AnalysisRun) error
	Update(ctx context.Context, run *AnalysisRun) error

	// GetCompletedByDate returns ErrRunNotFound when no completed run
	// exists for the date.
	GetCompletedByDate(ctx context.Context, date time.Time) (*AnalysisRun, error)

	// DeleteByDate removes all runs for the date together with their picks.
	DeleteByDate(ctx context.Context, date time.Time) error

	// GetLatestCompleted returns ErrRunNotFound when no run has completed.
	GetLatestCompleted(ctx context.Context) (*AnalysisRun, error)

	ListCompletedSince(ctx context.Context, since time.Time) ([]*AnalysisRun, error)
}

// PickRepository manages per-run screen picks
type PickRepository interface {
	SaveBatch(ctx context.Context, picks []*Pick) error
	Update(ctx context.Context, pick *Pick) error
	GetByRun(ctx context.Context, runID int64) ([]*Pick, error)
	GetByRunAndScreen(ctx context.Context, runID int64, screen string) ([]*Pick, error)
}

// StrategyRepository manages trade plans
type StrategyRepository interface {
	SaveBatch(ctx context.Context, plans []*TradePlan) error
	DeleteByDate(ctx context.Context, date time.Time) error
	GetByTickersAndDate(ctx context.Context, tickers []string, date time.Time) ([]*TradePlan, error)
}

// MarketRiskRepository manages daily market risk snapshots
type MarketRiskRepository interface {
	Upsert(ctx context.Context, snapshot *MarketRiskSnapshot) error
	GetLatest(ctx context.Context) (*MarketRiskSnapshot, error)
}

// NewsRepository manages stored headlines, deduplicated by URL
type NewsRepository interface {
	SaveBatch(ctx context.Context, articles []*NewsArticle) error
	GetByTickers(ctx context.Context, tickers []string, limit int) ([]*NewsArticle, error)
}

// EarningsRepository manages earnings calendar events
type EarningsRepository interface {
	UpsertBatch(ctx context.Context, events []*EarningsEvent) error
	GetByTickers(ctx context.Context, tickers []string, from, to time.Time) ([]*EarningsEvent, error)
}

// PortfolioHealthChecker is implemented by an external portfolio module.
// The orchestrator runs the check only when holdings exist.
type PortfolioHealthChecker interface {
	HasHoldings(ctx context.Context) (bool, error)
	CheckHealth(ctx context.Context) error
}
