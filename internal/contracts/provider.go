package contracts

import (
	"context"
	"time"

	"github.com/fincentral/backend/internal/formulas"
)

// MarketDataProvider is the upstream market data source. Any call may
// return ErrDataUnavailable; absence of data is not a pipeline error.
type MarketDataProvider interface {
	// BuildSnapshot assembles a fundamental snapshot (current + prior
	// period) from profile, statements and quote data.
	BuildSnapshot(ctx context.Context, ticker string) (*formulas.FundamentalSnapshot, error)

	GetQuote(ctx context.Context, ticker string) (*Quote, error)

	// GetHistoricalPrices returns bars in chronological order regardless of
	// the upstream wire order.
	GetHistoricalPrices(ctx context.Context, ticker string, from, to time.Time) (PriceSeries, error)

	GetEarningsCalendar(ctx context.Context, from, to time.Time) ([]*EarningsEvent, error)

	GetMarketIndexes(ctx context.Context) ([]*IndexQuote, error)
	GetSectorPerformance(ctx context.Context) ([]*SectorPerformance, error)
	GetGainersLosers(ctx context.Context) (gainers, losers []*MoverQuote, err error)

	GetStockNews(ctx context.Context, ticker string, limit int) ([]*NewsArticle, error)
	GetGeneralNews(ctx context.Context, limit int) ([]*NewsArticle, error)
}
