package contracts

import "time"

// MarketBreadth summarizes advance/decline counts from daily movers.
type MarketBreadth struct {
	Advancers int     `json:"advancers"`
	Decliners int     `json:"decliners"`
	ADRatio   float64 `json:"ad_ratio"`
}

// MarketRiskSnapshot is the daily 1-10 market risk assessment.
type MarketRiskSnapshot struct {
	ID           int64               `json:"id"`
	SnapshotDate time.Time           `json:"snapshot_date"`
	RiskScore    int                 `json:"risk_score"`
	RiskLabel    string              `json:"risk_label"`
	VIXLevel     *float64            `json:"vix_level,omitempty"`
	SP500Price   *float64            `json:"sp500_price,omitempty"`
	SP500Change  *float64            `json:"sp500_change_pct,omitempty"`
	SectorData   []SectorPerformance `json:"sector_data,omitempty"`
	Breadth      *MarketBreadth      `json:"breadth,omitempty"`
	Summary      string              `json:"summary"`
}

// NewsArticle is a stored headline for a ticker or the broad market
// (empty ticker). Sentiment scoring is handled by a downstream consumer;
// only source fields are stored here.
type NewsArticle struct {
	ID          int64     `json:"id"`
	Ticker      string    `json:"ticker,omitempty"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
}

// EarningsEvent is one earnings calendar entry.
type EarningsEvent struct {
	ID           int64     `json:"id"`
	Ticker       string    `json:"ticker"`
	Date         time.Time `json:"date"`
	EPSEstimated *float64  `json:"eps_estimated,omitempty"`
	EPSActual    *float64  `json:"eps_actual,omitempty"`
}

// Earnings proximity tags applied to picks.
const (
	EarningsUpcoming7d     = "upcoming_7d"
	EarningsJustReported3d = "just_reported_3d"
)
