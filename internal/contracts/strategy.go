package contracts

import "time"

// Timeframe is a trade plan horizon.
type Timeframe string

const (
	TimeframeSwing    Timeframe = "swing"    // days to weeks
	TimeframePosition Timeframe = "position" // weeks to months
	TimeframeLongterm Timeframe = "longterm" // months and beyond
)

// Confidence is a trade plan conviction tier.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// SignalSnapshot captures the indicator and score inputs a trade plan was
// derived from. Fields are nil when the underlying signal was undefined.
type SignalSnapshot struct {
	RSI            *float64 `json:"rsi,omitempty"`
	MACDHistogram  *float64 `json:"macd_histogram,omitempty"`
	MACDBullish    *bool    `json:"macd_bullish,omitempty"`
	SMA20          *float64 `json:"sma_20,omitempty"`
	SMA50          *float64 `json:"sma_50,omitempty"`
	ATR            *float64 `json:"atr,omitempty"`
	Support        *float64 `json:"support,omitempty"`
	Resistance     *float64 `json:"resistance,omitempty"`
	FScore         *int     `json:"f_score,omitempty"`
	ZScore         *float64 `json:"z_score,omitempty"`
	PERatio        *float64 `json:"pe_ratio,omitempty"`
	ROE            *float64 `json:"roe,omitempty"`
	EarningsYield  *float64 `json:"earnings_yield,omitempty"`
	FairValue      *float64 `json:"fair_value,omitempty"`
	MarginOfSafety *float64 `json:"margin_of_safety,omitempty"`
}

// TradePlan is a per (ticker, timeframe) entry/stop/target plan. Superseded,
// not merged, when the run is regenerated.
type TradePlan struct {
	ID           int64     `json:"id"`
	Ticker       string    `json:"ticker"`
	AnalysisDate time.Time `json:"analysis_date"`
	Timeframe    Timeframe `json:"timeframe"`

	EntryPrice float64 `json:"entry_price"`
	StopLoss   float64 `json:"stop_loss"`
	TakeProfit float64 `json:"take_profit"`

	// RiskReward is reward/risk; nil when risk is undefined and for
	// value-anchored long-term targets.
	RiskReward *float64 `json:"risk_reward_ratio,omitempty"`

	Confidence Confidence     `json:"confidence"`
	Rationale  string         `json:"rationale"`
	Signals    SignalSnapshot `json:"signals"`
}
