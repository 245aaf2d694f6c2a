package contracts

import "time"

// Company is one row of the company directory.
type Company struct {
	Ticker    string    `json:"ticker"`
	Name      string    `json:"name"`
	Exchange  string    `json:"exchange"`
	Sector    string    `json:"sector"`
	Industry  string    `json:"industry"`
	MarketCap float64   `json:"market_cap"`
	IsETF     bool      `json:"is_etf"`
	IsActive  bool      `json:"is_active"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Quote is a real-time-ish quote for one ticker.
type Quote struct {
	Ticker            string  `json:"ticker"`
	Price             float64 `json:"price"`
	ChangePct         float64 `json:"change_pct"`
	MarketCap         float64 `json:"market_cap"`
	Volume            float64 `json:"volume"`
	EPS               float64 `json:"eps"`
	PE                float64 `json:"pe"`
	SharesOutstanding float64 `json:"shares_outstanding"`
}

// IndexQuote is a market index level with daily change.
type IndexQuote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}

// SectorPerformance is one sector's daily change.
type SectorPerformance struct {
	Sector    string  `json:"sector"`
	ChangePct float64 `json:"change_pct"`
}

// MoverQuote is a top gainer or loser entry.
type MoverQuote struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
}
