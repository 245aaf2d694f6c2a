package formulas

import "math"

// FundamentalSnapshot holds normalized financial statement facts for one
// company, current and prior annual period. Any field may be nil because
// upstream data is incomplete; formulas treat nil as undefined and degrade
// per their own published policy.
type FundamentalSnapshot struct {
	Ticker string

	// Market data
	Price             *float64
	MarketCap         *float64
	EPS               *float64
	SharesOutstanding *float64

	// Income statement, current period
	Revenue      *float64
	GrossProfit  *float64
	EBIT         *float64
	EBITDA       *float64
	SGA          *float64
	Depreciation *float64
	NetIncome    *float64

	// Income statement, prior period
	RevenuePrior      *float64
	GrossProfitPrior  *float64
	SGAPrior          *float64
	DepreciationPrior *float64
	NetIncomePrior    *float64

	// Balance sheet, current period
	TotalAssets        *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	TotalLiabilities   *float64
	TotalDebt          *float64
	LongTermDebt       *float64
	Cash               *float64
	Receivables        *float64
	Intangibles        *float64
	PPE                *float64
	RetainedEarnings   *float64
	TotalEquity        *float64

	// Balance sheet, prior period
	TotalAssetsPrior        *float64
	CurrentAssetsPrior      *float64
	CurrentLiabilitiesPrior *float64
	LongTermDebtPrior       *float64
	ReceivablesPrior        *float64
	PPEPrior                *float64
	SharesOutstandingPrior  *float64

	// Cash flow statement
	OperatingCashFlow      *float64
	OperatingCashFlowPrior *float64
}

// Float returns a pointer to v. Convenience for building snapshots.
func Float(v float64) *float64 {
	return &v
}

// SafeDivide returns a/b, or nil when either operand is undefined or the
// denominator is zero. Every division in this package routes through it.
func SafeDivide(a, b *float64) *float64 {
	if a == nil || b == nil || *b == 0 {
		return nil
	}
	v := *a / *b
	return &v
}

// orZero treats an undefined value as 0.
func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// orOne treats an undefined value as the neutral index 1. A defined
// zero is a legitimate ratio and passes through unchanged.
func orOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
