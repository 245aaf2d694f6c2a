package formulas

// Accrual quality labels.
const (
	AccrualQualityHigh   = "High"
	AccrualQualityNormal = "Normal"
	AccrualQualityLow    = "Low"
)

// AccrualResult is the Sloan accrual ratio with its quality tier.
type AccrualResult struct {
	Ratio     float64 `json:"accrual_ratio"`
	Pct       float64 `json:"accrual_ratio_pct"`
	Quality   string  `json:"quality"`
	IsRedFlag bool    `json:"is_red_flag"`
}

// AccrualRatio computes the Sloan accrual ratio:
//
//	(NetIncome - OperatingCashFlow) / average(TotalAssets, TotalAssetsPrior)
//
// Prior assets default to current when missing. Undefined when net income
// or operating cash flow is missing, or average assets are non-positive.
// Quality tiers sit at +/-10%; above +10% is a red flag.
func AccrualRatio(s *FundamentalSnapshot) *AccrualResult {
	if s.NetIncome == nil || s.OperatingCashFlow == nil {
		return nil
	}

	taCurrent := orZero(s.TotalAssets)
	taPrior := nonZeroOr(s.TotalAssetsPrior, taCurrent)

	avgAssets := (taCurrent + taPrior) / 2
	if avgAssets <= 0 {
		return nil
	}

	ratio := (*s.NetIncome - *s.OperatingCashFlow) / avgAssets

	quality := AccrualQualityNormal
	switch {
	case ratio < -0.10:
		quality = AccrualQualityHigh
	case ratio > 0.10:
		quality = AccrualQualityLow
	}

	return &AccrualResult{
		Ratio:     round4(ratio),
		Pct:       round2(ratio * 100),
		Quality:   quality,
		IsRedFlag: ratio > 0.10,
	}
}
