package formulas

// FScoreResult is the Piotroski F-Score with its per-test breakdown.
type FScoreResult struct {
	Score          int            `json:"f_score"`
	Breakdown      map[string]int `json:"breakdown"`
	Interpretation string         `json:"interpretation"`
}

// FScore computes the Piotroski F-Score (0-9): four profitability tests,
// three leverage/liquidity tests, two efficiency tests. When a prior-period
// comparison is unavailable the test scores 0, a conservative default
// rather than a skip.
func FScore(s *FundamentalSnapshot) *FScoreResult {
	scores := make(map[string]int, 9)

	// Profitability (4 points)

	// 1. ROA > 0
	roa := SafeDivide(s.NetIncome, s.TotalAssets)
	scores["roa_positive"] = boolToScore(roa != nil && *roa > 0)

	// 2. Operating cash flow > 0
	scores["cfo_positive"] = boolToScore(s.OperatingCashFlow != nil && *s.OperatingCashFlow > 0)

	// 3. ROA improving year over year
	roaPrior := SafeDivide(s.NetIncomePrior, s.TotalAssetsPrior)
	scores["roa_improving"] = boolToScore(roa != nil && roaPrior != nil && *roa > *roaPrior)

	// 4. Accrual quality: CFO exceeds net income
	scores["accruals_quality"] = boolToScore(
		s.OperatingCashFlow != nil && s.NetIncome != nil && *s.OperatingCashFlow > *s.NetIncome)

	// Leverage & liquidity (3 points)

	// 5. Long-term debt to assets decreasing
	leverage := SafeDivide(s.LongTermDebt, s.TotalAssets)
	leveragePrior := SafeDivide(s.LongTermDebtPrior, s.TotalAssetsPrior)
	scores["leverage_decreasing"] = boolToScore(
		leverage != nil && leveragePrior != nil && *leverage < *leveragePrior)

	// 6. Current ratio increasing
	currentRatio := SafeDivide(s.CurrentAssets, s.CurrentLiabilities)
	currentRatioPrior := SafeDivide(s.CurrentAssetsPrior, s.CurrentLiabilitiesPrior)
	scores["liquidity_improving"] = boolToScore(
		currentRatio != nil && currentRatioPrior != nil && *currentRatio > *currentRatioPrior)

	// 7. No share dilution
	scores["no_dilution"] = boolToScore(
		s.SharesOutstanding != nil && s.SharesOutstandingPrior != nil &&
			*s.SharesOutstanding <= *s.SharesOutstandingPrior)

	// Operating efficiency (2 points)

	// 8. Gross margin improving
	grossMargin := SafeDivide(s.GrossProfit, s.Revenue)
	grossMarginPrior := SafeDivide(s.GrossProfitPrior, s.RevenuePrior)
	scores["gross_margin_improving"] = boolToScore(
		grossMargin != nil && grossMarginPrior != nil && *grossMargin > *grossMarginPrior)

	// 9. Asset turnover improving
	assetTurnover := SafeDivide(s.Revenue, s.TotalAssets)
	assetTurnoverPrior := SafeDivide(s.RevenuePrior, s.TotalAssetsPrior)
	scores["asset_turnover_improving"] = boolToScore(
		assetTurnover != nil && assetTurnoverPrior != nil && *assetTurnover > *assetTurnoverPrior)

	total := 0
	for _, v := range scores {
		total += v
	}

	return &FScoreResult{
		Score:          total,
		Breakdown:      scores,
		Interpretation: interpretFScore(total),
	}
}

func interpretFScore(total int) string {
	switch {
	case total >= 8:
		return "Strong"
	case total >= 5:
		return "Moderate"
	default:
		return "Weak"
	}
}

func boolToScore(b bool) int {
	if b {
		return 1
	}
	return 0
}
