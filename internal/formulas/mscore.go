package formulas

// MScoreResult is the Beneish M-Score with its component indexes.
type MScoreResult struct {
	Value      float64            `json:"m_score"`
	Components map[string]float64 `json:"components"`
	IsRedFlag  bool               `json:"is_red_flag"`
}

// MScore computes the Beneish M-Score:
//
//	M = -4.84 + 0.92*DSRI + 0.528*GMI + 0.404*AQI + 0.892*SGI
//	    + 0.115*DEPI - 0.172*SGAI + 4.679*TATA - 0.327*LVGI
//
// Undefined unless both current and prior revenue are positive. Each
// component defaults to the neutral value 1.0 when its inputs are missing,
// contributing no manipulation signal. Red flag when M > -1.78.
func MScore(s *FundamentalSnapshot) *MScoreResult {
	if s.Revenue == nil || s.RevenuePrior == nil {
		return nil
	}
	if *s.Revenue <= 0 || *s.RevenuePrior <= 0 {
		return nil
	}

	components := make(map[string]float64, 8)

	// DSRI: days sales in receivables index
	receivablesToSales := SafeDivide(s.Receivables, s.Revenue)
	receivablesToSalesPrior := SafeDivide(s.ReceivablesPrior, s.RevenuePrior)
	dsri := orOne(SafeDivide(receivablesToSales, receivablesToSalesPrior))
	components["DSRI"] = dsri

	// GMI: gross margin index (prior over current: deterioration > 1)
	grossMargin := SafeDivide(s.GrossProfit, s.Revenue)
	grossMarginPrior := SafeDivide(s.GrossProfitPrior, s.RevenuePrior)
	gmi := orOne(SafeDivide(grossMarginPrior, grossMargin))
	components["GMI"] = gmi

	// AQI: asset quality index, 1 - (CA + PPE) / TA compared year over year
	ca := orZero(s.CurrentAssets)
	ppe := orZero(s.PPE)
	ta := nonZeroOr(s.TotalAssets, 1)
	caPrior := orZero(s.CurrentAssetsPrior)
	ppePrior := orZero(s.PPEPrior)
	taPrior := nonZeroOr(s.TotalAssetsPrior, 1)

	var aqCurrent, aqPrior float64
	if ta > 0 {
		aqCurrent = 1 - (ca+ppe)/ta
	}
	if taPrior > 0 {
		aqPrior = 1 - (caPrior+ppePrior)/taPrior
	}
	aqi := orOne(SafeDivide(&aqCurrent, &aqPrior))
	components["AQI"] = aqi

	// SGI: sales growth index
	sgi := *s.Revenue / *s.RevenuePrior
	components["SGI"] = sgi

	// DEPI: depreciation index
	var deprRate, deprRatePrior *float64
	if ppe != 0 && s.Depreciation != nil {
		denom := *s.Depreciation + ppe
		deprRate = SafeDivide(s.Depreciation, &denom)
	}
	if ppePrior != 0 && s.DepreciationPrior != nil {
		denom := *s.DepreciationPrior + ppePrior
		deprRatePrior = SafeDivide(s.DepreciationPrior, &denom)
	}
	depi := orOne(SafeDivide(deprRatePrior, deprRate))
	components["DEPI"] = depi

	// SGAI: SG&A to sales index
	sgaToSales := SafeDivide(s.SGA, s.Revenue)
	sgaToSalesPrior := SafeDivide(s.SGAPrior, s.RevenuePrior)
	sgai := orOne(SafeDivide(sgaToSales, sgaToSalesPrior))
	components["SGAI"] = sgai

	// TATA: total accruals to total assets
	var tata float64
	if ta > 0 {
		tata = (orZero(s.NetIncome) - orZero(s.OperatingCashFlow)) / ta
	}
	components["TATA"] = tata

	// LVGI: leverage index
	debt := orZero(s.LongTermDebt) + orZero(s.CurrentLiabilities)
	debtPrior := orZero(s.LongTermDebtPrior) + orZero(s.CurrentLiabilitiesPrior)
	leverage := SafeDivide(&debt, &ta)
	leveragePrior := SafeDivide(&debtPrior, &taPrior)
	lvgi := orOne(SafeDivide(leverage, leveragePrior))
	components["LVGI"] = lvgi

	m := -4.84 +
		0.92*dsri +
		0.528*gmi +
		0.404*aqi +
		0.892*sgi +
		0.115*depi -
		0.172*sgai +
		4.679*tata -
		0.327*lvgi

	return &MScoreResult{
		Value:      round2(m),
		Components: components,
		IsRedFlag:  m > -1.78,
	}
}

// nonZeroOr mirrors the "value or default" convention used by the published
// model implementations, where both missing and zero fall back.
func nonZeroOr(v *float64, def float64) float64 {
	if v == nil || *v == 0 {
		return def
	}
	return *v
}
