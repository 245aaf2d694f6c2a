package formulas

// Greenblatt's Magic Formula components and Carlisle's Acquirer's Multiple.
// Both rest on enterprise value = market cap + total debt - cash, with debt
// and cash treated as 0 when unreported.

// EnterpriseValue returns nil when market cap is undefined.
func EnterpriseValue(s *FundamentalSnapshot) *float64 {
	if s.MarketCap == nil {
		return nil
	}
	ev := *s.MarketCap + orZero(s.TotalDebt) - orZero(s.Cash)
	return &ev
}

// EarningsYield = EBIT / EnterpriseValue. Undefined when EBIT or market cap
// is missing, or EV is non-positive.
func EarningsYield(s *FundamentalSnapshot) *float64 {
	if s.EBIT == nil {
		return nil
	}

	ev := EnterpriseValue(s)
	if ev == nil || *ev <= 0 {
		return nil
	}

	v := *s.EBIT / *ev
	return &v
}

// ReturnOnCapital = EBIT / (NetWorkingCapital + NetFixedAssets).
// NetWorkingCapital = CurrentAssets - CurrentLiabilities.
// NetFixedAssets = TotalAssets - CurrentAssets - Intangibles.
// Undefined when EBIT is missing or invested capital is non-positive.
func ReturnOnCapital(s *FundamentalSnapshot) *float64 {
	if s.EBIT == nil {
		return nil
	}

	currentAssets := orZero(s.CurrentAssets)
	netWorkingCapital := currentAssets - orZero(s.CurrentLiabilities)
	netFixedAssets := orZero(s.TotalAssets) - currentAssets - orZero(s.Intangibles)

	investedCapital := netWorkingCapital + netFixedAssets
	if investedCapital <= 0 {
		return nil
	}

	v := *s.EBIT / investedCapital
	return &v
}

// AcquirersMultiple = EnterpriseValue / EBIT. Loss-making firms are
// excluded by policy: defined only when EBIT > 0 and EV > 0.
func AcquirersMultiple(s *FundamentalSnapshot) *float64 {
	if s.EBIT == nil || s.MarketCap == nil {
		return nil
	}

	if *s.EBIT <= 0 {
		return nil
	}

	ev := EnterpriseValue(s)
	if ev == nil || *ev <= 0 {
		return nil
	}

	v := *ev / *s.EBIT
	return &v
}
