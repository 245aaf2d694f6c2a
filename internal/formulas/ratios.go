package formulas

// Ratios holds common valuation, profitability and leverage ratios.
// A nil field means the ratio was not meaningful for this snapshot.
// ROE, ROA and the margins are expressed as percentages.
type Ratios struct {
	PE           *float64 `json:"pe_ratio,omitempty"`
	PB           *float64 `json:"pb_ratio,omitempty"`
	PS           *float64 `json:"ps_ratio,omitempty"`
	EVEBITDA     *float64 `json:"ev_ebitda,omitempty"`
	ROE          *float64 `json:"roe,omitempty"`
	ROA          *float64 `json:"roa,omitempty"`
	GrossMargin  *float64 `json:"gross_margin,omitempty"`
	NetMargin    *float64 `json:"net_margin,omitempty"`
	DebtToEquity *float64 `json:"debt_to_equity,omitempty"`
	CurrentRatio *float64 `json:"current_ratio,omitempty"`
}

// ValuationRatios computes the ratio set. Every ratio requires its inputs
// to be present and non-zero, and its denominator positive; P/E additionally
// requires positive EPS to be meaningful.
func ValuationRatios(s *FundamentalSnapshot) Ratios {
	var r Ratios

	if present(s.Price) && present(s.EPS) && *s.EPS > 0 {
		r.PE = Float(round2(*s.Price / *s.EPS))
	}

	if present(s.MarketCap) && present(s.TotalEquity) && *s.TotalEquity > 0 {
		r.PB = Float(round2(*s.MarketCap / *s.TotalEquity))
	}

	if present(s.MarketCap) && present(s.Revenue) && *s.Revenue > 0 {
		r.PS = Float(round2(*s.MarketCap / *s.Revenue))
	}

	if present(s.MarketCap) && present(s.EBITDA) && *s.EBITDA > 0 {
		ev := *s.MarketCap + orZero(s.TotalDebt) - orZero(s.Cash)
		r.EVEBITDA = Float(round2(ev / *s.EBITDA))
	}

	if present(s.NetIncome) && present(s.TotalEquity) && *s.TotalEquity > 0 {
		r.ROE = Float(round2(*s.NetIncome / *s.TotalEquity * 100))
	}

	if present(s.NetIncome) && present(s.TotalAssets) && *s.TotalAssets > 0 {
		r.ROA = Float(round2(*s.NetIncome / *s.TotalAssets * 100))
	}

	if present(s.GrossProfit) && present(s.Revenue) && *s.Revenue > 0 {
		r.GrossMargin = Float(round2(*s.GrossProfit / *s.Revenue * 100))
	}

	if present(s.NetIncome) && present(s.Revenue) && *s.Revenue > 0 {
		r.NetMargin = Float(round2(*s.NetIncome / *s.Revenue * 100))
	}

	if present(s.TotalDebt) && present(s.TotalEquity) && *s.TotalEquity > 0 {
		r.DebtToEquity = Float(round2(*s.TotalDebt / *s.TotalEquity))
	}

	if present(s.CurrentAssets) && present(s.CurrentLiabilities) && *s.CurrentLiabilities > 0 {
		r.CurrentRatio = Float(round2(*s.CurrentAssets / *s.CurrentLiabilities))
	}

	return r
}

// present reports a defined, non-zero value.
func present(v *float64) bool {
	return v != nil && *v != 0
}
