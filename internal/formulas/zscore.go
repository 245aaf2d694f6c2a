package formulas

// Altman Z-Score zone labels.
const (
	ZoneSafe     = "Safe"
	ZoneGrey     = "Grey Zone"
	ZoneDistress = "Distress"
)

// ZScoreResult is the Altman Z-Score with its zone classification.
type ZScoreResult struct {
	Value      float64            `json:"z_score"`
	Components map[string]float64 `json:"components"`
	Zone       string             `json:"zone"`
}

// ZScore computes the Altman Z-Score:
//
//	Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E
//
// Undefined when total assets are missing or non-positive. Missing
// components contribute 0; the market-cap-to-liabilities term is 0 when
// liabilities are undefined or non-positive.
func ZScore(s *FundamentalSnapshot) *ZScoreResult {
	if s.TotalAssets == nil || *s.TotalAssets <= 0 {
		return nil
	}

	totalAssets := *s.TotalAssets

	// A: working capital / total assets
	workingCapital := orZero(s.CurrentAssets) - orZero(s.CurrentLiabilities)
	a := workingCapital / totalAssets

	// B: retained earnings / total assets
	b := orZero(SafeDivide(s.RetainedEarnings, s.TotalAssets))

	// C: EBIT / total assets
	c := orZero(SafeDivide(s.EBIT, s.TotalAssets))

	// D: market value of equity / total liabilities
	var d float64
	if s.TotalLiabilities != nil && *s.TotalLiabilities > 0 {
		d = orZero(SafeDivide(s.MarketCap, s.TotalLiabilities))
	}

	// E: sales / total assets
	e := orZero(SafeDivide(s.Revenue, s.TotalAssets))

	z := 1.2*a + 1.4*b + 3.3*c + 0.6*d + 1.0*e

	return &ZScoreResult{
		Value:      round2(z),
		Components: map[string]float64{"A": a, "B": b, "C": c, "D": d, "E": e},
		Zone:       classifyZScore(z),
	}
}

func classifyZScore(z float64) string {
	switch {
	case z > 2.99:
		return ZoneSafe
	case z > 1.81:
		return ZoneGrey
	default:
		return ZoneDistress
	}
}
