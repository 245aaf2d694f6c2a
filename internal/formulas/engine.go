package formulas

// Metric names used by screening predicates and persisted metric maps.
const (
	MetricEarningsYield     = "earnings_yield"
	MetricReturnOnCapital   = "return_on_capital"
	MetricAcquirersMultiple = "acquirers_multiple"
	MetricFScore            = "f_score"
	MetricZScore            = "z_score"
	MetricMScore            = "m_score"
	MetricMScoreFlag        = "m_score_flag"
	MetricAccrualRatio      = "accrual_ratio"
	MetricPERatio           = "pe_ratio"
	MetricPBRatio           = "pb_ratio"
	MetricPSRatio           = "ps_ratio"
	MetricEVEBITDA          = "ev_ebitda"
	MetricROE               = "roe"
	MetricROA               = "roa"
	MetricGrossMargin       = "gross_margin"
	MetricNetMargin         = "net_margin"
	MetricDebtToEquity      = "debt_to_equity"
	MetricCurrentRatio      = "current_ratio"
)

// ScoreSet is the engine's full output for one company. Nil members mean
// the formula was undefined for this snapshot. Extra is an open-ended
// extension field for derived metrics attached downstream.
type ScoreSet struct {
	Ticker string `json:"ticker"`

	EarningsYield     *float64 `json:"earnings_yield,omitempty"`
	ReturnOnCapital   *float64 `json:"return_on_capital,omitempty"`
	AcquirersMultiple *float64 `json:"acquirers_multiple,omitempty"`

	FScore  *FScoreResult  `json:"piotroski,omitempty"`
	ZScore  *ZScoreResult  `json:"altman_z,omitempty"`
	MScore  *MScoreResult  `json:"beneish_m,omitempty"`
	Accrual *AccrualResult `json:"sloan_accrual,omitempty"`

	Ratios Ratios `json:"ratios"`

	Extra map[string]float64 `json:"extra,omitempty"`
}

// Compute runs every formula against the snapshot.
func Compute(s *FundamentalSnapshot) *ScoreSet {
	return &ScoreSet{
		Ticker:            s.Ticker,
		EarningsYield:     EarningsYield(s),
		ReturnOnCapital:   ReturnOnCapital(s),
		AcquirersMultiple: AcquirersMultiple(s),
		FScore:            FScore(s),
		ZScore:            ZScore(s),
		MScore:            MScore(s),
		Accrual:           AccrualRatio(s),
		Ratios:            ValuationRatios(s),
	}
}

// Metric looks a score up by its predicate name. The second return is false
// when the metric is undefined for this company, which makes screening
// predicates fail closed.
func (ss *ScoreSet) Metric(name string) (float64, bool) {
	switch name {
	case MetricEarningsYield:
		return deref(ss.EarningsYield)
	case MetricReturnOnCapital:
		return deref(ss.ReturnOnCapital)
	case MetricAcquirersMultiple:
		return deref(ss.AcquirersMultiple)
	case MetricFScore:
		if ss.FScore == nil {
			return 0, false
		}
		return float64(ss.FScore.Score), true
	case MetricZScore:
		if ss.ZScore == nil {
			return 0, false
		}
		return ss.ZScore.Value, true
	case MetricMScore:
		if ss.MScore == nil {
			return 0, false
		}
		return ss.MScore.Value, true
	case MetricMScoreFlag:
		if ss.MScore == nil {
			return 0, false
		}
		if ss.MScore.IsRedFlag {
			return 1, true
		}
		return 0, true
	case MetricAccrualRatio:
		if ss.Accrual == nil {
			return 0, false
		}
		return ss.Accrual.Pct, true
	case MetricPERatio:
		return deref(ss.Ratios.PE)
	case MetricPBRatio:
		return deref(ss.Ratios.PB)
	case MetricPSRatio:
		return deref(ss.Ratios.PS)
	case MetricEVEBITDA:
		return deref(ss.Ratios.EVEBITDA)
	case MetricROE:
		return deref(ss.Ratios.ROE)
	case MetricROA:
		return deref(ss.Ratios.ROA)
	case MetricGrossMargin:
		return deref(ss.Ratios.GrossMargin)
	case MetricNetMargin:
		return deref(ss.Ratios.NetMargin)
	case MetricDebtToEquity:
		return deref(ss.Ratios.DebtToEquity)
	case MetricCurrentRatio:
		return deref(ss.Ratios.CurrentRatio)
	}

	if ss.Extra != nil {
		if v, ok := ss.Extra[name]; ok {
			return v, true
		}
	}

	return 0, false
}

// SetExtra attaches a derived metric.
func (ss *ScoreSet) SetExtra(name string, value float64) {
	if ss.Extra == nil {
		ss.Extra = make(map[string]float64)
	}
	ss.Extra[name] = value
}

// Flatten produces the numeric metric map persisted with a pick. Undefined
// metrics are omitted.
func (ss *ScoreSet) Flatten() map[string]float64 {
	out := make(map[string]float64)

	names := []string{
		MetricEarningsYield, MetricReturnOnCapital, MetricAcquirersMultiple,
		MetricFScore, MetricZScore, MetricMScore, MetricMScoreFlag,
		MetricAccrualRatio, MetricPERatio, MetricPBRatio, MetricPSRatio,
		MetricEVEBITDA, MetricROE, MetricROA, MetricGrossMargin,
		MetricNetMargin, MetricDebtToEquity, MetricCurrentRatio,
	}
	for _, name := range names {
		if v, ok := ss.Metric(name); ok {
			out[name] = v
		}
	}

	for k, v := range ss.Extra {
		out[k] = v
	}

	return out
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}
