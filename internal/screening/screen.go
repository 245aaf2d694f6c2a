// Package screening filters and ranks scored companies against preset
// value-investing screens.
package screening

// Screen name constants. Order matters for pick deduplication.
const (
	ScreenMagicFormula = "magic_formula"
	ScreenDeepValue    = "deep_value"
	ScreenQualityValue = "quality_value"
	ScreenSafeStocks   = "safe_stocks"
	ScreenRedFlagWatch = "red_flag_watch"
)

// MetricMagicFormulaRank is the derived combined rank attached to score
// sets before evaluation. Lower is better.
const MetricMagicFormulaRank = "magic_formula_rank"

// Operator compares a metric against a filter threshold.
type Operator string

const (
	OpGT  Operator = ">"
	OpLT  Operator = "<"
	OpGTE Operator = ">="
	OpLTE Operator = "<="
	OpEQ  Operator = "=="
)

// Filter is one metric predicate. A company whose metric is undefined
// fails the filter regardless of the operator.
type Filter struct {
	Metric string   `json:"metric"`
	Op     Operator `json:"op"`
	Value  float64  `json:"value"`
}

// Screen is a complete preset definition.
type Screen struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`

	Filters        []Filter `json:"filters"`
	ExcludeSectors []string `json:"exclude_sectors,omitempty"`
	MinMarketCap   float64  `json:"min_market_cap"`

	// MaxMarketCap caps eligibility; zero means no ceiling.
	MaxMarketCap float64 `json:"max_market_cap,omitempty"`

	SortBy   string `json:"sort_by"`
	SortDesc bool   `json:"sort_desc"`
	Limit    int    `json:"limit"`

	// WatchOnly screens are evaluated and stored but never contribute
	// to the daily pick list.
	WatchOnly bool `json:"watch_only"`
}

// Presets returns the built-in screens in evaluation order. The slice is
// freshly allocated on every call so callers can modify their copy.
func Presets() []Screen {
	return []Screen{
		{
			Name:           ScreenMagicFormula,
			Title:          "Magic Formula",
			Description:    "Greenblatt ranking on earnings yield and return on capital",
			ExcludeSectors: []string{"Financial Services", "Utilities"},
			MinMarketCap:   50_000_000,
			SortBy:         MetricMagicFormulaRank,
			Limit:          50,
		},
		{
			Name:        ScreenDeepValue,
			Title:       "Deep Value",
			Description: "Cheap on the acquirer's multiple with acceptable fundamentals",
			Filters: []Filter{
				{Metric: "acquirers_multiple", Op: OpLT, Value: 8},
				{Metric: "f_score", Op: OpGTE, Value: 5},
			},
			ExcludeSectors: []string{"Financial Services"},
			MinMarketCap:   100_000_000,
			SortBy:         "acquirers_multiple",
			Limit:          50,
		},
		{
			Name:        ScreenQualityValue,
			Title:       "Quality Value",
			Description: "Strong fundamentals at a reasonable price",
			Filters: []Filter{
				{Metric: "f_score", Op: OpGTE, Value: 7},
				{Metric: "pe_ratio", Op: OpLT, Value: 20},
				{Metric: "roe", Op: OpGT, Value: 15},
			},
			MinMarketCap: 100_000_000,
			SortBy:       "f_score",
			SortDesc:     true,
			Limit:        50,
		},
		{
			Name:        ScreenSafeStocks,
			Title:       "Safe Stocks",
			Description: "Financially sound companies with no manipulation flags",
			Filters: []Filter{
				{Metric: "z_score", Op: OpGT, Value: 2.99},
				{Metric: "f_score", Op: OpGTE, Value: 6},
				{Metric: "m_score_flag", Op: OpEQ, Value: 0},
			},
			MinMarketCap: 100_000_000,
			SortBy:       "z_score",
			SortDesc:     true,
			Limit:        50,
		},
		{
			Name:        ScreenRedFlagWatch,
			Title:       "Red Flag Watch",
			Description: "Possible earnings manipulators to avoid",
			Filters: []Filter{
				{Metric: "m_score", Op: OpGT, Value: -1.78},
			},
			MinMarketCap: 500_000_000,
			SortBy:       "m_score",
			SortDesc:     true,
			Limit:        50,
			WatchOnly:    true,
		},
	}
}

// PresetByName looks a preset up by its name.
func PresetByName(name string) (Screen, bool) {
	for _, s := range Presets() {
		if s.Name == name {
			return s, true
		}
	}
	return Screen{}, false
}
