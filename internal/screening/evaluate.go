package screening

import (
	"sort"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/formulas"
)

// Candidate is one company with its computed scores. Scores may be nil
// for companies whose fundamentals could not be fetched.
type Candidate struct {
	Company contracts.Company
	Scores  *formulas.ScoreSet
}

// Result is one company that passed a screen, ranked within it.
type Result struct {
	Company contracts.Company
	Scores  *formulas.ScoreSet
	Rank    int
}

// ScreenResult pairs a screen with its ranked matches.
type ScreenResult struct {
	Screen  Screen
	Results []Result
}

// Selection is one entry of the deduplicated daily pick list.
type Selection struct {
	ScreenName string
	Result     Result
}

// Evaluate runs one screen over the candidate universe: ETFs, excluded
// sectors and market caps outside the screen's floor/ceiling are
// skipped, then every filter must pass. Matches are sorted by the screen's sort metric with a market-cap
// fallback for companies where that metric is undefined, ranked densely
// and truncated to the screen's limit.
func Evaluate(s Screen, candidates []Candidate) []Result {
	passed := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if eligible(s, c) {
			passed = append(passed, c)
		}
	}

	sort.SliceStable(passed, func(i, j int) bool {
		return sortLess(s, passed[i], passed[j])
	})

	results := make([]Result, 0, len(passed))
	var prev float64
	var prevOK bool
	rank := 0
	for i, c := range passed {
		v, ok := c.Scores.Metric(s.SortBy)
		if i == 0 || !ok || !prevOK || v != prev {
			rank++
		}
		prev, prevOK = v, ok
		results = append(results, Result{Company: c.Company, Scores: c.Scores, Rank: rank})
	}

	if s.Limit > 0 && len(results) > s.Limit {
		results = results[:s.Limit]
	}
	return results
}

func eligible(s Screen, c Candidate) bool {
	if c.Company.IsETF || c.Scores == nil {
		return false
	}
	for _, sector := range s.ExcludeSectors {
		if c.Company.Sector == sector {
			return false
		}
	}
	if c.Company.MarketCap < s.MinMarketCap {
		return false
	}
	if s.MaxMarketCap > 0 && c.Company.MarketCap > s.MaxMarketCap {
		return false
	}
	for _, f := range s.Filters {
		v, ok := c.Scores.Metric(f.Metric)
		if !ok || !compare(v, f.Op, f.Value) {
			return false
		}
	}
	return true
}

func compare(v float64, op Operator, threshold float64) bool {
	switch op {
	case OpGT:
		return v > threshold
	case OpLT:
		return v < threshold
	case OpGTE:
		return v >= threshold
	case OpLTE:
		return v <= threshold
	case OpEQ:
		return v == threshold
	}
	return false
}

// sortLess orders by the screen's sort metric. Companies where the
// metric is undefined sort after defined ones, largest market cap first.
// Ties break on ticker so rankings are deterministic.
func sortLess(s Screen, a, b Candidate) bool {
	va, oka := a.Scores.Metric(s.SortBy)
	vb, okb := b.Scores.Metric(s.SortBy)

	switch {
	case oka && okb:
		if va != vb {
			if s.SortDesc {
				return va > vb
			}
			return va < vb
		}
	case oka != okb:
		return oka
	default:
		if a.Company.MarketCap != b.Company.MarketCap {
			return a.Company.MarketCap > b.Company.MarketCap
		}
	}
	return a.Company.Ticker < b.Company.Ticker
}

// AttachMagicRanks derives the combined Greenblatt rank for every
// candidate that has both earnings yield and return on capital: each
// metric is ranked best-first, the two ranks are summed, and the final
// 1..N position on the ascending sum is attached to the score set.
func AttachMagicRanks(candidates []Candidate) {
	type entry struct {
		idx int
		v   float64
	}

	var byEY, byROC []entry
	for i, c := range candidates {
		if c.Company.IsETF || c.Scores == nil {
			continue
		}
		if c.Scores.EarningsYield == nil || c.Scores.ReturnOnCapital == nil {
			continue
		}
		byEY = append(byEY, entry{i, *c.Scores.EarningsYield})
		byROC = append(byROC, entry{i, *c.Scores.ReturnOnCapital})
	}

	rankOf := func(entries []entry) map[int]int {
		sort.SliceStable(entries, func(a, b int) bool {
			if entries[a].v != entries[b].v {
				return entries[a].v > entries[b].v
			}
			return candidates[entries[a].idx].Company.Ticker < candidates[entries[b].idx].Company.Ticker
		})
		ranks := make(map[int]int, len(entries))
		for pos, e := range entries {
			ranks[e.idx] = pos + 1
		}
		return ranks
	}

	eyRanks := rankOf(byEY)
	rocRanks := rankOf(byROC)

	type combined struct {
		idx int
		sum int
	}
	sums := make([]combined, 0, len(eyRanks))
	for idx, r := range eyRanks {
		sums = append(sums, combined{idx, r + rocRanks[idx]})
	}
	sort.Slice(sums, func(a, b int) bool {
		if sums[a].sum != sums[b].sum {
			return sums[a].sum < sums[b].sum
		}
		return candidates[sums[a].idx].Company.Ticker < candidates[sums[b].idx].Company.Ticker
	})

	for pos, c := range sums {
		candidates[c.idx].Scores.SetExtra(MetricMagicFormulaRank, float64(pos+1))
	}
}

// EvaluateAll derives magic ranks, then runs every screen in order.
func EvaluateAll(screens []Screen, candidates []Candidate) []ScreenResult {
	AttachMagicRanks(candidates)

	out := make([]ScreenResult, 0, len(screens))
	for _, s := range screens {
		out = append(out, ScreenResult{Screen: s, Results: Evaluate(s, candidates)})
	}
	return out
}

// SelectPicks flattens screen results into the daily pick list. Screens
// are visited in order and a ticker already claimed by an earlier screen
// is skipped by later ones. Watch-only screens contribute nothing.
func SelectPicks(results []ScreenResult) []Selection {
	seen := make(map[string]bool)
	var picks []Selection

	for _, sr := range results {
		if sr.Screen.WatchOnly {
			continue
		}
		for _, r := range sr.Results {
			if seen[r.Company.Ticker] {
				continue
			}
			seen[r.Company.Ticker] = true
			picks = append(picks, Selection{ScreenName: sr.Screen.Name, Result: r})
		}
	}
	return picks
}
