// Package marketrisk produces the daily 1-10 market risk assessment
// from volatility, index action and breadth.
package marketrisk

import (
	"fmt"
	"strings"

	"github.com/fincentral/backend/internal/contracts"
)

const baselineScore = 5

// Inputs are the raw market readings. Nil fields simply contribute
// nothing, leaving the baseline in place.
type Inputs struct {
	VIX            *float64
	SP500Price     *float64
	SP500ChangePct *float64
	Breadth        *contracts.MarketBreadth
}

// Assessment is a computed risk score with its drivers.
type Assessment struct {
	Score   int
	Label   string
	Summary string
	Notes   []string
}

// Score starts at a neutral 5 and moves with fear readings: elevated
// VIX, index selloffs and weak breadth raise it, calm tape lowers it.
// The result is clamped to 1..10.
func Score(in Inputs) Assessment {
	score := baselineScore
	var notes []string

	if v := in.VIX; v != nil {
		switch {
		case *v > 35:
			score += 3
			notes = append(notes, fmt.Sprintf("VIX %.1f signals panic", *v))
		case *v > 25:
			score += 2
			notes = append(notes, fmt.Sprintf("VIX %.1f elevated", *v))
		case *v > 20:
			score++
			notes = append(notes, fmt.Sprintf("VIX %.1f above normal", *v))
		case *v < 12:
			score -= 2
			notes = append(notes, fmt.Sprintf("VIX %.1f unusually calm", *v))
		case *v < 15:
			score--
			notes = append(notes, fmt.Sprintf("VIX %.1f calm", *v))
		}
	}

	if c := in.SP500ChangePct; c != nil {
		switch {
		case *c < -3:
			score += 3
			notes = append(notes, fmt.Sprintf("S&P 500 down %.1f%%", -*c))
		case *c < -2:
			score += 2
			notes = append(notes, fmt.Sprintf("S&P 500 down %.1f%%", -*c))
		case *c < -1:
			score++
			notes = append(notes, fmt.Sprintf("S&P 500 down %.1f%%", -*c))
		case *c > 1:
			score--
			notes = append(notes, fmt.Sprintf("S&P 500 up %.1f%%", *c))
		}
	}

	if b := in.Breadth; b != nil {
		switch {
		case b.ADRatio < 0.5:
			score++
			notes = append(notes, fmt.Sprintf("breadth weak at %.2f A/D", b.ADRatio))
		case b.ADRatio > 2.0:
			score--
			notes = append(notes, fmt.Sprintf("breadth strong at %.2f A/D", b.ADRatio))
		}
	}

	score = clamp(score, 1, 10)
	label := Label(score)

	summary := fmt.Sprintf("Market risk %d/10 (%s)", score, label)
	if len(notes) > 0 {
		summary += ": " + strings.Join(notes, "; ")
	}

	return Assessment{Score: score, Label: label, Summary: summary, Notes: notes}
}

// Label maps a 1-10 score to its display band.
func Label(score int) string {
	switch {
	case score <= 2:
		return "Low"
	case score <= 4:
		return "Moderate"
	case score <= 6:
		return "Elevated"
	case score <= 8:
		return "High"
	}
	return "Extreme"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
