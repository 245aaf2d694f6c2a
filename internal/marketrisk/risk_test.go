package marketrisk

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/formulas"
)

func TestScore_BaselineWithoutInputs(t *testing.T) {
	got := Score(Inputs{})

	assert.Equal(t, 5, got.Score)
	assert.Equal(t, "Elevated", got.Label)
	assert.Empty(t, got.Notes)
}

func TestScore_VIXBuckets(t *testing.T) {
	tests := []struct {
		vix  float64
		want int
	}{
		{40, 8},   // +3
		{30, 7},   // +2
		{22, 6},   // +1
		{18, 5},   // neutral band
		{14, 4},   // -1
		{11.5, 3}, // -2
	}

	for _, tt := range tests {
		got := Score(Inputs{VIX: formulas.Float(tt.vix)})
		assert.Equal(t, tt.want, got.Score, "VIX %.1f", tt.vix)
	}
}

func TestScore_SP500Buckets(t *testing.T) {
	tests := []struct {
		change float64
		want   int
	}{
		{-3.5, 8},
		{-2.5, 7},
		{-1.5, 6},
		{0.5, 5},
		{1.5, 4},
		{2.5, 4}, // large rallies cap at the same single-point relief
	}

	for _, tt := range tests {
		got := Score(Inputs{SP500ChangePct: formulas.Float(tt.change)})
		assert.Equal(t, tt.want, got.Score, "change %.1f%%", tt.change)
	}
}

func TestScore_Breadth(t *testing.T) {
	weak := Score(Inputs{Breadth: &contracts.MarketBreadth{Advancers: 10, Decliners: 40, ADRatio: 0.25}})
	assert.Equal(t, 6, weak.Score)

	strong := Score(Inputs{Breadth: &contracts.MarketBreadth{Advancers: 40, Decliners: 10, ADRatio: 4.0}})
	assert.Equal(t, 4, strong.Score)
}

func TestScore_Clamped(t *testing.T) {
	panicDay := Score(Inputs{
		VIX:            formulas.Float(50),
		SP500ChangePct: formulas.Float(-5),
		Breadth:        &contracts.MarketBreadth{ADRatio: 0.1},
	})
	assert.Equal(t, 10, panicDay.Score)
	assert.Equal(t, "Extreme", panicDay.Label)

	calmDay := Score(Inputs{
		VIX:            formulas.Float(10),
		SP500ChangePct: formulas.Float(2),
		Breadth:        &contracts.MarketBreadth{ADRatio: 3.0},
	})
	assert.Equal(t, 1, calmDay.Score)
	assert.Equal(t, "Low", calmDay.Label)
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Low", Label(1))
	assert.Equal(t, "Low", Label(2))
	assert.Equal(t, "Moderate", Label(4))
	assert.Equal(t, "Elevated", Label(6))
	assert.Equal(t, "High", Label(8))
	assert.Equal(t, "Extreme", Label(9))
}

func TestScore_SummaryNamesDrivers(t *testing.T) {
	got := Score(Inputs{VIX: formulas.Float(30), SP500ChangePct: formulas.Float(-2.5)})

	assert.Contains(t, got.Summary, "7/10")
	assert.Contains(t, got.Summary, "VIX 30.0 elevated")
	assert.Contains(t, got.Summary, "S&P 500 down 2.5%")
}
