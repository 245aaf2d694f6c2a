package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/formulas"
)

func flatBars(n int, close, spread float64) contracts.PriceSeries {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make(contracts.PriceSeries, n)
	for i := range bars {
		bars[i] = contracts.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   close,
			High:   close + spread,
			Low:    close - spread,
			Close:  close,
			Volume: 1_000_000,
		}
	}
	return bars
}

func analysisDate() time.Time {
	return time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
}

func strongScores() *formulas.ScoreSet {
	return &formulas.ScoreSet{
		EarningsYield: formulas.Float(0.10),
		FScore:        &formulas.FScoreResult{Score: 8, Interpretation: "Strong"},
		ZScore:        &formulas.ZScoreResult{Value: 3.5, Zone: formulas.ZoneSafe},
		Ratios: formulas.Ratios{
			PE:  formulas.Float(10),
			ROE: formulas.Float(25),
		},
	}
}

func TestCompose_ThreeTimeframes(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), nil)

	require.Len(t, plans, 3)
	assert.Equal(t, contracts.TimeframeSwing, plans[0].Timeframe)
	assert.Equal(t, contracts.TimeframePosition, plans[1].Timeframe)
	assert.Equal(t, contracts.TimeframeLongterm, plans[2].Timeframe)
	for _, p := range plans {
		assert.Equal(t, "AAPL", p.Ticker)
		assert.Equal(t, analysisDate(), p.AnalysisDate)
		assert.NotEmpty(t, p.Rationale)
		assert.Greater(t, p.TakeProfit, p.EntryPrice, p.Timeframe)
		assert.Less(t, p.StopLoss, p.EntryPrice, p.Timeframe)
	}
}

func TestCompose_InsufficientHistory(t *testing.T) {
	assert.Nil(t, Compose("AAPL", analysisDate(), flatBars(29, 100, 1), nil))
	assert.Nil(t, Compose("AAPL", analysisDate(), nil, nil))
	assert.NotNil(t, Compose("AAPL", analysisDate(), flatBars(30, 100, 1), nil))
}

func TestCompose_NonPositiveClose(t *testing.T) {
	assert.Nil(t, Compose("ZERO", analysisDate(), flatBars(60, 0, 0), nil))
}

func TestSwingPlan_ATRStop(t *testing.T) {
	// Flat series: no pivots, ATR = 2, so the stop sits two ATRs below
	// and the target at twice the risk above.
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), nil)

	swing := plans[0]
	assert.Equal(t, 100.0, swing.EntryPrice)
	assert.Equal(t, 96.0, swing.StopLoss)
	assert.Equal(t, 108.0, swing.TakeProfit)
	require.NotNil(t, swing.RiskReward)
	assert.InDelta(t, 2.0, *swing.RiskReward, 1e-9)
	assert.Equal(t, contracts.ConfidenceLow, swing.Confidence)
}

func TestSwingPlan_PercentStopWithoutATR(t *testing.T) {
	// Zero spread makes ATR 0, so the ATR stop collapses onto the price
	// and the 5% fallback takes over.
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 0), nil)

	swing := plans[0]
	assert.Equal(t, 95.0, swing.StopLoss)
	assert.Equal(t, 110.0, swing.TakeProfit)
	require.NotNil(t, swing.RiskReward)
	assert.InDelta(t, 2.0, *swing.RiskReward, 1e-9)
}

func TestPositionPlan_FixedLevels(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), nil)

	position := plans[1]
	assert.Equal(t, 97.0, position.EntryPrice)
	assert.Equal(t, 90.0, position.StopLoss)
	assert.Equal(t, 120.0, position.TakeProfit)
	require.NotNil(t, position.RiskReward)
	assert.InDelta(t, 3.29, *position.RiskReward, 1e-9)
	assert.Equal(t, contracts.ConfidenceLow, position.Confidence)
}

func TestPositionPlan_FundamentalsLiftConfidence(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), strongScores())

	position := plans[1]
	// Strong F-Score (+2), safe Z-Score (+1), cheap P/E (+1).
	assert.Equal(t, contracts.ConfidenceHigh, position.Confidence)
	assert.Contains(t, position.Rationale, "F-Score 8")
}

func TestLongtermPlan_FairValueTarget(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), strongScores())

	lt := plans[2]
	// Fair value = 100 * 0.10 * 15 = 150, above price, so it is the target.
	assert.Equal(t, 100.0, lt.EntryPrice)
	assert.Equal(t, 75.0, lt.StopLoss)
	assert.Equal(t, 150.0, lt.TakeProfit)
	assert.Nil(t, lt.RiskReward)
	assert.Equal(t, contracts.ConfidenceHigh, lt.Confidence)

	require.NotNil(t, lt.Signals.FairValue)
	assert.Equal(t, 150.0, *lt.Signals.FairValue)
	require.NotNil(t, lt.Signals.MarginOfSafety)
	assert.InDelta(t, 33.33, *lt.Signals.MarginOfSafety, 0.01)
}

func TestLongtermPlan_NoEarningsFallsBackTo50Percent(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), nil)

	lt := plans[2]
	assert.Equal(t, 150.0, lt.TakeProfit)
	assert.Nil(t, lt.Signals.FairValue)
	assert.Nil(t, lt.Signals.MarginOfSafety)
	assert.Equal(t, contracts.ConfidenceLow, lt.Confidence)
}

func TestCompose_SignalSnapshot(t *testing.T) {
	plans := Compose("AAPL", analysisDate(), flatBars(60, 100, 1), strongScores())

	sig := plans[0].Signals
	require.NotNil(t, sig.RSI)
	require.NotNil(t, sig.SMA20)
	assert.Equal(t, 100.0, *sig.SMA20)
	require.NotNil(t, sig.SMA50)
	require.NotNil(t, sig.ATR)
	assert.InDelta(t, 2.0, *sig.ATR, 1e-9)
	require.NotNil(t, sig.MACDBullish)
	assert.False(t, *sig.MACDBullish)
	require.NotNil(t, sig.FScore)
	assert.Equal(t, 8, *sig.FScore)
	require.NotNil(t, sig.ZScore)
	assert.InDelta(t, 3.5, *sig.ZScore, 1e-9)
	assert.Nil(t, sig.Support)
	assert.Nil(t, sig.Resistance)
}
