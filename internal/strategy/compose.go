// Package strategy turns price history and fundamental scores into
// entry/stop/target trade plans across three horizons.
package strategy

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/formulas"
	"github.com/fincentral/backend/internal/technical"
)

// MinBars is the minimum history needed to compose any plan.
const MinBars = 30

// Compose builds the swing, position and long-term plans for one ticker.
// Bars must be chronological. Scores may be nil for quote-only tickers.
// Returns nil below MinBars of history or without a positive last close.
func Compose(ticker string, analysisDate time.Time, bars contracts.PriceSeries, scores *formulas.ScoreSet) []contracts.TradePlan {
	if len(bars) < MinBars {
		return nil
	}
	last, _ := bars.Latest()
	price := last.Close
	if price <= 0 {
		return nil
	}

	closes := bars.Closes()
	sig := signals{
		price:  price,
		rsi:    technical.RSI(closes, technical.RSIPeriod),
		macd:   technical.MACD(closes),
		sma20:  technical.SMA(closes, 20),
		sma50:  technical.SMA(closes, 50),
		atr:    technical.ATR(bars.Highs(), bars.Lows(), closes, technical.ATRPeriod),
		levels: technical.SupportResistance(closes, technical.SupportResistanceWindow),
		scores: scores,
	}

	plans := []contracts.TradePlan{
		swingPlan(sig),
		positionPlan(sig),
		longtermPlan(sig),
	}
	for i := range plans {
		plans[i].Ticker = ticker
		plans[i].AnalysisDate = analysisDate
	}
	return plans
}

type signals struct {
	price  float64
	rsi    *float64
	macd   *technical.MACDResult
	sma20  *float64
	sma50  *float64
	atr    *float64
	levels *technical.Levels
	scores *formulas.ScoreSet
}

func (s signals) support() *float64 {
	if s.levels == nil {
		return nil
	}
	return s.levels.Support
}

func (s signals) resistance() *float64 {
	if s.levels == nil {
		return nil
	}
	return s.levels.Resistance
}

func (s signals) fScore() *int {
	if s.scores == nil || s.scores.FScore == nil {
		return nil
	}
	return &s.scores.FScore.Score
}

func (s signals) zScore() *float64 {
	if s.scores == nil || s.scores.ZScore == nil {
		return nil
	}
	return &s.scores.ZScore.Value
}

func (s signals) pe() *float64 {
	if s.scores == nil {
		return nil
	}
	return s.scores.Ratios.PE
}

func (s signals) roe() *float64 {
	if s.scores == nil {
		return nil
	}
	return s.scores.Ratios.ROE
}

func (s signals) earningsYield() *float64 {
	if s.scores == nil {
		return nil
	}
	return s.scores.EarningsYield
}

func (s signals) snapshot() contracts.SignalSnapshot {
	snap := contracts.SignalSnapshot{
		RSI:           s.rsi,
		SMA20:         s.sma20,
		SMA50:         s.sma50,
		ATR:           s.atr,
		Support:       s.support(),
		Resistance:    s.resistance(),
		FScore:        s.fScore(),
		ZScore:        s.zScore(),
		PERatio:       s.pe(),
		ROE:           s.roe(),
		EarningsYield: s.earningsYield(),
	}
	if s.macd != nil {
		snap.MACDHistogram = formulas.Float(s.macd.Histogram)
		bullish := s.macd.Bullish
		snap.MACDBullish = &bullish
	}
	return snap
}

// swingPlan anchors the stop on support or volatility and targets
// resistance or twice the risk. Oversold entries carry the conviction.
func swingPlan(s signals) contracts.TradePlan {
	price := s.price

	var stop float64
	switch {
	case s.support() != nil && *s.support() < price:
		stop = *s.support()
	case s.atr != nil:
		stop = price - 2**s.atr
	default:
		stop = price * 0.95
	}

	risk := price - stop
	if risk <= 0 {
		risk = 0.05 * price
		stop = price - risk
	}

	var target float64
	if r := s.resistance(); r != nil && *r > price {
		target = *r
	} else {
		target = price + 2*risk
	}

	var reasons []string
	conviction := 0
	if s.rsi != nil {
		switch {
		case *s.rsi < 30:
			conviction += 2
			reasons = append(reasons, fmt.Sprintf("RSI %.1f oversold", *s.rsi))
		case *s.rsi < 45:
			conviction++
			reasons = append(reasons, fmt.Sprintf("RSI %.1f below neutral", *s.rsi))
		}
	}
	if s.macd != nil && s.macd.Bullish {
		conviction++
		reasons = append(reasons, "MACD bullish crossover")
	}
	if s.sma50 != nil && price > *s.sma50 {
		conviction++
		reasons = append(reasons, "price above 50-day average")
	}

	rr := round2((target - price) / risk)
	return contracts.TradePlan{
		Timeframe:  contracts.TimeframeSwing,
		EntryPrice: round2(price),
		StopLoss:   round2(stop),
		TakeProfit: round2(target),
		RiskReward: &rr,
		Confidence: tier(conviction, 3, 2),
		Rationale:  rationale("Swing setup", reasons),
		Signals:    s.snapshot(),
	}
}

// positionPlan uses fixed percentage levels: buy a 3% dip, risk 10%,
// target 20%. Conviction comes from trend plus fundamental quality.
func positionPlan(s signals) contracts.TradePlan {
	price := s.price
	entry := price * 0.97
	stop := price * 0.90
	target := price * 1.20

	var reasons []string
	conviction := 0
	if s.sma20 != nil && s.sma50 != nil && *s.sma20 > *s.sma50 {
		conviction++
		reasons = append(reasons, "20-day average above 50-day")
	}
	if f := s.fScore(); f != nil {
		switch {
		case *f >= 7:
			conviction += 2
			reasons = append(reasons, fmt.Sprintf("F-Score %d strong", *f))
		case *f >= 5:
			conviction++
			reasons = append(reasons, fmt.Sprintf("F-Score %d moderate", *f))
		}
	}
	if z := s.zScore(); z != nil && *z > 2.99 {
		conviction++
		reasons = append(reasons, "Z-Score in the safe zone")
	}
	if pe := s.pe(); pe != nil && *pe > 0 && *pe < 15 {
		conviction++
		reasons = append(reasons, fmt.Sprintf("P/E %.1f undemanding", *pe))
	}

	rr := round2((target - entry) / (entry - stop))
	return contracts.TradePlan{
		Timeframe:  contracts.TimeframePosition,
		EntryPrice: round2(entry),
		StopLoss:   round2(stop),
		TakeProfit: round2(target),
		RiskReward: &rr,
		Confidence: tier(conviction, 4, 2),
		Rationale:  rationale("Position setup", reasons),
		Signals:    s.snapshot(),
	}
}

// longtermPlan anchors the target on an earnings-power fair value at a
// 15x multiple. Risk/reward is left unset: the stop is a capitulation
// level, not a sized risk.
func longtermPlan(s signals) contracts.TradePlan {
	price := s.price

	var fairValue, marginOfSafety *float64
	if ey := s.earningsYield(); ey != nil && *ey > 0 {
		fv := price * *ey * 15
		fairValue = formulas.Float(round2(fv))
		marginOfSafety = formulas.Float(round2((fv - price) / fv * 100))
	}

	target := price * 1.5
	if fairValue != nil && *fairValue > price {
		target = *fairValue
	}

	var reasons []string
	conviction := 0
	if z := s.zScore(); z != nil && *z > 2.99 {
		conviction++
		reasons = append(reasons, "Z-Score in the safe zone")
	}
	if f := s.fScore(); f != nil {
		switch {
		case *f >= 7:
			conviction += 2
			reasons = append(reasons, fmt.Sprintf("F-Score %d strong", *f))
		case *f >= 5:
			conviction++
			reasons = append(reasons, fmt.Sprintf("F-Score %d moderate", *f))
		}
	}
	if roe := s.roe(); roe != nil && *roe > 20 {
		conviction++
		reasons = append(reasons, fmt.Sprintf("ROE %.1f%%", *roe))
	}
	if marginOfSafety != nil {
		switch {
		case *marginOfSafety > 30:
			conviction += 2
			reasons = append(reasons, fmt.Sprintf("%.0f%% margin of safety", *marginOfSafety))
		case *marginOfSafety > 10:
			conviction++
			reasons = append(reasons, fmt.Sprintf("%.0f%% margin of safety", *marginOfSafety))
		}
	}

	snap := s.snapshot()
	snap.FairValue = fairValue
	snap.MarginOfSafety = marginOfSafety

	return contracts.TradePlan{
		Timeframe:  contracts.TimeframeLongterm,
		EntryPrice: round2(price),
		StopLoss:   round2(price * 0.75),
		TakeProfit: round2(target),
		Confidence: tier(conviction, 4, 2),
		Rationale:  rationale("Long-term accumulation", reasons),
		Signals:    snap,
	}
}

func tier(conviction, high, medium int) contracts.Confidence {
	switch {
	case conviction >= high:
		return contracts.ConfidenceHigh
	case conviction >= medium:
		return contracts.ConfidenceMedium
	}
	return contracts.ConfidenceLow
}

func rationale(label string, reasons []string) string {
	if len(reasons) == 0 {
		return label + ": no supporting signals"
	}
	return label + ": " + strings.Join(reasons, "; ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
