// Package technical computes price-series indicators used for trade plan
// generation. All functions expect chronological input (oldest first) and
// return nil below their minimum history length.
package technical

import "math"

// Default indicator periods.
const (
	RSIPeriod = 14
	ATRPeriod = 14

	// MACD needs the 26-period EMA plus 9 signal observations.
	MACDMinLen = 35

	// SupportResistanceWindow is the symmetric pivot scan window.
	SupportResistanceWindow = 20
)

// RSI computes the Relative Strength Index over the trailing period deltas.
// Below 30 is oversold, above 70 overbought. Returns exactly 100 when there
// were no losses in the window. Needs period+1 closes.
func RSI(closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return nil
	}

	deltas := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		deltas = append(deltas, closes[i]-closes[i-1])
	}

	recent := deltas[len(deltas)-period:]
	var gains, losses float64
	for _, d := range recent {
		if d > 0 {
			gains += d
		} else {
			losses += -d
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		v := 100.0
		return &v
	}

	rs := avgGain / avgLoss
	v := round2(100 - 100/(1+rs))
	return &v
}

// EMA computes the exponential moving average series: the seed is the
// simple average of the first period values, then smoothing with
// multiplier 2/(period+1). Returns an empty slice below period values.
func EMA(values []float64, period int) []float64 {
	if len(values) < period {
		return nil
	}

	multiplier := 2.0 / float64(period+1)

	var seed float64
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)

	out := make([]float64, 0, len(values)-period+1)
	out = append(out, seed)
	for _, v := range values[period:] {
		prev := out[len(out)-1]
		out = append(out, (v-prev)*multiplier+prev)
	}
	return out
}

// MACDResult is the MACD line, its signal line and their difference.
type MACDResult struct {
	Line      float64 `json:"macd_line"`
	Signal    float64 `json:"signal_line"`
	Histogram float64 `json:"histogram"`
	Bullish   bool    `json:"bullish"`
}

// MACD computes EMA12-EMA26 with a 9-period signal line. Bullish when the
// histogram is positive. Needs at least 35 closes.
func MACD(closes []float64) *MACDResult {
	if len(closes) < MACDMinLen {
		return nil
	}

	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)

	// The 26-period series starts later; align on the tail.
	offset := len(ema12) - len(ema26)
	line := make([]float64, len(ema26))
	for i := range ema26 {
		line[i] = ema12[i+offset] - ema26[i]
	}

	if len(line) < 9 {
		return nil
	}

	signal := EMA(line, 9)
	if len(signal) == 0 {
		return nil
	}

	histogram := line[len(line)-1] - signal[len(signal)-1]

	return &MACDResult{
		Line:      round4(line[len(line)-1]),
		Signal:    round4(signal[len(signal)-1]),
		Histogram: round4(histogram),
		Bullish:   histogram > 0,
	}
}

// SMA computes the trailing simple moving average.
func SMA(closes []float64, period int) *float64 {
	if len(closes) < period {
		return nil
	}

	var sum float64
	for _, v := range closes[len(closes)-period:] {
		sum += v
	}
	v := round4(sum / float64(period))
	return &v
}

// ATR computes the Average True Range over the trailing period, where true
// range = max(high-low, |high-prevClose|, |low-prevClose|). Wider ATR means
// more volatility and wider stops. Needs period+1 bars.
func ATR(highs, lows, closes []float64, period int) *float64 {
	if len(closes) < period+1 {
		return nil
	}

	trueRanges := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		tr := math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
		trueRanges = append(trueRanges, tr)
	}

	if len(trueRanges) < period {
		return nil
	}

	var sum float64
	for _, tr := range trueRanges[len(trueRanges)-period:] {
		sum += tr
	}
	v := round4(sum / float64(period))
	return &v
}

// Levels holds the nearest pivot levels around the current price.
type Levels struct {
	Support    *float64 `json:"support,omitempty"`
	Resistance *float64 `json:"resistance,omitempty"`
}

// SupportResistance scans interior points with a symmetric window: a point
// equal to the window minimum is a support pivot, a window maximum a
// resistance pivot. Returns the nearest support below and the nearest
// resistance above the last close; nil when neither exists or history is
// shorter than twice the window.
func SupportResistance(closes []float64, window int) *Levels {
	if len(closes) < window*2 {
		return nil
	}

	current := closes[len(closes)-1]
	var supports, resistances []float64

	for i := window; i < len(closes)-window; i++ {
		segMin, segMax := closes[i-window], closes[i-window]
		for _, v := range closes[i-window : i+window+1] {
			if v < segMin {
				segMin = v
			}
			if v > segMax {
				segMax = v
			}
		}

		switch {
		case closes[i] == segMin:
			supports = append(supports, closes[i])
		case closes[i] == segMax:
			resistances = append(resistances, closes[i])
		}
	}

	var levels Levels
	for _, s := range supports {
		if s < current && (levels.Support == nil || s > *levels.Support) {
			s := s
			levels.Support = &s
		}
	}
	for _, r := range resistances {
		if r > current && (levels.Resistance == nil || r < *levels.Resistance) {
			r := r
			levels.Resistance = &r
		}
	}

	if levels.Support == nil && levels.Resistance == nil {
		return nil
	}
	if levels.Support != nil {
		*levels.Support = round4(*levels.Support)
	}
	if levels.Resistance != nil {
		*levels.Resistance = round4(*levels.Resistance)
	}
	return &levels
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
