package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name string
		a, b *float64
		want *float64
	}{
		{"both defined", Float(10), Float(4), Float(2.5)},
		{"nil numerator", nil, Float(4), nil},
		{"nil denominator", Float(10), nil, nil},
		{"zero denominator", Float(10), Float(0), nil},
		{"negative denominator", Float(10), Float(-2), Float(-5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeDivide(tt.a, tt.b)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestEarningsYield(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(10),
			MarketCap: Float(90),
			TotalDebt: Float(20),
			Cash:      Float(10),
		}

		// EV = 90 + 20 - 10 = 100
		got := EarningsYield(s)
		require.NotNil(t, got)
		assert.InDelta(t, 0.10, *got, 1e-9)
	})

	t.Run("debt and cash default to zero", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(10),
			MarketCap: Float(200),
		}

		got := EarningsYield(s)
		require.NotNil(t, got)
		assert.InDelta(t, 0.05, *got, 1e-9)
	})

	t.Run("negative EBIT still yields a value", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(-5),
			MarketCap: Float(100),
		}

		got := EarningsYield(s)
		require.NotNil(t, got)
		assert.InDelta(t, -0.05, *got, 1e-9)
	})

	t.Run("undefined on non-positive enterprise value", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(10),
			MarketCap: Float(5),
			Cash:      Float(10),
		}

		assert.Nil(t, EarningsYield(s))
	})

	t.Run("undefined on missing inputs", func(t *testing.T) {
		assert.Nil(t, EarningsYield(&FundamentalSnapshot{MarketCap: Float(100)}))
		assert.Nil(t, EarningsYield(&FundamentalSnapshot{EBIT: Float(10)}))
	})
}

func TestReturnOnCapital(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:               Float(10),
			CurrentAssets:      Float(50),
			CurrentLiabilities: Float(20),
			TotalAssets:        Float(100),
			Intangibles:        Float(10),
		}

		// NWC = 30, NFA = 100 - 50 - 10 = 40, invested = 70
		got := ReturnOnCapital(s)
		require.NotNil(t, got)
		assert.InDelta(t, 10.0/70.0, *got, 1e-9)
	})

	t.Run("undefined on non-positive invested capital", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:               Float(10),
			CurrentAssets:      Float(10),
			CurrentLiabilities: Float(50),
		}

		assert.Nil(t, ReturnOnCapital(s))
	})

	t.Run("undefined on missing EBIT", func(t *testing.T) {
		assert.Nil(t, ReturnOnCapital(&FundamentalSnapshot{TotalAssets: Float(100)}))
	})
}

func TestAcquirersMultiple(t *testing.T) {
	t.Run("basic", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(10),
			MarketCap: Float(90),
			TotalDebt: Float(20),
			Cash:      Float(10),
		}

		got := AcquirersMultiple(s)
		require.NotNil(t, got)
		assert.InDelta(t, 10.0, *got, 1e-9)
	})

	t.Run("loss-making firms are excluded", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(-10),
			MarketCap: Float(100),
		}

		assert.Nil(t, AcquirersMultiple(s))
	})

	t.Run("zero EBIT is excluded", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(0),
			MarketCap: Float(100),
		}

		assert.Nil(t, AcquirersMultiple(s))
	})

	t.Run("undefined on non-positive enterprise value", func(t *testing.T) {
		s := &FundamentalSnapshot{
			EBIT:      Float(10),
			MarketCap: Float(5),
			Cash:      Float(50),
		}

		assert.Nil(t, AcquirersMultiple(s))
	})
}
