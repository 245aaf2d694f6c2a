package fmp

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fincentral/backend/internal/contracts"
)

const dateLayout = "2006-01-02"

// GetHistoricalPrices fetches daily bars for the range. FMP delivers
// them newest first; the returned series is chronological.
func (c *Client) GetHistoricalPrices(ctx context.Context, ticker string, from, to time.Time) (contracts.PriceSeries, error) {
	params := url.Values{}
	params.Set("from", from.Format(dateLayout))
	params.Set("to", to.Format(dateLayout))

	var resp historicalResponse
	if err := c.getJSON(ctx, "/historical-price-full/"+ticker, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Historical) == 0 {
		return nil, fmt.Errorf("prices %s: %w", ticker, contracts.ErrDataUnavailable)
	}

	series := make(contracts.PriceSeries, 0, len(resp.Historical))
	for _, bar := range resp.Historical {
		date, err := time.Parse(dateLayout, bar.Date)
		if err != nil {
			c.log.WithField("date", bar.Date).Warn("skipping bar with unparseable date")
			continue
		}
		series = append(series, contracts.Bar{
			Date:   date,
			Open:   bar.Open,
			High:   bar.High,
			Low:    bar.Low,
			Close:  bar.Close,
			Volume: bar.Volume,
		})
	}
	return series.Chronological(), nil
}
