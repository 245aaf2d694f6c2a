package fmp

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fincentral/backend/internal/contracts"
)

const newsTimeLayout = "2006-01-02 15:04:05"

// GetEarningsCalendar fetches calendar entries for the date range.
func (c *Client) GetEarningsCalendar(ctx context.Context, from, to time.Time) ([]*contracts.EarningsEvent, error) {
	params := url.Values{}
	params.Set("from", from.Format(dateLayout))
	params.Set("to", to.Format(dateLayout))

	var entries []earningsCalendarEntry
	if err := c.getJSON(ctx, "/earning_calendar", params, &entries); err != nil {
		return nil, err
	}

	events := make([]*contracts.EarningsEvent, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(dateLayout, e.Date)
		if err != nil {
			continue
		}
		events = append(events, &contracts.EarningsEvent{
			Ticker:       e.Symbol,
			Date:         date,
			EPSEstimated: e.EPSEstimated,
			EPSActual:    e.EPSActual,
		})
	}
	return events, nil
}

// GetMarketIndexes fetches all index quotes.
func (c *Client) GetMarketIndexes(ctx context.Context) ([]*contracts.IndexQuote, error) {
	var quotes []indexQuoteResponse
	if err := c.getJSON(ctx, "/quotes/index", nil, &quotes); err != nil {
		return nil, err
	}

	out := make([]*contracts.IndexQuote, len(quotes))
	for i, q := range quotes {
		out[i] = &contracts.IndexQuote{
			Symbol:    q.Symbol,
			Name:      q.Name,
			Price:     q.Price,
			ChangePct: q.ChangesPercentage,
		}
	}
	return out, nil
}

// GetSectorPerformance fetches daily sector changes.
func (c *Client) GetSectorPerformance(ctx context.Context) ([]*contracts.SectorPerformance, error) {
	var sectors []sectorPerformanceResponse
	if err := c.getJSON(ctx, "/sector-performance", nil, &sectors); err != nil {
		return nil, err
	}

	out := make([]*contracts.SectorPerformance, 0, len(sectors))
	for _, s := range sectors {
		change, err := parsePercent(s.ChangesPercentage)
		if err != nil {
			c.log.WithField("sector", s.Sector).Warn("skipping sector with unparseable change")
			continue
		}
		out = append(out, &contracts.SectorPerformance{
			Sector:    s.Sector,
			ChangePct: change,
		})
	}
	return out, nil
}

// parsePercent converts FMP's "1.23%" strings.
func parsePercent(s string) (float64, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if trimmed == "" {
		return 0, fmt.Errorf("empty percent value")
	}
	return strconv.ParseFloat(trimmed, 64)
}

// GetGainersLosers fetches the day's top movers in both directions.
func (c *Client) GetGainersLosers(ctx context.Context) ([]*contracts.MoverQuote, []*contracts.MoverQuote, error) {
	gainers, err := c.getMovers(ctx, "/stock_market/gainers")
	if err != nil {
		return nil, nil, err
	}
	losers, err := c.getMovers(ctx, "/stock_market/losers")
	if err != nil {
		return nil, nil, err
	}
	return gainers, losers, nil
}

func (c *Client) getMovers(ctx context.Context, path string) ([]*contracts.MoverQuote, error) {
	var movers []moverResponse
	if err := c.getJSON(ctx, path, nil, &movers); err != nil {
		return nil, err
	}

	out := make([]*contracts.MoverQuote, len(movers))
	for i, m := range movers {
		out[i] = &contracts.MoverQuote{
			Ticker:    m.Symbol,
			Name:      m.Name,
			Price:     m.Price,
			ChangePct: m.ChangesPercentage,
		}
	}
	return out, nil
}

// GetStockNews fetches recent headlines for one ticker.
func (c *Client) GetStockNews(ctx context.Context, ticker string, limit int) ([]*contracts.NewsArticle, error) {
	params := url.Values{}
	params.Set("tickers", ticker)
	params.Set("limit", strconv.Itoa(limit))
	return c.getNews(ctx, params)
}

// GetGeneralNews fetches broad market headlines.
func (c *Client) GetGeneralNews(ctx context.Context, limit int) ([]*contracts.NewsArticle, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return c.getNews(ctx, params)
}

func (c *Client) getNews(ctx context.Context, params url.Values) ([]*contracts.NewsArticle, error) {
	var items []newsItem
	if err := c.getJSON(ctx, "/stock_news", params, &items); err != nil {
		return nil, err
	}

	out := make([]*contracts.NewsArticle, 0, len(items))
	for _, item := range items {
		published, err := time.Parse(newsTimeLayout, item.PublishedDate)
		if err != nil {
			published = time.Time{}
		}
		out = append(out, &contracts.NewsArticle{
			Ticker:      item.Symbol,
			Title:       item.Title,
			URL:         item.URL,
			Source:      item.Site,
			PublishedAt: published,
		})
	}
	return out, nil
}
