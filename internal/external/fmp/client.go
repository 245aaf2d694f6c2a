// Package fmp implements the market data provider on top of the
// Financial Modeling Prep v3 API.
package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/config"
	"github.com/fincentral/backend/pkg/httputil"
	"github.com/fincentral/backend/pkg/logger"
	"github.com/fincentral/backend/pkg/redis"
)

var _ contracts.MarketDataProvider = (*Client)(nil)

// Client talks to FMP. Every request passes through a local token-bucket
// limiter sized to the plan's requests-per-second allowance; the API's
// own 429 responses surface as ErrRateLimited so callers can back off.
type Client struct {
	cfg     config.FMPConfig
	http    *httputil.Client
	limiter *rate.Limiter
	cache   *redis.Cache
	log     *logger.Logger
}

// New builds a client. cache may be nil when redis is disabled.
func New(cfg config.FMPConfig, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) *Client {
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		cache:   cache,
		log:     log,
	}
}

// getJSON performs one rate-limited GET and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.cfg.APIKey)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + params.Encode()

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("fmp %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("fmp %s: %w", path, contracts.ErrRateLimited)
	case resp.StatusCode >= 400:
		return fmt.Errorf("fmp %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("fmp %s: decode: %w", path, err)
	}
	return nil
}

func (c *Client) getProfile(ctx context.Context, ticker string) (*profileResponse, error) {
	var cached profileResponse
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, redis.ProfileKey(ticker), &cached); found {
			return &cached, nil
		}
	}

	var profiles []profileResponse
	if err := c.getJSON(ctx, "/profile/"+ticker, nil, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile %s: %w", ticker, contracts.ErrDataUnavailable)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, redis.ProfileKey(ticker), profiles[0], redis.TTLMedium)
	}
	return &profiles[0], nil
}

// GetQuote fetches the current quote, served from cache when fresh.
func (c *Client) GetQuote(ctx context.Context, ticker string) (*contracts.Quote, error) {
	var cached quoteResponse
	if c.cache != nil {
		if found, _ := c.cache.Get(ctx, redis.QuoteKey(ticker), &cached); found {
			return quoteFromResponse(&cached), nil
		}
	}

	var quotes []quoteResponse
	if err := c.getJSON(ctx, "/quote/"+ticker, nil, &quotes); err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote %s: %w", ticker, contracts.ErrDataUnavailable)
	}

	if c.cache != nil {
		_ = c.cache.Set(ctx, redis.QuoteKey(ticker), quotes[0], redis.TTLShort)
	}
	return quoteFromResponse(&quotes[0]), nil
}

func quoteFromResponse(q *quoteResponse) *contracts.Quote {
	return &contracts.Quote{
		Ticker:            q.Symbol,
		Price:             q.Price,
		ChangePct:         q.ChangesPercentage,
		MarketCap:         q.MarketCap,
		Volume:            q.Volume,
		EPS:               q.EPS,
		PE:                q.PE,
		SharesOutstanding: q.SharesOutstanding,
	}
}

// GetSP500Constituents returns the current index membership as companies.
func (c *Client) GetSP500Constituents(ctx context.Context) ([]*contracts.Company, error) {
	var constituents []constituentResponse
	if err := c.getJSON(ctx, "/sp500_constituent", nil, &constituents); err != nil {
		return nil, err
	}
	if len(constituents) == 0 {
		return nil, fmt.Errorf("sp500 constituents: %w", contracts.ErrDataUnavailable)
	}

	out := make([]*contracts.Company, len(constituents))
	for i, e := range constituents {
		out[i] = &contracts.Company{
			Ticker:   e.Symbol,
			Name:     e.Name,
			Sector:   e.Sector,
			Industry: e.SubSector,
			IsActive: true,
		}
	}
	return out, nil
}
