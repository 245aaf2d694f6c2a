// Package news collects headlines for picked tickers plus the broad
// market and stores them deduplicated by URL.
package news

import (
	"context"
	"fmt"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/logger"
)

// Headline limits per fetch.
const (
	PerTickerLimit = 10
	GeneralLimit   = 20
)

// Service fetches and stores headlines.
type Service struct {
	provider contracts.MarketDataProvider
	repo     contracts.NewsRepository
	log      *logger.Logger
}

func NewService(provider contracts.MarketDataProvider, repo contracts.NewsRepository, log *logger.Logger) *Service {
	return &Service{provider: provider, repo: repo, log: log}
}

// Collect gathers per-ticker headlines and general market news, drops
// duplicate URLs and stores the rest. A ticker whose feed fails is
// logged and skipped; only the store write can fail the whole call.
func (s *Service) Collect(ctx context.Context, tickers []string) (int, error) {
	var articles []*contracts.NewsArticle

	for _, ticker := range tickers {
		items, err := s.provider.GetStockNews(ctx, ticker, PerTickerLimit)
		if err != nil {
			s.log.WithError(err).WithField("ticker", ticker).Warn("stock news unavailable")
			continue
		}
		articles = append(articles, items...)
	}

	general, err := s.provider.GetGeneralNews(ctx, GeneralLimit)
	if err != nil {
		s.log.WithError(err).Warn("general news unavailable")
	} else {
		articles = append(articles, general...)
	}

	articles = dedupByURL(articles)
	if len(articles) == 0 {
		return 0, nil
	}

	if err := s.repo.SaveBatch(ctx, articles); err != nil {
		return 0, fmt.Errorf("store news: %w", err)
	}

	s.log.WithField("articles", len(articles)).Info("news collected")
	return len(articles), nil
}

// dedupByURL keeps the first occurrence of each URL. Articles without a
// URL are dropped; there is nothing to dedupe or link against.
func dedupByURL(articles []*contracts.NewsArticle) []*contracts.NewsArticle {
	seen := make(map[string]bool, len(articles))
	out := articles[:0]
	for _, a := range articles {
		if a.URL == "" || seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}
