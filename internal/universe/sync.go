package universe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/httputil"
	"github.com/fincentral/backend/pkg/logger"
)

// WikipediaConstituentsURL is the scrape fallback for the index list.
const WikipediaConstituentsURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// ConstituentSource delivers the current S&P 500 membership.
type ConstituentSource interface {
	GetSP500Constituents(ctx context.Context) ([]*contracts.Company, error)
}

// Service syncs the company directory from the index membership, falling
// back to an HTML scrape and finally the built-in seed.
type Service struct {
	source     ConstituentSource
	repo       contracts.CompanyRepository
	httpClient *httputil.Client
	scrapeURL  string
	log        *logger.Logger
}

func NewService(source ConstituentSource, repo contracts.CompanyRepository, httpClient *httputil.Client, log *logger.Logger) *Service {
	return &Service{
		source:     source,
		repo:       repo,
		httpClient: httpClient,
		scrapeURL:  WikipediaConstituentsURL,
		log:        log,
	}
}

// WithScrapeURL overrides the fallback scrape location.
func (s *Service) WithScrapeURL(url string) *Service {
	s.scrapeURL = url
	return s
}

// Sync refreshes the directory and returns how many companies were
// written and which source produced them.
func (s *Service) Sync(ctx context.Context) (int, string, error) {
	companies, source := s.constituents(ctx)

	if err := s.repo.UpsertBatch(ctx, companies); err != nil {
		return 0, source, fmt.Errorf("upsert companies: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"companies": len(companies),
		"source":    source,
	}).Info("universe synced")

	return len(companies), source, nil
}

func (s *Service) constituents(ctx context.Context) ([]*contracts.Company, string) {
	if s.source != nil {
		companies, err := s.source.GetSP500Constituents(ctx)
		if err == nil && len(companies) > 0 {
			return companies, "api"
		}
		s.log.WithError(err).Warn("constituent API unavailable, falling back to scrape")
	}

	companies, err := s.scrape(ctx)
	if err == nil && len(companies) > 0 {
		return companies, "scrape"
	}
	s.log.WithError(err).Warn("constituent scrape failed, falling back to seed")

	return SeedCompanies(), "seed"
}

// scrape parses the constituents table from the Wikipedia list page.
func (s *Service) scrape(ctx context.Context) ([]*contracts.Company, error) {
	resp, err := s.httpClient.Get(ctx, s.scrapeURL)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("constituents page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	var companies []*contracts.Company
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}
		ticker := strings.TrimSpace(cells.Eq(0).Text())
		if ticker == "" {
			return
		}
		companies = append(companies, &contracts.Company{
			// Wikipedia uses dots in share classes where quotes use dashes.
			Ticker:   strings.ReplaceAll(ticker, ".", "-"),
			Name:     strings.TrimSpace(cells.Eq(1).Text()),
			Sector:   normalizeSector(strings.TrimSpace(cells.Eq(2).Text())),
			Industry: strings.TrimSpace(cells.Eq(3).Text()),
			IsActive: true,
		})
	})

	if len(companies) == 0 {
		return nil, fmt.Errorf("no constituents found in page")
	}
	return companies, nil
}

// normalizeSector maps GICS sector names onto the quote provider's
// sector vocabulary so screen exclusions match either source.
func normalizeSector(gics string) string {
	switch gics {
	case "Information Technology":
		return "Technology"
	case "Financials":
		return "Financial Services"
	case "Health Care":
		return "Healthcare"
	case "Consumer Discretionary":
		return "Consumer Cyclical"
	case "Consumer Staples":
		return "Consumer Defensive"
	case "Materials":
		return "Basic Materials"
	}
	return gics
}
