package marketrisk

import (
	"context"
	"fmt"
	"time"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/logger"
)

// Index symbols used for the risk inputs.
const (
	symbolVIX   = "^VIX"
	symbolSP500 = "^GSPC"
)

// Service assembles the daily snapshot from upstream market data and
// persists it. Missing inputs degrade the assessment instead of failing
// it.
type Service struct {
	provider contracts.MarketDataProvider
	repo     contracts.MarketRiskRepository
	log      *logger.Logger
}

func NewService(provider contracts.MarketDataProvider, repo contracts.MarketRiskRepository, log *logger.Logger) *Service {
	return &Service{provider: provider, repo: repo, log: log}
}

// Assess computes and stores the risk snapshot for the date.
func (s *Service) Assess(ctx context.Context, date time.Time) (*contracts.MarketRiskSnapshot, error) {
	var in Inputs

	indexes, err := s.provider.GetMarketIndexes(ctx)
	if err != nil {
		s.log.WithError(err).Warn("market indexes unavailable, assessing without them")
	}
	for _, idx := range indexes {
		switch idx.Symbol {
		case symbolVIX:
			v := idx.Price
			in.VIX = &v
		case symbolSP500:
			p, c := idx.Price, idx.ChangePct
			in.SP500Price = &p
			in.SP500ChangePct = &c
		}
	}

	gainers, losers, err := s.provider.GetGainersLosers(ctx)
	if err != nil {
		s.log.WithError(err).Warn("movers unavailable, assessing without breadth")
	} else {
		in.Breadth = breadthFromMovers(gainers, losers)
	}

	sectors, err := s.provider.GetSectorPerformance(ctx)
	if err != nil {
		s.log.WithError(err).Warn("sector performance unavailable")
	}

	assessment := Score(in)

	snapshot := &contracts.MarketRiskSnapshot{
		SnapshotDate: date,
		RiskScore:    assessment.Score,
		RiskLabel:    assessment.Label,
		VIXLevel:     in.VIX,
		SP500Price:   in.SP500Price,
		SP500Change:  in.SP500ChangePct,
		Breadth:      in.Breadth,
		Summary:      assessment.Summary,
	}
	for _, sp := range sectors {
		snapshot.SectorData = append(snapshot.SectorData, *sp)
	}

	if err := s.repo.Upsert(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save market risk snapshot: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"risk_score": assessment.Score,
		"risk_label": assessment.Label,
	}).Info("market risk assessed")

	return snapshot, nil
}

func breadthFromMovers(gainers, losers []*contracts.MoverQuote) *contracts.MarketBreadth {
	b := &contracts.MarketBreadth{
		Advancers: len(gainers),
		Decliners: len(losers),
	}
	if b.Decliners > 0 {
		b.ADRatio = float64(b.Advancers) / float64(b.Decliners)
	} else {
		b.ADRatio = float64(b.Advancers)
	}
	return b
}
