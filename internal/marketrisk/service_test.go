package marketrisk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/logger"
)

type fakeProvider struct {
	contracts.MarketDataProvider

	indexes []*contracts.IndexQuote
	sectors []*contracts.SectorPerformance
	gainers []*contracts.MoverQuote
	losers  []*contracts.MoverQuote
	err     error
}

func (f *fakeProvider) GetMarketIndexes(ctx context.Context) ([]*contracts.IndexQuote, error) {
	return f.indexes, f.err
}

func (f *fakeProvider) GetSectorPerformance(ctx context.Context) ([]*contracts.SectorPerformance, error) {
	return f.sectors, f.err
}

func (f *fakeProvider) GetGainersLosers(ctx context.Context) ([]*contracts.MoverQuote, []*contracts.MoverQuote, error) {
	return f.gainers, f.losers, f.err
}

type fakeRiskRepo struct {
	saved *contracts.MarketRiskSnapshot
}

func (f *fakeRiskRepo) Upsert(ctx context.Context, s *contracts.MarketRiskSnapshot) error {
	f.saved = s
	return nil
}

func (f *fakeRiskRepo) GetLatest(ctx context.Context) (*contracts.MarketRiskSnapshot, error) {
	if f.saved == nil {
		return nil, contracts.ErrRunNotFound
	}
	return f.saved, nil
}

func movers(n int) []*contracts.MoverQuote {
	out := make([]*contracts.MoverQuote, n)
	for i := range out {
		out[i] = &contracts.MoverQuote{Ticker: "T", ChangePct: 1}
	}
	return out
}

func TestService_Assess(t *testing.T) {
	provider := &fakeProvider{
		indexes: []*contracts.IndexQuote{
			{Symbol: "^VIX", Price: 30},
			{Symbol: "^GSPC", Price: 5000, ChangePct: -2.5},
			{Symbol: "^DJI", Price: 40000, ChangePct: -1.0},
		},
		sectors: []*contracts.SectorPerformance{
			{Sector: "Technology", ChangePct: -3.1},
		},
		gainers: movers(10),
		losers:  movers(40),
	}
	repo := &fakeRiskRepo{}
	svc := NewService(provider, repo, logger.Nop())

	date := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	snapshot, err := svc.Assess(context.Background(), date)

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Same(t, snapshot, repo.saved)

	// 5 +2 (VIX 30) +2 (S&P -2.5%) +1 (A/D 0.25) = 10
	assert.Equal(t, 10, snapshot.RiskScore)
	assert.Equal(t, "Extreme", snapshot.RiskLabel)
	assert.Equal(t, date, snapshot.SnapshotDate)

	require.NotNil(t, snapshot.VIXLevel)
	assert.Equal(t, 30.0, *snapshot.VIXLevel)
	require.NotNil(t, snapshot.SP500Change)
	assert.Equal(t, -2.5, *snapshot.SP500Change)
	require.NotNil(t, snapshot.Breadth)
	assert.Equal(t, 10, snapshot.Breadth.Advancers)
	assert.InDelta(t, 0.25, snapshot.Breadth.ADRatio, 1e-9)
	require.Len(t, snapshot.SectorData, 1)
	assert.Equal(t, "Technology", snapshot.SectorData[0].Sector)
}

func TestService_AssessDegradedUpstream(t *testing.T) {
	provider := &fakeProvider{err: contracts.ErrDataUnavailable}
	repo := &fakeRiskRepo{}
	svc := NewService(provider, repo, logger.Nop())

	snapshot, err := svc.Assess(context.Background(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 5, snapshot.RiskScore)
	assert.Nil(t, snapshot.VIXLevel)
	assert.Nil(t, snapshot.Breadth)
}
