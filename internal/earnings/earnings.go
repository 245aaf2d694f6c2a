// Package earnings syncs the earnings calendar around the analysis date
// and tags picks that sit close to a report.
package earnings

import (
	"context"
	"fmt"
	"time"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/logger"
)

// Calendar window around the analysis date.
const (
	LookbackDays  = 3
	LookaheadDays = 14
)

// Service keeps the earnings calendar current and annotates picks.
type Service struct {
	provider contracts.MarketDataProvider
	repo     contracts.EarningsRepository
	log      *logger.Logger
}

func NewService(provider contracts.MarketDataProvider, repo contracts.EarningsRepository, log *logger.Logger) *Service {
	return &Service{provider: provider, repo: repo, log: log}
}

// Window returns the calendar range for an analysis date.
func Window(asOf time.Time) (from, to time.Time) {
	day := truncate(asOf)
	return day.AddDate(0, 0, -LookbackDays), day.AddDate(0, 0, LookaheadDays)
}

// Sync fetches the calendar window and upserts it. Returns the number of
// events stored.
func (s *Service) Sync(ctx context.Context, asOf time.Time) (int, error) {
	from, to := Window(asOf)

	events, err := s.provider.GetEarningsCalendar(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("fetch earnings calendar: %w", err)
	}
	if len(events) == 0 {
		return 0, nil
	}

	if err := s.repo.UpsertBatch(ctx, events); err != nil {
		return 0, fmt.Errorf("store earnings calendar: %w", err)
	}

	s.log.WithField("events", len(events)).Info("earnings calendar synced")
	return len(events), nil
}

// Annotate stamps each pick with its nearest calendar event: the event
// date, the estimated EPS, and a proximity tag when the report is within
// the next week or landed in the last three days.
func (s *Service) Annotate(ctx context.Context, asOf time.Time, picks []*contracts.Pick) error {
	if len(picks) == 0 {
		return nil
	}

	tickers := make([]string, 0, len(picks))
	for _, p := range picks {
		tickers = append(tickers, p.Ticker)
	}

	from, to := Window(asOf)
	events, err := s.repo.GetByTickers(ctx, tickers, from, to)
	if err != nil {
		return fmt.Errorf("load earnings events: %w", err)
	}

	byTicker := make(map[string]*contracts.EarningsEvent, len(events))
	day := truncate(asOf)
	for _, e := range events {
		best, ok := byTicker[e.Ticker]
		if !ok || closer(day, e.Date, best.Date) {
			byTicker[e.Ticker] = e
		}
	}

	for _, p := range picks {
		e, ok := byTicker[p.Ticker]
		if !ok {
			continue
		}
		date := truncate(e.Date)
		p.EarningsDate = &date
		p.EPSEstimated = e.EPSEstimated
		p.EarningsProximity = Proximity(day, date)
	}
	return nil
}

// Proximity classifies an earnings date relative to the analysis date.
// Empty when the report is too far out to matter.
func Proximity(asOf, earningsDate time.Time) string {
	days := int(truncate(earningsDate).Sub(truncate(asOf)).Hours() / 24)
	switch {
	case days >= 0 && days <= 7:
		return contracts.EarningsUpcoming7d
	case days >= -LookbackDays && days < 0:
		return contracts.EarningsJustReported3d
	}
	return ""
}

// closer reports whether a is nearer to the anchor than b, preferring
// the upcoming event on equal distance.
func closer(anchor, a, b time.Time) bool {
	da := truncate(a).Sub(anchor)
	db := truncate(b).Sub(anchor)
	absA, absB := abs(da), abs(db)
	if absA != absB {
		return absA < absB
	}
	return da > db
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
