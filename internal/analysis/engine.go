// Package analysis orchestrates the daily pipeline: market risk,
// universe sync, fetch and score, screen picks, trade plans, news,
// earnings tagging and the conditional portfolio health check.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/earnings"
	"github.com/fincentral/backend/internal/formulas"
	"github.com/fincentral/backend/internal/marketrisk"
	"github.com/fincentral/backend/internal/news"
	"github.com/fincentral/backend/internal/screening"
	"github.com/fincentral/backend/internal/strategy"
	"github.com/fincentral/backend/internal/universe"
	"github.com/fincentral/backend/pkg/config"
	"github.com/fincentral/backend/pkg/logger"
	"github.com/fincentral/backend/pkg/retry"
)

// maxStoredErrorLen bounds the error text persisted with a failed run.
const maxStoredErrorLen = 1000

// Deps wires the engine to its repositories and stage services.
// Portfolio may be nil when no portfolio module is attached.
type Deps struct {
	Companies  contracts.CompanyRepository
	Runs       contracts.RunRepository
	Picks      contracts.PickRepository
	Strategies contracts.StrategyRepository
	Provider   contracts.MarketDataProvider

	MarketRisk *marketrisk.Service
	Universe   *universe.Service
	Earnings   *earnings.Service
	News       *news.Service
	Portfolio  contracts.PortfolioHealthChecker
}

// Engine runs the daily analysis. One run per date executes at a time;
// a second trigger for the same date fails fast with ErrRunInProgress
// instead of duplicating work.
type Engine struct {
	cfg  config.AnalysisConfig
	deps Deps
	log  *logger.Logger

	mu       sync.Mutex
	inflight map[string]bool
}

func NewEngine(cfg config.AnalysisConfig, deps Deps, log *logger.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		deps:     deps,
		log:      log,
		inflight: make(map[string]bool),
	}
}

// Run executes the pipeline for the date. Without force, a date that
// already has a completed run is a no-op returning that run. Any other
// prior runs for the date (failed, abandoned, or forced-over) and their
// picks are deleted before the fresh run is created. Stage failures are
// recorded and skipped; only run bookkeeping and context cancellation
// fail the run itself.
func (e *Engine) Run(ctx context.Context, date time.Time, force bool) (*contracts.AnalysisRun, *contracts.StageReport, error) {
	date = truncateDay(date)
	key := date.Format("2006-01-02")

	if !e.acquire(key) {
		return nil, nil, contracts.ErrRunInProgress
	}
	defer e.release(key)

	log := e.log.WithField("run_date", key)

	if !force {
		existing, err := e.deps.Runs.GetCompletedByDate(ctx, date)
		if err == nil {
			log.Info("completed run exists, skipping (use force to re-run)")
			return existing, &contracts.StageReport{}, nil
		}
		if !errors.Is(err, contracts.ErrRunNotFound) {
			return nil, nil, fmt.Errorf("check existing run: %w", err)
		}
	}

	// Replace stale failed or abandoned runs for the date (and, with
	// force, the completed one).
	if err := e.deps.Runs.DeleteByDate(ctx, date); err != nil {
		return nil, nil, fmt.Errorf("delete prior runs: %w", err)
	}

	started := time.Now()
	run := &contracts.AnalysisRun{
		RunDate:   date,
		Status:    contracts.RunStatusRunning,
		StartedAt: started.UTC(),
	}
	if err := e.deps.Runs.Create(ctx, run); err != nil {
		return nil, nil, fmt.Errorf("create run: %w", err)
	}

	log.Info("analysis run started")
	report := &contracts.StageReport{}

	report.Add(e.stageMarketRisk(ctx, date))
	report.Add(e.stageUniverseSync(ctx))

	candidates, fetchResult := e.stageFetchScore(ctx)
	report.Add(fetchResult)

	picks, picksResult := e.stagePicks(ctx, run, candidates)
	report.Add(picksResult)

	report.Add(e.stageStrategies(ctx, date, picks, candidates))
	report.Add(e.stageNews(ctx, picks))
	report.Add(e.stageEarnings(ctx, date, picks))
	report.Add(e.stagePortfolioHealth(ctx))

	run.StocksAnalyzed = fetchResult.OutputCount
	run.StocksPassed = len(picks)
	run.ExecutionTimeSeconds = time.Since(started).Seconds()

	if ctx.Err() != nil {
		return e.failRun(run, ctx.Err(), report)
	}

	now := time.Now().UTC()
	run.Status = contracts.RunStatusCompleted
	run.CompletedAt = &now
	if err := e.deps.Runs.Update(context.WithoutCancel(ctx), run); err != nil {
		return nil, report, fmt.Errorf("complete run: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"stocks_analyzed": run.StocksAnalyzed,
		"stocks_passed":   run.StocksPassed,
		"stages_ok":       report.Succeeded(),
		"stages_failed":   len(report.Failed()),
		"seconds":         run.ExecutionTimeSeconds,
	}).Info("analysis run completed")

	return run, report, nil
}

func (e *Engine) failRun(run *contracts.AnalysisRun, cause error, report *contracts.StageReport) (*contracts.AnalysisRun, *contracts.StageReport, error) {
	now := time.Now().UTC()
	run.Status = contracts.RunStatusFailed
	run.CompletedAt = &now
	run.ErrorMessage = truncateError(cause)

	if err := e.deps.Runs.Update(context.Background(), run); err != nil {
		e.log.WithError(err).Error("failed to record failed run")
	}
	return run, report, cause
}

func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > maxStoredErrorLen {
		msg = msg[:maxStoredErrorLen]
	}
	return msg
}

func (e *Engine) acquire(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inflight[key] {
		return false
	}
	e.inflight[key] = true
	return true
}

// InProgress reports whether a run for the date is currently executing.
func (e *Engine) InProgress(date time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inflight[truncateDay(date).Format("2006-01-02")]
}

func (e *Engine) release(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, key)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// timed wraps a stage body with duration tracking and failure logging.
func (e *Engine) timed(stage contracts.Stage, fn func(result *contracts.StageResult) error) contracts.StageResult {
	result := contracts.StageResult{Stage: stage}
	start := time.Now()

	err := fn(&result)
	result.DurationMS = time.Since(start).Milliseconds()

	if err != nil {
		result.Error = err.Error()
		e.log.WithError(err).WithField("stage", stage.String()).Error("stage failed, continuing")
		return result
	}
	if !result.Skipped {
		result.Success = true
	}
	return result
}

func (e *Engine) stageMarketRisk(ctx context.Context, date time.Time) contracts.StageResult {
	return e.timed(contracts.StageMarketRisk, func(result *contracts.StageResult) error {
		snapshot, err := e.deps.MarketRisk.Assess(ctx, date)
		if err != nil {
			return err
		}
		result.OutputCount = 1
		result.Metadata = map[string]interface{}{
			"risk_score": snapshot.RiskScore,
			"risk_label": snapshot.RiskLabel,
		}
		return nil
	})
}

func (e *Engine) stageUniverseSync(ctx context.Context) contracts.StageResult {
	return e.timed(contracts.StageUniverseSync, func(result *contracts.StageResult) error {
		n, source, err := e.deps.Universe.Sync(ctx)
		if err != nil {
			return err
		}
		result.OutputCount = n
		result.Metadata = map[string]interface{}{"source": source}
		return nil
	})
}

// stageFetchScore pulls fundamentals for the whole universe and scores
// them. Work runs in fixed-size batches with a bounded worker count and
// a pause between batches to stay inside provider limits.
func (e *Engine) stageFetchScore(ctx context.Context) ([]screening.Candidate, contracts.StageResult) {
	var candidates []screening.Candidate

	result := e.timed(contracts.StageFetchScore, func(result *contracts.StageResult) error {
		companies, err := e.deps.Companies.GetActive(ctx)
		if err != nil {
			return fmt.Errorf("load universe: %w", err)
		}
		result.InputCount = len(companies)

		sem := make(chan struct{}, e.cfg.Concurrency)
		var mu sync.Mutex

		for start := 0; start < len(companies); start += e.cfg.BatchSize {
			end := start + e.cfg.BatchSize
			if end > len(companies) {
				end = len(companies)
			}

			var wg sync.WaitGroup
			for _, company := range companies[start:end] {
				if ctx.Err() != nil {
					break
				}
				wg.Add(1)
				sem <- struct{}{}
				go func(c *contracts.Company) {
					defer wg.Done()
					defer func() { <-sem }()

					candidate, err := e.analyze(ctx, c)
					if err != nil {
						e.log.WithError(err).WithField("ticker", c.Ticker).Warn("skipping ticker")
						return
					}
					mu.Lock()
					candidates = append(candidates, candidate)
					mu.Unlock()
				}(company)
			}
			wg.Wait()

			if end < len(companies) {
				if err := sleepCtx(ctx, e.cfg.BatchPause); err != nil {
					return err
				}
			}
		}

		result.OutputCount = len(candidates)
		return ctx.Err()
	})

	return candidates, result
}

// analyze builds one screening candidate. ETFs get quote data only;
// operating companies get the full fundamental snapshot and score set.
// Rate limiting is retried with backoff, then treated as missing data.
func (e *Engine) analyze(ctx context.Context, company *contracts.Company) (screening.Candidate, error) {
	candidate := screening.Candidate{Company: *company}

	policy := retry.DefaultPolicy()
	if e.cfg.MaxRetries > 0 {
		policy.MaxAttempts = e.cfg.MaxRetries
	}
	rateLimited := func(err error) bool { return errors.Is(err, contracts.ErrRateLimited) }

	if company.IsETF {
		var quote *contracts.Quote
		err := retry.Do(ctx, policy, rateLimited, func(ctx context.Context) error {
			var err error
			quote, err = e.deps.Provider.GetQuote(ctx, company.Ticker)
			return err
		})
		if err != nil {
			return candidate, downgradeRateLimit(err)
		}
		candidate.Company.MarketCap = quote.MarketCap
		e.persistMarketCap(ctx, &candidate.Company)
		return candidate, nil
	}

	var snapshot *formulas.FundamentalSnapshot
	err := retry.Do(ctx, policy, rateLimited, func(ctx context.Context) error {
		var err error
		snapshot, err = e.deps.Provider.BuildSnapshot(ctx, company.Ticker)
		return err
	})
	if err != nil {
		return candidate, downgradeRateLimit(err)
	}

	if snapshot.MarketCap != nil {
		candidate.Company.MarketCap = *snapshot.MarketCap
		e.persistMarketCap(ctx, &candidate.Company)
	}
	candidate.Scores = formulas.Compute(snapshot)
	return candidate, nil
}

// persistMarketCap refreshes the stored market cap. Failures are logged
// only; the in-memory candidate still carries the fresh value.
func (e *Engine) persistMarketCap(ctx context.Context, company *contracts.Company) {
	if err := e.deps.Companies.Upsert(ctx, company); err != nil {
		e.log.WithError(err).WithField("ticker", company.Ticker).Warn("market cap refresh not stored")
	}
}

// downgradeRateLimit converts exhausted-retry throttling into the
// skip-this-ticker error so callers treat both the same way.
func downgradeRateLimit(err error) error {
	if errors.Is(err, contracts.ErrRateLimited) {
		return fmt.Errorf("%w: %v", contracts.ErrDataUnavailable, err)
	}
	return err
}

// stagePicks evaluates every preset screen and stores the deduplicated
// daily pick list.
func (e *Engine) stagePicks(ctx context.Context, run *contracts.AnalysisRun, candidates []screening.Candidate) ([]*contracts.Pick, contracts.StageResult) {
	var picks []*contracts.Pick

	result := e.timed(contracts.StagePicks, func(result *contracts.StageResult) error {
		result.InputCount = len(candidates)
		if len(candidates) == 0 {
			result.Skipped = true
			return nil
		}

		screens := screening.Presets()
		screenResults := screening.EvaluateAll(screens, candidates)
		selections := screening.SelectPicks(screenResults)

		titles := make(map[string]string, len(screens))
		for _, s := range screens {
			titles[s.Name] = s.Title
		}

		for _, sel := range selections {
			picks = append(picks, &contracts.Pick{
				RunID:      run.ID,
				Ticker:     sel.Result.Company.Ticker,
				ScreenName: sel.ScreenName,
				Rank:       sel.Result.Rank,
				Metrics:    sel.Result.Scores.Flatten(),
				Rationale:  fmt.Sprintf("%s rank %d", titles[sel.ScreenName], sel.Result.Rank),
			})
		}

		if err := e.deps.Picks.SaveBatch(ctx, picks); err != nil {
			picks = nil
			return fmt.Errorf("save picks: %w", err)
		}
		result.OutputCount = len(picks)
		return nil
	})

	return picks, result
}

// stageStrategies composes trade plans for every picked ticker from its
// recent price history. The date's previous plans are replaced.
func (e *Engine) stageStrategies(ctx context.Context, date time.Time, picks []*contracts.Pick, candidates []screening.Candidate) contracts.StageResult {
	return e.timed(contracts.StageStrategies, func(result *contracts.StageResult) error {
		result.InputCount = len(picks)
		if len(picks) == 0 {
			result.Skipped = true
			return nil
		}

		scoresByTicker := make(map[string]*formulas.ScoreSet, len(candidates))
		for _, c := range candidates {
			scoresByTicker[c.Company.Ticker] = c.Scores
		}

		historyDays := e.cfg.HistoryDays
		if historyDays <= 0 {
			historyDays = 150
		}
		from := date.AddDate(0, 0, -historyDays)

		var plans []*contracts.TradePlan
		for _, pick := range picks {
			bars, err := e.deps.Provider.GetHistoricalPrices(ctx, pick.Ticker, from, date)
			if err != nil {
				e.log.WithError(err).WithField("ticker", pick.Ticker).Warn("no price history, skipping plans")
				continue
			}
			for _, plan := range strategy.Compose(pick.Ticker, date, bars, scoresByTicker[pick.Ticker]) {
				p := plan
				plans = append(plans, &p)
			}
		}

		if err := e.deps.Strategies.DeleteByDate(ctx, date); err != nil {
			return fmt.Errorf("clear prior plans: %w", err)
		}
		if err := e.deps.Strategies.SaveBatch(ctx, plans); err != nil {
			return fmt.Errorf("save plans: %w", err)
		}
		result.OutputCount = len(plans)
		return nil
	})
}

func (e *Engine) stageNews(ctx context.Context, picks []*contracts.Pick) contracts.StageResult {
	return e.timed(contracts.StageNews, func(result *contracts.StageResult) error {
		result.InputCount = len(picks)
		if len(picks) == 0 {
			result.Skipped = true
			return nil
		}

		n, err := e.deps.News.Collect(ctx, pickTickers(picks))
		if err != nil {
			return err
		}
		result.OutputCount = n
		return nil
	})
}

func (e *Engine) stageEarnings(ctx context.Context, date time.Time, picks []*contracts.Pick) contracts.StageResult {
	return e.timed(contracts.StageEarnings, func(result *contracts.StageResult) error {
		n, err := e.deps.Earnings.Sync(ctx, date)
		if err != nil {
			return err
		}
		result.OutputCount = n

		if len(picks) == 0 {
			return nil
		}
		if err := e.deps.Earnings.Annotate(ctx, date, picks); err != nil {
			return err
		}
		for _, p := range picks {
			if p.EarningsDate == nil {
				continue
			}
			if err := e.deps.Picks.Update(ctx, p); err != nil {
				return fmt.Errorf("update pick %s: %w", p.Ticker, err)
			}
		}
		return nil
	})
}

// stagePortfolioHealth runs only when a portfolio module is attached
// and actually holds positions.
func (e *Engine) stagePortfolioHealth(ctx context.Context) contracts.StageResult {
	return e.timed(contracts.StagePortfolioHealth, func(result *contracts.StageResult) error {
		if e.deps.Portfolio == nil {
			result.Skipped = true
			return nil
		}
		has, err := e.deps.Portfolio.HasHoldings(ctx)
		if err != nil {
			return err
		}
		if !has {
			result.Skipped = true
			return nil
		}
		return e.deps.Portfolio.CheckHealth(ctx)
	})
}

func pickTickers(picks []*contracts.Pick) []string {
	tickers := make([]string, 0, len(picks))
	for _, p := range picks {
		tickers = append(tickers, p.Ticker)
	}
	return tickers
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
