package commands

import (
	"fmt"
	"time"

	"github.com/fincentral/backend/internal/analysis"
	"github.com/fincentral/backend/internal/earnings"
	"github.com/fincentral/backend/internal/external/fmp"
	"github.com/fincentral/backend/internal/marketrisk"
	"github.com/fincentral/backend/internal/news"
	"github.com/fincentral/backend/internal/store"
	"github.com/fincentral/backend/internal/universe"
	"github.com/fincentral/backend/pkg/config"
	"github.com/fincentral/backend/pkg/database"
	"github.com/fincentral/backend/pkg/httputil"
	"github.com/fincentral/backend/pkg/logger"
	"github.com/fincentral/backend/pkg/redis"
)

// pipeline bundles everything a command needs to run or serve analyses.
type pipeline struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.DB
	redis    *redis.Client
	engine   *analysis.Engine
	universe *universe.Service

	companies  *store.CompanyRepo
	runs       *store.RunRepo
	picks      *store.PickRepo
	strategies *store.StrategyRepo
	risk       *store.MarketRiskRepo
	newsRepo   *store.NewsRepo
	earnings   *store.EarningsRepo
}

// initPipeline wires config, storage, the FMP client and all stage
// services into an analysis engine.
func initPipeline() (*pipeline, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Connect to Redis (no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	// 5. Create HTTP client and market data provider. With Redis up the
	// FMP budget is a sliding window shared across processes.
	httpClient := httputil.New(cfg, log)
	if redisClient.Enabled() {
		httpClient = httpClient.WithRateLimiter(
			redis.NewRateLimiter(redisClient, "fincentral"),
			redis.RateLimitConfig{
				Key:    "fmp",
				Limit:  int(cfg.FMP.RateLimit * 60),
				Window: time.Minute,
			})
	}
	provider := fmp.New(cfg.FMP, httpClient, redis.NewCache(redisClient, "fmp"), log)

	// 6. Create repositories
	p := &pipeline{
		cfg:        cfg,
		log:        log,
		db:         db,
		redis:      redisClient,
		companies:  store.NewCompanyRepo(db.Pool),
		runs:       store.NewRunRepo(db.Pool),
		picks:      store.NewPickRepo(db.Pool),
		strategies: store.NewStrategyRepo(db.Pool),
		risk:       store.NewMarketRiskRepo(db.Pool),
		newsRepo:   store.NewNewsRepo(db.Pool),
		earnings:   store.NewEarningsRepo(db.Pool),
	}

	// 7. Create stage services and the engine
	p.universe = universe.NewService(provider, p.companies, httpClient, log)
	p.engine = analysis.NewEngine(cfg.Analysis, analysis.Deps{
		Companies:  p.companies,
		Runs:       p.runs,
		Picks:      p.picks,
		Strategies: p.strategies,
		Provider:   provider,
		MarketRisk: marketrisk.NewService(provider, p.risk, log),
		Universe:   p.universe,
		Earnings:   earnings.NewService(provider, p.earnings, log),
		News:       news.NewService(provider, p.newsRepo, log),
	}, log)

	return p, nil
}

// Close releases database and Redis connections.
func (p *pipeline) Close() {
	if p.redis != nil {
		p.redis.Close()
	}
	if p.db != nil {
		p.db.Close()
	}
}
