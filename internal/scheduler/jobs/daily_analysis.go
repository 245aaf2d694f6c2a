package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/fincentral/backend/internal/analysis"
	"github.com/fincentral/backend/pkg/logger"
)

// DailyAnalysisJob runs the full screening pipeline every market morning
type DailyAnalysisJob struct {
	engine   *analysis.Engine
	schedule string
	logger   *logger.Logger
}

// NewDailyAnalysisJob creates a new daily analysis job
func NewDailyAnalysisJob(engine *analysis.Engine, schedule string, log *logger.Logger) *DailyAnalysisJob {
	return &DailyAnalysisJob{
		engine:   engine,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *DailyAnalysisJob) Name() string {
	return "daily_analysis"
}

// Schedule returns the cron schedule from configuration
func (j *DailyAnalysisJob) Schedule() string {
	return j.schedule
}

// Run executes today's analysis. A completed run for the date makes this
// a no-op, so scheduler retries after a late failure are safe.
func (j *DailyAnalysisJob) Run(ctx context.Context) error {
	date := time.Now().UTC()

	run, report, err := j.engine.Run(ctx, date, false)
	if err != nil {
		return fmt.Errorf("daily analysis: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"run_id":          run.ID,
		"stocks_analyzed": run.StocksAnalyzed,
		"stocks_passed":   run.StocksPassed,
		"stages_failed":   len(report.Failed()),
	}).Info("Scheduled analysis finished")

	return nil
}
