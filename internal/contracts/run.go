package contracts

import "time"

// RunStatus is the lifecycle state of an analysis run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AnalysisRun is one pipeline execution for a calendar date. At most one
// completed run exists per date; a forced re-run replaces the prior run and
// all of its children.
type AnalysisRun struct {
	ID                   int64      `json:"id"`
	RunDate              time.Time  `json:"run_date"`
	Status               RunStatus  `json:"status"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	StocksAnalyzed       int        `json:"stocks_analyzed"`
	StocksPassed         int        `json:"stocks_passed"`
	ExecutionTimeSeconds float64    `json:"execution_time_seconds"`
	ErrorMessage         string     `json:"error_message,omitempty"`
}

// Pick is one company selected by a named screen within a run. Within one
// run's merged output a ticker appears under at most one screen.
type Pick struct {
	ID         int64  `json:"id"`
	RunID      int64  `json:"run_id"`
	Ticker     string `json:"ticker"`
	ScreenName string `json:"screen_name"`

	// Rank is 1-based and dense within the screen.
	Rank int `json:"rank"`

	// Metrics is the flattened ScoreSet snapshot persisted with the pick.
	Metrics map[string]float64 `json:"metrics"`

	Rationale string `json:"rationale"`

	// Earnings tagging, filled by the earnings stage.
	EarningsDate      *time.Time `json:"earnings_date,omitempty"`
	EarningsProximity string     `json:"earnings_proximity,omitempty"`
	EPSEstimated      *float64   `json:"eps_estimated,omitempty"`
}
