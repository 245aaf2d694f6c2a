package contracts

// Orchestrator stage definitions. All logs and stage reports use these
// constants.
//
// Pipeline flow:
//   market risk → universe sync → fetch/score → picks → strategies →
//   news → earnings → portfolio health

// Stage identifies one orchestrator stage.
type Stage string

const (
	StageMarketRisk      Stage = "MARKET_RISK"
	StageUniverseSync    Stage = "UNIVERSE_SYNC"
	StageFetchScore      Stage = "FETCH_SCORE"
	StagePicks           Stage = "PICKS"
	StageStrategies      Stage = "STRATEGIES"
	StageNews            Stage = "NEWS"
	StageEarnings        Stage = "EARNINGS"
	StagePortfolioHealth Stage = "PORTFOLIO_HEALTH"
)

// String returns the stage name
func (s Stage) String() string {
	return string(s)
}

// AllStages returns the orchestrator stages in execution order
func AllStages() []Stage {
	return []Stage{
		StageMarketRisk,
		StageUniverseSync,
		StageFetchScore,
		StagePicks,
		StageStrategies,
		StageNews,
		StageEarnings,
		StagePortfolioHealth,
	}
}

// StageResult records one stage execution. A failed stage never aborts the
// run; the orchestrator aggregates results and decides afterwards.
type StageResult struct {
	Stage       Stage                  `json:"stage"`
	Success     bool                   `json:"success"`
	Skipped     bool                   `json:"skipped,omitempty"`
	InputCount  int                    `json:"input_count"`
	OutputCount int                    `json:"output_count"`
	DurationMS  int64                  `json:"duration_ms"`
	Error       string                 `json:"error,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// StageReport is the ordered outcome of all stages in a run.
type StageReport struct {
	Results []StageResult `json:"results"`
}

// Add appends a stage result
func (r *StageReport) Add(result StageResult) {
	r.Results = append(r.Results, result)
}

// Failed returns the results of stages that ran and failed
func (r *StageReport) Failed() []StageResult {
	failed := make([]StageResult, 0)
	for _, res := range r.Results {
		if !res.Success && !res.Skipped {
			failed = append(failed, res)
		}
	}
	return failed
}

// Succeeded counts stages that completed without error
func (r *StageReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Success {
			n++
		}
	}
	return n
}
