package contracts

import "errors"

// Error taxonomy for the analysis pipeline. Callers branch with errors.Is.
var (
	// ErrDataUnavailable means the provider has no fundamentals or prices
	// for a ticker. The ticker is skipped, never fatal to a run.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrRateLimited means the provider throttled the request. Retried with
	// backoff; downgraded to ErrDataUnavailable once attempts are exhausted.
	ErrRateLimited = errors.New("rate limited by provider")

	// ErrRunNotFound means no completed analysis run matches the query.
	ErrRunNotFound = errors.New("analysis run not found")

	// ErrRunInProgress means an analysis run for the date is already executing.
	ErrRunInProgress = errors.New("analysis run already in progress")
)
