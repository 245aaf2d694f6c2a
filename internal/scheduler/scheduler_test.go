package scheduler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincentral/backend/pkg/logger"
)

type noopJob struct {
	name string
}

func (j *noopJob) Name() string              { return j.name }
func (j *noopJob) Run(context.Context) error { return nil }
func (j *noopJob) Schedule() string          { return "0 0 6 * * *" }

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := New(logger.Nop())

	require.NoError(t, s.AddJob(&noopJob{name: "daily_analysis"}))
	err := s.AddJob(&noopJob{name: "daily_analysis"})
	assert.ErrorContains(t, err, "already exists")

	assert.Equal(t, []string{"daily_analysis"}, s.GetAllJobs())
}

func TestRunJobUnknownName(t *testing.T) {
	s := New(logger.Nop())
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistoryWindow(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{
			JobName:   "daily_analysis",
			StartTime: time.Now(),
			Success:   i%2 == 0,
			Error:     fmt.Sprintf("run %d", i),
		})
	}

	assert.Len(t, h.Results, 100)
	assert.Len(t, h.GetLatestResults(10), 10)
	assert.Len(t, h.GetFailedResults(), 50)
	assert.InDelta(t, 0.5, h.GetSuccessRate(), 0.001)
}

func TestJobHistoryEmpty(t *testing.T) {
	h := &JobHistory{}
	assert.Empty(t, h.GetLatestResults(5))
	assert.Zero(t, h.GetSuccessRate())
}
