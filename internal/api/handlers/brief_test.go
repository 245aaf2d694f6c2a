package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/pkg/logger"
)

var briefDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

type fakeRuns struct {
	latest *contracts.AnalysisRun
	listed []*contracts.AnalysisRun
}

func (r *fakeRuns) Create(context.Context, *contracts.AnalysisRun) error { return nil }
func (r *fakeRuns) Update(context.Context, *contracts.AnalysisRun) error { return nil }
func (r *fakeRuns) GetCompletedByDate(context.Context, time.Time) (*contracts.AnalysisRun, error) {
	return nil, contracts.ErrRunNotFound
}
func (r *fakeRuns) DeleteByDate(context.Context, time.Time) error { return nil }
func (r *fakeRuns) GetLatestCompleted(context.Context) (*contracts.AnalysisRun, error) {
	if r.latest == nil {
		return nil, contracts.ErrRunNotFound
	}
	return r.latest, nil
}
func (r *fakeRuns) ListCompletedSince(context.Context, time.Time) ([]*contracts.AnalysisRun, error) {
	return r.listed, nil
}

type fakePicks struct {
	picks []*contracts.Pick
}

func (r *fakePicks) SaveBatch(context.Context, []*contracts.Pick) error { return nil }
func (r *fakePicks) Update(context.Context, *contracts.Pick) error      { return nil }
func (r *fakePicks) GetByRun(context.Context, int64) ([]*contracts.Pick, error) {
	return r.picks, nil
}
func (r *fakePicks) GetByRunAndScreen(_ context.Context, _ int64, screen string) ([]*contracts.Pick, error) {
	var out []*contracts.Pick
	for _, p := range r.picks {
		if p.ScreenName == screen {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeStrategies struct {
	plans []*contracts.TradePlan
}

func (r *fakeStrategies) SaveBatch(context.Context, []*contracts.TradePlan) error { return nil }
func (r *fakeStrategies) DeleteByDate(context.Context, time.Time) error           { return nil }
func (r *fakeStrategies) GetByTickersAndDate(context.Context, []string, time.Time) ([]*contracts.TradePlan, error) {
	return r.plans, nil
}

type fakeRisk struct {
	snapshot *contracts.MarketRiskSnapshot
}

func (r *fakeRisk) Upsert(context.Context, *contracts.MarketRiskSnapshot) error { return nil }
func (r *fakeRisk) GetLatest(context.Context) (*contracts.MarketRiskSnapshot, error) {
	if r.snapshot == nil {
		return nil, contracts.ErrDataUnavailable
	}
	return r.snapshot, nil
}

type fakeNews struct {
	articles []*contracts.NewsArticle
}

func (r *fakeNews) SaveBatch(context.Context, []*contracts.NewsArticle) error { return nil }
func (r *fakeNews) GetByTickers(context.Context, []string, int) ([]*contracts.NewsArticle, error) {
	return r.articles, nil
}

type fakeRunner struct {
	mu         sync.Mutex
	inProgress bool
	ranDate    time.Time
	ranForce   bool
	done       chan struct{}
}

func (r *fakeRunner) Run(_ context.Context, date time.Time, force bool) (*contracts.AnalysisRun, *contracts.StageReport, error) {
	r.mu.Lock()
	r.ranDate = date
	r.ranForce = force
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return &contracts.AnalysisRun{}, &contracts.StageReport{}, nil
}

func (r *fakeRunner) InProgress(time.Time) bool { return r.inProgress }

type briefFixture struct {
	handler    *BriefHandler
	runs       *fakeRuns
	picks      *fakePicks
	strategies *fakeStrategies
	risk       *fakeRisk
	news       *fakeNews
	runner     *fakeRunner
}

func newBriefFixture() *briefFixture {
	f := &briefFixture{
		runs:       &fakeRuns{},
		picks:      &fakePicks{},
		strategies: &fakeStrategies{},
		risk:       &fakeRisk{},
		news:       &fakeNews{},
		runner:     &fakeRunner{},
	}
	f.handler = NewBriefHandler(f.runs, f.picks, f.strategies, f.risk, f.news, f.runner, logger.Nop())
	return f
}

func completedRun() *contracts.AnalysisRun {
	now := time.Now().UTC()
	return &contracts.AnalysisRun{
		ID: 7, RunDate: briefDate, Status: contracts.RunStatusCompleted,
		StartedAt: now, CompletedAt: &now, StocksAnalyzed: 100, StocksPassed: 2,
	}
}

func TestGetDailyBrief(t *testing.T) {
	f := newBriefFixture()
	f.runs.latest = completedRun()
	f.picks.picks = []*contracts.Pick{
		{ID: 1, RunID: 7, Ticker: "MSFT", ScreenName: "quality_value", Rank: 1},
		{ID: 2, RunID: 7, Ticker: "AAPL", ScreenName: "magic_formula", Rank: 1},
	}
	f.strategies.plans = []*contracts.TradePlan{
		{Ticker: "AAPL", Timeframe: contracts.TimeframeSwing, EntryPrice: 100},
		{Ticker: "AAPL", Timeframe: contracts.TimeframePosition, EntryPrice: 97},
	}
	f.news.articles = []*contracts.NewsArticle{{Ticker: "AAPL", Title: "Apple headline", URL: "https://example.com/1"}}
	f.risk.snapshot = &contracts.MarketRiskSnapshot{SnapshotDate: briefDate, RiskScore: 6, RiskLabel: "Elevated"}

	rec := httptest.NewRecorder()
	f.handler.GetDailyBrief(rec, httptest.NewRequest("GET", "/api/daily-brief", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var brief DailyBrief
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brief))

	assert.Equal(t, int64(7), brief.Run.ID)
	require.NotNil(t, brief.MarketRisk)
	assert.Equal(t, 6, brief.MarketRisk.RiskScore)

	// Screens come back in preset order regardless of storage order.
	require.Len(t, brief.Screens, 2)
	assert.Equal(t, "magic_formula", brief.Screens[0].ScreenName)
	assert.Equal(t, "quality_value", brief.Screens[1].ScreenName)

	require.Len(t, brief.Plans["AAPL"], 2)
	require.Len(t, brief.News, 1)
}

func TestGetDailyBriefNoRuns(t *testing.T) {
	f := newBriefFixture()

	rec := httptest.NewRecorder()
	f.handler.GetDailyBrief(rec, httptest.NewRequest("GET", "/api/daily-brief", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDailyBriefWithoutRiskSnapshot(t *testing.T) {
	f := newBriefFixture()
	f.runs.latest = completedRun()

	rec := httptest.NewRecorder()
	f.handler.GetDailyBrief(rec, httptest.NewRequest("GET", "/api/daily-brief", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var brief DailyBrief
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brief))
	assert.Nil(t, brief.MarketRisk)
}

func TestGetHistory(t *testing.T) {
	f := newBriefFixture()
	f.runs.listed = []*contracts.AnalysisRun{completedRun()}

	rec := httptest.NewRecorder()
	f.handler.GetHistory(rec, httptest.NewRequest("GET", "/api/daily-brief/history?days=7", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days int                      `json:"days"`
		Runs []*contracts.AnalysisRun `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.Days)
	assert.Len(t, resp.Runs, 1)
}

func TestGetHistoryRejectsBadDays(t *testing.T) {
	f := newBriefFixture()

	for _, q := range []string{"days=0", "days=9999", "days=abc"} {
		rec := httptest.NewRecorder()
		f.handler.GetHistory(rec, httptest.NewRequest("GET", "/api/daily-brief/history?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetPicksByScreen(t *testing.T) {
	f := newBriefFixture()
	f.runs.latest = completedRun()
	f.picks.picks = []*contracts.Pick{
		{Ticker: "AAPL", ScreenName: "magic_formula", Rank: 1},
		{Ticker: "MSFT", ScreenName: "quality_value", Rank: 1},
	}

	rec := httptest.NewRecorder()
	f.handler.GetPicks(rec, httptest.NewRequest("GET", "/api/daily-brief/picks?screen=magic_formula", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RunID int64             `json:"run_id"`
		Picks []*contracts.Pick `json:"picks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.RunID)
	require.Len(t, resp.Picks, 1)
	assert.Equal(t, "AAPL", resp.Picks[0].Ticker)
}

func TestGetPicksUnknownScreen(t *testing.T) {
	f := newBriefFixture()

	rec := httptest.NewRecorder()
	f.handler.GetPicks(rec, httptest.NewRequest("GET", "/api/daily-brief/picks?screen=nope", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrigger(t *testing.T) {
	f := newBriefFixture()
	f.runner.done = make(chan struct{})

	rec := httptest.NewRecorder()
	f.handler.Trigger(rec, httptest.NewRequest("POST", "/api/daily-brief/trigger?force=true&date=2026-08-28", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-f.runner.done:
	case <-time.After(2 * time.Second):
		t.Fatal("runner was not invoked")
	}

	f.runner.mu.Lock()
	defer f.runner.mu.Unlock()
	assert.True(t, f.runner.ranForce)
	assert.Equal(t, briefDate, f.runner.ranDate)
}

func TestTriggerConflictWhileRunning(t *testing.T) {
	f := newBriefFixture()
	f.runner.inProgress = true

	rec := httptest.NewRecorder()
	f.handler.Trigger(rec, httptest.NewRequest("POST", "/api/daily-brief/trigger", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTriggerRejectsBadDate(t *testing.T) {
	f := newBriefFixture()

	rec := httptest.NewRecorder()
	f.handler.Trigger(rec, httptest.NewRequest("POST", "/api/daily-brief/trigger?date=08-28-2026", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetScreens(t *testing.T) {
	f := newBriefFixture()

	rec := httptest.NewRecorder()
	f.handler.GetScreens(rec, httptest.NewRequest("GET", "/api/screens", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Screens []ScreenInfo `json:"screens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Screens, 5)
	assert.Equal(t, "magic_formula", resp.Screens[0].Name)

	watchOnly := 0
	for _, s := range resp.Screens {
		if s.WatchOnly {
			watchOnly++
		}
	}
	assert.Equal(t, 1, watchOnly)
}
