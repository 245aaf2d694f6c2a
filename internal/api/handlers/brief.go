package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fincentral/backend/internal/contracts"
	"github.com/fincentral/backend/internal/screening"
	"github.com/fincentral/backend/pkg/logger"
)

// newsLimit caps headlines returned with the daily brief.
const newsLimit = 25

// AnalysisRunner triggers pipeline runs. Implemented by analysis.Engine.
type AnalysisRunner interface {
	Run(ctx context.Context, date time.Time, force bool) (*contracts.AnalysisRun, *contracts.StageReport, error)
	InProgress(date time.Time) bool
}

// BriefHandler serves the daily brief API
type BriefHandler struct {
	runs       contracts.RunRepository
	picks      contracts.PickRepository
	strategies contracts.StrategyRepository
	risk       contracts.MarketRiskRepository
	news       contracts.NewsRepository
	runner     AnalysisRunner
	logger     *logger.Logger
}

// NewBriefHandler creates a new daily brief handler
func NewBriefHandler(
	runs contracts.RunRepository,
	picks contracts.PickRepository,
	strategies contracts.StrategyRepository,
	risk contracts.MarketRiskRepository,
	news contracts.NewsRepository,
	runner AnalysisRunner,
	log *logger.Logger,
) *BriefHandler {
	return &BriefHandler{
		runs:       runs,
		picks:      picks,
		strategies: strategies,
		risk:       risk,
		news:       news,
		runner:     runner,
		logger:     log,
	}
}

// ScreenPicks groups one screen's picks in preset order.
type ScreenPicks struct {
	ScreenName  string            `json:"screen_name"`
	ScreenTitle string            `json:"screen_title"`
	Picks       []*contracts.Pick `json:"picks"`
}

// DailyBrief is the full morning report payload.
type DailyBrief struct {
	Run        *contracts.AnalysisRun            `json:"run"`
	MarketRisk *contracts.MarketRiskSnapshot     `json:"market_risk,omitempty"`
	Screens    []ScreenPicks                     `json:"screens"`
	Plans      map[string][]*contracts.TradePlan `json:"plans"`
	News       []*contracts.NewsArticle          `json:"news"`
}

// GetDailyBrief returns the latest completed run with picks, trade plans,
// market risk and headlines
// GET /api/daily-brief
func (h *BriefHandler) GetDailyBrief(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	run, err := h.runs.GetLatestCompleted(ctx)
	if errors.Is(err, contracts.ErrRunNotFound) {
		respondError(w, http.StatusNotFound, "No completed analysis run yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve latest run")
		return
	}

	picks, err := h.picks.GetByRun(ctx, run.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load picks")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve picks")
		return
	}

	brief := DailyBrief{
		Run:     run,
		Screens: groupByScreen(picks),
		Plans:   map[string][]*contracts.TradePlan{},
		News:    []*contracts.NewsArticle{},
	}

	tickers := make([]string, 0, len(picks))
	for _, p := range picks {
		tickers = append(tickers, p.Ticker)
	}

	if len(tickers) > 0 {
		plans, err := h.strategies.GetByTickersAndDate(ctx, tickers, run.RunDate)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to load trade plans")
		}
		for _, plan := range plans {
			brief.Plans[plan.Ticker] = append(brief.Plans[plan.Ticker], plan)
		}

		articles, err := h.news.GetByTickers(ctx, tickers, newsLimit)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to load news")
		} else if articles != nil {
			brief.News = articles
		}
	}

	snapshot, err := h.risk.GetLatest(ctx)
	if err != nil && !errors.Is(err, contracts.ErrDataUnavailable) {
		h.logger.WithError(err).Warn("Failed to load market risk")
	}
	brief.MarketRisk = snapshot

	respondJSON(w, http.StatusOK, brief)
}

// groupByScreen buckets picks into preset screen order.
func groupByScreen(picks []*contracts.Pick) []ScreenPicks {
	byScreen := map[string][]*contracts.Pick{}
	for _, p := range picks {
		byScreen[p.ScreenName] = append(byScreen[p.ScreenName], p)
	}

	var groups []ScreenPicks
	for _, screen := range screening.Presets() {
		if members, ok := byScreen[screen.Name]; ok {
			groups = append(groups, ScreenPicks{
				ScreenName:  screen.Name,
				ScreenTitle: screen.Title,
				Picks:       members,
			})
		}
	}
	return groups
}

// GetHistory returns completed runs in the lookback window, newest first
// GET /api/daily-brief/history?days=30
func (h *BriefHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			respondError(w, http.StatusBadRequest, "Invalid 'days' (expected 1-365)")
			return
		}
		days = parsed
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	runs, err := h.runs.ListCompletedSince(ctx, since)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list runs")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve run history")
		return
	}
	if runs == nil {
		runs = []*contracts.AnalysisRun{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"days": days,
		"runs": runs,
	})
}

// GetPicks returns the latest run's picks, optionally for one screen
// GET /api/daily-brief/picks?screen=magic_formula
func (h *BriefHandler) GetPicks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	screen := r.URL.Query().Get("screen")
	if screen != "" {
		if _, ok := screening.PresetByName(screen); !ok {
			respondError(w, http.StatusBadRequest, "Unknown screen: "+screen)
			return
		}
	}

	run, err := h.runs.GetLatestCompleted(ctx)
	if errors.Is(err, contracts.ErrRunNotFound) {
		respondError(w, http.StatusNotFound, "No completed analysis run yet")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load latest run")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve latest run")
		return
	}

	var picks []*contracts.Pick
	if screen != "" {
		picks, err = h.picks.GetByRunAndScreen(ctx, run.ID, screen)
	} else {
		picks, err = h.picks.GetByRun(ctx, run.ID)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to load picks")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve picks")
		return
	}
	if picks == nil {
		picks = []*contracts.Pick{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":   run.ID,
		"run_date": run.RunDate,
		"picks":    picks,
	})
}

// Trigger starts an analysis run in the background
// POST /api/daily-brief/trigger?force=true&date=2026-08-28
func (h *BriefHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'date' format (expected YYYY-MM-DD)")
			return
		}
		date = parsed
	}

	if h.runner.InProgress(date) {
		respondError(w, http.StatusConflict, "Analysis run already in progress for this date")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"date":  date.Format("2006-01-02"),
		"force": force,
	}).Info("Analysis run triggered via API")

	go func() {
		if _, _, err := h.runner.Run(context.Background(), date, force); err != nil {
			h.logger.WithError(err).Error("Triggered analysis run failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "started",
		"date":   date.Format("2006-01-02"),
		"force":  force,
	})
}

// ScreenInfo describes one preset screen.
type ScreenInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	WatchOnly   bool   `json:"watch_only"`
}

// GetScreens lists the preset screen definitions
// GET /api/screens
func (h *BriefHandler) GetScreens(w http.ResponseWriter, r *http.Request) {
	presets := screening.Presets()
	screens := make([]ScreenInfo, 0, len(presets))
	for _, s := range presets {
		screens = append(screens, ScreenInfo{
			Name:        s.Name,
			Title:       s.Title,
			Description: s.Description,
			WatchOnly:   s.WatchOnly,
		})
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"screens": screens})
}
