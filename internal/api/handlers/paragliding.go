package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skycheck/internal/core"
	"skycheck/internal/paragliding"
	"skycheck/internal/types"
)

// defaultAnalysisHours bounds how many forecast hours a single analysis
// request evaluates when the client does not say.
const (
	defaultAnalysisHours = 12
	maxAnalysisHours     = 48
)

// FlightAnalyzer produces flight verdicts for forecast hours.
type FlightAnalyzer interface {
	AnalyzeHour(sample types.HourlySample, site types.LaunchSite) types.ParaglidingAnalysis
	AnalyzeBatch(ctx context.Context, hourly []types.HourlySample, site types.LaunchSite) ([]types.ParaglidingAnalysis, error)
}

// SiteLookup resolves launch sites by name.
type SiteLookup interface {
	All() []types.LaunchSite
}

// ParaglidingHandler maps HTTP requests to flight analysis.
type ParaglidingHandler struct {
	forecast     HourlyProvider
	forecastDays int
	analyzer     FlightAnalyzer
	sites        SiteLookup
	logger       *slog.Logger
}

// NewParaglidingHandler creates a ParaglidingHandler with the provided
// dependencies.
func NewParaglidingHandler(
	forecast HourlyProvider,
	forecastDays int,
	analyzer FlightAnalyzer,
	sites SiteLookup,
	logger *slog.Logger,
) *ParaglidingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParaglidingHandler{
		forecast:     forecast,
		forecastDays: forecastDays,
		analyzer:     analyzer,
		sites:        sites,
		logger:       logger,
	}
}

// RegisterRoutes mounts the paragliding endpoints onto the mux.
func (h *ParaglidingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/analysis", h.HandleAnalysis)
	r.Get("/window", h.HandleBestWindow)
}

// analysisResponse is the payload of GET /v1/paragliding/analysis.
type analysisResponse struct {
	Site     types.LaunchSite            `json:"site"`
	Analyses []types.ParaglidingAnalysis `json:"analyses"`
}

// HandleAnalysis handles GET /v1/paragliding/analysis:
//  1. Resolve the launch site by name.
//  2. Fetch the hourly series at the site's coordinates.
//  3. Evaluate each hour concurrently and return the ordered verdicts.
//
// Query parameters: site (required), hours (optional, default 12, max 48).
func (h *ParaglidingHandler) HandleAnalysis(w http.ResponseWriter, r *http.Request) {
	site, err := h.resolveSite(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	hours := defaultAnalysisHours
	if raw := r.URL.Query().Get("hours"); raw != "" {
		hours, err = strconv.Atoi(raw)
		if err != nil || hours < 1 || hours > maxAnalysisHours {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationValueRange,
				"hours must be an integer between 1 and 48",
				err,
			))
			return
		}
	}

	hourly, err := h.forecast.GetHourly(r.Context(), site.Lat, site.Lon, h.forecastDays)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if len(hourly) > hours {
		hourly = hourly[:hours]
	}

	analyses, err := h.analyzer.AnalyzeBatch(r.Context(), hourly, site)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: analysisResponse{
		Site:     site,
		Analyses: analyses,
	}})
}

// windowResponse is the payload of GET /v1/paragliding/window.
type windowResponse struct {
	Site     types.LaunchSite          `json:"site"`
	Horizon  types.WindowHorizon       `json:"horizon"`
	Score    float64                   `json:"score"`
	Analysis types.ParaglidingAnalysis `json:"analysis"`
}

// HandleBestWindow handles GET /v1/paragliding/window:
//  1. Resolve the launch site and requested horizon.
//  2. Scan the hourly series for the highest-scoring daylight hour.
//  3. Return the full analysis of that hour, or 404 when no hour qualifies.
//
// Query parameters: site (required), horizon (optional, one of 3h/12h/24h,
// default 24h).
func (h *ParaglidingHandler) HandleBestWindow(w http.ResponseWriter, r *http.Request) {
	site, err := h.resolveSite(r)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	horizon := types.Horizon24h
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		horizon = types.WindowHorizon(raw)
		if horizon.Hours() == 0 {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationInvalidHorizon,
				"horizon must be one of 3h, 12h, 24h",
				nil,
			))
			return
		}
	}

	hourly, err := h.forecast.GetHourly(r.Context(), site.Lat, site.Lon, h.forecastDays)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	best := paragliding.BestWindow(hourly, horizon)
	if best == nil {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeNotFoundShift,
			"no flyable window within the requested horizon",
			nil,
		))
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: windowResponse{
		Site:     site,
		Horizon:  horizon,
		Score:    best.Score,
		Analysis: h.analyzer.AnalyzeHour(best.Sample, site),
	}})
}

// resolveSite looks up the launch site named in the query.
func (h *ParaglidingHandler) resolveSite(r *http.Request) (types.LaunchSite, error) {
	name := r.URL.Query().Get("site")
	if name == "" {
		return types.LaunchSite{}, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"site query parameter is required",
			nil,
		)
	}

	for _, site := range h.sites.All() {
		if site.Name == name {
			return site, nil
		}
	}

	return types.LaunchSite{}, types.NewAppErrorWithDetails(
		types.ErrCodeNotFoundSite,
		"no launch site with that name",
		nil,
		map[string]any{"site": name},
	)
}
