// Package handlers contains the HTTP handler implementations for the
// skycheck API. Each handler defines its service contracts locally and
// receives them by injection; handlers never construct their dependencies.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"skycheck/internal/commute"
	"skycheck/internal/core"
	"skycheck/internal/types"
)

// requestDateLayout is the wire format for calendar dates.
const requestDateLayout = "2006-01-02"

// HourlyProvider supplies the hourly forecast series for a coordinate.
type HourlyProvider interface {
	GetHourly(ctx context.Context, lat, lon float64, days int) ([]types.HourlySample, error)
}

// CommuteHandler maps HTTP requests to commute shift evaluation.
type CommuteHandler struct {
	forecast     HourlyProvider
	forecastDays int
	defaultShift types.ShiftWindow
	validator    *core.Validator
	logger       *slog.Logger
}

// NewCommuteHandler creates a CommuteHandler with the provided dependencies.
func NewCommuteHandler(
	forecast HourlyProvider,
	forecastDays int,
	defaultShift types.ShiftWindow,
	val *core.Validator,
	logger *slog.Logger,
) *CommuteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommuteHandler{
		forecast:     forecast,
		forecastDays: forecastDays,
		defaultShift: defaultShift,
		validator:    val,
		logger:       logger,
	}
}

// RegisterRoutes mounts the commute endpoints onto the mux.
func (h *CommuteHandler) RegisterRoutes(r chi.Router) {
	r.Post("/evaluate", h.HandleEvaluate)
}

// evaluateRequest is the body of POST /v1/commute/evaluate. Shift is
// optional; when absent the configured default window applies.
type evaluateRequest struct {
	Lat   float64            `json:"lat"`
	Lon   float64            `json:"lon"`
	Date  string             `json:"date"`
	Shift *types.ShiftWindow `json:"shift,omitempty"`
}

// evaluateResponse is the payload of a successful shift evaluation.
type evaluateResponse struct {
	Date     string              `json:"date"`
	Location types.Location      `json:"location"`
	Report   commute.ShiftReport `json:"report"`
}

// HandleEvaluate handles POST /v1/commute/evaluate:
//  1. Decode and validate the request body.
//  2. Fetch the hourly series for the coordinate.
//  3. Evaluate both legs of the shift against the series.
func (h *CommuteHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := types.ValidateLocation(req.Lat, req.Lon); err != nil {
		core.Error(w, r, err)
		return
	}

	if req.Date == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"date is required",
			nil,
		))
		return
	}
	date, err := time.Parse(requestDateLayout, req.Date)
	if err != nil {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationInvalidDate,
			"date must be formatted YYYY-MM-DD",
			err,
		))
		return
	}

	shift := h.defaultShift
	if req.Shift != nil {
		if err := h.validator.ValidateStruct(*req.Shift); err != nil {
			core.Error(w, r, err)
			return
		}
		shift = *req.Shift
	}

	hourly, err := h.forecast.GetHourly(r.Context(), req.Lat, req.Lon, h.forecastDays)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	report, err := commute.EvaluateShift(hourly, date, shift)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: evaluateResponse{
		Date:     req.Date,
		Location: types.Location{Lat: req.Lat, Lon: req.Lon},
		Report:   report,
	}})
}
