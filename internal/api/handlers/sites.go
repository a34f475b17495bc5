package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"skycheck/internal/core"
	"skycheck/internal/types"
)

// defaultSiteQueryKm is the search radius applied when the client does not
// pass one.
const defaultSiteQueryKm = 100.0

// SiteFinder answers proximity queries over the launch-site table.
type SiteFinder interface {
	All() []types.LaunchSite
	Nearby(lat, lon, maxDistanceKm float64) []types.SiteMatch
}

// SitesHandler maps HTTP requests to launch-site queries.
type SitesHandler struct {
	finder SiteFinder
	logger *slog.Logger
}

// NewSitesHandler creates a SitesHandler with the provided dependencies.
func NewSitesHandler(finder SiteFinder, logger *slog.Logger) *SitesHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SitesHandler{finder: finder, logger: logger}
}

// RegisterRoutes mounts the site endpoints onto the mux.
func (h *SitesHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleList)
}

// sitesResponse is the payload of GET /v1/sites.
type sitesResponse struct {
	Sites []types.SiteMatch `json:"sites"`
}

// allSitesResponse is the payload when no coordinates are given.
type allSitesResponse struct {
	Sites []types.LaunchSite `json:"sites"`
}

// HandleList handles GET /v1/sites. Without coordinates it lists the full
// site table; with lat and lon it returns proximity matches sorted by
// distance. Query parameters: lat, lon (paired), max_km (optional, default
// 100, capped at 500).
func (h *SitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")

	if latStr == "" && lonStr == "" {
		core.JSON(w, r, http.StatusOK, core.APIResponse{Data: allSitesResponse{Sites: h.finder.All()}})
		return
	}

	if latStr == "" || lonStr == "" {
		core.Error(w, r, types.NewAppError(
			types.ErrCodeValidationMissingField,
			"lat and lon must be provided together",
			nil,
		))
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidLat, "lat must be a valid number", err))
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidLon, "lon must be a valid number", err))
		return
	}
	if err := types.ValidateLocation(lat, lon); err != nil {
		core.Error(w, r, err)
		return
	}

	maxKm := defaultSiteQueryKm
	if raw := q.Get("max_km"); raw != "" {
		maxKm, err = strconv.ParseFloat(raw, 64)
		if err != nil || maxKm <= 0 || maxKm > types.MaxSiteQueryKm {
			core.Error(w, r, types.NewAppError(
				types.ErrCodeValidationInvalidDistance,
				"max_km must be a positive number no greater than 500",
				err,
			))
			return
		}
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: sitesResponse{
		Sites: h.finder.Nearby(lat, lon, maxKm),
	}})
}
