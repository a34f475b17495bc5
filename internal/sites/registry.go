package sites

import (
	"sort"

	"skycheck/internal/types"
)

// Registry answers proximity queries over a fixed launch-site table. The
// table is copied at construction and never mutated afterwards, so a
// Registry is safe for concurrent use.
type Registry struct {
	sites []types.LaunchSite
}

// NewRegistry builds a registry over the given site table. Pass nil to use
// the built-in defaults.
func NewRegistry(table []types.LaunchSite) *Registry {
	if table == nil {
		table = DefaultSites()
	}
	sites := make([]types.LaunchSite, len(table))
	copy(sites, table)
	return &Registry{sites: sites}
}

// All returns a copy of the full site table.
func (r *Registry) All() []types.LaunchSite {
	out := make([]types.LaunchSite, len(r.sites))
	copy(out, r.sites)
	return out
}

// Nearby returns every site within maxDistanceKm of the query point, with
// computed distance, initial bearing, and compass label, sorted ascending by
// distance. An empty result is a valid answer, not an error.
func (r *Registry) Nearby(lat, lon, maxDistanceKm float64) []types.SiteMatch {
	matches := make([]types.SiteMatch, 0, len(r.sites))
	for _, site := range r.sites {
		d := HaversineKm(lat, lon, site.Lat, site.Lon)
		if d > maxDistanceKm {
			continue
		}
		bearing := InitialBearingDeg(lat, lon, site.Lat, site.Lon)
		matches = append(matches, types.SiteMatch{
			Site:       site,
			DistanceKm: d,
			BearingDeg: bearing,
			Compass:    CompassLabel(bearing),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches
}

// DefaultSites returns the built-in launch-site table covering well-known
// German flying areas. Callers receive a fresh slice on every call.
func DefaultSites() []types.LaunchSite {
	return []types.LaunchSite{
		{
			Name:           "Wasserkuppe",
			Lat:            50.498,
			Lon:            9.943,
			ElevationM:     902,
			OrientationDeg: 270,
			WindDirections: []string{"W", "WSW", "WNW"},
			Difficulty:     types.SiteBeginner,
			Features:       []string{"training slopes", "winch operations", "flight school"},
		},
		{
			Name:           "Brauneck",
			Lat:            47.673,
			Lon:            11.545,
			ElevationM:     1555,
			OrientationDeg: 0,
			WindDirections: []string{"N", "NNW", "NNE"},
			Difficulty:     types.SiteIntermediate,
			Features:       []string{"cable car access", "alpine thermals"},
		},
		{
			Name:           "Tegelberg",
			Lat:            47.569,
			Lon:            10.772,
			ElevationM:     1720,
			OrientationDeg: 315,
			WindDirections: []string{"NW", "WNW", "NNW"},
			Difficulty:     types.SiteIntermediate,
			Features:       []string{"cable car access", "official landing field"},
		},
		{
			Name:           "Wallberg",
			Lat:            47.655,
			Lon:            11.788,
			ElevationM:     1622,
			OrientationDeg: 315,
			WindDirections: []string{"NW", "W", "N"},
			Difficulty:     types.SiteAdvanced,
			Features:       []string{"cable car access", "strong spring thermals"},
			Restrictions: &types.SiteRestrictions{
				MinPilotLevel: types.PilotIntermediate,
				MaxWindKmh:    30,
			},
		},
		{
			Name:           "Blomberg",
			Lat:            47.699,
			Lon:            11.524,
			ElevationM:     1248,
			OrientationDeg: 45,
			WindDirections: []string{"NE", "N", "E"},
			Difficulty:     types.SiteBeginner,
			Features:       []string{"chair lift access", "gentle evening flights"},
		},
		{
			Name:           "Hochries",
			Lat:            47.752,
			Lon:            12.249,
			ElevationM:     1569,
			OrientationDeg: 0,
			WindDirections: []string{"N", "NNE", "NNW"},
			Difficulty:     types.SiteIntermediate,
			Features:       []string{"cable car access", "XC classic toward the east"},
		},
	}
}
