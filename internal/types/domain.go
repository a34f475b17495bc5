package types

import "time"

// Location represents a geographic coordinate with an optional display name.
type Location struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name,omitempty"`
}

// HourlySample is one timestamped forecast point as handed over by the data
// source. It is immutable once produced; all derived values are computed into
// new structures downstream.
//
// WindGustKmh of zero means "no gust reading": a literal zero measurement and
// an absent sensor are deliberately indistinguishable, matching the upstream
// data contract.
type HourlySample struct {
	Timestamp         time.Time `json:"timestamp"`
	TemperatureC      float64   `json:"temperature_c"`
	ApparentTempC     float64   `json:"apparent_temperature_c"`
	PrecipProbability float64   `json:"precipitation_probability"` // 0..1
	PrecipitationMM   float64   `json:"precipitation_mm"`          // mm/h
	WindSpeedKmh      float64   `json:"wind_speed_kmh"`
	WindGustKmh       float64   `json:"wind_gust_kmh"`
	WindDirectionDeg  float64   `json:"wind_direction_deg"`
	CloudCoverPct     float64   `json:"cloud_cover_percent"`
	WeatherCode       int       `json:"weather_code"`

	// Extended atmospheric fields for flight analysis. Nil when the provider
	// did not supply them; consumers fall back per the documented formulas.
	DewpointC            *float64 `json:"dewpoint_c,omitempty"`
	CAPEJkg              *float64 `json:"cape_jkg,omitempty"`
	LiftedIndexC         *float64 `json:"lifted_index_c,omitempty"`
	BoundaryLayerHeightM *float64 `json:"boundary_layer_height_m,omitempty"`
	ConvectiveInhibition *float64 `json:"convective_inhibition_jkg,omitempty"`
	WindSpeed80mKmh      *float64 `json:"wind_speed_80m_kmh,omitempty"`
	WindDir80mDeg        *float64 `json:"wind_direction_80m_deg,omitempty"`
	WindSpeed120mKmh     *float64 `json:"wind_speed_120m_kmh,omitempty"`
	WindDir120mDeg       *float64 `json:"wind_direction_120m_deg,omitempty"`
}

// ShiftWindow is a named pair of time-of-day intervals for a commute shift.
// All fields are "HH:MM" local wall-clock times without a date component.
//
// If ReturnStart is earlier in the day than OutboundStart, the return leg is
// understood to occur on the calendar day after the outbound leg.
type ShiftWindow struct {
	Name          string `json:"name" validate:"required,max=100"`
	OutboundStart string `json:"outbound_start" validate:"required,clocktime"`
	OutboundEnd   string `json:"outbound_end" validate:"required,clocktime"`
	ReturnStart   string `json:"return_start" validate:"required,clocktime"`
	ReturnEnd     string `json:"return_end" validate:"required,clocktime"`
}

// RideabilityVerdict is the graded output of commute scoring for one leg.
// It carries no identity and is recomputed per sample, never cached.
type RideabilityVerdict struct {
	Level  RideLevel `json:"level"`
	Marker string    `json:"marker"`
	Label  string    `json:"label"`
	Advice string    `json:"advice"`
}

// WindBand is a wind reading at one altitude band. Source distinguishes real
// telemetry from the fixed multiplicative fallback estimates; Basis names the
// fallback formula when Source is estimated.
type WindBand struct {
	SpeedKmh     float64       `json:"speed_kmh"`
	DirectionDeg float64       `json:"direction_deg"`
	Source       ReadingSource `json:"source"`
	Basis        string        `json:"basis,omitempty"`
}

// WindProfile is the multi-altitude wind picture derived for one hour.
// The high band is always an estimate and is excluded from the averages.
type WindProfile struct {
	Surface  WindBand `json:"surface"`
	Boundary WindBand `json:"boundary"`
	Mid      WindBand `json:"mid"`
	High     WindBand `json:"high"`

	AvgSpeedKmh        float64 `json:"avg_speed_kmh"`
	AvgDirectionDeg    float64 `json:"avg_direction_deg"`
	DirectionChangeDeg float64 `json:"direction_change_deg"`
}

// CloudBase describes the lifted condensation level (estimated cloud base).
type CloudBase struct {
	HeightAGLm  float64        `json:"height_agl_m"`
	TempC       float64        `json:"temperature_c"`
	PressureHPa float64        `json:"pressure_hpa"`
	Level       CloudBaseLevel `json:"level"`
}

// CAPEAnalysis is the classified convective available potential energy.
type CAPEAnalysis struct {
	ValueJkg float64   `json:"value_jkg"`
	Level    CAPELevel `json:"level"`
}

// LiftedIndexAnalysis is the classified atmospheric stability index.
type LiftedIndexAnalysis struct {
	Value float64        `json:"value"`
	Level StabilityLevel `json:"level"`
}

// FreeConvectionLevel describes the level of free convection, if any.
type FreeConvectionLevel struct {
	Exists    bool    `json:"exists"`
	HeightM   float64 `json:"height_m,omitempty"`
	Reachable bool    `json:"reachable"`
}

// WindShear holds the altitude-band shear magnitudes in m/s per km.
type WindShear struct {
	SurfaceToBoundary   float64    `json:"surface_to_boundary"`
	MidToHigh           float64    `json:"mid_to_high"`
	Max                 float64    `json:"max"`
	Level               ShearLevel `json:"level"`
	TurbulencePotential int        `json:"turbulence_potential"` // 0..10
}

// ThermalData is the derived thermal forecast for one hour.
type ThermalData struct {
	StrengthMS  float64 `json:"strength_ms"`
	TopsM       float64 `json:"tops_m"`
	SpacingM    float64 `json:"spacing_m"`
	Consistency float64 `json:"consistency"` // 0..1
	Index       int     `json:"index"`       // 0..10
}

// AtmosphericProfile is the full per-hour derivation that feeds flight
// scoring. It is pure function output: stateless and recomputed per query.
type AtmosphericProfile struct {
	CAPE                 CAPEAnalysis        `json:"cape"`
	CloudBase            CloudBase           `json:"cloud_base"`
	LFC                  FreeConvectionLevel `json:"lfc"`
	LiftedIndex          LiftedIndexAnalysis `json:"lifted_index"`
	Shear                WindShear           `json:"wind_shear"`
	Thermal              ThermalData         `json:"thermal"`
	Wind                 WindProfile         `json:"wind"`
	DewpointSpreadC      float64             `json:"dewpoint_spread_c"`
	BoundaryLayerHeightM float64             `json:"boundary_layer_height_m"`
}

// RiskFactor is one detected hazard. A given hour may carry zero to four
// simultaneous factors; their safety-score reductions are additive.
type RiskFactor struct {
	Name        string       `json:"name"`
	Severity    RiskSeverity `json:"severity"`
	Score       float64      `json:"score"` // 0..100
	Description string       `json:"description"`
	Mitigation  string       `json:"mitigation,omitempty"`
}

// RidgeSoaring is the ridge-lift sub-verdict for a launch orientation.
type RidgeSoaring struct {
	Suitable      bool    `json:"suitable"`
	AngleOffDeg   float64 `json:"angle_off_deg"`
	LeeSide       bool    `json:"lee_side"`
	LiftPotential float64 `json:"lift_potential"` // 0..10
}

// ThermalSoaring is the thermal-lift sub-verdict.
type ThermalSoaring struct {
	Suitable bool `json:"suitable"`
}

// WaveSoaring is the wave-lift sub-verdict. The amplitude estimate is purely
// illustrative.
type WaveSoaring struct {
	Possible   bool    `json:"possible"`
	AmplitudeM float64 `json:"amplitude_m,omitempty"`
}

// SoaringAnalysis groups the three lift-mechanism sub-verdicts.
type SoaringAnalysis struct {
	Ridge   RidgeSoaring   `json:"ridge"`
	Thermal ThermalSoaring `json:"thermal"`
	Wave    WaveSoaring    `json:"wave"`
}

// XCAnalysis is the cross-country potential estimate.
type XCAnalysis struct {
	Score               float64  `json:"score"` // 0..100
	DistancePotentialKm float64  `json:"distance_potential_km"`
	Confidence          float64  `json:"confidence"` // 0..1
	Rating              XCRating `json:"rating"`
}

// Recommendation summarizes the pilot-facing advice for the evaluated hour.
// This is a descending recommendation (lower score means more experience
// required), not a gate that blocks flight.
type Recommendation struct {
	Summary    string     `json:"summary"`
	PilotLevel PilotLevel `json:"pilot_level"`
	WingClass  WingClass  `json:"wing_class"`
}

// ParaglidingAnalysis is the aggregate flight verdict for one evaluated hour.
type ParaglidingAnalysis struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	Suitability    Suitability        `json:"suitability"`
	Score          float64            `json:"score"` // 0..100
	Profile        AtmosphericProfile `json:"profile"`
	Soaring        SoaringAnalysis    `json:"soaring"`
	XC             XCAnalysis         `json:"xc"`
	Risks          []RiskFactor       `json:"risks"`
	Warnings       []string           `json:"warnings"`
	Recommendation Recommendation     `json:"recommendation"`
}

// SiteRestrictions are optional hard limits attached to a launch site.
type SiteRestrictions struct {
	MinPilotLevel PilotLevel `json:"min_pilot_level,omitempty"`
	MaxWindKmh    float64    `json:"max_wind_kmh,omitempty"`
}

// LaunchSite is static reference data for a known launch. Distance to a query
// point is computed on demand and never stored on the entity.
type LaunchSite struct {
	Name           string            `json:"name"`
	Lat            float64           `json:"lat"`
	Lon            float64           `json:"lon"`
	ElevationM     float64           `json:"elevation_m"`
	OrientationDeg float64           `json:"orientation_deg"`
	WindDirections []string          `json:"wind_directions"` // compass labels
	Difficulty     SiteDifficulty    `json:"difficulty"`
	Features       []string          `json:"features,omitempty"`
	Restrictions   *SiteRestrictions `json:"restrictions,omitempty"`
}

// SiteMatch is a launch site with its computed relation to a query point.
type SiteMatch struct {
	Site       LaunchSite `json:"site"`
	DistanceKm float64    `json:"distance_km"`
	BearingDeg float64    `json:"bearing_deg"`
	Compass    string     `json:"compass"`
}
