package types

// RideLevel grades the rideability of a single commute leg.
// Severity is ordered: Good < Moderate < Critical < Bad.
type RideLevel string

const (
	RideGood     RideLevel = "good"
	RideModerate RideLevel = "moderate"
	RideCritical RideLevel = "critical"
	RideBad      RideLevel = "bad"
)

// rideSeverity orders ride levels for comparison; higher means worse.
var rideSeverity = map[RideLevel]int{
	RideGood:     0,
	RideModerate: 1,
	RideCritical: 2,
	RideBad:      3,
}

// Severity returns the ordinal severity of the level (0 = best).
func (l RideLevel) Severity() int {
	return rideSeverity[l]
}

// Suitability grades flying conditions for an evaluated hour.
// Ordered best to worst: optimal > good > marginal > poor > dangerous.
type Suitability string

const (
	SuitabilityOptimal   Suitability = "optimal"
	SuitabilityGood      Suitability = "good"
	SuitabilityMarginal  Suitability = "marginal"
	SuitabilityPoor      Suitability = "poor"
	SuitabilityDangerous Suitability = "dangerous"
)

// RiskSeverity is the 5-point ordinal severity of a detected risk factor.
type RiskSeverity string

const (
	RiskMinimal  RiskSeverity = "minimal"
	RiskLow      RiskSeverity = "low"
	RiskModerate RiskSeverity = "moderate"
	RiskHigh     RiskSeverity = "high"
	RiskExtreme  RiskSeverity = "extreme"
)

// PilotLevel is the minimum pilot experience recommended for the conditions.
type PilotLevel string

const (
	PilotNovice       PilotLevel = "novice"
	PilotIntermediate PilotLevel = "intermediate"
	PilotAdvanced     PilotLevel = "advanced"
	PilotExpert       PilotLevel = "expert"
)

// WingClass is the EN certification class recommended for the conditions.
type WingClass string

const (
	WingA WingClass = "A"
	WingB WingClass = "B"
	WingC WingClass = "C"
	WingD WingClass = "D"
)

// CAPELevel classifies raw CAPE (J/kg) into convective energy bands.
type CAPELevel string

const (
	CAPENone     CAPELevel = "none"
	CAPEWeak     CAPELevel = "weak"
	CAPEModerate CAPELevel = "moderate"
	CAPEStrong   CAPELevel = "strong"
	CAPEExtreme  CAPELevel = "extreme"
)

// StabilityLevel classifies the Lifted Index.
type StabilityLevel string

const (
	StabilityVeryStable   StabilityLevel = "very_stable"
	StabilityStable       StabilityLevel = "stable"
	StabilityNeutral      StabilityLevel = "neutral"
	StabilityUnstable     StabilityLevel = "unstable"
	StabilityVeryUnstable StabilityLevel = "very_unstable"
)

// CloudBaseLevel classifies the LCL height above ground.
type CloudBaseLevel string

const (
	CloudBaseVeryLow  CloudBaseLevel = "very_low"
	CloudBaseLow      CloudBaseLevel = "low"
	CloudBaseModerate CloudBaseLevel = "moderate"
	CloudBaseHigh     CloudBaseLevel = "high"
	CloudBaseVeryHigh CloudBaseLevel = "very_high"
)

// ShearLevel classifies the controlling wind shear magnitude (m/s per km).
type ShearLevel string

const (
	ShearLow      ShearLevel = "low"
	ShearModerate ShearLevel = "moderate"
	ShearHigh     ShearLevel = "high"
	ShearSevere   ShearLevel = "severe"
)

// XCRating grades cross-country potential.
type XCRating string

const (
	XCExcellent  XCRating = "excellent"
	XCGood       XCRating = "good"
	XCFair       XCRating = "fair"
	XCPoor       XCRating = "poor"
	XCUnsuitable XCRating = "unsuitable"
)

// ReadingSource distinguishes real telemetry from derived approximations in
// the multi-altitude wind profile.
type ReadingSource string

const (
	ReadingMeasured  ReadingSource = "measured"
	ReadingEstimated ReadingSource = "estimated"
)

// SiteDifficulty rates a launch site for pilot experience requirements.
type SiteDifficulty string

const (
	SiteBeginner     SiteDifficulty = "beginner"
	SiteIntermediate SiteDifficulty = "intermediate"
	SiteAdvanced     SiteDifficulty = "advanced"
	SiteExpert       SiteDifficulty = "expert"
)

// WindowHorizon identifies the scan range for best-window analysis.
type WindowHorizon string

const (
	Horizon3h  WindowHorizon = "3h"
	Horizon12h WindowHorizon = "12h"
	Horizon24h WindowHorizon = "24h"
)

// Hours returns the number of hours covered by the horizon, or 0 for an
// unrecognized value.
func (h WindowHorizon) Hours() int {
	switch h {
	case Horizon3h:
		return 3
	case Horizon12h:
		return 12
	case Horizon24h:
		return 24
	default:
		return 0
	}
}
