package paragliding

import (
	"fmt"
	"math"

	"skycheck/internal/types"
)

// Risk detection thresholds.
const (
	leeMinWindKmh     = 15.0
	leeHighWindKmh    = 20.0
	leeExtremeWindKmh = 30.0

	gustFactorThreshold = 1.6
	gustTriggerKmh      = 40.0
	gustExtremeKmh      = 50.0

	thermalTurbCAPE        = 2000.0
	thermalTurbHighCAPE    = 3000.0
	thermalTurbConsistency = 0.5
)

// Safety-score reductions per detected risk, by severity. Reductions are
// cumulative across all detected risks.
var severityReduction = map[types.RiskSeverity]float64{
	types.RiskExtreme:  50,
	types.RiskHigh:     30,
	types.RiskModerate: 15,
	types.RiskLow:      5,
}

// severityScore maps a severity onto the 0–100 risk-factor score.
var severityScore = map[types.RiskSeverity]float64{
	types.RiskMinimal:  5,
	types.RiskLow:      20,
	types.RiskModerate: 45,
	types.RiskHigh:     70,
	types.RiskExtreme:  90,
}

// calmAirBonus is added back when strong organized thermals meet low shear.
const calmAirBonus = 10.0

// DetectLeeRisk flags lee-side turbulence: wind from behind the launch
// orientation at meaningful strength. Nil means no risk detected.
func DetectLeeRisk(angleOffDeg, surfaceWindKmh float64) *types.RiskFactor {
	if angleOffDeg <= leeSideAngleDeg || surfaceWindKmh <= leeMinWindKmh {
		return nil
	}

	severity := types.RiskModerate
	switch {
	case surfaceWindKmh > leeExtremeWindKmh:
		severity = types.RiskExtreme
	case surfaceWindKmh > leeHighWindKmh:
		severity = types.RiskHigh
	}

	return &types.RiskFactor{
		Name:        "lee_side_turbulence",
		Severity:    severity,
		Score:       severityScore[severity],
		Description: fmt.Sprintf("wind %.0f km/h from %.0f° off launch orientation puts the site in the lee", surfaceWindKmh, angleOffDeg),
		Mitigation:  "do not launch; rotor turbulence behind the ridge is unforgiving",
	}
}

// DetectGustRisk flags gusty air from the gust factor or absolute gust
// speed. The denominator is floored at 1 km/h so a calm-average hour with a
// real gust reading still computes.
func DetectGustRisk(avgWindKmh, gustKmh float64) *types.RiskFactor {
	gustFactor := gustKmh / math.Max(avgWindKmh, 1)
	if gustFactor <= gustFactorThreshold && gustKmh <= gustTriggerKmh {
		return nil
	}

	severity := types.RiskModerate
	switch {
	case gustKmh > gustExtremeKmh:
		severity = types.RiskExtreme
	case gustKmh > gustTriggerKmh:
		severity = types.RiskHigh
	}

	return &types.RiskFactor{
		Name:        "gust_factor",
		Severity:    severity,
		Score:       severityScore[severity],
		Description: fmt.Sprintf("gusts to %.0f km/h over %.0f km/h average (factor %.1f)", gustKmh, avgWindKmh, gustFactor),
		Mitigation:  "expect collapses near terrain; fly with extra clearance or wait",
	}
}

// DetectThermalTurbulence flags rough, disorganized convection: high CAPE
// with broken thermal cycles.
func DetectThermalTurbulence(capeJkg, consistency float64) *types.RiskFactor {
	if capeJkg <= thermalTurbCAPE || consistency >= thermalTurbConsistency {
		return nil
	}

	severity := types.RiskModerate
	if capeJkg > thermalTurbHighCAPE {
		severity = types.RiskHigh
	}

	return &types.RiskFactor{
		Name:        "thermal_turbulence",
		Severity:    severity,
		Score:       severityScore[severity],
		Description: fmt.Sprintf("CAPE %.0f J/kg with broken thermal cycles; expect sharp-edged lift and overdevelopment", capeJkg),
		Mitigation:  "land before the overdevelopment cycle; avoid cloud suck",
	}
}

// DetectShearRisk flags elevated wind shear from the profile classification.
func DetectShearRisk(shear types.WindShear) *types.RiskFactor {
	if shear.Level != types.ShearHigh && shear.Level != types.ShearSevere {
		return nil
	}

	severity := types.RiskModerate
	if shear.Level == types.ShearSevere {
		severity = types.RiskHigh
	}

	return &types.RiskFactor{
		Name:        "wind_shear",
		Severity:    severity,
		Score:       severityScore[severity],
		Description: fmt.Sprintf("wind shear %.1f m/s per km between altitude bands", shear.Max),
		Mitigation:  "expect turbulence transitioning between wind layers",
	}
}

// AssessRisks runs all four detectors and combines the findings into the
// overall safety score. The score starts at 100, loses the per-severity
// reduction for every detected risk, gains the calm-air bonus when strong
// organized thermals meet low shear, and is finally clamped to [0,100].
func AssessRisks(profile types.AtmosphericProfile, angleOffDeg, gustKmh float64) ([]types.RiskFactor, float64) {
	var risks []types.RiskFactor

	if r := DetectLeeRisk(angleOffDeg, profile.Wind.Surface.SpeedKmh); r != nil {
		risks = append(risks, *r)
	}
	if r := DetectGustRisk(profile.Wind.AvgSpeedKmh, gustKmh); r != nil {
		risks = append(risks, *r)
	}
	if r := DetectThermalTurbulence(profile.CAPE.ValueJkg, profile.Thermal.Consistency); r != nil {
		risks = append(risks, *r)
	}
	if r := DetectShearRisk(profile.Shear); r != nil {
		risks = append(risks, *r)
	}

	score := 100.0
	for _, r := range risks {
		score -= severityReduction[r.Severity]
	}
	if profile.Thermal.Index > 7 && profile.Shear.Level == types.ShearLow {
		score += calmAirBonus
	}

	score = math.Max(0, math.Min(100, score))
	return risks, score
}

// SuitabilityForScore buckets the safety score into the 5-level verdict.
func SuitabilityForScore(score float64) types.Suitability {
	switch {
	case score >= 80:
		return types.SuitabilityOptimal
	case score >= 60:
		return types.SuitabilityGood
	case score >= 40:
		return types.SuitabilityMarginal
	case score >= 20:
		return types.SuitabilityPoor
	default:
		return types.SuitabilityDangerous
	}
}

// Recommend derives the pilot-level and wing-class recommendation. This is a
// descending recommendation: the lower the score, the more experience the
// conditions demand. It does not gate flight.
func Recommend(score float64, risks []types.RiskFactor, shearLevel types.ShearLevel, suitability types.Suitability) types.Recommendation {
	anyExtreme := false
	for _, r := range risks {
		if r.Severity == types.RiskExtreme {
			anyExtreme = true
			break
		}
	}

	var pilot types.PilotLevel
	var wing types.WingClass
	switch {
	case score < 40 || anyExtreme:
		pilot, wing = types.PilotExpert, types.WingD
	case score < 60 || shearLevel == types.ShearHigh:
		pilot, wing = types.PilotAdvanced, types.WingC
	case score < 75:
		pilot, wing = types.PilotIntermediate, types.WingB
	default:
		pilot, wing = types.PilotNovice, types.WingA
	}

	summary := fmt.Sprintf("%s conditions (safety %d/100)", suitability, int(score))
	if len(risks) > 0 {
		summary = fmt.Sprintf("%s, %d active risk factor(s)", summary, len(risks))
	}

	return types.Recommendation{
		Summary:    summary,
		PilotLevel: pilot,
		WingClass:  wing,
	}
}
