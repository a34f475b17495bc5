// Package atmosphere derives the per-hour atmospheric profile that feeds
// flight scoring: cloud base (LCL), convective energy classification (CAPE),
// stability (Lifted Index), level of free convection, a multi-altitude wind
// profile with shear, and thermal strength estimates.
//
// All calculations are pure closed-form approximations over a single hourly
// sample -- not a physically rigorous sounding model. None perform I/O and all
// outputs are freshly allocated, so everything here is safe to call
// concurrently.
package atmosphere

import (
	"math"

	"skycheck/internal/types"
)

// Physical constants for the closed-form approximations.
const (
	// lclSpreadRate is the classic cloud-base rule: 125 m of height per
	// degree of temperature/dewpoint spread.
	lclSpreadRate = 125.0

	// dryAdiabaticLapse is the dry adiabatic lapse rate in °C per km.
	dryAdiabaticLapse = 9.8

	// seaLevelPressureHPa is standard sea-level pressure.
	seaLevelPressureHPa = 1013.25

	// barometric formula parameters.
	barometricScaleM   = 44330.0
	barometricExponent = 5.255

	// lfcCAPEThreshold is the minimum CAPE for a level of free convection
	// to exist.
	lfcCAPEThreshold = 200.0

	// lfcOffsetM is the assumed height of the LFC above cloud base.
	lfcOffsetM = 300.0

	// lfcReachableM is the ceiling under which an existing LFC counts as
	// reachable from typical launch altitudes.
	lfcReachableM = 1500.0
)

// Fallbacks for absent optional fields. Values are deliberately conservative:
// no convective energy, neutral stability, a typical afternoon boundary
// layer, and a moderate dewpoint spread.
const (
	defaultCAPE            = 0.0
	defaultLiftedIndex     = 0.0
	defaultBoundaryLayerM  = 1500.0
	defaultDewpointSpreadC = 5.0
)

// BuildProfile derives the full atmospheric profile for one hourly sample at
// a site of the given elevation. Missing optional fields use the documented
// fallbacks rather than failing.
func BuildProfile(sample types.HourlySample, siteElevationM float64) types.AtmosphericProfile {
	cape := valueOr(sample.CAPEJkg, defaultCAPE)
	liftedIndex := valueOr(sample.LiftedIndexC, defaultLiftedIndex)
	blHeight := valueOr(sample.BoundaryLayerHeightM, defaultBoundaryLayerM)
	dewpoint := valueOr(sample.DewpointC, sample.TemperatureC-defaultDewpointSpreadC)

	cloudBase := CalculateCloudBase(sample.TemperatureC, dewpoint, siteElevationM)
	wind := BuildWindProfile(sample)

	hourOfDay := float64(sample.Timestamp.Hour()) + float64(sample.Timestamp.Minute())/60

	return types.AtmosphericProfile{
		CAPE:                 ClassifyCAPE(cape),
		CloudBase:            cloudBase,
		LFC:                  CalculateLFC(cape, cloudBase.HeightAGLm, blHeight),
		LiftedIndex:          ClassifyLiftedIndex(liftedIndex),
		Shear:                CalculateWindShear(wind),
		Thermal:              EstimateThermals(cape, hourOfDay, sample.TemperatureC, cloudBase.HeightAGLm, blHeight),
		Wind:                 wind,
		DewpointSpreadC:      sample.TemperatureC - dewpoint,
		BoundaryLayerHeightM: blHeight,
	}
}

// CalculateCloudBase estimates the lifted condensation level from the
// temperature/dewpoint spread using the 125 m per °C rule. Temperature at the
// LCL follows the dry adiabatic lapse rate; pressure uses the barometric
// formula against the LCL's absolute altitude.
func CalculateCloudBase(tempC, dewpointC, elevationM float64) types.CloudBase {
	spread := tempC - dewpointC
	heightAGL := spread * lclSpreadRate

	tempAtLCL := tempC - (heightAGL/1000)*dryAdiabaticLapse
	pressure := seaLevelPressureHPa * math.Pow(1-(heightAGL+elevationM)/barometricScaleM, barometricExponent)

	return types.CloudBase{
		HeightAGLm:  heightAGL,
		TempC:       tempAtLCL,
		PressureHPa: pressure,
		Level:       classifyCloudBase(heightAGL),
	}
}

// classifyCloudBase buckets an LCL height into bands. The bands are hard
// half-open intervals: 750 m grades very_low because the first boundary is a
// strict < 800.
func classifyCloudBase(heightAGLm float64) types.CloudBaseLevel {
	switch {
	case heightAGLm < 800:
		return types.CloudBaseVeryLow
	case heightAGLm < 1200:
		return types.CloudBaseLow
	case heightAGLm < 1800:
		return types.CloudBaseModerate
	case heightAGLm < 2500:
		return types.CloudBaseHigh
	default:
		return types.CloudBaseVeryHigh
	}
}

// ClassifyCAPE buckets raw CAPE into convective energy bands. Bands are
// half-open [lower, upper): exactly 1500 J/kg grades strong.
func ClassifyCAPE(valueJkg float64) types.CAPEAnalysis {
	var level types.CAPELevel
	switch {
	case valueJkg < 100:
		level = types.CAPENone
	case valueJkg < 500:
		level = types.CAPEWeak
	case valueJkg < 1500:
		level = types.CAPEModerate
	case valueJkg < 2500:
		level = types.CAPEStrong
	default:
		level = types.CAPEExtreme
	}
	return types.CAPEAnalysis{ValueJkg: valueJkg, Level: level}
}

// ClassifyLiftedIndex buckets the lifted index; more negative means more
// unstable and thermally favorable.
func ClassifyLiftedIndex(value float64) types.LiftedIndexAnalysis {
	var level types.StabilityLevel
	switch {
	case value > 2:
		level = types.StabilityVeryStable
	case value > 0:
		level = types.StabilityStable
	case value > -2:
		level = types.StabilityNeutral
	case value > -6:
		level = types.StabilityUnstable
	default:
		level = types.StabilityVeryUnstable
	}
	return types.LiftedIndexAnalysis{Value: value, Level: level}
}

// CalculateLFC derives the level of free convection. It exists only with
// CAPE above 200 J/kg; its height is capped by the boundary layer, and it
// counts as reachable below 1500 m.
func CalculateLFC(capeJkg, cloudBaseHeightM, boundaryLayerHeightM float64) types.FreeConvectionLevel {
	if capeJkg <= lfcCAPEThreshold {
		return types.FreeConvectionLevel{}
	}

	height := math.Min(cloudBaseHeightM+lfcOffsetM, boundaryLayerHeightM)
	return types.FreeConvectionLevel{
		Exists:    true,
		HeightM:   height,
		Reachable: height < lfcReachableM,
	}
}

// valueOr dereferences an optional field or returns the fallback.
func valueOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
