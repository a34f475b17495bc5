// Package paragliding turns the derived atmospheric profile into flight
// verdicts: ridge/thermal/wave soaring suitability, cross-country potential,
// discrete risk factors with an overall safety score, and a best-window scan
// over a longer horizon.
//
// Like the profile derivation it consumes, everything here is pure and
// stateless; per-hour batch evaluation is parallelized without locking
// because no state is shared across hours.
package paragliding

import (
	"math"

	"skycheck/internal/types"
)

// Ridge soaring thresholds.
const (
	ridgeMaxAngleDeg   = 45.0
	leeSideAngleDeg    = 90.0
	ridgeMinWindKmh    = 10.0
	ridgeMaxWindKmh    = 35.0
	ridgeLiftPeakKmh   = 25.0
)

// Thermal soaring thresholds.
const (
	thermalMinStrengthMS = 0.8
	thermalMinIndex      = 5
)

// Wave soaring thresholds. The amplitude estimate is purely illustrative.
const (
	waveMinAvgWindKmh     = 20.0
	waveMaxDirChangeDeg   = 30.0
	waveAmplitudeFactor   = 30.0
)

// AngleOffOrientation returns the unsigned angular difference between the
// wind direction and a launch orientation, folded into [0,180].
func AngleOffOrientation(windDirDeg, orientationDeg float64) float64 {
	d := math.Mod(windDirDeg-orientationDeg+180, 360)
	if d < 0 {
		d += 360
	}
	return math.Abs(d - 180)
}

// AnalyzeRidge judges ridge-lift suitability for a launch orientation.
// An angle beyond 90° marks the site as lee side, a distinct and more severe
// condition than merely unsuitable.
func AnalyzeRidge(windDirDeg, surfaceWindKmh, orientationDeg float64) types.RidgeSoaring {
	angle := AngleOffOrientation(windDirDeg, orientationDeg)

	suitable := angle < ridgeMaxAngleDeg &&
		surfaceWindKmh > ridgeMinWindKmh &&
		surfaceWindKmh < ridgeMaxWindKmh

	lift := 0.0
	if suitable {
		lift = math.Min(10, surfaceWindKmh/ridgeLiftPeakKmh*10)
	}

	return types.RidgeSoaring{
		Suitable:      suitable,
		AngleOffDeg:   angle,
		LeeSide:       angle > leeSideAngleDeg,
		LiftPotential: lift,
	}
}

// AnalyzeThermalSoaring judges thermal-lift suitability from the thermal
// forecast.
func AnalyzeThermalSoaring(thermal types.ThermalData) types.ThermalSoaring {
	return types.ThermalSoaring{
		Suitable: thermal.StrengthMS > thermalMinStrengthMS && thermal.Index >= thermalMinIndex,
	}
}

// AnalyzeWave judges whether wave lift is possible: strong average wind with
// little directional change across bands.
func AnalyzeWave(wind types.WindProfile) types.WaveSoaring {
	possible := wind.AvgSpeedKmh > waveMinAvgWindKmh && wind.DirectionChangeDeg < waveMaxDirChangeDeg

	wave := types.WaveSoaring{Possible: possible}
	if possible {
		wave.AmplitudeM = wind.AvgSpeedKmh * waveAmplitudeFactor
	}
	return wave
}
