package atmosphere

import (
	"math"

	"skycheck/internal/types"
)

// Wind band estimation constants. The boundary and mid bands fall back to
// fixed multiples of the surface speed when the provider omits them; the high
// band (≈3000 m) is always an estimate and is never read from input.
const (
	boundaryFallbackFactor = 1.2
	midFallbackFactor      = 1.4
	highEstimateFactor     = 1.8
	highVeerOffsetDeg      = 20.0
)

// Shear classification constants, in m/s per km.
const (
	// shearBandKm is the assumed altitude-band size both speed deltas are
	// normalized over.
	shearBandKm = 1.0

	shearModerateThreshold = 5.0
	shearHighThreshold     = 10.0
	shearSevereThreshold   = 15.0
)

// kmhToMS converts km/h to m/s.
const kmhToMS = 1.0 / 3.6

// BuildWindProfile assembles the four-band wind picture for one sample.
// Surface comes straight from the sample; boundary and mid use the 80 m and
// 120 m readings when present and the fixed multiplicative fallbacks when
// not. The high band is always estimated as 1.8× surface speed veered +20°.
//
// Average speed and direction are the arithmetic means of the surface,
// boundary, and mid bands; the estimated high band is excluded from both.
func BuildWindProfile(sample types.HourlySample) types.WindProfile {
	surface := types.WindBand{
		SpeedKmh:     sample.WindSpeedKmh,
		DirectionDeg: sample.WindDirectionDeg,
		Source:       types.ReadingMeasured,
	}

	boundary := bandOrFallback(sample.WindSpeed80mKmh, sample.WindDir80mDeg, surface, boundaryFallbackFactor, "1.2x surface speed")
	mid := bandOrFallback(sample.WindSpeed120mKmh, sample.WindDir120mDeg, surface, midFallbackFactor, "1.4x surface speed")

	high := types.WindBand{
		SpeedKmh:     surface.SpeedKmh * highEstimateFactor,
		DirectionDeg: math.Mod(surface.DirectionDeg+highVeerOffsetDeg, 360),
		Source:       types.ReadingEstimated,
		Basis:        "1.8x surface speed, +20° veer",
	}

	return types.WindProfile{
		Surface:            surface,
		Boundary:           boundary,
		Mid:                mid,
		High:               high,
		AvgSpeedKmh:        (surface.SpeedKmh + boundary.SpeedKmh + mid.SpeedKmh) / 3,
		AvgDirectionDeg:    (surface.DirectionDeg + boundary.DirectionDeg + mid.DirectionDeg) / 3,
		DirectionChangeDeg: math.Abs(high.DirectionDeg - surface.DirectionDeg),
	}
}

// bandOrFallback builds a measured band from the optional speed/direction
// readings, or an estimated band from the surface when the speed is absent.
// A present speed with an absent direction keeps the surface direction.
func bandOrFallback(speed, dir *float64, surface types.WindBand, factor float64, basis string) types.WindBand {
	if speed == nil {
		return types.WindBand{
			SpeedKmh:     surface.SpeedKmh * factor,
			DirectionDeg: surface.DirectionDeg,
			Source:       types.ReadingEstimated,
			Basis:        basis,
		}
	}

	band := types.WindBand{
		SpeedKmh:     *speed,
		DirectionDeg: surface.DirectionDeg,
		Source:       types.ReadingMeasured,
	}
	if dir != nil {
		band.DirectionDeg = *dir
	}
	return band
}

// CalculateWindShear derives the controlling shear magnitude from the
// surface→boundary and mid→high speed deltas, both converted to m/s and
// normalized over the assumed 1 km band. Turbulence potential scales the
// controlling shear onto a 0–10 integer.
func CalculateWindShear(wind types.WindProfile) types.WindShear {
	surfaceToBoundary := math.Abs(wind.Boundary.SpeedKmh-wind.Surface.SpeedKmh) * kmhToMS / shearBandKm
	midToHigh := math.Abs(wind.High.SpeedKmh-wind.Mid.SpeedKmh) * kmhToMS / shearBandKm

	maxShear := math.Max(surfaceToBoundary, midToHigh)

	var level types.ShearLevel
	switch {
	case maxShear < shearModerateThreshold:
		level = types.ShearLow
	case maxShear < shearHighThreshold:
		level = types.ShearModerate
	case maxShear < shearSevereThreshold:
		level = types.ShearHigh
	default:
		level = types.ShearSevere
	}

	return types.WindShear{
		SurfaceToBoundary:   surfaceToBoundary,
		MidToHigh:           midToHigh,
		Max:                 maxShear,
		Level:               level,
		TurbulencePotential: int(math.Round(math.Min(10, maxShear/shearSevereThreshold*10))),
	}
}
