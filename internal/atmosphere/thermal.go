package atmosphere

import (
	"math"

	"skycheck/internal/types"
)

// Thermal estimation constants.
const (
	// Thermal activity is assumed zero outside [10,17] local hours, peaking
	// at 13:30.
	thermalStartHour = 10.0
	thermalEndHour   = 17.0
	thermalSpanHours = 7.0

	// Temperature multipliers are cumulative: a 26 °C hour gets both.
	warmBoostTempC   = 20.0
	warmBoostFactor  = 1.1
	hotBoostTempC    = 25.0
	hotBoostFactor   = 1.2

	// Inter-thermal spacing as a multiple of thermal-top height.
	spacingFactor = 1.5
)

// EstimateThermals derives thermal strength, tops, spacing, consistency, and
// the 0–10 thermal index for one hour.
//
// The base strength estimate sqrt(2*CAPE/1000) is scaled by a bell-curve
// time-of-day factor and boosted for warm ground. Thermal tops are capped by
// both cloud base and the boundary layer.
func EstimateThermals(capeJkg, hourOfDay, tempC, cloudBaseM, boundaryLayerM float64) types.ThermalData {
	strength := math.Sqrt(2 * capeJkg / 1000)
	strength *= timeOfDayFactor(hourOfDay)
	if tempC > warmBoostTempC {
		strength *= warmBoostFactor
	}
	if tempC > hotBoostTempC {
		strength *= hotBoostFactor
	}

	tops := math.Min(cloudBaseM, boundaryLayerM)
	spacing := (tops / 1000) * spacingFactor * 1000

	consistency := thermalConsistency(capeJkg)

	return types.ThermalData{
		StrengthMS:  strength,
		TopsM:       tops,
		SpacingM:    spacing,
		Consistency: consistency,
		Index:       thermalIndex(strength, consistency),
	}
}

// timeOfDayFactor is the bell curve over the thermal window: zero outside
// [10,17], peaking at 1.0 at 13:30.
func timeOfDayFactor(hour float64) float64 {
	if hour < thermalStartHour || hour > thermalEndHour {
		return 0
	}
	return math.Sin((hour - thermalStartHour) / thermalSpanHours * math.Pi)
}

// thermalConsistency is a step function of CAPE. Moderate convective energy
// produces the steadiest thermals; extreme CAPE means broken, turbulent
// cycles. CAPE at or below 500 keeps the 0.5 default.
func thermalConsistency(capeJkg float64) float64 {
	switch {
	case capeJkg > 2500:
		return 0.3
	case capeJkg > 1500:
		return 0.6
	case capeJkg > 500:
		return 0.8
	default:
		return 0.5
	}
}

// thermalIndex grades strength onto a 0–10 scale. The top score requires
// both strong lift and better-than-default consistency; strength alone caps
// at 9.
func thermalIndex(strengthMS, consistency float64) int {
	switch {
	case strengthMS >= 2.5 && consistency > 0.5:
		return 10
	case strengthMS >= 2.0:
		return 9
	case strengthMS >= 1.5:
		return 7
	case strengthMS >= 1.0:
		return 5
	case strengthMS >= 0.5:
		return 3
	default:
		return 1
	}
}
