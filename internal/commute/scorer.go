package commute

import "skycheck/internal/types"

// gustDiscount discounts gust duration versus sustained wind when computing
// the effective wind hazard.
const gustDiscount = 0.8

// legConditions are the derived inputs the verdict cascade evaluates.
type legConditions struct {
	popPercent    float64 // precipitation probability, 0..100
	rainMM        float64 // precipitation rate, mm/h
	tempC         float64
	effectiveWind float64 // km/h
}

// adviceRule pairs a predicate with the advice text selected when it is the
// first matching rule of the winning level.
type adviceRule struct {
	match  func(legConditions) bool
	advice string
}

// levelSpec is one step of the verdict cascade: a severity level, its fixed
// marker/label strings, and the ordered rules that trigger it.
type levelSpec struct {
	level  types.RideLevel
	marker string
	label  string
	rules  []adviceRule
}

// rideCascade is evaluated top-down, first match wins. The ordering encodes
// the most-severe-first contract: a sample matching both a Bad and a Critical
// condition must grade Bad.
var rideCascade = []levelSpec{
	{
		level:  types.RideBad,
		marker: "⛔",
		label:  "Not rideable",
		rules: []adviceRule{
			{func(c legConditions) bool { return c.popPercent > 80 }, "Rain is near certain. Take the train or work from home."},
			{func(c legConditions) bool { return c.rainMM > 5 }, "Heavy rain. Roads will be treacherous; avoid riding."},
			{func(c legConditions) bool { return c.tempC <= -3 }, "Dangerous cold with ice risk. Do not ride."},
			{func(c legConditions) bool { return c.effectiveWind > 58 }, "Storm-force wind or gusts. Stay off the bike."},
		},
	},
	{
		level:  types.RideCritical,
		marker: "🔴",
		label:  "Critical",
		rules: []adviceRule{
			{func(c legConditions) bool { return c.popPercent >= 60 && c.popPercent <= 80 }, "Rain is likely. Pack full rain gear and lights."},
			{func(c legConditions) bool { return c.rainMM >= 2 && c.rainMM <= 5 }, "Steady rain expected. Fenders and rain gear required."},
			{func(c legConditions) bool { return c.effectiveWind >= 43 && c.effectiveWind <= 58 }, "Strong wind. Expect hard gusts on exposed stretches."},
			{func(c legConditions) bool { return c.tempC > -3 && c.tempC <= 0 }, "Around freezing. Watch for black ice on bridges and shade."},
		},
	},
	{
		level:  types.RideModerate,
		marker: "🟡",
		label:  "Manageable",
		rules: []adviceRule{
			{func(c legConditions) bool { return c.popPercent >= 20 && c.popPercent < 60 }, "Some rain risk. A packable jacket is enough."},
			{func(c legConditions) bool { return c.rainMM >= 0.5 && c.rainMM < 2 }, "Light drizzle possible. You may get a bit wet."},
			{func(c legConditions) bool { return c.effectiveWind >= 29 && c.effectiveWind < 43 }, "Noticeable headwind. Plan a few extra minutes."},
		},
	},
}

// goodAdvice is the fixed fallback advice when no cascade rule matches.
const goodAdvice = "Ideal conditions for the ride."

// EffectiveWindKmh returns the gust-discounted wind value used for hazard
// assessment: max(windSpeed, windGust*0.8) when a positive gust reading is
// present, otherwise the sustained wind. A zero gust reading is treated the
// same as an absent one.
func EffectiveWindKmh(sample types.HourlySample) float64 {
	if sample.WindGustKmh > 0 {
		discounted := sample.WindGustKmh * gustDiscount
		if discounted > sample.WindSpeedKmh {
			return discounted
		}
	}
	return sample.WindSpeedKmh
}

// Evaluate maps one weather sample to a rideability verdict. It is a
// deterministic, total function: every real-valued input maps to exactly one
// of the four levels because the cascade is evaluated most severe first.
func Evaluate(sample types.HourlySample) types.RideabilityVerdict {
	conds := legConditions{
		popPercent:    sample.PrecipProbability * 100,
		rainMM:        sample.PrecipitationMM,
		tempC:         sample.TemperatureC,
		effectiveWind: EffectiveWindKmh(sample),
	}

	for _, spec := range rideCascade {
		for _, rule := range spec.rules {
			if rule.match(conds) {
				return types.RideabilityVerdict{
					Level:  spec.level,
					Marker: spec.marker,
					Label:  spec.label,
					Advice: rule.advice,
				}
			}
		}
	}

	return types.RideabilityVerdict{
		Level:  types.RideGood,
		Marker: "✅",
		Label:  "Good to ride",
		Advice: goodAdvice,
	}
}

// ClothingAdvice is an independent pure function of temperature alone. It is
// not part of the rideability cascade; callers compose it with the verdict.
// An empty string means no special clothing note.
func ClothingAdvice(tempC float64) string {
	switch {
	case tempC < 0:
		return "Winter kit: thermal layers, winter gloves, and overshoes."
	case tempC < 5:
		return "Cold ride: long sleeves, gloves, and a windproof layer."
	case tempC > 25:
		return "Hot ride: light clothing and plenty of water."
	default:
		return ""
	}
}
