package paragliding

import (
	"math"

	"skycheck/internal/types"
)

// assumedGlideRatio feeds the distance-potential estimate.
const assumedGlideRatio = 8.0

// AnalyzeXC scores cross-country potential from thermal quality, cloud base,
// and average wind. The score is additive over independent contributions;
// distance potential assumes a glide ratio of 8 from cloud base plus drift
// gained from thermal strength.
func AnalyzeXC(thermal types.ThermalData, cloudBaseM, avgWindKmh float64) types.XCAnalysis {
	score := 0.0

	switch {
	case thermal.StrengthMS > 1.5:
		score += 30
	case thermal.StrengthMS > 1.0:
		score += 20
	case thermal.StrengthMS > 0.5:
		score += 10
	}

	switch {
	case cloudBaseM > 1800:
		score += 25
	case cloudBaseM > 1400:
		score += 15
	case cloudBaseM > 1000:
		score += 5
	}

	switch {
	case avgWindKmh < 25:
		score += 20
	case avgWindKmh < 35:
		score += 10
	}

	switch {
	case thermal.Consistency > 0.7:
		score += 25
	case thermal.Consistency > 0.5:
		score += 15
	}

	distance := (assumedGlideRatio*cloudBaseM)/1000 + thermal.StrengthMS*10
	confidence := 0.6*thermal.Consistency + 0.4*math.Min(cloudBaseM/2000, 1)

	return types.XCAnalysis{
		Score:               score,
		DistancePotentialKm: distance,
		Confidence:          confidence,
		Rating:              xcRating(score),
	}
}

// xcRating buckets the XC score.
func xcRating(score float64) types.XCRating {
	switch {
	case score > 80:
		return types.XCExcellent
	case score > 60:
		return types.XCGood
	case score > 40:
		return types.XCFair
	case score > 20:
		return types.XCPoor
	default:
		return types.XCUnsuitable
	}
}
