package paragliding

import "skycheck/internal/types"

// Flyable-window scoring bounds. Hours are local clock hours, inclusive.
const (
	windowEarliestHour = 9
	windowLatestHour   = 19
	primeStartHour     = 11
	primeEndHour       = 16
)

// ScoredHour is one candidate hour from a window scan.
type ScoredHour struct {
	Sample types.HourlySample `json:"sample"`
	Score  float64            `json:"score"`
}

// ScoreHour rates one forecast hour for flyability on an additive scale.
// Hours outside the daylight soaring window score zero and are never
// candidates regardless of conditions.
func ScoreHour(sample types.HourlySample) float64 {
	hour := sample.Timestamp.Hour()
	if hour < windowEarliestHour || hour > windowLatestHour {
		return 0
	}

	score := 0.0

	cape := 0.0
	if sample.CAPEJkg != nil {
		cape = *sample.CAPEJkg
	}
	switch {
	case cape >= 500 && cape <= 1500:
		score += 30
	case cape > 1500 && cape <= 2500:
		score += 20
	case cape > 2500:
		score += 5
	}

	switch {
	case sample.WindSpeedKmh >= 10 && sample.WindSpeedKmh <= 25:
		score += 30
	case sample.WindSpeedKmh > 25 && sample.WindSpeedKmh <= 35:
		score += 10
	}

	switch {
	case sample.WindGustKmh < 35:
		score += 20
	case sample.WindGustKmh < 45:
		score += 10
	}

	if sample.TemperatureC > 15 {
		score += 10
	}
	if sample.TemperatureC > 20 {
		score += 10
	}

	if sample.PrecipitationMM > 0 {
		score -= 50
	}

	if hour >= primeStartHour && hour <= primeEndHour {
		score += 15
	}

	return score
}

// BestWindow scans the hourly series up to the horizon and returns the
// highest-scoring hour. Ties keep the earliest hour. Returns nil when the
// series is empty or every hour falls outside the daylight window; callers
// map that onto a not-found response, not an error.
func BestWindow(hourly []types.HourlySample, horizon types.WindowHorizon) *ScoredHour {
	limit := horizon.Hours()
	if limit <= 0 || limit > len(hourly) {
		limit = len(hourly)
	}

	var best *ScoredHour
	for _, sample := range hourly[:limit] {
		hour := sample.Timestamp.Hour()
		if hour < windowEarliestHour || hour > windowLatestHour {
			continue
		}
		score := ScoreHour(sample)
		if best == nil || score > best.Score {
			best = &ScoredHour{Sample: sample, Score: score}
		}
	}
	return best
}
