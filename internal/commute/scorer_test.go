package commute

import (
	"testing"

	"skycheck/internal/types"
)

// goodBaseline returns a sample that grades Good on every axis.
func goodBaseline() types.HourlySample {
	return types.HourlySample{
		TemperatureC:      22,
		WindSpeedKmh:      10,
		WindGustKmh:       0,
		PrecipitationMM:   0,
		PrecipProbability: 0.05,
	}
}

func TestEvaluate_IdealConditions(t *testing.T) {
	v := Evaluate(goodBaseline())

	if v.Level != types.RideGood {
		t.Fatalf("expected good, got %s", v.Level)
	}
	if v.Advice != goodAdvice {
		t.Errorf("expected ideal-conditions advice, got %q", v.Advice)
	}
}

func TestEvaluate_DangerousColdWinsOverOtherChecks(t *testing.T) {
	s := goodBaseline()
	s.TemperatureC = -4
	s.WindSpeedKmh = 5
	s.PrecipProbability = 0.1

	v := Evaluate(s)

	if v.Level != types.RideBad {
		t.Fatalf("expected bad, got %s", v.Level)
	}
	if v.Advice != "Dangerous cold with ice risk. Do not ride." {
		t.Errorf("expected cold advice, got %q", v.Advice)
	}
}

// A sample satisfying both a Bad condition and a Critical condition must
// grade Bad: the cascade is a strict priority order, not independent bands.
func TestEvaluate_CascadePriority(t *testing.T) {
	s := goodBaseline()
	s.PrecipProbability = 0.85 // Bad: pop > 80
	s.PrecipitationMM = 3      // Critical: rain in [2,5]

	v := Evaluate(s)

	if v.Level != types.RideBad {
		t.Fatalf("expected bad to win over critical, got %s", v.Level)
	}
}

func TestEvaluate_Levels(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.HourlySample)
		want   types.RideLevel
	}{
		{"pop just above bad threshold", func(s *types.HourlySample) { s.PrecipProbability = 0.81 }, types.RideBad},
		{"pop at critical upper bound", func(s *types.HourlySample) { s.PrecipProbability = 0.80 }, types.RideCritical},
		{"pop at critical lower bound", func(s *types.HourlySample) { s.PrecipProbability = 0.60 }, types.RideCritical},
		{"pop in moderate band", func(s *types.HourlySample) { s.PrecipProbability = 0.30 }, types.RideModerate},
		{"pop below moderate band", func(s *types.HourlySample) { s.PrecipProbability = 0.19 }, types.RideGood},
		{"heavy rain", func(s *types.HourlySample) { s.PrecipitationMM = 5.1 }, types.RideBad},
		{"steady rain", func(s *types.HourlySample) { s.PrecipitationMM = 2 }, types.RideCritical},
		{"drizzle", func(s *types.HourlySample) { s.PrecipitationMM = 0.5 }, types.RideModerate},
		{"freezing", func(s *types.HourlySample) { s.TemperatureC = 0 }, types.RideCritical},
		{"just above freezing band", func(s *types.HourlySample) { s.TemperatureC = 0.1 }, types.RideGood},
		{"storm wind", func(s *types.HourlySample) { s.WindSpeedKmh = 59 }, types.RideBad},
		{"strong wind", func(s *types.HourlySample) { s.WindSpeedKmh = 43 }, types.RideCritical},
		{"headwind", func(s *types.HourlySample) { s.WindSpeedKmh = 29 }, types.RideModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := goodBaseline()
			tt.mutate(&s)
			if got := Evaluate(s).Level; got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

// Increasing rain with all other fields at the Good baseline must never move
// the verdict toward a better level.
func TestEvaluate_RainMonotonicity(t *testing.T) {
	prev := -1
	for _, rain := range []float64{0, 0.3, 0.5, 1.0, 1.9, 2.0, 3.5, 5.0, 5.1, 8, 20} {
		s := goodBaseline()
		s.PrecipitationMM = rain
		sev := Evaluate(s).Level.Severity()
		if sev < prev {
			t.Fatalf("verdict improved at rain=%.1f (severity %d -> %d)", rain, prev, sev)
		}
		prev = sev
	}
}

func TestEffectiveWindKmh(t *testing.T) {
	tests := []struct {
		name string
		wind float64
		gust float64
		want float64
	}{
		{"no gust reading", 20, 0, 20},
		{"gust dominates", 20, 50, 40},
		{"sustained dominates discounted gust", 40, 45, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := types.HourlySample{WindSpeedKmh: tt.wind, WindGustKmh: tt.gust}
			if got := EffectiveWindKmh(s); got != tt.want {
				t.Errorf("got %.1f, want %.1f", got, tt.want)
			}
		})
	}
}

func TestClothingAdvice_Bands(t *testing.T) {
	if ClothingAdvice(-5) == "" {
		t.Error("expected winter advice below 0")
	}
	if ClothingAdvice(3) == "" {
		t.Error("expected cold advice below 5")
	}
	if ClothingAdvice(30) == "" {
		t.Error("expected heat advice above 25")
	}
	if ClothingAdvice(15) != "" {
		t.Error("expected no advice in the comfortable band")
	}
}
