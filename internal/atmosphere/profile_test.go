package atmosphere

import (
	"math"
	"testing"
	"time"

	"skycheck/internal/types"
)

func floatPtr(v float64) *float64 { return &v }

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestCalculateCloudBase_WorkedExample(t *testing.T) {
	// 6 °C spread at sea level: 6 * 125 = 750 m AGL. The band boundary is a
	// hard < 800, so 750 m grades very_low, not low.
	cb := CalculateCloudBase(20, 14, 0)

	if cb.HeightAGLm != 750 {
		t.Fatalf("expected height 750, got %.2f", cb.HeightAGLm)
	}
	if cb.Level != types.CloudBaseVeryLow {
		t.Errorf("expected very_low at 750 m, got %s", cb.Level)
	}
	if !almostEqual(cb.TempC, 20-0.75*9.8, 1e-9) {
		t.Errorf("unexpected LCL temperature %.3f", cb.TempC)
	}
	// Pressure must be below sea level pressure and physically plausible.
	if cb.PressureHPa >= 1013.25 || cb.PressureHPa < 850 {
		t.Errorf("implausible LCL pressure %.2f", cb.PressureHPa)
	}
}

func TestClassifyCloudBase_Bands(t *testing.T) {
	tests := []struct {
		height float64
		want   types.CloudBaseLevel
	}{
		{799.9, types.CloudBaseVeryLow},
		{800, types.CloudBaseLow},
		{1199.9, types.CloudBaseLow},
		{1200, types.CloudBaseModerate},
		{1800, types.CloudBaseHigh},
		{2500, types.CloudBaseVeryHigh},
	}
	for _, tt := range tests {
		if got := classifyCloudBase(tt.height); got != tt.want {
			t.Errorf("classifyCloudBase(%.1f) = %s, want %s", tt.height, got, tt.want)
		}
	}
}

// The CAPE bands are half-open [lower, upper): exactly 1500 grades strong.
func TestClassifyCAPE_BoundaryIsHalfOpen(t *testing.T) {
	if got := ClassifyCAPE(1500).Level; got != types.CAPEStrong {
		t.Errorf("CAPE 1500 must grade strong, got %s", got)
	}
	if got := ClassifyCAPE(1499.999).Level; got != types.CAPEModerate {
		t.Errorf("CAPE 1499.999 must grade moderate, got %s", got)
	}
}

func TestClassifyCAPE_Bands(t *testing.T) {
	tests := []struct {
		value float64
		want  types.CAPELevel
	}{
		{0, types.CAPENone},
		{99.9, types.CAPENone},
		{100, types.CAPEWeak},
		{500, types.CAPEModerate},
		{2500, types.CAPEExtreme},
		{4000, types.CAPEExtreme},
	}
	for _, tt := range tests {
		if got := ClassifyCAPE(tt.value).Level; got != tt.want {
			t.Errorf("ClassifyCAPE(%.1f) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestClassifyLiftedIndex(t *testing.T) {
	tests := []struct {
		value float64
		want  types.StabilityLevel
	}{
		{3, types.StabilityVeryStable},
		{1, types.StabilityStable},
		{0, types.StabilityNeutral},
		{-1.9, types.StabilityNeutral},
		{-3, types.StabilityUnstable},
		{-7, types.StabilityVeryUnstable},
	}
	for _, tt := range tests {
		if got := ClassifyLiftedIndex(tt.value).Level; got != tt.want {
			t.Errorf("ClassifyLiftedIndex(%.1f) = %s, want %s", tt.value, got, tt.want)
		}
	}
}

func TestCalculateLFC(t *testing.T) {
	// CAPE at the threshold: no LFC. Absence is not an error.
	if lfc := CalculateLFC(200, 900, 2000); lfc.Exists {
		t.Error("expected no LFC at CAPE 200")
	}

	// Above threshold: height is cloud base + 300, capped by the boundary layer.
	lfc := CalculateLFC(800, 900, 2000)
	if !lfc.Exists {
		t.Fatal("expected LFC at CAPE 800")
	}
	if lfc.HeightM != 1200 {
		t.Errorf("expected height 1200, got %.1f", lfc.HeightM)
	}
	if !lfc.Reachable {
		t.Error("1200 m LFC should be reachable")
	}

	// Boundary layer caps the height.
	capped := CalculateLFC(800, 1600, 1700)
	if capped.HeightM != 1700 {
		t.Errorf("expected boundary-layer cap at 1700, got %.1f", capped.HeightM)
	}
	if capped.Reachable {
		t.Error("1700 m LFC must not be reachable")
	}
}

func TestBuildProfile_FallbacksForMissingFields(t *testing.T) {
	sample := types.HourlySample{
		Timestamp:    time.Date(2026, 6, 6, 13, 0, 0, 0, time.UTC),
		TemperatureC: 18,
		WindSpeedKmh: 12,
	}

	p := BuildProfile(sample, 400)

	if p.CAPE.Level != types.CAPENone {
		t.Errorf("missing CAPE must fall back to 0, got %s", p.CAPE.Level)
	}
	if p.BoundaryLayerHeightM != 1500 {
		t.Errorf("missing boundary layer must fall back to 1500, got %.0f", p.BoundaryLayerHeightM)
	}
	if p.DewpointSpreadC != 5 {
		t.Errorf("missing dewpoint must use default spread 5, got %.1f", p.DewpointSpreadC)
	}
	if p.Wind.Boundary.Source != types.ReadingEstimated {
		t.Error("missing 80m wind must yield an estimated boundary band")
	}
}

func TestBuildProfile_MeasuredExtendedFields(t *testing.T) {
	sample := types.HourlySample{
		Timestamp:            time.Date(2026, 6, 6, 13, 30, 0, 0, time.UTC),
		TemperatureC:         24,
		WindSpeedKmh:         10,
		WindDirectionDeg:     180,
		DewpointC:            floatPtr(12),
		CAPEJkg:              floatPtr(900),
		LiftedIndexC:         floatPtr(-3),
		BoundaryLayerHeightM: floatPtr(1800),
		WindSpeed80mKmh:      floatPtr(14),
		WindDir80mDeg:        floatPtr(190),
		WindSpeed120mKmh:     floatPtr(18),
		WindDir120mDeg:       floatPtr(195),
	}

	p := BuildProfile(sample, 700)

	if p.CAPE.Level != types.CAPEModerate {
		t.Errorf("expected moderate CAPE, got %s", p.CAPE.Level)
	}
	if p.LiftedIndex.Level != types.StabilityUnstable {
		t.Errorf("expected unstable, got %s", p.LiftedIndex.Level)
	}
	if p.Wind.Boundary.Source != types.ReadingMeasured || p.Wind.Boundary.SpeedKmh != 14 {
		t.Errorf("expected measured boundary band at 14 km/h, got %+v", p.Wind.Boundary)
	}
	if p.Thermal.StrengthMS <= 0 {
		t.Error("expected non-zero midday thermal strength")
	}
	if p.DewpointSpreadC != 12 {
		t.Errorf("expected spread 12, got %.1f", p.DewpointSpreadC)
	}
}
