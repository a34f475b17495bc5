package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skycheck/internal/types"
)

func TestHaversineKm(t *testing.T) {
	// A point is at distance zero from itself.
	assert.Zero(t, HaversineKm(48.137, 11.575, 48.137, 11.575))

	// Symmetric in its arguments.
	d1 := HaversineKm(48.137, 11.575, 50.498, 9.943)
	d2 := HaversineKm(50.498, 9.943, 48.137, 11.575)
	assert.InDelta(t, d1, d2, 1e-9)

	// Munich to the Wasserkuppe is roughly 290 km.
	assert.InDelta(t, 290, d1, 15)
}

func TestInitialBearingDeg(t *testing.T) {
	// Due north along a meridian.
	assert.InDelta(t, 0, InitialBearingDeg(47.0, 11.0, 48.0, 11.0), 0.5)
	// Due south.
	assert.InDelta(t, 180, InitialBearingDeg(48.0, 11.0, 47.0, 11.0), 0.5)
	// Roughly east at this latitude.
	b := InitialBearingDeg(47.0, 11.0, 47.0, 12.0)
	assert.InDelta(t, 90, b, 1)
	// Always normalized to [0,360).
	assert.GreaterOrEqual(t, b, 0.0)
	assert.Less(t, b, 360.0)
}

func TestCompassLabel(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{11.24, "N"},
		{11.3, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{348.7, "NNW"},
		{348.8, "N"}, // rounds up past the last sector
		{359.9, "N"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompassLabel(tt.bearing), "bearing %v", tt.bearing)
	}
}

func TestRegistry_Nearby(t *testing.T) {
	reg := NewRegistry(nil)

	// From Lenggries, Brauneck is on the doorstep and the Wasserkuppe is not.
	matches := reg.Nearby(47.683, 11.566, 50)
	require.NotEmpty(t, matches)

	assert.Equal(t, "Brauneck", matches[0].Site.Name)
	for _, m := range matches {
		assert.NotEqual(t, "Wasserkuppe", m.Site.Name)
		assert.LessOrEqual(t, m.DistanceKm, 50.0)
		assert.NotEmpty(t, m.Compass)
	}

	// Ascending by distance.
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].DistanceKm, matches[i].DistanceKm)
	}
}

func TestRegistry_NearbyEmptyResult(t *testing.T) {
	reg := NewRegistry(nil)

	// Nothing within 10 km of the North Sea.
	matches := reg.Nearby(54.5, 7.5, 10)
	assert.Empty(t, matches)
}

func TestRegistry_TableIsolation(t *testing.T) {
	table := []types.LaunchSite{{Name: "Solo", Lat: 47, Lon: 11}}
	reg := NewRegistry(table)

	// Mutating the caller's slice must not affect the registry.
	table[0].Name = "Mutated"
	all := reg.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Solo", all[0].Name)

	// Mutating the returned copy must not affect the registry either.
	all[0].Name = "AlsoMutated"
	assert.Equal(t, "Solo", reg.All()[0].Name)
}

func TestDefaultSites_FreshSlice(t *testing.T) {
	a := DefaultSites()
	b := DefaultSites()
	require.NotEmpty(t, a)

	a[0].Name = "Scribbled"
	assert.NotEqual(t, a[0].Name, b[0].Name)
}
