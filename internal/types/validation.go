package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Validation constraint constants.
const (
	MinLat         = -90.0
	MaxLat         = 90.0
	MinLon         = -180.0
	MaxLon         = 180.0
	MaxSiteQueryKm = 500.0
)

// VariableMetadata defines the canonical rules for a weather variable.
type VariableMetadata struct {
	ID          string     `json:"id"`
	Unit        string     `json:"unit"`
	Range       [2]float64 `json:"valid_range"`
	Description string     `json:"description"`
}

// StandardVariables defines the authoritative constraints for hourly inputs.
// Batch parsing validates incoming values against these ranges.
var StandardVariables = map[string]VariableMetadata{
	"temperature_c":             {ID: "temperature_c", Unit: "celsius", Range: [2]float64{-60, 60}, Description: "Air temperature at 2m above ground level"},
	"precipitation_probability": {ID: "precipitation_probability", Unit: "fraction", Range: [2]float64{0, 1}, Description: "Probability of precipitation"},
	"precipitation_mm":          {ID: "precipitation_mm", Unit: "mm", Range: [2]float64{0, 500}, Description: "Precipitation rate"},
	"wind_speed_kmh":            {ID: "wind_speed_kmh", Unit: "kmh", Range: [2]float64{0, 300}, Description: "Wind speed at 10m above ground level"},
	"wind_gust_kmh":             {ID: "wind_gust_kmh", Unit: "kmh", Range: [2]float64{0, 400}, Description: "Wind gust speed at 10m"},
	"wind_direction_deg":        {ID: "wind_direction_deg", Unit: "degrees", Range: [2]float64{0, 360}, Description: "Wind direction"},
	"cloud_cover_percent":       {ID: "cloud_cover_percent", Unit: "percent", Range: [2]float64{0, 100}, Description: "Cloud cover percentage"},
	"cape_jkg":                  {ID: "cape_jkg", Unit: "J/kg", Range: [2]float64{0, 10000}, Description: "Convective available potential energy"},
	"lifted_index_c":            {ID: "lifted_index_c", Unit: "celsius", Range: [2]float64{-20, 20}, Description: "Lifted index"},
	"boundary_layer_height_m":   {ID: "boundary_layer_height_m", Unit: "m", Range: [2]float64{0, 6000}, Description: "Boundary layer height"},
	"dewpoint_c":                {ID: "dewpoint_c", Unit: "celsius", Range: [2]float64{-60, 40}, Description: "Dewpoint temperature at 2m"},
}

// CheckVariableRange validates a value against the canonical range for the
// given variable ID. Unknown IDs pass; callers only guard variables that have
// registered metadata.
func CheckVariableRange(id string, value float64) error {
	meta, ok := StandardVariables[id]
	if !ok {
		return nil
	}
	if value < meta.Range[0] || value > meta.Range[1] {
		return NewAppErrorWithDetails(ErrCodeValidationValueRange,
			fmt.Sprintf("%s value %g outside [%g, %g] %s", id, value, meta.Range[0], meta.Range[1], meta.Unit),
			nil,
			map[string]any{"field": id, "value": value},
		)
	}
	return nil
}

// ValidateLocation checks that latitude and longitude are within bounds.
func ValidateLocation(lat, lon float64) error {
	if lat < MinLat || lat > MaxLat {
		return NewAppError(ErrCodeValidationInvalidLat,
			fmt.Sprintf("latitude %f out of range [-90, 90]", lat), nil)
	}
	if lon < MinLon || lon > MaxLon {
		return NewAppError(ErrCodeValidationInvalidLon,
			fmt.Sprintf("longitude %f out of range [-180, 180]", lon), nil)
	}
	return nil
}

// ParseClockMinutes parses an "HH:MM" wall-clock string into minutes since
// midnight. Hours must be 0-23 and minutes 0-59.
func ParseClockMinutes(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, NewAppError(ErrCodeValidationInvalidClock,
			fmt.Sprintf("%q is not a valid HH:MM time", clock), nil)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, NewAppError(ErrCodeValidationInvalidClock,
			fmt.Sprintf("%q has an invalid hour component", clock), nil)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, NewAppError(ErrCodeValidationInvalidClock,
			fmt.Sprintf("%q has an invalid minute component", clock), nil)
	}
	return hour*60 + minute, nil
}

// Overnight reports whether the shift's return leg rolls to the next calendar
// day (returnStart earlier in the day than outboundStart).
func (s ShiftWindow) Overnight() (bool, error) {
	out, err := ParseClockMinutes(s.OutboundStart)
	if err != nil {
		return false, err
	}
	ret, err := ParseClockMinutes(s.ReturnStart)
	if err != nil {
		return false, err
	}
	return ret < out, nil
}
