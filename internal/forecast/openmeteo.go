package forecast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"skycheck/internal/types"
)

// hourlyVariables is the fixed set of Open-Meteo hourly variables requested
// on every fetch. The extended atmospheric fields come back as nullable
// arrays; absence of a whole array is tolerated, per-index nulls are not.
const hourlyVariables = "temperature_2m,apparent_temperature,precipitation_probability," +
	"precipitation,wind_speed_10m,wind_gusts_10m,wind_direction_10m,cloud_cover," +
	"weather_code,dew_point_2m,cape,lifted_index,boundary_layer_height," +
	"convective_inhibition,wind_speed_80m,wind_direction_80m,wind_speed_120m,wind_direction_120m"

// hourlyTimeLayout is Open-Meteo's naive local timestamp format.
const hourlyTimeLayout = "2006-01-02T15:04"

// Provider fetches hourly forecast series from the Open-Meteo API.
type Provider struct {
	baseURL string
	client  *resilientClient
}

// NewProvider creates a Provider against the given base URL (e.g.
// "https://api.open-meteo.com").
func NewProvider(baseURL string, httpClient *http.Client, policy RetryPolicy, userAgent string) *Provider {
	return &Provider{
		baseURL: baseURL,
		client:  newResilientClient(httpClient, "open-meteo", policy, userAgent),
	}
}

// openMeteoResponse mirrors the subset of the Open-Meteo JSON payload we
// consume. All hourly arrays must be index-aligned with Time.
type openMeteoResponse struct {
	Hourly struct {
		Time                 []string   `json:"time"`
		Temperature2m        []float64  `json:"temperature_2m"`
		ApparentTemperature  []float64  `json:"apparent_temperature"`
		PrecipProbability    []float64  `json:"precipitation_probability"`
		Precipitation        []float64  `json:"precipitation"`
		WindSpeed10m         []float64  `json:"wind_speed_10m"`
		WindGusts10m         []float64  `json:"wind_gusts_10m"`
		WindDirection10m     []float64  `json:"wind_direction_10m"`
		CloudCover           []float64  `json:"cloud_cover"`
		WeatherCode          []int      `json:"weather_code"`
		DewPoint2m           []*float64 `json:"dew_point_2m"`
		CAPE                 []*float64 `json:"cape"`
		LiftedIndex          []*float64 `json:"lifted_index"`
		BoundaryLayerHeight  []*float64 `json:"boundary_layer_height"`
		ConvectiveInhibition []*float64 `json:"convective_inhibition"`
		WindSpeed80m         []*float64 `json:"wind_speed_80m"`
		WindDirection80m     []*float64 `json:"wind_direction_80m"`
		WindSpeed120m        []*float64 `json:"wind_speed_120m"`
		WindDirection120m    []*float64 `json:"wind_direction_120m"`
	} `json:"hourly"`
}

// FetchHourly retrieves the hourly series for a coordinate over the given
// number of forecast days. Timestamps come back in the location's local
// wall-clock time, which is what all downstream scoring operates on.
func (p *Provider) FetchHourly(ctx context.Context, lat, lon float64, days int) ([]types.HourlySample, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', 4, 64))
	q.Set("hourly", hourlyVariables)
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("timezone", "auto")

	reqURL := fmt.Sprintf("%s/v1/forecast?%s", p.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build forecast request", err)
	}

	resp, err := p.client.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, types.NewAppErrorWithDetails(
			types.ErrCodeUpstreamForecast,
			fmt.Sprintf("forecast upstream returned %d", resp.StatusCode),
			nil,
			map[string]any{"body": string(body)},
		)
	}

	var payload openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, types.NewAppError(types.ErrCodeUpstreamForecast, "failed to decode forecast payload", err)
	}

	return buildSeries(payload)
}

// buildSeries converts the columnar payload into row-oriented hourly
// samples. It fails fast on the first misaligned array rather than emitting
// a partially valid series.
func buildSeries(payload openMeteoResponse) ([]types.HourlySample, error) {
	h := payload.Hourly
	n := len(h.Time)
	if n == 0 {
		return nil, types.NewAppError(types.ErrCodeUpstreamForecast, "forecast payload contains no hourly data", nil)
	}

	required := map[string]int{
		"temperature_2m":            len(h.Temperature2m),
		"apparent_temperature":      len(h.ApparentTemperature),
		"precipitation_probability": len(h.PrecipProbability),
		"precipitation":             len(h.Precipitation),
		"wind_speed_10m":            len(h.WindSpeed10m),
		"wind_gusts_10m":            len(h.WindGusts10m),
		"wind_direction_10m":        len(h.WindDirection10m),
		"cloud_cover":               len(h.CloudCover),
		"weather_code":              len(h.WeatherCode),
	}
	for field, length := range required {
		if length != n {
			return nil, arrayMismatch(field, length, n)
		}
	}

	// Extended arrays may be absent entirely, but when present must align.
	optional := map[string]int{
		"dew_point_2m":           len(h.DewPoint2m),
		"cape":                   len(h.CAPE),
		"lifted_index":           len(h.LiftedIndex),
		"boundary_layer_height":  len(h.BoundaryLayerHeight),
		"convective_inhibition":  len(h.ConvectiveInhibition),
		"wind_speed_80m":         len(h.WindSpeed80m),
		"wind_direction_80m":     len(h.WindDirection80m),
		"wind_speed_120m":        len(h.WindSpeed120m),
		"wind_direction_120m":    len(h.WindDirection120m),
	}
	for field, length := range optional {
		if length != 0 && length != n {
			return nil, arrayMismatch(field, length, n)
		}
	}

	samples := make([]types.HourlySample, 0, n)
	for i := 0; i < n; i++ {
		ts, err := time.Parse(hourlyTimeLayout, h.Time[i])
		if err != nil {
			return nil, types.NewAppErrorWithDetails(
				types.ErrCodeUpstreamForecast,
				"forecast payload contains an unparseable timestamp",
				err,
				map[string]any{"field": "time", "index": i, "value": h.Time[i]},
			)
		}

		s := types.HourlySample{
			Timestamp:     ts,
			TemperatureC:  h.Temperature2m[i],
			ApparentTempC: h.ApparentTemperature[i],
			// Open-Meteo reports probability as a percent; the domain
			// contract is a 0-1 fraction.
			PrecipProbability: h.PrecipProbability[i] / 100,
			PrecipitationMM:   h.Precipitation[i],
			WindSpeedKmh:      h.WindSpeed10m[i],
			WindGustKmh:       h.WindGusts10m[i],
			WindDirectionDeg:  h.WindDirection10m[i],
			CloudCoverPct:     h.CloudCover[i],
			WeatherCode:       h.WeatherCode[i],
		}

		s.DewpointC = pick(h.DewPoint2m, i)
		s.CAPEJkg = pick(h.CAPE, i)
		s.LiftedIndexC = pick(h.LiftedIndex, i)
		s.BoundaryLayerHeightM = pick(h.BoundaryLayerHeight, i)
		s.ConvectiveInhibition = pick(h.ConvectiveInhibition, i)
		s.WindSpeed80mKmh = pick(h.WindSpeed80m, i)
		s.WindDir80mDeg = pick(h.WindDirection80m, i)
		s.WindSpeed120mKmh = pick(h.WindSpeed120m, i)
		s.WindDir120mDeg = pick(h.WindDirection120m, i)

		if err := checkSampleRanges(s, i); err != nil {
			return nil, err
		}

		samples = append(samples, s)
	}

	return samples, nil
}

// checkSampleRanges validates a parsed sample against the canonical variable
// ranges in types.StandardVariables. The failing hour's index is attached to
// the error details.
func checkSampleRanges(s types.HourlySample, idx int) error {
	values := map[string]float64{
		"temperature_c":             s.TemperatureC,
		"precipitation_probability": s.PrecipProbability,
		"precipitation_mm":          s.PrecipitationMM,
		"wind_speed_kmh":            s.WindSpeedKmh,
		"wind_gust_kmh":             s.WindGustKmh,
		"wind_direction_deg":        s.WindDirectionDeg,
		"cloud_cover_percent":       s.CloudCoverPct,
	}
	optional := map[string]*float64{
		"cape_jkg":                s.CAPEJkg,
		"lifted_index_c":          s.LiftedIndexC,
		"boundary_layer_height_m": s.BoundaryLayerHeightM,
		"dewpoint_c":              s.DewpointC,
	}
	for id, v := range optional {
		if v != nil {
			values[id] = *v
		}
	}

	for id, v := range values {
		if err := types.CheckVariableRange(id, v); err != nil {
			var appErr *types.AppError
			if errors.As(err, &appErr) {
				appErr.Details["index"] = idx
			}
			return err
		}
	}
	return nil
}

func arrayMismatch(field string, got, want int) *types.AppError {
	return types.NewAppErrorWithDetails(
		types.ErrCodeValidationArrayMismatch,
		fmt.Sprintf("forecast array %q has %d entries, expected %d", field, got, want),
		nil,
		map[string]any{"field": field, "got": got, "want": want},
	)
}

// pick returns the i-th entry of an optional columnar array, or nil when the
// array is absent or the entry itself is null.
func pick(arr []*float64, i int) *float64 {
	if len(arr) == 0 || arr[i] == nil {
		return nil
	}
	v := *arr[i]
	return &v
}
