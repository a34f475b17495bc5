// Package config defines the global configuration structure for the skycheck
// service. Configuration is loaded once at process initialization and is
// immutable thereafter, following 12-Factor principles.
//
// Values are resolved via a priority chain: OS environment (highest), then a
// local .env file. Any missing required value or invalid format fails the
// process immediately on startup.
package config

import "time"

// Config is the top-level configuration struct. It is populated once during
// process initialization and never modified. Sub-components receive only the
// config subsets they require.
type Config struct {
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"skycheck"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server   ServerConfig
	Forecast ForecastConfig
	Commute  CommuteConfig

	// Build metadata injected via ldflags, not env.
	Build BuildInfo
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        `envconfig:"PORT" default:"8080"`
	RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"29s"`
	CorsAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// ForecastConfig holds forecast upstream and cache settings.
type ForecastConfig struct {
	BaseURL      string        `envconfig:"FORECAST_BASE_URL" default:"https://api.open-meteo.com" validate:"required,url"`
	UserAgent    string        `envconfig:"FORECAST_USER_AGENT" default:"skycheck/1.0"`
	ForecastDays int           `envconfig:"FORECAST_DAYS" default:"3" validate:"min=1,max=16"`
	CacheTTL     time.Duration `envconfig:"FORECAST_CACHE_TTL" default:"30m"`
	HTTPTimeout  time.Duration `envconfig:"FORECAST_HTTP_TIMEOUT" default:"15s"`
}

// CommuteConfig holds the default shift window used when a request does not
// carry an explicit one. Times are wall-clock "HH:MM".
type CommuteConfig struct {
	DefaultOutboundStart string `envconfig:"COMMUTE_OUTBOUND_START" default:"07:30"`
	DefaultOutboundEnd   string `envconfig:"COMMUTE_OUTBOUND_END" default:"08:30"`
	DefaultReturnStart   string `envconfig:"COMMUTE_RETURN_START" default:"17:00"`
	DefaultReturnEnd     string `envconfig:"COMMUTE_RETURN_END" default:"18:00"`
}

// BuildInfo holds build-time metadata injected via ldflags. These values are
// not populated from environment variables.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
}

// ConfigErrorType categorizes configuration loading failures to aid
// debugging.
type ConfigErrorType string

const (
	// ErrMissingEnv indicates a required environment variable was not found.
	ErrMissingEnv ConfigErrorType = "MISSING_ENV"
	// ErrValidation indicates the configuration failed struct validation.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
